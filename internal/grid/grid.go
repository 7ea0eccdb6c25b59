// Package grid maps linear sequence indexes onto 2-D contact-sheet cells.
package grid

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrBadDims is returned when a dimension string is not in ROWSxCOLS form.
	ErrBadDims = errors.New("dimensions not in ROWSxCOLS form")

	// ErrBadOrder is returned when a fill order name is not recognized.
	ErrBadOrder = errors.New("unknown fill order")

	// ErrUnsupportedOrder is returned for fill orders that are recognized
	// but have no mapping formula implemented.
	ErrUnsupportedOrder = errors.New("unsupported fill order")

	// ErrIndexOutOfRange is returned when an index does not fit the grid.
	ErrIndexOutOfRange = errors.New("index is larger than it should be given rowsXcols")
)

// Order is the convention mapping a linear sequence index to a grid cell.
type Order int

const (
	// Colsright fills column-major: top to bottom within a column,
	// columns left to right.
	Colsright Order = iota

	// Colsleft is accepted for compatibility with existing runs and maps
	// with the same formula as Colsright.
	Colsleft

	// Rowsdown and Rowsup are recognized configuration values with no
	// implemented mapping; using them is an error.
	Rowsdown
	Rowsup
)

func (o Order) String() string {
	switch o {
	case Colsright:
		return "colsright"
	case Colsleft:
		return "colsleft"
	case Rowsdown:
		return "rowsdown"
	case Rowsup:
		return "rowsup"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// ParseOrder converts a fill order name to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "colsright":
		return Colsright, nil
	case "colsleft":
		return Colsleft, nil
	case "rowsdown":
		return Rowsdown, nil
	case "rowsup":
		return Rowsup, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadOrder, s)
	}
}

// Dims is a size in (rows, cols) for grids, or (height, width) for rasters.
type Dims struct {
	Rows int
	Cols int
}

// Cells returns the number of cells in a Rows by Cols grid.
func (d Dims) Cells() int { return d.Rows * d.Cols }

func (d Dims) String() string { return fmt.Sprintf("%dx%d", d.Rows, d.Cols) }

var dimsPattern = regexp.MustCompile(`(?i)^(\d+)x(\d+)$`)

// ParseDims converts a string like "10x20" into Dims{10, 20}.
// The separator is case-insensitive, so "1X2" is valid too.
func ParseDims(s string) (Dims, error) {
	m := dimsPattern.FindStringSubmatch(s)
	if m == nil {
		return Dims{}, fmt.Errorf("%w: %q", ErrBadDims, s)
	}
	rows, err := strconv.Atoi(m[1])
	if err != nil {
		return Dims{}, fmt.Errorf("%w: %q: %v", ErrBadDims, s, err)
	}
	cols, err := strconv.Atoi(m[2])
	if err != nil {
		return Dims{}, fmt.Errorf("%w: %q: %v", ErrBadDims, s, err)
	}
	if rows < 1 || cols < 1 {
		return Dims{}, fmt.Errorf("%w: %q: dimensions must be positive", ErrBadDims, s)
	}
	return Dims{Rows: rows, Cols: cols}, nil
}

// Position is a zero-based grid coordinate with the origin at the top left.
type Position struct {
	Row int
	Col int
}

// PositionFor converts a zero-based sequence index to the cell it occupies
// in a dims.Rows by dims.Cols grid filled in the given order.
func PositionFor(index int, dims Dims, order Order) (Position, error) {
	if index < 0 || index >= dims.Cells() {
		return Position{}, fmt.Errorf("%w: index %d in %s grid", ErrIndexOutOfRange, index, dims)
	}
	switch order {
	case Colsright, Colsleft:
		return Position{Row: index % dims.Rows, Col: index / dims.Rows}, nil
	case Rowsdown, Rowsup:
		return Position{}, fmt.Errorf("%w: %s", ErrUnsupportedOrder, order)
	default:
		return Position{}, fmt.Errorf("%w: %d", ErrBadOrder, int(order))
	}
}
