// Package composite assembles resized sub-images into one contact-sheet raster.
package composite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gigavision/gvtools/internal/grid"
)

// ErrShapeMismatch is returned when a pasted sub-image does not match the cell size.
var ErrShapeMismatch = errors.New("sub-image does not match cell size")

// Canvas owns the full-resolution composite raster. The raster is allocated
// once at construction, sized exactly grid dims times cell dims, and is only
// ever mutated in place by Paste.
type Canvas struct {
	dims grid.Dims // grid size in cells
	cell grid.Dims // cell size in pixels (Rows = height, Cols = width)
	img  *image.NRGBA
}

// NewCanvas allocates a black canvas for a dims.Rows by dims.Cols grid of
// cell.Rows by cell.Cols sub-images.
func NewCanvas(dims, cell grid.Dims) *Canvas {
	img := image.NewNRGBA(image.Rect(0, 0, dims.Cols*cell.Cols, dims.Rows*cell.Rows))
	// A zero NRGBA raster is transparent; make the background opaque black.
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return &Canvas{dims: dims, cell: cell, img: img}
}

// GridDims returns the grid size in cells.
func (c *Canvas) GridDims() grid.Dims { return c.dims }

// CellDims returns the cell size in pixels.
func (c *Canvas) CellDims() grid.Dims { return c.cell }

// Image returns the backing raster.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Paste writes sub into the cell at pos, overwriting whatever is there.
// No blending: pixels are copied with draw.Src. Pasting the same cell twice
// simply overwrites it. sub must be exactly the cell size.
func (c *Canvas) Paste(pos grid.Position, sub image.Image) error {
	b := sub.Bounds()
	if b.Dy() != c.cell.Rows || b.Dx() != c.cell.Cols {
		return fmt.Errorf("%w: got %dx%d, want %s", ErrShapeMismatch, b.Dy(), b.Dx(), c.cell)
	}

	target := image.Rect(
		pos.Col*c.cell.Cols,
		pos.Row*c.cell.Rows,
		(pos.Col+1)*c.cell.Cols,
		(pos.Row+1)*c.cell.Rows,
	)
	draw.Draw(c.img, target, sub, b.Min, draw.Src)
	return nil
}
