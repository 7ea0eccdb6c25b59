package grid

import (
	"errors"
	"testing"
)

func TestParseDims(t *testing.T) {
	tests := []struct {
		in   string
		want Dims
	}{
		{"10x20", Dims{10, 20}},
		{"1X2", Dims{1, 2}},
		{"200x300", Dims{200, 300}},
	}
	for _, tt := range tests {
		got, err := ParseDims(tt.in)
		if err != nil {
			t.Fatalf("ParseDims(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDims(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDimsRejects(t *testing.T) {
	for _, in := range []string{"", "10", "x20", "10x", "axb", "10x20x30", "-1x5", "0x5", " 10x20"} {
		if _, err := ParseDims(in); !errors.Is(err, ErrBadDims) {
			t.Errorf("ParseDims(%q) = %v, want ErrBadDims", in, err)
		}
	}
}

func TestPositionForColsright(t *testing.T) {
	// Column-major: row = index mod rows, col = index div rows.
	for rows := 1; rows <= 5; rows++ {
		for cols := 1; cols <= 5; cols++ {
			dims := Dims{Rows: rows, Cols: cols}
			for index := 0; index < dims.Cells(); index++ {
				pos, err := PositionFor(index, dims, Colsright)
				if err != nil {
					t.Fatalf("PositionFor(%d, %v) returned error: %v", index, dims, err)
				}
				want := Position{Row: index % rows, Col: index / rows}
				if pos != want {
					t.Errorf("PositionFor(%d, %v) = %v, want %v", index, dims, pos, want)
				}
			}
		}
	}
}

func TestPositionForExamples(t *testing.T) {
	dims := Dims{Rows: 5, Cols: 5}

	pos, err := PositionFor(10, dims, Colsright)
	if err != nil {
		t.Fatal(err)
	}
	if (pos != Position{Row: 0, Col: 2}) {
		t.Errorf("index 10 in 5x5 = %v, want (0,2)", pos)
	}

	pos, err = PositionFor(1, dims, Colsright)
	if err != nil {
		t.Fatal(err)
	}
	if (pos != Position{Row: 1, Col: 0}) {
		t.Errorf("index 1 in 5x5 = %v, want (1,0)", pos)
	}
}

func TestPositionForOutOfRange(t *testing.T) {
	dims := Dims{Rows: 5, Cols: 5}
	for _, index := range []int{25, 26, 100, -1} {
		if _, err := PositionFor(index, dims, Colsright); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("PositionFor(%d, %v) = %v, want ErrIndexOutOfRange", index, dims, err)
		}
	}
}

func TestColsleftAliasesColsright(t *testing.T) {
	dims := Dims{Rows: 4, Cols: 3}
	for index := 0; index < dims.Cells(); index++ {
		left, err := PositionFor(index, dims, Colsleft)
		if err != nil {
			t.Fatal(err)
		}
		right, err := PositionFor(index, dims, Colsright)
		if err != nil {
			t.Fatal(err)
		}
		if left != right {
			t.Errorf("index %d: colsleft = %v, colsright = %v", index, left, right)
		}
	}
}

func TestUnsupportedOrders(t *testing.T) {
	dims := Dims{Rows: 2, Cols: 2}
	for _, order := range []Order{Rowsdown, Rowsup} {
		if _, err := PositionFor(0, dims, order); !errors.Is(err, ErrUnsupportedOrder) {
			t.Errorf("PositionFor(0, %v, %s) = %v, want ErrUnsupportedOrder", dims, order, err)
		}
	}
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{
		"colsright": Colsright,
		"COLSRIGHT": Colsright,
		"colsleft":  Colsleft,
		"rowsdown":  Rowsdown,
		"rowsup":    Rowsup,
	} {
		got, err := ParseOrder(in)
		if err != nil {
			t.Fatalf("ParseOrder(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseOrder(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseOrder("spiral"); !errors.Is(err, ErrBadOrder) {
		t.Errorf("ParseOrder(spiral) = %v, want ErrBadOrder", err)
	}
}
