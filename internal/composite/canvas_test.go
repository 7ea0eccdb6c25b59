package composite

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gigavision/gvtools/internal/grid"
)

func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestNewCanvasShapeAndBackground(t *testing.T) {
	c := NewCanvas(grid.Dims{Rows: 2, Cols: 3}, grid.Dims{Rows: 100, Cols: 100})

	b := c.Image().Bounds()
	if b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("canvas bounds = %dx%d, want 300x200", b.Dx(), b.Dy())
	}

	for _, p := range []image.Point{{0, 0}, {299, 199}, {150, 99}} {
		got := c.Image().NRGBAAt(p.X, p.Y)
		if got != (color.NRGBA{0, 0, 0, 255}) {
			t.Errorf("background pixel at %v = %v, want opaque black", p, got)
		}
	}
}

func TestPasteFillsExactlyOneCell(t *testing.T) {
	c := NewCanvas(grid.Dims{Rows: 2, Cols: 3}, grid.Dims{Rows: 100, Cols: 100})

	red := color.NRGBA{R: 255, A: 255}
	if err := c.Paste(grid.Position{Row: 0, Col: 0}, uniform(100, 100, red)); err != nil {
		t.Fatal(err)
	}

	if got := c.Image().NRGBAAt(99, 99); got != red {
		t.Errorf("pixel inside cell (0,0) = %v, want %v", got, red)
	}
	// Neighboring cells must not be touched.
	for _, p := range []image.Point{{100, 0}, {0, 100}, {150, 150}} {
		if got := c.Image().NRGBAAt(p.X, p.Y); got != (color.NRGBA{0, 0, 0, 255}) {
			t.Errorf("pixel at %v = %v, want untouched black", p, got)
		}
	}
}

func TestPasteEveryCellNoLeak(t *testing.T) {
	gridDims := grid.Dims{Rows: 2, Cols: 3}
	cellDims := grid.Dims{Rows: 100, Cols: 100}
	c := NewCanvas(gridDims, cellDims)

	// A distinct gray level per cell so leaks are detectable.
	for row := 0; row < gridDims.Rows; row++ {
		for col := 0; col < gridDims.Cols; col++ {
			v := uint8(40*(row*gridDims.Cols+col) + 10)
			sub := uniform(cellDims.Cols, cellDims.Rows, color.NRGBA{R: v, G: v, B: v, A: 255})
			if err := c.Paste(grid.Position{Row: row, Col: col}, sub); err != nil {
				t.Fatal(err)
			}
		}
	}

	// Every pixel of every cell must hold exactly that cell's value.
	for row := 0; row < gridDims.Rows; row++ {
		for col := 0; col < gridDims.Cols; col++ {
			v := uint8(40*(row*gridDims.Cols+col) + 10)
			want := color.NRGBA{R: v, G: v, B: v, A: 255}
			for _, p := range []image.Point{
				{col * 100, row * 100},
				{col*100 + 99, row*100 + 99},
				{col*100 + 50, row*100 + 50},
			} {
				if got := c.Image().NRGBAAt(p.X, p.Y); got != want {
					t.Errorf("cell (%d,%d) pixel %v = %v, want %v", row, col, p, got, want)
				}
			}
		}
	}
}

func TestPasteOverwrites(t *testing.T) {
	c := NewCanvas(grid.Dims{Rows: 1, Cols: 1}, grid.Dims{Rows: 10, Cols: 10})

	first := color.NRGBA{R: 255, A: 255}
	second := color.NRGBA{B: 255, A: 255}
	if err := c.Paste(grid.Position{}, uniform(10, 10, first)); err != nil {
		t.Fatal(err)
	}
	if err := c.Paste(grid.Position{}, uniform(10, 10, second)); err != nil {
		t.Fatal(err)
	}
	if got := c.Image().NRGBAAt(5, 5); got != second {
		t.Errorf("pixel after re-paste = %v, want %v", got, second)
	}
}

func TestPasteShapeMismatch(t *testing.T) {
	c := NewCanvas(grid.Dims{Rows: 2, Cols: 2}, grid.Dims{Rows: 100, Cols: 100})

	for _, sub := range []*image.NRGBA{
		uniform(99, 100, color.NRGBA{A: 255}),
		uniform(100, 101, color.NRGBA{A: 255}),
		uniform(50, 50, color.NRGBA{A: 255}),
	} {
		if err := c.Paste(grid.Position{}, sub); !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("Paste of %v image = %v, want ErrShapeMismatch", sub.Bounds(), err)
		}
	}
}
