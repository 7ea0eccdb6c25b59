package composite

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/gigavision/gvtools/internal/grid"
)

// ErrSizeAndScale is returned when both an absolute size and a relative
// scale are requested for the same resize.
var ErrSizeAndScale = errors.New("only one of size or scale can be given")

// Downsize resizes img to the given absolute size (height, width) or by the
// given relative scale, whichever is set. A zero size means unset; a zero
// scale means unset; with neither set the image is returned unchanged.
// Resampling uses the Catmull-Rom cubic kernel, which anti-aliases on
// downscale, and imaging clamps the filtered samples back to 8-bit.
func Downsize(img image.Image, size grid.Dims, scale float64) (image.Image, error) {
	switch {
	case size != (grid.Dims{}) && scale != 0:
		return nil, ErrSizeAndScale
	case size != (grid.Dims{}):
		return imaging.Resize(img, size.Cols, size.Rows, imaging.CatmullRom), nil
	case scale != 0:
		b := img.Bounds()
		w := int(float64(b.Dx()) * scale)
		h := int(float64(b.Dy()) * scale)
		return imaging.Resize(img, w, h, imaging.CatmullRom), nil
	default:
		return img, nil
	}
}
