package storage

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned when a raster path's extension does not map
// to a known encoder.
var ErrUnknownFormat = errors.New("unsupported output image format")

const jpegQuality = 80

// SupportedOutput reports whether path's extension maps to a known raster encoder.
func SupportedOutput(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

// WriteRaster encodes img in the format implied by key's extension and
// writes it under the base directory.
func (fs *FilesystemStorage) WriteRaster(ctx context.Context, key string, img image.Image) error {
	path, err := fs.resolve(key)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := encode(out, path, img); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func encode(w *os.File, path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("JPEG encode failed: %w", err)
		}
	case ".png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("PNG encode failed: %w", err)
		}
	case ".tif", ".tiff":
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("TIFF encode failed: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
	return nil
}
