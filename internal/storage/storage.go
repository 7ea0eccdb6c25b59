package storage

import (
	"context"
	"image"
	"io"
)

// Reader provides read access to stored source images
type Reader interface {
	// GetReader returns a reader for the file at the given key
	GetReader(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists checks if a file exists at the given key
	Exists(ctx context.Context, key string) (bool, error)
}

// RasterSink accepts a finished composite raster and writes it out exactly
// once, in the format implied by the key's extension.
type RasterSink interface {
	WriteRaster(ctx context.Context, key string, img image.Image) error
}
