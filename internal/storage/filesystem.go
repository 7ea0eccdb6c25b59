package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStorage implements Reader and RasterSink over one local directory
type FilesystemStorage struct {
	baseDir string
}

// NewFilesystemStorage creates filesystem-backed storage rooted at baseDir
func NewFilesystemStorage(baseDir string) (*FilesystemStorage, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FilesystemStorage{
		baseDir: baseDir,
	}, nil
}

// resolve joins key onto the base directory, rejecting path traversal.
// The check is per path component, so a sibling directory sharing the base
// directory's name as a string prefix does not slip through.
func (fs *FilesystemStorage) resolve(key string) (string, error) {
	base := filepath.Clean(fs.baseDir)
	path := filepath.Join(base, key)
	if path != base && !strings.HasPrefix(path, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid key: path traversal detected")
	}
	return path, nil
}

// GetReader returns a reader for the file at the given key
func (fs *FilesystemStorage) GetReader(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := fs.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Exists checks if a file exists at the given key
func (fs *FilesystemStorage) Exists(ctx context.Context, key string) (bool, error) {
	path, err := fs.resolve(key)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}

	return true, nil
}
