// Package sources enumerates candidate image files for one composite run,
// from either a directory or a tar archive of camera-trap images.
package sources

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Gather lists the files under input whose extension matches format
// (case-insensitive), sorted by name for deterministic ordering. If input is
// not a directory it is treated as a tar archive: every regular entry is
// extracted into scratch storage first and the extracted directory is
// enumerated the same way.
//
// The returned dir is where the candidate files live. The cleanup func
// releases any scratch storage and must be called when the caller is done
// with the files, on both success and failure paths.
//
// No naming validation happens here: files with a matching extension but an
// unparseable name are still returned, for per-item skip handling upstream.
func Gather(ctx context.Context, input, format string) (dir string, names []string, cleanup func(), err error) {
	info, err := os.Stat(input)
	if err != nil {
		return "", nil, nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		names, err = listDir(input, format)
		if err != nil {
			return "", nil, nil, err
		}
		return input, names, func() {}, nil
	}

	scratch, err := os.MkdirTemp("", "gvpreview-*")
	if err != nil {
		return "", nil, nil, fmt.Errorf("create scratch dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(scratch) }

	if err := extractTar(ctx, input, scratch); err != nil {
		cleanup()
		return "", nil, nil, err
	}
	names, err = listDir(scratch, format)
	if err != nil {
		cleanup()
		return "", nil, nil, err
	}
	return scratch, names, cleanup, nil
}

func listDir(dir, format string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	want := "." + strings.ToLower(format)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) != want {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// extractTar unpacks every regular entry of the archive at path into dest.
// Entry paths are flattened to their base name, which also keeps extracted
// files from escaping dest. Entries from different directories that share a
// base name collapse to one file, last entry wins; conforming inputs embed
// the grid cell in the name, so same name means same cell either way.
func extractTar(ctx context.Context, path, dest string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	tr := tar.NewReader(f)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read archive %s: %w", path, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if err := writeEntry(dest, filepath.Base(hdr.Name), tr); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(dest, name string, r io.Reader) error {
	out, err := os.Create(filepath.Join(dest, name))
	if err != nil {
		return fmt.Errorf("extract %s: %w", name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("extract %s: %w", name, err)
	}
	return nil
}
