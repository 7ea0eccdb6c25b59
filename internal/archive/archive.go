// Package archive buckets timestamped camera-trap images into per-date tar
// files and prunes the archived originals, trading files for inodes.
package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Date stamp embedded in image file names, e.g. GC02L_2016_04_28_16_35_00.jpg.
// Years are allowed through 2099.
var datePattern = regexp.MustCompile(`20[1-9][0-9]_[0-1][0-9]_[0-3][0-9]`)

// Extensions included in archives. Relies on file name extensions being correct.
var includeExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".cr2":  true,
}

const tarPerm = 0o660

// Stats summarizes one archive run.
type Stats struct {
	Archived int // files appended to a tar
	Tarballs int // distinct tar files written to
	Pruned   int // archived originals deleted
}

// InRange reports whether date falls inside the inclusive [start, end]
// range. Either bound may be empty, meaning unbounded on that side. Dates
// are YYYY_MM_DD strings; year-first ordering makes string comparison agree
// with date comparison.
func InRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// Run archives every dated image under each camera dir into a
// <dirbase>_<date>.tar next to the image, then deletes originals that are
// listed in a tar. Files without a date stamp in the name are left alone.
// Per-file failures are logged and skipped; only setup failures are fatal.
//
// No membership check is done before appending: re-running over the same
// files appends duplicates (archival deduplication is out of scope here).
func Run(ctx context.Context, dirs []string, start, end string, log *logrus.Entry) (Stats, error) {
	var stats Stats

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return stats, fmt.Errorf("directory does not exist: %q", dir)
		}
	}

	for _, dir := range dirs {
		buckets, err := collect(ctx, dir, start, end)
		if err != nil {
			return stats, err
		}
		for _, tarPath := range sortedKeys(buckets) {
			n := appendAll(tarPath, buckets[tarPath], log)
			if n > 0 {
				stats.Archived += n
				stats.Tarballs++
				log.Debugf("archived %d file(s) into %s", n, tarPath)
			}
		}
	}

	log.Info("Deleting the original copies of the archived files...")
	for _, dir := range dirs {
		pruned, err := pruneArchived(ctx, dir, log)
		if err != nil {
			return stats, err
		}
		stats.Pruned += pruned
	}

	return stats, nil
}

// collect walks dir and groups includable image paths by the tar file they
// belong in. Tar files are named from the camera dir, not from the images.
func collect(ctx context.Context, dir, start, end string) (map[string][]string, error) {
	base := filepath.Base(filepath.Clean(dir))
	buckets := make(map[string][]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			return nil
		}
		if !includeExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		date := datePattern.FindString(filepath.Base(path))
		if date == "" {
			return nil
		}
		if !InRange(date, start, end) {
			return nil
		}
		tarPath := filepath.Join(filepath.Dir(path), fmt.Sprintf("%s_%s.tar", base, date))
		buckets[tarPath] = append(buckets[tarPath], path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	for _, paths := range buckets {
		sort.Strings(paths)
	}
	return buckets, nil
}

// appendAll appends the given files to the tar at tarPath, creating it if
// needed, and reports how many were appended. Failures are per-file.
func appendAll(tarPath string, paths []string, log *logrus.Entry) int {
	f, err := os.OpenFile(tarPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		log.Warnf("Failed to open tar file for appending, skipping %q: %v", tarPath, err)
		return 0
	}
	defer f.Close()

	// An existing archive ends with two zero blocks; position the writer
	// over them so new entries extend the archive.
	if info, err := f.Stat(); err == nil && info.Size() >= 1024 {
		if _, err := f.Seek(-1024, io.SeekEnd); err != nil {
			log.Warnf("Failed to seek in tar file, skipping %q: %v", tarPath, err)
			return 0
		}
	}

	tw := tar.NewWriter(f)
	n := 0
	for _, path := range paths {
		if err := addFile(tw, path); err != nil {
			log.Warnf("Failed to archive %q: %v", path, err)
			continue
		}
		n++
	}
	if err := tw.Close(); err != nil {
		log.Warnf("Failed to finalize tar file %q: %v", tarPath, err)
	}
	return n
}

// addFile writes one file into the archive under its base name.
func addFile(tw *tar.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(path)

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}

// pruneArchived fixes permissions on every tar under dir, then deletes the
// originals of files listed in each tar (from the tar's own directory).
func pruneArchived(ctx context.Context, dir string, log *logrus.Entry) (int, error) {
	var tars []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".tar") {
			tars = append(tars, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(tars)

	pruned := 0
	for _, tarPath := range tars {
		if err := ctx.Err(); err != nil {
			return pruned, err
		}
		log.Debugf("pruning originals listed in %s", tarPath)

		if err := os.Chmod(tarPath, tarPerm); err != nil {
			log.Warnf("Failed to modify tar file permissions, skipping: %v", err)
		}

		members, err := listMembers(tarPath)
		if err != nil {
			log.Warnf("Failed to read tar file %q, skipping: %v", tarPath, err)
			continue
		}

		parent := filepath.Dir(tarPath)
		for _, name := range members {
			target := filepath.Join(parent, name)
			if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.Warnf("Failed to delete %q, skipping: %v", target, err)
				continue
			} else if err == nil {
				pruned++
			}
		}
	}
	return pruned, nil
}

func listMembers(tarPath string) ([]string, error) {
	f, err := os.Open(tarPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg {
			names = append(names, hdr.Name)
		}
	}
	return names, nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
