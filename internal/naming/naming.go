package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadName is returned when a filename does not follow the camera naming convention.
var ErrBadName = errors.New("filename does not match camera naming convention")

// Camera-trap files are named
// <camera>_<YYYY_MM_DD_HH_MM_SS with one or more extra two-digit groups>_<sequence>.<ext>
// e.g. GV01_2018_10_25_11_30_00_01_5.jpg
var namePattern = regexp.MustCompile(`(?i)^(\S+)_(\d{4}_\d{2}_\d{2}_\d{2}_\d{2}_\d{2}(?:_\d{2})+)_(\d+)\.(jpg|jpeg|tif|tiff)$`)

// Meta is the metadata embedded in one source image filename.
type Meta struct {
	Camera    string // camera name, everything before the timestamp
	Timestamp string // underscore-separated numeric groups, lexicographically sortable
	Index     int    // zero-based sequence index (1-based in the filename)
	Ext       string // extension, normalized to lower case
}

// Parse extracts the metadata embedded in the base name of path.
// The sequence number in the name is 1-based; the returned Index is 0-based.
func Parse(path string) (Meta, error) {
	name := filepath.Base(path)
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return Meta{}, fmt.Errorf("%w: %q", ErrBadName, name)
	}

	seq, err := strconv.Atoi(m[3])
	if err != nil || seq < 1 {
		return Meta{}, fmt.Errorf("%w: %q: bad sequence number %q", ErrBadName, name, m[3])
	}

	return Meta{
		Camera:    m[1],
		Timestamp: m[2],
		Index:     seq - 1,
		Ext:       strings.ToLower(m[4]),
	}, nil
}
