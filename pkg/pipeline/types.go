package pipeline

// PreviewRequest represents a request to assemble one composite contact sheet.
type PreviewRequest struct {
	Input    string `json:"input"`     // directory or tar archive of source images
	Output   string `json:"output"`    // path the composite raster is written to
	Dims     string `json:"dims"`      // grid size in sub-images, ROWSxCOLS
	CellSize string `json:"cell_size"` // size of each sub-image in pixels, ROWSxCOLS
	Order    string `json:"order"`     // fill order: colsright, colsleft, rowsdown, rowsup
	Format   string `json:"format"`    // extension filter for input images
}

// ArchiveRequest represents a request to tar and prune camera directories.
type ArchiveRequest struct {
	Dirs  []string `json:"dirs"`
	Start string   `json:"start,omitempty"` // inclusive YYYY_MM_DD lower bound
	End   string   `json:"end,omitempty"`   // inclusive YYYY_MM_DD upper bound
}

// JobType constants
const (
	JobPreview = "preview"
	JobArchive = "archive"
)

// Flag defaults shared by the CLI and tests.
const (
	DefaultCellSize = "200x300"
	DefaultOrder    = "colsright"
	DefaultFormat   = "jpg"
)
