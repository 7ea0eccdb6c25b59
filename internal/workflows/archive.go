package workflows

import (
	"fmt"

	"github.com/gigavision/gvtools/internal/archive"
	"github.com/gigavision/gvtools/pkg/pipeline"
)

// ArchiveWorkflow tars dated camera-trap images by date bucket and prunes
// the archived originals.
type ArchiveWorkflow struct {
	req pipeline.ArchiveRequest
}

// NewArchiveWorkflow creates a new archive-and-prune workflow
func NewArchiveWorkflow(req pipeline.ArchiveRequest) *ArchiveWorkflow {
	return &ArchiveWorkflow{
		req: req,
	}
}

// Name returns the workflow name
func (w *ArchiveWorkflow) Name() string {
	return "ArchiveWorkflow"
}

// Execute runs the archive workflow
func (w *ArchiveWorkflow) Execute(wctx *WorkflowContext) (*WorkflowResult, error) {
	if err := w.validateRequest(); err != nil {
		wctx.Log.Errorf("Validation failed: %v", err)
		return &WorkflowResult{
			Success: false,
			Error:   fmt.Errorf("%w: %v", ErrInvalidRequest, err),
		}, err
	}

	stats, err := archive.Run(wctx.Ctx, w.req.Dirs, w.req.Start, w.req.End, wctx.Log)
	if err != nil {
		wctx.Log.Errorf("Archive run failed: %v", err)
		return &WorkflowResult{
			Success: false,
			Error:   err,
		}, err
	}

	wctx.Log.Infof("archived %d file(s) into %d tarball(s), pruned %d original(s)",
		stats.Archived, stats.Tarballs, stats.Pruned)

	return &WorkflowResult{
		Success: true,
		Outputs: map[string]interface{}{
			"archived": stats.Archived,
			"tarballs": stats.Tarballs,
			"pruned":   stats.Pruned,
		},
	}, nil
}

func (w *ArchiveWorkflow) validateRequest() error {
	if len(w.req.Dirs) == 0 {
		return fmt.Errorf("at least one camera directory is required")
	}
	if w.req.Start != "" && w.req.End != "" && w.req.End < w.req.Start {
		return fmt.Errorf("end date must not be less than start date")
	}
	return nil
}
