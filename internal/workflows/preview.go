package workflows

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	_ "golang.org/x/image/tiff" // Register TIFF decoder

	"github.com/gigavision/gvtools/internal/composite"
	"github.com/gigavision/gvtools/internal/grid"
	"github.com/gigavision/gvtools/internal/naming"
	"github.com/gigavision/gvtools/internal/sources"
	"github.com/gigavision/gvtools/internal/storage"
	"github.com/gigavision/gvtools/pkg/pipeline"
)

// PreviewWorkflow assembles many camera-trap sub-images into one composite
// contact sheet. Items are processed strictly one at a time: parse the
// filename, map the sequence index to a grid cell, decode, resize, paste.
// Any per-item failure is logged and skipped; the composite raster is
// written out exactly once at the end, even when the run is interrupted or
// no item was placed at all.
type PreviewWorkflow struct {
	req  pipeline.PreviewRequest
	sink storage.RasterSink
}

// NewPreviewWorkflow creates a new composite preview workflow
func NewPreviewWorkflow(req pipeline.PreviewRequest, sink storage.RasterSink) *PreviewWorkflow {
	return &PreviewWorkflow{
		req:  req,
		sink: sink,
	}
}

// Name returns the workflow name
func (w *PreviewWorkflow) Name() string {
	return "PreviewWorkflow"
}

// Execute runs the composite assembly workflow
func (w *PreviewWorkflow) Execute(wctx *WorkflowContext) (*WorkflowResult, error) {
	dims, cell, order, err := w.validateRequest()
	if err != nil {
		wctx.Log.Errorf("Validation failed: %v", err)
		return &WorkflowResult{
			Success: false,
			Error:   fmt.Errorf("%w: %v", ErrInvalidRequest, err),
		}, err
	}

	wctx.Log.Infof("input: %s", w.req.Input)
	wctx.Log.Infof("dimensions: %s grid of %s cells", dims, cell)

	canvas := composite.NewCanvas(dims, cell)

	dir, names, cleanup, err := sources.Gather(wctx.Ctx, w.req.Input, w.req.Format)
	if err != nil {
		return &WorkflowResult{
			Success: false,
			Error:   fmt.Errorf("gather sources: %w", err),
		}, err
	}
	defer cleanup()

	reader, err := storage.NewFilesystemStorage(dir)
	if err != nil {
		return &WorkflowResult{
			Success: false,
			Error:   err,
		}, err
	}

	placed := 0
	skipped := 0
	for _, name := range names {
		// Cancellation is only checked between items; an in-flight
		// decode or resize always finishes.
		if err := wctx.Ctx.Err(); err != nil {
			wctx.Log.Warnf("Terminating early: %v", err)
			break
		}

		pos, err := w.place(wctx, reader, canvas, dims, cell, order, name)
		if err != nil {
			skipped++
			wctx.Log.Warnf("Skipping %s: %v", name, err)
			continue
		}
		placed++
		wctx.Log.Debugf("inserted %s at (%d,%d)", name, pos.Row, pos.Col)
	}

	// The raster goes out even after cancellation or a run with zero
	// placements; a partial or all-black sheet is still valid output.
	if err := w.sink.WriteRaster(context.WithoutCancel(wctx.Ctx), w.outputKey(), canvas.Image()); err != nil {
		wctx.Log.Errorf("Failed to write composite: %v", err)
		return &WorkflowResult{
			Success: false,
			Error:   fmt.Errorf("write composite: %w", err),
		}, err
	}

	wctx.Log.Infof("num_images: %d (%d skipped)", placed, skipped)

	return &WorkflowResult{
		Success: true,
		Outputs: map[string]interface{}{
			"output":  w.req.Output,
			"placed":  placed,
			"skipped": skipped,
		},
	}, nil
}

// place runs the per-item pipeline for one candidate file and reports the
// cell it landed in. Every error return is a per-item skip, never fatal.
func (w *PreviewWorkflow) place(wctx *WorkflowContext, reader storage.Reader, canvas *composite.Canvas,
	dims, cell grid.Dims, order grid.Order, name string) (grid.Position, error) {

	meta, err := naming.Parse(name)
	if err != nil {
		return grid.Position{}, err
	}

	pos, err := grid.PositionFor(meta.Index, dims, order)
	if err != nil {
		return grid.Position{}, err
	}

	exists, err := reader.Exists(wctx.Ctx, name)
	if err != nil {
		return grid.Position{}, err
	}
	if !exists {
		return grid.Position{}, fmt.Errorf("source content not found: %s", name)
	}

	rc, err := reader.GetReader(wctx.Ctx, name)
	if err != nil {
		return grid.Position{}, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return grid.Position{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	sub, err := composite.Downsize(img, cell, 0)
	if err != nil {
		return grid.Position{}, err
	}

	if err := canvas.Paste(pos, sub); err != nil {
		return grid.Position{}, err
	}
	return pos, nil
}

func (w *PreviewWorkflow) validateRequest() (dims, cell grid.Dims, order grid.Order, err error) {
	dims, err = grid.ParseDims(w.req.Dims)
	if err != nil {
		return
	}
	cell, err = grid.ParseDims(w.req.CellSize)
	if err != nil {
		return
	}
	order, err = grid.ParseOrder(w.req.Order)
	if err != nil {
		return
	}
	// Orders without a mapping formula are a configuration error up
	// front, not a per-item surprise.
	if _, perr := grid.PositionFor(0, grid.Dims{Rows: 1, Cols: 1}, order); perr != nil {
		err = perr
		return
	}
	if w.req.Format == "" {
		err = fmt.Errorf("input format must not be empty")
		return
	}
	if !storage.SupportedOutput(w.req.Output) {
		err = fmt.Errorf("%w: %q", storage.ErrUnknownFormat, w.req.Output)
		return
	}
	return
}

func (w *PreviewWorkflow) outputKey() string {
	// The sink is rooted at the output's directory.
	return filepath.Base(w.req.Output)
}
