package main

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gigavision/gvtools/internal/storage"
	"github.com/gigavision/gvtools/internal/workflows"
	"github.com/gigavision/gvtools/pkg/pipeline"
)

func newPreviewCommand() *cobra.Command {
	var req pipeline.PreviewRequest

	cmd := &cobra.Command{
		Use:   "preview [flags] INPUT",
		Short: "Stitch timestamped sub-images into one composite contact sheet",
		Long: `Preview assembles a directory or tar archive of individually named
camera-trap images into a single composite image. Each filename carries the
camera name, a timestamp and a 1-based sequence number; the sequence number
selects the grid cell the image is resized into.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Input = args[0]

			runID := uuid.New().String()
			log := logrus.WithField("run_id", runID)

			sink, err := storage.NewFilesystemStorage(filepath.Dir(req.Output))
			if err != nil {
				return err
			}

			runner := workflows.NewWorkflowRunner()
			runner.Register(pipeline.JobPreview, workflows.NewPreviewWorkflow(req, sink))

			wctx := &workflows.WorkflowContext{
				Ctx:   cmd.Context(),
				RunID: runID,
				Log:   log,
			}
			result, err := runner.Run(pipeline.JobPreview, wctx)
			if err != nil {
				return err
			}
			if !result.Success {
				return result.Error
			}

			fmt.Fprintf(cmd.OutOrStdout(), "num_images: %v\n", result.Outputs["placed"])
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Dims, "dims", "d", envDefault("DIMS", ""),
		"dimension of the composite, in units of sub-images, ROWSxCOLS")
	cmd.Flags().StringVarP(&req.CellSize, "resize", "s", envDefault("RESIZE", pipeline.DefaultCellSize),
		"size of each sub-image, ROWSxCOLS")
	cmd.Flags().StringVarP(&req.Order, "order", "O", envDefault("ORDER", pipeline.DefaultOrder),
		"order in which images are taken (colsright, colsleft, rowsdown, rowsup)")
	cmd.Flags().StringVarP(&req.Format, "format", "f", envDefault("FORMAT", pipeline.DefaultFormat),
		"file format of input images")
	cmd.Flags().StringVarP(&req.Output, "output", "o", "", "output image path")
	_ = cmd.MarkFlagRequired("dims")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
