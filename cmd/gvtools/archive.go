package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gigavision/gvtools/internal/workflows"
	"github.com/gigavision/gvtools/pkg/pipeline"
)

func newArchiveCommand() *cobra.Command {
	var req pipeline.ArchiveRequest

	cmd := &cobra.Command{
		Use:   "archive [flags] CAMERA_DIR...",
		Short: "Tar dated images by date bucket and delete the archived originals",
		Long: `Archive tars the timestamped images under each camera directory into
per-date tar files placed next to the images, fixes the tar permissions, then
deletes the originals that are listed in a tar. Only files whose name carries
a date stamp are touched. Saves inodes on gigavision directories.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Dirs = args

			runID := uuid.New().String()
			log := logrus.WithField("run_id", runID)

			runner := workflows.NewWorkflowRunner()
			runner.Register(pipeline.JobArchive, workflows.NewArchiveWorkflow(req))

			wctx := &workflows.WorkflowContext{
				Ctx:   cmd.Context(),
				RunID: runID,
				Log:   log,
			}
			result, err := runner.Run(pipeline.JobArchive, wctx)
			if err != nil {
				return err
			}
			if !result.Success {
				return result.Error
			}

			fmt.Fprintf(cmd.OutOrStdout(), "archived: %v, pruned: %v\n",
				result.Outputs["archived"], result.Outputs["pruned"])
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Start, "start", "s", envDefault("START", ""),
		"start of date range to process, inclusive (YYYY_MM_DD)")
	cmd.Flags().StringVarP(&req.End, "end", "e", envDefault("END", ""),
		"end of date range to process, inclusive (YYYY_MM_DD)")

	return cmd
}
