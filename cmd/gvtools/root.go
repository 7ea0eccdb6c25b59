package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "gvtools",
		Short: "Camera-trap image utilities: contact-sheet previews and tar archiving",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(os.Stderr)
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "use verbose output")

	cmd.AddCommand(newPreviewCommand())
	cmd.AddCommand(newArchiveCommand())
	return cmd
}

// envDefault returns the GVTOOLS_<key> environment value, or fallback when
// unset. Values may come from a .env file loaded at startup.
func envDefault(key, fallback string) string {
	if v := os.Getenv("GVTOOLS_" + key); v != "" {
		return v
	}
	return fallback
}
