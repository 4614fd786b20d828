package cmd

import (
	"github.com/spf13/cobra"
	"github.com/specgrade/specgrade/internal/gradecmd"
)

func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grading tools for parser output",
		Long: `Grading tools for measuring the accuracy of document parsers.

Supports grading prediction files against ground-truth annotations, running
registered extractors over raw documents, and inspecting annotation files.`,
	}

	cmd.AddCommand(gradecmd.NewRunCmd())
	cmd.AddCommand(gradecmd.NewInspectCmd())

	return cmd
}
