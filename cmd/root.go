package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "specgrade",
		Short: "Grading engine for document chunking and entity extraction",
		Long: `Specgrade grades the output of document-chunking and entity-extraction
pipelines against ground-truth annotations.

It aligns predicted structural sections (titled page ranges) and typed
specification entities against gold-standard records, and reduces each
alignment to match verdicts and precision/recall/F1 scores.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newGradeCmd())

	return cmd
}
