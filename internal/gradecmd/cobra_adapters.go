package gradecmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/specgrade/specgrade/internal/match"
)

// NewRunCmd creates the run command for grading predictions against gold
// annotations.
func NewRunCmd() *cobra.Command {
	var p runParams
	var strictEntities bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Grade predicted chunks and entities against gold annotations",
		Long: `Grade a document-parsing run against ground-truth annotations.

The predicted side comes either from a prediction file (--predicted) or from a
registered extractor applied to a raw text document (--extractor with --input).
The gold side is a ground-truth annotation file (.json, .jsonl, or .parquet).`,
		Example: `  # Grade a prediction file against ground truth
  specgrade grade run --predicted out.json --gold building_a.fire.json

  # Extract predictions from a text document first
  specgrade grade run --extractor tocregex --input toc.txt --gold building_a.fire.json

  # Stricter overlap requirement, exact titles only
  specgrade grade run --predicted out.json --gold gt.json --iou 0.9 --fuzzy=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if p.predictedPath == "" && p.inputPath == "" {
				return fmt.Errorf("either --predicted or --input is required")
			}
			if p.goldPath == "" {
				return fmt.Errorf("--gold is required")
			}
			p.opts.StrictEntityAssignment = strictEntities
			return executeRun(p)
		},
	}

	defaults := defaultOptionsFromEnv()
	cmd.Flags().StringVar(&p.predictedPath, "predicted", "", "Path to predicted annotations (.json, .jsonl, or .parquet)")
	cmd.Flags().StringVar(&p.goldPath, "gold", "", "Path to gold annotations (.json, .jsonl, or .parquet)")
	cmd.Flags().StringVar(&p.inputPath, "input", "", "Raw text document to extract predictions from")
	cmd.Flags().StringVar(&p.extractorName, "extractor", "tocregex", "Named extractor for --input")
	cmd.Flags().StringVar(&p.outputJSON, "output-json", "", "Path to output JSON results file")
	cmd.Flags().StringVar(&p.outputYAML, "output-yaml", "", "Path to output YAML results file")
	cmd.Flags().Float64Var(&p.opts.IoUThreshold, "iou", defaults.IoUThreshold, "Minimum IoU for a chunk pairing")
	cmd.Flags().BoolVar(&p.opts.FuzzyTitles, "fuzzy", defaults.FuzzyTitles, "Fuzzy title matching")
	cmd.Flags().IntVar(&p.opts.TitleMaxDistance, "max-distance", defaults.TitleMaxDistance, "Base edit-distance budget for fuzzy titles")
	cmd.Flags().IntVar(&p.opts.PageTolerance, "page-tolerance", defaults.PageTolerance, "Chunk page tolerance (informational)")
	cmd.Flags().IntVar(&p.opts.EntityPageTolerance, "entity-tolerance", defaults.EntityPageTolerance, "Allowed entity location page difference")
	cmd.Flags().BoolVar(&strictEntities, "strict-entities", false, "One-to-one entity assignment instead of lenient matching")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

// NewInspectCmd creates the inspect command for examining annotation files.
func NewInspectCmd() *cobra.Command {
	var file string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect an annotation file and validate chunk continuity",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			return executeInspect(file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Annotation file to inspect")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// defaultOptionsFromEnv resolves flag defaults from the environment so CI
// can pin thresholds without repeating flags. The engine itself only ever
// sees the explicit Options value.
func defaultOptionsFromEnv() match.Options {
	opts := match.DefaultOptions()
	if v := os.Getenv("SPECGRADE_IOU_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.IoUThreshold = f
		}
	}
	if v := os.Getenv("SPECGRADE_FUZZY_TITLES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.FuzzyTitles = b
		}
	}
	if v := os.Getenv("SPECGRADE_TITLE_MAX_DISTANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.TitleMaxDistance = n
		}
	}
	if v := os.Getenv("SPECGRADE_ENTITY_PAGE_TOLERANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.EntityPageTolerance = n
		}
	}
	return opts
}
