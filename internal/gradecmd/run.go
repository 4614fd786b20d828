package gradecmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/specgrade/specgrade/internal/extractor"
	"github.com/specgrade/specgrade/internal/groundtruth"
	"github.com/specgrade/specgrade/internal/match"
	"github.com/specgrade/specgrade/internal/report"
)

type runParams struct {
	predictedPath string
	goldPath      string
	inputPath     string
	extractorName string
	outputJSON    string
	outputYAML    string
	opts          match.Options
}

func executeRun(p runParams) error {
	slog.Info("Starting grading run",
		"gold", p.goldPath,
		"iou_threshold", p.opts.IoUThreshold,
		"fuzzy_titles", p.opts.FuzzyTitles)

	gold, err := groundtruth.NewLoader(p.goldPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load gold annotations: %w", err)
	}
	slog.Info("Gold annotations loaded", "chunks", len(gold.Chunks), "entities", len(gold.Entities))

	predicted, err := loadPredicted(p)
	if err != nil {
		return fmt.Errorf("failed to load predictions: %w", err)
	}
	slog.Info("Predictions loaded", "chunks", len(predicted.Chunks), "entities", len(predicted.Entities))

	result := gradeDocument(p.goldPath, predicted, gold, p.opts)
	summary := report.Aggregate([]report.DocumentResult{result}, p.opts)
	summary.Print()

	if p.outputJSON != "" {
		if err := summary.SaveJSON(p.outputJSON); err != nil {
			return err
		}
		slog.Info("Saved JSON results", "path", p.outputJSON)
	}
	if p.outputYAML != "" {
		if err := summary.SaveYAML(p.outputYAML); err != nil {
			return err
		}
		slog.Info("Saved YAML results", "path", p.outputYAML)
	}

	return nil
}

// loadPredicted reads the predicted side either from an annotation file or
// by running a registered extractor over a raw input document.
func loadPredicted(p runParams) (*groundtruth.Document, error) {
	if p.inputPath != "" {
		ext, err := extractor.New(p.extractorName)
		if err != nil {
			return nil, err
		}
		file, err := os.Open(p.inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open input document: %w", err)
		}
		defer file.Close()
		slog.Info("Extracting predictions", "extractor", p.extractorName, "input", p.inputPath)
		return ext.Extract(file, p.inputPath)
	}
	return groundtruth.NewLoader(p.predictedPath).Load()
}

func gradeDocument(name string, predicted, gold *groundtruth.Document, opts match.Options) report.DocumentResult {
	start := time.Now()
	result := report.DocumentResult{Name: name}

	result.Chunks = match.MatchChunkSets(predicted.Chunks, gold.Chunks, opts)

	score, err := match.ScoreEntities(predicted.Entities, gold.Entities, opts)
	if err != nil {
		// A malformed record fails this document, never the whole batch.
		result.Error = err.Error()
	} else {
		result.Entities = score
	}

	result.ProcessingTime = time.Since(start)
	return result
}
