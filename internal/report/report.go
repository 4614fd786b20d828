// Package report aggregates grading results across documents and renders
// them as a console summary, JSON, or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/specgrade/specgrade/internal/match"
	"gopkg.in/yaml.v3"
)

// DocumentResult is the grading outcome for a single document.
type DocumentResult struct {
	Name           string                 `json:"name" yaml:"name"`
	Chunks         match.ChunkMatchResult `json:"chunks" yaml:"chunks"`
	Entities       match.EntityScore      `json:"entities" yaml:"entities"`
	ProcessingTime time.Duration          `json:"processing_time" yaml:"processingtime"`
	Error          string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary is the aggregate over a grading run.
type Summary struct {
	GeneratedAt    time.Time        `json:"generated_at" yaml:"generatedat"`
	Options        match.Options    `json:"options" yaml:"options"`
	TotalDocuments int              `json:"total_documents" yaml:"totaldocuments"`
	SuccessCount   int              `json:"success_count" yaml:"successcount"`
	FailureCount   int              `json:"failure_count" yaml:"failurecount"`
	ChunksMatched  int              `json:"chunks_matched" yaml:"chunksmatched"`
	MeanPrecision  float64          `json:"mean_precision" yaml:"meanprecision"`
	MeanRecall     float64          `json:"mean_recall" yaml:"meanrecall"`
	MeanF1         float64          `json:"mean_f1" yaml:"meanf1"`
	TotalTime      time.Duration    `json:"total_time" yaml:"totaltime"`
	AverageTime    time.Duration    `json:"average_time" yaml:"averagetime"`
	Results        []DocumentResult `json:"results" yaml:"results"`
}

// Aggregate reduces per-document results to a run summary.
func Aggregate(results []DocumentResult, opts match.Options) *Summary {
	s := &Summary{
		GeneratedAt:    time.Now(),
		Options:        opts,
		TotalDocuments: len(results),
		Results:        results,
	}

	var sumP, sumR, sumF1 float64
	for _, r := range results {
		s.TotalTime += r.ProcessingTime
		if r.Error != "" {
			s.FailureCount++
			continue
		}
		s.SuccessCount++
		if r.Chunks.Matched {
			s.ChunksMatched++
		}
		sumP += r.Entities.Precision
		sumR += r.Entities.Recall
		sumF1 += r.Entities.F1
	}

	if s.SuccessCount > 0 {
		n := float64(s.SuccessCount)
		s.MeanPrecision = sumP / n
		s.MeanRecall = sumR / n
		s.MeanF1 = sumF1 / n
		s.AverageTime = s.TotalTime / time.Duration(s.SuccessCount)
	}

	return s
}

// GradeLetter converts a 0-100 score to a letter grade.
func GradeLetter(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// Print writes a human-readable summary to stdout.
func (s *Summary) Print() {
	line := strings.Repeat("=", 70)
	dash := strings.Repeat("-", 70)

	fmt.Println("\n" + line)
	fmt.Println("SPECGRADE EVALUATION SUMMARY")
	fmt.Println(line)
	fmt.Printf("Generated: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Documents: %d (succeeded %d, failed %d)\n", s.TotalDocuments, s.SuccessCount, s.FailureCount)
	fmt.Printf("IoU Threshold: %.2f  Fuzzy Titles: %v\n", s.Options.IoUThreshold, s.Options.FuzzyTitles)
	fmt.Println()

	fmt.Println("CHUNK MATCHING")
	fmt.Println(dash)
	if s.SuccessCount > 0 {
		rate := float64(s.ChunksMatched) / float64(s.SuccessCount) * 100
		fmt.Printf("Matched: %d/%d (%.1f%%, grade %s)\n", s.ChunksMatched, s.SuccessCount, rate, GradeLetter(rate))
	} else {
		fmt.Println("No successful documents.")
	}
	fmt.Println()

	fmt.Println("ENTITY EXTRACTION")
	fmt.Println(dash)
	fmt.Printf("Mean Precision: %.3f (grade %s)\n", s.MeanPrecision, GradeLetter(s.MeanPrecision*100))
	fmt.Printf("Mean Recall:    %.3f (grade %s)\n", s.MeanRecall, GradeLetter(s.MeanRecall*100))
	fmt.Printf("Mean F1:        %.3f (grade %s)\n", s.MeanF1, GradeLetter(s.MeanF1*100))
	fmt.Println()

	for _, r := range s.Results {
		status := "MATCH"
		if r.Error != "" {
			status = "ERROR"
		} else if !r.Chunks.Matched {
			status = "MISMATCH"
		}
		fmt.Printf("  [%-8s] %s (P=%.2f R=%.2f F1=%.2f)\n",
			status, r.Name, r.Entities.Precision, r.Entities.Recall, r.Entities.F1)
		if r.Error != "" {
			fmt.Printf("             %s\n", r.Error)
		} else if r.Chunks.Reason != "" {
			fmt.Printf("             %s\n", r.Chunks.Reason)
		}
		for _, issue := range r.Chunks.PredictedIssues {
			fmt.Printf("             predicted: %s\n", issue)
		}
		for _, issue := range r.Chunks.GoldIssues {
			fmt.Printf("             gold: %s\n", issue)
		}
	}
	fmt.Println(line)
}

// SaveJSON writes the summary to a JSON file.
func (s *Summary) SaveJSON(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode results to JSON: %w", err)
	}
	return nil
}

// SaveYAML writes the summary to a YAML file.
func (s *Summary) SaveYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode results to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}
