package gradecmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specgrade/specgrade/internal/groundtruth"
	"github.com/specgrade/specgrade/internal/match"
)

func TestGradeDocument(t *testing.T) {
	gold := &groundtruth.Document{
		Chunks: []match.Chunk{
			{Title: "Fire Piping System Overview", StartPage: 1, EndPage: 3},
			{Title: "Material Specifications", StartPage: 4, EndPage: 6},
		},
		Entities: []match.Entity{
			{Type: "pipe", Material: "galvanized steel", Diameter: "2", Schedule: "40", LocationPage: 5},
		},
	}
	predicted := &groundtruth.Document{
		Chunks: []match.Chunk{
			{Title: "Fire Piping System Overview", StartPage: 1, EndPage: 3},
			{Title: "Material Specs", StartPage: 4, EndPage: 6},
		},
		Entities: []match.Entity{
			{Type: "pipe", Material: "Galvanized-Steel", Diameter: "2\"", Schedule: "40", LocationPage: 6},
		},
	}

	result := gradeDocument("doc.json", predicted, gold, match.DefaultOptions())
	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if !result.Chunks.Matched {
		t.Errorf("chunks should match, reason: %s", result.Chunks.Reason)
	}
	if result.Entities.F1 != 1 {
		t.Errorf("entities F1 = %v, want 1", result.Entities.F1)
	}
}

func TestGradeDocument_MalformedEntityFailsDocumentOnly(t *testing.T) {
	gold := &groundtruth.Document{
		Entities: []match.Entity{{Type: "pipe", Diameter: "bogus"}},
	}
	predicted := &groundtruth.Document{
		Entities: []match.Entity{{Type: "pipe", Diameter: "2"}},
	}

	result := gradeDocument("doc.json", predicted, gold, match.DefaultOptions())
	if result.Error == "" {
		t.Fatal("expected document-level error for malformed diameter")
	}
}

func TestExecuteRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	goldPath := filepath.Join(dir, "gold.json")
	goldJSON := `{
		"chunks": [
			{"title": "Fire Piping System Overview", "start_page": 1, "end_page": 3},
			{"title": "Material Specifications", "start_page": 4, "end_page": 6}
		],
		"entities": [
			{"type": "pipe", "material": "galvanized steel", "diameter": 2, "schedule": "40", "location_page": 5}
		]
	}`
	if err := os.WriteFile(goldPath, []byte(goldJSON), 0644); err != nil {
		t.Fatal(err)
	}

	predPath := filepath.Join(dir, "pred.json")
	predJSON := `{
		"chunks": [
			{"title": "Fire Piping System Overview", "start_page": 1, "end_page": 3},
			{"title": "Material Specs", "start_page": 4, "end_page": 6}
		],
		"entities": [
			{"type": "pipe", "material": "Galvanized Steel", "diameter": "2\"", "schedule": "40", "location_page": 5}
		]
	}`
	if err := os.WriteFile(predPath, []byte(predJSON), 0644); err != nil {
		t.Fatal(err)
	}

	outJSON := filepath.Join(dir, "out.json")
	err := executeRun(runParams{
		predictedPath: predPath,
		goldPath:      goldPath,
		outputJSON:    outJSON,
		opts:          match.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("executeRun returned error: %v", err)
	}
	if _, err := os.Stat(outJSON); err != nil {
		t.Errorf("expected JSON results file: %v", err)
	}
}

func TestExecuteRun_ExtractorInput(t *testing.T) {
	dir := t.TempDir()

	goldPath := filepath.Join(dir, "gold.json")
	goldJSON := `{"chunks": [{"title": "Standpipe System", "start_page": 42, "end_page": 42}]}`
	if err := os.WriteFile(goldPath, []byte(goldJSON), 0644); err != nil {
		t.Fatal(err)
	}

	inputPath := filepath.Join(dir, "toc.txt")
	if err := os.WriteFile(inputPath, []byte("Standpipe System .... 42\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := executeRun(runParams{
		inputPath:     inputPath,
		extractorName: "tocregex",
		goldPath:      goldPath,
		opts:          match.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("executeRun returned error: %v", err)
	}
}
