package extractor

import (
	"strings"
	"testing"

	"github.com/specgrade/specgrade/internal/match"
)

func TestTOCRegexExtractor_Chunks(t *testing.T) {
	input := strings.Join([]string{
		"TABLE OF CONTENTS",
		"",
		"Fire Piping System Overview .......... 1-3",
		"Material Specifications ... 4-6",
		"Standpipe System 42",
		"just prose with no page reference",
	}, "\n")

	doc, err := (&TOCRegexExtractor{}).Extract(strings.NewReader(input), "toc.txt")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	expected := []match.Chunk{
		{Title: "Fire Piping System Overview", StartPage: 1, EndPage: 3},
		{Title: "Material Specifications", StartPage: 4, EndPage: 6},
		{Title: "Standpipe System", StartPage: 42, EndPage: 42},
	}
	if len(doc.Chunks) != len(expected) {
		t.Fatalf("got %d chunks, want %d: %+v", len(doc.Chunks), len(expected), doc.Chunks)
	}
	for i, want := range expected {
		if doc.Chunks[i] != want {
			t.Errorf("chunk %d = %+v, want %+v", i, doc.Chunks[i], want)
		}
	}
}

func TestTOCRegexExtractor_Entities(t *testing.T) {
	input := strings.Join([]string{
		"SECTION 21 13 13 - WET-PIPE SPRINKLER SYSTEMS",
		`Provide 2" Schedule 40 galvanized steel pipe throughout.`,
		"\fRisers shall be 4 Schedule STD black steel pipe.",
	}, "\n")

	doc, err := (&TOCRegexExtractor{}).Extract(strings.NewReader(input), "spec.txt")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(doc.Entities) != 2 {
		t.Fatalf("got %d entities, want 2: %+v", len(doc.Entities), doc.Entities)
	}

	first := doc.Entities[0]
	if first.Type != "pipe" || first.Material != "galvanized steel" ||
		first.Diameter != "2" || first.Schedule != "40" || first.LocationPage != 1 {
		t.Errorf("unexpected first entity: %+v", first)
	}

	second := doc.Entities[1]
	if second.Schedule != "STD" || second.LocationPage != 2 {
		t.Errorf("form feed should advance page: %+v", second)
	}
}

func TestRegistry(t *testing.T) {
	ext, err := New("tocregex")
	if err != nil {
		t.Fatalf("New(tocregex) returned error: %v", err)
	}
	if ext == nil {
		t.Fatal("New(tocregex) returned nil extractor")
	}

	if _, err := New("nope"); err == nil {
		t.Error("unknown extractor name should error")
	}

	names := Names()
	found := false
	for _, n := range names {
		if n == "tocregex" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() = %v, missing tocregex", names)
	}
}
