package match

import "testing"

func TestFuzzyTitleMatch(t *testing.T) {
	tests := []struct {
		name     string
		title1   string
		title2   string
		expected bool
	}{
		{"exact", "Fire Piping System", "Fire Piping System", true},
		{"case insensitive", "FIRE PIPING system", "fire piping SYSTEM", true},
		{"abbreviation", "Material Specs", "Material Specifications", true},
		{"punctuation variance", "Zone 1 - East Wing", "Zone 1 East Wing", true},
		{"small edit distance", "Instalation Requirements", "Installation Requirements", true},
		{"unrelated", "System Overview", "Completely Different", false},
		{"empty vs empty", "", "", true},
		{"whitespace trimmed", "  Overview  ", "Overview", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FuzzyTitleMatch(tt.title1, tt.title2, 3)
			if got != tt.expected {
				t.Errorf("FuzzyTitleMatch(%q, %q) = %v, want %v", tt.title1, tt.title2, got, tt.expected)
			}
		})
	}
}

func TestFuzzyTitleMatch_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Material Specs", "Material Specifications"},
		{"System Overview", "Completely Different"},
	}
	for _, p := range pairs {
		ab := FuzzyTitleMatch(p[0], p[1], 3)
		ba := FuzzyTitleMatch(p[1], p[0], 3)
		if ab != ba {
			t.Errorf("FuzzyTitleMatch not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestFuzzyTitleMatch_LengthScaledThreshold(t *testing.T) {
	// A long title pair with more than maxDistance edits but under 20% of
	// the longer length should still match.
	a := "General Fire Suppression System Installation Requirements"
	b := "Jeneral Fire Supression Sistem Instalation Requirments"
	if !FuzzyTitleMatch(a, b, 3) {
		t.Errorf("expected long titles with proportionally small edits to match")
	}
}
