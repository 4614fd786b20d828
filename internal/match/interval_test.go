package match

import (
	"math"
	"testing"
)

func TestIntervalOverlap(t *testing.T) {
	tests := []struct {
		name         string
		pred, gold   Chunk
		intersection int
		union        int
		iou          float64
		sizeRatio    float64
		overlapPct   float64
	}{
		{
			name:         "partial overlap",
			pred:         Chunk{StartPage: 1, EndPage: 5},
			gold:         Chunk{StartPage: 3, EndPage: 7},
			intersection: 3,
			union:        7,
			iou:          3.0 / 7.0,
			sizeRatio:    1.0,
			overlapPct:   3.0 / 5.0,
		},
		{
			name:         "identical ranges",
			pred:         Chunk{StartPage: 4, EndPage: 6},
			gold:         Chunk{StartPage: 4, EndPage: 6},
			intersection: 3,
			union:        3,
			iou:          1.0,
			sizeRatio:    1.0,
			overlapPct:   1.0,
		},
		{
			name:         "disjoint ranges",
			pred:         Chunk{StartPage: 1, EndPage: 2},
			gold:         Chunk{StartPage: 5, EndPage: 8},
			intersection: 0,
			union:        6,
			iou:          0.0,
			sizeRatio:    0.5,
			overlapPct:   0.0,
		},
		{
			name:         "single page ranges",
			pred:         Chunk{StartPage: 3, EndPage: 3},
			gold:         Chunk{StartPage: 3, EndPage: 3},
			intersection: 1,
			union:        1,
			iou:          1.0,
			sizeRatio:    1.0,
			overlapPct:   1.0,
		},
		{
			name:         "prediction covers more than gold",
			pred:         Chunk{StartPage: 1, EndPage: 10},
			gold:         Chunk{StartPage: 4, EndPage: 6},
			intersection: 3,
			union:        10,
			iou:          0.3,
			sizeRatio:    10.0 / 3.0,
			overlapPct:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := IntervalOverlap(tt.pred, tt.gold)
			if m.Intersection != tt.intersection {
				t.Errorf("Intersection = %d, want %d", m.Intersection, tt.intersection)
			}
			if m.Union != tt.union {
				t.Errorf("Union = %d, want %d", m.Union, tt.union)
			}
			if math.Abs(m.IoU-tt.iou) > 1e-9 {
				t.Errorf("IoU = %v, want %v", m.IoU, tt.iou)
			}
			if math.Abs(m.SizeRatio-tt.sizeRatio) > 1e-9 {
				t.Errorf("SizeRatio = %v, want %v", m.SizeRatio, tt.sizeRatio)
			}
			if math.Abs(m.OverlapPercentage-tt.overlapPct) > 1e-9 {
				t.Errorf("OverlapPercentage = %v, want %v", m.OverlapPercentage, tt.overlapPct)
			}
		})
	}
}

func TestIntervalOverlap_DegenerateRanges(t *testing.T) {
	// Inverted ranges have non-positive size; the scorer must not divide
	// by zero or return negative metrics.
	pred := Chunk{StartPage: 5, EndPage: 4}
	gold := Chunk{StartPage: 7, EndPage: 6}

	m := IntervalOverlap(pred, gold)
	if m.IoU != 0 {
		t.Errorf("IoU = %v, want 0 for degenerate ranges", m.IoU)
	}
	if m.SizeRatio != 0 || m.OverlapPercentage != 0 {
		t.Errorf("expected zero ratios for non-positive gold size, got %+v", m)
	}
}
