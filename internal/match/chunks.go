package match

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// ChunkPair records one accepted predicted/gold pairing.
type ChunkPair struct {
	Predicted string         `json:"predicted"`
	Gold      string         `json:"gold"`
	Metrics   OverlapMetrics `json:"metrics"`
}

// ChunkMatchResult is the verdict for comparing two structural
// decompositions, with diagnostics a reviewer can act on. Continuity
// issues are advisory and never gate the verdict.
type ChunkMatchResult struct {
	Matched         bool        `json:"matched"`
	Pairs           []ChunkPair `json:"pairs,omitempty"`
	Reason          string      `json:"reason,omitempty"`
	PredictedIssues []string    `json:"predicted_issues,omitempty"`
	GoldIssues      []string    `json:"gold_issues,omitempty"`
}

// MatchChunkSets aligns predicted chunks against gold chunks one-to-one and
// reports whether the two decompositions match. Matching is greedy in
// predicted order: each predicted chunk takes the title-compatible gold
// chunk with the highest IoU at or above the threshold and removes it from
// the pool. Any predicted chunk without a winner, or any gold chunk left in
// the pool, fails the whole comparison. A chunk count mismatch fails before
// any pairing is attempted.
func MatchChunkSets(predicted, gold []Chunk, opts Options) ChunkMatchResult {
	result := ChunkMatchResult{}

	if len(predicted) != len(gold) {
		result.Reason = fmt.Sprintf("chunk count mismatch: predicted %d, expected %d", len(predicted), len(gold))
		slog.Debug("chunk comparison failed", "reason", result.Reason)
		return result
	}

	_, result.PredictedIssues = ValidateChunkContinuity(predicted)
	_, result.GoldIssues = ValidateChunkContinuity(gold)
	for _, issue := range result.PredictedIssues {
		slog.Debug("predicted chunk continuity issue", "issue", issue)
	}
	for _, issue := range result.GoldIssues {
		slog.Debug("gold chunk continuity issue", "issue", issue)
	}

	// Local pool; the caller's gold slice is never mutated.
	pool := make([]Chunk, len(gold))
	copy(pool, gold)

	for _, pred := range predicted {
		bestIdx := -1
		var bestMetrics OverlapMetrics

		for i, candidate := range pool {
			if !titlesMatch(pred.Title, candidate.Title, opts) {
				continue
			}
			m := IntervalOverlap(pred, candidate)
			if m.IoU >= opts.IoUThreshold && m.IoU > bestMetrics.IoU {
				bestIdx = i
				bestMetrics = m
			}
		}

		if bestIdx < 0 {
			result.Reason = fmt.Sprintf("no gold match for predicted chunk %q", pred.Title)
			slog.Debug("chunk comparison failed", "reason", result.Reason)
			return result
		}

		result.Pairs = append(result.Pairs, ChunkPair{
			Predicted: pred.Title,
			Gold:      pool[bestIdx].Title,
			Metrics:   bestMetrics,
		})
		slog.Debug("chunk pair accepted",
			"predicted", pred.Title,
			"gold", pool[bestIdx].Title,
			"iou", bestMetrics.IoU)
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}

	if len(pool) > 0 {
		titles := make([]string, len(pool))
		for i, c := range pool {
			titles[i] = c.Title
		}
		result.Reason = fmt.Sprintf("unmatched gold chunks: %s", strings.Join(titles, ", "))
		result.Pairs = nil
		slog.Debug("chunk comparison failed", "reason", result.Reason)
		return result
	}

	result.Matched = true
	return result
}

func titlesMatch(pred, gold string, opts Options) bool {
	if opts.FuzzyTitles {
		return FuzzyTitleMatch(pred, gold, opts.TitleMaxDistance)
	}
	return strings.ToLower(strings.TrimSpace(pred)) == strings.ToLower(strings.TrimSpace(gold))
}

// ValidateChunkContinuity checks that chunks form a plausible page
// sequence: no inverted ranges, no gaps wider than ten pages, no
// overlapping ranges. The check is advisory; callers surface the issues to
// a reviewer but do not fail matching on them.
func ValidateChunkContinuity(chunks []Chunk) (bool, []string) {
	var issues []string

	if len(chunks) == 0 {
		return true, nil
	}

	sorted := make([]Chunk, len(chunks))
	copy(sorted, chunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartPage < sorted[j].StartPage
	})

	for i, chunk := range sorted {
		if chunk.StartPage > chunk.EndPage {
			issues = append(issues, fmt.Sprintf("chunk %q: start_page (%d) > end_page (%d)",
				chunk.Title, chunk.StartPage, chunk.EndPage))
		}

		if i > 0 {
			prev := sorted[i-1]
			gap := chunk.StartPage - prev.EndPage - 1
			if gap > 10 {
				issues = append(issues, fmt.Sprintf("large gap (%d pages) between %q and %q",
					gap, prev.Title, chunk.Title))
			} else if gap < 0 {
				issues = append(issues, fmt.Sprintf("overlapping chunks (%d pages): %q and %q",
					-gap, prev.Title, chunk.Title))
			}
		}
	}

	return len(issues) == 0, issues
}
