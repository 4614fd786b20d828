package match

// Chunk is one detected structural section of a document: a title and a
// 1-based inclusive page range. The engine only reads chunks; start <= end
// is expected but verified by ValidateChunkContinuity rather than assumed.
type Chunk struct {
	Title     string `json:"title"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
}

// OverlapMetrics holds the page-range overlap measurements for one
// predicted/gold chunk pair. It exists only for the duration of a
// comparison and for diagnostic reporting.
type OverlapMetrics struct {
	IoU               float64 `json:"iou"`
	Intersection      int     `json:"intersection"`
	Union             int     `json:"union"`
	PredSize          int     `json:"pred_size"`
	GoldSize          int     `json:"gold_size"`
	SizeRatio         float64 `json:"size_ratio"`
	OverlapPercentage float64 `json:"overlap_percentage"`
}

// IntervalOverlap computes intersection-over-union and auxiliary metrics
// for two inclusive page ranges. OverlapPercentage answers "how much of the
// gold range did the prediction cover", which unlike IoU does not penalize
// over-coverage.
func IntervalOverlap(pred, gold Chunk) OverlapMetrics {
	intersectionStart := max(pred.StartPage, gold.StartPage)
	intersectionEnd := min(pred.EndPage, gold.EndPage)
	intersection := max(0, intersectionEnd-intersectionStart+1)

	predSize := pred.EndPage - pred.StartPage + 1
	goldSize := gold.EndPage - gold.StartPage + 1
	union := predSize + goldSize - intersection

	m := OverlapMetrics{
		Intersection: intersection,
		Union:        union,
		PredSize:     predSize,
		GoldSize:     goldSize,
	}
	if union > 0 {
		m.IoU = float64(intersection) / float64(union)
	}
	if goldSize > 0 {
		m.SizeRatio = float64(predSize) / float64(goldSize)
		m.OverlapPercentage = float64(intersection) / float64(goldSize)
	}
	return m
}
