package match

// Options configures a grading run. Every knob is explicit; the engine
// never reads the environment. Callers that want env-driven defaults
// resolve them before constructing Options.
type Options struct {
	// PageTolerance is informational at the chunk layer: the IoU check
	// already encodes slack via overlap, so there is no additive page
	// allowance beyond what the threshold permits.
	PageTolerance int

	// IoUThreshold is the minimum interval overlap for a chunk pairing.
	IoUThreshold float64

	// FuzzyTitles enables fuzzy title matching; when false, titles must be
	// equal after lowercasing and trimming.
	FuzzyTitles bool

	// TitleMaxDistance is the base edit-distance budget for fuzzy titles.
	TitleMaxDistance int

	// EntityPageTolerance is the allowed |page difference| when both
	// entities carry a location page.
	EntityPageTolerance int

	// StrictEntityAssignment makes entity scoring consume each gold entity
	// at most once (greedy one-to-one, like chunk matching). The default
	// lenient mode lets one gold entity satisfy several predictions, which
	// can inflate precision but matches established grading behavior.
	StrictEntityAssignment bool
}

// DefaultOptions returns the standard grading configuration.
func DefaultOptions() Options {
	return Options{
		PageTolerance:       1,
		IoUThreshold:        0.7,
		FuzzyTitles:         true,
		TitleMaxDistance:    3,
		EntityPageTolerance: 1,
	}
}
