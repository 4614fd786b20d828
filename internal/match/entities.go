package match

import "fmt"

// Entity is one detected specification item (a pipe, fitting, valve, and
// so on). Zero values mean the field was not specified: pages are 1-based
// so a LocationPage of 0 is never real, and Diameter carries the raw text
// form ("1-1/2\"", "2 inch", "0.75") until normalization. The engine only
// reads entities.
type Entity struct {
	ID           string `json:"id,omitempty"`
	Type         string `json:"type,omitempty"`
	Material     string `json:"material,omitempty"`
	Diameter     string `json:"diameter,omitempty"`
	Schedule     string `json:"schedule,omitempty"`
	LocationPage int    `json:"location_page,omitempty"`
}

// EntityScore holds precision, recall, and F1 for one entity comparison.
type EntityScore struct {
	Precision     float64 `json:"precision"`
	Recall        float64 `json:"recall"`
	F1            float64 `json:"f1"`
	TruePositives int     `json:"true_positives"`
}

// normalEntity is an Entity after normalization, ready for comparison.
type normalEntity struct {
	typ          string
	material     string
	schedule     string
	diameter     float64
	hasDiameter  bool
	locationPage int
}

// ScoreEntities grades predicted entities against gold entities. Both
// sides empty is vacuously perfect; one side empty scores zero. Otherwise
// every entity is normalized (material, diameter, location page) and each
// predicted entity counts a true positive on the first gold entity it
// matches. By default a gold entity stays available for later predictions;
// Options.StrictEntityAssignment consumes it instead. A *FormatError from
// normalization aborts the comparison so malformed records are reported
// rather than silently scored.
func ScoreEntities(predicted, gold []Entity, opts Options) (EntityScore, error) {
	if len(predicted) == 0 && len(gold) == 0 {
		return EntityScore{Precision: 1, Recall: 1, F1: 1}, nil
	}
	if len(predicted) == 0 || len(gold) == 0 {
		return EntityScore{}, nil
	}

	normPred, err := normalizeEntities(predicted)
	if err != nil {
		return EntityScore{}, fmt.Errorf("predicted entities: %w", err)
	}
	normGold, err := normalizeEntities(gold)
	if err != nil {
		return EntityScore{}, fmt.Errorf("gold entities: %w", err)
	}

	consumed := make([]bool, len(normGold))
	truePositives := 0
	for _, p := range normPred {
		for i, g := range normGold {
			if opts.StrictEntityAssignment && consumed[i] {
				continue
			}
			if entitiesMatch(p, g, opts.EntityPageTolerance) {
				consumed[i] = true
				truePositives++
				break
			}
		}
	}

	score := EntityScore{TruePositives: truePositives}
	score.Precision = float64(truePositives) / float64(len(predicted))
	score.Recall = float64(truePositives) / float64(len(gold))
	if score.Precision+score.Recall > 0 {
		score.F1 = 2 * score.Precision * score.Recall / (score.Precision + score.Recall)
	}
	return score, nil
}

// EntitiesMatch reports whether two entities denote the same item. Fields
// are compared only when both sides define them; a field missing on either
// side is skipped, not failed. Location pages must agree within a fixed
// tolerance of one page.
func EntitiesMatch(e1, e2 Entity) (bool, error) {
	n1, err := normalizeEntity(e1)
	if err != nil {
		return false, err
	}
	n2, err := normalizeEntity(e2)
	if err != nil {
		return false, err
	}
	return entitiesMatch(n1, n2, DefaultOptions().EntityPageTolerance), nil
}

func entitiesMatch(e1, e2 normalEntity, pageTolerance int) bool {
	if e1.typ != "" && e2.typ != "" && e1.typ != e2.typ {
		return false
	}
	if e1.material != "" && e2.material != "" && e1.material != e2.material {
		return false
	}
	if e1.schedule != "" && e2.schedule != "" && e1.schedule != e2.schedule {
		return false
	}
	if e1.hasDiameter && e2.hasDiameter && e1.diameter != e2.diameter {
		return false
	}
	if e1.locationPage > 0 && e2.locationPage > 0 {
		diff := e1.locationPage - e2.locationPage
		if diff < 0 {
			diff = -diff
		}
		if diff > pageTolerance {
			return false
		}
	}
	return true
}

func normalizeEntities(entities []Entity) ([]normalEntity, error) {
	normalized := make([]normalEntity, len(entities))
	for i, e := range entities {
		n, err := normalizeEntity(e)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.ID, err)
		}
		normalized[i] = n
	}
	return normalized, nil
}

func normalizeEntity(e Entity) (normalEntity, error) {
	n := normalEntity{
		typ:          e.Type,
		schedule:     e.Schedule,
		material:     NormalizeMaterial(e.Material),
		locationPage: e.LocationPage,
	}
	if e.Diameter != "" {
		d, err := NormalizeDiameter(e.Diameter)
		if err != nil {
			return normalEntity{}, err
		}
		n.diameter = d
		n.hasDiameter = true
	}
	return n, nil
}
