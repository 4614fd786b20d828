package match

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatError reports a value that could not be normalized. Structural
// mismatches between predicted and gold records are ordinary negative
// results, not errors; a FormatError means the record itself is malformed.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot normalize %s value %q", e.Field, e.Value)
}

var (
	nonAlnum   = regexp.MustCompile(`[^\w\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// NormalizeMaterial canonicalizes a free-text material name: lowercase,
// hyphens become spaces, punctuation is stripped, and whitespace runs
// collapse to single spaces. Total for any input; idempotent.
func NormalizeMaterial(material string) string {
	normalized := strings.ToLower(strings.TrimSpace(material))
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = nonAlnum.ReplaceAllString(normalized, "")
	normalized = whitespace.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// NormalizeDiameter converts a diameter string to inches. Accepted forms:
//
//	"1-1/2\"" -> 1.5
//	"3/4"     -> 0.75
//	"2 inch"  -> 2.0
//	"4"       -> 4.0
func NormalizeDiameter(diameter string) (float64, error) {
	s := strings.TrimSpace(diameter)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "inch", "")
	s = strings.ReplaceAll(s, "in", "")
	s = strings.TrimSpace(s)

	if whole, frac, ok := strings.Cut(s, "-"); ok {
		w, err := strconv.ParseFloat(strings.TrimSpace(whole), 64)
		if err != nil {
			return 0, &FormatError{Field: "diameter", Value: diameter}
		}
		f, err := parseFraction(frac)
		if err != nil {
			return 0, &FormatError{Field: "diameter", Value: diameter}
		}
		return w + f, nil
	}

	if strings.Contains(s, "/") {
		f, err := parseFraction(s)
		if err != nil {
			return 0, &FormatError{Field: "diameter", Value: diameter}
		}
		return f, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FormatError{Field: "diameter", Value: diameter}
	}
	return v, nil
}

func parseFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, fmt.Errorf("not a fraction: %q", s)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator: %q", s)
	}
	return n / d, nil
}

// NormalizePage converts a page value to an integer page number. Ground
// truth files carry pages as ints, floats, or numeric strings depending on
// their producer; truncation is fine since real page numbers are whole.
func NormalizePage(page any) (int, error) {
	switch v := page.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, &FormatError{Field: "page", Value: v.String()}
		}
		return int(f), nil
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &FormatError{Field: "page", Value: v}
		}
		return int(f), nil
	default:
		return 0, &FormatError{Field: "page", Value: fmt.Sprintf("%v", page)}
	}
}
