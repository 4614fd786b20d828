package extractor

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/specgrade/specgrade/internal/groundtruth"
	"github.com/specgrade/specgrade/internal/match"
)

func init() {
	Register("tocregex", func() Extractor { return &TOCRegexExtractor{} })
}

// TOCRegexExtractor parses plain text documents. Chunks come from table of
// contents lines ("Fire Protection ....... 6-7", "Standpipe System 42");
// entities come from pipe specification lines ("2" Schedule 40 galvanized
// steel pipe"). Pages in the input text are separated by form feeds.
type TOCRegexExtractor struct{}

var (
	// Title, dot leader or run of spaces, page or page range.
	tocLine = regexp.MustCompile(`^(.*[A-Za-z].*?)(?:\s*\.{2,}\s*|\s+)(\d+)\s*(?:-\s*(\d+))?$`)

	// Diameter, schedule code, material, component type.
	specLine = regexp.MustCompile(`(?i)([\d][\d\-/.]*)\s*"?\s*schedule\s+(\d+|STD|XS)\s+([A-Za-z][A-Za-z ]*?)\s+(pipe|fitting|valve|sprinkler|connection)\b`)
)

// Extract scans the text for TOC chunk lines and spec entity lines.
func (e *TOCRegexExtractor) Extract(r io.Reader, name string) (*groundtruth.Document, error) {
	doc := &groundtruth.Document{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	page := 1
	entitySeq := 0
	for scanner.Scan() {
		line := scanner.Text()
		page += strings.Count(line, "\f")
		line = strings.ReplaceAll(line, "\f", "")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := tocLine.FindStringSubmatch(trimmed); m != nil {
			start, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			end := start
			if m[3] != "" {
				if n, err := strconv.Atoi(m[3]); err == nil {
					end = n
				}
			}
			title := strings.TrimRight(strings.TrimSpace(m[1]), " .")
			doc.Chunks = append(doc.Chunks, match.Chunk{
				Title:     title,
				StartPage: start,
				EndPage:   end,
			})
			continue
		}

		for _, m := range specLine.FindAllStringSubmatch(trimmed, -1) {
			entitySeq++
			doc.Entities = append(doc.Entities, match.Entity{
				ID:           fmt.Sprintf("%s_%03d", strings.ToLower(m[4]), entitySeq),
				Type:         strings.ToLower(m[4]),
				Material:     strings.TrimSpace(strings.ToLower(m[3])),
				Diameter:     m[1],
				Schedule:     strings.ToUpper(m[2]),
				LocationPage: page,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return doc, nil
}
