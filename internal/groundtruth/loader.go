// Package groundtruth loads annotation and prediction files into the
// in-memory collections the matching engine consumes. Ground truth for a
// document is a set of titled page-range chunks plus typed entities;
// supported containers are JSON (one document), JSONL (one document per
// line), and Parquet (flat chunk rows).
package groundtruth

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/specgrade/specgrade/internal/match"
)

// Document is one document's worth of chunks and entities.
type Document struct {
	Chunks   []match.Chunk  `json:"chunks"`
	Entities []match.Entity `json:"entities"`
}

// Loader reads ground-truth or prediction files.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given file.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads a single document. For JSONL files the first document is
// returned; use LoadAll when grading a batch.
func (l *Loader) Load() (*Document, error) {
	switch ext := strings.ToLower(filepath.Ext(l.path)); ext {
	case ".json":
		return l.loadJSON()
	case ".jsonl":
		docs, err := l.loadJSONL(1)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return nil, fmt.Errorf("no documents in %s", l.path)
		}
		return &docs[0], nil
	case ".parquet":
		return l.loadParquet()
	default:
		return nil, fmt.Errorf("unsupported file format %q (supported: .json, .jsonl, .parquet)", ext)
	}
}

// LoadAll reads every document from a JSONL file.
func (l *Loader) LoadAll() ([]Document, error) {
	if ext := strings.ToLower(filepath.Ext(l.path)); ext != ".jsonl" {
		doc, err := l.Load()
		if err != nil {
			return nil, err
		}
		return []Document{*doc}, nil
	}
	return l.loadJSONL(0)
}

func (l *Loader) loadJSON() (*Document, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ground truth file: %w", err)
	}
	doc, err := DecodeDocument(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return doc, nil
}

func (l *Loader) loadJSONL(limit int) ([]Document, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ground truth file: %w", err)
	}
	defer file.Close()

	var docs []Document
	scanner := bufio.NewScanner(file)

	// Large annotation sets can carry long lines.
	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		doc, err := DecodeDocument(bytes.NewReader(line))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.path, lineNum, err)
		}
		docs = append(docs, *doc)
		if limit > 0 && len(docs) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", l.path, err)
	}

	slog.Debug("loaded JSONL documents", "path", l.path, "documents", len(docs))
	return docs, nil
}

// chunkRow is the Parquet row shape for chunk annotations.
type chunkRow struct {
	Title     string `parquet:"title"`
	StartPage int32  `parquet:"start_page"`
	EndPage   int32  `parquet:"end_page"`
}

func (l *Loader) loadParquet() (*Document, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[chunkRow](pf)
	defer reader.Close()

	doc := &Document{}
	rows := make([]chunkRow, 128)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			doc.Chunks = append(doc.Chunks, match.Chunk{
				Title:     row.Title,
				StartPage: int(row.StartPage),
				EndPage:   int(row.EndPage),
			})
		}
		if err != nil {
			break
		}
	}

	slog.Debug("loaded parquet chunks", "path", l.path, "chunks", len(doc.Chunks))
	return doc, nil
}

// rawDocument tolerates the field variance seen in real annotation files:
// numeric-or-string pages and diameters, and the legacy chunk form that
// carries a single page plus text instead of a titled range.
type rawDocument struct {
	Chunks   []rawChunk  `json:"chunks"`
	Entities []rawEntity `json:"entities"`
}

type rawChunk struct {
	Title     string `json:"title"`
	StartPage any    `json:"start_page"`
	EndPage   any    `json:"end_page"`
	Page      any    `json:"page"`
	Text      string `json:"text"`
}

type rawEntity struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Material     string `json:"material"`
	Diameter     any    `json:"diameter"`
	Schedule     any    `json:"schedule"`
	LocationPage any    `json:"location_page"`
}

// DecodeDocument decodes one JSON document, normalizing page numbers and
// lifting legacy page-list chunks into titled single-page sections.
func DecodeDocument(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw rawDocument
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid document JSON: %w", err)
	}

	doc := &Document{}
	for i, rc := range raw.Chunks {
		chunk, err := decodeChunk(rc, i)
		if err != nil {
			return nil, err
		}
		doc.Chunks = append(doc.Chunks, chunk)
	}
	for i, re := range raw.Entities {
		entity, err := decodeEntity(re, i)
		if err != nil {
			return nil, err
		}
		doc.Entities = append(doc.Entities, entity)
	}
	return doc, nil
}

func decodeChunk(rc rawChunk, index int) (match.Chunk, error) {
	// Legacy form: {page, text} with no title or range.
	if rc.StartPage == nil && rc.EndPage == nil && rc.Page != nil {
		page, err := match.NormalizePage(rc.Page)
		if err != nil {
			return match.Chunk{}, fmt.Errorf("chunk %d: %w", index, err)
		}
		title := rc.Title
		if title == "" {
			title = fmt.Sprintf("Section %d", index+1)
		}
		return match.Chunk{Title: title, StartPage: page, EndPage: page}, nil
	}

	start, err := match.NormalizePage(rc.StartPage)
	if err != nil {
		return match.Chunk{}, fmt.Errorf("chunk %d start_page: %w", index, err)
	}
	end, err := match.NormalizePage(rc.EndPage)
	if err != nil {
		return match.Chunk{}, fmt.Errorf("chunk %d end_page: %w", index, err)
	}
	return match.Chunk{Title: rc.Title, StartPage: start, EndPage: end}, nil
}

func decodeEntity(re rawEntity, index int) (match.Entity, error) {
	entity := match.Entity{
		ID:       re.ID,
		Type:     re.Type,
		Material: re.Material,
	}

	switch v := re.Diameter.(type) {
	case nil:
	case string:
		entity.Diameter = v
	case json.Number:
		entity.Diameter = v.String()
	default:
		return match.Entity{}, fmt.Errorf("entity %d: unsupported diameter value %v", index, v)
	}

	switch v := re.Schedule.(type) {
	case nil:
	case string:
		entity.Schedule = v
	case json.Number:
		entity.Schedule = v.String()
	default:
		return match.Entity{}, fmt.Errorf("entity %d: unsupported schedule value %v", index, v)
	}

	if re.LocationPage != nil {
		page, err := match.NormalizePage(re.LocationPage)
		if err != nil {
			return match.Entity{}, fmt.Errorf("entity %d location_page: %w", index, err)
		}
		entity.LocationPage = page
	}

	return entity, nil
}
