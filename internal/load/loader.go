package load

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"casebinder/internal/model"
)

// Column synonyms across the historical OCR processor CSV dialects.
// Headers are matched case-insensitively after trimming.
var columnSynonyms = map[string][]string{
	"text":     {"text_content", "key_factual_statement", "text", "extracted_text"},
	"filename": {"filename", "file_name"},
	"folder":   {"folder_category", "folder", "category"},
	"priority": {"priority", "legal_priority"},
	"date":     {"date_extracted", "date_time_approx", "date"},
	"people":   {"people_mentioned", "people"},
	"hash":     {"file_hash", "original_file_sha256", "file_integrity_hash", "sha256"},
	"path":     {"file_path", "path"},
}

// Loader reads processed OCR result CSVs and normalizes their rows into
// evidence records. It performs no writes; unreadable files become Skip
// entries rather than errors.
type Loader struct {
	dir    string
	logger *zap.Logger
}

// NewLoader creates a loader over the given directory of OCR CSVs
func NewLoader(dir string, logger *zap.Logger) *Loader {
	return &Loader{dir: dir, logger: logger}
}

// Load reads every CSV under the records directory in filename order.
// A missing directory yields an empty result, not an error.
func (l *Loader) Load() ([]model.EvidenceRecord, []model.Skip, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("records directory not found", zap.String("dir", l.dir))
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read records dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names) // Load order must be reproducible

	var records []model.EvidenceRecord
	var skips []model.Skip
	for _, name := range names {
		recs, fileSkips := l.loadFile(filepath.Join(l.dir, name), name)
		records = append(records, recs...)
		skips = append(skips, fileSkips...)
	}

	l.logger.Info("loaded OCR records",
		zap.Int("files", len(names)),
		zap.Int("records", len(records)),
		zap.Int("skipped", len(skips)))
	return records, skips, nil
}

func (l *Loader) loadFile(path, name string) ([]model.EvidenceRecord, []model.Skip) {
	f, err := os.Open(path)
	if err != nil {
		l.logger.Warn("skipping unreadable CSV", zap.String("file", name), zap.Error(err))
		return nil, []model.Skip{{Source: name, Stage: model.StageLoad, Reason: err.Error()}}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		l.logger.Warn("skipping CSV without readable header", zap.String("file", name), zap.Error(err))
		return nil, []model.Skip{{Source: name, Stage: model.StageLoad, Reason: "unreadable header: " + err.Error()}}
	}
	cols := mapColumns(header)

	var records []model.EvidenceRecord
	var skips []model.Skip
	line := 1
	for {
		line++
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			reason := fmt.Sprintf("line %d: %v", line, err)
			l.logger.Warn("skipping malformed row", zap.String("file", name), zap.String("reason", reason))
			skips = append(skips, model.Skip{Source: name, Stage: model.StageLoad, Reason: reason})
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue // Recoverable per-row failure
			}
			break
		}
		records = append(records, rowToRecord(row, cols, name))
	}
	return records, skips
}

// mapColumns resolves header names to canonical field indexes
func mapColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for field, synonyms := range columnSynonyms {
			if _, taken := cols[field]; taken {
				continue
			}
			for _, syn := range synonyms {
				if normalized == syn {
					cols[field] = i
					break
				}
			}
		}
	}
	return cols
}

func rowToRecord(row []string, cols map[string]int, sourceTable string) model.EvidenceRecord {
	get := func(field string) string {
		i, ok := cols[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return model.EvidenceRecord{
		SourceID:    get("filename"),
		Origin:      model.OriginOCRRow,
		RawText:     get("text"),
		Priority:    model.ParsePriority(get("priority")),
		FolderHint:  get("folder"),
		ContentHash: get("hash"),
		DateHint:    get("date"),
		People:      splitPeople(get("people")),
		SourcePath:  get("path"),
		SourceTable: sourceTable,
	}
}

// splitPeople splits a people column on semicolons or commas, preserving
// detection order and duplicates.
func splitPeople(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ','
	})
	var people []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			people = append(people, trimmed)
		}
	}
	return people
}
