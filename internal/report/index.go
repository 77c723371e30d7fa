package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"casebinder/internal/model"
)

var indexColumns = []string{
	"exhibit_number", "exhibit_name", "case_id", "priority", "weighted_score",
	"categories", "date_extracted", "original_hash", "verification_status",
	"file_path", "filename", "folder_category", "people_mentioned",
	"text_preview", "verification_notes", "generation_date",
}

const previewLen = 200

// WriteIndex writes the master exhibit index as a timestamped CSV under
// dir and returns its path. Exhibits are written in the order given (the
// pipeline sorts them by score beforehand). The file is staged to a temp
// name and renamed so a failed run never leaves a partial index.
func WriteIndex(dir, caseID string, exhibits []model.ExhibitReport, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create exhibit dir: %w", err)
	}

	name := fmt.Sprintf("EXHIBIT_INDEX_%s_%s.csv", caseID, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return "", fmt.Errorf("create index file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(indexColumns); err != nil {
		return "", fmt.Errorf("write index header: %w", err)
	}
	for _, ex := range exhibits {
		if err := w.Write(indexRow(ex)); err != nil {
			return "", fmt.Errorf("write index row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush index: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close index: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("finalize index: %w", err)
	}
	return path, nil
}

func indexRow(ex model.ExhibitReport) []string {
	preview := truncatePreview(ex.Record.RawText)

	return []string{
		strconv.Itoa(ex.Sequence),
		ex.Name,
		ex.CaseID,
		string(ex.Record.Priority),
		strconv.FormatFloat(ex.WeightedScore, 'f', 2, 64),
		strings.Join(ex.Categories, "; "),
		ex.Record.DateHint,
		ex.Verification.OriginalHash,
		string(ex.Verification.Status),
		ex.Record.SourcePath,
		ex.Record.SourceID,
		ex.Record.FolderHint,
		strings.Join(ex.Record.People, "; "),
		preview,
		strings.Join(ex.Verification.Notes, "; "),
		ex.GeneratedAt.Format(time.RFC3339),
	}
}

// truncatePreview caps the text preview, backing up to a rune boundary so
// the CSV never carries a split multi-byte character.
func truncatePreview(text string) string {
	if len(text) <= previewLen {
		return text
	}
	cut := previewLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
