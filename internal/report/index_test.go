package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casebinder/internal/model"
)

func sampleExhibit(seq int, score float64) model.ExhibitReport {
	return model.ExhibitReport{
		Sequence: seq,
		Name:     "EXHIBIT-CASE1-001A-ASSAULT-IMG.pdf",
		CaseID:   "CASE1",
		Record: model.EvidenceRecord{
			SourceID:   "img_001.png",
			Origin:     model.OriginOCRRow,
			RawText:    "some extracted text",
			Priority:   model.PriorityHigh,
			FolderHint: "legal",
			DateHint:   "20230615",
			People:     []string{"Alice", "Bob"},
			SourcePath: "/evidence/img_001.png",
		},
		Categories:      []string{"assault", "contempt"},
		PrimaryCategory: "assault",
		WeightedScore:   score,
		Verification: model.Verification{
			OriginalHash: "abc123",
			Status:       model.StatusVerified,
			Notes:        []string{"Hash present; no integrity log available"},
		},
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteIndex(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)

	path, err := WriteIndex(dir, "CASE1", []model.ExhibitReport{sampleExhibit(1, 101.5)}, now)
	require.NoError(t, err)
	assert.Equal(t, "EXHIBIT_INDEX_CASE1_20240601_123045.csv", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	if diff := cmp.Diff(indexColumns, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	row := rows[1]
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "EXHIBIT-CASE1-001A-ASSAULT-IMG.pdf", row[1])
	assert.Equal(t, "CASE1", row[2])
	assert.Equal(t, "HIGH", row[3])
	assert.Equal(t, "101.50", row[4])
	assert.Equal(t, "assault; contempt", row[5])
	assert.Equal(t, "20230615", row[6])
	assert.Equal(t, "abc123", row[7])
	assert.Equal(t, "VERIFIED", row[8])
	assert.Equal(t, "Alice; Bob", row[12])
}

func TestWriteIndex_TruncatesPreview(t *testing.T) {
	dir := t.TempDir()
	ex := sampleExhibit(1, 10)
	ex.Record.RawText = strings.Repeat("x", 500)

	path, err := WriteIndex(dir, "CASE1", []model.ExhibitReport{ex}, time.Now())
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows[1][13], 200)
}

func TestWriteIndex_PreviewKeepsRunesIntact(t *testing.T) {
	dir := t.TempDir()
	ex := sampleExhibit(1, 10)
	// 3-byte runes; 200 is not a multiple of 3, so a byte cut would split one
	ex.Record.RawText = strings.Repeat("世", 100)

	path, err := WriteIndex(dir, "CASE1", []model.ExhibitReport{ex}, time.Now())
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	preview := rows[1][13]
	assert.True(t, utf8.ValidString(preview))
	assert.LessOrEqual(t, len(preview), 200)
	assert.Equal(t, strings.Repeat("世", 66), preview)
}

func TestWriteIndex_PreservesGivenOrder(t *testing.T) {
	dir := t.TempDir()
	exhibits := []model.ExhibitReport{sampleExhibit(3, 50), sampleExhibit(1, 90), sampleExhibit(2, 90)}

	path, err := WriteIndex(dir, "CASE1", exhibits, time.Now())
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	// The writer does not reorder; sorting is the pipeline's job
	assert.Equal(t, "3", rows[1][0])
	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "2", rows[3][0])
}

func TestWriteIndex_LeavesNoPartialFileOnPriorRuns(t *testing.T) {
	dir := t.TempDir()

	first, err := WriteIndex(dir, "CASE1", nil, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	second, err := WriteIndex(dir, "CASE1", nil, time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, first)
	assert.FileExists(t, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // No stray temp files
}
