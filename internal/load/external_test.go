package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"casebinder/internal/integrity"
	"casebinder/internal/model"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"timestamp": "2023-06-01T08:00:00Z"}, "geometry": null},
    {"type": "Feature", "properties": {"timestamp": "2023-06-03T19:30:00Z"}, "geometry": null},
    {"type": "Feature", "properties": {}, "geometry": null}
  ]
}`

func newTestScanner(t *testing.T, dir string) *Scanner {
	t.Helper()
	return NewScanner(dir, integrity.NewHasher(nil), zap.NewNop())
}

func TestScanner_Scan_LocationRecord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "location_history.geojson", sampleGeoJSON)

	scanner := newTestScanner(t, dir)
	locations, emails, skips, err := scanner.Scan()
	require.NoError(t, err)
	assert.Empty(t, emails)
	assert.Empty(t, skips)
	require.Len(t, locations, 1)

	rec := locations[0]
	assert.Equal(t, "location_history.geojson", rec.SourceID)
	assert.Equal(t, model.OriginLocation, rec.Origin)
	assert.Equal(t, model.PriorityHigh, rec.Priority)
	assert.Equal(t, "location", rec.FolderHint)
	assert.Equal(t, "EXTERNAL_GEOJSON", rec.SourceTable)
	assert.Contains(t, rec.RawText, "3 location points")
	assert.Contains(t, rec.RawText, "2023-06-01T08:00:00Z to 2023-06-03T19:30:00Z")
	assert.Len(t, rec.ContentHash, 64)
	assert.Len(t, rec.DateHint, 8)
}

func TestScanner_Scan_EmailRecord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gmail_takeout_export.csv",
		"date,from,to,subject\n"+
			"2023-01-05,a@x.test,b@x.test,pickup\n"+
			"2023-02-10,b@x.test,a@x.test,re: pickup\n")

	scanner := newTestScanner(t, dir)
	locations, emails, skips, err := scanner.Scan()
	require.NoError(t, err)
	assert.Empty(t, locations)
	assert.Empty(t, skips)
	require.Len(t, emails, 1)

	rec := emails[0]
	assert.Equal(t, model.OriginEmail, rec.Origin)
	assert.Equal(t, "communication", rec.FolderHint)
	assert.Equal(t, "EXTERNAL_EMAIL", rec.SourceTable)
	assert.Contains(t, rec.RawText, "2 email messages")
	assert.Contains(t, rec.RawText, "2023-01-05 to 2023-02-10")
	assert.Len(t, rec.ContentHash, 64)
}

func TestScanner_Scan_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "nothing")
	writeFile(t, dir, "records.csv", "date\n2023-01-01\n") // No email hint in name

	scanner := newTestScanner(t, dir)
	locations, emails, skips, err := scanner.Scan()
	require.NoError(t, err)
	assert.Empty(t, locations)
	assert.Empty(t, emails)
	assert.Empty(t, skips)
}

func TestScanner_Scan_RecursesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "takeout", "semantic")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "2023_JUNE.json"), []byte(`{"features": []}`), 0o644))

	scanner := newTestScanner(t, dir)
	locations, _, _, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Contains(t, locations[0].RawText, "0 location points")
}

func TestScanner_Scan_SkipsCorruptGeoJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.geojson", "{not json")

	scanner := newTestScanner(t, dir)
	locations, _, skips, err := scanner.Scan()
	require.NoError(t, err)
	assert.Empty(t, locations)
	require.Len(t, skips, 1)
	assert.Equal(t, model.StageScan, skips[0].Stage)
}

func TestScanner_Count_DoesNotReadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "location_history.geojson", "{not even json")
	writeFile(t, dir, "gmail_export.csv", "\"broken csv")
	writeFile(t, dir, "notes.txt", "ignored")

	scanner := newTestScanner(t, dir)
	locations, emails, err := scanner.Count()
	require.NoError(t, err)

	// Unparseable contents do not matter; only paths are examined
	assert.Equal(t, 1, locations)
	assert.Equal(t, 1, emails)
}

func TestScanner_Count_MissingDir(t *testing.T) {
	scanner := newTestScanner(t, filepath.Join(t.TempDir(), "absent"))
	locations, emails, err := scanner.Count()
	require.NoError(t, err)
	assert.Zero(t, locations)
	assert.Zero(t, emails)
}

func TestScanner_Scan_MissingDirYieldsEmpty(t *testing.T) {
	scanner := newTestScanner(t, filepath.Join(t.TempDir(), "absent"))
	locations, emails, skips, err := scanner.Scan()
	require.NoError(t, err)
	assert.Empty(t, locations)
	assert.Empty(t, emails)
	assert.Empty(t, skips)
}
