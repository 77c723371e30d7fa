package load

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"casebinder/internal/integrity"
	"casebinder/internal/model"
)

// Scanner discovers auxiliary evidence under the external data directory:
// GeoJSON location history and email transcript CSVs, typically exported
// from Google Takeout. Each file becomes one evidence record with the same
// shape as an OCR row, so the rest of the pipeline treats them uniformly.
type Scanner struct {
	dir    string
	hasher *integrity.Hasher
	logger *zap.Logger
	now    func() time.Time
}

// NewScanner creates an external data scanner
func NewScanner(dir string, hasher *integrity.Hasher, logger *zap.Logger) *Scanner {
	return &Scanner{
		dir:    dir,
		hasher: hasher,
		logger: logger,
		now:    time.Now,
	}
}

// discover walks the external data directory and returns the location
// and email file paths in sorted order. A missing directory yields empty
// results.
func (s *Scanner) discover() (locationPaths, emailPaths []string, err error) {
	if _, statErr := os.Stat(s.dir); statErr != nil {
		if os.IsNotExist(statErr) {
			s.logger.Warn("external data directory not found", zap.String("dir", s.dir))
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("stat external dir: %w", statErr)
	}

	walkErr := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		switch {
		case ext == ".geojson" || ext == ".json":
			locationPaths = append(locationPaths, path)
		case ext == ".csv" && (strings.Contains(stem, "email") || strings.Contains(stem, "gmail")):
			emailPaths = append(emailPaths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, fmt.Errorf("walk external dir: %w", walkErr)
	}
	sort.Strings(locationPaths)
	sort.Strings(emailPaths)
	return locationPaths, emailPaths, nil
}

// Count reports how many location and email files the directory holds
// without reading, parsing, or hashing any of them.
func (s *Scanner) Count() (locations, emails int, err error) {
	locationPaths, emailPaths, err := s.discover()
	if err != nil {
		return 0, 0, err
	}
	return len(locationPaths), len(emailPaths), nil
}

// Scan walks the external data directory and returns location records and
// email records, each in sorted path order. A missing directory yields
// empty results; unreadable files become Skip entries.
func (s *Scanner) Scan() (locations, emails []model.EvidenceRecord, skips []model.Skip, err error) {
	locationPaths, emailPaths, err := s.discover()
	if err != nil {
		return nil, nil, nil, err
	}

	for _, path := range locationPaths {
		rec, err := s.locationRecord(path)
		if err != nil {
			s.logger.Warn("skipping location file", zap.String("file", path), zap.Error(err))
			skips = append(skips, model.Skip{Source: path, Stage: model.StageScan, Reason: err.Error()})
			continue
		}
		locations = append(locations, rec)
	}
	for _, path := range emailPaths {
		rec, err := s.emailRecord(path)
		if err != nil {
			s.logger.Warn("skipping email file", zap.String("file", path), zap.Error(err))
			skips = append(skips, model.Skip{Source: path, Stage: model.StageScan, Reason: err.Error()})
			continue
		}
		emails = append(emails, rec)
	}

	s.logger.Info("scanned external data",
		zap.Int("locations", len(locations)),
		zap.Int("emails", len(emails)),
		zap.Int("skipped", len(skips)))
	return locations, emails, skips, nil
}

// geoFeatures is the minimal GeoJSON shape we care about: a feature count
// and per-feature timestamps when present.
type geoFeatures struct {
	Features []struct {
		Properties map[string]any `json:"properties"`
	} `json:"features"`
}

func (s *Scanner) locationRecord(path string) (model.EvidenceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("read geojson: %w", err)
	}

	var geo geoFeatures
	if err := json.Unmarshal(data, &geo); err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("parse geojson: %w", err)
	}

	var timestamps []string
	for _, feature := range geo.Features {
		if ts, ok := feature.Properties["timestamp"].(string); ok && ts != "" {
			timestamps = append(timestamps, ts)
		}
	}

	text := fmt.Sprintf("GeoJSON location data: %d location points", len(geo.Features))
	if len(timestamps) > 0 {
		sort.Strings(timestamps)
		text += fmt.Sprintf(" (%s to %s)", timestamps[0], timestamps[len(timestamps)-1])
	}

	hash, err := s.hasher.FileSHA256(path)
	if err != nil {
		return model.EvidenceRecord{}, err
	}

	return model.EvidenceRecord{
		SourceID:    filepath.Base(path),
		Origin:      model.OriginLocation,
		RawText:     text,
		Priority:    model.PriorityHigh,
		FolderHint:  "location",
		ContentHash: hash,
		DateHint:    s.now().Format("20060102"),
		SourcePath:  path,
		SourceTable: "EXTERNAL_GEOJSON",
	}, nil
}

func (s *Scanner) emailRecord(path string) (model.EvidenceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("read email csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("parse email csv: %w", err)
	}

	var dates []string
	count := 0
	if len(rows) > 0 {
		dateCol := -1
		for i, h := range rows[0] {
			if strings.EqualFold(strings.TrimSpace(h), "date") {
				dateCol = i
				break
			}
		}
		count = len(rows) - 1
		if dateCol >= 0 {
			for _, row := range rows[1:] {
				if dateCol < len(row) && row[dateCol] != "" {
					dates = append(dates, row[dateCol])
				}
			}
		}
	}

	text := fmt.Sprintf("Email transcript data: %d email messages", count)
	if len(dates) > 0 {
		sort.Strings(dates)
		text += fmt.Sprintf(" (%s to %s)", dates[0], dates[len(dates)-1])
	}

	hash, err := s.hasher.FileSHA256(path)
	if err != nil {
		return model.EvidenceRecord{}, err
	}

	return model.EvidenceRecord{
		SourceID:    filepath.Base(path),
		Origin:      model.OriginEmail,
		RawText:     text,
		Priority:    model.PriorityHigh,
		FolderHint:  "communication",
		ContentHash: hash,
		DateHint:    s.now().Format("20060102"),
		SourcePath:  path,
		SourceTable: "EXTERNAL_EMAIL",
	}, nil
}
