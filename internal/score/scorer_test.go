package score

import (
	"testing"

	"casebinder/internal/classify"
	"casebinder/internal/model"
)

func newTestScorer() (*classify.Classifier, *Scorer) {
	c := classify.New(model.DefaultCategories())
	return c, NewScorer(c)
}

func TestScorer_Calculate_HighPriorityAssault(t *testing.T) {
	c, s := newTestScorer()

	// HIGH record matching assault (10) and contempt (8), dated 2023:
	// 10 * 10 + (2023-2020)*0.5 = 101.5
	rec := model.EvidenceRecord{
		RawText:  "assault and violation of the court order",
		Priority: model.PriorityHigh,
		DateHint: "20230615",
	}
	categories := c.Categorize(rec)

	got := s.Calculate(rec, categories)
	if got != 101.5 {
		t.Errorf("expected 101.5, got %v", got)
	}
}

func TestScorer_Calculate_UnknownEmptyRecord(t *testing.T) {
	c, s := newTestScorer()

	rec := model.EvidenceRecord{Priority: model.PriorityUnknown}
	categories := c.Categorize(rec)

	// general category, weight 1: 1 * 1 = 1
	got := s.Calculate(rec, categories)
	if got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
}

func TestScorer_Calculate_RecencyAdjustment(t *testing.T) {
	_, s := newTestScorer()

	tests := []struct {
		name     string
		dateHint string
		want     float64
	}{
		{"year 2020 adds nothing", "20200101", 100},
		{"year 2023 adds 1.5", "20230615", 101.5},
		{"year 2025 adds 2.5", "20251231", 102.5},
		{"pre-cutoff year adds nothing", "20190615", 100},
		{"free text date adds nothing", "June 2023", 100},
		{"short digit string adds nothing", "2023", 100},
		{"empty date adds nothing", "", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := model.EvidenceRecord{Priority: model.PriorityHigh, DateHint: tt.dateHint}
			got := s.Calculate(rec, []string{"assault"})
			if got != tt.want {
				t.Errorf("dateHint %q: expected %v, got %v", tt.dateHint, tt.want, got)
			}
		})
	}
}

func TestScorer_Calculate_SynthesizedExternalRecords(t *testing.T) {
	c, s := newTestScorer()

	// External records are scored by the same formula as OCR rows:
	// base from their descriptive text plus recency from the run date.
	location := model.EvidenceRecord{
		RawText:  "GeoJSON location data: 42 location points",
		Priority: model.PriorityHigh,
		DateHint: "20260115",
	}
	got := s.Calculate(location, c.Categorize(location))
	if got != 33.0 { // 10 * 3 + (2026-2020)*0.5
		t.Errorf("location record: expected 33.0, got %v", got)
	}

	email := model.EvidenceRecord{
		RawText:  "Email transcript data: 17 email messages",
		Priority: model.PriorityHigh,
		DateHint: "20260115",
	}
	got = s.Calculate(email, c.Categorize(email))
	if got != 43.0 { // 10 * 4 + (2026-2020)*0.5
		t.Errorf("email record: expected 43.0, got %v", got)
	}
}

func TestScorer_Calculate_MaxCategoryWeight(t *testing.T) {
	_, s := newTestScorer()

	rec := model.EvidenceRecord{Priority: model.PriorityMedium}

	// medical (6) dominates timeline (3): 5 * 6 = 30
	got := s.Calculate(rec, []string{"timeline", "medical"})
	if got != 30 {
		t.Errorf("expected 30, got %v", got)
	}
}

func TestScorer_Calculate_PriorityMonotonicity(t *testing.T) {
	_, s := newTestScorer()

	priorities := []model.Priority{
		model.PriorityUnknown,
		model.PriorityLow,
		model.PriorityMedium,
		model.PriorityHigh,
		model.PriorityCritical,
	}
	categories := []string{"contempt", "financial"}

	prev := -1.0
	for _, p := range priorities {
		rec := model.EvidenceRecord{Priority: p, DateHint: "20240101"}
		got := s.Calculate(rec, categories)
		if got < prev {
			t.Errorf("priority %s scored %v, below lower priority's %v", p, got, prev)
		}
		prev = got
	}
}

func TestScorer_Calculate_Deterministic(t *testing.T) {
	c, s := newTestScorer()

	rec := model.EvidenceRecord{
		RawText:  "unsafe neglect, missed doctor appointment",
		Priority: model.PriorityCritical,
		DateHint: "20240301",
	}
	categories := c.Categorize(rec)

	first := s.Calculate(rec, categories)
	for i := 0; i < 20; i++ {
		if got := s.Calculate(rec, categories); got != first {
			t.Fatalf("run %d: expected %v, got %v", i, first, got)
		}
	}
}
