package score

import (
	"math"
	"strconv"

	"casebinder/internal/classify"
	"casebinder/internal/model"
)

// Recency adjustment constants. The cutoff year and the half-point-per-year
// boost are carried over from the historical scoring scripts for behavioral
// compatibility; they have no documented legal rationale.
const (
	recencyCutoffYear = 2020
	recencyPerYear    = 0.5
)

// Scorer computes the weighted evidence score for a record:
//
//	final = priority_weight * max(category_weight) + recency
//
// rounded to two decimals. The calculation is deterministic and depends
// only on the record and its matched categories.
type Scorer struct {
	classifier *classify.Classifier
}

// NewScorer creates a scorer backed by the classifier's category weights
func NewScorer(classifier *classify.Classifier) *Scorer {
	return &Scorer{classifier: classifier}
}

// Calculate returns the weighted score for a record and its categories
func (s *Scorer) Calculate(rec model.EvidenceRecord, categories []string) float64 {
	priorityWeight := rec.Priority.Weight()
	categoryWeight := s.classifier.MaxWeight(categories)

	base := float64(priorityWeight * categoryWeight)
	total := base + recencyAdjustment(rec.DateHint)

	return math.Round(total*100) / 100
}

// recencyAdjustment adds a small boost for recent evidence. Only 8-digit
// YYYYMMDD date hints with a year at or past the cutoff qualify.
func recencyAdjustment(dateHint string) float64 {
	if len(dateHint) != 8 || !allDigits(dateHint) {
		return 0
	}
	year, err := strconv.Atoi(dateHint[:4])
	if err != nil || year < recencyCutoffYear {
		return 0
	}
	return float64(year-recencyCutoffYear) * recencyPerYear
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
