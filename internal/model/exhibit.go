package model

import "time"

// VerificationStatus classifies the integrity check outcome for one exhibit
type VerificationStatus string

const (
	StatusVerified VerificationStatus = "VERIFIED"
	StatusWarning  VerificationStatus = "WARNING"
)

// Verification is the integrity check result attached to an exhibit
type Verification struct {
	OriginalHash  string             `json:"original_hash,omitempty"`
	ProcessedHash string             `json:"processed_hash,omitempty"`
	Status        VerificationStatus `json:"status"`
	VerifiedAt    time.Time          `json:"verified_at"`
	Notes         []string           `json:"notes,omitempty"`
}

// ExhibitReport is a derived, read-only view over one EvidenceRecord,
// created once per record per run and never updated in place.
type ExhibitReport struct {
	Sequence        int            `json:"sequence"` // Strictly increasing, starts at 1 per run
	Name            string         `json:"name"`
	CaseID          string         `json:"case_id"`
	Record          EvidenceRecord `json:"record"`
	Categories      []string       `json:"categories"` // Non-empty, defaults to ["general"]
	PrimaryCategory string         `json:"primary_category"`
	WeightedScore   float64        `json:"weighted_score"`
	Verification    Verification   `json:"verification"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// SkipStage identifies the pipeline stage that skipped an input
type SkipStage string

const (
	StageLoad SkipStage = "load"
	StageScan SkipStage = "scan"
)

// Skip records one input that was omitted with a warning instead of
// aborting the run. Skips are aggregated into the RunReport, never
// silently discarded.
type Skip struct {
	Source string    `json:"source"` // File or row that was skipped
	Stage  SkipStage `json:"stage"`
	Reason string    `json:"reason"`
}

// RunReport summarizes one complete triage run
type RunReport struct {
	SessionID     string         `json:"session_id"` // Chain-of-custody identifier for this run
	CaseID        string         `json:"case_id"`
	StartedAt     time.Time      `json:"started_at"`
	RecordCount   int            `json:"record_count"`   // OCR CSV rows loaded
	LocationCount int            `json:"location_count"` // External location files
	EmailCount    int            `json:"email_count"`    // External email files
	TotalExhibits int            `json:"total_exhibits"`
	VerifiedCount int            `json:"verified_count"`
	HighPriority  int            `json:"high_priority"`
	Categories    map[string]int `json:"categories"`
	IndexPath     string         `json:"index_path,omitempty"`
	StatementPath string         `json:"statement_path,omitempty"`
	Skips         []Skip         `json:"skips,omitempty"`
}

// VerificationRate returns the percentage of exhibits with VERIFIED status
func (r *RunReport) VerificationRate() float64 {
	if r.TotalExhibits == 0 {
		return 0
	}
	return float64(r.VerifiedCount) / float64(r.TotalExhibits) * 100
}
