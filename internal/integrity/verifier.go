package integrity

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"casebinder/internal/model"
)

// Verifier classifies each record's integrity state. It never computes a
// hash from raw bytes for OCR-sourced records; those hashes belong to the
// upstream ingest stage. A malformed or hashless record degrades to a
// WARNING on that record alone, never an error.
type Verifier struct {
	log    *Log // May be nil when no integrity log is available
	logger *zap.Logger
	now    func() time.Time
}

// NewVerifier creates a verifier backed by an optional integrity log
func NewVerifier(log *Log, logger *zap.Logger) *Verifier {
	return &Verifier{
		log:    log,
		logger: logger,
		now:    time.Now,
	}
}

// Verify returns the verification result for one record
func (v *Verifier) Verify(rec model.EvidenceRecord) model.Verification {
	result := model.Verification{
		VerifiedAt: v.now().UTC(),
	}

	if rec.ContentHash == "" {
		result.Status = model.StatusWarning
		result.Notes = append(result.Notes, "No cryptographic hash found in record.")
		return result
	}

	result.OriginalHash = rec.ContentHash
	result.ProcessedHash = rec.ContentHash // Same unless the file was modified downstream

	if v.log == nil {
		result.Status = model.StatusVerified
		result.Notes = append(result.Notes, "Hash present; no integrity log available")
		return result
	}

	entry, err := v.log.Lookup(rec.ContentHash)
	if err != nil {
		v.logger.Warn("integrity log lookup failed",
			zap.String("source", rec.SourceID),
			zap.Error(err))
		result.Status = model.StatusVerified
		result.Notes = append(result.Notes, "Hash present; integrity log check skipped")
		return result
	}

	if entry == nil {
		result.Status = model.StatusVerified
		result.Notes = append(result.Notes, "Hash present; not found in integrity log (file may predate integrity checks)")
		return result
	}

	if entry.Status == "VALID" {
		result.Status = model.StatusVerified
		result.Notes = append(result.Notes, fmt.Sprintf("Verified against integrity log on %s", entry.ValidatedAt))
	} else {
		result.Status = model.StatusWarning
		result.Notes = append(result.Notes, fmt.Sprintf("Integrity log status: %s - %s", entry.Status, entry.Notes))
	}
	return result
}
