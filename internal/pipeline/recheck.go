package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"casebinder/internal/integrity"
	"casebinder/internal/model"
	"casebinder/internal/worker"
)

// RecheckResult is the outcome of re-hashing one evidenced file
type RecheckResult struct {
	Source       string
	Path         string
	RecordedHash string
	CurrentHash  string
	Match        bool
	LogStatus    string // Integrity log status for the current hash, if any
	Err          error
}

// GetError implements worker.Result
func (r *RecheckResult) GetError() error {
	return r.Err
}

// RecheckReport summarizes an integrity recheck pass
type RecheckReport struct {
	Checked       int
	Matched       int
	Mismatched    []RecheckResult
	Failed        []RecheckResult
	SkippedNoPath int // Records without an on-disk path to re-hash
}

type hashJob struct {
	rec     model.EvidenceRecord
	hasher  *integrity.Hasher
	ilog    *integrity.Log
	limiter *worker.Limiter
}

func (j *hashJob) Execute(ctx context.Context) worker.Result {
	result := &RecheckResult{
		Source:       j.rec.SourceID,
		Path:         j.rec.SourcePath,
		RecordedHash: j.rec.ContentHash,
	}

	if err := j.limiter.Wait(ctx, j.rec.SourcePath); err != nil {
		result.Err = err
		return result
	}

	hash, err := j.hasher.FileSHA256(j.rec.SourcePath)
	if err != nil {
		result.Err = err
		return result
	}
	result.CurrentHash = hash
	result.Match = j.rec.ContentHash == "" || hash == j.rec.ContentHash

	if j.ilog != nil {
		if entry, err := j.ilog.Lookup(hash); err == nil && entry != nil {
			result.LogStatus = entry.Status
		}
	}
	return result
}

// Recheck re-hashes every record that points at an on-disk file and
// compares against the recorded hash and the integrity log. Files are
// hashed concurrently; the per-volume limiter keeps IO in check.
func (p *Pipeline) Recheck(ctx context.Context) (*RecheckReport, error) {
	records, _, err := p.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	limiter := worker.NewLimiter(p.cfg.Recheck.RatePerSecond, p.cfg.Recheck.Burst)
	pool := worker.NewPool(ctx, p.cfg.Recheck.Workers)
	pool.Start()

	report := &RecheckReport{}
	for _, rec := range records {
		if rec.SourcePath == "" {
			report.SkippedNoPath++
			continue
		}
		pool.Submit(&hashJob{rec: rec, hasher: p.hasher, ilog: p.ilog, limiter: limiter})
	}

	for _, res := range pool.Wait() {
		r := res.(*RecheckResult)
		report.Checked++
		switch {
		case r.Err != nil:
			report.Failed = append(report.Failed, *r)
		case r.Match:
			report.Matched++
		default:
			report.Mismatched = append(report.Mismatched, *r)
			p.logger.Warn("hash mismatch",
				zap.String("source", r.Source),
				zap.String("recorded", r.RecordedHash),
				zap.String("current", r.CurrentHash))
		}
	}

	p.logger.Info("integrity recheck complete",
		zap.Int("checked", report.Checked),
		zap.Int("matched", report.Matched),
		zap.Int("mismatched", len(report.Mismatched)),
		zap.Int("failed", len(report.Failed)))
	return report, nil
}
