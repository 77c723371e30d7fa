package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"casebinder/internal/cache"
	"casebinder/internal/classify"
	"casebinder/internal/integrity"
	"casebinder/internal/load"
	"casebinder/internal/model"
	"casebinder/internal/naming"
	"casebinder/internal/render"
	"casebinder/internal/report"
	"casebinder/internal/score"
)

// Pipeline runs the complete triage: load, scan, categorize, score,
// verify, name, write. Stages run strictly in sequence; each consumes the
// full output of the previous one. Outputs are written only after every
// in-memory stage has succeeded.
type Pipeline struct {
	cfg        *model.Config
	logger     *zap.Logger
	loader     *load.Loader
	scanner    *load.Scanner
	classifier *classify.Classifier
	scorer     *score.Scorer
	verifier   *integrity.Verifier
	namer      *naming.Namer
	renderer   render.Renderer
	hasher     *integrity.Hasher
	ilog       *integrity.Log
	now        func() time.Time
}

// New creates a pipeline from a validated configuration
func New(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ilog, err := integrity.OpenLog(cfg.Integrity.LogPath)
	if err != nil {
		// The integrity log is an optional collaborator; degrade, don't abort
		logger.Warn("integrity log unavailable", zap.String("path", cfg.Integrity.LogPath), zap.Error(err))
		ilog = nil
	}
	if ilog == nil {
		logger.Info("running without integrity log", zap.String("path", cfg.Integrity.LogPath))
	}

	hashCache := cache.NewLayeredCache(cfg.Integrity.CacheTTL, cfg.Integrity.CacheDir, cfg.Integrity.CacheTTL)
	hasher := integrity.NewHasher(hashCache)
	classifier := classify.New(cfg.Categories)

	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		loader:     load.NewLoader(cfg.Records.Dir, logger),
		scanner:    load.NewScanner(cfg.External.Dir, hasher, logger),
		classifier: classifier,
		scorer:     score.NewScorer(classifier),
		verifier:   integrity.NewVerifier(ilog, logger),
		namer:      naming.NewNamer(cfg.CaseID),
		renderer:   render.NewExecRenderer(cfg.Render.Command, logger),
		hasher:     hasher,
		ilog:       ilog,
		now:        time.Now,
	}, nil
}

// Close releases the integrity log handle
func (p *Pipeline) Close() error {
	if p.ilog != nil {
		return p.ilog.Close()
	}
	return nil
}

// Run executes the full triage and writes the index and defensibility
// statement. Per-record problems degrade that record; only directory and
// file level I/O failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (*model.RunReport, error) {
	start := p.now()
	session := uuid.NewString()
	p.logger.Info("triage run starting",
		zap.String("session", session),
		zap.String("case_id", p.cfg.CaseID))

	records, locations, emails, skips, err := p.gather()
	if err != nil {
		return nil, err
	}

	// Fixed, reproducible order: OCR rows, then locations, then emails.
	// The sequence counter is owned by this run alone.
	counter := naming.NewCounter()
	ordered := make([]model.EvidenceRecord, 0, len(records)+len(locations)+len(emails))
	ordered = append(ordered, records...)
	ordered = append(ordered, locations...)
	ordered = append(ordered, emails...)

	exhibits := make([]model.ExhibitReport, 0, len(ordered))
	for _, rec := range ordered {
		exhibits = append(exhibits, p.buildExhibit(rec, counter, start))
	}

	// Sort by score descending; the stable sort keeps load order on ties
	sort.SliceStable(exhibits, func(i, j int) bool {
		return exhibits[i].WeightedScore > exhibits[j].WeightedScore
	})

	indexPath, err := report.WriteIndex(p.cfg.Output.ExhibitDir, p.cfg.CaseID, exhibits, start)
	if err != nil {
		return nil, fmt.Errorf("write master index: %w", err)
	}

	verified := 0
	for _, ex := range exhibits {
		if ex.Verification.Status == model.StatusVerified {
			verified++
		}
	}

	statementPath, err := report.WriteStatement(p.cfg.Output.ExhibitDir, p.cfg.CaseID, len(exhibits), verified, start)
	if err != nil {
		return nil, fmt.Errorf("write defensibility statement: %w", err)
	}

	if p.cfg.Render.Enabled {
		if err := p.renderer.Render(ctx, indexPath); err != nil {
			// PDF generation is delegated; a missing renderer is not fatal
			p.logger.Warn("PDF exhibit generation skipped", zap.Error(err))
		}
	}

	run := &model.RunReport{
		SessionID:     session,
		CaseID:        p.cfg.CaseID,
		StartedAt:     start,
		RecordCount:   len(records),
		LocationCount: len(locations),
		EmailCount:    len(emails),
		TotalExhibits: len(exhibits),
		VerifiedCount: verified,
		Categories:    make(map[string]int),
		IndexPath:     indexPath,
		StatementPath: statementPath,
		Skips:         skips,
	}
	for _, ex := range exhibits {
		if ex.Record.Priority == model.PriorityHigh {
			run.HighPriority++
		}
		for _, cat := range ex.Categories {
			run.Categories[cat]++
		}
	}

	p.logger.Info("triage run complete",
		zap.String("session", session),
		zap.Int("exhibits", run.TotalExhibits),
		zap.Int("verified", run.VerifiedCount),
		zap.String("index", indexPath))
	return run, nil
}

// Stats loads and counts evidence without writing anything. External
// files are counted by path only; nothing is read or hashed, so the hash
// cache stays untouched.
func (p *Pipeline) Stats(ctx context.Context) (*model.RunReport, error) {
	records, skips, err := p.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	locations, emails, err := p.scanner.Count()
	if err != nil {
		return nil, fmt.Errorf("count external data: %w", err)
	}

	return &model.RunReport{
		SessionID:     uuid.NewString(),
		CaseID:        p.cfg.CaseID,
		StartedAt:     p.now(),
		RecordCount:   len(records),
		LocationCount: locations,
		EmailCount:    emails,
		Skips:         skips,
	}, nil
}

func (p *Pipeline) gather() (records, locations, emails []model.EvidenceRecord, skips []model.Skip, err error) {
	records, loadSkips, err := p.loader.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load records: %w", err)
	}

	locations, emails, scanSkips, err := p.scanner.Scan()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("scan external data: %w", err)
	}

	skips = append(loadSkips, scanSkips...)
	return records, locations, emails, skips, nil
}

func (p *Pipeline) buildExhibit(rec model.EvidenceRecord, counter *naming.Counter, generatedAt time.Time) model.ExhibitReport {
	categories := p.classifier.Categorize(rec)
	weighted := p.scorer.Calculate(rec, categories)
	verification := p.verifier.Verify(rec)
	primary := p.classifier.Primary(categories)
	sequence := counter.Next()

	return model.ExhibitReport{
		Sequence:        sequence,
		Name:            p.namer.Name(rec, primary, sequence),
		CaseID:          p.cfg.CaseID,
		Record:          rec,
		Categories:      categories,
		PrimaryCategory: primary,
		WeightedScore:   weighted,
		Verification:    verification,
		GeneratedAt:     generatedAt,
	}
}
