package model

import (
	"fmt"
	"time"
)

// CategoryRule maps a legal category to its keyword triggers and scoring
// weight. Declaration order matters: it is the tie-break when two matched
// categories carry the same weight.
type CategoryRule struct {
	Name     string   `json:"name" yaml:"name"`
	Weight   int      `json:"weight" yaml:"weight"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// GeneralCategory is the fallback category assigned when nothing matches
const GeneralCategory = "general"

// GeneralWeight is the scoring weight of the fallback category
const GeneralWeight = 1

// DefaultCategories returns the canonical legal category table.
// The keyword lists differ slightly across the historical processor
// scripts; this is the authoritative set.
func DefaultCategories() []CategoryRule {
	return []CategoryRule{
		{Name: "assault", Weight: 10, Keywords: []string{"assault", "violence", "physical", "injury", "hurt", "hit", "attack"}},
		{Name: "contempt", Weight: 8, Keywords: []string{"contempt", "violation", "custody", "order", "breach", "non-compliance"}},
		{Name: "endangerment", Weight: 9, Keywords: []string{"endangerment", "danger", "unsafe", "risk", "neglect", "welfare", "safety"}},
		{Name: "harassment", Weight: 7, Keywords: []string{"harassment", "threatening", "intimidation", "abuse", "stalking"}},
		{Name: "financial", Weight: 5, Keywords: []string{"financial", "money", "support", "payment", "expense", "cost"}},
		{Name: "communication", Weight: 4, Keywords: []string{"email", "text", "message", "communication", "correspondence"}},
		{Name: "timeline", Weight: 3, Keywords: []string{"timeline", "chronology", "sequence", "events", "history"}},
		{Name: "location", Weight: 3, Keywords: []string{"location", "gps", "geolocation", "whereabouts", "travel"}},
		{Name: "medical", Weight: 6, Keywords: []string{"medical", "health", "therapy", "doctor", "hospital", "treatment"}},
		{Name: "education", Weight: 4, Keywords: []string{"school", "education", "teacher", "academic", "learning"}},
	}
}

// RecordsConfig configures the OCR result loader
type RecordsConfig struct {
	Dir string `json:"dir" yaml:"dir"` // Directory of processed OCR CSVs
}

// ExternalConfig configures the external data scanner
type ExternalConfig struct {
	Dir string `json:"dir" yaml:"dir"` // Directory scanned for GeoJSON and email CSVs
}

// OutputConfig configures where triage artifacts are written
type OutputConfig struct {
	ExhibitDir string `json:"exhibit_dir" yaml:"exhibit_dir"`
	Verbose    bool   `json:"verbose" yaml:"verbose"`
}

// IntegrityConfig configures hash verification
type IntegrityConfig struct {
	LogPath  string        `json:"log_path" yaml:"log_path"`   // SQLite integrity log, optional
	CacheDir string        `json:"cache_dir" yaml:"cache_dir"` // Disk cache for computed file hashes
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// RecheckConfig configures the concurrent integrity recheck command
type RecheckConfig struct {
	Workers       int     `json:"workers" yaml:"workers"`
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second"` // Hash ops/sec per volume, 0 = unlimited
	Burst         int     `json:"burst" yaml:"burst"`
}

// RenderConfig configures delegation to the external PDF exhibit renderer
type RenderConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Command string `json:"command" yaml:"command"`
}

// Config enumerates every recognized option with its default. It is built
// once at pipeline start and validated before any stage runs.
type Config struct {
	CaseID     string          `json:"case_id" yaml:"case_id"`
	Records    RecordsConfig   `json:"records" yaml:"records"`
	External   ExternalConfig  `json:"external" yaml:"external"`
	Output     OutputConfig    `json:"output" yaml:"output"`
	Integrity  IntegrityConfig `json:"integrity" yaml:"integrity"`
	Recheck    RecheckConfig   `json:"recheck" yaml:"recheck"`
	Render     RenderConfig    `json:"render" yaml:"render"`
	Categories []CategoryRule  `json:"categories" yaml:"categories"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		CaseID:   "CASE-0000",
		Records:  RecordsConfig{Dir: "output"},
		External: ExternalConfig{Dir: "external_data"},
		Output:   OutputConfig{ExhibitDir: "legal_exhibits"},
		Integrity: IntegrityConfig{
			LogPath:  "evidence_integrity.db",
			CacheDir: ".casebinder-cache",
			CacheTTL: 24 * time.Hour,
		},
		Recheck: RecheckConfig{
			Workers: 4,
			Burst:   5,
		},
		Render: RenderConfig{
			Command: "exhibit-generator",
		},
		Categories: DefaultCategories(),
	}
}

// Validate checks the configuration once at pipeline start
func (c *Config) Validate() error {
	if c.CaseID == "" {
		return fmt.Errorf("case_id must not be empty")
	}
	if c.Output.ExhibitDir == "" {
		return fmt.Errorf("output.exhibit_dir must not be empty")
	}
	if c.Recheck.Workers <= 0 {
		return fmt.Errorf("recheck.workers must be positive, got %d", c.Recheck.Workers)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category rule is required")
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, rule := range c.Categories {
		if rule.Name == "" {
			return fmt.Errorf("category rule with empty name")
		}
		if rule.Weight <= 0 {
			return fmt.Errorf("category %q has non-positive weight %d", rule.Name, rule.Weight)
		}
		if seen[rule.Name] {
			return fmt.Errorf("duplicate category rule %q", rule.Name)
		}
		seen[rule.Name] = true
	}
	return nil
}
