package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty case id", func(c *Config) { c.CaseID = "" }, "case_id"},
		{"empty exhibit dir", func(c *Config) { c.Output.ExhibitDir = "" }, "exhibit_dir"},
		{"zero workers", func(c *Config) { c.Recheck.Workers = 0 }, "workers"},
		{"no categories", func(c *Config) { c.Categories = nil }, "category"},
		{"unnamed category", func(c *Config) { c.Categories[0].Name = "" }, "empty name"},
		{"non-positive weight", func(c *Config) { c.Categories[0].Weight = 0 }, "weight"},
		{"duplicate category", func(c *Config) { c.Categories[1].Name = c.Categories[0].Name }, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultCategories_DeclarationOrderStable(t *testing.T) {
	first := DefaultCategories()
	second := DefaultCategories()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Weight, second[i].Weight)
	}
	// assault leads the table; the tie-break depends on this ordering
	assert.Equal(t, "assault", first[0].Name)
}
