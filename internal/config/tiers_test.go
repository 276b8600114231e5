package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTierThresholds(t *testing.T) {
	data := []byte(`
thresholds:
  - min_cost: 9000
    tier: 5
  - {min_cost: 5000, tier: 4}
  - {min_cost: 500, tier: 2}
`)
	got, err := ParseTierThresholds(data)
	require.NoError(t, err)
	assert.Equal(t, []TierThreshold{{MinCost: 9000, Tier: 5}, {MinCost: 5000, Tier: 4}, {MinCost: 500, Tier: 2}}, got)
}

func TestParseTierThresholdsRejectsBadTables(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		err  string
	}{
		{name: "empty", yaml: "thresholds: []", err: "no entries"},
		{name: "tier out of range", yaml: "thresholds: [{min_cost: 100, tier: 7}]", err: "outside 1-5"},
		{name: "not descending", yaml: "thresholds: [{min_cost: 100, tier: 3}, {min_cost: 200, tier: 2}]", err: "is not below"},
		{name: "malformed", yaml: "thresholds: {", err: "parse tier thresholds"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTierThresholds([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.err)
		})
	}
}

func TestLoadReadsTierThresholdsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thresholds: [{min_cost: 4000, tier: 3}]"), 0o644))
	t.Setenv("TIER_THRESHOLDS_FILE", path)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXPORT_PLAIN_TEXT", "off")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []TierThreshold{{MinCost: 4000, Tier: 3}}, cfg.TierThresholds)
	assert.Equal(t, "DEBUG", cfg.LogLevel.String())
	assert.False(t, cfg.ExportPlainText)
}

func TestRequire(t *testing.T) {
	var cfg Config
	assert.Error(t, cfg.Require("ITEMS_API_BASE_URL", " "))
	assert.NoError(t, cfg.Require("ITEMS_API_BASE_URL", "https://example.test"))
}
