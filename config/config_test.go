package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, ".NS", cfg.Market.Suffix)
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database:
  path: /tmp/ledger.db
market:
  suffix: ".US"
  currency: "$"
quote:
  timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ledger.db", cfg.Database.Path)
	assert.Equal(t, ".US", cfg.Market.Suffix)
	assert.Equal(t, "$", cfg.Market.Currency)

	timeout, err := cfg.Quote.ParseTimeout()
	assert.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"database":{"path":"./x.db"},"market":{"suffix":".NS","currency":"₹"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "./x.db", cfg.Database.Path)
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing_db_path", mutate: func(c *Config) { c.Database.Path = "" }},
		{name: "bad_suffix", mutate: func(c *Config) { c.Market.Suffix = "NS" }},
		{name: "bad_timeout", mutate: func(c *Config) { c.Quote.Timeout = "soon" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	cfg := Default()
	cfg.Database.Path = "/var/lib/fintrack/ledger.db"

	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Database.Path, got.Database.Path)
	assert.Equal(t, cfg.Market.Suffix, got.Market.Suffix)
}
