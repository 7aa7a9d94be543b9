// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ==========================
// Loader Tests
// ==========================

func TestLoadFromFile_DefaultsApplied(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: vendor-analytics-agent
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Agent.MinConfidence, 1e-9)
	assert.Equal(t, 5, cfg.Agent.DefaultLimit)
	assert.Equal(t, 8, cfg.Agent.DefaultWeeks)
	assert.Equal(t, 90, cfg.Agent.DefaultRangeDays)
	assert.Equal(t, 1800, cfg.Agent.MemoryTTL)
	assert.Equal(t, "localhost", cfg.Database.Postgres.Host)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "vendor_analytics", cfg.Database.Postgres.Database)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
}

func TestLoadFromFile_ExplicitValuesKept(t *testing.T) {
	path := writeConfigFile(t, `
agent:
  min_confidence: 0.7
  default_limit: 10
  default_weeks: 4
logging:
  level: debug
  format: console
metrics:
  enabled: true
  address: ":9200"
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.InDelta(t, 0.7, cfg.Agent.MinConfidence, 1e-9)
	assert.Equal(t, 10, cfg.Agent.DefaultLimit)
	assert.Equal(t, 4, cfg.Agent.DefaultWeeks)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9200", cfg.Metrics.Address)
}

func TestLoadFromFile_ValidationRejectsBadTunables(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "confidence above one",
			content: `
agent:
  min_confidence: 1.5
`,
		},
		{
			name: "limit out of range",
			content: `
agent:
  default_limit: 250
`,
		},
		{
			name: "weeks out of range",
			content: `
agent:
  default_weeks: 60
`,
		},
		{
			name: "range days out of range",
			content: `
agent:
  default_range_days: 500
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			_, err := LoadFromFile(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	t.Setenv("DB_USER", "analytics_rw")
	t.Setenv("DB_PASSWORD", "s3cret")

	path := writeConfigFile(t, `
database:
  postgres:
    user: ${DB_USER}
    password: ${DB_PASSWORD}
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "analytics_rw", cfg.Database.Postgres.User)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		Database: "vendor_analytics",
		User:     "svc",
		Password: "pw",
		SSLMode:  "require",
	}

	dsn := cfg.GetDSN()

	assert.Equal(t, "host=db.internal port=5433 user=svc password=pw dbname=vendor_analytics sslmode=require", dsn)
}
