package xconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 10000, cfg.LRUSize)
	assert.Equal(t, int64(100000), cfg.GlobalDaily)
	assert.Equal(t, 120*time.Second, cfg.OperationTimeout)
	assert.Equal(t, int64(10), cfg.CostRead)
	assert.Equal(t, int64(50), cfg.CostWrite)
	assert.InDelta(t, 0.15, cfg.BronzeReserve, 0.0001)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.InitialDelay)
	assert.Equal(t, 10*time.Second, cfg.Retry.MaxDelay)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadBytes_YAML(t *testing.T) {
	data := []byte(`
workers: 16
lru_size: 500
operation_timeout: 30s
bronze_reserve: 0.25
retry:
  max_attempts: 5
  initial_delay: 500ms
  max_delay: 20s
rate_limit:
  enabled: true
  rate: 100
  burst: 200
  period: 1m
ttl_overrides:
  reporting: 2m
`)
	cfg, err := LoadBytes(data, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Workers)
	assert.Equal(t, 500, cfg.LRUSize)
	assert.Equal(t, 30*time.Second, cfg.OperationTimeout)
	assert.InDelta(t, 0.25, cfg.BronzeReserve, 0.0001)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.InitialDelay)
	assert.Equal(t, 20*time.Second, cfg.Retry.MaxDelay)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Period)
	assert.Equal(t, 2*time.Minute, cfg.TTLOverrides["reporting"])

	// 未出现的键保持默认值
	assert.Equal(t, int64(10), cfg.CostRead)
	assert.Equal(t, int64(100000), cfg.GlobalDaily)
}

func TestLoadBytes_JSON(t *testing.T) {
	data := []byte(`{"workers": 4, "cost_read": 20}`)
	cfg, err := LoadBytes(data, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, int64(20), cfg.CostRead)
}

func TestLoadBytes_Empty(t *testing.T) {
	cfg, err := LoadBytes(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadBytes_UnsupportedFormat(t *testing.T) {
	_, err := LoadBytes([]byte("x"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadBytes_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero workers", "workers: 0"},
		{"negative lru", "lru_size: -1"},
		{"zero timeout", "operation_timeout: 0s"},
		{"reserve out of range", "bronze_reserve: 1.5"},
		{"zero attempts", "retry:\n  max_attempts: 0"},
		{"max below initial", "retry:\n  initial_delay: 5s\n  max_delay: 1s"},
		{"bad rate limit", "rate_limit:\n  enabled: true\n  rate: 0"},
		{"bad ttl override", "ttl_overrides:\n  reporting: -5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.yaml), FormatYAML)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 3"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Load("config.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)
}
