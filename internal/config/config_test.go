package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/solver"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, solver.DefaultTolerance, cfg.Solver.Tolerance)
	assert.Zero(t, cfg.Solver.Discount)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "markov.yaml", `
solver:
  discount: 0.9
  max_iterations: 500
store:
  driver: redis
  redis:
    addr: redis:6379
    ttl: 10m
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Solver.Discount)
	assert.Equal(t, 500, cfg.Solver.MaxIterations)
	assert.Equal(t, solver.DefaultTolerance, cfg.Solver.Tolerance, "unset keys keep defaults")
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "markov:solution:", cfg.Store.Redis.Prefix)
	assert.Equal(t, 10*time.Minute, cfg.Store.Redis.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "markov.json", `{"server": {"addr": ":9000", "state_limit": 50}, "log": {"format": "json"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 50, cfg.Server.StateLimit)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown Key", "solver:\n  gamma: 0.5\n"},
		{"Bad Discount", "solver:\n  discount: 2\n"},
		{"Bad Driver", "store:\n  driver: etcd\n"},
		{"Bad Format", "log:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, "markov.yaml", tt.content))
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(write(t, "markov.yaml", "solver: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
