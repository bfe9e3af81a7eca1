package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BLOCKPLAN_DB", "")
	t.Setenv("BLOCKPLAN_SOLVER", "")
	t.Setenv("BLOCKPLAN_ENCODING", "")
	t.Setenv("BLOCKPLAN_LOG_USE_CASES", "")
	t.Setenv("BLOCKPLAN_SOLVE_TIMEOUT_MS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".blockplan", "blockplan.db"), cfg.DBPath)
	assert.Equal(t, solver.NameGophersat, cfg.Solver)
	assert.Equal(t, domain.EncodingWindowIndicator, cfg.Encoding)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, 30*time.Second, cfg.SolveTimeout())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BLOCKPLAN_DB", "/tmp/plan.db")
	t.Setenv("BLOCKPLAN_SOLVER", "gini")
	t.Setenv("BLOCKPLAN_ENCODING", "b")
	t.Setenv("BLOCKPLAN_LOG_USE_CASES", "true")
	t.Setenv("BLOCKPLAN_SOLVE_TIMEOUT_MS", "1500")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/plan.db", cfg.DBPath)
	assert.Equal(t, solver.NameGini, cfg.Solver)
	assert.Equal(t, domain.EncodingWindowStart, cfg.Encoding)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 1500*time.Millisecond, cfg.SolveTimeout())
}

func TestLoadConfig_RejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"timeout not a number", "BLOCKPLAN_SOLVE_TIMEOUT_MS", "soon"},
		{"timeout zero", "BLOCKPLAN_SOLVE_TIMEOUT_MS", "0"},
		{"timeout negative", "BLOCKPLAN_SOLVE_TIMEOUT_MS", "-5"},
		{"log flag", "BLOCKPLAN_LOG_USE_CASES", "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BLOCKPLAN_DB", "/tmp/plan.db")
			t.Setenv("BLOCKPLAN_SOLVE_TIMEOUT_MS", "")
			t.Setenv("BLOCKPLAN_LOG_USE_CASES", "")
			t.Setenv(tt.env, tt.value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.env)
		})
	}
}

func TestLoadConfig_RejectsUnknownSolver(t *testing.T) {
	t.Setenv("BLOCKPLAN_DB", "/tmp/plan.db")
	t.Setenv("BLOCKPLAN_SOLVER", "cplex")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLOCKPLAN_SOLVER")
}

func TestLoadConfig_RejectsUnknownEncoding(t *testing.T) {
	t.Setenv("BLOCKPLAN_DB", "/tmp/plan.db")
	t.Setenv("BLOCKPLAN_ENCODING", "interval")

	_, err := LoadConfig()
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, domain.ConfigErrUnknownEncoding, cfgErr.Code)
}
