// Package config reads blockplan settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/solver"
)

// Config holds process-wide settings. CLI flags override these per command.
type Config struct {
	DBPath         string
	Solver         string
	Encoding       domain.Encoding
	LogUseCases    bool
	SolveTimeoutMs int
}

// DefaultConfig returns the defaults used when no environment variable is set.
// DBPath is left empty; LoadConfig resolves it against the home directory.
func DefaultConfig() Config {
	return Config{
		Solver:         solver.NameGophersat,
		Encoding:       domain.DefaultEncoding,
		SolveTimeoutMs: 30000,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for unset ones. A malformed value is an error naming its
// variable.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("BLOCKPLAN_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".blockplan", "blockplan.db")
	}

	if v := os.Getenv("BLOCKPLAN_SOLVER"); v != "" {
		if _, err := solver.New(v); err != nil {
			return cfg, fmt.Errorf("BLOCKPLAN_SOLVER: %w", err)
		}
		cfg.Solver = v
	}
	if v := os.Getenv("BLOCKPLAN_ENCODING"); v != "" {
		enc, err := domain.ParseEncoding(v)
		if err != nil {
			return cfg, fmt.Errorf("BLOCKPLAN_ENCODING: %w", err)
		}
		cfg.Encoding = enc
	}
	if v := os.Getenv("BLOCKPLAN_LOG_USE_CASES"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("BLOCKPLAN_LOG_USE_CASES: %w", err)
		}
		cfg.LogUseCases = on
	}
	if v := os.Getenv("BLOCKPLAN_SOLVE_TIMEOUT_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("BLOCKPLAN_SOLVE_TIMEOUT_MS: %w", err)
		}
		if n <= 0 {
			return cfg, fmt.Errorf("BLOCKPLAN_SOLVE_TIMEOUT_MS: %d must be positive", n)
		}
		cfg.SolveTimeoutMs = n
	}
	return cfg, nil
}

// SolveTimeout is SolveTimeoutMs as a duration.
func (c Config) SolveTimeout() time.Duration {
	return time.Duration(c.SolveTimeoutMs) * time.Millisecond
}
