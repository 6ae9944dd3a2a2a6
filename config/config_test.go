package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/satbot/satbot/solver"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "satbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 30*time.Second, cfg.Server.SolveTimeout)

	opts, err := cfg.Solver.Options()
	require.NoError(t, err)
	require.Equal(t, solver.DefaultOptions(), opts)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  solve_timeout: 5s
solver:
  restart_policy: luby
  luby_factor: 50
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, 5*time.Second, cfg.Server.SolveTimeout)

	opts, err := cfg.Solver.Options()
	require.NoError(t, err)
	require.Equal(t, solver.RestartLuby, opts.RestartPolicy)
	require.Equal(t, 50, opts.LubyFactor)
	// Untouched fields keep their defaults.
	require.Equal(t, solver.DefaultOptions().VarDecay, opts.VarDecay)
	require.Equal(t, solver.DefaultOptions().MaxLearned, opts.MaxLearned)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "server: [not: a: map\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestOptionsRejectsBadPolicy(t *testing.T) {
	cfg := Default()
	cfg.Solver.RestartPolicy = "random"
	_, err := cfg.Solver.Options()
	require.Error(t, err)
	require.Contains(t, err.Error(), "restart policy")
}
