package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/isopuzzle/internal/session"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, session.DefaultParams(), cfg.Game.Params())
	assert.Equal(t, 5, cfg.Game.BaseNodes)
	assert.Equal(t, 60, cfg.Game.FPS)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "isopuzzle.yaml", `
server:
  addr: ":9000"
log:
  format: json
game:
  base_nodes: 6
  tolerance: 25
  seed: 42
`)
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep defaults")
	assert.Equal(t, 6, cfg.Game.BaseNodes)
	assert.Equal(t, 25.0, cfg.Game.Tolerance)
	assert.Equal(t, 15.0, cfg.Game.NodeRadius)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestLoadHCL(t *testing.T) {
	path := writeFile(t, "isopuzzle.hcl", `
log {
  level = "debug"
}

game {
  fps          = 30
  max_attempts = 50
  width        = 1200
}
`)
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr, "missing block keeps defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 30, cfg.Game.FPS)
	assert.Equal(t, 50, cfg.Game.MaxAttempts)
	assert.Equal(t, 1200.0, cfg.Game.Width)
	assert.Equal(t, 600.0, cfg.Game.Height)
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadFromPath(writeFile(t, "bad.hcl", `game { fps = "fast" }`))
	assert.Error(t, err)

	_, err = LoadFromPath(writeFile(t, "bad.yaml", "game: [1, 2"))
	assert.Error(t, err)

	_, err = LoadFromPath(writeFile(t, "cfg.toml", "x = 1"))
	assert.Error(t, err)

	_, err = LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"ISOPUZZLE_ADDR":       "127.0.0.1:7000",
		"ISOPUZZLE_LOG_LEVEL":  "warn",
		"ISOPUZZLE_BASE_NODES": "8",
		"ISOPUZZLE_TOLERANCE":  "12.5",
		"ISOPUZZLE_SEED":       "-3",
		"ISOPUZZLE_FPS":        "",
	}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Game.BaseNodes)
	assert.Equal(t, 12.5, cfg.Game.Tolerance)
	assert.Equal(t, int64(-3), cfg.Game.Seed)
	assert.Equal(t, 60, cfg.Game.FPS)
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"ISOPUZZLE_FPS":   "sixty",
		"ISOPUZZLE_WIDTH": "wide",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ISOPUZZLE_FPS")
	assert.Contains(t, err.Error(), "ISOPUZZLE_WIDTH")
	assert.Equal(t, 60, cfg.Game.FPS)
}

func TestEnvLookupReadsDotenv(t *testing.T) {
	path := writeFile(t, ".env", "ISOPUZZLE_TEST_ONLY_KEY=from-file\n")
	lookup, err := EnvLookup(path)
	require.NoError(t, err)

	v, ok := lookup("ISOPUZZLE_TEST_ONLY_KEY")
	assert.True(t, ok)
	assert.Equal(t, "from-file", v)
	_, set := os.LookupEnv("ISOPUZZLE_TEST_ONLY_KEY")
	assert.False(t, set, "process environment untouched")

	t.Setenv("ISOPUZZLE_TEST_ONLY_KEY", "from-env")
	v, _ = lookup("ISOPUZZLE_TEST_ONLY_KEY")
	assert.Equal(t, "from-env", v)
}

func TestEnvLookupMissingFile(t *testing.T) {
	lookup, err := EnvLookup(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	_, ok := lookup("ISOPUZZLE_NOPE")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"log level", func(c *Config) { c.Log.Level = "trace" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"base nodes", func(c *Config) { c.Game.BaseNodes = 3 }},
		{"small board", func(c *Config) { c.Game.Height = 50 }},
		{"tolerance", func(c *Config) { c.Game.Tolerance = 0 }},
		{"layout radius", func(c *Config) { c.Game.LayoutRadius = 300 }},
		{"fps", func(c *Config) { c.Game.FPS = 0 }},
		{"attempts", func(c *Config) { c.Game.MaxAttempts = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
