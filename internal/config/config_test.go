package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 16, cfg.RenderDiameter())
	assert.Equal(t, 256, cfg.Dims().Width)
	assert.Equal(t, 64, cfg.Dims().Height)
	assert.Equal(t, 256, cfg.Dims().Depth)
	assert.InDelta(t, 0.15, cfg.Tick.Interval, 1e-9)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel())
}

func TestLoadValidatesDefaultsPath(t *testing.T) {
	bad := Defaults()
	bad.Tick.Interval = 0
	_, err := load("", bad)
	assert.ErrorContains(t, err, "defaults")

	_, err = load("  ", Defaults())
	assert.NoError(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	data := []byte(`
world:
  seed: 42
streaming:
  platform: Constrained
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.World.Seed)
	assert.Equal(t, 16, cfg.World.SizeChunks)
	assert.Equal(t, PlatformConstrained, cfg.Streaming.Platform)
	assert.Equal(t, 4, cfg.RenderDiameter())
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel())
}

func TestRenderDiameterOverrideIsClamped(t *testing.T) {
	cfg := Defaults()
	cfg.Streaming.RenderDiameter = 100
	cfg.Normalize()
	assert.Equal(t, 32, cfg.RenderDiameter())

	cfg.Streaming.RenderDiameter = 1
	cfg.Normalize()
	assert.Equal(t, 2, cfg.RenderDiameter())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.World.SizeChunks = 0 }},
		{"odd height", func(c *Config) { c.World.Height = 60 }},
		{"sea above sky", func(c *Config) { c.World.SeaLevel = 64 }},
		{"unknown platform", func(c *Config) { c.Streaming.Platform = "toaster" }},
		{"no tick", func(c *Config) { c.Tick.Interval = 0 }},
		{"negative cooldown", func(c *Config) { c.Tick.BreakCooldown = -1 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"negative fps cap", func(c *Config) { c.Window.FPSLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadReportsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world: [1, 2"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
