package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"crosscraft/internal/voxel"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ChunkSize is the lateral edge of a chunk in blocks.
const ChunkSize = 16

// Platform profiles select the streaming window size.
const (
	PlatformDesktop     = "desktop"
	PlatformConstrained = "constrained"
)

var platformDiameters = map[string]int{
	PlatformDesktop:     16,
	PlatformConstrained: 4,
}

const (
	minDiameter = 2
	maxDiameter = 32
)

// Config is the root configuration of the client.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Streaming StreamingConfig `yaml:"streaming"`
	Tick      TickConfig      `yaml:"tick"`
	Particles ParticleConfig  `yaml:"particles"`
	Log       LogConfig       `yaml:"log"`
	Window    WindowConfig    `yaml:"window"`
}

type WorldConfig struct {
	SizeChunks int   `yaml:"size_chunks"`
	Height     int   `yaml:"height"`
	Seed       int64 `yaml:"seed"`
	SeaLevel   int   `yaml:"sea_level"`
}

type StreamingConfig struct {
	Platform string `yaml:"platform"`
	// RenderDiameter overrides the platform default when non-zero.
	RenderDiameter int `yaml:"render_diameter"`
}

// TickConfig values are in simulated seconds.
type TickConfig struct {
	Interval            float64 `yaml:"interval"`
	RandomTicksPerChunk int     `yaml:"random_ticks_per_chunk"`
	PlaceCooldown       float64 `yaml:"place_cooldown"`
	BreakCooldown       float64 `yaml:"break_cooldown"`
}

type ParticleConfig struct {
	PerBurst int     `yaml:"per_burst"`
	Lifetime float64 `yaml:"lifetime"`
	Gravity  float32 `yaml:"gravity"`
	Capacity int     `yaml:"capacity"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	Atlas  string `yaml:"atlas"`
	// FPSLimit caps the frame rate; zero leaves pacing to vsync.
	FPSLimit int `yaml:"fps_limit"`
}

// Defaults returns the desktop configuration.
func Defaults() Config {
	return Config{
		World: WorldConfig{
			SizeChunks: 16,
			Height:     64,
			Seed:       1,
			SeaLevel:   32,
		},
		Streaming: StreamingConfig{
			Platform: PlatformDesktop,
		},
		Tick: TickConfig{
			Interval:            0.15,
			RandomTicksPerChunk: 3,
			PlaceCooldown:       0.2,
			BreakCooldown:       0.2,
		},
		Particles: ParticleConfig{
			PerBurst: 12,
			Lifetime: 0.8,
			Gravity:  16,
			Capacity: 512,
		},
		Log: LogConfig{
			Level: "info",
		},
		Window: WindowConfig{
			Width:    900,
			Height:   600,
			Title:    "crosscraft",
			Atlas:    "assets/terrain.png",
			FPSLimit: 120,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
// Both are normalized and validated the same way.
func Load(path string) (Config, error) {
	return load(path, Defaults())
}

func load(path string, cfg Config) (Config, error) {
	source := "defaults"
	if strings.TrimSpace(path) != "" {
		source = path
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Normalize fills blanks and clamps the render diameter.
func (c *Config) Normalize() {
	c.Streaming.Platform = strings.ToLower(strings.TrimSpace(c.Streaming.Platform))
	if c.Streaming.Platform == "" {
		c.Streaming.Platform = PlatformDesktop
	}
	if d := c.Streaming.RenderDiameter; d != 0 {
		c.Streaming.RenderDiameter = min(max(d, minDiameter), maxDiameter)
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports every inconsistent setting.
func (c Config) Validate() error {
	var errs []error
	if c.World.SizeChunks <= 0 || c.World.SizeChunks > 256 {
		errs = append(errs, fmt.Errorf("world.size_chunks must be in [1,256], got %d", c.World.SizeChunks))
	}
	if c.World.Height <= 0 || c.World.Height%voxel.GroupHeight != 0 {
		errs = append(errs, fmt.Errorf("world.height must be a positive multiple of %d, got %d", voxel.GroupHeight, c.World.Height))
	}
	if c.World.SeaLevel < 0 || c.World.SeaLevel >= c.World.Height {
		errs = append(errs, fmt.Errorf("world.sea_level must be below world.height, got %d", c.World.SeaLevel))
	}
	if _, ok := platformDiameters[c.Streaming.Platform]; !ok {
		errs = append(errs, fmt.Errorf("streaming.platform %q is not one of %s, %s", c.Streaming.Platform, PlatformDesktop, PlatformConstrained))
	}
	if c.Tick.Interval <= 0 {
		errs = append(errs, fmt.Errorf("tick.interval must be positive, got %v", c.Tick.Interval))
	}
	if c.Tick.RandomTicksPerChunk < 0 {
		errs = append(errs, fmt.Errorf("tick.random_ticks_per_chunk must not be negative"))
	}
	if c.Tick.PlaceCooldown < 0 || c.Tick.BreakCooldown < 0 {
		errs = append(errs, fmt.Errorf("tick cooldowns must not be negative"))
	}
	if c.Window.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("window.fps_limit must not be negative, got %d", c.Window.FPSLimit))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if err := c.Dims().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Dims returns the voxel extent of the world.
func (c Config) Dims() voxel.Dims {
	side := c.World.SizeChunks * ChunkSize
	return voxel.Dims{Width: side, Height: c.World.Height, Depth: side}
}

// RenderDiameter returns the streaming window diameter in chunks.
func (c Config) RenderDiameter() int {
	if c.Streaming.RenderDiameter != 0 {
		return c.Streaming.RenderDiameter
	}
	if d, ok := platformDiameters[c.Streaming.Platform]; ok {
		return d
	}
	return platformDiameters[PlatformDesktop]
}

// LogLevel parses the configured level, falling back to info.
func (c Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
