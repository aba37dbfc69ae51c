package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Window title and size are fixed; they are not exposed as flags.
const (
	WindowTitle   = "ParticlePanic"
	InitialWidth  = 900
	InitialHeight = 600
)

const (
	DefaultTimerInterval = 30 * time.Millisecond
	DefaultPollWait      = 5 * time.Millisecond
	DefaultResolution2D  = 64
	DefaultResolution3D  = 12
	DefaultGravity       = 400.0
	DefaultBrushRadius   = 24.0
	DefaultPerDraw       = 6
	DefaultMaxParticles  = 6000
	DefaultDt            = 0.016
	DefaultStiffness     = 900.0
	DefaultViscosity     = 4.0
	DefaultDamping       = 0.5
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Host          string        `yaml:"host" toml:"host"`
	Backend       string        `yaml:"backend" toml:"backend"`
	TimerInterval time.Duration `yaml:"timer_interval" toml:"timer_interval"`
	DrawInTimer   bool          `yaml:"draw_in_timer" toml:"draw_in_timer"`
	VSync         bool          `yaml:"vsync" toml:"vsync"`
	PollWait      time.Duration `yaml:"poll_wait" toml:"poll_wait"`
	Sim           Sim           `yaml:"sim" toml:"sim"`
	Logging       Logging       `yaml:"logging" toml:"logging"`
}

type Sim struct {
	Resolution2D     int     `yaml:"resolution_2d" toml:"resolution_2d"`
	Resolution3D     int     `yaml:"resolution_3d" toml:"resolution_3d"`
	Gravity          float64 `yaml:"gravity" toml:"gravity"`
	BrushRadius      float64 `yaml:"brush_radius" toml:"brush_radius"`
	ParticlesPerDraw int     `yaml:"particles_per_draw" toml:"particles_per_draw"`
	MaxParticles     int     `yaml:"max_particles" toml:"max_particles"`
	Dt               float64 `yaml:"dt" toml:"dt"`
	Stiffness        float64 `yaml:"stiffness" toml:"stiffness"`
	Viscosity        float64 `yaml:"viscosity" toml:"viscosity"`
	Damping          float64 `yaml:"damping" toml:"damping"` // velocity kept on wall bounce (0-1)
	Workers          int     `yaml:"workers" toml:"workers"` // 0 = one per CPU
}

type Logging struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" or "console"
	File   string `yaml:"file" toml:"file"`     // empty = stderr
}

func DefaultConfig() *Config {
	return &Config{
		Host:          "raylib",
		Backend:       "auto",
		TimerInterval: DefaultTimerInterval,
		DrawInTimer:   false,
		VSync:         true,
		PollWait:      DefaultPollWait,
		Sim:           DefaultSim(),
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

func DefaultSim() Sim {
	return Sim{
		Resolution2D:     DefaultResolution2D,
		Resolution3D:     DefaultResolution3D,
		Gravity:          DefaultGravity,
		BrushRadius:      DefaultBrushRadius,
		ParticlesPerDraw: DefaultPerDraw,
		MaxParticles:     DefaultMaxParticles,
		Dt:               DefaultDt,
		Stiffness:        DefaultStiffness,
		Viscosity:        DefaultViscosity,
		Damping:          DefaultDamping,
	}
}

// Load reads a config file over the defaults. Files ending in .toml are
// parsed as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Host {
	case "raylib", "term":
	default:
		return fmt.Errorf("%w: host %q", ErrInvalid, c.Host)
	}
	switch c.Backend {
	case "auto", "cpu", "gpu":
	default:
		return fmt.Errorf("%w: backend %q", ErrInvalid, c.Backend)
	}
	if c.TimerInterval < time.Millisecond {
		return fmt.Errorf("%w: timer_interval %s below 1ms", ErrInvalid, c.TimerInterval)
	}
	if c.PollWait < 0 {
		return fmt.Errorf("%w: poll_wait %s", ErrInvalid, c.PollWait)
	}
	return c.Sim.Validate()
}

func (s Sim) Validate() error {
	if s.Resolution2D <= 0 || s.Resolution3D <= 0 {
		return fmt.Errorf("%w: resolution must be positive", ErrInvalid)
	}
	if s.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalid, s.Dt)
	}
	if s.BrushRadius <= 0 {
		return fmt.Errorf("%w: brush_radius must be positive", ErrInvalid)
	}
	if s.ParticlesPerDraw <= 0 || s.MaxParticles <= 0 {
		return fmt.Errorf("%w: particle counts must be positive", ErrInvalid)
	}
	if s.Damping < 0 || s.Damping > 1 {
		return fmt.Errorf("%w: damping %f outside [0,1]", ErrInvalid, s.Damping)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, s.Workers)
	}
	return nil
}
