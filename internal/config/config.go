package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/orbit"
)

const (
	DefaultFPS    = 60
	DefaultSeed   = 1
	DefaultTheme  = "dark"
	DefaultFrames = 600
	DefaultDt     = 1.0 / DefaultFPS
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Bodies      []string                `yaml:"bodies,omitempty"`
	Overrides   map[string]BodyOverride `yaml:"overrides,omitempty"`
	SpeedMax    float64                 `yaml:"speed_max"`
	Seed        int64                   `yaml:"seed"`
	FPS         int                     `yaml:"fps"`
	Theme       string                  `yaml:"theme"`
	Frames      int                     `yaml:"frames"`
	Camera      CameraConfig            `yaml:"camera"`
	Kinematics  KinematicsConfig        `yaml:"kinematics"`
	Log         logging.Config          `yaml:"log"`
	MetricsAddr string                  `yaml:"metrics_addr,omitempty"`
}

// BodyOverride replaces catalog values for one body. Nil fields keep the
// catalog value.
type BodyOverride struct {
	Speed    *float64 `yaml:"speed,omitempty"`
	Distance *float64 `yaml:"distance,omitempty"`
	Radius   *float64 `yaml:"radius,omitempty"`
	Phase    *float64 `yaml:"phase,omitempty"`
}

type CameraConfig struct {
	Radius       float64 `yaml:"radius"`
	Height       float64 `yaml:"height"`
	Bob          float64 `yaml:"bob"`
	Rate         float64 `yaml:"rate"`
	NudgeStep    float64 `yaml:"nudge_step"`
	HoldDirected bool    `yaml:"hold_directed"`
}

type KinematicsConfig struct {
	OrbitRate    float64 `yaml:"orbit_rate"`
	SpinRate     float64 `yaml:"spin_rate"`
	CentralSpin  float64 `yaml:"central_spin"`
	BackdropRate float64 `yaml:"backdrop_rate"`
}

func DefaultConfig() *Config {
	cam := camera.DefaultConfig()
	kin := orbit.DefaultKinematics()
	return &Config{
		SpeedMax: orbit.SpeedMax,
		Seed:     DefaultSeed,
		FPS:      DefaultFPS,
		Theme:    DefaultTheme,
		Frames:   DefaultFrames,
		Camera: CameraConfig{
			Radius:    cam.Radius,
			Height:    cam.Height,
			Bob:       cam.Bob,
			Rate:      cam.Rate,
			NudgeStep: cam.NudgeStep,
		},
		Kinematics: KinematicsConfig{
			OrbitRate:    kin.OrbitRate,
			SpinRate:     kin.SpinRate,
			CentralSpin:  kin.CentralSpin,
			BackdropRate: kin.BackdropRate,
		},
		Log: logging.Config{Level: "info", Format: "text"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Validate checks ranges and body names. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if !(c.SpeedMax > 0) || math.IsInf(c.SpeedMax, 0) {
		return fmt.Errorf("%w: speed_max must be positive, got %v", ErrInvalidConfig, c.SpeedMax)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("%w: fps must be in (0, 240], got %d", ErrInvalidConfig, c.FPS)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, c.Frames)
	}
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("%w: theme must be dark or light, got %q", ErrInvalidConfig, c.Theme)
	}
	if c.Camera.Radius <= 0 {
		return fmt.Errorf("%w: camera radius must be positive, got %v", ErrInvalidConfig, c.Camera.Radius)
	}
	if c.Kinematics.OrbitRate <= 0 {
		return fmt.Errorf("%w: orbit_rate must be positive, got %v", ErrInvalidConfig, c.Kinematics.OrbitRate)
	}

	known := make(map[string]bool)
	for _, s := range orbit.DefaultCatalog() {
		known[strings.ToLower(s.Name)] = true
	}
	for _, name := range c.Bodies {
		if !known[strings.ToLower(name)] {
			return fmt.Errorf("%w: unknown body %q", ErrInvalidConfig, name)
		}
	}
	for name, o := range c.Overrides {
		if !known[strings.ToLower(name)] {
			return fmt.Errorf("%w: override for unknown body %q", ErrInvalidConfig, name)
		}
		if o.Speed != nil && *o.Speed < 0 {
			return fmt.Errorf("%w: %s: speed must be non-negative", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Catalog returns the selected bodies with overrides applied, in catalog order.
func (c *Config) Catalog() []orbit.Spec {
	selected := make(map[string]bool, len(c.Bodies))
	for _, name := range c.Bodies {
		selected[strings.ToLower(name)] = true
	}
	overrides := make(map[string]BodyOverride, len(c.Overrides))
	for name, o := range c.Overrides {
		overrides[strings.ToLower(name)] = o
	}

	var out []orbit.Spec
	for _, s := range orbit.DefaultCatalog() {
		key := strings.ToLower(s.Name)
		if len(selected) > 0 && !selected[key] {
			continue
		}
		if o, ok := overrides[key]; ok {
			if o.Speed != nil {
				s.Speed = *o.Speed
			}
			if o.Distance != nil {
				s.Distance = *o.Distance
			}
			if o.Radius != nil {
				s.Radius = *o.Radius
			}
			if o.Phase != nil {
				s.Phase = orbit.PhaseAt(*o.Phase)
			}
		}
		out = append(out, s)
	}
	return out
}

// Simulation converts the file format into the state machine's config.
func (c *Config) Simulation() control.Config {
	cfg := control.DefaultConfig()
	cfg.Bodies = c.Catalog()
	cfg.SpeedMax = c.SpeedMax
	cfg.Seed = c.Seed
	cfg.Kinematics = orbit.Kinematics{
		OrbitRate:    c.Kinematics.OrbitRate,
		SpinRate:     c.Kinematics.SpinRate,
		CentralSpin:  c.Kinematics.CentralSpin,
		BackdropRate: c.Kinematics.BackdropRate,
	}
	cfg.Camera.Radius = c.Camera.Radius
	cfg.Camera.Height = c.Camera.Height
	cfg.Camera.Bob = c.Camera.Bob
	cfg.Camera.Rate = c.Camera.Rate
	cfg.Camera.NudgeStep = c.Camera.NudgeStep
	cfg.Camera.HoldDirected = c.Camera.HoldDirected
	return cfg
}

// Dt is the fixed frame step for headless runs.
func (c *Config) Dt() float64 {
	if c.FPS <= 0 {
		return DefaultDt
	}
	return 1.0 / float64(c.FPS)
}

func (c *Config) LightTheme() bool { return c.Theme == "light" }
