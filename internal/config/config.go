package config

import (
	"os"

	"github.com/san-kum/lorentz/internal/billiard"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 20.0
	DefaultSpeed    = 1.0
	DefaultX        = 2.0
	DefaultY        = 0.5
	DefaultVX       = 1.0
	DefaultVY       = 0.3
)

type Config struct {
	Model      string            `yaml:"model"`
	Integrator string            `yaml:"integrator"`
	Dt         float64           `yaml:"dt"`
	Duration   float64           `yaml:"duration"`
	Seed       int64             `yaml:"seed"`
	Table      billiard.Geometry `yaml:"table"`
	InitState  InitStateConfig   `yaml:"init_state"`
}

type InitStateConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
	// Random draws position and direction from the seed instead.
	Random bool    `yaml:"random"`
	Speed  float64 `yaml:"speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "lorentz",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Table:      billiard.DefaultGeometry(),
		InitState: InitStateConfig{
			X:     DefaultX,
			Y:     DefaultY,
			VX:    DefaultVX,
			VY:    DefaultVY,
			Speed: DefaultSpeed,
		},
	}
}

// Load reads a YAML config file. Fields missing from the file keep their
// DefaultConfig values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML config file on top of base. Fields missing from the
// file keep their base values; base itself is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetInitState() []float64 {
	return []float64{c.InitState.X, c.InitState.Y, c.InitState.VX, c.InitState.VY}
}
