package config

import (
	"errors"
	"fmt"

	"wallclimb/internal/traversal"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every environment variable read by Load.
const Prefix = "WALLCLIMB_"

// Config is the runtime configuration of the game, read from the
// environment.
type Config struct {
	WindowWidth      int32   `env:"WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight     int32   `env:"WINDOW_HEIGHT" envDefault:"720"`
	TargetFPS        int32   `env:"TARGET_FPS" envDefault:"60"`
	Title            string  `env:"TITLE" envDefault:"Wallclimb"`
	Level            string  `env:"LEVEL" envDefault:"assets/levels/courtyard.json"`
	MouseSensitivity float32 `env:"MOUSE_SENSITIVITY" envDefault:"0.1"`

	Traversal traversal.Tuning `envPrefix:"TRAVERSAL_"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("invalid target fps %d", c.TargetFPS)
	}
	if c.Level == "" {
		return errors.New("no level configured")
	}
	if err := c.Traversal.Validate(); err != nil {
		return fmt.Errorf("traversal: %w", err)
	}
	return nil
}
