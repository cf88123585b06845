package config

import (
	"fmt"
	"os"

	"github.com/df07/go-sky-compositor/pkg/sky"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Config holds pass and sky settings loaded from a YAML file
type Config struct {
	Width    int       `yaml:"width"`    // Output width in pixels
	Height   int       `yaml:"height"`   // Output height in pixels
	TileSize int       `yaml:"tileSize"` // Tile edge length for the worker pool
	Workers  int       `yaml:"workers"`  // Parallel workers (0 = CPU count)
	Sky      SkyConfig `yaml:"sky"`
}

// SkyConfig mirrors the per-frame settings record uploaded to the
// compositor. Rotations are quaternion-shaped (x, y, z, w).
type SkyConfig struct {
	TimeOfDay    float64    `yaml:"timeOfDay"`
	SunRotation  [4]float64 `yaml:"sunRotation"`
	MoonRotation [4]float64 `yaml:"moonRotation"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Width:    800,
		Height:   450, // 16:9 aspect ratio
		TileSize: 64,
		Workers:  0,
		Sky: SkyConfig{
			TimeOfDay:    0.5, // Midday
			SunRotation:  [4]float64{0, 0, 0, 1},
			MoonRotation: [4]float64{0, 0, 0, 1},
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the pass parameters. Sky settings are deliberately not
// validated: the compositor accepts any values and never reads them in the
// current blend.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// Settings converts the YAML representation into the compositor's
// settings record
func (c SkyConfig) Settings() sky.Settings {
	return sky.Settings{
		TimeOfDay:    c.TimeOfDay,
		SunRotation:  mgl64.Vec4(c.SunRotation),
		MoonRotation: mgl64.Vec4(c.MoonRotation),
	}
}
