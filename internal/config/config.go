// Package config loads and saves the map game settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables that override file values
const (
	EnvMap     = "MAPGAME_MAP"
	EnvMapsDir = "MAPGAME_MAPS_DIR"
)

// DefaultPath is used when no -config flag is given
const DefaultPath = "config.json"

// Config represents the settings of one game session.
type Config struct {
	MapName              string  `json:"map_name" validate:"required"`
	MapsDir              string  `json:"maps_dir"`
	MinZoom              float64 `json:"min_zoom" validate:"gt=0"`
	MaxZoom              float64 `json:"max_zoom" validate:"gt=0,gtefield=MinZoom"`
	NationIDProperty     string  `json:"nation_id_property"`
	NationNameProperty   string  `json:"nation_name_property" validate:"required"`
	ProvinceIDProperty   string  `json:"province_id_property"`
	ProvinceNameProperty string  `json:"province_name_property" validate:"required"`
}

var validate = validator.New()

// Default returns the settings written on first start.
// An empty MapsDir resolves to ~/.mapgame/maps.
func Default() *Config {
	return &Config{
		MapName:              "earth",
		MinZoom:              1,
		MaxZoom:              16,
		NationIDProperty:     "ISO_A3",
		NationNameProperty:   "ADMIN",
		ProvinceNameProperty: "name",
	}
}

// Load reads the configuration at path, creating it with defaults when it
// does not exist. A .env file next to it is loaded first, then MAPGAME_*
// variables override the file.
func Load(path string) (*Config, error) {
	if err := loadEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ClampZoom limits z to [MinZoom, MaxZoom]
func (c *Config) ClampZoom(z float64) float64 {
	if z < c.MinZoom {
		return c.MinZoom
	}
	if z > c.MaxZoom {
		return c.MaxZoom
	}
	return z
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMap); v != "" {
		c.MapName = v
	}
	if v := os.Getenv(EnvMapsDir); v != "" {
		c.MapsDir = v
	}
}

// loadEnv does not override variables that are already set
func loadEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}
