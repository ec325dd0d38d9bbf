package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort          = 8050
	DefaultMaxInputBytes = 1 << 20
	DefaultPNGWidth      = 800
	DefaultPNGHeight     = 700
	DefaultSamplesDir    = "./samples"
)

// Config holds the application configuration
type Config struct {
	Port          int    `yaml:"port"`
	SamplesDir    string `yaml:"samples_dir"`
	Headless      bool   `yaml:"headless"`
	MaxInputBytes int64  `yaml:"max_input_bytes"`
	PNGWidth      int    `yaml:"png_width"`
	PNGHeight     int    `yaml:"png_height"`
	Version       string `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing else is set
func DefaultConfig() *Config {
	return &Config{
		Port:          DefaultPort,
		SamplesDir:    DefaultSamplesDir,
		MaxInputBytes: DefaultMaxInputBytes,
		PNGWidth:      DefaultPNGWidth,
		PNGHeight:     DefaultPNGHeight,
	}
}

// Load builds the configuration from defaults, an optional YAML file and then
// the environment (a .env file in the working directory is read if present).
// The result is not validated; callers apply their own overrides first and
// then call Validate.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the server cannot run with
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("max_input_bytes must be positive, got %d", c.MaxInputBytes)
	}
	if c.PNGWidth <= 0 || c.PNGHeight <= 0 {
		return fmt.Errorf("invalid png size %dx%d", c.PNGWidth, c.PNGHeight)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("RFRADAR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RFRADAR_PORT: %w", err)
		}
		c.Port = port
	}
	if v := os.Getenv("RFRADAR_SAMPLES_DIR"); v != "" {
		c.SamplesDir = v
	}
	if v := os.Getenv("RFRADAR_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RFRADAR_HEADLESS: %w", err)
		}
		c.Headless = headless
	}
	if v := os.Getenv("RFRADAR_MAX_INPUT_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("RFRADAR_MAX_INPUT_BYTES: %w", err)
		}
		c.MaxInputBytes = n
	}
	if v := os.Getenv("RFRADAR_PNG_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RFRADAR_PNG_WIDTH: %w", err)
		}
		c.PNGWidth = n
	}
	if v := os.Getenv("RFRADAR_PNG_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RFRADAR_PNG_HEIGHT: %w", err)
		}
		c.PNGHeight = n
	}
	return nil
}
