package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// Config is the application configuration
type Config struct {
	Port            string        `yaml:"port" validate:"required"`
	DBPath          string        `yaml:"db_path" validate:"required"`
	JWTSecret       string        `yaml:"jwt_secret" validate:"required,min=8"`
	CSVPath         string        `yaml:"csv_path"` // Imported at startup when set
	MinInterval     time.Duration `yaml:"min_interval" validate:"gte=0"`
	MinDistance     float64       `yaml:"min_distance" validate:"gte=0"` // Meters
	RateLimit       int           `yaml:"rate_limit" validate:"gt=0"`    // Requests per RateWindow per client
	RateWindow      time.Duration `yaml:"rate_window" validate:"gt=0"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" validate:"gt=0"`
	ChartAssetsHost string        `yaml:"chart_assets_host" validate:"omitempty,url"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Port:           ":8080",
		DBPath:         "./data/tracks/foxes.db",
		JWTSecret:      "your-secret-key-change-in-production",
		MinInterval:    trajectory.DefaultThresholds.MinInterval,
		MinDistance:    trajectory.DefaultThresholds.MinDistance,
		RateLimit:      120,
		RateWindow:     time.Minute,
		MaxUploadBytes: 64 << 20,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE, then environment variables, and validates the result
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := getenv("CSV_PATH"); v != "" {
		c.CSVPath = v
	}
	if v := getenv("CHART_ASSETS_HOST"); v != "" {
		c.ChartAssetsHost = v
	}

	var err error
	if v := getenv("MIN_INTERVAL"); v != "" {
		if c.MinInterval, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid MIN_INTERVAL: %w", err)
		}
	}
	if v := getenv("MIN_DISTANCE"); v != "" {
		if c.MinDistance, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("invalid MIN_DISTANCE: %w", err)
		}
	}
	if v := getenv("RATE_LIMIT"); v != "" {
		if c.RateLimit, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
	}
	return nil
}

// Validate checks every field against its validate tag
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Thresholds returns the configured downsampling thresholds
func (c *Config) Thresholds() trajectory.Thresholds {
	return trajectory.Thresholds{
		MinInterval: c.MinInterval,
		MinDistance: c.MinDistance,
	}
}
