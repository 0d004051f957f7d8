package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	DatabaseURL string `yaml:"database_url"`
	CatalogPath string `yaml:"catalog_path"`
	GeminiKey   string `yaml:"gemini_key"`
	JWTSecret   string `yaml:"jwt_secret"`
	LogLevel    string `yaml:"log_level"`

	Suggest struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"suggest"`
}

// Load reads the configuration file at path and applies environment
// overrides for secrets.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:        8080,
		MetricsPort: 9090,
		DatabaseURL: "drinkingman.db",
		CatalogPath: "data/cocktails.json",
		LogLevel:    "info",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Secrets come from the environment when set there.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.GeminiKey = key
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required (config file or JWT_SECRET)")
	}

	return cfg, nil
}
