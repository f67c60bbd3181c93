// Package config assembles the service configuration from an optional YAML
// file and the environment, with environment values taking precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is everything the service binary needs to start.
type Config struct {
	// Addr is the listen address of the HTTP API.
	Addr string `yaml:"addr"`
	// DBPath locates the bbolt file holding layout records.
	DBPath string `yaml:"dbPath"`
	// LogLevel is a slog level string: debug, info, warn or error.
	LogLevel string `yaml:"logLevel"`

	Generation Generation `yaml:"generation"`
}

// Generation configures the content-generation backend. An empty APIKey
// leaves generation endpoints disabled; the rest of the service works
// without it.
type Generation struct {
	APIKey string `yaml:"apiKey"`
	Server string `yaml:"server"`
	Model  string `yaml:"model"`
}

// Load builds the configuration. When SLIDES_CONFIG names a YAML file it is
// read first; environment variables override whatever the file set.
func Load() (Config, error) {
	cfg := Config{
		Addr:     ":8080",
		DBPath:   "layouts.db",
		LogLevel: "info",
		Generation: Generation{
			Server: "http://localhost:9090",
			Model:  "slides-default",
		},
	}

	if path := os.Getenv("SLIDES_CONFIG"); path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(bs, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Addr = getEnv("SLIDES_ADDR", cfg.Addr)
	cfg.DBPath = getEnv("SLIDES_DB", cfg.DBPath)
	cfg.LogLevel = getEnv("SLIDES_LOG", cfg.LogLevel)
	cfg.Generation.APIKey = getEnv("SLIDES_GEN_APIKEY", cfg.Generation.APIKey)
	cfg.Generation.Server = getEnv("SLIDES_GEN_SERVER", cfg.Generation.Server)
	cfg.Generation.Model = getEnv("SLIDES_GEN_MODEL", cfg.Generation.Model)
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
