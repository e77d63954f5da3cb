// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// General
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort    int    `envconfig:"HTTP_PORT" default:"8000"`

	// Mistral provider. The API key is required; startup fails without it.
	MistralAPIKey string `envconfig:"MISTRAL_API_KEY"`
	ModelName     string `envconfig:"MODEL_NAME" default:"mistral-large-latest"`

	// CORS origins for the browser chat UI.
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:8501,http://localhost:8502"`

	// Output locations.
	OutputDir string `envconfig:"OUTPUT_DIR" default:"generated_projects"`
	SpecsDir  string `envconfig:"SPECS_DIR" default:"specs"`

	// Optional YAML file overriding the generated project layout.
	ScaffoldLayout string `envconfig:"SCAFFOLD_LAYOUT"`

	// Per-operation timeouts. PRD generation is the slowest call; scaffold
	// creation never leaves the local filesystem.
	ChatTimeout     time.Duration `envconfig:"CHAT_TIMEOUT" default:"60s"`
	PRDTimeout      time.Duration `envconfig:"PRD_TIMEOUT" default:"120s"`
	ScaffoldTimeout time.Duration `envconfig:"SCAFFOLD_TIMEOUT" default:"30s"`
}

// Validate checks invariants that envconfig defaults cannot express.
func (c *Config) Validate() error {
	if c.MistralAPIKey == "" {
		return fmt.Errorf("MISTRAL_API_KEY environment variable is not set")
	}
	return nil
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first, without overriding variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
