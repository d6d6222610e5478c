// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Parse
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)

// Server holds the HTTP server settings
type Server struct {
	Address      string        `env:"BRDOC_ADDRESS" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"BRDOC_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"BRDOC_WRITE_TIMEOUT" envDefault:"120s"`
	Debug        bool          `env:"BRDOC_DEBUG" envDefault:"false"`
}

// LLM holds the settings of the OpenAI-compatible extraction backend
type LLM struct {
	APIKey      string `env:"LLM_API_KEY"`
	BaseURL     string `env:"LLM_BASE_URL"`
	Model       string `env:"LLM_MODEL"`
	VisionModel string `env:"LLM_VISION_MODEL"`
}

// Log holds logger settings
type Log struct {
	Level  string `env:"BRDOC_LOG_LEVEL" envDefault:"info"`
	Format string `env:"BRDOC_LOG_FORMAT" envDefault:"json"`
}

// Config is the full application configuration
type Config struct {
	Server Server
	LLM    LLM
	Log    Log
}

var dotenvLoaded sync.Once

// Load reads .env (if present) once per process, then parses the environment.
func Load() (*Config, error) {
	dotenvLoaded.Do(func() {
		// the .env file is optional
		_ = godotenv.Load()
	})

	var cfg Config
	if err := Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse fills v from environment variables using its env tags.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
