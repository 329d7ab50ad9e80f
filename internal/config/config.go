// Package config loads the lifecycle CLI configuration from the environment.
package config

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed.
var ErrParsingConfig = errors.New("config: failed to parse environment")

var dotenvLoaded sync.Once

// Config holds every setting the CLI reads from the environment.
type Config struct {
	LogLevel    string `env:"LIFECYCLE_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LIFECYCLE_LOG_FORMAT" envDefault:"text"`
	MachineName string `env:"LIFECYCLE_MACHINE_NAME" envDefault:"cli"`
	MetricsAddr string `env:"LIFECYCLE_METRICS_ADDR"`

	Tracing Tracing
}

// Tracing configures the OTLP trace exporter. An empty endpoint disables tracing.
type Tracing struct {
	Endpoint    string        `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	ServiceName string        `env:"OTEL_SERVICE_NAME" envDefault:"lifecycle"`
	Timeout     time.Duration `env:"OTEL_EXPORTER_OTLP_TRACES_TIMEOUT" envDefault:"5s"`
}

// Load reads a .env file from the working directory if one exists, then parses
// the environment into a Config.
func Load() (Config, error) {
	dotenvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})

	return Parse()
}

// Parse parses the current environment into a Config without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	return cfg, nil
}
