// Package config loads service configuration from the environment.
// A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup and passed
// to constructors. Nothing reads the environment after Load returns.
type Config struct {
	Service struct {
		Name    string
		Version string
		Env     string
		Port    string
	}

	Database struct {
		URL string
	}

	Auth struct {
		Secret     string
		TokenTTL   time.Duration
		BcryptCost int
	}

	CORS struct {
		Origin string
	}

	Logging struct {
		Level string
	}

	Tracing struct {
		Enabled    bool
		Endpoint   string
		SampleRate float64
	}

	Profiling struct {
		Enabled  bool
		Endpoint string
	}

	Shutdown struct {
		Timeout    time.Duration
		DrainDelay time.Duration
	}
}

// Load reads configuration from the environment, applying defaults.
// Call Validate before using the result.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Service.Name = getEnv("SERVICE_NAME", "auth-service")
	cfg.Service.Version = getEnv("SERVICE_VERSION", "dev")
	cfg.Service.Env = getEnv("SERVICE_ENV", "development")
	cfg.Service.Port = getEnv("PORT", "3000")

	cfg.Database.URL = getEnv("DATABASE_URL", "")

	cfg.Auth.Secret = getEnv("JWT_SECRET", "")
	cfg.Auth.TokenTTL = getEnvAsDuration("TOKEN_TTL", time.Hour)
	cfg.Auth.BcryptCost = getEnvAsInt("BCRYPT_COST", 10)

	cfg.CORS.Origin = getEnv("CORS_ORIGIN", "http://localhost:5173")

	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	cfg.Tracing.Enabled = getEnvAsBool("TRACING_ENABLED", false)
	cfg.Tracing.Endpoint = getEnv("TRACING_ENDPOINT", "localhost:4318")
	cfg.Tracing.SampleRate = getEnvAsFloat("TRACING_SAMPLE_RATE", 1.0)

	cfg.Profiling.Enabled = getEnvAsBool("PROFILING_ENABLED", false)
	cfg.Profiling.Endpoint = getEnv("PROFILING_ENDPOINT", "http://localhost:4040")

	cfg.Shutdown.Timeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.Shutdown.DrainDelay = getEnvAsDuration("READINESS_DRAIN_DELAY", 0)

	return cfg
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// GetShutdownTimeoutDuration returns the graceful shutdown timeout.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return c.Shutdown.Timeout
}

// GetReadinessDrainDelayDuration returns the delay between failing readiness
// and starting HTTP shutdown.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return c.Shutdown.DrainDelay
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
