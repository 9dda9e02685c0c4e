// Package config loads application configuration from the environment, with
// an optional AWS Secrets Manager overlay for credentials, and validates it
// before the rest of the application starts.
package config

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. It is populated once at startup by
// Load and treated as read-only afterwards.
type Config struct {
	// Discord credentials.
	DiscordBotToken  string
	DiscordAppID     string
	DiscordPublicKey string // hex-encoded ed25519 verification key

	// Google Maps Platform credentials.
	GoogleMapsAPIKey string

	// AWS Secrets Manager overlay. Empty ARNs disable the overlay.
	DiscordSecretARN   string
	GoogleSecretARN    string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// HTTP server.
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Outbound request budgets.
	GeocodeTimeout  time.Duration
	CallbackTimeout time.Duration

	// Metrics endpoint basic auth.
	MetricsAuthEnabled bool
	MetricsUsername    string
	MetricsPassword    string

	// Sentry error reporting. An empty DSN disables reporting.
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack log shipping. An empty token disables shipping.
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from the environment, applies the Secrets Manager
// overlay when secret ARNs are configured, and validates the result. A .env
// file in the working directory is honored when present.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DiscordBotToken:  getEnv(EnvDiscordBotToken, ""),
		DiscordAppID:     getEnv(EnvDiscordAppID, ""),
		DiscordPublicKey: getEnv(EnvDiscordPublicKey, ""),

		GoogleMapsAPIKey: getEnv(EnvGoogleMapsAPIKey, ""),

		DiscordSecretARN:   getEnv(EnvDiscordSecretARN, ""),
		GoogleSecretARN:    getEnv(EnvGoogleSecretARN, ""),
		AWSRegion:          getEnv(EnvAWSRegion, "us-east-1"),
		AWSAccessKeyID:     getEnv(EnvAWSAccessKeyID, ""),
		AWSSecretAccessKey: getEnv(EnvAWSSecretAccessKey, ""),

		Port:            getEnv(EnvPort, "8080"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, DefaultShutdownTimeout),

		GeocodeTimeout:  getDurationEnv(EnvGeocodeTimeout, DefaultGeocodeTimeout),
		CallbackTimeout: getDurationEnv(EnvCallbackTimeout, DefaultCallbackTimeout),

		MetricsAuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
		MetricsUsername:    getEnv(EnvMetricsUsername, ""),
		MetricsPassword:    getEnv(EnvMetricsPassword, ""),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "development"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	if cfg.DiscordSecretARN != "" || cfg.GoogleSecretARN != "" {
		if err := cfg.loadSecrets(ctx); err != nil {
			return nil, fmt.Errorf("load secrets: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate reports every configuration problem at once so a misconfigured
// deployment can be fixed in a single pass.
func (c *Config) Validate() error {
	var errs []error

	if c.DiscordBotToken == "" {
		errs = append(errs, fmt.Errorf("discord bot token is required (set %s)", EnvDiscordBotToken))
	}
	if c.DiscordAppID == "" {
		errs = append(errs, fmt.Errorf("discord application id is required (set %s)", EnvDiscordAppID))
	}
	if c.DiscordPublicKey == "" {
		errs = append(errs, fmt.Errorf("discord public key is required (set %s)", EnvDiscordPublicKey))
	} else if key, err := hex.DecodeString(c.DiscordPublicKey); err != nil {
		errs = append(errs, fmt.Errorf("discord public key is not valid hex: %w", err))
	} else if len(key) != ed25519.PublicKeySize {
		errs = append(errs, fmt.Errorf("discord public key must decode to %d bytes, got %d", ed25519.PublicKeySize, len(key)))
	}
	if c.GoogleMapsAPIKey == "" {
		errs = append(errs, fmt.Errorf("google maps api key is required (set %s)", EnvGoogleMapsAPIKey))
	}

	if c.Port == "" {
		errs = append(errs, fmt.Errorf("port must not be empty"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}
	if c.GeocodeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("geocode timeout must be positive, got %s", c.GeocodeTimeout))
	}
	if c.CallbackTimeout <= 0 {
		errs = append(errs, fmt.Errorf("callback timeout must be positive, got %s", c.CallbackTimeout))
	}

	if c.MetricsAuthEnabled {
		if c.MetricsUsername == "" {
			errs = append(errs, fmt.Errorf("metrics username is required when metrics auth is enabled (set %s)", EnvMetricsUsername))
		}
		if c.MetricsPassword == "" {
			errs = append(errs, fmt.Errorf("metrics password is required when metrics auth is enabled (set %s)", EnvMetricsPassword))
		}
	}

	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("sentry sample rate must be in [0, 1], got %g", c.SentrySampleRate))
	}

	return errors.Join(errs...)
}

// PublicKey decodes the configured hex verification key. Validate has
// already checked the encoding, so errors here mean Validate was skipped.
func (c *Config) PublicKey() (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(c.DiscordPublicKey)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	return ed25519.PublicKey(key), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getFloatEnv(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
