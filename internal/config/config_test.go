package config

import (
	"context"
	"crypto/ed25519"
	"strings"
	"testing"
	"time"
)

// validPublicKey is 32 bytes of hex, the size of an ed25519 public key.
var validPublicKey = strings.Repeat("ab", ed25519.PublicKeySize)

func validConfig() *Config {
	return &Config{
		DiscordBotToken:  "bot-token",
		DiscordAppID:     "123456789012345678",
		DiscordPublicKey: validPublicKey,
		GoogleMapsAPIKey: "maps-key",
		Port:             "8080",
		LogLevel:         "info",
		ShutdownTimeout:  DefaultShutdownTimeout,
		GeocodeTimeout:   DefaultGeocodeTimeout,
		CallbackTimeout:  DefaultCallbackTimeout,
		SentrySampleRate: 1.0,
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvDiscordBotToken, "bot-token")
	t.Setenv(EnvDiscordAppID, "123456789012345678")
	t.Setenv(EnvDiscordPublicKey, validPublicKey)
	t.Setenv(EnvGoogleMapsAPIKey, "maps-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout = %s, want %s", cfg.ShutdownTimeout, DefaultShutdownTimeout)
	}
	if cfg.GeocodeTimeout != DefaultGeocodeTimeout {
		t.Errorf("GeocodeTimeout = %s, want %s", cfg.GeocodeTimeout, DefaultGeocodeTimeout)
	}
	if cfg.CallbackTimeout != DefaultCallbackTimeout {
		t.Errorf("CallbackTimeout = %s, want %s", cfg.CallbackTimeout, DefaultCallbackTimeout)
	}
	if cfg.MetricsAuthEnabled {
		t.Error("MetricsAuthEnabled = true, want false by default")
	}
	if cfg.SentrySampleRate != 1.0 {
		t.Errorf("SentrySampleRate = %g, want 1.0", cfg.SentrySampleRate)
	}
	if cfg.SentryEnvironment != "development" {
		t.Errorf("SentryEnvironment = %q, want %q", cfg.SentryEnvironment, "development")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPort, "9000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvShutdownTimeout, "45s")
	t.Setenv(EnvGeocodeTimeout, "2s")
	t.Setenv(EnvCallbackTimeout, "20s")
	t.Setenv(EnvMetricsAuthEnabled, "true")
	t.Setenv(EnvMetricsUsername, "metrics")
	t.Setenv(EnvMetricsPassword, "hunter2")
	t.Setenv(EnvSentrySampleRate, "0.25")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9000")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.ShutdownTimeout != 45*time.Second {
		t.Errorf("ShutdownTimeout = %s, want 45s", cfg.ShutdownTimeout)
	}
	if cfg.GeocodeTimeout != 2*time.Second {
		t.Errorf("GeocodeTimeout = %s, want 2s", cfg.GeocodeTimeout)
	}
	if cfg.CallbackTimeout != 20*time.Second {
		t.Errorf("CallbackTimeout = %s, want 20s", cfg.CallbackTimeout)
	}
	if !cfg.MetricsAuthEnabled {
		t.Error("MetricsAuthEnabled = false, want true")
	}
	if cfg.SentrySampleRate != 0.25 {
		t.Errorf("SentrySampleRate = %g, want 0.25", cfg.SentrySampleRate)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvGeocodeTimeout, "not-a-duration")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GeocodeTimeout != DefaultGeocodeTimeout {
		t.Errorf("GeocodeTimeout = %s, want fallback %s", cfg.GeocodeTimeout, DefaultGeocodeTimeout)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv(EnvDiscordBotToken, "")
	t.Setenv(EnvDiscordAppID, "")
	t.Setenv(EnvDiscordPublicKey, "")
	t.Setenv(EnvGoogleMapsAPIKey, "")

	_, err := Load(context.Background())
	if err == nil {
		t.Fatal("Load() error = nil, want validation error")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("error = %q, want it to mention invalid configuration", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing bot token",
			mutate:  func(c *Config) { c.DiscordBotToken = "" },
			wantErr: "bot token",
		},
		{
			name:    "missing app id",
			mutate:  func(c *Config) { c.DiscordAppID = "" },
			wantErr: "application id",
		},
		{
			name:    "missing public key",
			mutate:  func(c *Config) { c.DiscordPublicKey = "" },
			wantErr: "public key is required",
		},
		{
			name:    "public key not hex",
			mutate:  func(c *Config) { c.DiscordPublicKey = "zz" + validPublicKey[2:] },
			wantErr: "not valid hex",
		},
		{
			name:    "public key wrong size",
			mutate:  func(c *Config) { c.DiscordPublicKey = "abcd" },
			wantErr: "must decode to 32 bytes",
		},
		{
			name:    "missing maps key",
			mutate:  func(c *Config) { c.GoogleMapsAPIKey = "" },
			wantErr: "maps api key",
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: "port",
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr: "shutdown timeout",
		},
		{
			name:    "negative geocode timeout",
			mutate:  func(c *Config) { c.GeocodeTimeout = -time.Second },
			wantErr: "geocode timeout",
		},
		{
			name:    "zero callback timeout",
			mutate:  func(c *Config) { c.CallbackTimeout = 0 },
			wantErr: "callback timeout",
		},
		{
			name: "metrics auth without credentials",
			mutate: func(c *Config) {
				c.MetricsAuthEnabled = true
			},
			wantErr: "metrics username",
		},
		{
			name:    "sample rate above one",
			mutate:  func(c *Config) { c.SentrySampleRate = 1.5 },
			wantErr: "sample rate",
		},
		{
			name:    "sample rate negative",
			mutate:  func(c *Config) { c.SentrySampleRate = -0.1 },
			wantErr: "sample rate",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.DiscordBotToken = ""
	cfg.GoogleMapsAPIKey = ""
	cfg.GeocodeTimeout = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want joined errors")
	}
	for _, want := range []string{"bot token", "maps api key", "geocode timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestPublicKey(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	key, err := cfg.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey() error = %v", err)
	}
	if len(key) != ed25519.PublicKeySize {
		t.Errorf("len(key) = %d, want %d", len(key), ed25519.PublicKeySize)
	}

	cfg.DiscordPublicKey = "not-hex"
	if _, err := cfg.PublicKey(); err == nil {
		t.Error("PublicKey() with invalid hex: error = nil, want error")
	}

	cfg.DiscordPublicKey = "abcd"
	if _, err := cfg.PublicKey(); err == nil {
		t.Error("PublicKey() with short key: error = nil, want error")
	}
}

func TestGetBoolEnv(t *testing.T) {
	t.Setenv("CHECKIN_TEST_BOOL", "")

	if got := getBoolEnv("CHECKIN_TEST_BOOL", true); !got {
		t.Error("empty value should return fallback true")
	}

	t.Setenv("CHECKIN_TEST_BOOL", "false")
	if got := getBoolEnv("CHECKIN_TEST_BOOL", true); got {
		t.Error(`"false" should parse as false`)
	}

	t.Setenv("CHECKIN_TEST_BOOL", "1")
	if got := getBoolEnv("CHECKIN_TEST_BOOL", false); !got {
		t.Error(`"1" should parse as true`)
	}

	t.Setenv("CHECKIN_TEST_BOOL", "maybe")
	if got := getBoolEnv("CHECKIN_TEST_BOOL", false); got {
		t.Error("unparseable value should return fallback false")
	}
}

func TestGetFloatEnv(t *testing.T) {
	t.Setenv("CHECKIN_TEST_FLOAT", "0.5")

	if got := getFloatEnv("CHECKIN_TEST_FLOAT", 1.0); got != 0.5 {
		t.Errorf("getFloatEnv = %g, want 0.5", got)
	}

	t.Setenv("CHECKIN_TEST_FLOAT", "abc")
	if got := getFloatEnv("CHECKIN_TEST_FLOAT", 1.0); got != 1.0 {
		t.Errorf("getFloatEnv with bad value = %g, want fallback 1.0", got)
	}
}
