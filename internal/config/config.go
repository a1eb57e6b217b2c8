// Package config loads and validates the watcher's construction record
// (spec section 6). Mirrors the teacher's internal/config package: env
// vars via caarlos0/env, optionally preceded by a .env file via
// godotenv, with mandatory-field and auth-method checks run afterward.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the corresponding field is unset.
const (
	DefaultPort         = 22
	DefaultDelayMs       = 1000
	DefaultTimeoutSec    = 60
	DefaultMaxErrCount   = 3
)

// Config is the construction record from spec section 6: connection
// target, local/remote roots, one of two auth methods, and the pass
// timing knobs the driver (internal/watcher) reads.
type Config struct {
	Host       string `env:"SFTPSYNC_HOST" yaml:"host"`
	Port       int    `env:"SFTPSYNC_PORT" envDefault:"22" yaml:"port"`
	Username   string `env:"SFTPSYNC_USERNAME" yaml:"username"`
	RemotePath string `env:"SFTPSYNC_REMOTE_PATH" yaml:"remotePath"`
	LocalPath  string `env:"SFTPSYNC_LOCAL_PATH" yaml:"localPath"`

	PubKeyPath  string `env:"SFTPSYNC_PUBKEY" yaml:"pubkey"`
	PrivKeyPath string `env:"SFTPSYNC_PRIVKEY" yaml:"privkey"`
	Password    string `env:"SFTPSYNC_PASSWORD" yaml:"password"`
	UseKeyboard bool   `env:"SFTPSYNC_USE_KEYBOARD" envDefault:"true" yaml:"useKeyboard"`

	DelayMs     int `env:"SFTPSYNC_DELAY_MS" envDefault:"1000" yaml:"delayMs"`
	Timeout     int `env:"SFTPSYNC_TIMEOUT_SEC" envDefault:"60" yaml:"timeout"`
	MaxErrCount int `env:"SFTPSYNC_MAX_ERR_COUNT" envDefault:"3" yaml:"maxErrCount"`

	// Environment controls log format, matching the teacher's
	// internal/config.Config.Environment.
	Environment string `env:"SFTPSYNC_ENVIRONMENT" envDefault:"development" yaml:"environment"`

	// IgnorePatterns are doublestar glob patterns (internal/localfs's
	// ignore filter) evaluated against root-relative paths.
	IgnorePatterns []string `env:"SFTPSYNC_IGNORE_PATTERNS" envSeparator:"," yaml:"ignorePatterns"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions, matching the teacher's check.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		fmt.Fprintf(os.Stderr, "WARNING: .env file has insecure permissions %04o; recommended 0600\n", mode)
	}
}

// Load reads configuration from environment variables, first attempting
// to load a .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadFile reads configuration from a YAML file, for hosts that prefer
// static config over environment variables.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Port:        DefaultPort,
		UseKeyboard: true,
		DelayMs:     DefaultDelayMs,
		Timeout:     DefaultTimeoutSec,
		MaxErrCount: DefaultMaxErrCount,
		Environment: "development",
	}
}

// validate checks the mandatory fields and the auth-method requirement
// from spec section 6: "Construction fails with a configuration error
// if mandatory fields are missing [or] if both auth methods are
// unsatisfied." The type-check half of that sentence is handled by
// env.Parse/yaml.Unmarshal returning an error before validate ever runs.
func (c *Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("SFTPSYNC_HOST is required")
	}

	if c.Username == "" {
		return fmt.Errorf("SFTPSYNC_USERNAME is required")
	}

	if c.RemotePath == "" {
		return fmt.Errorf("SFTPSYNC_REMOTE_PATH is required")
	}

	if !filepath.IsAbs(c.RemotePath) {
		return fmt.Errorf("SFTPSYNC_REMOTE_PATH must be absolute")
	}

	if c.LocalPath == "" {
		return fmt.Errorf("SFTPSYNC_LOCAL_PATH is required")
	}

	if !filepath.IsAbs(c.LocalPath) {
		return fmt.Errorf("SFTPSYNC_LOCAL_PATH must be absolute")
	}

	if !c.HasKeyAuth() && c.Password == "" {
		return fmt.Errorf("either SFTPSYNC_PUBKEY/SFTPSYNC_PRIVKEY or SFTPSYNC_PASSWORD is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("SFTPSYNC_PORT must be between 1 and 65535")
	}

	if c.DelayMs < 0 {
		return fmt.Errorf("SFTPSYNC_DELAY_MS must not be negative")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("SFTPSYNC_TIMEOUT_SEC must be positive")
	}

	if c.MaxErrCount <= 0 {
		return fmt.Errorf("SFTPSYNC_MAX_ERR_COUNT must be positive")
	}

	return nil
}

// HasKeyAuth reports whether public-key authentication material is
// configured. Per spec section 4.2's authenticate rule, key auth is
// used when a key pair is configured; password/keyboard-interactive auth
// is offered only when it is not.
func (c *Config) HasKeyAuth() bool {
	return c.PubKeyPath != "" && c.PrivKeyPath != ""
}

// IsProduction returns true when the environment is set to production,
// matching the teacher's Config.IsProduction.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
