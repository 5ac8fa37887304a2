// Package config resolves server settings from defaults, an optional TOML
// file, the environment (optionally seeded from .env) and CLI overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// DefaultPort is used when neither PORT nor a config file sets one.
	DefaultPort = 8080

	envPort            = "PORT"
	envConfigFile      = "APP_CONFIG"
	envShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

// Config holds the HTTP server settings.
type Config struct {
	Port              int      `toml:"port"`
	ReadTimeout       Duration `toml:"read_timeout"`
	ReadHeaderTimeout Duration `toml:"read_header_timeout"`
	WriteTimeout      Duration `toml:"write_timeout"`
	IdleTimeout       Duration `toml:"idle_timeout"`
	ShutdownTimeout   Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration that decodes from strings such as "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:              DefaultPort,
		ReadTimeout:       Duration{5 * time.Second},
		ReadHeaderTimeout: Duration{2 * time.Second},
		WriteTimeout:      Duration{10 * time.Second},
		IdleTimeout:       Duration{60 * time.Second},
		ShutdownTimeout:   Duration{10 * time.Second},
	}
}

// Addr returns the listen address for Port on all interfaces.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Load builds a Config. A .env file in the working directory is loaded first
// without overriding variables already set. path names a TOML file; when empty,
// APP_CONFIG is consulted, and when that is empty too no file is read.
// Environment variables override file values.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv(envConfigFile)
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if v := os.Getenv(envPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s %q: %w", envPort, v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv(envShutdownTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s %q: %w", envShutdownTimeout, v, err)
		}
		cfg.ShutdownTimeout = Duration{d}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	durations := []struct {
		name string
		d    Duration
	}{
		{"read_timeout", c.ReadTimeout},
		{"read_header_timeout", c.ReadHeaderTimeout},
		{"write_timeout", c.WriteTimeout},
		{"idle_timeout", c.IdleTimeout},
		{"shutdown_timeout", c.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.d.Duration <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.d)
		}
	}
	return nil
}
