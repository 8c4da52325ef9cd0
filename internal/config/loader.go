package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load builds the effective configuration: defaults first, then the optional
// YAML file at path, then environment overrides, validated at the end. An
// empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()
		if err := decodeStrict(f, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	return finish(cfg)
}

// LoadFromReader decodes a YAML config from r on top of the defaults,
// applies environment overrides and validates the result. Useful in tests
// where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decodeStrict(r, cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return finish(cfg)
}

// finish applies environment overrides and validates cfg.
func finish(cfg *Config) (*Config, error) {
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// decodeStrict decodes YAML into cfg with unknown keys rejected. An empty
// document is not an error; the defaults stand.
func decodeStrict(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overlays process environment variables onto cfg. Environment
// values win over file values so deployments can keep secrets out of config
// files.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("MERCURY_API_TOKEN"); v != "" {
		cfg.Mercury.APIToken = v
	}
	if v := os.Getenv("MERCURY_API_BASE_URL"); v != "" {
		cfg.Mercury.BaseURL = v
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PORT %q is not a number", v)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = LogLevel(strings.ToLower(v))
	}
	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		cfg.Server.Transport = Transport(v)
	}
	return nil
}
