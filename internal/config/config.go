// Package config provides the configuration schema and loader for the
// mercury-mcp server: how the MCP side is exposed and how the upstream
// Mercury API client is built. Configuration is read once at startup and
// treated as read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/merctools/mercury-mcp/pkg/mercury"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	// TransportStreamableHTTP serves the MCP Streamable HTTP protocol on a
	// TCP port, together with health and metrics routes.
	TransportStreamableHTTP Transport = "streamable-http"

	// TransportStdio serves a single MCP session over stdin/stdout.
	TransportStdio Transport = "stdio"
)

// IsValid reports whether t is a recognised transport.
func (t Transport) IsValid() bool {
	return t == TransportStreamableHTTP || t == TransportStdio
}

// LogLevel controls log verbosity for the mercury-mcp server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l onto its slog equivalent. Unrecognised levels map to info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ServerConfig controls the serving side of the process.
type ServerConfig struct {
	// Host is the bind address. Empty binds all interfaces.
	Host string `yaml:"host"`

	// Port is the TCP port for the streamable HTTP transport.
	Port int `yaml:"port"`

	// Transport picks streamable-http (the default) or stdio.
	Transport Transport `yaml:"transport"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel LogLevel `yaml:"log_level"`
}

// MercuryConfig controls the upstream Mercury API client.
type MercuryConfig struct {
	// APIToken authenticates against the Mercury API. Deployments usually
	// supply it via the MERCURY_API_TOKEN environment variable instead of
	// the file. The process starts without it, but every tool call fails
	// until it is set.
	APIToken string `yaml:"api_token"`

	// BaseURL overrides the production API endpoint.
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each upstream request.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the upstream request timeout as a duration.
func (m MercuryConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// Config is the root configuration document.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Mercury MercuryConfig `yaml:"mercury"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      8080,
			Transport: TransportStreamableHTTP,
			LogLevel:  LogInfo,
		},
		Mercury: MercuryConfig{
			BaseURL:        mercury.DefaultBaseURL,
			TimeoutSeconds: 30,
		},
	}
}

// Validate checks the configuration and reports every problem found, joined
// into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is outside 1-65535", c.Server.Port))
	}
	if !c.Server.Transport.IsValid() {
		errs = append(errs, fmt.Errorf("server.transport %q must be %q or %q",
			c.Server.Transport, TransportStreamableHTTP, TransportStdio))
	}
	if !c.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q must be one of debug, info, warn or error", c.Server.LogLevel))
	}
	if c.Mercury.BaseURL == "" {
		errs = append(errs, errors.New("mercury.base_url must not be empty"))
	}
	if c.Mercury.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("mercury.timeout_seconds %d must be at least 1", c.Mercury.TimeoutSeconds))
	}

	return errors.Join(errs...)
}
