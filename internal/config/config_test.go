package config_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/merctools/mercury-mcp/internal/config"
	"github.com/merctools/mercury-mcp/pkg/mercury"
)

func TestTransport_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		transport config.Transport
		want      bool
	}{
		{config.TransportStreamableHTTP, true},
		{config.TransportStdio, true},
		{config.Transport("http"), false},
		{config.Transport(""), false},
	}
	for _, tc := range tests {
		if got := tc.transport.IsValid(); got != tc.want {
			t.Errorf("Transport(%q).IsValid() = %v, want %v", tc.transport, got, tc.want)
		}
	}
}

func TestLogLevel_Slog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level config.LogLevel
		want  slog.Level
	}{
		{config.LogDebug, slog.LevelDebug},
		{config.LogInfo, slog.LevelInfo},
		{config.LogWarn, slog.LevelWarn},
		{config.LogError, slog.LevelError},
		{config.LogLevel("bogus"), slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := tc.level.Slog(); got != tc.want {
			t.Errorf("LogLevel(%q).Slog() = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should validate, got: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "" {
		t.Errorf("default host = %q, want empty (all interfaces)", cfg.Server.Host)
	}
	if cfg.Server.Transport != config.TransportStreamableHTTP {
		t.Errorf("default transport = %q, want streamable-http", cfg.Server.Transport)
	}
	if cfg.Mercury.BaseURL != mercury.DefaultBaseURL {
		t.Errorf("default base URL = %q, want %q", cfg.Mercury.BaseURL, mercury.DefaultBaseURL)
	}
	if cfg.Mercury.Timeout().Seconds() != 30 {
		t.Errorf("default timeout = %v, want 30s", cfg.Mercury.Timeout())
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Server.Transport = config.Transport("carrier-pigeon")
	cfg.Server.LogLevel = config.LogLevel("loud")
	cfg.Mercury.TimeoutSeconds = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors, got nil")
	}
	for _, want := range []string{"server.port", "server.transport", "server.log_level", "mercury.timeout_seconds"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s, got: %v", want, err)
		}
	}
}

func TestValidate_EmptyBaseURL(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Mercury.BaseURL = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty base URL, got nil")
	}
	if !strings.Contains(err.Error(), "mercury.base_url") {
		t.Errorf("error should mention mercury.base_url, got: %v", err)
	}
}
