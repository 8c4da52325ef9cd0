// Command mercury-mcp-lambda serves the same MCP surface from AWS Lambda
// behind an API Gateway proxy integration. Configuration comes from the
// environment, optionally layered over a YAML file named by
// MERCURY_MCP_CONFIG.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/merctools/mercury-mcp/internal/app"
	"github.com/merctools/mercury-mcp/internal/config"
	"github.com/merctools/mercury-mcp/internal/serverless"
)

func main() {
	cfg, err := config.Load(os.Getenv("MERCURY_MCP_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mercury-mcp-lambda: %v\n", err)
		os.Exit(1)
	}

	// Lambda captures stdout, so structured logs go there as JSON.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.LogLevel.Slog(),
	}))
	slog.SetDefault(logger)

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		os.Exit(1)
	}

	slog.Info("mercury-mcp lambda ready", "version", app.Version)
	lambda.Start(serverless.New(application).Invoke)
}
