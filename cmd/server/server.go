package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"web-mcp/internal/infrastructure/config"
	"web-mcp/internal/infrastructure/logger"
	_ "web-mcp/internal/infrastructure/metrics" // Register Prometheus metrics
	"web-mcp/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HTTPServer
}

func init() {
	// Initialize logger with default settings
	logger.Init("info", "json")
}

// @title Web MCP Server
// @version 1.0
// @description Model Context Protocol (MCP) server over SSE exposing live web search (Serper) and readable page fetching (Jina Reader).
// @BasePath /
func (app *Application) Start(ctx context.Context) error {
	return app.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	// Load configuration; a missing API key stops startup before the port is bound
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Re-initialize logger with config settings
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("sse_path", cfg.SSEPath).
		Str("log_level", cfg.LogLevel).
		Msg("Starting web MCP service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create application with dependency injection
	application, err := CreateApplication(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	if err := application.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}

	log.Info().Msg("application exited cleanly")
}

// loadEnvFiles reads local .env files without overriding variables already set.
func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
