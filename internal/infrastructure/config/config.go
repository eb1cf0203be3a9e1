package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrMissingSerperAPIKey is returned when SERPER_API_KEY is unset or empty.
var ErrMissingSerperAPIKey = errors.New("missing SERPER_API_KEY env var")

// Routes owned by the HTTP server itself
var reservedPaths = map[string]bool{
	"/":        true,
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
	"/mcp":     true,
}

// Config holds all configuration for the web MCP service
type Config struct {
	// HTTP Server
	HTTPPort  string `env:"PORT" envDefault:"3000"`
	LogLevel  string `env:"WEB_MCP_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"WEB_MCP_LOG_FORMAT" envDefault:"json"` // json or console
	SSEPath   string `env:"MCP_SSE_PATH" envDefault:"/sse"`

	// Search provider
	SerperAPIKey         string `env:"SERPER_API_KEY"`
	SerperSearchEndpoint string `env:"SERPER_SEARCH_ENDPOINT" envDefault:"https://google.serper.dev/search"`

	// Reader service; the target URL is appended verbatim
	ReaderBaseURL string `env:"READER_BASE_URL" envDefault:"https://r.jina.ai/"`

	// Outbound timeout in seconds, 0 leaves the HTTP client default (no timeout)
	UpstreamHTTPTimeout int `env:"UPSTREAM_HTTP_TIMEOUT" envDefault:"0"`

	// Optional YAML file with tool description overrides
	ToolsConfigFile string `env:"MCP_TOOLS_CONFIG_FILE"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(os.Getenv("WEB_MCP_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(os.Getenv("WEB_MCP_LOG_FORMAT")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_FORMAT")); global != "" {
			cfg.LogFormat = global
		}
	}

	if cfg.SerperAPIKey == "" {
		return nil, ErrMissingSerperAPIKey
	}
	if cfg.UpstreamHTTPTimeout < 0 {
		return nil, fmt.Errorf("UPSTREAM_HTTP_TIMEOUT must not be negative, got %d", cfg.UpstreamHTTPTimeout)
	}
	if !strings.HasPrefix(cfg.SSEPath, "/") {
		cfg.SSEPath = "/" + cfg.SSEPath
	}
	if reservedPaths[cfg.SSEPath] {
		return nil, fmt.Errorf("MCP_SSE_PATH %q collides with a built-in route", cfg.SSEPath)
	}
	return cfg, nil
}

// UpstreamTimeout returns the outbound request timeout; zero means none.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamHTTPTimeout) * time.Second
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}
