package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingSerperKey(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "")

	cfg, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingSerperAPIKey)
	assert.Nil(t, cfg)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("MCP_SSE_PATH", "")
	t.Setenv("UPSTREAM_HTTP_TIMEOUT", "")
	t.Setenv("WEB_MCP_LOG_LEVEL", "")
	t.Setenv("WEB_MCP_LOG_FORMAT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.SerperAPIKey)
	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "/sse", cfg.SSEPath)
	assert.Equal(t, "https://google.serper.dev/search", cfg.SerperSearchEndpoint)
	assert.Equal(t, "https://r.jina.ai/", cfg.ReaderBaseURL)
	assert.Equal(t, time.Duration(0), cfg.UpstreamTimeout())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "test-key")
	t.Setenv("PORT", "8080")
	t.Setenv("MCP_SSE_PATH", "events")
	t.Setenv("UPSTREAM_HTTP_TIMEOUT", "20")
	t.Setenv("WEB_MCP_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WEB_MCP_LOG_FORMAT", "console")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "/events", cfg.SSEPath)
	assert.Equal(t, 20*time.Second, cfg.UpstreamTimeout())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadConfig_NegativeTimeout(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "test-key")
	t.Setenv("UPSTREAM_HTTP_TIMEOUT", "-1")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_SSEPathCollision(t *testing.T) {
	for _, path := range []string{"/", "mcp", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			t.Setenv("SERPER_API_KEY", "test-key")
			t.Setenv("MCP_SSE_PATH", path)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "collides")
		})
	}
}
