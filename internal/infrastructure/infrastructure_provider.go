package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog/log"

	"web-mcp/internal/domain/search"
	"web-mcp/internal/infrastructure/config"
	searchclient "web-mcp/internal/infrastructure/search"
	"web-mcp/internal/infrastructure/toolconfig"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Search + reader client
	ProvideSearchClient,

	// Tool overrides
	ProvideToolConfig,
)

// ProvideSearchClient provides the upstream client for both tools
func ProvideSearchClient(cfg *config.Config) search.SearchClient {
	return searchclient.NewSearchClient(searchclient.ClientConfig{
		SerperAPIKey:         cfg.SerperAPIKey,
		SerperSearchEndpoint: cfg.SerperSearchEndpoint,
		ReaderBaseURL:        cfg.ReaderBaseURL,
		HTTPTimeout:          cfg.UpstreamTimeout(),
	})
}

// ProvideToolConfig loads the optional tool override file
func ProvideToolConfig(cfg *config.Config) *toolconfig.Config {
	if cfg.ToolsConfigFile == "" {
		return &toolconfig.Config{}
	}
	toolConfig, err := toolconfig.LoadConfig(cfg.ToolsConfigFile)
	if err != nil {
		// Fall back to built-in descriptions
		log.Warn().Err(err).Str("path", cfg.ToolsConfigFile).Msg("Failed to load tool config, using defaults")
		return &toolconfig.Config{}
	}
	return toolConfig
}
