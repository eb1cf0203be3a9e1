package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	domainsearch "web-mcp/internal/domain/search"
	"web-mcp/internal/infrastructure/metrics"
	"web-mcp/internal/infrastructure/toolconfig"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Tool names exposed to MCP clients
const (
	ToolKeyWebSearch = "web_search"
	ToolKeyFetchURL  = "fetch_url"
)

// Default tool descriptions (used when no override is configured)
var defaultToolDescriptions = map[string]string{
	ToolKeyWebSearch: "Search the live web (Google results via Serper). Returns titles, links, snippets.",
	ToolKeyFetchURL:  "Fetch readable text content of a URL using Jina AI Reader (r.jina.ai).",
}

// WebSearchArgs defines the arguments for the web_search tool
type WebSearchArgs struct {
	Query string   `json:"query"`
	Num   *float64 `json:"num,omitempty"`
	GL    *string  `json:"gl,omitempty"`
	HL    *string  `json:"hl,omitempty"`
}

// FetchURLArgs defines the arguments for the fetch_url tool
type FetchURLArgs struct {
	URL string `json:"url"`
}

// The documented num range is a hint for the model; it is not enforced.
func webSearchInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"query"},
		Properties: map[string]*jsonschema.Schema{
			"query": {Type: "string", Description: "Search query"},
			"num":   {Type: "number", Description: "Number of results (1-20)", Default: json.RawMessage(`10`)},
			"gl":    {Type: "string", Description: "Country code (e.g., us, br)", Default: json.RawMessage(`"us"`)},
			"hl":    {Type: "string", Description: "Language (e.g., en, pt)", Default: json.RawMessage(`"en"`)},
		},
	}
}

func fetchURLInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"url"},
		Properties: map[string]*jsonschema.Schema{
			"url": {Type: "string", Description: "URL to fetch (http/https)"},
		},
	}
}

// SearchMCP handles MCP tool registration for search and fetch tooling.
type SearchMCP struct {
	searchService *domainsearch.SearchService
	toolConfig    *toolconfig.Config
}

// NewSearchMCP creates a new search MCP handler.
func NewSearchMCP(searchService *domainsearch.SearchService, toolConfig *toolconfig.Config) *SearchMCP {
	return &SearchMCP{
		searchService: searchService,
		toolConfig:    toolConfig,
	}
}

func (s *SearchMCP) getToolDescription(toolKey string) string {
	return s.toolConfig.Description(toolKey, defaultToolDescriptions[toolKey])
}

// RegisterTools registers the enabled tools with the MCP server
func (s *SearchMCP) RegisterTools(server *mcp.Server) {
	if s.toolConfig.IsEnabled(ToolKeyWebSearch) {
		mcp.AddTool(server, &mcp.Tool{
			Name:        ToolKeyWebSearch,
			Description: s.getToolDescription(ToolKeyWebSearch),
			InputSchema: webSearchInputSchema(),
		}, s.handleWebSearch)
	} else {
		log.Info().Str("tool", ToolKeyWebSearch).Msg("tool disabled by config")
	}

	if s.toolConfig.IsEnabled(ToolKeyFetchURL) {
		mcp.AddTool(server, &mcp.Tool{
			Name:        ToolKeyFetchURL,
			Description: s.getToolDescription(ToolKeyFetchURL),
			InputSchema: fetchURLInputSchema(),
		}, s.handleFetchURL)
	} else {
		log.Info().Str("tool", ToolKeyFetchURL).Msg("tool disabled by config")
	}
}

func (s *SearchMCP) handleWebSearch(ctx context.Context, _ *mcp.CallToolRequest, input WebSearchArgs) (*mcp.CallToolResult, any, error) {
	startTime := time.Now()

	log.Info().
		Str("tool", ToolKeyWebSearch).
		Str("query", input.Query).
		Msg("MCP tool call received")

	searchReq := domainsearch.NewSearchRequest(input.Query, input.Num, input.GL, input.HL)

	log.Debug().
		Str("tool", ToolKeyWebSearch).
		Float64("num", searchReq.Num).
		Str("gl", searchReq.GL).
		Str("hl", searchReq.HL).
		Msg("web_search request details")

	searchResp, err := s.searchService.Search(ctx, searchReq)
	if err != nil {
		log.Warn().Err(err).Str("tool", ToolKeyWebSearch).Str("query", searchReq.Q).Msg("search service failed")
		metrics.RecordToolCall(ToolKeyWebSearch, "error", time.Since(startTime).Seconds())
		return toolError(err), nil, nil
	}

	text, err := marshalIndent(searchResp)
	if err != nil {
		log.Error().Err(err).Str("tool", ToolKeyWebSearch).Msg("failed to marshal search response")
		metrics.RecordToolCall(ToolKeyWebSearch, "error", time.Since(startTime).Seconds())
		return toolError(err), nil, nil
	}

	log.Debug().
		Str("tool", ToolKeyWebSearch).
		Int("result_count", len(searchResp.Organic)).
		Msg("web_search response ready")

	metrics.RecordToolCall(ToolKeyWebSearch, "success", time.Since(startTime).Seconds())
	return toolText(string(text)), nil, nil
}

func (s *SearchMCP) handleFetchURL(ctx context.Context, _ *mcp.CallToolRequest, input FetchURLArgs) (*mcp.CallToolResult, any, error) {
	startTime := time.Now()

	log.Info().
		Str("tool", ToolKeyFetchURL).
		Str("url", input.URL).
		Msg("MCP tool call received")

	result, err := s.searchService.Fetch(ctx, domainsearch.FetchRequest{URL: input.URL})
	if err != nil {
		log.Warn().Err(err).Str("tool", ToolKeyFetchURL).Str("url", input.URL).Msg("fetch service failed")
		metrics.RecordToolCall(ToolKeyFetchURL, "error", time.Since(startTime).Seconds())
		return toolError(err), nil, nil
	}

	log.Debug().
		Str("tool", ToolKeyFetchURL).
		Str("url", input.URL).
		Int("text_length", len(result.Text)).
		Bool("truncated", result.Truncated).
		Msg("fetch_url response ready")

	metrics.RecordToolCall(ToolKeyFetchURL, "success", time.Since(startTime).Seconds())
	return toolText(result.Text), nil, nil
}

// marshalIndent renders two-space indented JSON without escaping &, < and > in links.
func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}
