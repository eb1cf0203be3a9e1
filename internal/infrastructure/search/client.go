package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainsearch "web-mcp/internal/domain/search"
	"web-mcp/internal/infrastructure/metrics"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	serperSearchEndpointDefault = "https://google.serper.dev/search"
	readerBaseURLDefault        = "https://r.jina.ai/"

	providerSerper = "Serper"
	providerReader = "Fetch"
)

// ClientConfig captures the knobs exposed to operators for the search client.
type ClientConfig struct {
	SerperAPIKey         string
	SerperSearchEndpoint string
	ReaderBaseURL        string

	// HTTPTimeout of zero leaves requests without a client-side deadline.
	HTTPTimeout time.Duration
}

// SearchClient implements domainsearch.SearchClient against Serper and the Jina reader.
// Each call performs exactly one outbound request; there is no retry.
type SearchClient struct {
	cfg          ClientConfig
	serperClient *resty.Client
	readerClient *resty.Client
}

var _ domainsearch.SearchClient = (*SearchClient)(nil)

// NewSearchClient wires HTTP clients for both upstreams.
func NewSearchClient(cfg ClientConfig) *SearchClient {
	if strings.TrimSpace(cfg.SerperSearchEndpoint) == "" {
		cfg.SerperSearchEndpoint = serperSearchEndpointDefault
	}
	if strings.TrimSpace(cfg.ReaderBaseURL) == "" {
		cfg.ReaderBaseURL = readerBaseURLDefault
	}

	serperHTTP := resty.New().
		SetHeader("User-Agent", "Web-MCP/1.0").
		SetRetryCount(0)

	readerHTTP := resty.New().
		SetHeader("User-Agent", "Web-MCP/1.0").
		SetRetryCount(0)

	if cfg.HTTPTimeout > 0 {
		serperHTTP.SetTimeout(cfg.HTTPTimeout)
		readerHTTP.SetTimeout(cfg.HTTPTimeout)
	}

	return &SearchClient{
		cfg:          cfg,
		serperClient: serperHTTP,
		readerClient: readerHTTP,
	}
}

// Search posts {q, num, gl, hl} to the Serper search endpoint.
func (c *SearchClient) Search(ctx context.Context, query domainsearch.SearchRequest) (*domainsearch.SerperResponse, error) {
	startTime := time.Now()
	status := "success"
	defer func() {
		metrics.RecordProviderRequest("search", "serper", status)
		metrics.RecordExternalProviderLatency("serper", time.Since(startTime).Seconds())
	}()

	var res domainsearch.SerperResponse
	resp, err := c.serperClient.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.cfg.SerperAPIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(query).
		ForceContentType("application/json").
		SetResult(&res).
		Post(c.cfg.SerperSearchEndpoint)

	if err != nil && (resp == nil || resp.RawResponse == nil) {
		status = "error"
		log.Error().Err(err).Str("service", "serper").Str("endpoint", c.cfg.SerperSearchEndpoint).Msg("failed to query Serper search API")
		return nil, fmt.Errorf("failed to query Serper search API: %w", err)
	}

	if !resp.IsSuccess() {
		status = "error"
		body := string(resp.Body())
		log.Error().Int("status", resp.StatusCode()).Str("service", "serper").Str("response", body).Msg("Serper search API error")
		return nil, &domainsearch.UpstreamError{
			Provider:   providerSerper,
			StatusCode: resp.StatusCode(),
			Body:       body,
		}
	}

	if err != nil {
		status = "error"
		log.Error().Err(err).Str("service", "serper").Str("response", string(resp.Body())).Msg("failed to decode Serper response")
		return nil, fmt.Errorf("failed to decode Serper response: %w", err)
	}

	log.Debug().
		Str("service", "serper").
		Str("query", query.Q).
		Int("result_count", len(res.Organic)).
		Dur("duration", time.Since(startTime)).
		Msg("Serper search completed")

	return &res, nil
}

// FetchText reads a page through the reader service. The target URL is appended to the
// reader base URL verbatim; no validation or re-encoding is applied.
func (c *SearchClient) FetchText(ctx context.Context, url string) (string, error) {
	startTime := time.Now()
	status := "success"
	defer func() {
		metrics.RecordProviderRequest("fetch", "jina-reader", status)
		metrics.RecordExternalProviderLatency("jina-reader", time.Since(startTime).Seconds())
	}()

	readerURL := c.cfg.ReaderBaseURL + url

	resp, err := c.readerClient.R().
		SetContext(ctx).
		Get(readerURL)
	if err != nil {
		status = "error"
		log.Error().Err(err).Str("service", "reader").Str("url", url).Msg("failed to query reader service")
		return "", fmt.Errorf("failed to query reader service: %w", err)
	}

	// resp.String() trims whitespace, the raw body is kept as-is.
	body := string(resp.Body())
	if !resp.IsSuccess() {
		status = "error"
		log.Error().Int("status", resp.StatusCode()).Str("service", "reader").Str("url", url).Str("response", body).Msg("reader service error")
		return "", &domainsearch.UpstreamError{
			Provider:   providerReader,
			StatusCode: resp.StatusCode(),
			Body:       body,
		}
	}

	log.Debug().
		Str("service", "reader").
		Str("url", url).
		Int("text_length", len(body)).
		Dur("duration", time.Since(startTime)).
		Msg("reader fetch completed")

	return body, nil
}
