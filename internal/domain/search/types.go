package search

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultNum = 10
	DefaultGL  = "us"
	DefaultHL  = "en"

	// MaxFetchChars bounds fetched page text before TruncationMarker is appended.
	MaxFetchChars    = 20000
	TruncationMarker = "\n\n[TRUNCATED]"
)

// SearchRequest is the payload sent to the Serper search API.
// Num is forwarded as-is; the documented 1-20 range is not enforced.
type SearchRequest struct {
	Q   string  `json:"q"`
	Num float64 `json:"num"` // Number of results (default: 10)
	GL  string  `json:"gl"`  // Region code (ISO 3166-1 alpha-2)
	HL  string  `json:"hl"`  // Language code (ISO 639-1)
}

// NewSearchRequest builds a SearchRequest, using defaults only for parameters the caller omitted.
func NewSearchRequest(q string, num *float64, gl, hl *string) SearchRequest {
	req := SearchRequest{Q: q, Num: DefaultNum, GL: DefaultGL, HL: DefaultHL}
	if num != nil {
		req.Num = *num
	}
	if gl != nil {
		req.GL = *gl
	}
	if hl != nil {
		req.HL = *hl
	}
	return req
}

// SerperResponse is the subset of the Serper search response this service reads.
// Organic entries keep their raw JSON values so any shape upstream sends survives.
type SerperResponse struct {
	Organic []map[string]json.RawMessage `json:"organic"`
}

// OrganicResult is a single non-paid search result. Values are copied verbatim from
// upstream; a field absent upstream stays empty and is omitted, while null stays null.
type OrganicResult struct {
	Title    json.RawMessage `json:"title,omitempty"`
	Link     json.RawMessage `json:"link,omitempty"`
	Snippet  json.RawMessage `json:"snippet,omitempty"`
	Position json.RawMessage `json:"position,omitempty"`
}

// SearchResponse is returned to the tool caller.
type SearchResponse struct {
	Query   string          `json:"query"`
	Organic []OrganicResult `json:"organic"`
}

// FetchRequest asks the reader service for a page's text.
type FetchRequest struct {
	URL string `json:"url"`
}

// FetchResult holds reader text, capped at MaxFetchChars characters.
type FetchResult struct {
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}

// UpstreamError is returned when a provider answers with a non-success status.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s error %d: %s", e.Provider, e.StatusCode, e.Body)
}
