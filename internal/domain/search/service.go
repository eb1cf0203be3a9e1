package search

import (
	"context"
	"unicode/utf8"
)

// SearchClient defines the upstream operations required by the domain layer
type SearchClient interface {
	Search(ctx context.Context, query SearchRequest) (*SerperResponse, error)
	FetchText(ctx context.Context, url string) (string, error)
}

// SearchService adapts tool invocations to single upstream calls while remaining transport-agnostic.
type SearchService struct {
	client SearchClient
}

// NewSearchService creates a new search service.
func NewSearchService(client SearchClient) *SearchService {
	return &SearchService{
		client: client,
	}
}

// Search performs one Serper call and projects the organic results in upstream order.
func (s *SearchService) Search(ctx context.Context, query SearchRequest) (*SearchResponse, error) {
	resp, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	organic := make([]OrganicResult, 0)
	if resp != nil {
		for _, item := range resp.Organic {
			organic = append(organic, OrganicResult{
				Title:    item["title"],
				Link:     item["link"],
				Snippet:  item["snippet"],
				Position: item["position"],
			})
		}
	}

	return &SearchResponse{
		Query:   query.Q,
		Organic: organic,
	}, nil
}

// Fetch reads a page through the reader service and caps the text length.
func (s *SearchService) Fetch(ctx context.Context, req FetchRequest) (*FetchResult, error) {
	text, err := s.client.FetchText(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	return Truncate(text, MaxFetchChars), nil
}

// Truncate cuts text to maxChars runes and appends TruncationMarker when it was longer.
// Length is measured in Unicode code points, not UTF-16 units, so astral characters count once.
func Truncate(text string, maxChars int) *FetchResult {
	if utf8.RuneCountInString(text) <= maxChars {
		return &FetchResult{Text: text}
	}
	runes := []rune(text)
	return &FetchResult{
		Text:      string(runes[:maxChars]) + TruncationMarker,
		Truncated: true,
	}
}
