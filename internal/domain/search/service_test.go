package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	searchResp  *SerperResponse
	fetchText   string
	err         error
	searchCalls []SearchRequest
	fetchCalls  []string
}

func (f *fakeClient) Search(_ context.Context, query SearchRequest) (*SerperResponse, error) {
	f.searchCalls = append(f.searchCalls, query)
	return f.searchResp, f.err
}

func (f *fakeClient) FetchText(_ context.Context, url string) (string, error) {
	f.fetchCalls = append(f.fetchCalls, url)
	return f.fetchText, f.err
}

func strPtr(s string) *string      { return &s }
func numPtr(n float64) *float64    { return &n }
func raw(v string) json.RawMessage { return json.RawMessage(v) }

func TestNewSearchRequest_Defaults(t *testing.T) {
	req := NewSearchRequest("golang", nil, nil, nil)
	assert.Equal(t, SearchRequest{Q: "golang", Num: 10, GL: "us", HL: "en"}, req)
}

func TestNewSearchRequest_PassesOutOfRangeNum(t *testing.T) {
	req := NewSearchRequest("golang", numPtr(50), strPtr("br"), strPtr("pt"))
	assert.Equal(t, SearchRequest{Q: "golang", Num: 50, GL: "br", HL: "pt"}, req)

	req = NewSearchRequest("golang", numPtr(0), nil, nil)
	assert.Equal(t, float64(0), req.Num)

	req = NewSearchRequest("golang", numPtr(5.5), nil, nil)
	assert.Equal(t, 5.5, req.Num)
}

func TestSearchService_Search_ProjectsOrganic(t *testing.T) {
	client := &fakeClient{searchResp: &SerperResponse{Organic: []map[string]json.RawMessage{
		{"title": raw(`"A"`), "link": raw(`"http://a"`), "snippet": raw(`"s"`), "position": raw(`1`), "sitelinks": raw(`[]`)},
		{"title": raw(`"B"`), "link": raw(`"http://b"`)},
	}}}
	svc := NewSearchService(client)

	req := NewSearchRequest("query", nil, nil, nil)
	resp, err := svc.Search(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, client.searchCalls, 1)
	assert.Equal(t, req, client.searchCalls[0])

	assert.Equal(t, "query", resp.Query)
	require.Len(t, resp.Organic, 2)
	assert.Equal(t, OrganicResult{Title: raw(`"A"`), Link: raw(`"http://a"`), Snippet: raw(`"s"`), Position: raw(`1`)}, resp.Organic[0])
	assert.Nil(t, resp.Organic[1].Snippet)
	assert.Nil(t, resp.Organic[1].Position)
}

func TestSearchService_Search_CopiesValuesVerbatim(t *testing.T) {
	client := &fakeClient{searchResp: &SerperResponse{Organic: []map[string]json.RawMessage{
		{"title": raw(`null`), "link": raw(`"x"`), "position": raw(`2.5`)},
	}}}

	resp, err := NewSearchService(client).Search(context.Background(), NewSearchRequest("q", nil, nil, nil))
	require.NoError(t, err)

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"q","organic":[{"title":null,"link":"x","position":2.5}]}`, string(out))
}

func TestSearchService_Search_MissingOrganicIsEmpty(t *testing.T) {
	svc := NewSearchService(&fakeClient{searchResp: &SerperResponse{}})

	resp, err := svc.Search(context.Background(), NewSearchRequest("nothing", nil, nil, nil))
	require.NoError(t, err)
	assert.NotNil(t, resp.Organic)
	assert.Empty(t, resp.Organic)
}

func TestSearchService_Search_Idempotent(t *testing.T) {
	client := &fakeClient{searchResp: &SerperResponse{Organic: []map[string]json.RawMessage{
		{"title": raw(`"A"`), "link": raw(`"http://a"`), "snippet": raw(`"s"`), "position": raw(`1`)},
	}}}
	svc := NewSearchService(client)
	req := NewSearchRequest("same", nil, nil, nil)

	first, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, client.searchCalls, 2)
}

func TestSearchService_Search_PropagatesUpstreamError(t *testing.T) {
	upstream := &UpstreamError{Provider: "Serper", StatusCode: 403, Body: "bad key"}
	svc := NewSearchService(&fakeClient{err: upstream})

	resp, err := svc.Search(context.Background(), NewSearchRequest("q", nil, nil, nil))
	assert.Nil(t, resp)

	var target *UpstreamError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, 403, target.StatusCode)
	assert.Equal(t, "bad key", target.Body)
	assert.Equal(t, "Serper error 403: bad key", err.Error())
}

func TestSearchService_Fetch(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantText      string
		wantTruncated bool
	}{
		{"short body", "hello world", "hello world", false},
		{"empty body", "", "", false},
		{"exact limit", strings.Repeat("a", MaxFetchChars), strings.Repeat("a", MaxFetchChars), false},
		{"one over limit", strings.Repeat("a", MaxFetchChars+1), strings.Repeat("a", MaxFetchChars) + TruncationMarker, true},
		{"multibyte over limit", strings.Repeat("é", MaxFetchChars+5), strings.Repeat("é", MaxFetchChars) + TruncationMarker, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{fetchText: tt.body}
			svc := NewSearchService(client)

			res, err := svc.Fetch(context.Background(), FetchRequest{URL: "https://example.com"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, res.Text)
			assert.Equal(t, tt.wantTruncated, res.Truncated)
			assert.Equal(t, []string{"https://example.com"}, client.fetchCalls)
		})
	}
}

func TestSearchService_Fetch_PropagatesError(t *testing.T) {
	upstream := &UpstreamError{Provider: "Fetch", StatusCode: 500, Body: "rate limited"}
	svc := NewSearchService(&fakeClient{err: upstream})

	res, err := svc.Fetch(context.Background(), FetchRequest{URL: "https://example.com"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, upstream)
}
