package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/podforge/podforge/models"
)

const defaultEndpoint = "https://api.tavily.com/search"

// Collector returns ranked result snippets for a topic query.
type Collector interface {
	Collect(ctx context.Context, topic string, maxResults int) ([]models.SearchResult, error)
}

// TavilyClient queries the Tavily web-search API.
type TavilyClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewTavilyClient creates a Tavily client with a bounded request timeout.
func NewTavilyClient(apiKey string, timeout time.Duration) *TavilyClient {
	return &TavilyClient{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type tavilyResponse struct {
	Answer  string         `json:"answer"`
	Results []tavilyResult `json:"results"`
}

// Collect issues the search and returns results in provider order. A search
// that succeeds but finds nothing returns an empty slice, not an error.
// Transient transport failures get a single retry.
func (t *TavilyClient) Collect(ctx context.Context, topic string, maxResults int) ([]models.SearchResult, error) {
	if topic == "" {
		return nil, errors.New("topic must not be empty")
	}
	if maxResults < 1 {
		maxResults = 1
	}

	results, err := t.search(ctx, topic, maxResults)
	if err == nil {
		return results, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	// One bounded retry on transient failure; auth errors never recover.
	if isTransient(err) {
		slog.Warn("search failed, retrying once", "error", err)
		return t.search(ctx, topic, maxResults)
	}
	return nil, err
}

func (t *TavilyClient) search(ctx context.Context, topic string, maxResults int) ([]models.SearchResult, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:        t.apiKey,
		Query:         topic,
		SearchDepth:   "advanced",
		MaxResults:    maxResults,
		IncludeAnswer: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSearchUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSearchUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", models.ErrSearchAuth, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", models.ErrSearchUnavailable, resp.StatusCode, bytes.TrimSpace(b))
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", models.ErrSearchUnavailable, err)
	}

	results := make([]models.SearchResult, 0, len(parsed.Results))
	// Tavily's synthesized answer leads the list when present; it is the
	// densest snippet we get back.
	if parsed.Answer != "" {
		results = append(results, models.SearchResult{
			Title:   "Summary",
			Snippet: parsed.Answer,
		})
	}
	for _, r := range parsed.Results {
		results = append(results, models.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		})
	}
	return results, nil
}

func isTransient(err error) bool {
	return err != nil && !errors.Is(err, models.ErrSearchAuth)
}
