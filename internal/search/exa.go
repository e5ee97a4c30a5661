package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ontheotherocean/music-news-bot/internal/logger"
)

const defaultExaBaseURL = "https://api.exa.ai"

// ExaProvider implements Provider using the Exa search API
type ExaProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewExaProvider creates a new Exa search provider
func NewExaProvider(apiKey, baseURL string) *ExaProvider {
	if baseURL == "" {
		baseURL = defaultExaBaseURL
	}
	return &ExaProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// GetName returns the name of this provider
func (e *ExaProvider) GetName() string {
	return "Exa"
}

// exaRequest is the JSON body for the Exa /search endpoint
type exaRequest struct {
	Query              string          `json:"query"`
	NumResults         int             `json:"numResults"`
	UseAutoprompt      bool            `json:"useAutoprompt"`
	IncludeDomains     []string        `json:"includeDomains,omitempty"`
	StartPublishedDate string          `json:"startPublishedDate,omitempty"`
	Contents           exaContentsSpec `json:"contents"`
}

type exaContentsSpec struct {
	Text exaTextSpec `json:"text"`
}

type exaTextSpec struct {
	MaxCharacters int `json:"maxCharacters"`
}

// Search performs a search using the Exa API
func (e *ExaProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}
	snippetCap := config.SnippetCap
	if snippetCap <= 0 {
		snippetCap = 500
	}

	reqBody := exaRequest{
		Query:          query,
		NumResults:     maxResults,
		UseAutoprompt:  true,
		IncludeDomains: config.Domains,
		Contents:       exaContentsSpec{Text: exaTextSpec{MaxCharacters: snippetCap}},
	}
	if !config.DateFloor.IsZero() {
		reqBody.StartPublishedDate = config.DateFloor.UTC().Format(time.RFC3339)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode Exa request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create Exa request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Exa request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exa request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Results []struct {
			Title         string `json:"title"`
			URL           string `json:"url"`
			PublishedDate string `json:"publishedDate"`
			Text          string `json:"text"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Exa response: %w", err)
	}

	results := make([]Result, 0, len(apiResponse.Results))
	for _, item := range apiResponse.Results {
		if item.URL == "" {
			continue
		}
		result := Result{
			URL:     item.URL,
			Title:   item.Title,
			Snippet: item.Text,
		}
		if item.PublishedDate != "" {
			if published, err := time.Parse(time.RFC3339, item.PublishedDate); err == nil {
				result.PublishedAt = &published
			}
		}
		results = append(results, result)
	}

	logger.Debug("Exa search completed", "query", query, "results_found", len(results))

	return results, nil
}
