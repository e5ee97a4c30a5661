// Package fetch backfills missing article snippets by pulling the page and
// extracting its title and meta description.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultUserAgent = "music-news-bot/1.0"

// SnippetFetcher fetches page metadata for results whose search provider
// returned no usable snippet. Fetch failures are non-fatal to the pipeline.
type SnippetFetcher struct {
	client    *http.Client
	userAgent string
}

// NewSnippetFetcher creates a fetcher with a bounded request timeout.
func NewSnippetFetcher(timeout time.Duration) *SnippetFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SnippetFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// FetchSnippet retrieves the page at rawURL and returns its title and a short
// description. Either value may be empty when the page does not provide it.
func (f *SnippetFetcher) FetchSnippet(ctx context.Context, rawURL string) (title, description string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetch of %s returned status %d", rawURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML from %s: %w", rawURL, err)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if ogTitle, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(ogTitle) != "" {
		title = strings.TrimSpace(ogTitle)
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		description = strings.TrimSpace(desc)
	}
	if description == "" {
		if ogDesc, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
			description = strings.TrimSpace(ogDesc)
		}
	}

	return title, description, nil
}
