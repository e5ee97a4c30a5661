// Package collector fans retrieval queries out to the search provider in
// rate-limited batches and merges the results into one deduplicated,
// filtered article list.
package collector

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ontheotherocean/music-news-bot/internal/articles"
	"github.com/ontheotherocean/music-news-bot/internal/core"
	"github.com/ontheotherocean/music-news-bot/internal/logger"
	"github.com/ontheotherocean/music-news-bot/internal/search"
)

// SnippetBackfiller fills in snippets for results the provider returned
// without one. Implemented by fetch.SnippetFetcher.
type SnippetBackfiller interface {
	FetchSnippet(ctx context.Context, url string) (title, description string, err error)
}

// Options configures a Collector.
type Options struct {
	BatchSize      int               // Concurrent searches per batch; bounded by the provider's rate ceiling
	Cooldown       time.Duration     // Pause between batches
	SnippetMaxLen  int               // Truncate record snippets to this many runes; 0 disables
	Backfill       SnippetBackfiller // Optional snippet backfill; nil disables
	BackfillBudget int               // Max backfill fetches per Collect call
}

// Collector executes query batches against a single search provider.
// One Collector may be shared across turns; all per-call state is local.
type Collector struct {
	provider search.Provider
	filter   *articles.Filter
	opts     Options

	// sleep is swapped out by tests to observe cooldown scheduling.
	sleep func(ctx context.Context, d time.Duration)
}

// New creates a Collector. batchSize and cooldown come from configuration;
// the defaults respect the search provider's requests-per-second contract.
func New(provider search.Provider, filter *articles.Filter, opts Options) *Collector {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 4
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 1200 * time.Millisecond
	}
	return &Collector{
		provider: provider,
		filter:   filter,
		opts:     opts,
		sleep:    sleepWithContext,
	}
}

// Collect runs every query and returns the merged article list with
// first-occurrence URL deduplication and article-page filtering applied.
// Provider errors degrade to empty results for the failing query; an empty
// return value means "no news found", not failure.
func (c *Collector) Collect(ctx context.Context, queries []core.Query) []core.Article {
	if len(queries) == 0 {
		return nil
	}

	perQuery := make([][]search.Result, len(queries))

	for start := 0; start < len(queries); start += c.opts.BatchSize {
		if start > 0 {
			c.sleep(ctx, c.opts.Cooldown)
		}
		if ctx.Err() != nil {
			logger.Warn("Collection cancelled", "reason", ctx.Err())
			break
		}

		end := start + c.opts.BatchSize
		if end > len(queries) {
			end = len(queries)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int, q core.Query) {
				defer wg.Done()
				perQuery[idx] = c.searchOne(ctx, q)
			}(i, queries[i])
		}
		wg.Wait()
	}

	merged := c.merge(ctx, perQuery)

	logger.Info("Collection completed", "queries", len(queries), "articles", len(merged))
	return merged
}

// searchOne runs a single retrieval call. Failure is non-fatal and resolves
// to no results.
func (c *Collector) searchOne(ctx context.Context, q core.Query) []search.Result {
	results, err := c.provider.Search(ctx, q.Text, search.Config{
		MaxResults: q.ResultLimit,
		Domains:    q.Domains,
		DateFloor:  q.DateFloor,
		SnippetCap: q.SnippetCap,
	})
	if err != nil {
		logger.Warn("Search failed, continuing without its results", "query", q.Text, "error", err.Error())
		return nil
	}
	return results
}

// merge flattens per-query results in submission order, dropping duplicate
// URLs (first occurrence wins) and non-article pages.
func (c *Collector) merge(ctx context.Context, perQuery [][]search.Result) []core.Article {
	seen := make(map[string]bool)
	var merged []core.Article
	backfillLeft := c.opts.BackfillBudget

	for _, results := range perQuery {
		for _, r := range results {
			key := normalizeURL(r.URL)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true

			if c.filter != nil && !c.filter.IsArticlePage(r.URL) {
				continue
			}

			article := core.Article{
				Title:       r.Title,
				URL:         r.URL,
				Snippet:     truncate(r.Snippet, c.opts.SnippetMaxLen),
				PublishedAt: r.PublishedAt,
			}

			if article.Snippet == "" && c.opts.Backfill != nil && backfillLeft > 0 {
				backfillLeft--
				title, description, err := c.opts.Backfill.FetchSnippet(ctx, r.URL)
				if err != nil {
					logger.Debug("Snippet backfill failed", "url", r.URL, "error", err.Error())
				} else {
					article.Snippet = truncate(description, c.opts.SnippetMaxLen)
					if article.Title == "" {
						article.Title = title
					}
				}
			}

			merged = append(merged, article)
		}
	}

	return merged
}

// normalizeURL produces the dedup key for a result URL.
func normalizeURL(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return ""
	}
	parsed.Fragment = ""
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	path := strings.TrimSuffix(parsed.EscapedPath(), "/")
	key := host + path
	if parsed.RawQuery != "" {
		key += "?" + parsed.RawQuery
	}
	return key
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
