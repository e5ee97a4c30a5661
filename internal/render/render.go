package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ontheotherocean/music-news-bot/internal/core"
)

// FormatContext renders an ordered article list into the textual context
// block consumed by the generation step. Each article gets a 1-based index,
// its title, snippet, and source URL with a ru-RU formatted publication date
// when present. Formatting is deterministic for a given input order; an empty
// list renders to an empty string, which callers treat as "no context".
func FormatContext(articles []core.Article) string {
	if len(articles) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(articles))
	for i, a := range articles {
		var b strings.Builder
		fmt.Fprintf(&b, "[%d] %s\n", i+1, a.Title)
		b.WriteString(a.Snippet)
		b.WriteString("\nИсточник: ")
		b.WriteString(a.URL)
		if a.PublishedAt != nil {
			fmt.Fprintf(&b, " (%s)", formatDateRU(*a.PublishedAt))
		}
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n")
}

// AllowedURLs extracts the exact citable URL set from an article list, in
// order. It must be re-derived from the articles that produced the context
// for every generation call.
func AllowedURLs(articles []core.Article) []string {
	urls := make([]string, 0, len(articles))
	for _, a := range articles {
		urls = append(urls, a.URL)
	}
	return urls
}

// formatDateRU renders a date the way the bot's Russian-speaking audience
// reads it: dd.mm.yyyy.
func formatDateRU(t time.Time) string {
	return t.Format("02.01.2006")
}

// WriteDigestToFile writes a rendered digest to outputDir, named by date.
func WriteDigestToFile(digest *core.Digest, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "digests"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	dateStr := digest.GeneratedAt.UTC().Format("2006-01-02")
	filePath := filepath.Join(outputDir, fmt.Sprintf("digest_%s.md", dateStr))

	var content strings.Builder
	content.WriteString(fmt.Sprintf("# Музыкальный дайджест — %s\n\n", dateStr))
	content.WriteString(digest.Content)
	content.WriteString("\n")

	if err := os.WriteFile(filePath, []byte(content.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write digest file %s: %w", filePath, err)
	}

	return filePath, nil
}
