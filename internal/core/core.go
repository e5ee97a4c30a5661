package core

import "time"

// Article represents a single normalized retrieval result. Records are
// immutable once constructed from a provider response and live only for the
// duration of one user turn.
type Article struct {
	Title       string     `json:"title"`        // Article headline
	URL         string     `json:"url"`          // Canonical URL, unique key within a result set
	Snippet     string     `json:"snippet"`      // Truncated content excerpt
	PublishedAt *time.Time `json:"published_at"` // Publication date, nil when the provider omits it
}

// Query describes one retrieval call against the search provider.
type Query struct {
	Text        string    `json:"text"`         // Free-form query text
	Domains     []string  `json:"domains"`      // Allowed hostnames; empty means unrestricted
	DateFloor   time.Time `json:"date_floor"`   // Only results published after this; zero means no floor
	ResultLimit int       `json:"result_limit"` // Maximum results to request
	SnippetCap  int       `json:"snippet_cap"`  // Character budget for provider snippets
}

// Plan is the output of intent classification for one user message.
type Plan struct {
	NeedsSearch   bool     `json:"needsSearch"`   // Whether the message requires fresh information
	SearchQueries []string `json:"searchQueries"` // Ordered query strings, empty when NeedsSearch is false
	Reasoning     string   `json:"reasoning"`     // Diagnostic only, never shown to the user
}

// Digest represents one generated weekly news digest.
type Digest struct {
	ID           string    `json:"id"`            // Unique identifier for the digest
	Content      string    `json:"content"`       // The rendered digest text
	ArticleURLs  []string  `json:"article_urls"`  // URLs of the pooled articles the digest drew from
	ArticleCount int       `json:"article_count"` // Size of the pooled article set
	ModelUsed    string    `json:"model_used"`    // LLM model used for ranking and summarization
	GeneratedAt  time.Time `json:"generated_at"`  // Timestamp when the digest was generated
}
