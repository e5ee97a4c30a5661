// Package articles classifies retrieval result URLs as article pages or
// index/category pages.
package articles

import (
	"net/url"
	"strings"
)

// Filter decides whether a URL points at a single article page rather than a
// listing page (tag front, section index, genre listing). It is a pure
// classifier with no I/O.
type Filter struct {
	minPathSegments int
	indexPatterns   []string
}

// NewFilter creates a filter with the given minimum path-segment count and
// index-page path patterns. Patterns are matched as path prefixes after
// normalization, e.g. "/tags/" rejects "/tags/jazz".
func NewFilter(minPathSegments int, indexPatterns []string) *Filter {
	if minPathSegments <= 0 {
		minPathSegments = 2
	}
	normalized := make([]string, 0, len(indexPatterns))
	for _, p := range indexPatterns {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		if !strings.HasSuffix(p, "/") {
			p = p + "/"
		}
		normalized = append(normalized, p)
	}
	return &Filter{
		minPathSegments: minPathSegments,
		indexPatterns:   normalized,
	}
}

// IsArticlePage reports whether rawURL looks like a real article page.
// Malformed URLs fail closed.
func (f *Filter) IsArticlePage(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Hostname() == "" {
		return false
	}

	segments := pathSegments(parsed.Path)
	if len(segments) < f.minPathSegments {
		return false
	}

	// A URL whose entire path is an index pattern is a listing page even
	// when it clears the segment minimum.
	normalizedPath := strings.ToLower(parsed.Path)
	if !strings.HasSuffix(normalizedPath, "/") {
		normalizedPath += "/"
	}
	for _, pattern := range f.indexPatterns {
		if normalizedPath == pattern {
			return false
		}
		// Pattern directories like /tags/ mark everything beneath them
		// as listings only when the pattern itself names a taxonomy.
		if isTaxonomyPattern(pattern) && strings.HasPrefix(normalizedPath, pattern) {
			return false
		}
	}

	return true
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// taxonomyPrefixes are patterns whose children are still listings
// (/tags/jazz is a listing; /reviews/some-album is an article).
var taxonomyPrefixes = map[string]bool{
	"/tags/":   true,
	"/tag/":    true,
	"/genre/":  true,
	"/genres/": true,
	"/topics/": true,
}

func isTaxonomyPattern(pattern string) bool {
	return taxonomyPrefixes[pattern]
}
