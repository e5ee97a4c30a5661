// Package markdown provides citation extraction and allowlist enforcement
// for generated responses.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// CitationReference represents a citation found in generated markdown.
type CitationReference struct {
	Text string // Link text, empty for a bare URL
	URL  string // Target URL
}

var (
	// [text](url) markdown links
	linkPattern = regexp.MustCompile(`\[([^\]]*)\]\((https?://[^)\s]+)\)`)
	// bare URLs outside of markdown links
	bareURLPattern = regexp.MustCompile(`https?://[^\s)\]>,]+`)
)

// ExtractCitations parses markdown text and returns every cited URL, both
// markdown links and bare URLs. Order follows appearance; duplicates are kept.
func ExtractCitations(text string) []CitationReference {
	var citations []CitationReference

	linked := make(map[string]bool)
	for _, match := range linkPattern.FindAllStringSubmatch(text, -1) {
		url := trimCitationURL(match[2])
		citations = append(citations, CitationReference{Text: match[1], URL: url})
		linked[url] = true
	}

	// Bare URLs not already captured as link targets.
	withoutLinks := linkPattern.ReplaceAllString(text, "")
	for _, raw := range bareURLPattern.FindAllString(withoutLinks, -1) {
		url := trimCitationURL(raw)
		citations = append(citations, CitationReference{URL: url})
	}

	return citations
}

// ValidateCitations returns a warning per citation whose URL is not in the
// allowed set. An empty return means the text honors the allowlist.
func ValidateCitations(text string, allowedURLs []string) []string {
	allowed := allowlistSet(allowedURLs)

	var warnings []string
	for _, citation := range ExtractCitations(text) {
		if !allowed[normalizeCitationURL(citation.URL)] {
			warnings = append(warnings, fmt.Sprintf("citation references URL outside the allowed set: %s", citation.URL))
		}
	}
	return warnings
}

// StripUnknownCitations rewrites text so that no citation outside allowedURLs
// survives: markdown links to unknown URLs collapse to their link text, and
// bare unknown URLs are removed. Known citations are left untouched.
func StripUnknownCitations(text string, allowedURLs []string) string {
	allowed := allowlistSet(allowedURLs)

	result := linkPattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		if allowed[normalizeCitationURL(trimCitationURL(parts[2]))] {
			return match
		}
		return parts[1]
	})

	result = bareURLPattern.ReplaceAllStringFunc(result, func(raw string) string {
		url := trimCitationURL(raw)
		if allowed[normalizeCitationURL(url)] {
			return raw
		}
		// Preserve trailing punctuation the pattern may have excluded.
		return strings.TrimPrefix(raw, url)
	})

	return result
}

// trimCitationURL drops trailing punctuation that sentence context attaches
// to a URL.
func trimCitationURL(raw string) string {
	return strings.TrimRight(raw, ".,;:!?")
}

func normalizeCitationURL(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}

func allowlistSet(allowedURLs []string) map[string]bool {
	allowed := make(map[string]bool, len(allowedURLs))
	for _, u := range allowedURLs {
		allowed[normalizeCitationURL(u)] = true
	}
	return allowed
}
