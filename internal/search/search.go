package search

import (
	"context"
	"time"
)

// Provider defines the unified interface for search providers
type Provider interface {
	// Search performs a search with configuration
	Search(ctx context.Context, query string, config Config) ([]Result, error)

	// GetName returns the name of the search provider
	GetName() string
}

// Config holds configuration for search requests
type Config struct {
	MaxResults int       // Maximum number of results to return
	Domains    []string  // Restrict results to these hostnames; empty means unrestricted
	DateFloor  time.Time // Only return results published after this; zero means no floor
	SnippetCap int       // Character budget for content snippets
}

// Result represents a unified search result
type Result struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Snippet     string     `json:"snippet"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// ProviderType represents the type of search provider
type ProviderType string

const (
	ProviderTypeExa  ProviderType = "exa"
	ProviderTypeMock ProviderType = "mock"
)

// NewProvider creates a search provider of the specified type
func NewProvider(providerType ProviderType, config map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeExa:
		apiKey, exists := config["api_key"]
		if !exists || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewExaProvider(apiKey, config["base_url"]), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
