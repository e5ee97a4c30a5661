package search

import (
	"context"
	"sync"
)

// MockProvider implements Provider for testing purposes
type MockProvider struct {
	mu       sync.Mutex
	name     string
	results  map[string][]Result // per-query results; nil falls through to defaults
	defaults []Result
	err      error
	calls    []string
}

// NewMockProvider creates a new mock search provider
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name: "Mock",
		defaults: []Result{
			{
				URL:     "https://example.com/music/article-one",
				Title:   "Example Article 1",
				Snippet: "This is a mock search result for testing purposes.",
			},
			{
				URL:     "https://test.org/releases/article-two",
				Title:   "Test Article 2",
				Snippet: "Another mock search result with different content.",
			},
		},
	}
}

// GetName returns the name of this provider
func (m *MockProvider) GetName() string {
	return m.name
}

// Search returns the configured results for the query, or the defaults
func (m *MockProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, query)

	if m.err != nil {
		return nil, m.err
	}

	results := m.defaults
	if m.results != nil {
		results = m.results[query]
	}

	maxResults := config.MaxResults
	if maxResults <= 0 || maxResults > len(results) {
		maxResults = len(results)
	}

	out := make([]Result, maxResults)
	copy(out, results[:maxResults])
	return out, nil
}

// SetResults sets fixed results returned for every query
func (m *MockProvider) SetResults(results []Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults = results
	m.results = nil
}

// SetResultsForQuery sets results returned for a specific query text.
// Queries without an entry return nothing.
func (m *MockProvider) SetResultsForQuery(query string, results []Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.results == nil {
		m.results = make(map[string][]Result)
	}
	m.results[query] = results
}

// SetError makes every subsequent search fail with err
func (m *MockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the queries searched so far, in call order
func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// SetName allows customization of provider name for testing
func (m *MockProvider) SetName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
}
