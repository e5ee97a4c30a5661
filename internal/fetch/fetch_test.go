package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchSnippetExtractsMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
			<title>Page Title</title>
			<meta property="og:title" content="OG Title">
			<meta name="description" content="A short description.">
		</head><body></body></html>`))
	}))
	defer server.Close()

	fetcher := NewSnippetFetcher(5 * time.Second)
	title, description, err := fetcher.FetchSnippet(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if title != "OG Title" {
		t.Errorf("Expected og:title to win, got %q", title)
	}
	if description != "A short description." {
		t.Errorf("Unexpected description: %q", description)
	}
}

func TestFetchSnippetFallsBackToOGDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
			<title>Only Title</title>
			<meta property="og:description" content="OG description.">
		</head><body></body></html>`))
	}))
	defer server.Close()

	fetcher := NewSnippetFetcher(5 * time.Second)
	title, description, err := fetcher.FetchSnippet(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if title != "Only Title" {
		t.Errorf("Unexpected title: %q", title)
	}
	if description != "OG description." {
		t.Errorf("Expected og:description fallback, got %q", description)
	}
}

func TestFetchSnippetNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewSnippetFetcher(5 * time.Second)
	_, _, err := fetcher.FetchSnippet(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for non-200 status")
	}
}
