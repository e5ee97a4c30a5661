package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ontheotherocean/music-news-bot/internal/core"
)

// stubPlanner returns a fixed plan.
type stubPlanner struct {
	plan core.Plan
}

func (s *stubPlanner) Plan(ctx context.Context, userMessage string) core.Plan {
	return s.plan
}

// stubCollector returns fixed articles and records the queries it received.
type stubCollector struct {
	articles []core.Article
	queries  []core.Query
}

func (s *stubCollector) Collect(ctx context.Context, queries []core.Query) []core.Article {
	s.queries = queries
	return s.articles
}

// recordingGenerator records what the engine passed into generation.
type recordingGenerator struct {
	answer        string
	digest        string
	err           error
	gotMessage    string
	gotContext    string
	gotAllowed    []string
	digestCalled  bool
	answerCalled  bool
	digestContext string
}

func (r *recordingGenerator) Answer(ctx context.Context, userMessage, searchContext string, allowedURLs []string) (string, error) {
	r.answerCalled = true
	r.gotMessage = userMessage
	r.gotContext = searchContext
	r.gotAllowed = allowedURLs
	return r.answer, r.err
}

func (r *recordingGenerator) Digest(ctx context.Context, articlesContext string, allowedURLs []string) (string, error) {
	r.digestCalled = true
	r.digestContext = articlesContext
	r.gotAllowed = allowedURLs
	return r.digest, r.err
}

func TestRespondWithSearchBuildsContextAndAllowlist(t *testing.T) {
	planner := &stubPlanner{plan: core.Plan{
		NeedsSearch:   true,
		SearchQueries: []string{"music news this week", "new albums"},
	}}
	collector := &stubCollector{articles: []core.Article{
		{Title: "A", URL: "https://example.com/music/a", Snippet: "s1"},
		{Title: "B", URL: "https://example.com/music/b", Snippet: "s2"},
	}}
	generator := &recordingGenerator{answer: "ответ"}

	engine := NewEngine(planner, collector, generator, EngineConfig{
		Domains:       []string{"example.com"},
		DateFloorDays: 7,
		ResultLimit:   10,
		SnippetCap:    500,
	})

	got, err := engine.Respond(context.Background(), "новости")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "ответ" {
		t.Errorf("Unexpected response: %q", got)
	}

	if len(collector.queries) != 2 {
		t.Fatalf("Expected 2 retrieval queries, got %d", len(collector.queries))
	}
	q := collector.queries[0]
	if q.Text != "music news this week" {
		t.Errorf("Unexpected first query: %q", q.Text)
	}
	if len(q.Domains) != 1 || q.Domains[0] != "example.com" {
		t.Errorf("Expected domain scope applied, got %v", q.Domains)
	}
	if q.DateFloor.IsZero() {
		t.Error("Expected a date floor on generated queries")
	}

	// Allowlist must be exactly the collected article URLs, in order.
	if len(generator.gotAllowed) != 2 {
		t.Fatalf("Expected allowlist of 2 URLs, got %v", generator.gotAllowed)
	}
	if generator.gotAllowed[0] != "https://example.com/music/a" {
		t.Errorf("Unexpected allowlist order: %v", generator.gotAllowed)
	}
	if !strings.Contains(generator.gotContext, "[1] A") || !strings.Contains(generator.gotContext, "[2] B") {
		t.Errorf("Expected numbered context entries, got:\n%s", generator.gotContext)
	}
}

func TestRespondWithoutSearchSkipsCollection(t *testing.T) {
	planner := &stubPlanner{plan: core.Plan{NeedsSearch: false}}
	collector := &stubCollector{}
	generator := &recordingGenerator{answer: "из общих знаний"}

	engine := NewEngine(planner, collector, generator, EngineConfig{})

	_, err := engine.Respond(context.Background(), "кто изобрёл синтезатор?")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if collector.queries != nil {
		t.Errorf("Expected no retrieval for a no-search plan, got %v", collector.queries)
	}
	if generator.gotContext != "" {
		t.Errorf("Expected empty context, got %q", generator.gotContext)
	}
	if generator.gotAllowed != nil {
		t.Errorf("Expected nil allowlist without context, got %v", generator.gotAllowed)
	}
}

func TestRespondEmptyRetrievalDegradesToNoContext(t *testing.T) {
	planner := &stubPlanner{plan: core.Plan{NeedsSearch: true, SearchQueries: []string{"q"}}}
	collector := &stubCollector{articles: nil}
	generator := &recordingGenerator{answer: "без контекста"}

	engine := NewEngine(planner, collector, generator, EngineConfig{})

	_, err := engine.Respond(context.Background(), "новости")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if generator.gotContext != "" {
		t.Errorf("Expected empty context when retrieval found nothing, got %q", generator.gotContext)
	}
	if len(generator.gotAllowed) != 0 {
		t.Errorf("Expected empty allowlist, got %v", generator.gotAllowed)
	}
}

func TestRespondPropagatesGenerationFailure(t *testing.T) {
	planner := &stubPlanner{plan: core.Plan{NeedsSearch: false}}
	generator := &recordingGenerator{err: errors.New("model down")}

	engine := NewEngine(planner, &stubCollector{}, generator, EngineConfig{})

	_, err := engine.Respond(context.Background(), "вопрос")
	if err == nil {
		t.Error("Expected generation failure to propagate")
	}
}

func TestWeeklyDigestProducesDigest(t *testing.T) {
	collector := &stubCollector{articles: []core.Article{
		{Title: "Big Story", URL: "https://example.com/music/big-story", Snippet: "s"},
	}}
	generator := &recordingGenerator{digest: "1. Big Story [источник](https://example.com/music/big-story)"}

	engine := NewEngine(&stubPlanner{}, collector, generator, EngineConfig{
		DigestQueries: []string{"q1", "q2", "q3"},
		ModelName:     "gemini-2.0-flash",
	})

	digest, err := engine.WeeklyDigest(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if digest.ID == "" {
		t.Error("Expected digest to carry an ID")
	}
	if digest.ArticleCount != 1 {
		t.Errorf("Expected article count 1, got %d", digest.ArticleCount)
	}
	if digest.ModelUsed != "gemini-2.0-flash" {
		t.Errorf("Expected model recorded on the digest, got %q", digest.ModelUsed)
	}
	if len(collector.queries) != 3 {
		t.Errorf("Expected the fixed query set to be used, got %d queries", len(collector.queries))
	}
	if !generator.digestCalled {
		t.Error("Expected digest mode generation")
	}
}

func TestWeeklyDigestEmptyCollectionReturnsErrNoNews(t *testing.T) {
	collector := &stubCollector{articles: nil}
	generator := &recordingGenerator{}

	engine := NewEngine(&stubPlanner{}, collector, generator, EngineConfig{
		DigestQueries: []string{"q1"},
	})

	_, err := engine.WeeklyDigest(context.Background())
	if !errors.Is(err, ErrNoNews) {
		t.Errorf("Expected ErrNoNews, got %v", err)
	}
	if generator.digestCalled {
		t.Error("Expected generation to be skipped when no articles were collected")
	}
}
