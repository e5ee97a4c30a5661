package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/ontheotherocean/music-news-bot/internal/llm"
)

// stubGenerator returns a canned response or error.
type stubGenerator struct {
	response string
	err      error
	prompt   string
	options  llm.TextGenerationOptions
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error) {
	s.prompt = prompt
	s.options = options
	return s.response, s.err
}

func TestPlanParsesStructuredResponse(t *testing.T) {
	gen := &stubGenerator{response: `{
		"needsSearch": true,
		"searchQueries": ["radiohead new album 2025", "radiohead tour dates"],
		"reasoning": "asks about current events"
	}`}

	p := New(gen, 0)
	plan := p.Plan(context.Background(), "что нового у Radiohead?")

	if !plan.NeedsSearch {
		t.Error("Expected needsSearch to be true")
	}
	if len(plan.SearchQueries) != 2 {
		t.Fatalf("Expected 2 queries, got %d", len(plan.SearchQueries))
	}
	if plan.SearchQueries[0] != "radiohead new album 2025" {
		t.Errorf("Unexpected first query: %q", plan.SearchQueries[0])
	}
	if gen.prompt != "что нового у Radiohead?" {
		t.Errorf("Expected user message to be the prompt, got %q", gen.prompt)
	}
	if !gen.options.JSONOnly {
		t.Error("Expected planner to request JSON-only output")
	}
}

func TestPlanHandlesNoSearchNeeded(t *testing.T) {
	gen := &stubGenerator{response: `{"needsSearch": false, "searchQueries": [], "reasoning": "general knowledge"}`}

	p := New(gen, 0)
	plan := p.Plan(context.Background(), "кто написал Лунную сонату?")

	if plan.NeedsSearch {
		t.Error("Expected needsSearch to be false for a general-knowledge question")
	}
	if len(plan.SearchQueries) != 0 {
		t.Errorf("Expected no queries, got %v", plan.SearchQueries)
	}
}

func TestPlanStripsMarkdownFences(t *testing.T) {
	gen := &stubGenerator{response: "```json\n{\"needsSearch\": true, \"searchQueries\": [\"q\"], \"reasoning\": \"r\"}\n```"}

	p := New(gen, 0)
	plan := p.Plan(context.Background(), "новости")

	if !plan.NeedsSearch || len(plan.SearchQueries) != 1 || plan.SearchQueries[0] != "q" {
		t.Errorf("Expected fenced JSON to parse, got %+v", plan)
	}
}

func TestPlanFallsBackOnUnparseableResponse(t *testing.T) {
	gen := &stubGenerator{response: "I think you should search for recent news."}

	p := New(gen, 0)
	plan := p.Plan(context.Background(), "новости электронной музыки")

	if !plan.NeedsSearch {
		t.Error("Expected fallback plan to search")
	}
	if len(plan.SearchQueries) != 1 || plan.SearchQueries[0] != "новости электронной музыки" {
		t.Errorf("Expected fallback to the literal user message, got %v", plan.SearchQueries)
	}
}

func TestPlanFallsBackOnProviderError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}

	p := New(gen, 0)
	plan := p.Plan(context.Background(), "fresh releases")

	if !plan.NeedsSearch || len(plan.SearchQueries) != 1 || plan.SearchQueries[0] != "fresh releases" {
		t.Errorf("Expected conservative fallback on provider error, got %+v", plan)
	}
}

func TestPlanFallsBackWhenSearchNeededButNoQueries(t *testing.T) {
	gen := &stubGenerator{response: `{"needsSearch": true, "searchQueries": [], "reasoning": "r"}`}

	p := New(gen, 0)
	plan := p.Plan(context.Background(), "latest news")

	if len(plan.SearchQueries) != 1 || plan.SearchQueries[0] != "latest news" {
		t.Errorf("Expected literal-message fallback when the plan has no queries, got %v", plan.SearchQueries)
	}
}

func TestPlanCapsQueryCount(t *testing.T) {
	gen := &stubGenerator{response: `{"needsSearch": true, "searchQueries": ["a", "b", "c", "d", "e"], "reasoning": "r"}`}

	p := New(gen, 0)
	plan := p.Plan(context.Background(), "news")

	if len(plan.SearchQueries) != 3 {
		t.Errorf("Expected query count capped at 3, got %d", len(plan.SearchQueries))
	}
}
