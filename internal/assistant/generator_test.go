package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ontheotherocean/music-news-bot/internal/llm"
)

// stubTextGenerator records the prompt and returns a canned response.
type stubTextGenerator struct {
	response string
	err      error
	prompt   string
	options  llm.TextGenerationOptions
}

func (s *stubTextGenerator) GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error) {
	s.prompt = prompt
	s.options = options
	return s.response, s.err
}

func TestAnswerWithContextEnumeratesAllowlist(t *testing.T) {
	gen := &stubTextGenerator{response: "Ответ со ссылкой [источник](https://pitchfork.com/news/story)."}
	g := NewGenerator(gen, GeneratorOptions{})

	allowed := []string{"https://pitchfork.com/news/story", "https://nme.com/news/music/other"}
	_, err := g.Answer(context.Background(), "что нового?", "[1] Story\nsnippet\nИсточник: https://pitchfork.com/news/story", allowed)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, u := range allowed {
		if !strings.Contains(gen.prompt, "- "+u) {
			t.Errorf("Expected prompt to enumerate allowlisted URL %s", u)
		}
	}
	if !strings.Contains(gen.prompt, "что нового?") {
		t.Error("Expected prompt to carry the user message")
	}
	if gen.options.SystemPrompt == "" {
		t.Error("Expected the system prompt to be set")
	}
}

func TestAnswerWithoutContextForbidsCitations(t *testing.T) {
	gen := &stubTextGenerator{response: "Билли Айлиш — американская певица. Источник: https://fabricated.example.com/bio"}
	g := NewGenerator(gen, GeneratorOptions{})

	got, err := g.Answer(context.Background(), "кто такая Билли Айлиш?", "", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(gen.prompt, "БЕЗ КАКИХ-ЛИБО ССЫЛОК") {
		t.Error("Expected the no-context prompt variant")
	}
	if strings.Contains(got, "fabricated.example.com") {
		t.Errorf("Expected every citation stripped in no-context mode, got: %s", got)
	}
}

func TestAnswerStripsFabricatedCitations(t *testing.T) {
	gen := &stubTextGenerator{response: "Новость подтверждена [источник](https://fabricated.example.com/story) и [источник](https://pitchfork.com/news/story)."}
	g := NewGenerator(gen, GeneratorOptions{})

	allowed := []string{"https://pitchfork.com/news/story"}
	got, err := g.Answer(context.Background(), "news?", "[1] Story\nsnippet\nИсточник: https://pitchfork.com/news/story", allowed)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.Contains(got, "fabricated.example.com") {
		t.Errorf("Expected fabricated citation stripped, got: %s", got)
	}
	if !strings.Contains(got, "https://pitchfork.com/news/story") {
		t.Errorf("Expected allowlisted citation kept, got: %s", got)
	}
}

func TestAnswerPropagatesGenerationFailure(t *testing.T) {
	gen := &stubTextGenerator{err: errors.New("model unavailable")}
	g := NewGenerator(gen, GeneratorOptions{})

	_, err := g.Answer(context.Background(), "вопрос", "", nil)
	if err == nil {
		t.Error("Expected generation failure to propagate")
	}
}

func TestDigestUsesRankingPromptAndTopN(t *testing.T) {
	gen := &stubTextGenerator{response: "1. Новость [источник](https://pitchfork.com/news/story)"}
	g := NewGenerator(gen, GeneratorOptions{DigestTopN: 5})

	allowed := []string{"https://pitchfork.com/news/story"}
	_, err := g.Digest(context.Background(), "[1] Story\nsnippet\nИсточник: https://pitchfork.com/news/story", allowed)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(gen.options.SystemPrompt, "выбрать 5 самых важных") {
		t.Errorf("Expected ranking prompt with top-5, got: %s", gen.options.SystemPrompt)
	}
	if !strings.Contains(gen.prompt, "Пронумеруй их от 1 до 5") {
		t.Errorf("Expected digest request for 5 items, got: %s", gen.prompt)
	}
}

func TestDigestRequiresContext(t *testing.T) {
	gen := &stubTextGenerator{response: "anything"}
	g := NewGenerator(gen, GeneratorOptions{})

	_, err := g.Digest(context.Background(), "", nil)
	if err == nil {
		t.Error("Expected error for empty digest context")
	}
}
