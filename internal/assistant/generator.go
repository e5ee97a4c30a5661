package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/ontheotherocean/music-news-bot/internal/llm"
	"github.com/ontheotherocean/music-news-bot/internal/logger"
	"github.com/ontheotherocean/music-news-bot/internal/markdown"
)

// TextGenerator is the narrow LLM surface the response generator needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error)
}

// GeneratorOptions carries the per-mode generation parameters.
type GeneratorOptions struct {
	AnswerMaxTokens   int32
	AnswerTemperature float32
	DigestMaxTokens   int32
	DigestTemperature float32
	DigestTopN        int
}

// Generator produces the final user-facing text: grounded answers with a
// citation allowlist, and ranked weekly digests. Both modes are single-shot;
// provider errors propagate to the caller.
type Generator struct {
	generator TextGenerator
	opts      GeneratorOptions
}

// NewGenerator creates a response generator.
func NewGenerator(generator TextGenerator, opts GeneratorOptions) *Generator {
	if opts.AnswerMaxTokens <= 0 {
		opts.AnswerMaxTokens = 2048
	}
	if opts.AnswerTemperature <= 0 {
		opts.AnswerTemperature = 0.3
	}
	if opts.DigestMaxTokens <= 0 {
		opts.DigestMaxTokens = 3000
	}
	if opts.DigestTemperature <= 0 {
		opts.DigestTemperature = 0.2
	}
	if opts.DigestTopN <= 0 {
		opts.DigestTopN = 10
	}
	return &Generator{generator: generator, opts: opts}
}

// Answer produces a grounded answer for userMessage. When searchContext is
// non-empty, allowedURLs must be the exact URL set of the articles that
// produced it; the prompt enumerates that set as the only citable one, and
// the returned text is post-filtered so no citation outside it survives.
// When searchContext is empty, the model answers from its own knowledge and
// every citation is stripped.
func (g *Generator) Answer(ctx context.Context, userMessage, searchContext string, allowedURLs []string) (string, error) {
	var content string
	if searchContext != "" {
		urlList := make([]string, 0, len(allowedURLs))
		for _, u := range allowedURLs {
			urlList = append(urlList, "- "+u)
		}
		content = fmt.Sprintf(answerWithContextTemplate, searchContext, strings.Join(urlList, "\n"), userMessage)
	} else {
		allowedURLs = nil
		content = fmt.Sprintf(answerWithoutContextTemplate, userMessage)
	}

	response, err := g.generator.GenerateText(ctx, content, llm.TextGenerationOptions{
		SystemPrompt: systemPrompt,
		MaxTokens:    g.opts.AnswerMaxTokens,
		Temperature:  g.opts.AnswerTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("answer generation failed: %w", err)
	}

	return g.enforceAllowlist(response, allowedURLs), nil
}

// Digest selects and summarizes the top stories from the pooled article
// context. allowedURLs is the URL set of the pooled articles.
func (g *Generator) Digest(ctx context.Context, articlesContext string, allowedURLs []string) (string, error) {
	if articlesContext == "" {
		return "", fmt.Errorf("digest requires a non-empty article context")
	}

	content := fmt.Sprintf(digestRequestTemplate, articlesContext, g.opts.DigestTopN, g.opts.DigestTopN)

	response, err := g.generator.GenerateText(ctx, content, llm.TextGenerationOptions{
		SystemPrompt: fmt.Sprintf(rankingPrompt, g.opts.DigestTopN),
		MaxTokens:    g.opts.DigestMaxTokens,
		Temperature:  g.opts.DigestTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("digest generation failed: %w", err)
	}

	return g.enforceAllowlist(response, allowedURLs), nil
}

// enforceAllowlist is the independent validation layer behind the prompt
// contract: any citation the model produced outside allowedURLs is stripped
// before the text reaches the user.
func (g *Generator) enforceAllowlist(response string, allowedURLs []string) string {
	warnings := markdown.ValidateCitations(response, allowedURLs)
	if len(warnings) == 0 {
		return response
	}
	for _, w := range warnings {
		logger.Warn("Generated response violated the citation allowlist", "warning", w)
	}
	return markdown.StripUnknownCitations(response, allowedURLs)
}
