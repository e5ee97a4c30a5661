// Package planner classifies user messages and produces retrieval queries.
package planner

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ontheotherocean/music-news-bot/internal/core"
	"github.com/ontheotherocean/music-news-bot/internal/llm"
	"github.com/ontheotherocean/music-news-bot/internal/logger"
)

// plannerPrompt instructs the model to decide whether a message needs a web
// search and to emit English search queries as strict JSON.
const plannerPrompt = `Ты помощник, который анализирует вопрос пользователя о музыке и решает, нужен ли поиск свежих статей.

Ответь строго в JSON формате (без markdown):
{
  "needsSearch": true/false,
  "searchQueries": ["query1 in English", "query2 in English"],
  "reasoning": "brief explanation"
}

Правила:
- needsSearch=true если вопрос про: новости, свежие релизы, туры, события, что происходит с артистом сейчас, текущие проекты
- needsSearch=false если вопрос про: общие знания, история музыки, теория, мнение, рекомендации из прошлого
- searchQueries: 1-3 коротких запроса НА АНГЛИЙСКОМ, оптимизированных для поиска по музыкальным изданиям
- Если вопрос на русском про артиста — транслитерируй имя на английский (Филип Гласс → Philip Glass)
- Каждый запрос — это 3-6 слов, конкретный и точный`

const (
	planMaxQueries       = 3
	defaultPlanMaxTokens = 300
)

// TextGenerator is the narrow LLM surface the planner needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error)
}

// Planner asks the generation provider whether a user message needs fresh
// information and which queries would find it.
type Planner struct {
	generator TextGenerator
	maxTokens int32
}

// New creates a Planner on top of a text generator.
func New(generator TextGenerator, maxTokens int32) *Planner {
	if maxTokens <= 0 {
		maxTokens = defaultPlanMaxTokens
	}
	return &Planner{generator: generator, maxTokens: maxTokens}
}

// Plan classifies userMessage. A provider failure or unparseable response
// never fails the turn: it degrades to a conservative plan that searches
// with the literal user text.
func (p *Planner) Plan(ctx context.Context, userMessage string) core.Plan {
	raw, err := p.generator.GenerateText(ctx, userMessage, llm.TextGenerationOptions{
		SystemPrompt: plannerPrompt,
		MaxTokens:    p.maxTokens,
		JSONOnly:     true,
	})
	if err != nil {
		logger.Warn("Query planning failed, falling back to literal search", "error", err.Error())
		return fallbackPlan(userMessage, "planner error")
	}

	plan, err := parsePlan(raw)
	if err != nil {
		logger.Warn("Query plan response unparseable, falling back to literal search", "error", err.Error())
		return fallbackPlan(userMessage, "parse error")
	}

	if plan.NeedsSearch && len(plan.SearchQueries) == 0 {
		return fallbackPlan(userMessage, plan.Reasoning)
	}

	return plan
}

// parsePlan decodes the model response, tolerating markdown code fences.
func parsePlan(raw string) (core.Plan, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var plan core.Plan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return core.Plan{}, err
	}

	queries := make([]string, 0, len(plan.SearchQueries))
	for _, q := range plan.SearchQueries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		queries = append(queries, q)
		if len(queries) == planMaxQueries {
			break
		}
	}
	plan.SearchQueries = queries

	return plan, nil
}

func fallbackPlan(userMessage, reasoning string) core.Plan {
	return core.Plan{
		NeedsSearch:   true,
		SearchQueries: []string{userMessage},
		Reasoning:     reasoning,
	}
}
