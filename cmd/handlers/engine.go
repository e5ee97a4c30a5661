package handlers

import (
	"fmt"

	"github.com/ontheotherocean/music-news-bot/internal/articles"
	"github.com/ontheotherocean/music-news-bot/internal/assistant"
	"github.com/ontheotherocean/music-news-bot/internal/collector"
	"github.com/ontheotherocean/music-news-bot/internal/config"
	"github.com/ontheotherocean/music-news-bot/internal/fetch"
	"github.com/ontheotherocean/music-news-bot/internal/llm"
	"github.com/ontheotherocean/music-news-bot/internal/planner"
	"github.com/ontheotherocean/music-news-bot/internal/search"
)

// buildEngine wires the full pipeline from configuration: search provider,
// article filter, batch collector, planner, and generator.
func buildEngine() (*assistant.Engine, error) {
	cfg := config.Get()

	provider, err := search.NewProvider(
		search.ProviderType(cfg.Search.Provider),
		map[string]string{
			"api_key":  cfg.Search.Exa.APIKey,
			"base_url": cfg.Search.Exa.BaseURL,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search provider: %w", err)
	}

	filter := articles.NewFilter(cfg.Filter.MinPathSegments, cfg.Filter.IndexPatterns)

	collectorOpts := collector.Options{
		BatchSize:     cfg.Collector.BatchSize,
		Cooldown:      cfg.CollectorCooldown(),
		SnippetMaxLen: cfg.Search.SnippetMaxLen,
	}
	if cfg.Search.BackfillFetch {
		collectorOpts.Backfill = fetch.NewSnippetFetcher(cfg.SearchTimeout())
		collectorOpts.BackfillBudget = cfg.Search.BackfillBudget
	}
	coll := collector.New(provider, filter, collectorOpts)

	llmClient, err := llm.NewClient(cfg.Gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	queryPlanner := planner.New(llmClient, cfg.Gemini.PlanMaxTokens)

	generator := assistant.NewGenerator(llmClient, assistant.GeneratorOptions{
		AnswerMaxTokens:   cfg.Gemini.AnswerMaxTokens,
		AnswerTemperature: cfg.Gemini.AnswerTemperature,
		DigestMaxTokens:   cfg.Gemini.DigestMaxTokens,
		DigestTemperature: cfg.Gemini.DigestTemperature,
		DigestTopN:        cfg.Digest.TopN,
	})

	engine := assistant.NewEngine(queryPlanner, coll, generator, assistant.EngineConfig{
		Domains:       cfg.Search.Domains,
		DateFloorDays: cfg.Search.DateFloorDays,
		ResultLimit:   cfg.Search.MaxResults,
		SnippetCap:    cfg.Search.SnippetCap,
		DigestQueries: cfg.Digest.Queries,
		ModelName:     cfg.Gemini.Model,
	})

	return engine, nil
}
