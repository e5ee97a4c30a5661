// Package assistant orchestrates the query-planning and
// retrieval-augmentation pipeline: deciding whether a message needs fresh
// information, collecting grounded context, and generating a cited response.
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ontheotherocean/music-news-bot/internal/core"
	"github.com/ontheotherocean/music-news-bot/internal/logger"
	"github.com/ontheotherocean/music-news-bot/internal/render"
)

// ErrNoNews signals that a digest run found no articles. It is a normal
// outcome, not a failure; callers render "no news found" and skip generation.
var ErrNoNews = errors.New("no news articles found")

// QueryPlanner classifies a user message into a retrieval plan.
type QueryPlanner interface {
	Plan(ctx context.Context, userMessage string) core.Plan
}

// ArticleCollector executes retrieval queries and returns the merged,
// deduplicated article list. Empty means "nothing found", never an error.
type ArticleCollector interface {
	Collect(ctx context.Context, queries []core.Query) []core.Article
}

// ResponseGenerator produces the final text for both pipeline modes.
type ResponseGenerator interface {
	Answer(ctx context.Context, userMessage, searchContext string, allowedURLs []string) (string, error)
	Digest(ctx context.Context, articlesContext string, allowedURLs []string) (string, error)
}

// EngineConfig is the retrieval scope applied to every generated query.
type EngineConfig struct {
	Domains       []string // Hostname allowlist for retrieval
	DateFloorDays int      // Only articles newer than this many days
	ResultLimit   int      // Max results per query
	SnippetCap    int      // Provider snippet character budget
	DigestQueries []string // Fixed multi-angle query set for the weekly digest
	ModelName     string   // Recorded on generated digests
}

// Engine wires the planner, collector, and generator into the two
// user-facing flows. It holds no per-turn state; every call builds its own
// article list and allowlist.
type Engine struct {
	planner   QueryPlanner
	collector ArticleCollector
	generator ResponseGenerator
	cfg       EngineConfig
}

// NewEngine creates the pipeline engine.
func NewEngine(planner QueryPlanner, collector ArticleCollector, generator ResponseGenerator, cfg EngineConfig) *Engine {
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = 10
	}
	if cfg.SnippetCap <= 0 {
		cfg.SnippetCap = 500
	}
	return &Engine{
		planner:   planner,
		collector: collector,
		generator: generator,
		cfg:       cfg,
	}
}

// Respond handles one user turn: plan, retrieve if needed, format context,
// and generate the answer. Retrieval and planning failures degrade inside
// their components; only generation failure is returned as an error.
func (e *Engine) Respond(ctx context.Context, userMessage string) (string, error) {
	plan := e.planner.Plan(ctx, userMessage)
	logger.Debug("Query plan",
		"needs_search", plan.NeedsSearch,
		"queries", len(plan.SearchQueries),
		"reasoning", plan.Reasoning,
	)

	var searchContext string
	var allowedURLs []string

	if plan.NeedsSearch {
		queries := e.buildQueries(plan.SearchQueries)
		collected := e.collector.Collect(ctx, queries)
		searchContext = render.FormatContext(collected)
		allowedURLs = render.AllowedURLs(collected)
	}

	return e.generator.Answer(ctx, userMessage, searchContext, allowedURLs)
}

// WeeklyDigest runs the fixed query set and produces a ranked digest of the
// pooled articles. Returns ErrNoNews when collection comes back empty;
// generation is not invoked in that case.
func (e *Engine) WeeklyDigest(ctx context.Context) (*core.Digest, error) {
	queries := e.buildQueries(e.cfg.DigestQueries)
	if len(queries) == 0 {
		return nil, ErrNoNews
	}

	collected := e.collector.Collect(ctx, queries)
	if len(collected) == 0 {
		return nil, ErrNoNews
	}

	articlesContext := render.FormatContext(collected)
	allowedURLs := render.AllowedURLs(collected)

	content, err := e.generator.Digest(ctx, articlesContext, allowedURLs)
	if err != nil {
		return nil, err
	}

	return &core.Digest{
		ID:           uuid.NewString(),
		Content:      content,
		ArticleURLs:  allowedURLs,
		ArticleCount: len(collected),
		ModelUsed:    e.cfg.ModelName,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

// buildQueries applies the configured retrieval scope to raw query strings.
func (e *Engine) buildQueries(texts []string) []core.Query {
	var dateFloor time.Time
	if e.cfg.DateFloorDays > 0 {
		dateFloor = time.Now().UTC().AddDate(0, 0, -e.cfg.DateFloorDays)
	}

	queries := make([]core.Query, 0, len(texts))
	for _, text := range texts {
		if text == "" {
			continue
		}
		queries = append(queries, core.Query{
			Text:        text,
			Domains:     e.cfg.Domains,
			DateFloor:   dateFloor,
			ResultLimit: e.cfg.ResultLimit,
			SnippetCap:  e.cfg.SnippetCap,
		})
	}
	return queries
}
