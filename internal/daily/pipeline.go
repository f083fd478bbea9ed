package daily

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sednafm/aircurator/internal/catalog"
	"github.com/sednafm/aircurator/internal/curator"
	"github.com/sednafm/aircurator/internal/events"
	"github.com/sednafm/aircurator/internal/history"
	"github.com/sednafm/aircurator/internal/publisher"
)

const dailyMaxTokens = 4096

// Feed abstracts the historical-events source.
type Feed interface {
	OnThisDay(ctx context.Context, month, day int) ([]events.Event, error)
}

// Pipeline runs the daily fact & match sequence: fetch, rank, prompt,
// generate, extract, publish. Each invocation is independent and
// single-threaded; failures abort before the next paid step.
type Pipeline struct {
	feed      Feed
	catalog   *catalog.Catalog
	engine    curator.Completer
	publisher publisher.Publisher
	history   *history.Store // optional run log
	model     string
}

// Config holds pipeline dependencies.
type Config struct {
	Feed      Feed
	Catalog   *catalog.Catalog
	Engine    curator.Completer
	Publisher publisher.Publisher
	History   *history.Store
	Model     string
}

// New creates a new daily pipeline.
func New(cfg Config) *Pipeline {
	return &Pipeline{
		feed:      cfg.Feed,
		catalog:   cfg.Catalog,
		engine:    cfg.Engine,
		publisher: cfg.Publisher,
		history:   cfg.History,
		model:     cfg.Model,
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	Decision  curator.DailyDecision
	Date      string
	NoEvents  bool // feed had nothing for this date; a successful no-op
	Committed bool
}

// Run executes the pipeline for the given calendar date. With commit set the
// decision is published to the durable store; publication only happens after
// a fully validated decision exists, so a cancelled or failed run never
// leaves a partial artifact.
func (p *Pipeline) Run(ctx context.Context, date time.Time, commit bool) (*Result, error) {
	dateStr := date.Format("2006-01-02")
	slog.Info("daily pipeline started", "date", dateStr, "commit", commit)

	raw, err := p.feed.OnThisDay(ctx, int(date.Month()), date.Day())
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	candidates := events.Rank(raw)
	if len(candidates) == 0 {
		// Nothing to curate; no generation call is made.
		slog.Warn("no events for date, skipping run", "date", dateStr)
		return &Result{Date: dateStr, NoEvents: true}, nil
	}
	slog.Info("ranked candidate events", "date", dateStr, "candidates", len(candidates))

	system, user, err := curator.BuildDailyPrompt(date, candidates, p.catalog.Episodes())
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	rawReply, err := p.engine.Complete(ctx, curator.CompletionRequest{
		Model:     p.model,
		System:    system,
		User:      user,
		MaxTokens: dailyMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate daily match: %w", err)
	}

	decision, err := curator.ExtractDaily(rawReply, p.catalog)
	if err != nil {
		return nil, fmt.Errorf("extract decision: %w", err)
	}
	slog.Info("daily match generated",
		"date", dateStr,
		"fact_year", decision.FactYear,
		"episode_id", decision.Episode.ID,
	)

	result := &Result{Decision: decision, Date: dateStr}
	if commit {
		result.Committed = p.publisher.Publish(ctx, decision, dateStr)
		if !result.Committed {
			slog.Error("daily artifact was not published", "date", dateStr)
		}
	}

	p.record(ctx, result)
	return result, nil
}

// record appends the run to the local log; log failures never fail the run.
func (p *Pipeline) record(ctx context.Context, result *Result) {
	if p.history == nil {
		return
	}
	err := p.history.RecordRun(ctx, history.Run{
		Date:         result.Date,
		FactText:     result.Decision.FactText,
		FactYear:     result.Decision.FactYear,
		EpisodeID:    result.Decision.Episode.ID,
		EpisodeTitle: result.Decision.Episode.Title,
		MatchReason:  result.Decision.MatchReason,
		Published:    result.Committed,
	})
	if err != nil {
		slog.Warn("failed to record daily run", "error", err)
	}
}
