package app

import (
	"context"
	"fmt"

	"github.com/sednafm/aircurator/internal/catalog"
	"github.com/sednafm/aircurator/internal/config"
	"github.com/sednafm/aircurator/internal/curator"
	"github.com/sednafm/aircurator/internal/daily"
	"github.com/sednafm/aircurator/internal/events"
	"github.com/sednafm/aircurator/internal/history"
	"github.com/sednafm/aircurator/internal/publisher"
	"github.com/sednafm/aircurator/internal/recommend"
)

// App is the main application container holding all dependencies.
type App struct {
	Config      *config.Config
	Catalog     *catalog.Catalog
	Engine      *curator.Engine
	Feed        *events.Client
	Publisher   *publisher.GitHubPublisher
	History     *history.Store
	Recommender *recommend.Recommender
	Pipeline    *daily.Pipeline
}

// Options tunes which optional dependencies are wired.
type Options struct {
	// WithHistory opens the local run log. CLI one-shots that only print a
	// decision skip it.
	WithHistory bool
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	cat, err := catalog.Load(cfg.EpisodesPath, cfg.EpisodesFallbackPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	engine := curator.NewEngine(curator.EngineConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
	})

	feed := events.NewClient(events.ClientConfig{BaseURL: cfg.FeedBaseURL})

	pub := publisher.NewGitHubPublisher(publisher.GitHubConfig{
		Token:    cfg.GitHubToken,
		Repo:     cfg.GitHubRepo,
		Branch:   cfg.GitHubBranch,
		FilePath: cfg.PublishPath,
	})

	var runLog *history.Store
	if opts.WithHistory {
		runLog, err = history.NewStore(ctx, cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("open run log: %w", err)
		}
	}

	return &App{
		Config:    cfg,
		Catalog:   cat,
		Engine:    engine,
		Feed:      feed,
		Publisher: pub,
		History:   runLog,
		Recommender: recommend.New(recommend.Config{
			Catalog: cat,
			Engine:  engine,
			Model:   cfg.MoodModel,
		}),
		Pipeline: daily.New(daily.Config{
			Feed:      feed,
			Catalog:   cat,
			Engine:    engine,
			Publisher: pub,
			History:   runLog,
			Model:     cfg.DailyModel,
		}),
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}
