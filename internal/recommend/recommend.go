package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sednafm/aircurator/internal/catalog"
	"github.com/sednafm/aircurator/internal/curator"
	"github.com/sednafm/aircurator/internal/session"
)

const moodMaxTokens = 16384

// ValidMoods is the fixed set of moods the player offers.
var ValidMoods = []string{
	"Happy", "Calm", "Reflective", "Sad", "Energetic", "Intimate", "Moody", "Carefree",
}

// IsValidMood reports whether mood is one of the supported labels.
func IsValidMood(mood string) bool {
	for _, m := range ValidMoods {
		if m == mood {
			return true
		}
	}
	return false
}

// Recommender picks one episode for a listener's mood. It is deliberately
// fail-soft: once the catalog is loaded, every call yields a valid episode,
// and generation-layer failures are invisible to the listener.
type Recommender struct {
	catalog *catalog.Catalog
	engine  curator.Completer
	model   string
	effort  string
}

// Config holds configuration for the recommender.
type Config struct {
	Catalog *catalog.Catalog
	Engine  curator.Completer
	Model   string
	Effort  string // reasoning effort hint, defaults to "minimal"
}

// New creates a new mood recommender.
func New(cfg Config) *Recommender {
	effort := cfg.Effort
	if effort == "" {
		effort = "minimal"
	}
	return &Recommender{
		catalog: cfg.Catalog,
		engine:  cfg.Engine,
		model:   cfg.Model,
		effort:  effort,
	}
}

// Result is one mood recommendation.
type Result struct {
	Episode     catalog.Episode
	Reason      string
	MemoryReset bool
}

// Recommend selects an episode for the given mood, avoiding the excluded
// ids. When the exclusions cover the whole catalog the session memory is
// reset for this call and MemoryReset reports true.
func (r *Recommender) Recommend(ctx context.Context, mood string, excludeIDs []int) (*Result, error) {
	if !IsValidMood(mood) {
		return nil, fmt.Errorf("invalid mood %q", mood)
	}

	available, didReset := session.Filter(r.catalog.Episodes(), excludeIDs)
	if len(available) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	system, user := curator.BuildMoodPrompt(mood, available)

	raw, err := r.engine.Complete(ctx, curator.CompletionRequest{
		Model:           r.model,
		System:          system,
		User:            user,
		MaxTokens:       moodMaxTokens,
		ReasoningEffort: r.effort,
	})
	if err != nil {
		// Best effort: a broken engine still yields a playable episode.
		slog.Error("mood generation failed, using fallback", "mood", mood, "error", err)
		return &Result{
			Episode:     available[0],
			Reason:      "Here's a recommended episode for your mood!",
			MemoryReset: didReset,
		}, nil
	}

	decision := curator.ExtractMood(raw, available)

	episode, ok := r.catalog.ByID(decision.EpisodeID)
	if !ok {
		episode = available[0]
	}

	slog.Info("mood recommendation", "mood", mood, "episode_id", episode.ID, "memory_reset", didReset)
	return &Result{
		Episode:     episode,
		Reason:      decision.Reason,
		MemoryReset: didReset,
	}, nil
}
