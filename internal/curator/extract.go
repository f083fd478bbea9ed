package curator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sednafm/aircurator/internal/catalog"
)

// Sentinel errors for the daily path, where a bad reply fails the run.
var (
	// ErrParseFailure marks a reply that could not be parsed as the
	// required JSON document.
	ErrParseFailure = errors.New("unparseable engine response")

	// ErrUnknownEpisode marks a reply whose episode id does not exist in
	// the catalog snapshot the prompt was built from.
	ErrUnknownEpisode = errors.New("engine selected unknown episode")
)

// Generic reasons used when the mood path falls back to the first available
// episode rather than trusting a bad reply.
const (
	fallbackReasonUnknownID = "Here's a great episode for you!"
	fallbackReasonBadReply  = "Here's a recommended episode for your mood!"
)

// DailyDecision is the typed result of a daily generation call. Field order
// matters: it is the key order of the published artifact.
type DailyDecision struct {
	FactText         string          `json:"fact_text"`
	FactYear         int             `json:"fact_year"`
	FactWikipediaURL string          `json:"fact_wikipedia_url,omitempty"`
	Episode          catalog.Episode `json:"episode"`
	MatchReason      string          `json:"match_reason"`
}

// MoodDecision is the typed result of a mood generation call.
type MoodDecision struct {
	EpisodeID int    `json:"episode_id"`
	Reason    string `json:"reason"`
}

// ExtractDaily parses the engine's raw reply into a DailyDecision. The daily
// artifact is published and attributed, so there is no safe substitute for a
// bad reply: parse failures and unknown episode ids log the offending text
// and return a labeled error. On success the episode is replaced with the
// canonical catalog record so the artifact can never carry fabricated
// episode fields.
func ExtractDaily(raw string, cat *catalog.Catalog) (DailyDecision, error) {
	var decision DailyDecision
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &decision); err != nil {
		slog.Error("failed to parse daily engine response", "error", err, "response", raw)
		return DailyDecision{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	if decision.FactText == "" {
		slog.Error("daily engine response missing fact_text", "response", raw)
		return DailyDecision{}, fmt.Errorf("%w: missing fact_text", ErrParseFailure)
	}

	episode, ok := cat.ByID(decision.Episode.ID)
	if !ok {
		slog.Error("daily engine response references unknown episode",
			"episode_id", decision.Episode.ID, "response", raw)
		return DailyDecision{}, fmt.Errorf("%w: id %d", ErrUnknownEpisode, decision.Episode.ID)
	}
	decision.Episode = episode

	return decision, nil
}

// ExtractMood parses the engine's raw reply into a MoodDecision. A malformed
// reply or an id outside the available set falls back to the first available
// episode with a generic reason. It never fails for malformed input;
// available must be non-empty.
func ExtractMood(raw string, available []catalog.Episode) MoodDecision {
	var decision MoodDecision
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &decision); err != nil {
		slog.Warn("failed to parse mood engine response, using fallback", "error", err, "response", raw)
		return MoodDecision{
			EpisodeID: available[0].ID,
			Reason:    fallbackReasonBadReply,
		}
	}

	for _, ep := range available {
		if ep.ID == decision.EpisodeID {
			if decision.Reason == "" {
				decision.Reason = fallbackReasonUnknownID
			}
			return decision
		}
	}

	slog.Warn("mood engine response references unavailable episode, using fallback",
		"episode_id", decision.EpisodeID)
	return MoodDecision{
		EpisodeID: available[0].ID,
		Reason:    fallbackReasonUnknownID,
	}
}

// stripCodeFence returns the interior of the first markdown code fence when
// the reply wraps its JSON in one, preferring a ```json fence. Replies
// without fences pass through trimmed.
func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)

	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(text, marker)
		if start == -1 {
			continue
		}
		inner := text[start+len(marker):]
		if end := strings.Index(inner, "```"); end != -1 {
			inner = inner[:end]
		}
		return strings.TrimSpace(inner)
	}

	return text
}
