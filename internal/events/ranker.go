package events

import (
	"sort"
	"strings"
)

const (
	// MaxCandidates caps how many ranked events are handed to the curator.
	MaxCandidates = 20

	// maxPagesPerEvent caps the reference pages kept per candidate.
	maxPagesPerEvent = 3

	wikipediaArticleBase = "https://en.wikipedia.org/wiki/"
)

// priorityKeywords spans the station's editorial interests: music, space and
// science, and broadcast media. Matching is case-insensitive substring.
var priorityKeywords = []string{
	"music", "song", "album", "band", "singer", "composer", "symphony", "concert",
	"space", "nasa", "astronaut", "moon", "mars", "satellite", "rocket", "mission",
	"science", "discovery", "physicist", "scientist", "nobel", "experiment",
	"radio", "broadcast", "television", "film", "artist", "record",
}

// scoredEvent exists only while ranking.
type scoredEvent struct {
	event Event
	score int
}

// Score computes the relevance score of a single event: keyword hits in the
// event text count double, hits in linked page descriptions and extracts
// count once each.
func Score(event Event) int {
	text := strings.ToLower(event.Text)

	score := 0
	for _, keyword := range priorityKeywords {
		if strings.Contains(text, keyword) {
			score += 2
		}
		for _, page := range event.Pages {
			if strings.Contains(strings.ToLower(page.Description), keyword) {
				score++
			}
			if strings.Contains(strings.ToLower(page.Extract), keyword) {
				score++
			}
		}
	}
	return score
}

// Rank scores all events, sorts them by descending relevance and returns at
// most MaxCandidates of them, condensed for prompting: pages are capped at
// maxPagesPerEvent, extracts are dropped and article URLs are filled in.
// The sort is stable so ties keep feed order and output is deterministic.
// An empty feed yields an empty result; callers treat that as "nothing to
// do", not an error.
func Rank(events []Event) []Event {
	scored := make([]scoredEvent, len(events))
	for i, event := range events {
		scored[i] = scoredEvent{event: event, score: Score(event)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	n := len(scored)
	if n > MaxCandidates {
		n = MaxCandidates
	}

	candidates := make([]Event, 0, n)
	for _, se := range scored[:n] {
		candidates = append(candidates, condense(se.event))
	}
	return candidates
}

// condense trims an event down to what the curator prompt needs.
func condense(event Event) Event {
	pages := event.Pages
	if len(pages) > maxPagesPerEvent {
		pages = pages[:maxPagesPerEvent]
	}

	condensed := make([]Page, 0, len(pages))
	for _, page := range pages {
		url := ""
		if page.Title != "" {
			url = wikipediaArticleBase + strings.ReplaceAll(page.Title, " ", "_")
		}
		condensed = append(condensed, Page{
			Title:       page.Title,
			Description: page.Description,
			URL:         url,
		})
	}

	return Event{
		Year:  event.Year,
		Text:  event.Text,
		Pages: condensed,
	}
}
