package curator

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sednafm/aircurator/internal/catalog"
	"github.com/sednafm/aircurator/internal/events"
)

// BuildDailyPrompt serializes the ranked candidate events and the full
// catalog into the daily system/user prompt pair. The date only flavors the
// phrasing ("Today is March 07"); selection works off the candidate list.
// No generation call happens here.
func BuildDailyPrompt(date time.Time, candidates []events.Event, episodes []catalog.Episode) (system, user string, err error) {
	eventsText, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("serialize events: %w", err)
	}
	episodesText, err := json.MarshalIndent(episodes, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("serialize episodes: %w", err)
	}

	user = fmt.Sprintf(`Today is %s.

Here are the historical events that happened on this day:
%s

Here is the Sedna FM episode catalog:
%s

Select the most intriguing fact and the best matching episode.`,
		date.Format("January 02"), eventsText, episodesText)

	return DailySystemPrompt, user, nil
}

// BuildMoodPrompt renders the mood prompt pair over the already
// exclusion-filtered catalog. Episodes are re-shuffled on every call so the
// engine's position bias cannot pin the selection to one entry; callers must
// not cache the shuffled order.
func BuildMoodPrompt(mood string, available []catalog.Episode) (system, user string) {
	shuffled := make([]catalog.Episode, len(available))
	copy(shuffled, available)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var sb strings.Builder
	for _, ep := range shuffled {
		fmt.Fprintf(&sb, "ID: %d\nTitle: %s\nDescription: %s\nSongs: %s\n\n",
			ep.ID, ep.Title, ep.Description, strings.Join(ep.Songs, ", "))
	}

	user = fmt.Sprintf(`The listener is feeling: %s


Available episodes:
%s
Select the best matching episode. IMPORTANT: Vary your selection - don't always pick the most obvious episode!`,
		mood, sb.String())

	return MoodSystemPrompt, user
}
