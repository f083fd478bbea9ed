// Package session implements the repetition-avoidance policy for mood
// recommendations. The exclusion set itself lives with the caller (the web
// player sends it on every request); this package only decides what is still
// selectable.
package session

import (
	"log/slog"

	"github.com/sednafm/aircurator/internal/catalog"
)

// Filter removes every episode whose id is in excludeIDs. When the exclusions
// would leave nothing to pick from, the full catalog is returned instead and
// didReset reports true so the caller can tell the client to forget its
// history. Pure function; the input slice is never mutated.
func Filter(episodes []catalog.Episode, excludeIDs []int) (available []catalog.Episode, didReset bool) {
	if len(excludeIDs) == 0 {
		return episodes, false
	}

	excluded := make(map[int]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	available = make([]catalog.Episode, 0, len(episodes))
	for _, ep := range episodes {
		if _, ok := excluded[ep.ID]; !ok {
			available = append(available, ep)
		}
	}

	if len(available) == 0 {
		slog.Info("all episodes excluded, resetting session memory", "excluded", len(excludeIDs))
		return episodes, true
	}

	return available, false
}
