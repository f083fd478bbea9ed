package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Episode is a single entry in the station catalog. The JSON tags match the
// episodes.json document consumed by the web player, so they must not change.
type Episode struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	SoundcloudURL string   `json:"soundcloudUrl"`
	Songs         []string `json:"songs"`
	Genres        []string `json:"music-genres"`
}

// Catalog is a read-only snapshot of the episode catalog, loaded once at
// startup. It is safe for concurrent reads; nothing mutates it after Load.
type Catalog struct {
	episodes []Episode
	byID     map[int]Episode
}

// catalogFile is the on-disk shape of episodes.json.
type catalogFile struct {
	Episodes []Episode `json:"episodes"`
}

// Load reads the catalog from the first path that exists. Later paths act as
// fallbacks for deployments that keep episodes.json under data/.
func Load(paths ...string) (*Catalog, error) {
	var lastErr error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}

		var file catalogFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if len(file.Episodes) == 0 {
			return nil, fmt.Errorf("catalog %s contains no episodes", path)
		}

		slog.Info("loaded episode catalog", "path", path, "episodes", len(file.Episodes))
		return New(file.Episodes), nil
	}

	return nil, fmt.Errorf("load catalog: no readable path: %w", lastErr)
}

// New builds a catalog snapshot from a fixed episode list.
func New(episodes []Episode) *Catalog {
	byID := make(map[int]Episode, len(episodes))
	for _, ep := range episodes {
		byID[ep.ID] = ep
	}
	return &Catalog{episodes: episodes, byID: byID}
}

// Episodes returns all episodes in catalog order. Callers must not mutate
// the returned slice.
func (c *Catalog) Episodes() []Episode {
	return c.episodes
}

// ByID looks up an episode by its id.
func (c *Catalog) ByID(id int) (Episode, bool) {
	ep, ok := c.byID[id]
	return ep, ok
}

// Len returns the number of episodes.
func (c *Catalog) Len() int {
	return len(c.episodes)
}
