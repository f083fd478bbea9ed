package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sednafm/aircurator/internal/catalog"
	"github.com/sednafm/aircurator/internal/curator"
)

// scriptedEngine returns a canned reply and records the prompts it saw.
type scriptedEngine struct {
	reply    string
	err      error
	requests []curator.CompletionRequest
}

func (s *scriptedEngine) Complete(_ context.Context, req curator.CompletionRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func tenEpisodes() *catalog.Catalog {
	eps := make([]catalog.Episode, 0, 10)
	for i := 1; i <= 10; i++ {
		eps = append(eps, catalog.Episode{
			ID:          i,
			Title:       fmt.Sprintf("Episode %d", i),
			Description: fmt.Sprintf("Description %d", i),
		})
	}
	return catalog.New(eps)
}

func TestIsValidMood(t *testing.T) {
	for _, mood := range ValidMoods {
		assert.True(t, IsValidMood(mood), mood)
	}
	assert.False(t, IsValidMood("Hangry"))
	assert.False(t, IsValidMood("happy"), "moods are case-sensitive labels")
}

func TestRecommender_Recommend(t *testing.T) {
	t.Run("returns the engine's pick", func(t *testing.T) {
		engine := &scriptedEngine{reply: `{"episode_id": 7, "reason": "upbeat drums"}`}
		r := New(Config{Catalog: tenEpisodes(), Engine: engine, Model: "gpt-5-nano"})

		result, err := r.Recommend(context.Background(), "Happy", nil)
		require.NoError(t, err)

		assert.Equal(t, 7, result.Episode.ID)
		assert.Equal(t, "upbeat drums", result.Reason)
		assert.False(t, result.MemoryReset)

		require.Len(t, engine.requests, 1)
		assert.Equal(t, "gpt-5-nano", engine.requests[0].Model)
		assert.Equal(t, "minimal", engine.requests[0].ReasoningEffort)
	})

	t.Run("rejects invalid moods", func(t *testing.T) {
		engine := &scriptedEngine{reply: `{"episode_id": 1, "reason": "x"}`}
		r := New(Config{Catalog: tenEpisodes(), Engine: engine})

		_, err := r.Recommend(context.Background(), "Hangry", nil)
		assert.Error(t, err)
		assert.Empty(t, engine.requests, "no engine call for invalid input")
	})

	t.Run("full exclusion resets memory before the engine call", func(t *testing.T) {
		engine := &scriptedEngine{reply: `{"episode_id": 3, "reason": "fits"}`}
		r := New(Config{Catalog: tenEpisodes(), Engine: engine})

		result, err := r.Recommend(context.Background(), "Happy", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
		require.NoError(t, err)

		assert.True(t, result.MemoryReset)
		assert.Equal(t, 3, result.Episode.ID)

		// The prompt must have offered the full catalog again.
		require.Len(t, engine.requests, 1)
		for i := 1; i <= 10; i++ {
			assert.Contains(t, engine.requests[0].User, fmt.Sprintf("Episode %d", i))
		}
	})

	t.Run("excluded episodes never reach the prompt", func(t *testing.T) {
		engine := &scriptedEngine{reply: `{"episode_id": 2, "reason": "fits"}`}
		r := New(Config{Catalog: tenEpisodes(), Engine: engine})

		_, err := r.Recommend(context.Background(), "Calm", []int{5})
		require.NoError(t, err)

		require.Len(t, engine.requests, 1)
		assert.False(t, strings.Contains(engine.requests[0].User, "Description 5"),
			"excluded episode should not be offered")
	})

	t.Run("engine failure falls back to first available", func(t *testing.T) {
		engine := &scriptedEngine{err: errors.New("engine down")}
		r := New(Config{Catalog: tenEpisodes(), Engine: engine})

		result, err := r.Recommend(context.Background(), "Reflective", []int{1, 2})
		require.NoError(t, err, "generation failures are invisible to the listener")

		assert.Equal(t, 3, result.Episode.ID)
		assert.NotEmpty(t, result.Reason)
	})

	t.Run("garbage reply falls back to first available", func(t *testing.T) {
		engine := &scriptedEngine{reply: "not json"}
		r := New(Config{Catalog: tenEpisodes(), Engine: engine})

		result, err := r.Recommend(context.Background(), "Sad", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Episode.ID)
		assert.NotEmpty(t, result.Reason)
	})
}
