package events

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	t.Run("event text hits count double", func(t *testing.T) {
		event := Event{Text: "NASA launches first satellite"}
		// "nasa" and "satellite" in text: 2 + 2.
		assert.Equal(t, 4, Score(event))
	})

	t.Run("page description and extract count once each", func(t *testing.T) {
		event := Event{
			Text: "Something happened",
			Pages: []Page{
				{Description: "A famous composer", Extract: "Wrote a symphony in D minor"},
			},
		}
		// "composer" in description + "symphony" in extract.
		assert.Equal(t, 2, Score(event))
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		assert.Equal(t, 2, Score(Event{Text: "The MUSIC stopped"}))
	})

	t.Run("unrelated event scores zero", func(t *testing.T) {
		assert.Equal(t, 0, Score(Event{Text: "A treaty was signed"}))
	})
}

func TestRank(t *testing.T) {
	t.Run("sorts by descending score", func(t *testing.T) {
		input := []Event{
			{Year: 1900, Text: "A treaty was signed"},
			{Year: 1957, Text: "NASA launches first satellite"},
			{Year: 1969, Text: "A concert was held"},
		}

		ranked := Rank(input)
		require.Len(t, ranked, 3)
		assert.Equal(t, "NASA launches first satellite", ranked[0].Text)
		assert.Equal(t, "A concert was held", ranked[1].Text)
		assert.Equal(t, "A treaty was signed", ranked[2].Text)
	})

	t.Run("ties keep feed order", func(t *testing.T) {
		input := []Event{
			{Year: 1, Text: "first plain event"},
			{Year: 2, Text: "second plain event"},
			{Year: 3, Text: "third plain event"},
		}

		ranked := Rank(input)
		require.Len(t, ranked, 3)
		assert.Equal(t, 1, ranked[0].Year)
		assert.Equal(t, 2, ranked[1].Year)
		assert.Equal(t, 3, ranked[2].Year)
	})

	t.Run("deterministic for fixed input", func(t *testing.T) {
		input := make([]Event, 0, 30)
		for i := 0; i < 30; i++ {
			input = append(input, Event{Year: 1900 + i, Text: fmt.Sprintf("event %d about music", i)})
		}

		first := Rank(input)
		second := Rank(input)
		assert.Equal(t, first, second)
	})

	t.Run("truncates to MaxCandidates", func(t *testing.T) {
		input := make([]Event, 0, 50)
		for i := 0; i < 50; i++ {
			input = append(input, Event{Year: i, Text: "a record release"})
		}

		ranked := Rank(input)
		assert.Len(t, ranked, MaxCandidates)
	})

	t.Run("empty feed yields empty result", func(t *testing.T) {
		assert.Empty(t, Rank(nil))
		assert.Empty(t, Rank([]Event{}))
	})

	t.Run("caps pages and fills article URLs", func(t *testing.T) {
		input := []Event{
			{
				Year: 1961,
				Text: "A rocket mission",
				Pages: []Page{
					{Title: "Yuri Gagarin", Description: "Cosmonaut", Extract: "long extract"},
					{Title: "Vostok 1", Description: "Spacecraft"},
					{Title: "Baikonur", Description: "Launch site"},
					{Title: "Fourth Page", Description: "dropped"},
				},
			},
		}

		ranked := Rank(input)
		require.Len(t, ranked, 1)
		require.Len(t, ranked[0].Pages, 3)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Yuri_Gagarin", ranked[0].Pages[0].URL)
		assert.Empty(t, ranked[0].Pages[0].Extract, "extracts are dropped from candidates")
	})
}
