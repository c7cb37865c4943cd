package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTradeDefaults(t *testing.T) {
	t.Parallel()

	before := time.Now()
	tr := NewTrade()

	assert.NotEmpty(t, tr.ID)
	assert.False(t, tr.Date.Before(before))
	assert.Equal(t, OutcomeNeutral, tr.Outcome)
	assert.Equal(t, 3, tr.Rating)
	assert.Equal(t, EmotionNeutral, tr.Emotion)
	assert.Equal(t, SessionNewYork, tr.Session)
	assert.NotEqual(t, tr.ID, NewTrade().ID)
}

func TestTradeJSONFieldNames(t *testing.T) {
	t.Parallel()

	tr := Trade{
		ID:        "abc",
		Date:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Outcome:   OutcomeWin,
		Emotion:   EmotionFOMO,
		Session:   SessionNewYork,
		ImageURLs: []string{"file:///shot.png"},
	}
	data, err := json.Marshal(tr)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "New York", raw["session"])
	assert.Equal(t, "fomo", raw["emotion"])
	assert.Equal(t, "win", raw["outcome"])
	assert.Equal(t, "2024-01-02T03:04:05Z", raw["date"])
	assert.Contains(t, raw, "imageURLs")
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	o, err := ParseOutcome("WIN")
	require.NoError(t, err)
	assert.Equal(t, OutcomeWin, o)

	e, err := ParseEmotion("Fomo")
	require.NoError(t, err)
	assert.Equal(t, EmotionFOMO, e)

	for _, in := range []string{"New York", "new york", "NY", "newyork"} {
		s, err := ParseSession(in)
		require.NoError(t, err, in)
		assert.Equal(t, SessionNewYork, s)
	}

	_, err = ParseOutcome("jackpot")
	assert.Error(t, err)
	_, err = ParseEmotion("bored")
	assert.Error(t, err)
	_, err = ParseSession("Sydney")
	assert.Error(t, err)
}

func TestEnumListsAreCopies(t *testing.T) {
	t.Parallel()

	s := Sessions()
	s[0] = "Mars"
	assert.Equal(t, SessionLondon, Sessions()[0])
	assert.Len(t, Emotions(), 6)
	assert.Len(t, Outcomes(), 4)
}

func TestEmotionEmoji(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "😩", EmotionFOMO.Emoji())
	assert.Equal(t, "😐", EmotionNeutral.Emoji())
}

func TestUnsetEnumsDecode(t *testing.T) {
	t.Parallel()

	var tr Trade
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","outcome":"","emotion":"","session":""}`), &tr))
	assert.Equal(t, Trade{ID: "x"}, tr)

	data, err := json.Marshal(Trade{ID: "x"})
	require.NoError(t, err)
	var back Trade
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Trade{ID: "x"}, back)
}

func TestNewTradeAt(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	tr, err := NewTradeAt(date)
	require.NoError(t, err)
	assert.Equal(t, date, tr.Date)
	assert.Equal(t, 3, tr.Rating)
	assert.Equal(t, SessionNewYork, tr.Session)

	later, err := NewTradeAt(date.Add(time.Hour))
	require.NoError(t, err)
	assert.Less(t, tr.ID, later.ID)
	assert.Less(t, later.ID, NewTrade().ID)

	_, err = NewTradeAt(time.Date(1965, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidTrade)
}
