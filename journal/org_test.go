package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	trade := Trade{
		ID:         "01HRZ8Q5ZC9W1M2N3P4Q5R6S7T",
		Title:      "ORB long",
		Date:       time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
		Ticker:     "ES",
		Outcome:    OutcomeWin,
		Rating:     4,
		Reflection: "Waited for the retest.\n",
		Tags:       []string{"opening range", "a:b"},
		ImageURLs:  []string{"https://example.com/es.png"},
		Emotion:    EmotionPatient,
		Session:    SessionNewYork,
	}

	result := FormatTradeOrg(trade)

	assert.Contains(t, result, "** ES ORB long (4Q5R6S7T) :opening_range:a_b:")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":ID: 01HRZ8Q5ZC9W1M2N3P4Q5R6S7T")
	assert.Contains(t, result, ":DATE: 2024-03-15T14:30:00Z")
	assert.Contains(t, result, ":OUTCOME: win")
	assert.Contains(t, result, ":RATING: ★★★★☆")
	assert.Contains(t, result, ":EMOTION: 😌 patient")
	assert.Contains(t, result, ":SESSION: New York")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "*** Reflection\nWaited for the retest.\n")
	assert.Contains(t, result, "- [[https://example.com/es.png]]")
}

func TestFormatTradeOrgBlankFields(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(Trade{ID: "short", Rating: 9})
	assert.Contains(t, result, "(untitled) (short)")
	assert.Contains(t, result, ":RATING: 9")
	assert.Contains(t, result, "*** Reflection\n- \n")
	assert.NotContains(t, result, "Screenshots")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	result := FormatTradesOrg([]Trade{
		{ID: "trade-001", Ticker: "ES"},
		{ID: "trade-002", Ticker: "NQ"},
	})

	assert.Contains(t, result, "trade-001")
	assert.Contains(t, result, "trade-002")
	parts := strings.Split(result, "\n\n\n")
	assert.Len(t, parts, 2, "expected two trades separated by blank lines")
}

func TestFormatTradesOrgEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatTradesOrg(nil))
}
