package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestNewAtEmbedsTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	s, err := NewAt(at)
	require.NoError(t, err)

	u, err := ulid.ParseStrict(s)
	require.NoError(t, err)
	assert.True(t, ulid.Time(u.Time()).Equal(at))
}

func TestNewAtBeforeEpoch(t *testing.T) {
	t.Parallel()

	_, err := NewAt(time.Date(1969, 12, 31, 23, 0, 0, 0, time.UTC))
	assert.Error(t, err)

	_, err = NewAt(time.Time{})
	assert.Error(t, err)
}
