package id

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.DefaultEntropy()
)

// New returns a ULID string stamped with the current time.
//
// Journal entries are keyed by these ids; they sort lexicographically in
// creation order, which keeps exported journals and the slot payload stable.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	return ulid.MustNew(ulid.Now(), entropy).String()
}

// NewAt returns a ULID stamped with t, for entries logged after the fact.
// Times before the Unix epoch cannot be encoded and return an error.
func NewAt(t time.Time) (string, error) {
	if t.Before(time.Unix(0, 0)) {
		return "", fmt.Errorf("id for %s: before 1970", t.Format(time.RFC3339))
	}

	mu.Lock()
	defer mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", fmt.Errorf("id for %s: %w", t.Format(time.RFC3339), err)
	}
	return u.String(), nil
}
