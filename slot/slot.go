// Package slot persists a whole collection as one JSON document in a kv slot.
//
// Every save rewrites the full payload. Loading reports whether the slot held
// usable data, had never been written, or held bytes that no longer decode, so
// callers can tell a fresh install apart from a damaged one.
package slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rustyeddy/futureslog/kv"
)

// ErrCorrupt wraps decode failures of a stored payload.
var ErrCorrupt = errors.New("slot: corrupt payload")

// Status is the outcome of Load.
type Status int

const (
	Found Status = iota
	Missing
	Corrupt
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Missing:
		return "missing"
	case Corrupt:
		return "corrupt"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Save encodes v and overwrites key.
func Save(ctx context.Context, store kv.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Load decodes key into a fresh T. A missing slot returns the zero T with
// (Missing, nil). A payload that fails to decode returns the zero T with
// (Corrupt, err), err wrapping ErrCorrupt. Any other error comes from the
// backing store.
func Load[T any](ctx context.Context, store kv.Store, key string) (T, Status, error) {
	var zero T

	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return zero, Missing, nil
		}
		return zero, Missing, fmt.Errorf("load %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, Corrupt, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return v, Found, nil
}
