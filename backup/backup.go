// Package backup exports every kv slot into a single xz-compressed JSON
// snapshot and restores it again.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/rustyeddy/futureslog/kv"
)

// Snapshot is the decompressed file layout. Slot payloads are embedded as
// raw JSON so the file can be inspected with xzcat. Payloads that are not
// JSON, such as a damaged slot, are kept byte for byte in Raw (base64).
type Snapshot struct {
	Created time.Time                  `json:"created"`
	Slots   map[string]json.RawMessage `json:"slots"`
	Raw     map[string][]byte          `json:"raw,omitempty"`
}

// Keys lists every slot in the snapshot, sorted.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.Slots)+len(s.Raw))
	for k := range s.Slots {
		keys = append(keys, k)
	}
	for k := range s.Raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Write snapshots every slot of store into w.
func Write(ctx context.Context, store kv.Store, w io.Writer) (Snapshot, error) {
	keys, err := store.Keys(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list slots: %w", err)
	}

	snap := Snapshot{Created: time.Now().UTC(), Slots: make(map[string]json.RawMessage, len(keys))}
	for _, k := range keys {
		v, err := store.Get(ctx, k)
		if err != nil {
			return Snapshot{}, fmt.Errorf("read slot %q: %w", k, err)
		}
		if !json.Valid(v) {
			if snap.Raw == nil {
				snap.Raw = make(map[string][]byte)
			}
			snap.Raw[k] = v
			continue
		}
		snap.Slots[k] = json.RawMessage(v)
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return Snapshot{}, fmt.Errorf("xz writer: %w", err)
	}
	if err := json.NewEncoder(xw).Encode(snap); err != nil {
		_ = xw.Close()
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := xw.Close(); err != nil {
		return Snapshot{}, fmt.Errorf("close xz: %w", err)
	}
	return snap, nil
}

// Read decodes a snapshot from r without touching any store.
func Read(r io.Reader) (Snapshot, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("xz reader: %w", err)
	}

	var snap Snapshot
	if err := json.NewDecoder(xr).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Restore reads a snapshot from r and overwrites each slot it contains.
// Slots not present in the snapshot are left alone.
func Restore(ctx context.Context, store kv.Store, r io.Reader) (Snapshot, error) {
	snap, err := Read(r)
	if err != nil {
		return Snapshot{}, err
	}
	for k, v := range snap.Slots {
		if err := store.Put(ctx, k, v); err != nil {
			return Snapshot{}, fmt.Errorf("restore slot %q: %w", k, err)
		}
	}
	for k, v := range snap.Raw {
		if err := store.Put(ctx, k, v); err != nil {
			return Snapshot{}, fmt.Errorf("restore slot %q: %w", k, err)
		}
	}
	return snap, nil
}
