// Package kv stores opaque payloads in named slots on the local device.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a slot has never been written.
var ErrNotFound = errors.New("kv: slot not found")

// Store is a flat key/value store. Put overwrites the whole slot.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
