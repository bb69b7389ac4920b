package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("store: key not found")

// Handler receives raw payloads published on a subscribed channel.
type Handler func(payload []byte)

// Store is the persisted key-value contract the widget relies on: JSON
// blobs under fixed logical keys, plus a broadcast channel other running
// instances can watch for jackpot ledger changes.
type Store interface {
	// Get unmarshals the blob at key into v. Returns ErrNotFound when the
	// key is absent.
	Get(ctx context.Context, key string, v any) error

	// Set marshals v and stores it at key.
	Set(ctx context.Context, key string, v any) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Publish broadcasts v as JSON on the named channel.
	Publish(ctx context.Context, channel string, v any) error

	// Subscribe registers a handler for payloads on the named channel.
	// Delivery starts in the background and stops when ctx is cancelled.
	Subscribe(ctx context.Context, channel string, handler Handler)

	// Ping verifies connectivity for readiness checks.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
