package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store used for tests and storeless dev
// runs. Published payloads are delivered synchronously to subscribers.
type MemoryStore struct {
	mu          sync.RWMutex
	data        map[string][]byte
	subscribers map[string][]Handler
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		data:        make(map[string][]byte),
		subscribers: make(map[string][]Handler),
	}
}

// Get unmarshals the blob stored under key into v.
func (s *MemoryStore) Get(ctx context.Context, key string, v any) error {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return nil
}

// Set marshals v and stores it under key.
func (s *MemoryStore) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}

	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Publish delivers v as JSON to all handlers subscribed to the channel.
func (s *MemoryStore) Publish(ctx context.Context, channel string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode publish payload: %w", err)
	}

	s.mu.RLock()
	handlers := append([]Handler(nil), s.subscribers[channel]...)
	s.mu.RUnlock()

	for _, h := range handlers {
		h(data)
	}
	return nil
}

// Subscribe registers a handler for the channel.
func (s *MemoryStore) Subscribe(ctx context.Context, channel string, handler Handler) {
	s.mu.Lock()
	s.subscribers[channel] = append(s.subscribers[channel], handler)
	s.mu.Unlock()
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// SetRaw stores a raw blob without JSON encoding. Test helper for
// simulating corrupt persisted data.
func (s *MemoryStore) SetRaw(key string, data []byte) {
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
}
