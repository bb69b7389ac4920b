package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	type blob struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, s.Set(ctx, "k", blob{Name: "a", Count: 2}))

	var got blob
	require.NoError(t, s.Get(ctx, "k", &got))
	assert.Equal(t, blob{Name: "a", Count: 2}, got)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemory()

	var v map[string]int
	err := s.Get(context.Background(), "absent", &v)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Set(ctx, "k", 1))
	require.NoError(t, s.Delete(ctx, "k"))

	var v int
	assert.ErrorIs(t, s.Get(ctx, "k", &v), ErrNotFound)

	// Deleting an absent key is fine.
	assert.NoError(t, s.Delete(ctx, "k"))
}

func TestMemoryStorePublishSubscribe(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var got [][]byte
	s.Subscribe(ctx, "ch", func(payload []byte) {
		got = append(got, payload)
	})

	require.NoError(t, s.Publish(ctx, "ch", map[string]int{"n": 1}))
	require.NoError(t, s.Publish(ctx, "other", map[string]int{"n": 2}))

	require.Len(t, got, 1)
	assert.JSONEq(t, `{"n":1}`, string(got[0]))
}

func TestMemoryStoreCorruptBlob(t *testing.T) {
	s := NewMemory()
	s.SetRaw("k", []byte("{not json"))

	var v map[string]int
	err := s.Get(context.Background(), "k", &v)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
