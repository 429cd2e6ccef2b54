package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateStoreRoundTrip(t *testing.T) {
	store := NewStateStore(time.Minute)
	defer store.Stop()

	store.Put("state-1", "alice@example.com")
	assert.Equal(t, 1, store.Len())

	identity, ok := store.Consume("state-1")
	assert.True(t, ok)
	assert.Equal(t, "alice@example.com", identity)
	assert.Equal(t, 0, store.Len())
}

func TestStateStoreConsumeIsOneShot(t *testing.T) {
	store := NewStateStore(time.Minute)
	defer store.Stop()

	store.Put("state-1", "alice@example.com")

	_, ok := store.Consume("state-1")
	assert.True(t, ok)

	_, ok = store.Consume("state-1")
	assert.False(t, ok)
}

func TestStateStoreUnknownState(t *testing.T) {
	store := NewStateStore(time.Minute)
	defer store.Stop()

	_, ok := store.Consume("never-issued")
	assert.False(t, ok)
}

func TestStateStoreExpiry(t *testing.T) {
	store := NewStateStore(10 * time.Millisecond)
	defer store.Stop()

	store.Put("state-1", "alice@example.com")
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Consume("state-1")
	assert.False(t, ok)
}
