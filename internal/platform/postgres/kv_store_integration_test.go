//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/postgres"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
	"github.com/Cipollinka/MinSpiritCountdown/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresKVStore_Integration(t *testing.T) {
	db := testdb.Open(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s := postgres.NewPostgresKVStore(db, nil)
	kv := s.ForDevice(testdb.DeviceID(t, db))

	_, err := kv.Get(ctx, store.KeyTimerTabs)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)

	require.NoError(t, store.SetJSON(ctx, kv, store.KeyTimerTabs, [3]int{40, 60, 90}))
	require.NoError(t, store.SetJSON(ctx, kv, store.KeyTimerTabs, [3]int{10, 20, 30}))

	var tabs [3]int
	require.NoError(t, store.GetJSON(ctx, kv, store.KeyTimerTabs, &tabs))
	assert.Equal(t, [3]int{10, 20, 30}, tabs)

	entries, err := store.EncodeJSON(map[string]any{
		store.KeySoundEnabled:     false,
		store.KeyVibrationEnabled: true,
	})
	require.NoError(t, err)
	require.NoError(t, kv.SetMany(ctx, entries))

	var sound bool
	require.NoError(t, store.GetJSON(ctx, kv, store.KeySoundEnabled, &sound))
	assert.False(t, sound)

	require.NoError(t, kv.Delete(ctx, store.KeyTimerTabs))
	_, err = kv.Get(ctx, store.KeyTimerTabs)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestPostgresKVStore_DevicesAreIsolated(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	s := postgres.NewPostgresKVStore(db, nil)
	first := s.ForDevice(testdb.DeviceID(t, db))
	second := s.ForDevice(testdb.DeviceID(t, db))

	require.NoError(t, store.SetJSON(ctx, first, store.KeyOnboardingStarted, true))

	_, err := second.Get(ctx, store.KeyOnboardingStarted)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}
