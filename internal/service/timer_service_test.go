package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/mocks"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerService_AddAssignsIDsAndPrepends(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t).timers

	first, err := svc.Add(ctx, testDevice, "Work", 45)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := svc.Add(ctx, testDevice, "  Focus ", 25)
	require.NoError(t, err)
	assert.Equal(t, domain.Timer{ID: 2, Title: "Focus", Minutes: 25}, second)

	timers, err := svc.List(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, []domain.Timer{second, first}, timers)
}

func TestTimerService_AddAfterHighestID(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)
	require.NoError(t, store.SetJSON(ctx, ts.store.ForDevice(testDevice), store.KeyTimers,
		[]domain.Timer{{ID: 3, Title: "Old", Minutes: 10}}))

	timer, err := ts.timers.Add(ctx, testDevice, "Focus", 25)
	require.NoError(t, err)
	assert.Equal(t, 4, timer.ID)

	timers, err := ts.timers.List(ctx, testDevice)
	require.NoError(t, err)
	require.Len(t, timers, 2)
	assert.Equal(t, timer, timers[0])
}

func TestTimerService_AddValidation(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)

	tests := []struct {
		name    string
		title   string
		minutes int
		wantErr error
	}{
		{"empty title", "   ", 10, domain.ErrEmptyTitle},
		{"zero minutes", "Focus", 0, domain.ErrInvalidMinutes},
		{"too long", "Focus", 181, domain.ErrInvalidMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.timers.Add(ctx, testDevice, tt.title, tt.minutes)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	assert.Equal(t, 0, ts.store.Len(testDevice), "rejected adds must not write")
}

func TestTimerService_RemoveAndRename(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t).timers

	a, err := svc.Add(ctx, testDevice, "A", 5)
	require.NoError(t, err)
	b, err := svc.Add(ctx, testDevice, "B", 10)
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, testDevice, a.ID, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", renamed.Title)

	_, err = svc.Rename(ctx, testDevice, 99, "Ghost")
	assert.ErrorIs(t, err, domain.ErrTimerNotFound)

	_, err = svc.Rename(ctx, testDevice, a.ID, "")
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)

	remaining, err := svc.Remove(ctx, testDevice, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Timer{{ID: a.ID, Title: "Alpha", Minutes: 5}}, remaining)

	unchanged, err := svc.Remove(ctx, testDevice, 42)
	require.NoError(t, err)
	assert.Equal(t, remaining, unchanged)

	got, err := svc.Get(ctx, testDevice, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Title)

	_, err = svc.Get(ctx, testDevice, b.ID)
	assert.ErrorIs(t, err, domain.ErrTimerNotFound)
}

func TestTimerService_Tabs(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)

	tabs, err := ts.timers.Tabs(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimerTabs, tabs)
	assert.Equal(t, 60, tabs.Default())

	// defaults are written on first read
	var stored domain.TimerTabs
	require.NoError(t, store.GetJSON(ctx, ts.store.ForDevice(testDevice), store.KeyTimerTabs, &stored))
	assert.Equal(t, domain.DefaultTimerTabs, stored)

	tabs, err = ts.timers.SetTab(ctx, testDevice, 2, 120)
	require.NoError(t, err)
	assert.Equal(t, domain.TimerTabs{40, 60, 120}, tabs)

	_, err = ts.timers.SetTab(ctx, testDevice, 3, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidTabIndex)

	_, err = ts.timers.SetTab(ctx, testDevice, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidMinutes)

	tabs, err = ts.timers.Tabs(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, domain.TimerTabs{40, 60, 120}, tabs)
}

func TestTimerService_InvalidStoredTabsFallBack(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t)
	require.NoError(t, store.SetJSON(ctx, ts.store.ForDevice(testDevice), store.KeyTimerTabs, [3]int{0, 60, 900}))

	tabs, err := ts.timers.Tabs(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimerTabs, tabs)
}

func TestTimerService_PersistenceErrorsAreSwallowed(t *testing.T) {
	ctx := context.Background()
	kv := &mocks.MockKeyValueStore{
		SetFn: func(context.Context, string, []byte) error { return errors.New("disk full") },
	}
	svc, err := NewTimerService(mocks.NewMockDeviceStore(kv), discardLogger())
	require.NoError(t, err)

	timer, err := svc.Add(ctx, testDevice, "Focus", 25)
	require.NoError(t, err)
	assert.Equal(t, 1, timer.ID)
	assert.Equal(t, 1, kv.Writes())
}

func TestTimerService_ReadFailureActsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := &mocks.MockKeyValueStore{Err: errors.New("connection refused")}
	svc, err := NewTimerService(mocks.NewMockDeviceStore(kv), discardLogger())
	require.NoError(t, err)

	timers, err := svc.List(ctx, testDevice)
	require.NoError(t, err)
	assert.Empty(t, timers)

	tabs, err := svc.Tabs(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimerTabs, tabs)
	assert.Equal(t, 0, kv.Writes(), "defaults are only written when the key is absent")
}

func TestTimerService_EmptyDevice(t *testing.T) {
	svc := newTestServices(t).timers
	_, err := svc.List(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrEmptyDeviceID)
}

func TestNewTimerService_NilStore(t *testing.T) {
	_, err := NewTimerService(nil, nil)
	assert.ErrorIs(t, err, ErrMissingDependency)
}
