package runner

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/Cipollinka/MinSpiritCountdown/internal/events"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/memory"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessions(t *testing.T) *Sessions {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := memory.NewKVStore()
	timers, err := service.NewTimerService(kv, log)
	require.NoError(t, err)
	meditations, err := service.NewMeditationService(kv, log)
	require.NoError(t, err)

	runner, err := NewRunner(clockwork.NewFakeClock(), events.NewInMemoryEventEmitter(log), timers,
		DefaultRunnerConfig(), log)
	require.NoError(t, err)
	t.Cleanup(runner.Shutdown)

	return &Sessions{Runner: runner, Timers: timers, Meditations: meditations}
}

func TestSessions_SelectTab(t *testing.T) {
	s := newSessions(t)

	snap, err := s.SelectTab(context.Background(), device, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 90, snap.Minutes)
	assert.Equal(t, "90:00", snap.Display)

	_, err = s.SelectTab(context.Background(), device, 3, false)
	assert.ErrorIs(t, err, domain.ErrInvalidTabIndex)
}

func TestSessions_SelectStoredItems(t *testing.T) {
	ctx := context.Background()
	s := newSessions(t)

	timer, snap, err := s.AddTimer(ctx, device, "Focus", 25, false)
	require.NoError(t, err)
	assert.Nil(t, snap)

	got, err := s.SelectTimer(ctx, device, timer.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 25*60, got.RemainingSeconds)

	_, err = s.SelectTimer(ctx, device, 99, false)
	assert.ErrorIs(t, err, domain.ErrTimerNotFound)

	session, _, err := s.AddMeditation(ctx, device, 180, false)
	require.NoError(t, err)
	got, err = s.SelectMeditation(ctx, device, session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "180:00", got.Display)

	_, err = s.SelectMeditation(ctx, device, 42, false)
	assert.ErrorIs(t, err, domain.ErrMeditationNotFound)
}

func TestSessions_AddWithStartReplacesRunning(t *testing.T) {
	ctx := context.Background()
	s := newSessions(t)

	_, err := s.Runner.Start(ctx, device, countdown.KindTimer)
	require.NoError(t, err)

	_, snap, err := s.AddTimer(ctx, device, "Sprint", 15, true)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.True(t, snap.Running)
	assert.Equal(t, 15, snap.Minutes)

	_, snap, err = s.AddMeditation(ctx, device, 0, true)
	assert.ErrorIs(t, err, domain.ErrInvalidMinutes)
	assert.Nil(t, snap)
}
