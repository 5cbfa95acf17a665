package runner

import (
	"context"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
)

// TimerCatalog is the part of the timer service the selection helpers need.
type TimerCatalog interface {
	TabSource
	Get(ctx context.Context, deviceID string, id int) (domain.Timer, error)
	Add(ctx context.Context, deviceID, title string, minutes int) (domain.Timer, error)
}

// MeditationCatalog is the part of the meditation service the selection
// helpers need.
type MeditationCatalog interface {
	Get(ctx context.Context, deviceID string, id int) (domain.Meditation, error)
	Add(ctx context.Context, deviceID string, minutes int) (domain.Meditation, error)
}

// Sessions resolves what the user picked into a countdown duration and
// drives the runner with it.
type Sessions struct {
	Runner      *Runner
	Timers      TimerCatalog
	Meditations MeditationCatalog
}

// SelectTab resets the timer countdown to the tab at index.
func (s *Sessions) SelectTab(ctx context.Context, deviceID string, index int, force bool) (Snapshot, error) {
	tabs, err := s.Timers.Tabs(ctx, deviceID)
	if err != nil {
		return Snapshot{}, err
	}
	if index < 0 || index >= domain.TimerTabCount {
		return Snapshot{}, domain.ErrInvalidTabIndex
	}
	return s.Runner.Select(ctx, deviceID, countdown.KindTimer, tabs[index], force)
}

// SelectTimer resets the timer countdown to the stored timer with id.
func (s *Sessions) SelectTimer(ctx context.Context, deviceID string, id int, force bool) (Snapshot, error) {
	timer, err := s.Timers.Get(ctx, deviceID, id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Runner.Select(ctx, deviceID, countdown.KindTimer, timer.Minutes, force)
}

// SelectMeditation resets the meditation countdown to the session with id.
func (s *Sessions) SelectMeditation(ctx context.Context, deviceID string, id int, force bool) (Snapshot, error) {
	session, err := s.Meditations.Get(ctx, deviceID, id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Runner.Select(ctx, deviceID, countdown.KindMeditation, session.Minutes, force)
}

// AddTimer stores a new timer. With start set the timer countdown switches to
// it and starts, replacing whatever was running.
func (s *Sessions) AddTimer(
	ctx context.Context,
	deviceID, title string,
	minutes int,
	start bool,
) (domain.Timer, *Snapshot, error) {
	timer, err := s.Timers.Add(ctx, deviceID, title, minutes)
	if err != nil || !start {
		return timer, nil, err
	}
	snap, err := s.switchAndStart(ctx, deviceID, countdown.KindTimer, timer.Minutes)
	return timer, snap, err
}

// AddMeditation stores a new meditation session and optionally starts it.
func (s *Sessions) AddMeditation(
	ctx context.Context,
	deviceID string,
	minutes int,
	start bool,
) (domain.Meditation, *Snapshot, error) {
	session, err := s.Meditations.Add(ctx, deviceID, minutes)
	if err != nil || !start {
		return session, nil, err
	}
	snap, err := s.switchAndStart(ctx, deviceID, countdown.KindMeditation, session.Minutes)
	return session, snap, err
}

func (s *Sessions) switchAndStart(
	ctx context.Context,
	deviceID string,
	kind countdown.Kind,
	minutes int,
) (*Snapshot, error) {
	if _, err := s.Runner.Select(ctx, deviceID, kind, minutes, true); err != nil {
		return nil, err
	}
	snap, err := s.Runner.Start(ctx, deviceID, kind)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
