package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

// TimerService manages the user-defined timers and the three timer tabs.
type TimerService interface {
	// List returns the stored timers, newest first.
	List(ctx context.Context, deviceID string) ([]domain.Timer, error)

	// Get returns the timer with id or domain.ErrTimerNotFound.
	Get(ctx context.Context, deviceID string, id int) (domain.Timer, error)

	// Add validates title and minutes, assigns the next id and prepends the timer.
	Add(ctx context.Context, deviceID, title string, minutes int) (domain.Timer, error)

	// Remove deletes the timer with id. Removing an unknown id is a no-op.
	Remove(ctx context.Context, deviceID string, id int) ([]domain.Timer, error)

	// Rename changes the title of the timer with id.
	Rename(ctx context.Context, deviceID string, id int, title string) (domain.Timer, error)

	// Tabs returns the timer tab durations, populating the defaults on first use.
	Tabs(ctx context.Context, deviceID string) (domain.TimerTabs, error)

	// SetTab replaces the duration of the tab at index.
	SetTab(ctx context.Context, deviceID string, index, minutes int) (domain.TimerTabs, error)
}

type timerServiceImpl struct {
	kv kvAccess
}

var _ TimerService = (*timerServiceImpl)(nil)

// NewTimerService creates a TimerService over devices.
func NewTimerService(devices store.DeviceStore, logger *slog.Logger) (TimerService, error) {
	if devices == nil {
		return nil, missing("timer", "devices")
	}
	return &timerServiceImpl{kv: newKVAccess(devices, logger, "timer_service")}, nil
}

func (s *timerServiceImpl) load(ctx context.Context, deviceID string) []domain.Timer {
	var timers []domain.Timer
	if err := s.kv.read(ctx, deviceID, store.KeyTimers, &timers); err != nil {
		return []domain.Timer{}
	}
	if timers == nil {
		timers = []domain.Timer{}
	}
	return timers
}

func (s *timerServiceImpl) List(ctx context.Context, deviceID string) ([]domain.Timer, error) {
	if err := validateDevice(deviceID); err != nil {
		return nil, err
	}
	return s.load(ctx, deviceID), nil
}

func (s *timerServiceImpl) Get(ctx context.Context, deviceID string, id int) (domain.Timer, error) {
	if err := validateDevice(deviceID); err != nil {
		return domain.Timer{}, err
	}
	for _, t := range s.load(ctx, deviceID) {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Timer{}, domain.ErrTimerNotFound
}

func (s *timerServiceImpl) Add(
	ctx context.Context,
	deviceID, title string,
	minutes int,
) (domain.Timer, error) {
	if err := validateDevice(deviceID); err != nil {
		return domain.Timer{}, err
	}

	timers := s.load(ctx, deviceID)
	timer, err := domain.NewTimer(timers, title, minutes)
	if err != nil {
		return domain.Timer{}, NewServiceError("timer", "add", err)
	}

	s.kv.write(ctx, deviceID, store.KeyTimers, domain.Prepend(timers, timer))
	return timer, nil
}

func (s *timerServiceImpl) Remove(ctx context.Context, deviceID string, id int) ([]domain.Timer, error) {
	if err := validateDevice(deviceID); err != nil {
		return nil, err
	}

	timers := s.load(ctx, deviceID)
	if !domain.ContainsID(timers, id) {
		return timers, nil
	}

	timers = domain.RemoveByID(timers, id)
	s.kv.write(ctx, deviceID, store.KeyTimers, timers)
	return timers, nil
}

func (s *timerServiceImpl) Rename(
	ctx context.Context,
	deviceID string,
	id int,
	title string,
) (domain.Timer, error) {
	if err := validateDevice(deviceID); err != nil {
		return domain.Timer{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Timer{}, domain.ErrEmptyTitle
	}

	timers := s.load(ctx, deviceID)
	for i := range timers {
		if timers[i].ID != id {
			continue
		}
		timers[i].Title = title
		s.kv.write(ctx, deviceID, store.KeyTimers, timers)
		return timers[i], nil
	}
	return domain.Timer{}, domain.ErrTimerNotFound
}

func (s *timerServiceImpl) Tabs(ctx context.Context, deviceID string) (domain.TimerTabs, error) {
	if err := validateDevice(deviceID); err != nil {
		return domain.TimerTabs{}, err
	}
	return s.kv.timerTabs(ctx, deviceID), nil
}

func (s *timerServiceImpl) SetTab(
	ctx context.Context,
	deviceID string,
	index, minutes int,
) (domain.TimerTabs, error) {
	if err := validateDevice(deviceID); err != nil {
		return domain.TimerTabs{}, err
	}

	tabs, err := s.kv.timerTabs(ctx, deviceID).With(index, minutes)
	if err != nil {
		return domain.TimerTabs{}, NewServiceError("timer", "set_tab", err)
	}

	s.kv.write(ctx, deviceID, store.KeyTimerTabs, tabs)
	return tabs, nil
}
