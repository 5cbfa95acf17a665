package service

import (
	"context"
	"log/slog"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

// MeditationService manages the stored meditation sessions.
type MeditationService interface {
	List(ctx context.Context, deviceID string) ([]domain.Meditation, error)
	Get(ctx context.Context, deviceID string, id int) (domain.Meditation, error)
	Add(ctx context.Context, deviceID string, minutes int) (domain.Meditation, error)
	// Remove deletes the session with id. Removing an unknown id is a no-op.
	Remove(ctx context.Context, deviceID string, id int) ([]domain.Meditation, error)
}

type meditationServiceImpl struct {
	kv kvAccess
}

var _ MeditationService = (*meditationServiceImpl)(nil)

// NewMeditationService creates a MeditationService over devices.
func NewMeditationService(devices store.DeviceStore, logger *slog.Logger) (MeditationService, error) {
	if devices == nil {
		return nil, missing("meditation", "devices")
	}
	return &meditationServiceImpl{kv: newKVAccess(devices, logger, "meditation_service")}, nil
}

func (s *meditationServiceImpl) load(ctx context.Context, deviceID string) []domain.Meditation {
	var sessions []domain.Meditation
	if err := s.kv.read(ctx, deviceID, store.KeyMeditations, &sessions); err != nil || sessions == nil {
		return []domain.Meditation{}
	}
	return sessions
}

func (s *meditationServiceImpl) List(ctx context.Context, deviceID string) ([]domain.Meditation, error) {
	if err := validateDevice(deviceID); err != nil {
		return nil, err
	}
	return s.load(ctx, deviceID), nil
}

func (s *meditationServiceImpl) Get(ctx context.Context, deviceID string, id int) (domain.Meditation, error) {
	if err := validateDevice(deviceID); err != nil {
		return domain.Meditation{}, err
	}
	for _, m := range s.load(ctx, deviceID) {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Meditation{}, domain.ErrMeditationNotFound
}

func (s *meditationServiceImpl) Add(ctx context.Context, deviceID string, minutes int) (domain.Meditation, error) {
	if err := validateDevice(deviceID); err != nil {
		return domain.Meditation{}, err
	}

	sessions := s.load(ctx, deviceID)
	session, err := domain.NewMeditation(sessions, minutes)
	if err != nil {
		return domain.Meditation{}, NewServiceError("meditation", "add", err)
	}

	s.kv.write(ctx, deviceID, store.KeyMeditations, domain.Prepend(sessions, session))
	return session, nil
}

func (s *meditationServiceImpl) Remove(ctx context.Context, deviceID string, id int) ([]domain.Meditation, error) {
	if err := validateDevice(deviceID); err != nil {
		return nil, err
	}

	sessions := s.load(ctx, deviceID)
	if !domain.ContainsID(sessions, id) {
		return sessions, nil
	}

	sessions = domain.RemoveByID(sessions, id)
	s.kv.write(ctx, deviceID, store.KeyMeditations, sessions)
	return sessions, nil
}
