package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

// ProfileService resolves where a device starts and manages its user profile.
type ProfileService interface {
	// Resolve returns the startup route of deviceID. A device seen for the
	// first time is sent to onboarding and remembered, so the next launch goes
	// straight to the timer.
	Resolve(ctx context.Context, deviceID string) (domain.Startup, error)

	// Register returns the profile of deviceID, creating it when missing.
	Register(ctx context.Context, deviceID string) (*domain.UserProfile, error)

	// Current returns the stored profile, or nil when the device has none.
	Current(ctx context.Context, deviceID string) (*domain.UserProfile, error)
}

type profileServiceImpl struct {
	kv kvAccess
}

var _ ProfileService = (*profileServiceImpl)(nil)

// NewProfileService creates a ProfileService over devices.
func NewProfileService(devices store.DeviceStore, logger *slog.Logger) (ProfileService, error) {
	if devices == nil {
		return nil, missing("profile", "devices")
	}
	return &profileServiceImpl{kv: newKVAccess(devices, logger, "profile_service")}, nil
}

func (s *profileServiceImpl) Current(ctx context.Context, deviceID string) (*domain.UserProfile, error) {
	if err := validateDevice(deviceID); err != nil {
		return nil, err
	}

	var profile domain.UserProfile
	if err := s.kv.read(ctx, deviceID, store.CurrentUserKey(deviceID), &profile); err != nil {
		return nil, nil
	}
	return &profile, nil
}

func (s *profileServiceImpl) Resolve(ctx context.Context, deviceID string) (domain.Startup, error) {
	user, err := s.Current(ctx, deviceID)
	if err != nil {
		return domain.Startup{}, err
	}
	if user != nil {
		return domain.Startup{Route: domain.RouteTimer, User: user}, nil
	}

	var started bool
	err = s.kv.read(ctx, deviceID, store.KeyOnboardingStarted, &started)
	switch {
	case err == nil:
		return domain.Startup{Route: domain.RouteTimer}, nil
	case errors.Is(err, store.ErrKeyNotFound):
		s.kv.write(ctx, deviceID, store.KeyOnboardingStarted, true)
		return domain.Startup{Route: domain.RouteOnboarding}, nil
	default:
		// unreadable storage: show onboarding without remembering it
		return domain.Startup{Route: domain.RouteOnboarding}, nil
	}
}

func (s *profileServiceImpl) Register(ctx context.Context, deviceID string) (*domain.UserProfile, error) {
	existing, err := s.Current(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	profile, err := domain.NewUserProfile(deviceID)
	if err != nil {
		return nil, NewServiceError("profile", "register", err)
	}

	s.kv.write(ctx, deviceID, store.CurrentUserKey(deviceID), profile)
	return profile, nil
}
