package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_ResolveFirstLaunchThenTimer(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t).profiles

	startup, err := svc.Resolve(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteOnboarding, startup.Route)
	assert.Nil(t, startup.User)

	startup, err = svc.Resolve(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteTimer, startup.Route)
	assert.Nil(t, startup.User)
}

func TestProfileService_RegisteredUserGoesToTimer(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t).profiles

	user, err := svc.Register(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, testDevice, user.DeviceID)

	again, err := svc.Register(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID, "register is idempotent")

	startup, err := svc.Resolve(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteTimer, startup.Route)
	require.NotNil(t, startup.User)
	assert.Equal(t, user.ID, startup.User.ID)
}

func TestProfileService_UnreadableStorageShowsOnboarding(t *testing.T) {
	ctx := context.Background()
	kv := &mocks.MockKeyValueStore{Err: errors.New("io error")}
	svc, err := NewProfileService(mocks.NewMockDeviceStore(kv), discardLogger())
	require.NoError(t, err)

	startup, err := svc.Resolve(ctx, testDevice)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteOnboarding, startup.Route)
	assert.Equal(t, 0, kv.Writes())
}

func TestProfileService_EmptyDevice(t *testing.T) {
	svc := newTestServices(t).profiles

	_, err := svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyDeviceID)

	_, err = svc.Register(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyDeviceID)
}
