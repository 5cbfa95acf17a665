package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSession_Routes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/devices/phone-1/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var first SessionResponse
	decode(t, rec, &first)
	assert.Equal(t, domain.RouteOnboarding, first.Route)
	assert.Nil(t, first.User)
	assert.Equal(t, s.clock.Now().Add(time.Hour).UTC(), first.ExpiresAt)

	rec = s.do(t, http.MethodPost, "/api/devices/phone-1/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var second SessionResponse
	decode(t, rec, &second)
	assert.Equal(t, domain.RouteTimer, second.Route)
}

func TestOpenSession_Register(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/devices/phone-1/session", "", SessionRequest{Register: true})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp SessionResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.User)
	assert.Equal(t, "phone-1", resp.User.DeviceID)

	rec = s.do(t, http.MethodGet, "/api/profile", resp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile domain.UserProfile
	decode(t, rec, &profile)
	assert.Equal(t, resp.User.ID, profile.ID)
}

func TestProfile_RegisterLater(t *testing.T) {
	s := newTestServer(t)
	token := s.session(t, "phone-1")

	rec := s.do(t, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/profile", token, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/timers", "/api/settings", "/api/countdowns/timer"} {
		rec := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(t, http.MethodGet, "/api/timers", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorMessage(t, rec))
}

func TestShareAppAndHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/share", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var share ShareResponse
	decode(t, rec, &share)
	assert.Equal(t, "Join MinSpirit: Countdown of Time!\n", share.Message)

	rec = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
