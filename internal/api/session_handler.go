package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/shared"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/logger"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service/auth"
	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
)

// SessionHandler opens device sessions and manages the device profile.
type SessionHandler struct {
	profiles      service.ProfileService
	jwtService    auth.JWTService
	tokenLifetime time.Duration
	clock         clockwork.Clock
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	profiles service.ProfileService,
	jwtService auth.JWTService,
	tokenLifetime time.Duration,
	clock clockwork.Clock,
) *SessionHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SessionHandler{
		profiles:      profiles,
		jwtService:    jwtService,
		tokenLifetime: tokenLifetime,
		clock:         clock,
	}
}

// OpenSession handles POST /api/devices/{deviceID}/session.
// It resolves where the device starts, optionally registers its profile and
// issues a session token. No device secret is checked: the token only scopes
// later requests to the device id in the path.
func (h *SessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	deviceID := chi.URLParam(r, "deviceID")

	var req SessionRequest
	if !decodeAndValidate(w, r, &req, true) {
		return
	}

	startup, err := h.profiles.Resolve(r.Context(), deviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to open session")
		return
	}

	if req.Register && startup.User == nil {
		user, err := h.profiles.Register(r.Context(), deviceID)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to register device")
			return
		}
		startup.User = user
	}

	issuedAt := h.clock.Now()
	token, err := h.jwtService.GenerateToken(r.Context(), deviceID)
	if err != nil {
		log.Error("failed to generate session token", slog.String("device_id", deviceID))
		HandleAPIError(w, r, err, "Failed to generate session token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Token:     token,
		ExpiresAt: issuedAt.Add(h.tokenLifetime).UTC(),
		Route:     startup.Route,
		User:      startup.User,
	})
}

// Register handles POST /api/profile.
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	user, err := h.profiles.Register(r.Context(), deviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to register device")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// Profile handles GET /api/profile.
func (h *SessionHandler) Profile(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	user, err := h.profiles.Current(r.Context(), deviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load profile")
		return
	}
	if user == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Profile not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ShareApp handles GET /api/share.
func (h *SessionHandler) ShareApp(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ShareResponse{Message: domain.AppShareMessage})
}
