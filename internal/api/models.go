package api

import (
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
)

// SessionRequest is the optional body of the session endpoint.
type SessionRequest struct {
	// Register creates the device user profile when it does not exist yet.
	Register bool `json:"register"`
}

// SessionResponse carries the device session token and the startup route.
type SessionResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	Route     domain.Route        `json:"route"`
	User      *domain.UserProfile `json:"user,omitempty"`
}

// CreateTimerRequest defines the payload for adding a timer.
type CreateTimerRequest struct {
	Title   string `json:"title"   validate:"required,max=100"`
	Minutes int    `json:"minutes" validate:"required,min=1,max=180"`
	// Start switches the timer countdown to the new timer and starts it.
	Start bool `json:"start"`
}

// RenameTimerRequest defines the payload for renaming a timer.
type RenameTimerRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// TimerResponse is returned when a timer is created.
type TimerResponse struct {
	Timer     domain.Timer     `json:"timer"`
	Countdown *runner.Snapshot `json:"countdown,omitempty"`
}

// SetTabRequest defines the payload for changing a timer tab.
type SetTabRequest struct {
	Minutes int `json:"minutes" validate:"required,min=1,max=180"`
}

// CreateMeditationRequest defines the payload for adding a meditation session.
type CreateMeditationRequest struct {
	Minutes int  `json:"minutes" validate:"required,min=1,max=180"`
	Start   bool `json:"start"`
}

// MeditationResponse is returned when a meditation session is created.
type MeditationResponse struct {
	Meditation domain.Meditation `json:"meditation"`
	Countdown  *runner.Snapshot  `json:"countdown,omitempty"`
}

// ToggleResponse reports the saved state of a prediction after a toggle.
type ToggleResponse struct {
	Saved       bool                `json:"saved"`
	Predictions []domain.Prediction `json:"predictions"`
}

// ShareResponse carries a text for the platform share sheet.
type ShareResponse struct {
	Message string `json:"message"`
}

// SettingsPatchRequest is a partial settings update. Omitted flags keep
// their value.
type SettingsPatchRequest struct {
	SoundEnabled        *bool `json:"sound_enabled"`
	VibrationEnabled    *bool `json:"vibration_enabled"`
	NotificationEnabled *bool `json:"notification_enabled"`
}

// SelectRequest picks the duration of a countdown. Exactly one source must
// be set: a timer tab, a stored timer, a stored meditation session or a raw
// number of minutes.
type SelectRequest struct {
	Tab          *int `json:"tab"           validate:"omitempty,min=0,max=2"`
	TimerID      *int `json:"timer_id"`
	MeditationID *int `json:"meditation_id"`
	Minutes      *int `json:"minutes"       validate:"omitempty,min=1,max=180"`
	// Force replaces a running countdown.
	Force bool `json:"force"`
}

func (r SelectRequest) sources() int {
	n := 0
	for _, set := range []bool{r.Tab != nil, r.TimerID != nil, r.MeditationID != nil, r.Minutes != nil} {
		if set {
			n++
		}
	}
	return n
}
