package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Route names the screen a device lands on at startup.
type Route string

// Startup routes.
const (
	RouteOnboarding Route = "onboarding"
	RouteTimer      Route = "timer"
)

// UserProfile is the opaque identity stored for a device.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	DeviceID  string    `json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserProfile creates a profile bound to deviceID.
func NewUserProfile(deviceID string) (*UserProfile, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	return &UserProfile{
		ID:        uuid.New(),
		DeviceID:  deviceID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Startup is the outcome of resolving a device at launch.
type Startup struct {
	Route Route        `json:"route"`
	User  *UserProfile `json:"user,omitempty"`
}
