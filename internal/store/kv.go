package store

import (
	"context"
	"strconv"
	"strings"
)

// KeyValueStore is the key-value store of a single device.
// Values are raw JSON documents.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetMany stores every entry atomically: either all keys are written or none.
	SetMany(ctx context.Context, entries map[string][]byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// DeviceStore hands out the key-value store of each device.
type DeviceStore interface {
	// ForDevice returns the store scoped to deviceID.
	ForDevice(deviceID string) KeyValueStore

	// Close releases the resources held by the backend.
	Close() error
}

// Storage keys. They match the keys written by the mobile application so that
// exported device data can be imported unchanged.
const (
	KeyOnboardingStarted   = "isOnboardingWasStarted"
	KeyTimers              = "timersList"
	KeyMeditations         = "meditationsList"
	KeyTimerTabs           = "timerValues"
	KeySavedPredictions    = "savedPredictions"
	KeySoundEnabled        = "isSoundEnabled"
	KeyVibrationEnabled    = "isVibrationEnabled"
	KeyNotificationEnabled = "isNotificationEnabled"

	currentUserPrefix     = "currentUser_"
	usedPredictionsPrefix = "usedLocations_"
)

// CurrentUserKey is the key of the user profile stored for deviceID.
func CurrentUserKey(deviceID string) string {
	return currentUserPrefix + deviceID
}

// UsedPredictionsKey is the key of the used-prediction set of ownerID.
func UsedPredictionsKey(ownerID string) string {
	return usedPredictionsPrefix + ownerID
}

// ValidateKey rejects empty or whitespace-only keys.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return NewStoreError(strconv.Quote(key), "validate", "key cannot be empty", ErrInvalidKey)
	}
	return nil
}
