// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Every field-specific validation error below wraps it.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidMinutes is returned when a duration lies outside [MinMinutes, MaxMinutes].
	ErrInvalidMinutes = fmt.Errorf("%w: minutes must be between %d and %d", ErrValidation, MinMinutes, MaxMinutes)

	// ErrEmptyTitle is returned when a timer is created or renamed without a title.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrInvalidTabIndex is returned when a timer tab index is out of range.
	ErrInvalidTabIndex = fmt.Errorf("%w: timer tab index out of range", ErrValidation)

	// ErrEmptyDeviceID is returned when a device identifier is missing.
	ErrEmptyDeviceID = fmt.Errorf("%w: device ID cannot be empty", ErrValidation)

	// ErrNoPrediction is returned when an operation needs a prediction and none was given.
	ErrNoPrediction = errors.New("no prediction here")

	// ErrTimerNotFound is returned when an edit targets a timer that is not in the list.
	ErrTimerNotFound = errors.New("timer not found")

	// ErrMeditationNotFound is returned when a meditation session is selected that is not in the list.
	ErrMeditationNotFound = errors.New("meditation session not found")

	// ErrPredictionNotFound is returned for a prediction ID outside the catalog.
	ErrPredictionNotFound = errors.New("prediction not found")
)
