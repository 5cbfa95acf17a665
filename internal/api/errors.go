package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/shared"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service/auth"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
	"github.com/go-playground/validator/v10"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrTimerNotFound),
		errors.Is(err, domain.ErrMeditationNotFound),
		errors.Is(err, domain.ErrPredictionNotFound):
		return http.StatusNotFound

	case errors.Is(err, runner.ErrCountdownRunning),
		errors.Is(err, countdown.ErrNothingToCount):
		return http.StatusConflict

	case errors.Is(err, runner.ErrRunnerStopped):
		return http.StatusServiceUnavailable

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNoPrediction),
		errors.Is(err, store.ErrInvalidKey),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrTimerNotFound):
		return "No timer selected"
	case errors.Is(err, domain.ErrMeditationNotFound):
		return "Meditation session not found"
	case errors.Is(err, domain.ErrPredictionNotFound):
		return "Prediction not found"
	case errors.Is(err, domain.ErrNoPrediction):
		return "No prediction here"

	case errors.Is(err, runner.ErrCountdownRunning):
		return "Stop the running countdown first"
	case errors.Is(err, countdown.ErrNothingToCount):
		return "Time is up, reset the countdown first"
	case errors.Is(err, runner.ErrRunnerStopped):
		return "Server is shutting down"

	case errors.Is(err, domain.ErrInvalidMinutes):
		return "Please enter valid minutes (1-180)"
	case errors.Is(err, domain.ErrEmptyTitle):
		return "Please enter a valid title"
	case errors.Is(err, domain.ErrInvalidTabIndex):
		return "Timer tab index must be between 0 and 2"
	case errors.Is(err, domain.ErrEmptyDeviceID),
		errors.Is(err, store.ErrInvalidKey):
		return "Device ID is required"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a request validation failure into a short
// message naming the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the response for err. fallbackMsg replaces the
// generic message of unexpected errors when set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMsg != "" {
		message = fallbackMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
