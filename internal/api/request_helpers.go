package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/shared"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/go-chi/chi/v5"
)

// requireDevice returns the device ID the auth middleware put in the request
// context. It writes a 401 and returns false when there is none.
func requireDevice(w http.ResponseWriter, r *http.Request) (string, bool) {
	deviceID, ok := shared.GetDeviceID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Device not authenticated")
		return "", false
	}
	return deviceID, true
}

// getPathInt parses the integer path parameter paramName.
func getPathInt(r *http.Request, paramName string) (int, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s has invalid format", domain.ErrValidation, paramName)
	}
	return n, nil
}

// getPathKind parses the countdown kind path parameter.
func getPathKind(r *http.Request) (countdown.Kind, error) {
	return countdown.ParseKind(chi.URLParam(r, "kind"))
}

// decodeAndValidate decodes the JSON body into req and validates it. It
// writes a 400 and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}, optional bool) bool {
	decode := shared.DecodeJSON
	if optional {
		decode = shared.DecodeOptionalJSON
	}
	if err := decode(w, r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
