package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/shared"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/logger"
	"github.com/Cipollinka/MinSpiritCountdown/internal/redact"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service/auth"
)

// TokenQueryParam carries the session token on websocket upgrades, where
// browsers cannot set an Authorization header.
const TokenQueryParam = "access_token"

// AuthMiddleware authenticates device session tokens.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token of the request and adds the device
// ID it was issued for to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, problem := bearerToken(r)
		if problem != "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, problem)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err,
					shared.WithElevatedLogLevel())
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithDeviceID(r.Context(), claims.DeviceID)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(slog.String("device_id", claims.DeviceID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken returns the session token of r, or the client message
// explaining why there is none.
func bearerToken(r *http.Request) (string, string) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || scheme != "Bearer" || token == "" {
			return "", "Invalid authorization format"
		}
		return token, ""
	}
	if token := r.URL.Query().Get(TokenQueryParam); token != "" {
		return token, ""
	}
	return "", "Authorization header required"
}
