// Package auth issues and validates device session tokens.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing device session tokens.
type JWTService interface {
	// GenerateToken creates a signed session token for deviceID.
	GenerateToken(ctx context.Context, deviceID string) (string, error)

	// ValidateToken validates tokenString and extracts its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid, ErrWrongTokenType or
	// ErrInvalidToken when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated claims of a session token.
type Claims struct {
	// DeviceID is the device the token was issued for (the JWT subject).
	DeviceID string `json:"sub,omitempty"`

	// TokenType is always "device" for session tokens.
	TokenType string `json:"type,omitempty"`

	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
