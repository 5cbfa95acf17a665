package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrKeyNotFound", err: ErrKeyNotFound, expected: true},
		{name: "wrapped ErrKeyNotFound", err: fmt.Errorf("load: %w", ErrKeyNotFound), expected: true},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError(KeyTimers, "get", "missing", ErrKeyNotFound),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	err := NewStoreError(KeyTimers, "set", "failed to write value", errors.New("disk full"))
	assert.Equal(t, "set operation on timersList failed: failed to write value: disk full", err.Error())

	bare := NewStoreError(KeyTimers, "set", "failed to write value", nil)
	assert.Equal(t, "set operation on timersList failed: failed to write value", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "currentUser_abc", CurrentUserKey("abc"))
	assert.Equal(t, "usedLocations_42", UsedPredictionsKey("42"))
	assert.ErrorIs(t, ValidateKey("  "), ErrInvalidKey)
	assert.NoError(t, ValidateKey(KeyTimers))
}
