package service

import (
	"errors"
	"testing"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			service:  "timer",
			op:       "add",
			err:      errors.New("database connection failed"),
			expected: "timer service add operation failed: database connection failed",
		},
		{
			name:     "without underlying error",
			service:  "prediction",
			op:       "draw",
			err:      nil,
			expected: "prediction service draw operation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceErr := &ServiceError{Service: tt.service, Op: tt.op, Err: tt.err}
			assert.Equal(t, tt.expected, serviceErr.Error())
		})
	}
}

func TestServiceError_ErrorsIsAndAs(t *testing.T) {
	underlying := errors.New("database connection failed")
	err := NewServiceError("settings", "update", underlying)

	assert.ErrorIs(t, err, underlying)

	var serviceErr *ServiceError
	assert.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "settings", serviceErr.Service)
	assert.Equal(t, "update", serviceErr.Op)
}

func TestNewServiceError_PassesExpectedErrorsThrough(t *testing.T) {
	for _, err := range []error{
		domain.ErrInvalidMinutes,
		domain.ErrEmptyTitle,
		domain.ErrTimerNotFound,
		domain.ErrMeditationNotFound,
		domain.ErrPredictionNotFound,
		domain.ErrNoPrediction,
	} {
		assert.Same(t, err, NewServiceError("timer", "add", err))
	}

	assert.Nil(t, NewServiceError("timer", "add", nil))
}

func TestMissingDependency(t *testing.T) {
	err := missing("timer", "store")
	assert.ErrorIs(t, err, ErrMissingDependency)
	assert.Contains(t, err.Error(), "store cannot be nil")
}
