package service

import (
	"errors"
	"fmt"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
)

// ErrMissingDependency is returned by constructors given a nil dependency.
var ErrMissingDependency = errors.New("missing service dependency")

// ServiceError wraps an unexpected failure with the service and operation it
// happened in.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err in a ServiceError. Expected conditions (validation
// errors and the domain not-found sentinels) are returned as they are so
// callers can match them directly.
func NewServiceError(service, op string, err error) error {
	if err == nil {
		return nil
	}
	if isExpected(err) {
		return err
	}
	return &ServiceError{Service: service, Op: op, Err: err}
}

func isExpected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrTimerNotFound) ||
		errors.Is(err, domain.ErrMeditationNotFound) ||
		errors.Is(err, domain.ErrPredictionNotFound) ||
		errors.Is(err, domain.ErrNoPrediction)
}

func missing(service, name string) error {
	return &ServiceError{
		Service: service,
		Op:      "create_service",
		Err:     fmt.Errorf("%w: %s cannot be nil", ErrMissingDependency, name),
	}
}
