package apperrors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrNoActiveRide         = errors.New("no active ride")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrSamplerNotConfigured = errors.New("distance sampler is not configured")
	ErrUnsupportedBackend   = errors.New("unsupported backend")
)
