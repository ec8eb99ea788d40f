package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidSetup          = errors.New("invalid draft setup")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
