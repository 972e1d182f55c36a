package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every malformed-input error.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidTaskPayload = fmt.Errorf("%w: invalid task payload", ErrValidation)
	ErrInvalidTaskStatus  = fmt.Errorf("%w: invalid task status", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidUserPayload = fmt.Errorf("%w: invalid user payload", ErrValidation)
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskHierarchyCycle = errors.New("task hierarchy cycle")
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)
