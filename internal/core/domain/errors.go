package domain

import "errors"

// Authentication and authorization.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Validation and persistence.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidRole     = errors.New("invalid role")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrClientNotFound  = errors.New("client not found")
	ErrDuplicateCPF    = errors.New("cpf already registered")
	ErrPaymentNotFound = errors.New("payment not found")
)

// ErrInvalidTransition is returned when a payment cannot move to the
// requested status from its current one.
var ErrInvalidTransition = errors.New("invalid status transition")
