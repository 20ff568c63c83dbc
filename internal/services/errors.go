package services

import "errors"

var (
	// ErrForbidden is returned when a user acts on a resource they do not own
	ErrForbidden = errors.New("forbidden")

	// ErrEmailTaken is returned when registering with an email already in use
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login attempt
	ErrInvalidCredentials = errors.New("invalid email or password")
)
