package auth

import "errors"

var (
	// ErrMissingCredentials indicates email or password was empty.
	ErrMissingCredentials = errors.New("auth: email and password are required")

	// ErrEmailAlreadyExists indicates a registration against a taken email.
	ErrEmailAlreadyExists = errors.New("auth: email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses cannot be used to probe which accounts exist.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrNotAuthenticated indicates a missing, invalid, or expired session.
	ErrNotAuthenticated = errors.New("auth: not authenticated")

	// ErrUserNotFound indicates the user record does not exist.
	ErrUserNotFound = errors.New("auth: user not found")
)
