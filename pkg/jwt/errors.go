package jwt

import "errors"

var (
	// ErrMissingSigningKey indicates the service was created without a key.
	ErrMissingSigningKey = errors.New("jwt: missing signing key")

	// ErrMissingClaims indicates nil claims were passed to Generate.
	ErrMissingClaims = errors.New("jwt: missing claims")

	// ErrInvalidToken indicates the token is structurally invalid.
	ErrInvalidToken = errors.New("jwt: invalid token")

	// ErrInvalidSignature indicates signature verification failed.
	ErrInvalidSignature = errors.New("jwt: invalid signature")

	// ErrExpiredToken indicates the token's exp claim is in the past.
	ErrExpiredToken = errors.New("jwt: token expired")

	// ErrUnexpectedSigningMethod indicates the token header declares an
	// algorithm other than HS256.
	ErrUnexpectedSigningMethod = errors.New("jwt: unexpected signing method")
)
