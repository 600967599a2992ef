package auth

import "context"

// Storage defines the persistence operations the auth module needs. The
// mongo implementation lives in mongo.go; tests substitute an in-memory one.
type Storage interface {
	// CreateUser persists a new user. Returns ErrEmailAlreadyExists when the
	// email is taken.
	CreateUser(ctx context.Context, user *User) error
	// FindByEmail returns the user with the exact email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByID returns the user with the given ID, or ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*User, error)
	// UpdateProfilePicture sets the profile picture URL on the user.
	UpdateProfilePicture(ctx context.Context, id, url string) error
}
