package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medscanhq/medscan/pkg/logger"
	"github.com/medscanhq/medscan/pkg/sanitizer"
)

// RegisterInput carries the registration fields. Email and password are
// required; the rest is optional profile data stored as given.
type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	DoctorID     string
	HospitalName string
	Area         string
}

// Service implements registration and credential verification.
type Service struct {
	storage    Storage
	bcryptCost int
	log        *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) { s.bcryptCost = cost }
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// NewService creates the auth service with bcrypt.DefaultCost hashing.
func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new user. The existence check before insert leaves a
// race window; the unique email index turns the losing insert into
// ErrEmailAlreadyExists instead of a duplicate account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	email := sanitizer.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrMissingCredentials
	}

	_, err := s.storage.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     sanitizer.TrimString(in.FullName),
		DoctorID:     sanitizer.TrimString(in.DoctorID),
		HospitalName: sanitizer.TrimString(in.HospitalName),
		Area:         sanitizer.TrimString(in.Area),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user registered",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)

	return user, nil
}

// Authenticate verifies the credentials. Unknown email and wrong password
// both come back as ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SetProfilePicture stores the picture URL on the user record.
func (s *Service) SetProfilePicture(ctx context.Context, userID, url string) error {
	return s.storage.UpdateProfilePicture(ctx, userID, url)
}
