package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medscanhq/medscan/modules/auth"
)

// memStorage is an in-memory Storage for tests, keyed by email and id.
type memStorage struct {
	mu      sync.Mutex
	byEmail map[string]*auth.User
	byID    map[string]*auth.User
}

func newMemStorage() *memStorage {
	return &memStorage{
		byEmail: make(map[string]*auth.User),
		byID:    make(map[string]*auth.User),
	}
}

func (m *memStorage) CreateUser(ctx context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[user.Email]; exists {
		return auth.ErrEmailAlreadyExists
	}
	u := *user
	m.byEmail[u.Email] = &u
	m.byID[u.ID] = &u
	return nil
}

func (m *memStorage) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, auth.ErrUserNotFound
}

func (m *memStorage) FindByID(ctx context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, auth.ErrUserNotFound
}

func (m *memStorage) UpdateProfilePicture(ctx context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.ProfilePicture = url
	return nil
}

func (m *memStorage) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		delete(m.byEmail, u.Email)
		delete(m.byID, id)
	}
}

func newService(storage *memStorage) *auth.Service {
	// MinCost keeps the hashing out of the test runtime.
	return auth.NewService(storage, auth.WithBcryptCost(bcrypt.MinCost))
}

func TestServiceRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user with hashed password", func(t *testing.T) {
		t.Parallel()
		svc := newService(newMemStorage())

		user, err := svc.Register(context.Background(), auth.RegisterInput{
			Email:    "Dr.House@Example.COM",
			Password: "lupus123",
			FullName: "Gregory House",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "dr.house@example.com", user.Email)
		assert.Equal(t, "Gregory House", user.FullName)
		assert.NotEqual(t, "lupus123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("lupus123")))
	})

	t.Run("requires email and password", func(t *testing.T) {
		t.Parallel()
		svc := newService(newMemStorage())

		_, err := svc.Register(context.Background(), auth.RegisterInput{Email: "a@x.com"})
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)

		_, err = svc.Register(context.Background(), auth.RegisterInput{Password: "p1"})
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()
		svc := newService(newMemStorage())

		_, err := svc.Register(context.Background(), auth.RegisterInput{Email: "a@x.com", Password: "p1"})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), auth.RegisterInput{Email: "A@X.com", Password: "p2"})
		assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
	})
}

func TestServiceAuthenticate(t *testing.T) {
	t.Parallel()

	storage := newMemStorage()
	svc := newService(storage)

	registered, err := svc.Register(context.Background(), auth.RegisterInput{
		Email:    "a@x.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		user, err := svc.Authenticate(context.Background(), "A@x.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		t.Parallel()
		_, errWrongPass := svc.Authenticate(context.Background(), "a@x.com", "wrong")
		_, errNoUser := svc.Authenticate(context.Background(), "nobody@x.com", "correct-horse")

		assert.ErrorIs(t, errWrongPass, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, auth.ErrInvalidCredentials)
		assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	})

	t.Run("empty inputs rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(context.Background(), "", "")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}
