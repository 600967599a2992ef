package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/medscanhq/medscan/pkg/logger"
)

// User mirrors the server's user payload. The password hash is never sent.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"fullName,omitempty"`
	DoctorID       string `json:"doctorId,omitempty"`
	HospitalName   string `json:"hospitalName,omitempty"`
	Area           string `json:"area,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// State is a point-in-time snapshot of the identity state machine.
type State struct {
	User          *User
	Authenticated bool
	Loading       bool
}

// Result reports the outcome of a login or register call so callers can
// render inline feedback without duplicating the toast for ordinary 401s.
type Result struct {
	Success    bool
	Message    string
	StatusCode int
}

// Notifier receives user-visible feedback from the store. Success carries
// confirmations, Destructive carries failures worth a prominent toast.
type Notifier interface {
	Success(message string)
	Destructive(message string)
}

type noopNotifier struct{}

func (noopNotifier) Success(string)     {}
func (noopNotifier) Destructive(string) {}

// RegisterFields carries the registration form.
type RegisterFields struct {
	FullName     string `json:"fullName,omitempty"`
	DoctorID     string `json:"doctorId,omitempty"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	HospitalName string `json:"hospitalName,omitempty"`
	Area         string `json:"area,omitempty"`
}

// Store holds the current identity and synchronizes it with the server.
type Store struct {
	baseURL  string
	client   *http.Client
	notifier Notifier
	navigate func(path string)
	log      *slog.Logger

	mu            sync.Mutex
	user          *User
	authenticated bool
	loading       bool
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient substitutes the HTTP client. The caller is responsible for
// attaching a cookie jar if session cookies should persist.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.client = c }
}

// WithNotifier wires user-visible notifications.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithNavigate sets the callback invoked after logout, typically routing to
// the login view.
func WithNavigate(fn func(path string)) Option {
	return func(s *Store) { s.navigate = fn }
}

// WithStoreLogger sets the diagnostics logger.
func WithStoreLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New creates a Store pointed at baseURL. The initial state is unknown:
// Loading is set until the first CheckStatus settles. New itself never
// contacts the server, so a store whose owner never calls CheckStatus stays
// in the unknown state indefinitely; call it once at startup.
func New(baseURL string, opts ...Option) (*Store, error) {
	s := &Store{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		notifier: noopNotifier{},
		navigate: func(string) {},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		loading:  true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: create cookie jar: %w", err)
		}
		s.client = &http.Client{Jar: jar, Timeout: 30 * time.Second}
	}

	return s, nil
}

// Snapshot returns the current identity state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{User: s.user, Authenticated: s.authenticated, Loading: s.loading}
}

// CheckStatus asks the server who the current session belongs to. A user
// payload means authenticated; 401/403, a missing payload, or any transport
// failure all settle to unauthenticated. Transport failures are logged but
// never surfaced as errors: an unreachable server reads as "not logged in".
func (s *Store) CheckStatus(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.get(ctx, "/api/auth/me")
	if err != nil {
		s.log.WarnContext(ctx, "status check failed",
			logger.Error(err),
			logger.Component("session-store"),
		)
		s.setUnauthenticated()
		return
	}
	defer drainBody(resp)

	if resp.StatusCode != http.StatusOK {
		s.setUnauthenticated()
		return
	}

	var body struct {
		User *User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.User == nil {
		s.setUnauthenticated()
		return
	}

	s.setAuthenticated(body.User)
}

// Login exchanges credentials for a session. Ordinary rejections (401) come
// back only in the Result; server errors additionally raise a destructive
// notification.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.post(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		s.log.WarnContext(ctx, "login request failed",
			logger.Error(err),
			logger.Component("session-store"),
		)
		s.notifier.Destructive("Unable to reach the server")
		return Result{Success: false, Message: "Unable to reach the server"}
	}
	defer drainBody(resp)

	if resp.StatusCode == http.StatusOK {
		var body struct {
			User *User `json:"user"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.User != nil {
			s.setAuthenticated(body.User)
			s.notifier.Success("Logged in successfully")
			return Result{Success: true, StatusCode: resp.StatusCode}
		}
	}

	message := errorMessage(resp.Body, "Login failed")
	if resp.StatusCode >= http.StatusInternalServerError {
		s.notifier.Destructive(message)
	}
	return Result{Success: false, Message: message, StatusCode: resp.StatusCode}
}

// Register creates an account. Success does not flip the store to
// authenticated; the caller decides whether to log in afterwards.
func (s *Store) Register(ctx context.Context, fields RegisterFields) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.post(ctx, "/api/auth/register", fields)
	if err != nil {
		s.log.WarnContext(ctx, "register request failed",
			logger.Error(err),
			logger.Component("session-store"),
		)
		s.notifier.Destructive("Unable to reach the server")
		return Result{Success: false, Message: "Unable to reach the server"}
	}
	defer drainBody(resp)

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		s.notifier.Success("Account created successfully")
		return Result{Success: true, StatusCode: resp.StatusCode}
	}

	message := errorMessage(resp.Body, "Registration failed")
	s.notifier.Destructive(message)
	return Result{Success: false, Message: message, StatusCode: resp.StatusCode}
}

// Logout tears the session down. Local state is cleared unconditionally,
// even when the server call fails, so the UI can never be stuck logged in.
func (s *Store) Logout(ctx context.Context) {
	resp, err := s.post(ctx, "/api/auth/logout", nil)
	if err != nil {
		s.log.WarnContext(ctx, "logout request failed",
			logger.Error(err),
			logger.Component("session-store"),
		)
	} else {
		drainBody(resp)
	}

	s.setUnauthenticated()
	s.navigate("/login")
	s.notifier.Success("Logged out")
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Store) setAuthenticated(user *User) {
	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
}

func (s *Store) setUnauthenticated() {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()
}

func (s *Store) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return s.client.Do(req)
}

func (s *Store) post(ctx context.Context, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.client.Do(req)
}

// errorMessage extracts the server's {"message"} body, falling back when the
// body is empty or not JSON.
func errorMessage(body io.Reader, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Message == "" {
		return fallback
	}
	return payload.Message
}

func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
