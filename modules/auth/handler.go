package auth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/medscanhq/medscan/pkg/binder"
	"github.com/medscanhq/medscan/pkg/file"
	"github.com/medscanhq/medscan/pkg/httperr"
)

const maxPictureSize = 5 << 20 // 5 MiB

// Handler serves the /auth/* and /profile endpoints.
type Handler struct {
	svc      *Service
	strategy Strategy
	files    file.Storage
	limit    func(http.Handler) http.Handler
	log      *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithFileStorage enables the profile picture upload endpoint.
func WithFileStorage(files file.Storage) HandlerOption {
	return func(h *Handler) { h.files = files }
}

// WithRateLimit wraps the register and login routes with the given
// middleware.
func WithRateLimit(mw func(http.Handler) http.Handler) HandlerOption {
	return func(h *Handler) { h.limit = mw }
}

// WithHandlerLogger sets the request logger.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) { h.log = log }
}

// NewHandler builds the auth HTTP handler.
func NewHandler(svc *Service, strategy Strategy, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:      svc,
		strategy: strategy,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle returns a router serving /auth/* and /profile*, meant to be
// mounted under /api.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Mount("/auth", h.AuthRoutes())
	r.Mount("/profile", h.ProfileRoutes())
	return r
}

// AuthRoutes serves register, login, logout, and me.
func (h *Handler) AuthRoutes() http.Handler {
	r := chi.NewRouter()

	r.Group(func(g chi.Router) {
		if h.limit != nil {
			g.Use(h.limit)
		}
		g.Post("/register", h.register)
		g.Post("/login", h.login)
	})

	r.Post("/logout", h.logout)
	r.With(h.RequireIdentity).Get("/me", h.me)

	return r
}

// ProfileRoutes serves the identity-gated profile endpoints.
func (h *Handler) ProfileRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.RequireIdentity)

	r.Get("/", h.profile)
	if h.files != nil {
		r.Post("/picture", h.uploadPicture)
	}

	return r
}

// RequireIdentity resolves the session and injects the user into the request
// context, rejecting unauthenticated requests.
func (h *Handler) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.strategy.Resolve(r.Context(), r)
		if err != nil {
			httperr.RespondError(h.log, w, r, classifyError(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

type registerRequest struct {
	FullName     string `json:"fullName"`
	DoctorID     string `json:"doctorId"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	HospitalName string `json:"hospitalName"`
	Area         string `json:"area"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	User any `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := binder.JSON(r, &req); err != nil {
		httperr.RespondError(h.log, w, r, classifyError(err))
		return
	}

	user, err := h.svc.Register(r.Context(), RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		DoctorID:     req.DoctorID,
		HospitalName: req.HospitalName,
		Area:         req.Area,
	})
	if err != nil {
		httperr.RespondError(h.log, w, r, classifyError(err))
		return
	}

	if err := h.strategy.Issue(w, user); err != nil {
		httperr.RespondError(h.log, w, r, fmt.Errorf("issue session: %w", err))
		return
	}

	httperr.RespondJSON(w, http.StatusOK, userResponse{User: user.Summary()})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := binder.JSON(r, &req); err != nil {
		httperr.RespondError(h.log, w, r, classifyError(err))
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httperr.RespondError(h.log, w, r, classifyError(err))
		return
	}

	if err := h.strategy.Issue(w, user); err != nil {
		httperr.RespondError(h.log, w, r, fmt.Errorf("issue session: %w", err))
		return
	}

	httperr.RespondJSON(w, http.StatusOK, userResponse{User: user.Summary()})
}

// logout never fails, even without an active session.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.strategy.Clear(w)
	httperr.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httperr.RespondError(h.log, w, r, classifyError(ErrNotAuthenticated))
		return
	}
	httperr.RespondJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httperr.RespondError(h.log, w, r, classifyError(ErrNotAuthenticated))
		return
	}
	httperr.RespondJSON(w, http.StatusOK, user.Profile())
}

func (h *Handler) uploadPicture(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httperr.RespondError(h.log, w, r, classifyError(ErrNotAuthenticated))
		return
	}

	if err := r.ParseMultipartForm(maxPictureSize); err != nil {
		httperr.RespondError(h.log, w, r, httperr.Validation("Invalid multipart body"))
		return
	}

	_, fh, err := r.FormFile("picture")
	if err != nil {
		httperr.RespondError(h.log, w, r, httperr.Validation("Picture file is required"))
		return
	}

	if !file.IsImage(fh) {
		httperr.RespondError(h.log, w, r, classifyError(file.ErrNotAnImage))
		return
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := "profiles/" + user.ID + ext

	saved, err := h.files.Save(r.Context(), fh, path)
	if err != nil {
		httperr.RespondError(h.log, w, r, fmt.Errorf("save picture: %w", err))
		return
	}

	if err := h.svc.SetProfilePicture(r.Context(), user.ID, saved.URL); err != nil {
		httperr.RespondError(h.log, w, r, classifyError(err))
		return
	}

	httperr.RespondJSON(w, http.StatusOK, map[string]string{"profile_picture": saved.URL})
}

// classifyError maps domain errors onto the wire taxonomy. Anything
// unrecognized passes through and surfaces as a 500.
func classifyError(err error) error {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return httperr.Validation("Email and password are required")
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrInvalidJSON):
		return httperr.Validation("Invalid request body")
	case errors.Is(err, file.ErrNotAnImage):
		return httperr.Validation("File must be an image")
	case errors.Is(err, ErrEmailAlreadyExists):
		return httperr.Conflict("User already exists")
	case errors.Is(err, ErrInvalidCredentials):
		return httperr.Unauthorized("Invalid credentials")
	case errors.Is(err, ErrNotAuthenticated):
		return httperr.Unauthorized("Not authenticated")
	case errors.Is(err, ErrUserNotFound):
		return httperr.NotFound("User not found")
	default:
		return err
	}
}
