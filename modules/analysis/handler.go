package analysis

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medscanhq/medscan/modules/auth"
	"github.com/medscanhq/medscan/pkg/binder"
	"github.com/medscanhq/medscan/pkg/httperr"
	"github.com/medscanhq/medscan/pkg/sanitizer"
)

// Handler serves the /analysis endpoints. The read endpoints are public;
// record creation requires an identity gate.
type Handler struct {
	storage  Storage
	identity func(http.Handler) http.Handler
	log      *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithIdentityGate enables the record-creation endpoint behind the given
// authentication middleware.
func WithIdentityGate(mw func(http.Handler) http.Handler) HandlerOption {
	return func(h *Handler) { h.identity = mw }
}

// WithHandlerLogger sets the request logger.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) { h.log = log }
}

// NewHandler builds the analysis HTTP handler.
func NewHandler(storage Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage: storage,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle returns the router, meant to be mounted under /api/analysis.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/category-counts", h.categoryCounts)
	r.Get("/history", h.history)
	if h.identity != nil {
		r.With(h.identity).Post("/", h.create)
	}

	return r
}

func (h *Handler) categoryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.storage.CategoryCounts(r.Context(), time.Now())
	if err != nil {
		httperr.RespondError(h.log, w, r, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, counts)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	records, err := h.storage.History(r.Context())
	if err != nil {
		httperr.RespondError(h.log, w, r, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, records)
}

type createRequest struct {
	Results Results `json:"results"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httperr.RespondError(h.log, w, r, httperr.Unauthorized("Not authenticated"))
		return
	}

	var req createRequest
	if err := binder.JSON(r, &req); err != nil {
		httperr.RespondError(h.log, w, r, classifyError(err))
		return
	}

	req.Results.Diagnosis = sanitizer.TrimString(req.Results.Diagnosis)
	if req.Results.Diagnosis == "" {
		httperr.RespondError(h.log, w, r, httperr.Validation("Diagnosis is required"))
		return
	}

	record := &Record{
		ID:        uuid.NewString(),
		UserEmail: user.Email,
		Results:   req.Results,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.storage.Create(r.Context(), record); err != nil {
		httperr.RespondError(h.log, w, r, err)
		return
	}

	httperr.RespondJSON(w, http.StatusCreated, record)
}

func classifyError(err error) error {
	switch {
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrInvalidJSON):
		return httperr.Validation("Invalid request body")
	default:
		return err
	}
}
