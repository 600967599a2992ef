package analysis_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medscanhq/medscan/modules/analysis"
	"github.com/medscanhq/medscan/modules/auth"
)

// memStorage is an in-memory Storage mirroring the mongo query semantics.
type memStorage struct {
	mu      sync.Mutex
	records []analysis.Record
}

func (m *memStorage) Create(ctx context.Context, record *analysis.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

func (m *memStorage) History(ctx context.Context) ([]analysis.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]analysis.Record, len(m.records))
	copy(out, m.records)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStorage) CategoryCounts(ctx context.Context, now time.Time) (*analysis.Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := &analysis.Counts{}
	for _, r := range m.records {
		counts.TotalCount++
		if r.CreatedAt.After(now.Add(-24 * time.Hour)) {
			counts.TodayCount++
		}
		if analysis.IsOncology(r.Results.Diagnosis) {
			counts.CancerCount++
		}
		if analysis.IsNeurology(r.Results.Diagnosis) {
			counts.NeuroCount++
		}
	}
	return counts, nil
}

func seed(storage *memStorage, diagnosis string, age time.Duration) {
	storage.records = append(storage.records, analysis.Record{
		ID:        diagnosis,
		UserEmail: "doc@hospital.org",
		Results:   analysis.Results{Diagnosis: diagnosis},
		CreatedAt: time.Now().Add(-age),
	})
}

// fakeIdentity injects a fixed user, standing in for the auth middleware.
func fakeIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := &auth.User{ID: "u1", Email: "doc@hospital.org"}
		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
	})
}

func TestCategoryCountsEndpoint(t *testing.T) {
	t.Parallel()

	storage := &memStorage{}
	seed(storage, "Lung cancer", time.Hour)
	seed(storage, "Ischemic stroke", 2*time.Hour)
	seed(storage, "Brain tumor", 48*time.Hour)
	seed(storage, "Common cold", 72*time.Hour)

	handler := analysis.NewHandler(storage).Handle()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/category-counts", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var counts analysis.Counts
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, int64(4), counts.TotalCount)
	assert.Equal(t, int64(2), counts.TodayCount)
	assert.Equal(t, int64(2), counts.CancerCount)
	assert.Equal(t, int64(2), counts.NeuroCount)
}

func TestHistoryEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()
		storage := &memStorage{}
		seed(storage, "oldest", 72*time.Hour)
		seed(storage, "newest", time.Minute)
		seed(storage, "middle", 24*time.Hour)

		handler := analysis.NewHandler(storage).Handle()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var records []analysis.Record
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
		require.Len(t, records, 3)
		assert.Equal(t, "newest", records[0].ID)
		assert.Equal(t, "middle", records[1].ID)
		assert.Equal(t, "oldest", records[2].ID)
	})

	t.Run("empty history is an empty array", func(t *testing.T) {
		t.Parallel()
		handler := analysis.NewHandler(&memStorage{}).Handle()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestCreateEndpoint(t *testing.T) {
	t.Parallel()

	newRequest := func(t *testing.T, body any) *http.Request {
		t.Helper()
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		r := httptest.NewRequest(http.MethodPost, "/", &buf)
		r.Header.Set("Content-Type", "application/json")
		return r
	}

	t.Run("persists record stamped with identity", func(t *testing.T) {
		t.Parallel()
		storage := &memStorage{}
		handler := analysis.NewHandler(storage, analysis.WithIdentityGate(fakeIdentity)).Handle()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(t, map[string]any{
			"results": map[string]any{"diagnosis": "Glioblastoma", "confidence": 0.93},
		}))
		require.Equal(t, http.StatusCreated, w.Code)

		var record analysis.Record
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, "doc@hospital.org", record.UserEmail)
		assert.Equal(t, "Glioblastoma", record.Results.Diagnosis)
		assert.WithinDuration(t, time.Now(), record.CreatedAt, time.Minute)

		require.Len(t, storage.records, 1)
	})

	t.Run("requires a diagnosis", func(t *testing.T) {
		t.Parallel()
		handler := analysis.NewHandler(&memStorage{}, analysis.WithIdentityGate(fakeIdentity)).Handle()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(t, map[string]any{"results": map[string]any{"diagnosis": "  "}}))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not mounted without identity gate", func(t *testing.T) {
		t.Parallel()
		handler := analysis.NewHandler(&memStorage{}).Handle()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(t, map[string]any{"results": map[string]any{"diagnosis": "x"}}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
