package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/medscanhq/medscan/pkg/logger"
)

// HealthCheckHandler returns a handler usable for liveness and readiness
// probes.
//
//   - Liveness: with no dependency probes the handler returns 200 "ALIVE".
//   - Readiness: each probe runs in turn; all passing returns 200 "READY",
//     any failure returns 500 "NOT_READY".
func HealthCheckHandler(ctx context.Context, log *slog.Logger, probes ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(probes) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, probe := range probes {
			if err := probe(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
