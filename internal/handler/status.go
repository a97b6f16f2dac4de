package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/keremsimsek1907/nova-app/internal/model"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusHandler serves the liveness probe.
type StatusHandler struct {
	store Pinger
	now   func() time.Time
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(store Pinger) *StatusHandler {
	return &StatusHandler{store: store, now: time.Now}
}

// HandleStatus handles GET /api requests. It always answers 200; store_ready
// carries the result of a bounded ping.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	writeJSON(w, http.StatusOK, model.StatusResponse{
		Status:     "API OK",
		StoreReady: h.store.Ping(ctx) == nil,
		Time:       h.now().UTC(),
	})
}

// HandleHealth handles GET /health requests.
func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
