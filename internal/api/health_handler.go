package api

import (
	"context"
	"net/http"
	"time"
)

// pingTimeout — сколько /healthz ждёт ответа хранилища.
const pingTimeout = 2 * time.Second

// Root отвечает приветствием.
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, MessageResponse{Message: "Hello World!"})
}

// Health проверяет доступность хранилища.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		JSON(w, http.StatusOK, HealthResponse{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.log(ctx).Warn("store ping failed", "error", err)
		JSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Store: err.Error()})
		return
	}

	JSON(w, http.StatusOK, HealthResponse{Status: "ok", Store: "ok"})
}

// HealthResponse — ответ /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
}
