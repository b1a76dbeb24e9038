package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthResponse is the health probe payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Clients   int       `json:"progress_clients"`
}

// Render implements render.Renderer.
func (h *HealthResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusOK)
	return nil
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, &HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Clients:   h.hub.ClientCount(),
	})
}
