package api

import (
	"net/http"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Store   map[string]interface{} `json:"store,omitempty"`
}

// HandleHealth handles GET requests to the health check endpoint. Backends
// that keep counters (the in-memory engine) report them under "store".
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "bloodbank is running",
		Store:   h.records.Stats(),
	})
}

// HandleRoot answers GET / so a browser pointed at the service sees it is up.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Blood Bank API is running"))
}
