package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// RegisterRoutes registers all API routes with the given router. Every kind
// gets GET (list) and POST (create) on /api/<kind path>; other methods on
// those paths get 405.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.HandleRoot).Methods("GET")
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")

	for _, kind := range domain.Kinds() {
		path := "/api/" + kind.Path
		router.HandleFunc(path, h.HandleList(kind)).Methods("GET")
		router.HandleFunc(path, h.HandleCreate(kind)).Methods("POST")
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.log.WithFields(requestFields(r)).Warn("No route found")
		WriteJSONError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.log.WithFields(requestFields(r)).Warn("Method not allowed")
		WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
