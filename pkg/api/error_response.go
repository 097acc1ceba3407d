package api

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body of a successful create
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes v as JSON with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes a JSON error response with the given status code and message
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}
