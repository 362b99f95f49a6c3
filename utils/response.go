package utils

import (
	"encoding/json"
	"net/http"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteActionJSON writes the action-contract envelope used by the admin and
// operator dispatchers: {success?, error?, ...resultFields}.
func WriteActionJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteActionError writes {error: msg} with the given status.
func WriteActionError(w http.ResponseWriter, status int, msg string) {
	WriteActionJSON(w, status, map[string]interface{}{"error": msg})
}

// StringPtr returns a pointer to s, for nullable model columns.
func StringPtr(s string) *string {
	return &s
}
