package http

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteRawJSON writes pre-marshaled JSON, used for cache hits so the second
// read inside the TTL window returns byte-identical data.
func WriteRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// WriteError writes the route-level error shape used across the API.
func WriteError(w http.ResponseWriter, status int, message string, details string) {
	body := map[string]any{"error": message}
	if details != "" {
		body["details"] = details
	}
	WriteJSON(w, status, body)
}
