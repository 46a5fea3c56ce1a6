package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Recover answers panics with a sanitized 500 carrying a generated request id
// for correlation. Panic details are only echoed to the client outside
// production; the full stack always goes to the log.
func Recover(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestID := uuid.NewString()
					log.Error().
						Interface("panic", rec).
						Str("request_id", requestID).
						Str("path", r.URL.Path).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")
					writeRecoverError(w, requestID, rec, production)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writeRecoverError(w http.ResponseWriter, requestID string, rec any, production bool) {
	body := map[string]any{
		"error":     "Internal server error",
		"requestId": requestID,
	}
	if !production {
		body["details"] = fmt.Sprint(rec)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(body)
}
