package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/school4u/api/internal/auth"
)

type contextKey string

const (
	ContextKeyUserID   contextKey = "userId"
	ContextKeyUsername contextKey = "username"
)

// TokenVerifier checks a bearer credential's signature and expiry.
type TokenVerifier interface {
	Verify(token string) (*auth.SessionClaims, error)
}

// IdentityResolver completes verified claims into a full identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, claims *auth.SessionClaims) (auth.Identity, error)
}

// Auth is the request gate. It extracts a token from the accessToken cookie,
// the refreshToken cookie, or the Authorization header (in that order),
// verifies it, resolves a missing user id by username, and attaches the
// identity to the request context. Identity attachment is all-or-nothing.
//
// Accepting the refresh cookie where an access token is expected keeps
// sessions alive past access expiry without an explicit refresh round trip;
// existing clients depend on it.
func Auth(tokens TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeReject(w, http.StatusUnauthorized, "No token provided",
					"Token must be provided either in cookies (accessToken) or Authorization header")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				writeReject(w, http.StatusForbidden, "Invalid token", err.Error())
				return
			}

			identity, err := resolver.Resolve(r.Context(), claims)
			if err != nil {
				if errors.Is(err, auth.ErrUserNotFound) {
					writeReject(w, http.StatusUnauthorized, "User not found",
						"Invalid token - user does not exist")
					return
				}
				// The one place a downstream fault surfaces instead of degrading.
				writeReject(w, http.StatusInternalServerError, "Authentication database error",
					"Could not verify user identity")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, identity.UserID)
			ctx = context.WithValue(ctx, ContextKeyUsername, identity.UserName)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie("accessToken"); err == nil && c.Value != "" {
		return c.Value
	}
	if c, err := r.Cookie("refreshToken"); err == nil && c.Value != "" {
		return c.Value
	}
	if header := r.Header.Get("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
		return header
	}
	return ""
}

// GetUserID returns the authenticated user id from the context.
func GetUserID(ctx context.Context) int64 {
	val, _ := ctx.Value(ContextKeyUserID).(int64)
	return val
}

// GetUsername returns the authenticated username from the context.
func GetUsername(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyUsername).(string)
	return val
}

func writeReject(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": message,
		"details": details,
	})
}
