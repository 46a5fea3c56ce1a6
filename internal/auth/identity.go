package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/school4u/api/internal/repo"
)

var (
	// ErrUserNotFound means the token's username matched no stored user.
	ErrUserNotFound = errors.New("user not found")
)

// Identity is the authenticated principal attached to a request.
// It lives for the duration of one request and is never persisted.
type Identity struct {
	UserID   int64
	UserName string
}

type userLookup interface {
	GetUserByUsername(ctx context.Context, username string) (repo.User, error)
}

// Resolver completes a verified token's claims into a full identity.
// Kept separate from the HTTP gate so it can be exercised without requests.
type Resolver struct {
	users userLookup
}

// NewResolver creates a resolver backed by the user store.
func NewResolver(users userLookup) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the identity for verified claims. When the token carries no
// user id, the username is looked up; zero matches yield ErrUserNotFound and a
// store failure is returned as-is for the caller to surface.
func (r *Resolver) Resolve(ctx context.Context, claims *SessionClaims) (Identity, error) {
	if claims.UserID != nil {
		return Identity{UserID: *claims.UserID, UserName: claims.UserName}, nil
	}

	if claims.UserName == "" {
		return Identity{}, ErrUserNotFound
	}

	user, err := r.users.GetUserByUsername(ctx, claims.UserName)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Identity{}, ErrUserNotFound
		}
		return Identity{}, fmt.Errorf("resolve identity: %w", err)
	}

	return Identity{UserID: user.ID, UserName: user.Username}, nil
}
