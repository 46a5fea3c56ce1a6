package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when a token's expiry lies in the past.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for any other verification failure.
	ErrTokenInvalid = errors.New("token invalid")
)

// SessionClaims is the payload carried by access and refresh tokens.
// UserID may be nil on legacy tokens; the middleware then resolves it by username.
type SessionClaims struct {
	UserID   *int64 `json:"userId,omitempty"`
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates the manager with the configured signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs a token embedding the identity with the given lifetime.
// Access and refresh tokens differ only in TTL.
func (m *TokenManager) Issue(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	userID := identity.UserID

	claims := SessionClaims{
		UserID:   &userID,
		UserName: identity.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks signature and expiry. A verified token does not guarantee
// a populated UserID.
func (m *TokenManager) Verify(tokenString string) (*SessionClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		// Expiry wins over signature failures: a stale token reports as
		// expired even when it was also tampered with.
		if token != nil {
			if claims, ok := token.Claims.(*SessionClaims); ok && claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
				return nil, ErrTokenExpired
			}
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
