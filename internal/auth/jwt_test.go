package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager(testSecret)

	token, err := m.Issue(Identity{UserID: 42, UserName: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID == nil || *claims.UserID != 42 {
		t.Errorf("UserID = %v, want 42", claims.UserID)
	}
	if claims.UserName != "alice" {
		t.Errorf("UserName = %q, want alice", claims.UserName)
	}
}

func TestVerifyExpired(t *testing.T) {
	m := NewTokenManager(testSecret)

	token, err := m.Issue(Identity{UserID: 1, UserName: "bob"}, -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify expired token: err = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyExpiredWinsOverBadSignature(t *testing.T) {
	other := NewTokenManager("another-secret-another-secret-abc")
	token, err := other.Issue(Identity{UserID: 1, UserName: "bob"}, -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	m := NewTokenManager(testSecret)
	if _, err := m.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify: err = %v, want ErrTokenExpired regardless of signature", err)
	}
}

func TestVerifyBadSignature(t *testing.T) {
	other := NewTokenManager("another-secret-another-secret-abc")
	token, err := other.Issue(Identity{UserID: 1, UserName: "bob"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	m := NewTokenManager(testSecret)
	if _, err := m.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify: err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := NewTokenManager(testSecret)
	if _, err := m.Verify("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify: err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyLegacyTokenWithoutUserID(t *testing.T) {
	// Legacy tokens carried only the username.
	now := time.Now().UTC()
	legacy := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		UserName: "carol",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err := legacy.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	m := NewTokenManager(testSecret)
	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != nil {
		t.Errorf("UserID = %v, want nil", claims.UserID)
	}
	if claims.UserName != "carol" {
		t.Errorf("UserName = %q, want carol", claims.UserName)
	}
}
