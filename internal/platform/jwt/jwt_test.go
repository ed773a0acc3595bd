package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestManager(secret, issuer string) *Manager {
	return NewManager(secret, issuer, "admin", "staff")
}

func TestGenerateAndParse(t *testing.T) {
	m := newTestManager("secret", "")
	token, err := m.Generate(7, "staff", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "staff" || claims.Issuer != "genz-ignite" || claims.Subject != "7" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := newTestManager("other", "").Parse(token); err == nil {
		t.Fatalf("expected signature error")
	}
	if _, err := newTestManager("secret", "someone-else").Parse(token); err == nil {
		t.Fatalf("expected issuer error")
	}

	expired, _ := m.Generate(7, "admin", -time.Minute)
	if _, err := m.Parse(expired); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestUnknownRoleRejected(t *testing.T) {
	m := newTestManager("secret", "")
	if _, err := m.Generate(1, "voter", time.Hour); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole from Generate, got %v", err)
	}

	// Same secret and issuer, but signed for a role this manager never issues.
	forged := NewManager("secret", "", "admin", "staff", "voter")
	token, err := forged.Generate(1, "voter", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.Parse(token); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole from Parse, got %v", err)
	}
}

func TestSubjectMustMatchUser(t *testing.T) {
	claims := Claims{
		UserID: 2,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "3",
			Issuer:    "genz-ignite",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := newTestManager("secret", "").Parse(token); err == nil {
		t.Fatalf("expected mismatched subject to be rejected")
	}
}
