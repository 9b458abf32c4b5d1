package backend

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSubjectFromTokenPrefersIDClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"id": "u42", "sub": "other"})

	subject, err := SubjectFromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "u42" {
		t.Fatalf("expected u42, got %q", subject)
	}
}

func TestSubjectFromTokenHandlesNumericID(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"id": 7})

	subject, err := SubjectFromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "7" {
		t.Fatalf("expected 7, got %q", subject)
	}
}

func TestSubjectFromTokenFallsBackToSub(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "u9"})

	subject, err := SubjectFromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "u9" {
		t.Fatalf("expected u9, got %q", subject)
	}
}

func TestSubjectFromTokenWithoutUserIDFails(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"role": "user"})

	if _, err := SubjectFromToken(token); !errors.Is(err, ErrNoSubject) {
		t.Fatalf("expected ErrNoSubject, got %v", err)
	}
}

func TestSubjectFromGarbageTokenFails(t *testing.T) {
	if _, err := SubjectFromToken("not-a-token"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
