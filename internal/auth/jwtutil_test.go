package auth

import (
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	secret := []byte("test-secret")
	claims := map[string]any{
		"sub": "user-1",
		"exp": time.Now().Add(time.Minute).Unix(),
	}

	token, err := SignHS256(claims, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parsed, err := ParseAndVerifyHS256(token, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub, _ := parsed["sub"].(string); sub != "user-1" {
		t.Fatalf("expected sub user-1, got %v", parsed["sub"])
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := SignHS256(map[string]any{"sub": "user-1"}, []byte("secret-a"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, []byte("secret-b")); err == nil {
		t.Fatalf("expected signature mismatch")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, err := SignHS256(map[string]any{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}, []byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, []byte("secret")); err == nil {
		t.Fatalf("expected expired token rejection")
	}
}
