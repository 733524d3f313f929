package jwt

import (
	"testing"
	"time"
)

func TestSignParseRoundTrip(t *testing.T) {
	token, err := Sign("user-123", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("user id = %q", claims.UserID)
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := Sign("user-123", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Parse(token); err == nil {
		t.Fatal("expired token parsed without error")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse("not-a-token"); err == nil {
		t.Fatal("garbage token parsed without error")
	}
}
