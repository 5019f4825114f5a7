package service

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	InitJWTWithSecret("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("user id = %d; want 42", userID)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	InitJWTWithSecret("test-secret")

	if _, err := ParseJWT("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	InitJWTWithSecret("secret-one")
	token, err := GenerateJWT(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	InitJWTWithSecret("secret-two")
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("expected error for token signed with different secret")
	}
}
