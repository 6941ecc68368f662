package security

import (
	"testing"
	"time"
)

func TestSignAndParseUserToken(t *testing.T) {
	token, err := SignUserToken("test-secret", 42, "a@b.test", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, err := ParseUserToken("test-secret", token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "a@b.test" {
		t.Fatalf("expected email a@b.test, got %q", claims.Email)
	}
}

func TestParseUserToken_WrongSecret(t *testing.T) {
	token, err := SignUserToken("secret-a", 1, "a@b.test", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, errParse := ParseUserToken("secret-b", token); errParse == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseUserToken_Expired(t *testing.T) {
	token, err := SignUserToken("test-secret", 1, "a@b.test", -time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, errParse := ParseUserToken("test-secret", token); errParse == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "hunter23") {
		t.Fatalf("expected mismatching password to fail")
	}
}
