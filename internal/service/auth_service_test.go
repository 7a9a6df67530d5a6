package service

import (
	"testing"
)

func TestLoginAndValidate(t *testing.T) {
	t.Setenv("AUTH_USERNAME", "owner")
	t.Setenv("AUTH_PASSWORD", "s3cret")
	t.Setenv("JWT_SECRET", "test-signing-key")

	svc := NewAuthService()

	resp, err := svc.Login("owner", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if resp.UserID != "user_owner" {
		t.Errorf("expected stable user id user_owner, got %q", resp.UserID)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "user_owner" {
		t.Errorf("unexpected claims user id %q", claims.UserID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("AUTH_USERNAME", "owner")
	t.Setenv("AUTH_PASSWORD", "s3cret")

	svc := NewAuthService()

	if _, err := svc.Login("owner", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("stranger", "s3cret"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-signing-key")
	svc := NewAuthService()

	if _, err := svc.ValidateToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "key-one")
	issuer := NewAuthService()
	resp, err := issuer.Login("admin", "password123")
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "key-two")
	verifier := NewAuthService()
	if _, err := verifier.ValidateToken(resp.Token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
