package token

import (
	"errors"
	"testing"
)

const secret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	tok, err := GenerateJWT(7, RoleScorer, secret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	claims, err := ValidateJWT(tok, secret)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != 7 || claims.Role != RoleScorer || claims.Issuer != Issuer {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateRejects(t *testing.T) {
	good, err := GenerateJWT(7, RoleAdmin, secret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	expired, err := GenerateJWT(7, RoleAdmin, secret, -1)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateJWT(expired, secret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired token: err = %v", err)
	}
	if _, err := ValidateJWT(good, "other-secret"); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("wrong secret: err = %v", err)
	}
	if _, err := ValidateJWT("not.a.token", secret); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("garbage: err = %v", err)
	}
	if _, err := ValidateJWT("", secret); err == nil {
		t.Error("empty token accepted")
	}
}

func TestGenerateUnknownRole(t *testing.T) {
	if _, err := GenerateJWT(1, "player", secret, 15); err == nil {
		t.Error("unknown role accepted")
	}
}
