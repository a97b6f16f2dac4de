package crypto

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("u-42", "t@x.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}
}

func TestGenerateTokenEmptySubject(t *testing.T) {
	_, err := GenerateToken("", "t@x.com", "test-secret", time.Hour)
	if err != ErrEmptySubject {
		t.Errorf("GenerateToken() error = %v, want ErrEmptySubject", err)
	}
}

func TestValidateTokenValid(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken("u-42", "t@x.com", secret, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.Subject != "u-42" {
		t.Errorf("ValidateToken() Subject = %q, want %q", claims.Subject, "u-42")
	}
	if claims.Email != "t@x.com" {
		t.Errorf("ValidateToken() Email = %q, want %q", claims.Email, "t@x.com")
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("ValidateToken() missing iat or exp")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 7*24*time.Hour {
		t.Errorf("token lifetime = %v, want 168h", got)
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("not-a-valid-token", "test-secret")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("u-42", "t@x.com", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "wrong-secret")
	if err == nil {
		t.Error("ValidateToken() expected error for wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	issued := time.Now().Add(-8 * 24 * time.Hour)
	token, err := generateTokenAt("u-42", "t@x.com", "test-secret", 7*24*time.Hour, issued)
	if err != nil {
		t.Fatalf("generateTokenAt() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "test-secret")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken for expired token", err)
	}
}

func TestValidateTokenTampered(t *testing.T) {
	token, err := GenerateToken("u-42", "t@x.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	// Swap the first signature character; the last one may only carry padding bits.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ValidateToken(tampered, "test-secret"); err == nil {
		t.Error("ValidateToken() expected error for tampered signature")
	}
}

func TestValidateTokenRejectsClaims(t *testing.T) {
	secret := "test-secret"
	now := time.Now()

	tests := []struct {
		name   string
		claims Claims
	}{
		{
			name: "wrong issuer",
			claims: Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u-42",
				Issuer:    "wrong-issuer",
				Audience:  jwt.ClaimStrings{tokenAudience},
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "wrong audience",
			claims: Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u-42",
				Issuer:    tokenIssuer,
				Audience:  jwt.ClaimStrings{"wrong-audience"},
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "missing expiry",
			claims: Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:  "u-42",
				Issuer:   tokenIssuer,
				Audience: jwt.ClaimStrings{tokenAudience},
			}},
		},
		{
			name: "missing subject",
			claims: Claims{RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				Audience:  jwt.ClaimStrings{tokenAudience},
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims)
			tokenString, err := token.SignedString([]byte(secret))
			if err != nil {
				t.Fatalf("SignedString() unexpected error: %v", err)
			}

			if _, err := ValidateToken(tokenString, secret); err != ErrInvalidToken {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	secret := "test-secret"
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u-42",
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := ValidateToken(tokenString, secret); err == nil {
		t.Error("ValidateToken() expected error for HS512 token")
	}
}
