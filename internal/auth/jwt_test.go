package auth

import (
	"testing"
	"time"

	"brewhire/config"
	"brewhire/internal/domain"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "brewhire",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	tok, err := GenerateAccessToken(cfg, 42, "pro@example.com", domain.RoleProfessional)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ParseAccessToken(cfg, tok)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "pro@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != domain.RoleProfessional {
		t.Errorf("Role = %q, want %q", claims.Role, domain.RoleProfessional)
	}
	if claims.Issuer != "brewhire" {
		t.Errorf("Issuer = %q, want brewhire", claims.Issuer)
	}
}

func TestParseAccessTokenRejections(t *testing.T) {
	cfg := testJWTConfig()

	access, err := GenerateAccessToken(cfg, 1, "c@example.com", domain.RoleCandidate)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	refresh, err := GenerateRefreshToken(cfg, 1)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	otherSecret := testJWTConfig()
	otherSecret.AccessSecret = "someone-else"

	otherIssuer := testJWTConfig()
	otherIssuer.Issuer = "not-brewhire"

	expired := testJWTConfig()
	expired.AccessExpiry = -time.Minute
	expiredTok, err := GenerateAccessToken(expired, 1, "c@example.com", domain.RoleCandidate)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	cases := map[string]struct {
		cfg   *config.JWTConfig
		token string
	}{
		"wrong secret":            {otherSecret, access},
		"wrong issuer":            {otherIssuer, access},
		"expired":                 {cfg, expiredTok},
		"refresh token as access": {cfg, refresh},
		"garbage":                 {cfg, "not.a.token"},
	}
	for name, tc := range cases {
		if _, err := ParseAccessToken(tc.cfg, tc.token); err != ErrInvalidToken {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}
