package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("test-secret", 7, "sess-1", "staff", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error = %v", err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseToken error = %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", claims.SessionID)
	}
	if claims.Role != "staff" {
		t.Errorf("Role = %q, want staff", claims.Role)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Error("expiry not set within the requested ttl")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", 7, "sess-1", "staff", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error = %v", err)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("ParseToken accepted a token signed with a different secret")
	}
}

func TestGenerateToken_TTLFallback(t *testing.T) {
	// zero and negative ttls fall back to the default instead of minting
	// already-expired tokens
	for _, ttl := range []time.Duration{0, -time.Minute} {
		token, err := GenerateToken("test-secret", 7, "sess-1", "staff", ttl)
		if err != nil {
			t.Fatalf("GenerateToken(ttl=%v) error = %v", ttl, err)
		}
		claims, err := ParseToken("test-secret", token)
		if err != nil {
			t.Fatalf("ParseToken(ttl=%v) error = %v", ttl, err)
		}
		if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
			t.Errorf("token with ttl=%v expired on arrival", ttl)
		}
	}
}

func TestParseToken_Expired(t *testing.T) {
	claims := &Claims{
		UserID:    7,
		SessionID: "sess-1",
		Role:      "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := ParseToken("test-secret", token); err == nil {
		t.Error("ParseToken accepted an expired token")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("test-secret", "not.a.token"); err == nil {
		t.Error("ParseToken accepted malformed input")
	}
}
