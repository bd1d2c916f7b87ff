package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Myakey/onlineShop-sub000/models"
)

func TestIssueAccessToken(t *testing.T) {
	user := &models.User{ID: 42, Email: "tester@example.com", Role: models.RoleAdmin}

	signed, err := IssueAccessToken("secret", user, 15*time.Minute)
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not parse: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"].(float64) != 42 {
		t.Errorf("user_id claim = %v, want 42", claims["user_id"])
	}
	if claims["email"] != "tester@example.com" {
		t.Errorf("email claim = %v", claims["email"])
	}
	if claims["role"] != "admin" {
		t.Errorf("role claim = %v, want admin", claims["role"])
	}

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	if until := time.Until(exp); until <= 0 || until > 15*time.Minute {
		t.Errorf("exp %v not within the 15 minute ttl", exp)
	}
}

func TestIssueAccessTokenWrongSecretRejected(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@example.com", Role: models.RoleCustomer}
	signed, err := IssueAccessToken("secret", user, time.Minute)
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}
	if _, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	}); err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP(6)
	if len(otp) != 6 {
		t.Fatalf("otp length = %d, want 6", len(otp))
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			t.Fatalf("otp %q contains non-digit", otp)
		}
	}
}
