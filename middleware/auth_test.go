package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func authedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(testSecret), func(c *gin.Context) {
		id, _ := UserID(c)
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": role})
	})
	r.GET("/admin", RequireAuth(testSecret), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := authedRouter()

	if w := doGet(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing header = %d, want 401", w.Code)
	}

	expired := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 1, "role": "customer", "exp": time.Now().Add(-time.Minute).Unix(),
	})
	if w := doGet(r, "/me", expired); w.Code != http.StatusUnauthorized {
		t.Errorf("expired token = %d, want 401", w.Code)
	}

	forged := signToken(t, "wrong-secret", jwt.MapClaims{
		"user_id": 1, "role": "customer", "exp": time.Now().Add(time.Minute).Unix(),
	})
	if w := doGet(r, "/me", forged); w.Code != http.StatusUnauthorized {
		t.Errorf("forged token = %d, want 401", w.Code)
	}

	valid := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 7, "role": "customer", "exp": time.Now().Add(time.Minute).Unix(),
	})
	if w := doGet(r, "/me", valid); w.Code != http.StatusOK {
		t.Errorf("valid token = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestRequireAdmin(t *testing.T) {
	r := authedRouter()

	customer := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 7, "role": "customer", "exp": time.Now().Add(time.Minute).Unix(),
	})
	if w := doGet(r, "/admin", customer); w.Code != http.StatusForbidden {
		t.Errorf("customer on admin route = %d, want 403", w.Code)
	}

	admin := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 1, "role": "admin", "exp": time.Now().Add(time.Minute).Unix(),
	})
	if w := doGet(r, "/admin", admin); w.Code != http.StatusOK {
		t.Errorf("admin on admin route = %d, want 200", w.Code)
	}
}
