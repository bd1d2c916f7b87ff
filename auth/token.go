package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	rd "github.com/redis/go-redis/v9"

	"github.com/Myakey/onlineShop-sub000/models"
)

// IssueAccessToken signs a short-lived HS256 token carrying user id and role.
func IssueAccessToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func generateRandomToken(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

var ErrRefreshTokenInvalid = errors.New("refresh token invalid or expired")

// RefreshStore keeps opaque refresh tokens in Redis with an expiry, so they
// survive restarts and work across instances.
type RefreshStore struct {
	rdb *rd.Client
	ttl time.Duration
}

func NewRefreshStore(rdb *rd.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{rdb: rdb, ttl: ttl}
}

func refreshKey(token string) string {
	return fmt.Sprintf("auth:refresh:%s", token)
}

// Issue creates and stores a new refresh token for the user.
func (s *RefreshStore) Issue(ctx context.Context, userID uint) (string, error) {
	token, err := generateRandomToken(32)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, refreshKey(token), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume validates a refresh token and deletes it, so every token is usable
// exactly once (rotation).
func (s *RefreshStore) Consume(ctx context.Context, token string) (uint, error) {
	userID, err := s.rdb.GetDel(ctx, refreshKey(token)).Uint64()
	if err == rd.Nil {
		return 0, ErrRefreshTokenInvalid
	}
	if err != nil {
		return 0, err
	}
	return uint(userID), nil
}

// Revoke deletes a refresh token, e.g. on logout.
func (s *RefreshStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKey(token)).Err()
}
