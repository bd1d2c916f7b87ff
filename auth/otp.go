package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// GenerateOTP returns a random numeric code of the given length.
func GenerateOTP(length int) string {
	digits := "0123456789"
	otp := make([]byte, length)
	for i := range otp {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			otp[i] = '0'
			continue
		}
		otp[i] = digits[n.Int64()]
	}
	return string(otp)
}

func otpKey(email string) string {
	return fmt.Sprintf("auth:otp:%s", email)
}

func storeOTP(ctx context.Context, rdb *rd.Client, email, otp string, ttl time.Duration) error {
	return rdb.Set(ctx, otpKey(email), otp, ttl).Err()
}

// checkOTP reports whether the stored code matches and removes it on success.
func checkOTP(ctx context.Context, rdb *rd.Client, email, otp string) (bool, error) {
	stored, err := rdb.Get(ctx, otpKey(email)).Result()
	if err == rd.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != otp {
		return false, nil
	}
	return true, rdb.Del(ctx, otpKey(email)).Err()
}
