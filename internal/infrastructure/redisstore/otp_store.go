// Package redisstore keeps short-lived account state (OTP codes, request counters) in Redis.
package redisstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/campus-social/internal/domain/port"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

type OTPStore struct {
	rdb redis.UniversalClient
}

func NewOTPStore(rdb redis.UniversalClient) *OTPStore {
	return &OTPStore{rdb: rdb}
}

func keyOTP(purpose port.OTPPurpose, email string) string {
	return "otp:" + string(purpose) + ":" + strings.ToLower(email)
}

func keyOTPRequests(email string) string {
	return "otp:requests:" + strings.ToLower(email)
}

func (s *OTPStore) SaveOTP(ctx context.Context, purpose port.OTPPurpose, email, code string, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyOTP(purpose, email), code, ttl).Err()
}

func (s *OTPStore) GetOTP(ctx context.Context, purpose port.OTPPurpose, email string) (string, error) {
	code, err := s.rdb.Get(ctx, keyOTP(purpose, email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", port.ErrOTPNotFound
	}
	return code, err
}

func (s *OTPStore) DeleteOTP(ctx context.Context, purpose port.OTPPurpose, email string) error {
	return s.rdb.Del(ctx, keyOTP(purpose, email)).Err()
}

func (s *OTPStore) IncrRequests(ctx context.Context, email string, window time.Duration) (int64, error) {
	return helpers.IncrWithExpiry(ctx, s.rdb, keyOTPRequests(email), window)
}

var _ port.OTPStore = (*OTPStore)(nil)
