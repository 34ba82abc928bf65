package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-social/internal/domain/port"
)

func testStore(t *testing.T) *OTPStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewOTPStore(rdb)
}

func TestOTPStore_SaveGetDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	email := uuid.NewString() + "@isbstudent.comsats.edu.pk"

	_, err := s.GetOTP(ctx, port.OTPVerify, email)
	assert.ErrorIs(t, err, port.ErrOTPNotFound)

	require.NoError(t, s.SaveOTP(ctx, port.OTPVerify, email, "123456", time.Minute))
	code, err := s.GetOTP(ctx, port.OTPVerify, email)
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	_, err = s.GetOTP(ctx, port.OTPReset, email)
	assert.ErrorIs(t, err, port.ErrOTPNotFound)

	require.NoError(t, s.DeleteOTP(ctx, port.OTPVerify, email))
	_, err = s.GetOTP(ctx, port.OTPVerify, email)
	assert.ErrorIs(t, err, port.ErrOTPNotFound)
}

func TestOTPStore_IncrRequests(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	email := uuid.NewString() + "@isbstudent.comsats.edu.pk"

	for want := int64(1); want <= 3; want++ {
		n, err := s.IncrRequests(ctx, email, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	ttl, err := s.rdb.PTTL(ctx, keyOTPRequests(email)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
