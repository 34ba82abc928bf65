package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/helpers"
	"github.com/oksasatya/campus-social/pkg/metrics"
	"github.com/oksasatya/campus-social/pkg/response"
)

// ipFromCtx returns the address set by RealIP, falling back to "unknown".
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// KeyByIP limits by client address.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath limits by client address per route.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID limits by the authenticated user, or by address for anonymous calls.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			return "rl:user:anon:ip:" + ipFromCtx(c)
		}
		return "rl:user:" + uid
	}
}

type AllowFunc func(*gin.Context) bool // return true for bypass limit

// WindowCounter counts hits on a key inside a fixed window and reports the
// time left in it.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type redisCounter struct{ rdb *redis.Client }

func (r redisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	return helpers.HitWindow(ctx, r.rdb, key, window)
}

// RateLimit limits with a Redis fixed window. A nil client disables limiting.
func RateLimit(rdb *redis.Client, maxReq int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return RateLimitWith(redisCounter{rdb}, maxReq, window, keyFn, allow)
}

// RateLimitWith sets the X-RateLimit-* headers and answers 429 with Retry-After
// once a key exceeds maxReq in window. Preflight requests and allowed requests
// pass untouched. Counter errors fail open.
func RateLimitWith(counter WindowCounter, maxReq int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if counter == nil || maxReq <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		count, ttl, err := counter.Hit(c.Request.Context(), keyFn(c), window)
		if err != nil {
			c.Next()
			return
		}

		resetSec := int((ttl + time.Second - 1) / time.Second)
		c.Header("X-RateLimit-Limit", strconv.Itoa(maxReq))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(maxReq-int(count), 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if int(count) > maxReq {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			metrics.RateLimited.WithLabelValues(normalizePath(c)).Inc()
			response.FromError(c, apperror.RateLimited("rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}
