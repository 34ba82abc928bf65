package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/campus-social/internal/interface/http"
	"github.com/oksasatya/campus-social/internal/interface/middleware"
)

// AuthModule serves registration, email verification and password reset.
// All routes are public and rate limited per IP and path.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	issueLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	confirmLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", issueLimiter, m.Handler.Register)
	rg.POST("/auth/otp/verify", confirmLimiter, m.Handler.VerifyOTP)
	rg.POST("/auth/otp/resend", issueLimiter, m.Handler.ResendOTP)
	rg.POST("/auth/password/reset/request", issueLimiter, m.Handler.ResetRequest)
	rg.POST("/auth/password/reset/confirm", confirmLimiter, m.Handler.ResetConfirm)
}
