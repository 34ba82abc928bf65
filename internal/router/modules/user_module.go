package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/campus-social/internal/interface/http"
	"github.com/oksasatya/campus-social/internal/interface/middleware"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

// UserModule wires sessions and profiles.
// Public: POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET|PUT /api/profile, POST /api/profile/avatar,
// GET /api/users/search, GET /api/users/:id
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := protected(rg, m.Redis, m.JWT)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
		auth.GET("/users/search", m.Handler.Search)
		auth.GET("/users/:id", m.Handler.GetUser)
	}
}

// protected returns a group behind the session check with a soft per-IP and
// per-user limit.
func protected(rg *gin.RouterGroup, rdb *redis.Client, jwt *helpers.JWTManager) *gin.RouterGroup {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, jwt))
	auth.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	return auth
}
