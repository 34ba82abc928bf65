package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/campus-social/internal/interface/http"
	"github.com/oksasatya/campus-social/internal/interface/middleware"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

type PostModule struct {
	Handler *handlers.PostHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, rdb *redis.Client, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	// Uploads are heavier than the rest of the API.
	createLimiter := middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByUserID(), nil)

	auth := protected(rg, m.Redis, m.JWT)
	{
		auth.POST("/posts", createLimiter, m.Handler.Create)
		auth.GET("/posts/:id", m.Handler.Get)
		auth.PATCH("/posts/:id", m.Handler.Update)
		auth.DELETE("/posts/:id", m.Handler.Delete)
		auth.POST("/posts/:id/like", m.Handler.ToggleLike)
		auth.GET("/posts/:id/comments", m.Handler.ListComments)
		auth.POST("/posts/:id/comments", m.Handler.CreateComment)
	}
}
