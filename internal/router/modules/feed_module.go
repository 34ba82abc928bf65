package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/campus-social/internal/interface/http"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

type FeedModule struct {
	Handler *handlers.FeedHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewFeedModule(h *handlers.FeedHandler, rdb *redis.Client, jwt *helpers.JWTManager) *FeedModule {
	return &FeedModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *FeedModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.Redis, m.JWT)
	{
		auth.GET("/feed", m.Handler.GetFeed)
		auth.GET("/users/:id/posts", m.Handler.GetUserPosts)
	}
}
