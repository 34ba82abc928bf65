package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/campus-social/internal/interface/http"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

type FriendshipModule struct {
	Handler *handlers.FriendshipHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewFriendshipModule(h *handlers.FriendshipHandler, rdb *redis.Client, jwt *helpers.JWTManager) *FriendshipModule {
	return &FriendshipModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *FriendshipModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.Redis, m.JWT)
	{
		auth.GET("/friends", m.Handler.List)
		auth.DELETE("/friends/:userID", m.Handler.Remove)
		auth.POST("/friends/requests", m.Handler.Request)
		auth.GET("/friends/requests", m.Handler.ListPending)
		auth.POST("/friends/requests/:userID/accept", m.Handler.Accept)
	}
}
