package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/campus-social/internal/application"
	"github.com/oksasatya/campus-social/pkg/helpers"
	"github.com/oksasatya/campus-social/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the access token cookie and, when Redis is configured, requires
// the live session to carry the token's session id. Logging out or refreshing
// elsewhere invalidates older tokens.
// It sets userID, userName and userEmail in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.AccessCookie)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		if rdb != nil {
			data, err := rdb.HGetAll(c.Request.Context(), application.SessionKey(claims.UserID)).Result()
			if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
				response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
				c.Abort()
				return
			}
			c.Set("userName", data["user_name"])
			c.Set("userEmail", data["email"])
		}
		c.Next()
	}
}
