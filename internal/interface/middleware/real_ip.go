package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CtxRealIPKey holds the resolved client address.
const CtxRealIPKey = "real_ip"

// clientIPHeaders are consulted in order. X-Forwarded-For may carry a chain;
// its left-most entry is the original client.
var clientIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// RealIP stores the client address under CtxRealIPKey. The first header that
// parses as an IP wins and c.ClientIP() is the fallback.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, resolveIP(c))
		c.Next()
	}
}

func resolveIP(c *gin.Context) string {
	ips := lo.FilterMap(clientIPHeaders, func(h string, _ int) (string, bool) {
		parsed := net.ParseIP(strings.TrimSpace(strings.Split(c.GetHeader(h), ",")[0]))
		if parsed == nil {
			return "", false
		}
		return parsed.String(), true
	})
	if len(ips) > 0 {
		return ips[0]
	}
	return c.ClientIP()
}
