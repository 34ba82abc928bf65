package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/campus-social/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthModule reports liveness at /healthz and dependency readiness at /readyz.
type HealthModule struct {
	DB    Pinger
	Redis *redis.Client
}

func NewHealthModule(db Pinger, rdb *redis.Client) *HealthModule {
	return &HealthModule{DB: db, Redis: rdb}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "alive", nil)
	})
	rg.GET("/readyz", m.ready)
}

func (m *HealthModule) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true
	if m.DB != nil {
		if err := m.DB.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}
	if m.Redis != nil {
		if err := m.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}
	if !healthy {
		response.Error[any](c, http.StatusServiceUnavailable, "not ready", checks)
		return
	}
	response.Success(c, http.StatusOK, checks, "ready", nil)
}
