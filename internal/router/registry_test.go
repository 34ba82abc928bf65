package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_MountsModulesUnderAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry(gin.New())
	reg.Use(func(c *gin.Context) { c.Set("tag", "api"); c.Next() })
	reg.Add(ModuleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("tag")) })
	}))
	assert.Equal(t, 1, reg.RegisterAll())

	serve := func(method, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		reg.Engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return w
	}

	w := serve(http.MethodGet, "/api/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "api", w.Body.String())

	w = serve(http.MethodGet, "/ping")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"route not found"`)

	w = serve(http.MethodPost, "/api/ping")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
