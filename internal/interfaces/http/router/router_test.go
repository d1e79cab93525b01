package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	var seen []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) { seen = append(seen, name); c.Next() }
	}

	group := NewDomainGroup("test", "/test").Use(mark("group"))
	group.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	NewRouter(engine, WithAPIVersion("v2"), WithMiddleware(mark("api"))).Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v2/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, []string{"api", "group"}, seen)

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/test/ping").Code)
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }

	group := NewDomainGroup("items", "/items").
		GET("", ok).
		POST("", ok).
		PUT("/:id", ok).
		DELETE("/:id", ok)
	group.Group("notes", "/:id/notes").POST("", ok)
	NewRouter(engine).Register(group).Setup()

	assert.Equal(t, "items", group.Name())
	assert.Equal(t, "/items", group.Prefix())

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/items"},
		{http.MethodPost, "/api/v1/items"},
		{http.MethodPut, "/api/v1/items/1"},
		{http.MethodDelete, "/api/v1/items/1"},
		{http.MethodPost, "/api/v1/items/1/notes"},
	} {
		w := serve(engine, tc.method, tc.path)
		assert.Equal(t, http.StatusOK, w.Code, tc.method+" "+tc.path)
		assert.Equal(t, tc.method, w.Body.String())
	}
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(EngineConfig{
		HTTP:        config.HTTPConfig{MaxBodySize: 1 << 20},
		ServiceName: "carpentry-test",
		Logger:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	engine.GET("/panic", func(c *gin.Context) { panic("boom") })
	engine.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, http.MethodGet, "/ok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	w = serve(engine, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
}
