package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves liveness and version information outside the API group
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	store     Pinger
}

// NewSystemHandler creates a new SystemHandler. store may be nil.
func NewSystemHandler(name, version string, store Pinger) *SystemHandler {
	return &SystemHandler{name: name, version: version, startTime: time.Now(), store: store}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Database  string `json:"database"`
}

// Register mounts the system routes on the engine root
func (h *SystemHandler) Register(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/ping", h.Ping)
}

// Health checks the store and reports uptime
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Database:  "ok",
	}
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Database = err.Error()
			c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
			return
		}
	}
	h.Success(c, resp)
}

// Ping answers without touching any dependency
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}
