package router

import (
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/carpentry/backend/internal/infrastructure/logger"
	"github.com/carpentry/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// EngineConfig carries what the shared middleware stack needs
type EngineConfig struct {
	HTTP           config.HTTPConfig
	ServiceName    string
	Tracing        bool
	TracerProvider trace.TracerProvider
	Logger         *zap.Logger
}

// NewEngine returns a gin engine with recovery, request ids, tracing,
// request logging, security headers, CORS and the body limit installed.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	if err := middleware.SetupValidator(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName:    cfg.ServiceName,
			Enabled:        cfg.Tracing,
			TracerProvider: cfg.TracerProvider,
		}),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORS(cfg.HTTP),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	return engine, nil
}
