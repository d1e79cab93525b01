package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig tunes SQL spans
type DBTracingConfig struct {
	DBSystem        string // "postgresql" or "sqlite"
	LogFullSQL      bool   // keep bound variables in statements; development only
	SlowQueryThresh time.Duration
	TracerProvider  trace.TracerProvider // defaults to the global provider
}

// DBTracingPlugin is a gorm.Plugin that installs otelgorm and tags slow
// statements on the span otelgorm opened.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates the plugin; a zero threshold means 200ms
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Name implements gorm.Plugin
func (p *DBTracingPlugin) Name() string {
	return "carpentry:db_tracing"
}

// Initialize implements gorm.Plugin
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error {
	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if p.config.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(p.config.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	err := errors.Join(
		cb.Create().Before("gorm:create").Register("carpentry:start_create", markStart),
		cb.Create().After("gorm:create").Register("carpentry:slow_create", p.afterStatement),
		cb.Query().Before("gorm:query").Register("carpentry:start_query", markStart),
		cb.Query().After("gorm:query").Register("carpentry:slow_query", p.afterStatement),
		cb.Update().Before("gorm:update").Register("carpentry:start_update", markStart),
		cb.Update().After("gorm:update").Register("carpentry:slow_update", p.afterStatement),
		cb.Delete().Before("gorm:delete").Register("carpentry:start_delete", markStart),
		cb.Delete().After("gorm:delete").Register("carpentry:slow_delete", p.afterStatement),
		cb.Row().Before("gorm:row").Register("carpentry:start_row", markStart),
		cb.Row().After("gorm:row").Register("carpentry:slow_row", p.afterStatement),
		cb.Raw().Before("gorm:raw").Register("carpentry:start_raw", markStart),
		cb.Raw().After("gorm:raw").Register("carpentry:slow_raw", p.afterStatement),
	)
	if err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.String("db_system", p.config.DBSystem),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

type startTimeKey struct{}

func markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, startTimeKey{}, time.Now())
	}
}

func (p *DBTracingPlugin) afterStatement(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))

	start, ok := ctx.Value(startTimeKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(attribute.Bool("db.slow_query", true))
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
		p.logger.Warn("slow query",
			zap.String("table", db.Statement.Table),
			zap.Duration("elapsed", elapsed),
		)
	}
}
