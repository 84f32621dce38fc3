package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// DBTracingConfig holds database tracing settings
type DBTracingConfig struct {
	DBSystem   string // reported as db.system, default "postgresql"
	LogFullSQL bool   // include bound variables in spans; dev only
}

// InstrumentDatabase registers the otelgorm plugin so every query becomes a span
func InstrumentDatabase(db *gorm.DB, tp trace.TracerProvider, cfg DBTracingConfig) error {
	dbSystem := cfg.DBSystem
	if dbSystem == "" {
		dbSystem = "postgresql"
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(dbSystem),
		otelgorm.WithTracerProvider(tp),
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}
	return nil
}
