package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Attribute keys for sync metrics
var (
	AttrDirection   = attribute.Key("sync.direction")
	AttrStatus      = attribute.Key("sync.status")
	AttrReason      = attribute.Key("sync.reason")
	AttrAddressType = attribute.Key("address.type")
)

// SyncDurationBuckets are bucket boundaries in seconds. A sync run makes a
// handful of HTTP round trips.
var SyncDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// SyncMetrics records sync outcomes. It satisfies the application Observer.
type SyncMetrics struct {
	runs          metric.Int64Counter
	fieldsWritten metric.Int64Counter
	fieldsSkipped metric.Int64Counter
	duration      metric.Float64Histogram
}

// NewSyncMetrics creates the instruments on meter
func NewSyncMetrics(meter metric.Meter) (*SyncMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	runs, err := meter.Int64Counter("addresssync_runs_total",
		metric.WithDescription("Sync runs by direction and outcome"),
		metric.WithUnit("{runs}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter addresssync_runs_total: %w", err)
	}

	written, err := meter.Int64Counter("addresssync_fields_written_total",
		metric.WithDescription("Address fields written to the target system"),
		metric.WithUnit("{fields}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter addresssync_fields_written_total: %w", err)
	}

	skipped, err := meter.Int64Counter("addresssync_fields_skipped_total",
		metric.WithDescription("Address fields that could not be translated or written"),
		metric.WithUnit("{fields}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter addresssync_fields_skipped_total: %w", err)
	}

	duration, err := meter.Float64Histogram("addresssync_run_duration_seconds",
		metric.WithDescription("Duration of a sync run"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(SyncDurationBuckets...))
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram addresssync_run_duration_seconds: %w", err)
	}

	return &SyncMetrics{
		runs:          runs,
		fieldsWritten: written,
		fieldsSkipped: skipped,
		duration:      duration,
	}, nil
}

// ObserveSync records one sync run
func (m *SyncMetrics) ObserveSync(ctx context.Context, direction addresssync.Direction, outcome addresssync.Outcome, elapsed time.Duration) {
	base := []attribute.KeyValue{
		AttrDirection.String(string(direction)),
		AttrStatus.String(string(outcome.Status)),
	}

	runAttrs := base
	if outcome.Reason != "" && outcome.Status == addresssync.OutcomeSkipped {
		runAttrs = append(runAttrs[:len(base):len(base)], AttrReason.String(outcome.Reason))
	}
	m.runs.Add(ctx, 1, metric.WithAttributes(runAttrs...))
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(base...))

	if outcome.AddressType != "" {
		fieldAttrs := metric.WithAttributes(
			AttrDirection.String(string(direction)),
			AttrAddressType.String(string(outcome.AddressType)),
		)
		if n := len(outcome.FieldsWritten); n > 0 {
			m.fieldsWritten.Add(ctx, int64(n), fieldAttrs)
		}
		if n := len(outcome.FieldsSkipped); n > 0 {
			m.fieldsSkipped.Add(ctx, int64(n), fieldAttrs)
		}
	}
}
