package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumTotal(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewSyncMetrics_NilMeter(t *testing.T) {
	_, err := NewSyncMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestSyncMetrics_ObserveSync(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewSyncMetrics(provider.Meter("addresssync"))
	require.NoError(t, err)

	ctx := context.Background()
	m.ObserveSync(ctx, addresssync.DirectionCRMToStore, addresssync.Outcome{
		Status:        addresssync.OutcomeApplied,
		AddressType:   addresssync.AddressTypeBilling,
		FieldsWritten: []string{"billing_city", "billing_postcode"},
		FieldsSkipped: []string{"billing_state"},
	}, 120*time.Millisecond)
	m.ObserveSync(ctx, addresssync.DirectionStoreToCRM, addresssync.Skipped(addresssync.SkipFlagDisabled), time.Millisecond)

	metrics := collect(t, reader)

	assert.Equal(t, int64(2), sumTotal(t, metrics["addresssync_runs_total"]))
	assert.Equal(t, int64(2), sumTotal(t, metrics["addresssync_fields_written_total"]))
	assert.Equal(t, int64(1), sumTotal(t, metrics["addresssync_fields_skipped_total"]))

	hist, ok := metrics["addresssync_run_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestSyncMetrics_SkipReasonIsAnAttribute(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewSyncMetrics(provider.Meter("addresssync"))
	require.NoError(t, err)

	m.ObserveSync(context.Background(), addresssync.DirectionCRMToStore,
		addresssync.Skipped(addresssync.SkipIdentityNotLinked), time.Millisecond)

	sum := collect(t, reader)["addresssync_runs_total"].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	reason, ok := sum.DataPoints[0].Attributes.Value(AttrReason)
	require.True(t, ok)
	assert.Equal(t, addresssync.SkipIdentityNotLinked, reason.AsString())
}
