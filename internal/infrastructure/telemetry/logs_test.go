package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingProcessor struct {
	mu     sync.Mutex
	bodies  []string
}

func (p *recordingProcessor) OnEmit(_ context.Context, r *sdklog.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodies = append(p.bodies, r.Body().AsString())
	return nil
}

func (p *recordingProcessor) Shutdown(context.Context) error   { return nil }
func (p *recordingProcessor) ForceFlush(context.Context) error { return nil }

func (p *recordingProcessor) Bodies() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.bodies...)
}

func TestBridgeLogger_TeesToOTEL(t *testing.T) {
	proc := &recordingProcessor{}
	p := &Providers{
		logs:   sdklog.NewLoggerProvider(sdklog.WithProcessor(proc)),
		logger: zap.NewNop(),
		config: Config{ServiceName: "addresssync"},
	}

	core, logs := observer.New(zapcore.DebugLevel)
	logger := p.BridgeLogger(zap.New(core), zapcore.InfoLevel)

	logger.Debug("debug only local")
	logger.Info("address synced")

	assert.Equal(t, 2, logs.Len(), "base core keeps every entry")
	assert.Equal(t, []string{"address synced"}, proc.Bodies(), "OTEL core honours its minimum level")
}

func TestLevelFilterCore_With(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	filtered := &levelFilterCore{Core: core, minLevel: zapcore.WarnLevel}

	child := filtered.With([]zapcore.Field{zap.String("k", "v")})

	assert.False(t, child.Enabled(zapcore.InfoLevel))
	assert.True(t, child.Enabled(zapcore.ErrorLevel))
}
