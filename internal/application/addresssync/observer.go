package addresssync

import (
	"context"
	"time"

	domain "github.com/erp/addresssync/internal/domain/addresssync"
)

// Observer is told about every completed sync run
type Observer interface {
	ObserveSync(ctx context.Context, direction domain.Direction, outcome domain.Outcome, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveSync(context.Context, domain.Direction, domain.Outcome, time.Duration) {}

// HandlerOption configures an event handler
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	observer Observer
}

// WithObserver reports sync outcomes to o
func WithObserver(o Observer) HandlerOption {
	return func(opts *handlerOptions) {
		if o != nil {
			opts.observer = o
		}
	}
}

func applyHandlerOptions(opts []HandlerOption) handlerOptions {
	o := handlerOptions{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
