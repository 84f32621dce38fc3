package addresssync

import (
	"context"
	"time"

	domain "github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/domain/shared"
	"go.uber.org/zap"
)

// CRMRecordChangedHandler runs SyncFromCRM for CRM change notifications.
// It never returns an error so the dispatching save is not disturbed.
type CRMRecordChangedHandler struct {
	sync     *Synchronizer
	logger   *zap.Logger
	observer Observer
}

// NewCRMRecordChangedHandler creates a CRMRecordChangedHandler
func NewCRMRecordChangedHandler(sync *Synchronizer, logger *zap.Logger, opts ...HandlerOption) *CRMRecordChangedHandler {
	o := applyHandlerOptions(opts)
	return &CRMRecordChangedHandler{sync: sync, logger: logger, observer: o.observer}
}

// EventTypes returns the event types this handler is interested in
func (h *CRMRecordChangedHandler) EventTypes() []string {
	return []string{domain.EventTypeCRMRecordChanged}
}

// Handle processes a CRMRecordChangedEvent
func (h *CRMRecordChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*domain.CRMRecordChangedEvent)
	if !ok {
		h.logger.Warn("unexpected event type",
			zap.String("expected", domain.EventTypeCRMRecordChanged),
			zap.String("actual", event.EventType()),
		)
		return nil
	}

	start := time.Now()
	outcome := h.sync.SyncFromCRM(ctx, changed.Op, changed.ObjectName, changed.ObjectID, changed.Address)
	h.observer.ObserveSync(ctx, domain.DirectionCRMToStore, outcome, time.Since(start))
	h.logger.Debug("crm change handled",
		zap.String("event_id", event.EventID().String()),
		zap.String("status", string(outcome.Status)),
		zap.String("reason", outcome.Reason),
	)
	return nil
}

// StoreAddressSavedHandler runs SyncFromStore for store address saves
type StoreAddressSavedHandler struct {
	sync     *Synchronizer
	logger   *zap.Logger
	observer Observer
}

// NewStoreAddressSavedHandler creates a StoreAddressSavedHandler
func NewStoreAddressSavedHandler(sync *Synchronizer, logger *zap.Logger, opts ...HandlerOption) *StoreAddressSavedHandler {
	o := applyHandlerOptions(opts)
	return &StoreAddressSavedHandler{sync: sync, logger: logger, observer: o.observer}
}

// EventTypes returns the event types this handler is interested in
func (h *StoreAddressSavedHandler) EventTypes() []string {
	return []string{domain.EventTypeStoreAddressSaved}
}

// Handle processes a StoreAddressSavedEvent
func (h *StoreAddressSavedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	saved, ok := event.(*domain.StoreAddressSavedEvent)
	if !ok {
		h.logger.Warn("unexpected event type",
			zap.String("expected", domain.EventTypeStoreAddressSaved),
			zap.String("actual", event.EventType()),
		)
		return nil
	}

	start := time.Now()
	outcome := h.sync.SyncFromStore(ctx, saved.UserID, saved.AddressType)
	h.observer.ObserveSync(ctx, domain.DirectionStoreToCRM, outcome, time.Since(start))
	h.logger.Debug("store address save handled",
		zap.String("event_id", event.EventID().String()),
		zap.String("status", string(outcome.Status)),
		zap.String("reason", outcome.Reason),
	)
	return nil
}

var (
	_ shared.EventHandler = (*CRMRecordChangedHandler)(nil)
	_ shared.EventHandler = (*StoreAddressSavedHandler)(nil)
)
