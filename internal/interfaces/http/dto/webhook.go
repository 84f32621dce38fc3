package dto

import (
	"encoding/json"
	"strconv"

	domain "github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/google/uuid"
)

// EventIDHeader lets a sender supply a delivery id when the body has none
const EventIDHeader = "X-Event-ID"

// CRMPostRequest is the CRM post-write notification
type CRMPostRequest struct {
	EventID    string         `json:"event_id" binding:"omitempty,uuid"`
	Op         string         `json:"op" binding:"required"`
	ObjectName string         `json:"object_name" binding:"required"`
	ObjectID   int64          `json:"object_id" binding:"gte=0"`
	ObjectRef  map[string]any `json:"object_ref"`
}

// ToEvent converts the notification to a CRMRecordChangedEvent
func (r *CRMPostRequest) ToEvent(fallbackEventID string) *domain.CRMRecordChangedEvent {
	var address *domain.CRMAddress
	if len(r.ObjectRef) > 0 {
		address = domain.NewCRMAddressFromRecord(ObjectRefRecord(r.ObjectRef))
	}
	return domain.NewCRMRecordChangedEvent(eventID(r.EventID, fallbackEventID), r.Op, r.ObjectName, r.ObjectID, address)
}

// StoreAddressRequest is the store's customer address saved notification
type StoreAddressRequest struct {
	EventID     string `json:"event_id" binding:"omitempty,uuid"`
	UserID      int64  `json:"user_id" binding:"required,gt=0"`
	LoadAddress string `json:"load_address" binding:"required"`
}

// ToEvent converts the notification to a StoreAddressSavedEvent
func (r *StoreAddressRequest) ToEvent(fallbackEventID string) (*domain.StoreAddressSavedEvent, error) {
	addressType, err := domain.ParseAddressType(r.LoadAddress)
	if err != nil {
		return nil, err
	}
	return domain.NewStoreAddressSavedEvent(eventID(r.EventID, fallbackEventID), r.UserID, addressType), nil
}

// WebhookAcceptedResponse acknowledges a published notification
type WebhookAcceptedResponse struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
}

// ObjectRefRecord flattens a decoded JSON object into an address record.
// Scalars are rendered as the CRM would serialize them; nulls and nested values are dropped.
func ObjectRefRecord(ref map[string]any) domain.AddressRecord {
	record := make(domain.AddressRecord, len(ref))
	for k, v := range ref {
		switch val := v.(type) {
		case string:
			record[k] = val
		case float64:
			record[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case json.Number:
			record[k] = val.String()
		case bool:
			if val {
				record[k] = "1"
			} else {
				record[k] = "0"
			}
		}
	}
	return record
}

// eventID picks the body id, then the header id. Unparseable or empty ids yield uuid.Nil.
func eventID(candidates ...string) uuid.UUID {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if id, err := uuid.Parse(c); err == nil {
			return id
		}
	}
	return uuid.Nil
}
