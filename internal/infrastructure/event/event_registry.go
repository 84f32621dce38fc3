package event

import (
	"github.com/erp/addresssync/internal/domain/addresssync"
)

// RelayedEventTypes are the completion events forwarded to downstream listeners
func RelayedEventTypes() []string {
	return []string{
		addresssync.EventTypeStoreAddressUpdated,
		addresssync.EventTypeCRMAddressUpdated,
		addresssync.EventTypeCRMAddressSyncFailed,
	}
}

// RegisterAllEvents registers the address sync events with the serializer
func RegisterAllEvents(serializer *EventSerializer) {
	serializer.Register(addresssync.EventTypeCRMRecordChanged, &addresssync.CRMRecordChangedEvent{})
	serializer.Register(addresssync.EventTypeStoreAddressSaved, &addresssync.StoreAddressSavedEvent{})
	serializer.Register(addresssync.EventTypeStoreAddressUpdated, &addresssync.StoreAddressUpdatedEvent{})
	serializer.Register(addresssync.EventTypeCRMAddressUpdated, &addresssync.CRMAddressUpdatedEvent{})
	serializer.Register(addresssync.EventTypeCRMAddressSyncFailed, &addresssync.CRMAddressSyncFailedEvent{})
}
