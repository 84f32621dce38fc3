package addresssync

import (
	"strconv"

	"github.com/erp/addresssync/internal/domain/shared"
	"github.com/google/uuid"
)

// Inbound event types
const (
	EventTypeCRMRecordChanged  = "crm.record.changed"
	EventTypeStoreAddressSaved = "store.address.saved"
)

// Outbound event types
const (
	EventTypeStoreAddressUpdated  = "addresssync.store_address.updated"
	EventTypeCRMAddressUpdated    = "addresssync.crm_address.updated"
	EventTypeCRMAddressSyncFailed = "addresssync.crm_address.sync_failed"
)

// Aggregate types
const (
	AggregateTypeCRMAddress    = "CRMAddress"
	AggregateTypeStoreCustomer = "StoreCustomer"
)

// CRM operation and entity kinds
const (
	OpEdit            = "edit"
	ObjectNameAddress = "Address"
)

// CRMRecordChangedEvent is raised when any CRM record is created, edited or deleted
type CRMRecordChangedEvent struct {
	shared.BaseDomainEvent
	Op         string      `json:"op"`
	ObjectName string      `json:"object_name"`
	ObjectID   int64       `json:"object_id"`
	Address    *CRMAddress `json:"object_ref,omitempty"`
}

// NewCRMRecordChangedEvent creates a CRMRecordChangedEvent. A nil id generates one.
func NewCRMRecordChangedEvent(id uuid.UUID, op, objectName string, objectID int64, address *CRMAddress) *CRMRecordChangedEvent {
	return &CRMRecordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEventWithID(id, EventTypeCRMRecordChanged, objectName, strconv.FormatInt(objectID, 10)),
		Op:              op,
		ObjectName:      objectName,
		ObjectID:        objectID,
		Address:         address,
	}
}

// StoreAddressSavedEvent is raised when a store customer saves an address
type StoreAddressSavedEvent struct {
	shared.BaseDomainEvent
	UserID      int64       `json:"user_id"`
	AddressType AddressType `json:"address_type"`
}

// NewStoreAddressSavedEvent creates a StoreAddressSavedEvent. A nil id generates one.
func NewStoreAddressSavedEvent(id uuid.UUID, userID int64, addressType AddressType) *StoreAddressSavedEvent {
	return &StoreAddressSavedEvent{
		BaseDomainEvent: shared.NewBaseDomainEventWithID(id, EventTypeStoreAddressSaved, AggregateTypeStoreCustomer, strconv.FormatInt(userID, 10)),
		UserID:          userID,
		AddressType:     addressType,
	}
}

// StoreAddressUpdatedEvent is published after a CRM edit was applied to the store
type StoreAddressUpdatedEvent struct {
	shared.BaseDomainEvent
	UserID      int64         `json:"user_id"`
	AddressType AddressType   `json:"address_type"`
	Fields      AddressRecord `json:"fields"`
}

// NewStoreAddressUpdatedEvent creates a StoreAddressUpdatedEvent
func NewStoreAddressUpdatedEvent(userID int64, addressType AddressType, fields AddressRecord) *StoreAddressUpdatedEvent {
	return &StoreAddressUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreAddressUpdated, AggregateTypeStoreCustomer, strconv.FormatInt(userID, 10)),
		UserID:          userID,
		AddressType:     addressType,
		Fields:          fields,
	}
}

// CRMAddressUpdatedEvent is published after a store address was written to the CRM
type CRMAddressUpdatedEvent struct {
	shared.BaseDomainEvent
	ContactID   int64       `json:"contact_id"`
	UserID      int64       `json:"user_id"`
	AddressType AddressType `json:"address_type"`
	Address     *CRMAddress `json:"address"`
}

// NewCRMAddressUpdatedEvent creates a CRMAddressUpdatedEvent
func NewCRMAddressUpdatedEvent(contactID, userID int64, addressType AddressType, address *CRMAddress) *CRMAddressUpdatedEvent {
	return &CRMAddressUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCRMAddressUpdated, AggregateTypeCRMAddress, strconv.FormatInt(contactID, 10)),
		ContactID:       contactID,
		UserID:          userID,
		AddressType:     addressType,
		Address:         address,
	}
}

// CRMAddressSyncFailedEvent is published when the CRM write did not succeed
type CRMAddressSyncFailedEvent struct {
	shared.BaseDomainEvent
	ContactID   int64         `json:"contact_id"`
	UserID      int64         `json:"user_id"`
	AddressType AddressType   `json:"address_type"`
	Reason      string        `json:"reason"`
	Params      AddressRecord `json:"params"`
}

// NewCRMAddressSyncFailedEvent creates a CRMAddressSyncFailedEvent
func NewCRMAddressSyncFailedEvent(contactID, userID int64, addressType AddressType, reason string, params AddressRecord) *CRMAddressSyncFailedEvent {
	return &CRMAddressSyncFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCRMAddressSyncFailed, AggregateTypeCRMAddress, strconv.FormatInt(contactID, 10)),
		ContactID:       contactID,
		UserID:          userID,
		AddressType:     addressType,
		Reason:          reason,
		Params:          params,
	}
}
