package addresssync

import (
	"fmt"
	"strings"
)

// AddressType is the store-side location classifier
type AddressType string

const (
	// AddressTypeBilling is the customer's billing address
	AddressTypeBilling AddressType = "billing"
	// AddressTypeShipping is the customer's shipping address
	AddressTypeShipping AddressType = "shipping"
)

// AllAddressTypes returns the classifiers in reverse-lookup order
func AllAddressTypes() []AddressType {
	return []AddressType{AddressTypeBilling, AddressTypeShipping}
}

// IsValid returns true if the address type is known
func (t AddressType) IsValid() bool {
	switch t {
	case AddressTypeBilling, AddressTypeShipping:
		return true
	default:
		return false
	}
}

// String returns the string representation of AddressType
func (t AddressType) String() string {
	return string(t)
}

// ParseAddressType parses a classifier as sent by the store
func ParseAddressType(s string) (AddressType, error) {
	t := AddressType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddressType, s)
	}
	return t, nil
}

// Default CRM location types for the two classifiers
const (
	DefaultBillingLocationTypeID  int64 = 5
	DefaultShippingLocationTypeID int64 = 1
)

// LocationTypeMap maps store classifiers to CRM location_type_id values.
// It is total over AllAddressTypes and injective.
type LocationTypeMap struct {
	ids map[AddressType]int64
}

// NewLocationTypeMap creates a validated mapping
func NewLocationTypeMap(billingID, shippingID int64) (LocationTypeMap, error) {
	if billingID <= 0 || shippingID <= 0 {
		return LocationTypeMap{}, ErrInvalidLocationTypeID
	}
	if billingID == shippingID {
		return LocationTypeMap{}, fmt.Errorf("%w: both classifiers map to %d", ErrDuplicateLocationTypeID, billingID)
	}
	return LocationTypeMap{
		ids: map[AddressType]int64{
			AddressTypeBilling:  billingID,
			AddressTypeShipping: shippingID,
		},
	}, nil
}

// DefaultLocationTypeMap returns the stock CRM mapping (Billing=5, Home=1)
func DefaultLocationTypeMap() LocationTypeMap {
	m, _ := NewLocationTypeMap(DefaultBillingLocationTypeID, DefaultShippingLocationTypeID)
	return m
}

// LocationTypeID returns the CRM location type for a classifier
func (m LocationTypeMap) LocationTypeID(t AddressType) (int64, bool) {
	id, ok := m.ids[t]
	return id, ok
}

// AddressTypeFor reverse-maps a CRM location type to a classifier. First match wins.
func (m LocationTypeMap) AddressTypeFor(locationTypeID int64) (AddressType, bool) {
	for _, t := range AllAddressTypes() {
		if id, ok := m.ids[t]; ok && id == locationTypeID {
			return t, true
		}
	}
	return "", false
}

// IsMapped returns true if the CRM location type belongs to one of the classifiers
func (m LocationTypeMap) IsMapped(locationTypeID int64) bool {
	_, ok := m.AddressTypeFor(locationTypeID)
	return ok
}
