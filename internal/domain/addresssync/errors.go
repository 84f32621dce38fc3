package addresssync

import "errors"

var (
	// Configuration errors
	ErrInvalidAddressType      = errors.New("addresssync: invalid address type")
	ErrInvalidLocationTypeID   = errors.New("addresssync: location type id must be positive")
	ErrDuplicateLocationTypeID = errors.New("addresssync: location type ids must be distinct")
	ErrFieldMappingOrder       = errors.New("addresssync: country must be mapped before state/province")
	ErrFieldMappingDuplicate   = errors.New("addresssync: duplicate field in mapping")

	// Reference data errors
	ErrDuplicateCountry       = errors.New("addresssync: duplicate country")
	ErrDuplicateStateProvince = errors.New("addresssync: duplicate state/province")
	ErrUnknownCountry         = errors.New("addresssync: state/province references unknown country")

	// Lookup errors
	ErrIdentityNotLinked = errors.New("addresssync: no linked identity")
	ErrCustomerNotFound  = errors.New("addresssync: store customer not found")
	ErrAddressNotFound   = errors.New("addresssync: crm address not found")
	ErrSettingNotFound   = errors.New("addresssync: setting not found")

	// Upstream errors
	ErrCRMRequestFailed   = errors.New("addresssync: crm request failed")
	ErrCRMAPIError        = errors.New("addresssync: crm api returned an error")
	ErrStoreRequestFailed = errors.New("addresssync: store request failed")
)
