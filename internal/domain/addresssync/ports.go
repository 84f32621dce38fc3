package addresssync

import "context"

// SettingsReader reads boolean-like options from the host configuration store
type SettingsReader interface {
	// IsEnabled reports whether the option is set to a "yes" value
	IsEnabled(ctx context.Context, key string) (bool, error)
}

// IdentityLinkRepository looks up linked identities. Both finders return
// ErrIdentityNotLinked when no link exists.
type IdentityLinkRepository interface {
	FindByContactID(ctx context.Context, contactID int64) (*LinkedIdentity, error)
	FindByUserID(ctx context.Context, userID int64) (*LinkedIdentity, error)
}

// CRMAddressGateway reads and writes CRM addresses
type CRMAddressGateway interface {
	// GetAddress returns the contact's address for a location type
	GetAddress(ctx context.Context, contactID, locationTypeID int64) (*CRMAddress, error)
	// SaveAddress creates or updates an address from a full parameter set.
	// The returned address may carry an error indicator.
	SaveAddress(ctx context.Context, params AddressRecord) (*CRMAddress, error)
}

// StoreCustomerReader reads a store customer's addresses
type StoreCustomerReader interface {
	GetCustomer(ctx context.Context, userID int64) (*StoreCustomer, error)
}

// StoreProfileWriter persists single profile metadata values
type StoreProfileWriter interface {
	UpdateUserMeta(ctx context.Context, userID int64, key, value string) error
}

// ReferenceDataRepository loads the code translation tables
type ReferenceDataRepository interface {
	LoadCountries(ctx context.Context) ([]Country, error)
	LoadStateProvinces(ctx context.Context) ([]StateProvince, error)
}

// LoadTables builds Tables from a reference data repository
func LoadTables(ctx context.Context, repo ReferenceDataRepository) (*Tables, error) {
	countries, err := repo.LoadCountries(ctx)
	if err != nil {
		return nil, err
	}
	states, err := repo.LoadStateProvinces(ctx)
	if err != nil {
		return nil, err
	}
	return NewTables(countries, states)
}
