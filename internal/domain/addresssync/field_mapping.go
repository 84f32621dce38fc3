package addresssync

import "fmt"

// CRMField is a field name on the CRM address entity
type CRMField string

const (
	CRMFieldID                   CRMField = "id"
	CRMFieldContactID            CRMField = "contact_id"
	CRMFieldLocationTypeID       CRMField = "location_type_id"
	CRMFieldStreetAddress        CRMField = "street_address"
	CRMFieldSupplementalAddress1 CRMField = "supplemental_address_1"
	CRMFieldCity                 CRMField = "city"
	CRMFieldPostalCode           CRMField = "postal_code"
	CRMFieldCountryID            CRMField = "country_id"
	CRMFieldStateProvinceID      CRMField = "state_province_id"
)

// AddressField identifies a store address field independent of its classifier
type AddressField string

const (
	FieldAddress1 AddressField = "address_1"
	FieldAddress2 AddressField = "address_2"
	FieldCity     AddressField = "city"
	FieldPostcode AddressField = "postcode"
	FieldCountry  AddressField = "country"
	FieldState    AddressField = "state"
)

// FieldPair pairs one store field with its CRM counterpart
type FieldPair struct {
	// Field is the classifier-independent store field
	Field AddressField
	// StoreKey is the profile metadata key, e.g. "billing_city"
	StoreKey string
	// CRMField is the CRM address field
	CRMField CRMField
}

// FieldMapping is the ordered list of synced fields for one classifier
type FieldMapping []FieldPair

// syncedFields is the static store -> CRM field table. Country precedes state
// because state ids are resolved within the country just translated.
var syncedFields = []struct {
	field AddressField
	crm   CRMField
}{
	{FieldAddress1, CRMFieldStreetAddress},
	{FieldAddress2, CRMFieldSupplementalAddress1},
	{FieldCity, CRMFieldCity},
	{FieldPostcode, CRMFieldPostalCode},
	{FieldCountry, CRMFieldCountryID},
	{FieldState, CRMFieldStateProvinceID},
}

// StoreKey builds the profile metadata key for a classifier and field
func StoreKey(t AddressType, field AddressField) string {
	return string(t) + "_" + string(field)
}

// MappedFields returns the field mapping for a classifier
func MappedFields(t AddressType) FieldMapping {
	mapping := make(FieldMapping, 0, len(syncedFields))
	for _, f := range syncedFields {
		mapping = append(mapping, FieldPair{
			Field:    f.field,
			StoreKey: StoreKey(t, f.field),
			CRMField: f.crm,
		})
	}
	return mapping
}

// Validate checks that every field appears once and country precedes state
func (m FieldMapping) Validate() error {
	seenStore := make(map[string]bool, len(m))
	seenCRM := make(map[CRMField]bool, len(m))
	countryAt, stateAt := -1, -1
	for i, p := range m {
		if seenStore[p.StoreKey] || seenCRM[p.CRMField] {
			return fmt.Errorf("%w: %s/%s", ErrFieldMappingDuplicate, p.StoreKey, p.CRMField)
		}
		seenStore[p.StoreKey] = true
		seenCRM[p.CRMField] = true
		switch p.CRMField {
		case CRMFieldCountryID:
			countryAt = i
		case CRMFieldStateProvinceID:
			stateAt = i
		}
	}
	if stateAt >= 0 && (countryAt < 0 || countryAt > stateAt) {
		return ErrFieldMappingOrder
	}
	return nil
}
