package addresssync

import (
	"strconv"
	"strings"
)

// nullLiteral is how the CRM serializes a cleared field
const nullLiteral = "null"

// AddressRecord is a field name -> value view of a CRM address or parameter set
type AddressRecord map[string]string

// Value returns a field value unless it is absent, blank, "0" or the literal "null".
// "0" counts as blank because that is how the CRM reports an unset id or number.
// Whitespace is a value and passes through verbatim.
func (r AddressRecord) Value(field CRMField) (string, bool) {
	switch v := r[string(field)]; v {
	case "", "0", nullLiteral:
		return "", false
	default:
		return v, true
	}
}

// Int returns a field parsed as a positive integer id
func (r AddressRecord) Int(field CRMField) (int64, bool) {
	v, ok := r.Value(field)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Merge returns a new record with overlay's keys written over r's
func (r AddressRecord) Merge(overlay AddressRecord) AddressRecord {
	merged := make(AddressRecord, len(r)+len(overlay))
	for k, v := range r {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// CRMAddress is an address record as returned by the CRM
type CRMAddress struct {
	ID             int64         `json:"id,omitempty"`
	ContactID      int64         `json:"contact_id,omitempty"`
	LocationTypeID int64         `json:"location_type_id"`
	Fields         AddressRecord `json:"fields,omitempty"`
	IsError        bool          `json:"is_error,omitempty"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// HasContact returns true if the address carries a contact id
func (a *CRMAddress) HasContact() bool {
	return a != nil && a.ContactID > 0
}

// Params flattens the address into a CRM parameter set
func (a *CRMAddress) Params() AddressRecord {
	params := make(AddressRecord, len(a.Fields)+3)
	for k, v := range a.Fields {
		params[k] = v
	}
	if a.ID > 0 {
		params[string(CRMFieldID)] = strconv.FormatInt(a.ID, 10)
	}
	if a.ContactID > 0 {
		params[string(CRMFieldContactID)] = strconv.FormatInt(a.ContactID, 10)
	}
	if a.LocationTypeID > 0 {
		params[string(CRMFieldLocationTypeID)] = strconv.FormatInt(a.LocationTypeID, 10)
	}
	return params
}

// metaFields are carried as typed fields on CRMAddress, not inside Fields
var metaFields = map[string]bool{
	string(CRMFieldID):             true,
	string(CRMFieldContactID):      true,
	string(CRMFieldLocationTypeID): true,
	"is_error":                     true,
	"error_message":                true,
}

// NewCRMAddressFromRecord builds a CRMAddress from a flat CRM record
func NewCRMAddressFromRecord(r AddressRecord) *CRMAddress {
	a := &CRMAddress{Fields: make(AddressRecord, len(r))}
	a.ID, _ = r.Int(CRMFieldID)
	a.ContactID, _ = r.Int(CRMFieldContactID)
	a.LocationTypeID, _ = r.Int(CRMFieldLocationTypeID)
	if v, ok := r["is_error"]; ok && v != "" && v != "0" {
		a.IsError = true
		a.ErrorMessage = r["error_message"]
	}
	for k, v := range r {
		if !metaFields[k] {
			a.Fields[k] = v
		}
	}
	return a
}

// BaseParams is the minimal parameter set identifying a contact's address slot
func BaseParams(contactID, locationTypeID int64) AddressRecord {
	return AddressRecord{
		string(CRMFieldContactID):      strconv.FormatInt(contactID, 10),
		string(CRMFieldLocationTypeID): strconv.FormatInt(locationTypeID, 10),
	}
}
