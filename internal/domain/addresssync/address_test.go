package addresssync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressRecord_Value(t *testing.T) {
	r := AddressRecord{
		"city":              "Springfield",
		"postal_code":       "",
		"street_address":    "null",
		"country_id":        "1228",
		"state_province_id": "abc",
		"geo_code_1":        "0",
		"geo_code_2":        " ",
	}

	v, ok := r.Value(CRMFieldCity)
	assert.True(t, ok)
	assert.Equal(t, "Springfield", v)

	_, ok = r.Value(CRMFieldPostalCode)
	assert.False(t, ok)
	_, ok = r.Value(CRMFieldStreetAddress)
	assert.False(t, ok)
	_, ok = r.Value(CRMFieldSupplementalAddress1)
	assert.False(t, ok)
	_, ok = r.Value(CRMField("geo_code_1"))
	assert.False(t, ok, "zero counts as blank")
	v, ok = r.Value(CRMField("geo_code_2"))
	assert.True(t, ok, "whitespace is a value")
	assert.Equal(t, " ", v)

	n, ok := r.Int(CRMFieldCountryID)
	assert.True(t, ok)
	assert.Equal(t, int64(1228), n)

	_, ok = r.Int(CRMFieldStateProvinceID)
	assert.False(t, ok)
}

func TestAddressRecord_Merge(t *testing.T) {
	base := AddressRecord{"city": "Old", "postal_code": "111", "id": "9"}
	merged := base.Merge(AddressRecord{"city": "New"})

	assert.Equal(t, "New", merged["city"])
	assert.Equal(t, "111", merged["postal_code"])
	assert.Equal(t, "9", merged["id"])
	assert.Equal(t, "Old", base["city"], "merge must not mutate the receiver")
}

func TestNewCRMAddressFromRecord(t *testing.T) {
	a := NewCRMAddressFromRecord(AddressRecord{
		"id":               "31",
		"contact_id":       "42",
		"location_type_id": "5",
		"city":             "Springfield",
	})

	assert.Equal(t, int64(31), a.ID)
	assert.Equal(t, int64(42), a.ContactID)
	assert.Equal(t, int64(5), a.LocationTypeID)
	assert.False(t, a.IsError)
	assert.Equal(t, AddressRecord{"city": "Springfield"}, a.Fields)
	assert.True(t, a.HasContact())

	params := a.Params()
	assert.Equal(t, "31", params["id"])
	assert.Equal(t, "42", params["contact_id"])
	assert.Equal(t, "5", params["location_type_id"])
	assert.Equal(t, "Springfield", params["city"])
}

func TestNewCRMAddressFromRecord_Error(t *testing.T) {
	a := NewCRMAddressFromRecord(AddressRecord{"is_error": "1", "error_message": "Expected one Address but found 0"})
	assert.True(t, a.IsError)
	assert.Equal(t, "Expected one Address but found 0", a.ErrorMessage)
	assert.False(t, a.HasContact())
}

func TestBaseParams(t *testing.T) {
	assert.Equal(t, AddressRecord{"contact_id": "42", "location_type_id": "5"}, BaseParams(42, 5))
}

func TestStepResult(t *testing.T) {
	ok := NewStepResult(&CRMAddress{ID: 1}, nil)
	assert.True(t, ok.Succeeded())
	assert.Empty(t, ok.Reason())

	transport := NewStepResult(nil, errors.New("connection refused"))
	assert.False(t, transport.Succeeded())
	assert.Equal(t, "connection refused", transport.Reason())

	indicator := NewStepResult(&CRMAddress{IsError: true, ErrorMessage: "bad country"}, nil)
	assert.False(t, indicator.Succeeded())
	assert.Equal(t, "bad country", indicator.Reason())

	empty := NewStepResult(nil, nil)
	assert.False(t, empty.Succeeded())
	assert.Equal(t, "empty response", empty.Reason())
}

func TestParseYesNo(t *testing.T) {
	for _, v := range []string{"yes", "YES", " y ", "true", "1", "on"} {
		assert.True(t, ParseYesNo(v), v)
	}
	for _, v := range []string{"no", "", "0", "false", "maybe"} {
		assert.False(t, ParseYesNo(v), v)
	}
}

func TestLinkedIdentity_IsValid(t *testing.T) {
	assert.True(t, (&LinkedIdentity{UserID: 7, ContactID: 42}).IsValid())
	assert.False(t, (&LinkedIdentity{UserID: 7}).IsValid())

	var nilLink *LinkedIdentity
	assert.False(t, nilLink.IsValid())
}
