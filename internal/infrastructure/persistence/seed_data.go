package persistence

import "github.com/erp/addresssync/internal/domain/addresssync"

// DefaultCountries is a subset of the CRM country table, ids as shipped by the CRM
func DefaultCountries() []addresssync.Country {
	return []addresssync.Country{
		{ID: 1013, ISOCode: "AU", Name: "Australia"},
		{ID: 1039, ISOCode: "CA", Name: "Canada"},
		{ID: 1076, ISOCode: "FR", Name: "France"},
		{ID: 1082, ISOCode: "DE", Name: "Germany"},
		{ID: 1101, ISOCode: "IE", Name: "Ireland"},
		{ID: 1154, ISOCode: "NZ", Name: "New Zealand"},
		{ID: 1226, ISOCode: "GB", Name: "United Kingdom"},
		{ID: 1228, ISOCode: "US", Name: "United States"},
	}
}

// DefaultStateProvinces covers US states and Canadian provinces used most often
func DefaultStateProvinces() []addresssync.StateProvince {
	return []addresssync.StateProvince{
		{ID: 1004, CountryID: 1228, Name: "California", Abbreviation: "CA"},
		{ID: 1005, CountryID: 1228, Name: "Colorado", Abbreviation: "CO"},
		{ID: 1009, CountryID: 1228, Name: "Florida", Abbreviation: "FL"},
		{ID: 1012, CountryID: 1228, Name: "Illinois", Abbreviation: "IL"},
		{ID: 1020, CountryID: 1228, Name: "Massachusetts", Abbreviation: "MA"},
		{ID: 1031, CountryID: 1228, Name: "New York", Abbreviation: "NY"},
		{ID: 1042, CountryID: 1228, Name: "Texas", Abbreviation: "TX"},
		{ID: 1046, CountryID: 1228, Name: "Washington", Abbreviation: "WA"},
		{ID: 1100, CountryID: 1039, Name: "Ontario", Abbreviation: "ON"},
		{ID: 1101, CountryID: 1039, Name: "Quebec", Abbreviation: "QC"},
		{ID: 1102, CountryID: 1039, Name: "British Columbia", Abbreviation: "BC"},
		{ID: 1103, CountryID: 1039, Name: "Alberta", Abbreviation: "AB"},
	}
}
