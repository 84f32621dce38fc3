package addresssync

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Country is a row of the CRM country table
type Country struct {
	ID      int64
	ISOCode string
	Name    string
}

// StateProvince is a row of the CRM state/province table
type StateProvince struct {
	ID           int64
	CountryID    int64
	Name         string
	Abbreviation string
}

type stateKey struct {
	countryID int64
	key       string
}

// Tables holds the code translation tables. It is immutable after construction
// and safe for concurrent use.
type Tables struct {
	countries    map[int64]Country
	countryByKey map[string]int64
	states       map[int64]StateProvince
	stateByKey   map[stateKey]int64
}

// foldKey normalizes a lookup value: trimmed and Unicode case folded
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// NewTables indexes the given reference rows
func NewTables(countries []Country, states []StateProvince) (*Tables, error) {
	t := &Tables{
		countries:    make(map[int64]Country, len(countries)),
		countryByKey: make(map[string]int64, len(countries)*2),
		states:       make(map[int64]StateProvince, len(states)),
		stateByKey:   make(map[stateKey]int64, len(states)*2),
	}

	for _, c := range countries {
		if _, exists := t.countries[c.ID]; exists {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateCountry, c.ID)
		}
		iso := foldKey(c.ISOCode)
		if _, exists := t.countryByKey[iso]; exists && iso != "" {
			return nil, fmt.Errorf("%w: iso code %s", ErrDuplicateCountry, c.ISOCode)
		}
		t.countries[c.ID] = c
		if iso != "" {
			t.countryByKey[iso] = c.ID
		}
		// A name colliding with another country's ISO code never shadows the code.
		if name := foldKey(c.Name); name != "" {
			if _, exists := t.countryByKey[name]; !exists {
				t.countryByKey[name] = c.ID
			}
		}
	}

	for _, s := range states {
		if _, exists := t.states[s.ID]; exists {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateStateProvince, s.ID)
		}
		if _, ok := t.countries[s.CountryID]; !ok {
			return nil, fmt.Errorf("%w: state %d country %d", ErrUnknownCountry, s.ID, s.CountryID)
		}
		t.states[s.ID] = s
		for _, v := range []string{s.Name, s.Abbreviation} {
			k := stateKey{countryID: s.CountryID, key: foldKey(v)}
			if k.key == "" {
				continue
			}
			if _, exists := t.stateByKey[k]; !exists {
				t.stateByKey[k] = s.ID
			}
		}
	}

	return t, nil
}

// CountryISOCode returns the ISO code of a CRM country id
func (t *Tables) CountryISOCode(countryID int64) (string, bool) {
	c, ok := t.countries[countryID]
	if !ok || c.ISOCode == "" {
		return "", false
	}
	return c.ISOCode, true
}

// CountryID resolves a store country value (ISO code or name) to a CRM country id
func (t *Tables) CountryID(value string) (int64, bool) {
	k := foldKey(value)
	if k == "" {
		return 0, false
	}
	id, ok := t.countryByKey[k]
	return id, ok
}

// StateProvinceName returns the name of a CRM state/province id
func (t *Tables) StateProvinceName(stateID int64) (string, bool) {
	s, ok := t.states[stateID]
	if !ok || s.Name == "" {
		return "", false
	}
	return s.Name, true
}

// StateProvinceID resolves a state name or abbreviation within a country
func (t *Tables) StateProvinceID(value string, countryID int64) (int64, bool) {
	k := foldKey(value)
	if k == "" || countryID == 0 {
		return 0, false
	}
	id, ok := t.stateByKey[stateKey{countryID: countryID, key: k}]
	return id, ok
}

// CountryCount returns the number of loaded countries
func (t *Tables) CountryCount() int {
	return len(t.countries)
}

// StateProvinceCount returns the number of loaded states/provinces
func (t *Tables) StateProvinceCount() int {
	return len(t.states)
}
