package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// CountryName holds the common and official names of a country as the
// catalog reports them.
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official,omitempty"`
}

// Currency describes a currency as code metadata, not an amount.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// Flags holds the flag image references for a country.
type Flags struct {
	PNG string `json:"png,omitempty"`
	SVG string `json:"svg,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Country is a country record as served by the remote catalog. It is a
// value object: records are never constructed locally, and two values
// represent the same country iff their CCA3 codes are equal. Every other
// field is display-only.
type Country struct {
	CCA3       string              `json:"cca3"`
	Name       CountryName         `json:"name"`
	Capital    []string            `json:"capital,omitempty"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion,omitempty"`
	Population int64               `json:"population"`
	Area       float64             `json:"area"`
	Borders    []string            `json:"borders,omitempty"`
	Languages  map[string]string   `json:"languages,omitempty"`
	Currencies map[string]Currency `json:"currencies,omitempty"`
	Flags      Flags               `json:"flags"`
	TLD        []string            `json:"tld,omitempty"`
}

// Same reports whether both values identify the same country. Identity is
// the CCA3 code only; display fields may drift between the catalog and a
// stored copy.
func (c *Country) Same(other *Country) bool {
	return c.CCA3 == other.CCA3
}

// Validate checks the identity fields a caller must supply before a
// country value can be stored.
func (c *Country) Validate() error {
	if len(c.CCA3) != 3 {
		return ErrInvalidCountryCode
	}
	if c.Name.Common == "" {
		return ErrInvalidCountryName
	}
	return nil
}

// Regions is the fixed set of regions the catalog can filter by.
var Regions = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}

// IsValidRegion reports whether region names one of the catalog's regions.
// The empty string is valid and means "all regions".
func IsValidRegion(region string) bool {
	if region == "" {
		return true
	}
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

// CountryList is a slice of countries stored as a single JSONB column.
type CountryList []Country

// Value implements driver.Valuer interface for database storage
func (l CountryList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(CountryList{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for database retrieval
func (l *CountryList) Scan(value interface{}) error {
	if value == nil {
		*l = CountryList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for CountryList")
}

// Contains reports whether the list holds an entry with the given code.
func (l CountryList) Contains(cca3 string) bool {
	for i := range l {
		if l[i].CCA3 == cca3 {
			return true
		}
	}
	return false
}

// Union returns the list with country appended, unless an entry with the
// same CCA3 is already present. The no-duplicate-code invariant holds on
// the result either way.
func (l CountryList) Union(country Country) CountryList {
	if l.Contains(country.CCA3) {
		return l
	}
	return append(l, country)
}

// Reject returns the list without any entry matching the given code.
func (l CountryList) Reject(cca3 string) CountryList {
	out := make(CountryList, 0, len(l))
	for i := range l {
		if l[i].CCA3 != cca3 {
			out = append(out, l[i])
		}
	}
	return out
}
