package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountry_Same(t *testing.T) {
	a := &Country{CCA3: "USA", Name: CountryName{Common: "United States"}, Region: "Americas"}
	b := &Country{CCA3: "USA", Name: CountryName{Common: "United States of America"}, Region: "Americas"}
	c := &Country{CCA3: "CAN", Name: CountryName{Common: "Canada"}, Region: "Americas"}

	assert.True(t, a.Same(b), "identity is the cca3 code, display fields may drift")
	assert.False(t, a.Same(c))
}

func TestCountry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		country Country
		wantErr error
	}{
		{"valid", Country{CCA3: "FRA", Name: CountryName{Common: "France"}, Region: "Europe"}, nil},
		{"short code", Country{CCA3: "FR", Name: CountryName{Common: "France"}}, ErrInvalidCountryCode},
		{"empty code", Country{Name: CountryName{Common: "France"}}, ErrInvalidCountryCode},
		{"missing name", Country{CCA3: "FRA"}, ErrInvalidCountryName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.country.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIsValidRegion(t *testing.T) {
	for _, r := range Regions {
		assert.True(t, IsValidRegion(r))
	}
	assert.True(t, IsValidRegion(""), "empty means all regions")
	assert.False(t, IsValidRegion("Antarctica"))
	assert.False(t, IsValidRegion("americas"), "region names are case sensitive at the catalog")
}

func TestCountryList_UnionRejectContains(t *testing.T) {
	list := CountryList{}

	us := Country{CCA3: "USA", Name: CountryName{Common: "United States"}}
	list = list.Union(us)
	assert.Len(t, list, 1)
	assert.True(t, list.Contains("USA"))

	// adding the same code again must not create a duplicate
	list = list.Union(Country{CCA3: "USA", Name: CountryName{Common: "United States of America"}})
	assert.Len(t, list, 1)
	assert.Equal(t, "United States", list[0].Name.Common, "existing entry wins on duplicate add")

	list = list.Union(Country{CCA3: "CAN", Name: CountryName{Common: "Canada"}})
	assert.Len(t, list, 2)

	list = list.Reject("USA")
	assert.Len(t, list, 1)
	assert.False(t, list.Contains("USA"))
	assert.True(t, list.Contains("CAN"))

	// rejecting a missing code is a no-op
	list = list.Reject("FRA")
	assert.Len(t, list, 1)
}

func TestCountryList_ValueScan(t *testing.T) {
	list := CountryList{
		{CCA3: "NGA", Name: CountryName{Common: "Nigeria"}, Region: "Africa", Population: 206139589},
	}

	v, err := list.Value()
	assert.NoError(t, err)

	var got CountryList
	assert.NoError(t, got.Scan(v))
	assert.Len(t, got, 1)
	assert.Equal(t, "NGA", got[0].CCA3)

	var fromString CountryList
	assert.NoError(t, fromString.Scan(`[{"cca3":"GHA","name":{"common":"Ghana"},"region":"Africa"}]`))
	assert.True(t, fromString.Contains("GHA"))

	var fromNil CountryList
	assert.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil)

	assert.Error(t, got.Scan(42))
}

func TestCountryList_NilValueIsEmptyArray(t *testing.T) {
	var list CountryList
	v, err := list.Value()
	assert.NoError(t, err)
	assert.JSONEq(t, "[]", string(v.([]byte)))
}

func TestCountry_JSONShape(t *testing.T) {
	raw := `{
		"cca3": "DEU",
		"name": {"common": "Germany", "official": "Federal Republic of Germany"},
		"capital": ["Berlin"],
		"region": "Europe",
		"subregion": "Western Europe",
		"population": 83240525,
		"area": 357114,
		"borders": ["AUT", "BEL"],
		"languages": {"deu": "German"},
		"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
		"flags": {"png": "https://flagcdn.com/w320/de.png"},
		"tld": [".de"]
	}`

	var c Country
	assert.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, "DEU", c.CCA3)
	assert.Equal(t, "Germany", c.Name.Common)
	assert.Equal(t, []string{"Berlin"}, c.Capital)
	assert.Equal(t, int64(83240525), c.Population)
	assert.Equal(t, "Euro", c.Currencies["EUR"].Name)
	assert.Equal(t, "German", c.Languages["deu"])
}
