package catalog

import (
	"github.com/kamara/atlas/models"
)

// CountrySummary is the list-view projection of a country
type CountrySummary struct {
	CCA3       string             `json:"cca3"`
	Name       models.CountryName `json:"name"`
	Capital    []string           `json:"capital,omitempty"`
	Region     string             `json:"region"`
	Population int64              `json:"population"`
	Flags      models.Flags       `json:"flags"`
}

// CountryDetail is the full projection of a single country
type CountryDetail struct {
	CCA3       string                     `json:"cca3"`
	Name       models.CountryName         `json:"name"`
	Capital    []string                   `json:"capital,omitempty"`
	Region     string                     `json:"region"`
	Subregion  string                     `json:"subregion,omitempty"`
	Population int64                      `json:"population"`
	Area       float64                    `json:"area"`
	Borders    []string                   `json:"borders,omitempty"`
	Languages  map[string]string          `json:"languages,omitempty"`
	Currencies map[string]models.Currency `json:"currencies,omitempty"`
	Flags      models.Flags               `json:"flags"`
	TLD        []string                   `json:"tld,omitempty"`
}

// SearchRequest carries a name search fragment for the browse session
type SearchRequest struct {
	Query string `json:"query" binding:"max=100"`
}

// RegionRequest carries a region selection for the browse session
type RegionRequest struct {
	Region string `json:"region" binding:"max=50"`
}

// BrowseResponse is the current state of a browse session
type BrowseResponse struct {
	Query     string           `json:"query"`
	Region    string           `json:"region"`
	Total     int              `json:"total"`
	Countries []CountrySummary `json:"countries"`
}

// ToCountrySummary converts a models.Country to CountrySummary
func ToCountrySummary(country *models.Country) *CountrySummary {
	return &CountrySummary{
		CCA3:       country.CCA3,
		Name:       country.Name,
		Capital:    country.Capital,
		Region:     country.Region,
		Population: country.Population,
		Flags:      country.Flags,
	}
}

// ToCountrySummaryList converts a slice of models.Country to CountrySummary
func ToCountrySummaryList(countries []models.Country) []CountrySummary {
	summaries := make([]CountrySummary, len(countries))
	for i := range countries {
		summaries[i] = *ToCountrySummary(&countries[i])
	}
	return summaries
}

// ToCountryDetail converts a models.Country to CountryDetail
func ToCountryDetail(country *models.Country) *CountryDetail {
	return &CountryDetail{
		CCA3:       country.CCA3,
		Name:       country.Name,
		Capital:    country.Capital,
		Region:     country.Region,
		Subregion:  country.Subregion,
		Population: country.Population,
		Area:       country.Area,
		Borders:    country.Borders,
		Languages:  country.Languages,
		Currencies: country.Currencies,
		Flags:      country.Flags,
		TLD:        country.TLD,
	}
}

// ToBrowseResponse converts a session snapshot to its response form
func ToBrowseResponse(state *BrowseState) *BrowseResponse {
	return &BrowseResponse{
		Query:     state.Query,
		Region:    state.Region,
		Total:     len(state.Countries),
		Countries: ToCountrySummaryList(state.Countries),
	}
}
