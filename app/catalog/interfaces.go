package catalog

import (
	"context"

	"github.com/kamara/atlas/models"
)

// Service defines the interface for country catalog business logic
type Service interface {
	// All returns the full country collection, served from cache when warm.
	All(ctx context.Context) ([]models.Country, error)

	GetAllCountries(ctx context.Context) ([]CountrySummary, error)
	SearchCountriesByName(ctx context.Context, name string) ([]CountrySummary, error)
	FilterCountriesByRegion(ctx context.Context, region string) ([]CountrySummary, error)
	GetCountryByCode(ctx context.Context, code string) (*CountryDetail, error)
}
