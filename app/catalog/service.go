package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kamara/atlas/internal/cache"
	"github.com/kamara/atlas/internal/logger"
	"github.com/kamara/atlas/models"
)

const allCountriesCacheKey = "catalog:all"

// service implements the Service interface
type service struct {
	client Client
	cache  cache.Cache[string]
	cfg    *Config
	logger logger.Logger
}

// NewService creates a new catalog service
func NewService(client Client, c cache.Cache[string], cfg *Config, log logger.Logger) Service {
	return &service{
		client: client,
		cache:  c,
		cfg:    cfg,
		logger: log,
	}
}

// All returns every country, reading through the cache. A cache failure
// is logged and treated as a miss so the remote catalog still answers.
func (s *service) All(ctx context.Context) ([]models.Country, error) {
	if cached, err := s.cache.Get(ctx, allCountriesCacheKey); err == nil {
		var countries []models.Country
		if err := json.Unmarshal([]byte(cached), &countries); err == nil {
			return countries, nil
		}
		s.logger.Info("discarding unreadable cached country list", nil)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Error(err, logger.Fields{"key": allCountriesCacheKey})
	}

	countries, err := s.client.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(countries); err == nil {
		if err := s.cache.Set(ctx, allCountriesCacheKey, string(encoded), s.cfg.CacheTTL); err != nil {
			s.logger.Error(err, logger.Fields{"key": allCountriesCacheKey})
		}
	}

	return countries, nil
}

// GetAllCountries returns all countries
func (s *service) GetAllCountries(ctx context.Context) ([]CountrySummary, error) {
	countries, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return ToCountrySummaryList(countries), nil
}

// SearchCountriesByName returns countries whose name matches the fragment.
// A remote not-found comes back as an empty list, not an error.
func (s *service) SearchCountriesByName(ctx context.Context, name string) ([]CountrySummary, error) {
	countries, err := s.client.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return ToCountrySummaryList(countries), nil
}

// FilterCountriesByRegion returns the countries of one region
func (s *service) FilterCountriesByRegion(ctx context.Context, region string) ([]CountrySummary, error) {
	countries, err := s.client.FilterByRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	return ToCountrySummaryList(countries), nil
}

// GetCountryByCode returns one country by its cca3 code. The remote
// answers with a one-element array; an empty array or a remote 404 maps
// to models.ErrRecordNotFound.
func (s *service) GetCountryByCode(ctx context.Context, code string) (*CountryDetail, error) {
	countries, err := s.client.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		var catErr *CatalogError
		if errors.As(err, &catErr) && catErr.StatusCode == http.StatusNotFound {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	if len(countries) == 0 {
		return nil, models.ErrRecordNotFound
	}
	return ToCountryDetail(&countries[0]), nil
}
