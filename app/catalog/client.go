package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kamara/atlas/internal/logger"
	"github.com/kamara/atlas/models"
)

// CatalogError describes a non-success response from the remote country
// catalog. The status code is the remote's HTTP status.
type CatalogError struct {
	Op         string
	Param      string
	StatusCode int
}

func (e *CatalogError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("catalog: %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("catalog: %s %q: unexpected status %d", e.Op, e.Param, e.StatusCode)
}

// Client is a stateless request translator over the remote country
// catalog. Result order is whatever the remote returns.
type Client interface {
	// ListAll returns every country known to the catalog.
	ListAll(ctx context.Context) ([]models.Country, error)

	// SearchByName returns countries matching the fragment per the
	// remote's own matching rules. A remote not-found is a valid empty
	// result, not an error.
	SearchByName(ctx context.Context, fragment string) ([]models.Country, error)

	// FilterByRegion returns the countries of one region. An empty
	// region means all regions.
	FilterByRegion(ctx context.Context, region string) ([]models.Country, error)

	// GetByCode looks a country up by its code. The remote returns a
	// one-element array by convention; callers take the first element.
	GetByCode(ctx context.Context, code string) ([]models.Country, error)
}

type restClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a catalog client against the configured base URL.
func NewClient(cfg *Config, log logger.Logger) Client {
	return &restClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log,
	}
}

func (c *restClient) ListAll(ctx context.Context) ([]models.Country, error) {
	return c.fetch(ctx, "list_all", "", "/all")
}

func (c *restClient) SearchByName(ctx context.Context, fragment string) ([]models.Country, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, models.ErrInvalidCountryName
	}

	countries, err := c.fetch(ctx, "search_by_name", fragment, "/name/"+url.PathEscape(fragment))
	if err != nil {
		// not-found is a valid empty result for name search only
		var catErr *CatalogError
		if errors.As(err, &catErr) && catErr.StatusCode == http.StatusNotFound {
			return []models.Country{}, nil
		}
		return nil, err
	}
	return countries, nil
}

func (c *restClient) FilterByRegion(ctx context.Context, region string) ([]models.Country, error) {
	if !models.IsValidRegion(region) {
		return nil, models.ErrInvalidRegion
	}
	if region == "" {
		return c.ListAll(ctx)
	}
	return c.fetch(ctx, "filter_by_region", region, "/region/"+url.PathEscape(region))
}

func (c *restClient) GetByCode(ctx context.Context, code string) ([]models.Country, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, models.ErrInvalidCountryCode
	}
	return c.fetch(ctx, "get_by_code", code, "/alpha/"+url.PathEscape(code))
}

// fetch performs a catalog GET and decodes the country array. Non-2xx
// statuses surface as *CatalogError, logged at the point of occurrence
// and returned unchanged to the caller.
func (c *restClient) fetch(ctx context.Context, op, param, path string) ([]models.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(err, logger.Fields{"op": op, "param": param})
		return nil, fmt.Errorf("catalog: %s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		catErr := &CatalogError{Op: op, Param: param, StatusCode: resp.StatusCode}
		c.logger.Error(catErr, logger.Fields{"op": op, "param": param, "status": resp.StatusCode})
		return nil, catErr
	}

	var countries []models.Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		c.logger.Error(err, logger.Fields{"op": op, "param": param})
		return nil, fmt.Errorf("catalog: %s: failed to decode response: %w", op, err)
	}
	return countries, nil
}
