package catalog

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kamara/atlas/app/api"
	"github.com/kamara/atlas/app/user"
	"github.com/kamara/atlas/models"
)

// Handler handles HTTP requests for the country catalog
type Handler struct {
	service  Service
	sessions *Manager
}

// NewHandler creates a new catalog handler
func NewHandler(service Service, sessions *Manager) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
	}
}

// GetAllCountries godoc
// @Summary List all countries
// @Description Get the full country collection from the catalog
// @Tags countries
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=[]CountrySummary}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries [get]
func (h *Handler) GetAllCountries(c *gin.Context) {
	countries, err := h.service.GetAllCountries(c.Request.Context())
	if err != nil {
		h.catalogErrorResponse(c, err, "Failed to fetch countries")
		return
	}

	api.ListResponse(c, "Countries retrieved successfully", countries, len(countries))
}

// SearchCountriesByName godoc
// @Summary Search countries by name
// @Description Search countries whose name matches the given fragment. An unknown name yields an empty list.
// @Tags countries
// @Accept json
// @Produce json
// @Param name path string true "Name fragment"
// @Success 200 {object} api.Response{data=[]CountrySummary}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/name/{name} [get]
func (h *Handler) SearchCountriesByName(c *gin.Context) {
	countries, err := h.service.SearchCountriesByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, models.ErrInvalidCountryName) {
			api.ValidationErrorResponse(c, "Country name must not be empty")
			return
		}
		h.catalogErrorResponse(c, err, "Failed to search countries")
		return
	}

	api.ListResponse(c, "Countries retrieved successfully", countries, len(countries))
}

// FilterCountriesByRegion godoc
// @Summary Filter countries by region
// @Description Get the countries of one region
// @Tags countries
// @Accept json
// @Produce json
// @Param region path string true "Region name"
// @Success 200 {object} api.Response{data=[]CountrySummary}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/region/{region} [get]
func (h *Handler) FilterCountriesByRegion(c *gin.Context) {
	countries, err := h.service.FilterCountriesByRegion(c.Request.Context(), c.Param("region"))
	if err != nil {
		if errors.Is(err, models.ErrInvalidRegion) {
			api.ValidationErrorResponse(c, "Unknown region")
			return
		}
		h.catalogErrorResponse(c, err, "Failed to filter countries")
		return
	}

	api.ListResponse(c, "Countries retrieved successfully", countries, len(countries))
}

// GetCountryByCode godoc
// @Summary Get country by code
// @Description Get detailed information about a country using its cca3 code
// @Tags countries
// @Accept json
// @Produce json
// @Param code path string true "Country Code (cca3)"
// @Success 200 {object} api.Response{data=CountryDetail}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/code/{code} [get]
func (h *Handler) GetCountryByCode(c *gin.Context) {
	country, err := h.service.GetCountryByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Country")
			return
		}
		if errors.Is(err, models.ErrInvalidCountryCode) {
			api.ValidationErrorResponse(c, "Country code must not be empty")
			return
		}
		h.catalogErrorResponse(c, err, "Failed to fetch country")
		return
	}

	api.SuccessResponse(c, 200, "Country retrieved successfully", country)
}

// GetBrowseState godoc
// @Summary Get the browse session
// @Description Get the caller's browse session, loading the full collection on first use
// @Tags browse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=BrowseResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/browse [get]
func (h *Handler) GetBrowseState(c *gin.Context) {
	session := h.sessions.Session(user.ContextGetUser(c).ID)

	state, err := session.Load(c.Request.Context())
	if err != nil {
		h.catalogErrorResponse(c, err, "Failed to load countries")
		return
	}

	api.SuccessResponse(c, 200, "Browse session retrieved successfully", ToBrowseResponse(state))
}

// SearchBrowse godoc
// @Summary Set the browse name query
// @Description Apply a name query to the caller's browse session, narrowed by the active region
// @Tags browse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SearchRequest true "Name query"
// @Success 200 {object} api.Response{data=BrowseResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/browse/search [post]
func (h *Handler) SearchBrowse(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	session := h.sessions.Session(user.ContextGetUser(c).ID)
	if _, err := session.Load(c.Request.Context()); err != nil {
		h.catalogErrorResponse(c, err, "Failed to load countries")
		return
	}

	state, err := session.SetQuery(c.Request.Context(), req.Query)
	if err != nil {
		h.catalogErrorResponse(c, err, "Failed to search countries")
		return
	}

	api.SuccessResponse(c, 200, "Browse session updated successfully", ToBrowseResponse(state))
}

// FilterBrowse godoc
// @Summary Set the browse region
// @Description Apply a region to the caller's browse session, narrowed by the active name query
// @Tags browse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegionRequest true "Region selection"
// @Success 200 {object} api.Response{data=BrowseResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/browse/region [post]
func (h *Handler) FilterBrowse(c *gin.Context) {
	var req RegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	session := h.sessions.Session(user.ContextGetUser(c).ID)
	if _, err := session.Load(c.Request.Context()); err != nil {
		h.catalogErrorResponse(c, err, "Failed to load countries")
		return
	}

	state, err := session.SetRegion(c.Request.Context(), req.Region)
	if err != nil {
		if errors.Is(err, models.ErrInvalidRegion) {
			api.ValidationErrorResponse(c, "Unknown region")
			return
		}
		h.catalogErrorResponse(c, err, "Failed to filter countries")
		return
	}

	api.SuccessResponse(c, 200, "Browse session updated successfully", ToBrowseResponse(state))
}

// ClearBrowse godoc
// @Summary Clear the browse session
// @Description Reset the caller's query and region and show the full collection again
// @Tags browse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=BrowseResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/browse [delete]
func (h *Handler) ClearBrowse(c *gin.Context) {
	session := h.sessions.Session(user.ContextGetUser(c).ID)
	state := session.Clear()

	api.SuccessResponse(c, 200, "Browse session cleared successfully", ToBrowseResponse(state))
}

// catalogErrorResponse maps remote catalog failures to a bad gateway
// and everything else to an internal error
func (h *Handler) catalogErrorResponse(c *gin.Context, err error, message string) {
	var catErr *CatalogError
	if errors.As(err, &catErr) {
		api.BadGatewayResponse(c, message)
		return
	}
	api.InternalErrorResponse(c, message)
}
