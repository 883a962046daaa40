package favorites

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kamara/atlas/app/api"
	"github.com/kamara/atlas/app/user"
	"github.com/kamara/atlas/models"
)

// Handler handles HTTP requests for the favorites set
type Handler struct {
	service Service
}

// NewHandler creates a new favorites handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetFavorites godoc
// @Summary List favorite countries
// @Description Get the caller's favorite countries. A first read creates an empty set.
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=FavoritesResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/favorites [get]
func (h *Handler) GetFavorites(c *gin.Context) {
	countries, err := h.service.GetFavorites(c.Request.Context(), user.ContextGetUser(c).ID)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch favorites")
		return
	}

	api.SuccessResponse(c, 200, "Favorites retrieved successfully", ToFavoritesResponse(countries))
}

// AddFavorite godoc
// @Summary Add a favorite country
// @Description Add a country to the caller's favorites. Adding a country twice is a no-op.
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddFavoriteRequest true "Country to favorite"
// @Success 201 {object} api.Response{data=FavoritesResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/favorites [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	countries, err := h.service.AddFavorite(c.Request.Context(), user.ContextGetUser(c).ID, req.Country)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCountryCode) ||
			errors.Is(err, models.ErrInvalidCountryName) ||
			errors.Is(err, models.ErrInvalidRegion) {
			api.ValidationErrorResponse(c, err.Error())
			return
		}
		api.InternalErrorResponse(c, "Failed to add favorite")
		return
	}

	api.CreatedResponse(c, "Favorite added successfully", ToFavoritesResponse(countries))
}

// RemoveFavorite godoc
// @Summary Remove a favorite country
// @Description Remove a country from the caller's favorites by its cca3 code
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Country Code (cca3)"
// @Success 200 {object} api.Response{data=FavoritesResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/favorites/{code} [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	countries, err := h.service.RemoveFavorite(c.Request.Context(), user.ContextGetUser(c).ID, c.Param("code"))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Favorites")
			return
		}
		if errors.Is(err, models.ErrInvalidCountryCode) {
			api.ValidationErrorResponse(c, "Country code must not be empty")
			return
		}
		api.InternalErrorResponse(c, "Failed to remove favorite")
		return
	}

	api.SuccessResponse(c, 200, "Favorite removed successfully", ToFavoritesResponse(countries))
}

// GetFavoriteStatus godoc
// @Summary Check favorite status
// @Description Report whether the caller has favorited the given cca3 code
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Country Code (cca3)"
// @Success 200 {object} api.Response{data=FavoriteStatusResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/favorites/{code} [get]
func (h *Handler) GetFavoriteStatus(c *gin.Context) {
	code := c.Param("code")

	favorite, err := h.service.IsCountryInFavorites(c.Request.Context(), user.ContextGetUser(c).ID, code)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCountryCode) {
			api.ValidationErrorResponse(c, "Country code must not be empty")
			return
		}
		api.InternalErrorResponse(c, "Failed to check favorite")
		return
	}

	api.SuccessResponse(c, 200, "Favorite status retrieved successfully", &FavoriteStatusResponse{
		CCA3:     strings.ToUpper(strings.TrimSpace(code)),
		Favorite: favorite,
	})
}
