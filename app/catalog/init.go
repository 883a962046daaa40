package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/kamara/atlas/internal/deps"
)

const (
	ServiceKey        = "catalog_service"
	SessionManagerKey = "catalog_session_manager"
)

// InitServices initializes and registers the catalog service and the
// browse session manager
func InitServices(container *deps.Container, cfg *Config) {
	client := NewClient(cfg, container.Logger)
	service := NewService(client, container.Cache, cfg, container.Logger)

	container.RegisterService(ServiceKey, service)
	container.RegisterService(SessionManagerKey, NewManager(service, client))
}

// MountPublic mounts public catalog routes
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	countriesGroup := r.Group("/countries")
	countriesGroup.GET("", handler.GetAllCountries)
	countriesGroup.GET("/name/:name", handler.SearchCountriesByName)
	countriesGroup.GET("/region/:region", handler.FilterCountriesByRegion)
	countriesGroup.GET("/code/:code", handler.GetCountryByCode)
}

// MountAuthenticated mounts the per-user browse session routes
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	browseGroup := r.Group("/browse")
	browseGroup.GET("", handler.GetBrowseState)
	browseGroup.POST("/search", handler.SearchBrowse)
	browseGroup.POST("/region", handler.FilterBrowse)
	browseGroup.DELETE("", handler.ClearBrowse)
}

// createHandler creates a handler with all dependencies
func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)
	sessions := container.GetService(SessionManagerKey).(*Manager)

	return NewHandler(service, sessions)
}
