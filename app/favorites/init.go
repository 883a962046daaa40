package favorites

import (
	"github.com/gin-gonic/gin"
	"github.com/kamara/atlas/internal/deps"
)

const (
	FavoritesRepoKey = "favorites_repository"
)

// MountAuthenticated mounts the favorites routes. All favorites routes
// require an authenticated caller.
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	favoritesGroup := r.Group("/favorites")
	favoritesGroup.GET("", handler.GetFavorites)
	favoritesGroup.POST("", handler.AddFavorite)
	favoritesGroup.GET("/:code", handler.GetFavoriteStatus)
	favoritesGroup.DELETE("/:code", handler.RemoveFavorite)
}

// InitRepositories initializes and registers repositories for this module
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(FavoritesRepoKey, repo)
}

// createHandler creates a handler with all dependencies
func createHandler(container *deps.Container) *Handler {
	repo := container.GetRepository(FavoritesRepoKey).(Repository)

	service := NewService(repo)

	return NewHandler(service)
}
