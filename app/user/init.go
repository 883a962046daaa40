package user

import (
	"github.com/gin-gonic/gin"
	"github.com/kamara/atlas/internal/deps"
)

const (
	RepoKey    = "user_repository"
	ServiceKey = "user_service"
)

// MountPublic mounts public user routes (registration, login)
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	userGroup := r.Group("/users")
	userGroup.POST("/register", handler.Register)
	userGroup.POST("/login", handler.Login)
}

// MountAuthenticated mounts authenticated user routes
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	userGroup := r.Group("/users")
	userGroup.POST("/logout", handler.Logout)
	userGroup.GET("/me", handler.Me)
}

// InitRepositories initializes and registers repositories and services
// for this module
func InitRepositories(container *deps.Container, cfg *Config) {
	userRepo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, userRepo)

	userService := NewService(userRepo, container.TokenMaker, container.Cache, cfg, container.Logger)
	container.RegisterService(ServiceKey, userService)
}

// Middleware builds the auth middleware from the registered user
// repository and service
func Middleware(container *deps.Container) gin.HandlerFunc {
	repo := container.GetRepository(RepoKey).(Repository)
	service := container.GetService(ServiceKey).(Service)

	return AuthMiddleware(container.TokenMaker, service, repo)
}

// createHandler creates a user handler with all dependencies
func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)

	return NewHandler(service, container.Sanitizer)
}
