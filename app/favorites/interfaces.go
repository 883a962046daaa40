package favorites

import (
	"context"

	"github.com/google/uuid"
	"github.com/kamara/atlas/models"
)

// Repository defines the interface for favorites document access
type Repository interface {
	// GetOrCreate returns the user's favorites document, creating an
	// empty one on first use.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.UserFavorites, error)

	// Append adds the country to the document unless an entry with the
	// same code is already present.
	Append(ctx context.Context, userID uuid.UUID, country models.Country) (*models.UserFavorites, error)

	// Remove drops any entry with the given code from the document.
	Remove(ctx context.Context, userID uuid.UUID, code string) (*models.UserFavorites, error)
}

// Service defines the interface for favorites business logic
type Service interface {
	GetFavorites(ctx context.Context, userID uuid.UUID) ([]models.Country, error)
	AddFavorite(ctx context.Context, userID uuid.UUID, country models.Country) ([]models.Country, error)
	RemoveFavorite(ctx context.Context, userID uuid.UUID, code string) ([]models.Country, error)
	IsCountryInFavorites(ctx context.Context, userID uuid.UUID, code string) (bool, error)
}
