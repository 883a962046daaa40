package favorites

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamara/atlas/models"
)

// FavoritesError wraps a failed favorites operation with the operation
// name and the user it ran for
type FavoritesError struct {
	Op     string
	UserID uuid.UUID
	Err    error
}

func (e *FavoritesError) Error() string {
	return fmt.Sprintf("favorites: %s for user %s: %v", e.Op, e.UserID, e.Err)
}

func (e *FavoritesError) Unwrap() error {
	return e.Err
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new favorites service
func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

// GetFavorites returns the user's favorites, creating the empty
// document on first read
func (s *service) GetFavorites(ctx context.Context, userID uuid.UUID) ([]models.Country, error) {
	if userID == uuid.Nil {
		return nil, models.ErrInvalidUserID
	}

	doc, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, &FavoritesError{Op: "get", UserID: userID, Err: err}
	}
	return doc.Favorites, nil
}

// AddFavorite adds a country to the user's favorites. Adding a country
// that is already present changes nothing and is not an error. The code
// is stored uppercased so removal and membership checks, which also
// uppercase, always find what was added.
func (s *service) AddFavorite(ctx context.Context, userID uuid.UUID, country models.Country) ([]models.Country, error) {
	if userID == uuid.Nil {
		return nil, models.ErrInvalidUserID
	}
	country.CCA3 = strings.ToUpper(strings.TrimSpace(country.CCA3))
	if err := country.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.repo.Append(ctx, userID, country)
	if err != nil {
		return nil, &FavoritesError{Op: "add", UserID: userID, Err: err}
	}
	return doc.Favorites, nil
}

// RemoveFavorite removes a country from the user's favorites. Removing
// a country that is not present changes nothing and is not an error.
func (s *service) RemoveFavorite(ctx context.Context, userID uuid.UUID, code string) ([]models.Country, error) {
	if userID == uuid.Nil {
		return nil, models.ErrInvalidUserID
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, models.ErrInvalidCountryCode
	}

	doc, err := s.repo.Remove(ctx, userID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &FavoritesError{Op: "remove", UserID: userID, Err: models.ErrRecordNotFound}
		}
		return nil, &FavoritesError{Op: "remove", UserID: userID, Err: err}
	}
	return doc.Favorites, nil
}

// IsCountryInFavorites reports whether the user has favorited the code
func (s *service) IsCountryInFavorites(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	if userID == uuid.Nil {
		return false, models.ErrInvalidUserID
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false, models.ErrInvalidCountryCode
	}

	doc, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return false, &FavoritesError{Op: "check", UserID: userID, Err: err}
	}
	return doc.Favorites.Contains(code), nil
}
