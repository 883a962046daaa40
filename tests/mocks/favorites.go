package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kamara/atlas/models"
)

// MockFavoritesRepository is a testify mock of the favorites repository
// interface
type MockFavoritesRepository struct {
	mock.Mock
}

func (m *MockFavoritesRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.UserFavorites, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserFavorites), args.Error(1)
}

func (m *MockFavoritesRepository) Append(ctx context.Context, userID uuid.UUID, country models.Country) (*models.UserFavorites, error) {
	args := m.Called(ctx, userID, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserFavorites), args.Error(1)
}

func (m *MockFavoritesRepository) Remove(ctx context.Context, userID uuid.UUID, code string) (*models.UserFavorites, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserFavorites), args.Error(1)
}
