package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kamara/atlas/models"
)

// MockCatalogClient is a testify mock of the catalog client interface.
// It lives here instead of the catalog package so repositories and
// services in other modules can stub the remote catalog without an
// import cycle.
type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) ListAll(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockCatalogClient) SearchByName(ctx context.Context, fragment string) ([]models.Country, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockCatalogClient) FilterByRegion(ctx context.Context, region string) ([]models.Country, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockCatalogClient) GetByCode(ctx context.Context, code string) ([]models.Country, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Country), args.Error(1)
}
