package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kamara/atlas/internal/security"
	"github.com/kamara/atlas/models"
	"github.com/kamara/atlas/tests/mocks"
)

// mockUserService stubs the token revocation check for middleware tests
type mockUserService struct {
	mock.Mock
	Service
}

func (m *mockUserService) IsTokenRevoked(ctx context.Context, tokenID uuid.UUID) bool {
	args := m.Called(ctx, tokenID)
	return args.Bool(0)
}

func performAuthenticated(t *testing.T, maker security.Maker, service Service, repo Repository, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(maker, service, repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": ContextGetUser(c).ID})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(AuthorizationHeaderKey, authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthMiddleware(t *testing.T) {
	maker, err := security.NewPasetoMaker("12345678901234567890123456789012")
	assert.NoError(t, err)

	usr := &models.User{ID: uuid.New(), Email: "ada@example.com"}

	t.Run("Valid Token", func(t *testing.T) {
		token, payload, err := maker.CreateToken(usr.ID, time.Hour, security.TokenScopeAccess)
		assert.NoError(t, err)

		service := new(mockUserService)
		service.On("IsTokenRevoked", mock.Anything, payload.ID).Return(false)
		repo := new(mocks.MockUserRepository)
		repo.On("GetByID", mock.Anything, usr.ID).Return(usr, nil)

		recorder := performAuthenticated(t, maker, service, repo, "Bearer "+token)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), usr.ID.String())
	})

	t.Run("Missing Header", func(t *testing.T) {
		recorder := performAuthenticated(t, maker, new(mockUserService), new(mocks.MockUserRepository), "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		recorder := performAuthenticated(t, maker, new(mockUserService), new(mocks.MockUserRepository), "Token abc")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token, _, err := maker.CreateToken(usr.ID, -time.Minute, security.TokenScopeAccess)
		assert.NoError(t, err)

		recorder := performAuthenticated(t, maker, new(mockUserService), new(mocks.MockUserRepository), "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Refresh Scope Rejected", func(t *testing.T) {
		token, _, err := maker.CreateToken(usr.ID, time.Hour, security.TokenScopeRefresh)
		assert.NoError(t, err)

		recorder := performAuthenticated(t, maker, new(mockUserService), new(mocks.MockUserRepository), "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Revoked Token", func(t *testing.T) {
		token, payload, err := maker.CreateToken(usr.ID, time.Hour, security.TokenScopeAccess)
		assert.NoError(t, err)

		service := new(mockUserService)
		service.On("IsTokenRevoked", mock.Anything, payload.ID).Return(true)

		recorder := performAuthenticated(t, maker, service, new(mocks.MockUserRepository), "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Unknown User", func(t *testing.T) {
		token, payload, err := maker.CreateToken(usr.ID, time.Hour, security.TokenScopeAccess)
		assert.NoError(t, err)

		service := new(mockUserService)
		service.On("IsTokenRevoked", mock.Anything, payload.ID).Return(false)
		repo := new(mocks.MockUserRepository)
		repo.On("GetByID", mock.Anything, usr.ID).Return(nil, assert.AnError)

		recorder := performAuthenticated(t, maker, service, repo, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Inactive User", func(t *testing.T) {
		token, payload, err := maker.CreateToken(usr.ID, time.Hour, security.TokenScopeAccess)
		assert.NoError(t, err)

		inactive := false
		frozen := &models.User{ID: usr.ID, Email: usr.Email, IsActive: &inactive}

		service := new(mockUserService)
		service.On("IsTokenRevoked", mock.Anything, payload.ID).Return(false)
		repo := new(mocks.MockUserRepository)
		repo.On("GetByID", mock.Anything, usr.ID).Return(frozen, nil)

		recorder := performAuthenticated(t, maker, service, repo, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
