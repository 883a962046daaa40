package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/kamara/atlas/internal/cache"
	"github.com/kamara/atlas/internal/logger"
	"github.com/kamara/atlas/internal/security"
	"github.com/kamara/atlas/models"
	"github.com/kamara/atlas/tests/mocks"
)

func newTestUserService(repo Repository, maker security.Maker, c cache.Cache[string]) Service {
	return NewService(repo, maker, c, GetDefaultConfig(), logger.NewNullLogger())
}

func testUser(t *testing.T, email string) *models.User {
	t.Helper()
	hash, err := models.HashPassword("s3cret-pass")
	assert.NoError(t, err)
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Ada",
		LastName:     "Lovelace",
	}
}

func TestService_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		srvc := newTestUserService(mockRepo, new(security.MockMaker), new(cache.MockCache))
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

		resp, err := srvc.Register(ctx, &RegisterUserRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Password:  "s3cret-pass",
		})

		assert.NoError(t, err)
		assert.Equal(t, "ada@example.com", resp.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Short Password", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		srvc := newTestUserService(mockRepo, new(security.MockMaker), new(cache.MockCache))

		resp, err := srvc.Register(context.Background(), &RegisterUserRequest{
			Email:    "ada@example.com",
			Password: "short",
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, models.ErrPasswordTooShort)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		srvc := newTestUserService(mockRepo, new(security.MockMaker), new(cache.MockCache))
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).
			Return(&pq.Error{Code: "23505"})

		resp, err := srvc.Register(ctx, &RegisterUserRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Password:  "s3cret-pass",
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	})
}

func TestService_Login(t *testing.T) {
	t.Run("Success With Email", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		mockMaker := new(security.MockMaker)
		srvc := newTestUserService(mockRepo, mockMaker, new(cache.MockCache))
		ctx := context.Background()

		usr := testUser(t, "ada@example.com")
		payload, _ := security.NewPayload(usr.ID, 24*time.Hour, security.TokenScopeAccess)

		mockRepo.On("GetByEmail", ctx, "ada@example.com").Return(usr, nil)
		mockMaker.On("CreateToken", usr.ID, 24*time.Hour, security.TokenScopeAccess).
			Return("token-value", payload, nil)
		mockRepo.On("Update", ctx, usr).Return(nil)

		resp, err := srvc.Login(ctx, &LoginRequest{Identity: "ada@example.com", Password: "s3cret-pass"})

		assert.NoError(t, err)
		assert.Equal(t, "token-value", resp.AccessToken)
		assert.Equal(t, usr.ID, resp.User.ID)
		assert.NotNil(t, usr.LastLoginAt)
		mockRepo.AssertExpectations(t)
		mockMaker.AssertExpectations(t)
	})

	t.Run("Phone Identity Uses Phone Lookup", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		mockMaker := new(security.MockMaker)
		srvc := newTestUserService(mockRepo, mockMaker, new(cache.MockCache))
		ctx := context.Background()

		usr := testUser(t, "ada@example.com")
		usr.Phone = "+2348030000000"
		payload, _ := security.NewPayload(usr.ID, 24*time.Hour, security.TokenScopeAccess)

		mockRepo.On("GetByPhone", ctx, "+2348030000000").Return(usr, nil)
		mockMaker.On("CreateToken", usr.ID, 24*time.Hour, security.TokenScopeAccess).
			Return("token-value", payload, nil)
		mockRepo.On("Update", ctx, usr).Return(nil)

		resp, err := srvc.Login(ctx, &LoginRequest{Identity: "+2348030000000", Password: "s3cret-pass"})

		assert.NoError(t, err)
		assert.Equal(t, "token-value", resp.AccessToken)
		mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Unknown User", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		srvc := newTestUserService(mockRepo, new(security.MockMaker), new(cache.MockCache))
		ctx := context.Background()

		mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		resp, err := srvc.Login(ctx, &LoginRequest{Identity: "ghost@example.com", Password: "whatever1"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		srvc := newTestUserService(mockRepo, new(security.MockMaker), new(cache.MockCache))
		ctx := context.Background()

		usr := testUser(t, "ada@example.com")
		mockRepo.On("GetByEmail", ctx, "ada@example.com").Return(usr, nil)

		resp, err := srvc.Login(ctx, &LoginRequest{Identity: "ada@example.com", Password: "not-the-pass"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("Inactive User", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		srvc := newTestUserService(mockRepo, new(security.MockMaker), new(cache.MockCache))
		ctx := context.Background()

		usr := testUser(t, "ada@example.com")
		inactive := false
		usr.IsActive = &inactive
		mockRepo.On("GetByEmail", ctx, "ada@example.com").Return(usr, nil)

		resp, err := srvc.Login(ctx, &LoginRequest{Identity: "ada@example.com", Password: "s3cret-pass"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestService_Logout(t *testing.T) {
	t.Run("Blacklists Until Expiry", func(t *testing.T) {
		mockCache := new(cache.MockCache)
		srvc := newTestUserService(new(mocks.MockUserRepository), new(security.MockMaker), mockCache)

		payload, _ := security.NewPayload(uuid.New(), time.Hour, security.TokenScopeAccess)
		key := blacklistKeyPrefix + payload.ID.String()

		mockCache.On("Set", mock.Anything, key, "revoked", mock.AnythingOfType("time.Duration")).Return(nil)

		err := srvc.Logout(context.Background(), payload)

		assert.NoError(t, err)
		mockCache.AssertExpectations(t)
	})

	t.Run("Expired Token Needs No Blacklist", func(t *testing.T) {
		mockCache := new(cache.MockCache)
		srvc := newTestUserService(new(mocks.MockUserRepository), new(security.MockMaker), mockCache)

		payload := &security.Payload{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			ExpiredAt: time.Now().Add(-time.Minute),
			Scope:     security.TokenScopeAccess,
		}

		err := srvc.Logout(context.Background(), payload)

		assert.NoError(t, err)
		mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_IsTokenRevoked(t *testing.T) {
	t.Run("Revoked", func(t *testing.T) {
		mockCache := new(cache.MockCache)
		srvc := newTestUserService(new(mocks.MockUserRepository), new(security.MockMaker), mockCache)
		ctx := context.Background()
		tokenID := uuid.New()

		mockCache.On("Get", ctx, blacklistKeyPrefix+tokenID.String()).Return("revoked", nil)

		assert.True(t, srvc.IsTokenRevoked(ctx, tokenID))
	})

	t.Run("Not Revoked", func(t *testing.T) {
		mockCache := new(cache.MockCache)
		srvc := newTestUserService(new(mocks.MockUserRepository), new(security.MockMaker), mockCache)
		ctx := context.Background()
		tokenID := uuid.New()

		mockCache.On("Get", ctx, blacklistKeyPrefix+tokenID.String()).Return("", cache.ErrCacheMiss)

		assert.False(t, srvc.IsTokenRevoked(ctx, tokenID))
	})

	t.Run("Cache Failure Counts As Not Revoked", func(t *testing.T) {
		mockCache := new(cache.MockCache)
		srvc := newTestUserService(new(mocks.MockUserRepository), new(security.MockMaker), mockCache)
		ctx := context.Background()
		tokenID := uuid.New()

		mockCache.On("Get", ctx, blacklistKeyPrefix+tokenID.String()).Return("", assert.AnError)

		assert.False(t, srvc.IsTokenRevoked(ctx, tokenID))
	})
}

func TestService_Me(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		srvc := newTestUserService(mockRepo, new(security.MockMaker), new(cache.MockCache))
		ctx := context.Background()

		usr := testUser(t, "ada@example.com")
		mockRepo.On("GetByID", ctx, usr.ID).Return(usr, nil)

		resp, err := srvc.Me(ctx, usr.ID)

		assert.NoError(t, err)
		assert.Equal(t, usr.Email, resp.Email)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		srvc := newTestUserService(mockRepo, new(security.MockMaker), new(cache.MockCache))
		ctx := context.Background()
		userID := uuid.New()

		mockRepo.On("GetByID", ctx, userID).Return(nil, gorm.ErrRecordNotFound)

		resp, err := srvc.Me(ctx, userID)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, models.ErrRecordNotFound)
	})
}
