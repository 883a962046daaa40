package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/kamara/atlas/internal/cache"
	"github.com/kamara/atlas/internal/logger"
	"github.com/kamara/atlas/internal/security"
	"github.com/kamara/atlas/models"
)

// postgres unique_violation
const uniqueViolationCode = "23505"

const blacklistKeyPrefix = "blacklist:"

type service struct {
	repo       Repository
	tokenMaker security.Maker
	cache      cache.Cache[string]
	cfg        *Config
	logger     logger.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, tokenMaker security.Maker, c cache.Cache[string], cfg *Config, log logger.Logger) Service {
	return &service{
		repo:       repo,
		tokenMaker: tokenMaker,
		cache:      c,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterUserRequest) (*Response, error) {
	hashedPassword, err := models.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, models.ErrDuplicateEmail
		}
		return nil, err
	}

	return ToResponse(user), nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var user *models.User
	var err error

	if models.IsEmail(req.Identity) {
		user, err = s.repo.GetByEmail(ctx, req.Identity)
	} else {
		user, err = s.repo.GetByPhone(ctx, req.Identity)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !models.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	if user.IsActive != nil && !*user.IsActive {
		return nil, models.ErrInvalidCredentials
	}

	accessToken, payload, err := s.tokenMaker.CreateToken(user.ID, s.cfg.AccessTokenDuration, security.TokenScopeAccess)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		// a failed timestamp write must not block the login
		s.logger.Error(err, logger.Fields{"user_id": user.ID.String()})
	}

	return &LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   payload.ExpiredAt,
		User:        *ToResponse(user),
	}, nil
}

// Logout blacklists the presented token until it would have expired
// anyway. Verification checks the blacklist, so the token is dead for
// every later request.
func (s *service) Logout(_ context.Context, payload *security.Payload) error {
	ttl := time.Until(payload.ExpiredAt)
	if ttl <= 0 {
		return nil
	}
	// detach from the request context so a canceled request cannot
	// leave a live token behind
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.cache.Set(ctx, blacklistKeyPrefix+payload.ID.String(), "revoked", ttl)
}

// IsTokenRevoked reports whether the token ID has been blacklisted. A
// cache failure counts as not revoked; availability wins over a
// slightly longer-lived token.
func (s *service) IsTokenRevoked(ctx context.Context, tokenID uuid.UUID) bool {
	_, err := s.cache.Get(ctx, blacklistKeyPrefix+tokenID.String())
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Error(err, logger.Fields{"token_id": tokenID.String()})
	}
	return false
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*Response, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	return ToResponse(user), nil
}
