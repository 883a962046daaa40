package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/kamara/atlas/internal/security"
	"github.com/kamara/atlas/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type Service interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*Response, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, payload *security.Payload) error
	Me(ctx context.Context, userID uuid.UUID) (*Response, error)
	IsTokenRevoked(ctx context.Context, tokenID uuid.UUID) bool
}
