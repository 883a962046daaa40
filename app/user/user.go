package user

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kamara/atlas/app/api"
	"github.com/kamara/atlas/internal/security"
	"github.com/kamara/atlas/models"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
)

const (
	ContextUser  = "context_user"
	ContextToken = "context_token"
)

// ContextSetUser sets the user in the context
func ContextSetUser(c *gin.Context, user *models.User) *gin.Context {
	c.Set(ContextUser, user)
	return c
}

// ContextSetToken sets the token payload in the context
func ContextSetToken(c *gin.Context, payload *security.Payload) *gin.Context {
	c.Set(ContextToken, payload)
	return c
}

// ContextGetUser gets the user from the context
func ContextGetUser(c *gin.Context) *models.User {
	user, ok := c.Get(ContextUser)
	if !ok {
		panic("missing user value in context")
	}
	return user.(*models.User)
}

// ContextGetToken gets the token payload from the context
func ContextGetToken(c *gin.Context) *security.Payload {
	token, ok := c.Get(ContextToken)
	if !ok {
		panic("missing token value in context")
	}
	return token.(*security.Payload)
}

// AuthMiddleware verifies the bearer token, rejects blacklisted tokens,
// and resolves the authenticated user into the gin context.
func AuthMiddleware(tokenMaker security.Maker, service Service, repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Vary", AuthorizationHeaderKey)

		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || fields[0] != AuthorizationTypeBearer {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if payload.Scope != security.TokenScopeAccess {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if service.IsTokenRevoked(c.Request.Context(), payload.ID) {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		user, err := repo.GetByID(c.Request.Context(), payload.UserID)
		if err != nil {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if user.IsActive != nil && !*user.IsActive {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		ContextSetUser(c, user)
		ContextSetToken(c, payload)

		c.Next()
	}
}
