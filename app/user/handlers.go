package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamara/atlas/app/api"
	"github.com/kamara/atlas/internal/sanitizer"
	"github.com/kamara/atlas/internal/validator"
	"github.com/kamara/atlas/models"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service  Service
	stripper sanitizer.HTMLStripperer
}

// NewHandler creates a new user handler
func NewHandler(service Service, stripper sanitizer.HTMLStripperer) *Handler {
	return &Handler{service: service, stripper: stripper}
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a new user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterUserRequest  true  "User registration details"
// @Success      201      {object}  api.Response{data=Response}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      409      {object}  api.Response{error=api.ErrorInfo}
// @Failure      500      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v, h.stripper) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			api.ConflictResponse(c, err.Error())
			return
		}
		api.InternalErrorResponse(c, "Failed to register user")
		return
	}

	api.CreatedResponse(c, "User registered successfully", resp)
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticate with email or phone and return an access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "User credentials"
// @Success      200      {object}  api.Response{data=LoginResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      401      {object}  api.Response{error=api.ErrorInfo}
// @Failure      500      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			api.UnauthorizedResponse(c)
			return
		}
		api.InternalErrorResponse(c, "Failed to log in")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// Logout godoc
// @Summary      Log out
// @Description  Revoke the presented access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Failure      500  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), ContextGetToken(c)); err != nil {
		api.InternalErrorResponse(c, "Failed to log out")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// Me godoc
// @Summary      Current user
// @Description  Get the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=Response}
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Failure      500  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	resp, err := h.service.Me(c.Request.Context(), ContextGetUser(c).ID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "User")
			return
		}
		api.InternalErrorResponse(c, "Failed to fetch user")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "User retrieved successfully", resp)
}
