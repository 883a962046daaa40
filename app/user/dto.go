package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kamara/atlas/internal/formatter"
	"github.com/kamara/atlas/internal/sanitizer"
	"github.com/kamara/atlas/internal/validator"
	"github.com/kamara/atlas/models"
)

// RegisterUserRequest represents the request to create a user.
type RegisterUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// Validate sanitizes the free-text fields, normalizes email and phone,
// and collects field errors.
func (r *RegisterUserRequest) Validate(v *validator.Validator, stripper sanitizer.HTMLStripperer) bool {
	r.FirstName = strings.TrimSpace(stripper.StripHTML(r.FirstName))
	r.LastName = strings.TrimSpace(stripper.StripHTML(r.LastName))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	v.Check(validator.NotBlank(r.FirstName), "first_name", "first name is required")
	v.Check(validator.MinRunes(r.FirstName, 2) && validator.MaxRunes(r.FirstName, 100), "first_name", "first name must be between 2 and 100 characters")
	v.Check(validator.NotBlank(r.LastName), "last_name", "last name is required")
	v.Check(validator.MinRunes(r.LastName, 2) && validator.MaxRunes(r.LastName, 100), "last_name", "last name must be between 2 and 100 characters")
	v.Check(models.IsEmail(r.Email), "email", "email is invalid")
	v.Check(validator.MinRunes(r.Password, 8), "password", "password must be at least 8 characters")

	if r.Phone != "" {
		formatted, err := formatter.FormatPhone(r.Phone, "")
		if err != nil {
			v.AddError("phone", "phone must be a valid international number")
		} else {
			r.Phone = formatted
		}
	}

	return v.Valid()
}

// LoginRequest represents the request to log in. Identity is an email
// address or a phone number in international form.
type LoginRequest struct {
	Identity string `json:"identity" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Response represents the response for user data.
type Response struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        Response  `json:"user"`
}

// ToResponse converts a models.User to Response
func ToResponse(user *models.User) *Response {
	return &Response{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
