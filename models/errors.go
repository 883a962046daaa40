package models

import "errors"

var (
	ErrInvalidCountryCode = errors.New("invalid country code")
	ErrInvalidCountryName = errors.New("invalid country name")
	ErrInvalidRegion      = errors.New("invalid region")

	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrDuplicateEmail   = errors.New("a user with this email already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")

	ErrRecordNotFound = errors.New("record not found")
)
