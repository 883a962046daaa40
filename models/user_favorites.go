package models

import (
	"time"

	"github.com/google/uuid"
)

// UserFavorites is the per-user favorites document. One row per user,
// keyed by the user's ID, holding the whole favorites set as a JSONB
// array. The document is created lazily on first read or first add and
// is never deleted by the application; its lifetime tracks the user row.
type UserFavorites struct {
	UserID    uuid.UUID   `gorm:"type:uuid;primary_key" json:"user_id"`
	Favorites CountryList `gorm:"type:jsonb;not null;default:'[]'" json:"favorites"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for UserFavorites model
func (*UserFavorites) TableName() string {
	return "user_favorites"
}

// Validate checks the document key.
func (f *UserFavorites) Validate() error {
	if f.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	return nil
}
