package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kamara/atlas/models"
)

const uniqueViolationCode = "23505"

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new favorites repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// GetOrCreate returns the user's favorites document, inserting an empty
// one the first time the user touches favorites
func (r *repository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.UserFavorites, error) {
	doc := models.UserFavorites{UserID: userID, Favorites: models.CountryList{}}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Attrs(models.UserFavorites{Favorites: models.CountryList{}}).
		FirstOrCreate(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Append adds the country to the user's document. The whole
// read-modify-write runs in one transaction with the row locked, so
// concurrent appends cannot lose each other's entries.
func (r *repository) Append(ctx context.Context, userID uuid.UUID, country models.Country) (*models.UserFavorites, error) {
	return r.mutate(ctx, userID, true, func(list models.CountryList) models.CountryList {
		return list.Union(country)
	})
}

// Remove drops any entry with the given code from the user's document.
// Unlike Append, a missing document is an error, not an implicit create.
func (r *repository) Remove(ctx context.Context, userID uuid.UUID, code string) (*models.UserFavorites, error) {
	return r.mutate(ctx, userID, false, func(list models.CountryList) models.CountryList {
		return list.Reject(code)
	})
}

// mutate runs a locked read-modify-write on the user's document. Two
// first-time appends can race: SELECT FOR UPDATE locks nothing when the
// row does not exist yet, so both transactions insert and the loser
// hits the unique index. The loser retries once; by then the row exists
// and the locked read serializes the writers.
func (r *repository) mutate(ctx context.Context, userID uuid.UUID, createIfMissing bool, apply func(models.CountryList) models.CountryList) (*models.UserFavorites, error) {
	doc, err := r.mutateOnce(ctx, userID, createIfMissing, apply)
	if createIfMissing && isUniqueViolation(err) {
		doc, err = r.mutateOnce(ctx, userID, createIfMissing, apply)
	}
	return doc, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

func (r *repository) mutateOnce(ctx context.Context, userID uuid.UUID, createIfMissing bool, apply func(models.CountryList) models.CountryList) (*models.UserFavorites, error) {
	var doc models.UserFavorites

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !createIfMissing {
				return err
			}
			doc = models.UserFavorites{UserID: userID, Favorites: models.CountryList{}}
			if err := tx.Create(&doc).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		doc.Favorites = apply(doc.Favorites)
		return tx.Save(&doc).Error
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
