package favorites

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/kamara/atlas/models"
	"github.com/kamara/atlas/tests/suites"
)

type FavoritesRepositoryTestSuite struct {
	suites.RepositoryTestSuite
	repo Repository
}

func (suite *FavoritesRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration test")
	}

	suite.AutoMigrate = true

	suite.RepositoryTestSuite.SetupSuite()

	suite.repo = NewRepository(suite.DB)
}

func TestFavoritesRepository(t *testing.T) {
	suite.Run(t, new(FavoritesRepositoryTestSuite))
}

func (suite *FavoritesRepositoryTestSuite) createTestUser() uuid.UUID {
	hash, err := models.HashPassword("s3cret-pass")
	suite.Require().NoError(err)

	user := &models.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: hash,
	}
	suite.Require().NoError(suite.DB.Create(user).Error)
	return user.ID
}

func (suite *FavoritesRepositoryTestSuite) TestGetOrCreate_CreatesEmptyDocument() {
	ctx := context.Background()
	userID := suite.createTestUser()

	doc, err := suite.repo.GetOrCreate(ctx, userID)
	suite.AssertNoDBError(err)
	suite.Assert().Equal(userID, doc.UserID)
	suite.Assert().Empty(doc.Favorites)
	suite.Assert().Equal(int64(1), suite.CountRecords("user_favorites"))

	// a second read returns the same document, not another row
	again, err := suite.repo.GetOrCreate(ctx, userID)
	suite.AssertNoDBError(err)
	suite.Assert().Equal(doc.UserID, again.UserID)
	suite.Assert().Equal(int64(1), suite.CountRecords("user_favorites"))
}

func (suite *FavoritesRepositoryTestSuite) TestAppend_CreatesDocument() {
	ctx := context.Background()
	userID := suite.createTestUser()

	doc, err := suite.repo.Append(ctx, userID, models.Country{
		CCA3:   "FRA",
		Name:   models.CountryName{Common: "France"},
		Region: "Europe",
	})
	suite.AssertNoDBError(err)
	suite.Assert().Len(doc.Favorites, 1)
	suite.Assert().Equal("FRA", doc.Favorites[0].CCA3)
}

func (suite *FavoritesRepositoryTestSuite) TestAppend_DuplicateIsNoOp() {
	ctx := context.Background()
	userID := suite.createTestUser()

	country := models.Country{
		CCA3:   "FRA",
		Name:   models.CountryName{Common: "France"},
		Region: "Europe",
	}

	_, err := suite.repo.Append(ctx, userID, country)
	suite.AssertNoDBError(err)

	doc, err := suite.repo.Append(ctx, userID, country)
	suite.AssertNoDBError(err)
	suite.Assert().Len(doc.Favorites, 1)
}

func (suite *FavoritesRepositoryTestSuite) TestAppend_KeepsExistingEntries() {
	ctx := context.Background()
	userID := suite.createTestUser()

	_, err := suite.repo.Append(ctx, userID, models.Country{
		CCA3: "FRA", Name: models.CountryName{Common: "France"}, Region: "Europe",
	})
	suite.AssertNoDBError(err)

	doc, err := suite.repo.Append(ctx, userID, models.Country{
		CCA3: "DEU", Name: models.CountryName{Common: "Germany"}, Region: "Europe",
	})
	suite.AssertNoDBError(err)
	suite.Assert().Len(doc.Favorites, 2)
	suite.Assert().True(doc.Favorites.Contains("FRA"))
	suite.Assert().True(doc.Favorites.Contains("DEU"))
}

func (suite *FavoritesRepositoryTestSuite) TestRemove() {
	ctx := context.Background()
	userID := suite.createTestUser()

	_, err := suite.repo.Append(ctx, userID, models.Country{
		CCA3: "FRA", Name: models.CountryName{Common: "France"}, Region: "Europe",
	})
	suite.AssertNoDBError(err)

	doc, err := suite.repo.Remove(ctx, userID, "FRA")
	suite.AssertNoDBError(err)
	suite.Assert().Empty(doc.Favorites)
}

func (suite *FavoritesRepositoryTestSuite) TestRemove_AbsentEntryIsNoOp() {
	ctx := context.Background()
	userID := suite.createTestUser()

	_, err := suite.repo.Append(ctx, userID, models.Country{
		CCA3: "FRA", Name: models.CountryName{Common: "France"}, Region: "Europe",
	})
	suite.AssertNoDBError(err)

	doc, err := suite.repo.Remove(ctx, userID, "USA")
	suite.AssertNoDBError(err)
	suite.Assert().Len(doc.Favorites, 1)
}

func (suite *FavoritesRepositoryTestSuite) TestRemove_MissingDocument() {
	ctx := context.Background()
	userID := suite.createTestUser()

	doc, err := suite.repo.Remove(ctx, userID, "FRA")
	suite.AssertDBError(err)
	suite.Assert().Nil(doc)
	suite.Assert().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *FavoritesRepositoryTestSuite) TestConcurrentAppendsLoseNothing() {
	ctx := context.Background()
	userID := suite.createTestUser()

	countries := []models.Country{
		{CCA3: "FRA", Name: models.CountryName{Common: "France"}, Region: "Europe"},
		{CCA3: "DEU", Name: models.CountryName{Common: "Germany"}, Region: "Europe"},
		{CCA3: "USA", Name: models.CountryName{Common: "United States"}, Region: "Americas"},
		{CCA3: "CAN", Name: models.CountryName{Common: "Canada"}, Region: "Americas"},
	}

	errs := make(chan error, len(countries))
	for _, country := range countries {
		go func(country models.Country) {
			_, err := suite.repo.Append(ctx, userID, country)
			errs <- err
		}(country)
	}
	for range countries {
		suite.AssertNoDBError(<-errs)
	}

	doc, err := suite.repo.GetOrCreate(ctx, userID)
	suite.AssertNoDBError(err)
	suite.Assert().Len(doc.Favorites, len(countries))
	// the racing first appends must converge on a single document
	suite.Assert().Equal(int64(1), suite.CountRecords("user_favorites"))
}
