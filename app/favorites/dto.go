package favorites

import (
	"github.com/kamara/atlas/models"
)

// AddFavoriteRequest is the country being favorited. Clients post the
// country value they already hold from the catalog; the code is
// uppercased before storage, the rest is kept as posted.
type AddFavoriteRequest struct {
	Country models.Country `json:"country" binding:"required"`
}

// FavoriteStatusResponse reports whether one code is favorited
type FavoriteStatusResponse struct {
	CCA3     string `json:"cca3"`
	Favorite bool   `json:"favorite"`
}

// FavoritesResponse is the user's favorites set
type FavoritesResponse struct {
	Total     int              `json:"total"`
	Countries []models.Country `json:"countries"`
}

// ToFavoritesResponse converts a favorites list to its response form
func ToFavoritesResponse(countries []models.Country) *FavoritesResponse {
	if countries == nil {
		countries = []models.Country{}
	}
	return &FavoritesResponse{
		Total:     len(countries),
		Countries: countries,
	}
}
