package response

import (
	"time"

	"store-rating/internal/data/repository"
)

type MyRatingResponse struct {
	ID           string    `json:"id"`
	StoreID      string    `json:"store_id"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
	StoreName    string    `json:"store_name"`
	StoreAddress *string   `json:"store_address"`
}

type RaterResponse struct {
	ID     string `json:"id"`
	Rating int    `json:"rating"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func MyRatingToResponse(row *repository.UserRatingRow) MyRatingResponse {
	return MyRatingResponse{
		ID:           row.ID.String(),
		StoreID:      row.StoreID.String(),
		Rating:       row.Rating,
		CreatedAt:    row.CreatedAt,
		StoreName:    row.StoreName,
		StoreAddress: row.StoreAddress,
	}
}

func RaterToResponse(row *repository.RaterRow) RaterResponse {
	return RaterResponse{
		ID:     row.RatingID.String(),
		Rating: row.Rating,
		UserID: row.UserID.String(),
		Name:   row.Name,
		Email:  row.Email,
	}
}
