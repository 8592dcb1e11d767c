package response

import (
	"store-rating/internal/data/entity"
	"store-rating/internal/data/repository"
)

type StoreResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address *string `json:"address"`
	OwnerID *string `json:"owner_id"`
}

// PublicStoreResponse carries the aggregate average plus the caller's own
// rating when authenticated
type PublicStoreResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Address    *string `json:"address"`
	AvgRating  float64 `json:"avg_rating"`
	UserRating *int    `json:"user_rating"`
}

type AdminStoreResponse struct {
	StoreResponse
	Rating float64 `json:"rating"`
}

type AverageResponse struct {
	Average float64 `json:"average"`
}

type OwnerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DeletedStore struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	OwnerID        *string    `json:"owner_id,omitempty"`
	OwnerInfo      *OwnerInfo `json:"owner_info,omitempty"`
	RatingsDeleted int64      `json:"ratings_deleted"`
}

type DeleteStoreResponse struct {
	Message      string       `json:"message"`
	DeletedStore DeletedStore `json:"deleted_store"`
}

// Helper converters

func StoreToResponse(store *entity.Store) StoreResponse {
	resp := StoreResponse{
		ID:      store.ID.String(),
		Name:    store.Name,
		Email:   store.Email,
		Address: store.Address,
	}
	if store.OwnerID != nil {
		ownerID := store.OwnerID.String()
		resp.OwnerID = &ownerID
	}
	return resp
}

func PublicStoreToResponse(row *repository.StoreListRow) PublicStoreResponse {
	return PublicStoreResponse{
		ID:         row.ID.String(),
		Name:       row.Name,
		Email:      row.Email,
		Address:    row.Address,
		AvgRating:  row.AvgRating,
		UserRating: row.UserRating,
	}
}

func AdminStoreToResponse(row *repository.StoreRatingRow) AdminStoreResponse {
	return AdminStoreResponse{
		StoreResponse: StoreToResponse(&row.Store),
		Rating:        row.AvgRating,
	}
}
