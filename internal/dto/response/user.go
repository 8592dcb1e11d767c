package response

type DashboardResponse struct {
	TotalUsers   int64 `json:"total_users"`
	TotalStores  int64 `json:"total_stores"`
	TotalRatings int64 `json:"total_ratings"`
}

// UserDetailResponse adds the owner's aggregate rating; OwnerRating is
// null for non-owner users.
type UserDetailResponse struct {
	UserSummary
	OwnerRating *float64 `json:"owner_rating"`
}

type UpdateOwnerIDResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}
