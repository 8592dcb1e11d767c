package response

import (
	"time"

	"store-rating/internal/data/entity"
)

type UserSummary struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Address *string         `json:"address"`
	Role    entity.UserRole `json:"role"`
	OwnerID *string         `json:"owner_id,omitempty"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UserToSummary converts a user entity into its wire summary
func UserToSummary(user *entity.User) UserSummary {
	return UserSummary{
		ID:      user.ID.String(),
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Role:    user.Role,
		OwnerID: user.OwnerID,
	}
}
