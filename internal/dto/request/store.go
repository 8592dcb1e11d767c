package request

// AdminStoreRequest creates or updates a store on the admin surface.
// OwnerID is the internal id of the owning user, not the business code.
type AdminStoreRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=60"`
	Email   string  `json:"email" validate:"required,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
	OwnerID *string `json:"owner_id,omitempty" validate:"omitempty,uuid"`
}

// OwnerStoreRequest upserts the caller's own store; ownership is taken
// from the authenticated user, never from the body.
type OwnerStoreRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=60"`
	Email   string  `json:"email" validate:"required,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
}
