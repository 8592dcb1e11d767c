package request

type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=20,max=60"`
	Email    string  `json:"email" validate:"required,email"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=400"`
	Password string  `json:"password" validate:"required,userpassword"`
	Role     string  `json:"role" validate:"required"`
	OwnerID  *string `json:"owner_id,omitempty" validate:"omitempty,max=20"`
}

type UpdateOwnerIDRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=20"`
}
