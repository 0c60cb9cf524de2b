package request

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=5"`
	FirstName string `json:"first_name" validate:"omitempty,max=255"`
	LastName  string `json:"last_name" validate:"omitempty,max=255"`
}

// LoginRequest is checked by the service so that a missing field yields the
// same non_field message as a wrong password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest serves both PUT and PATCH; nil fields are left unchanged.
type UpdateUserRequest struct {
	Password  *string `json:"password,omitempty" validate:"omitempty,min=5"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=255"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=255"`
}
