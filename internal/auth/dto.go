package auth

import (
	"github.com/angelmondragon/inventory-backend/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed access token and the authenticated user.
type LoginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    *users.UserDTO `json:"user"`
}

// RegisterRequest contains the payload required to create an operator account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty"`
}

// RegisterResponse is returned with 201 after a successful registration.
type RegisterResponse struct {
	Message string         `json:"message"`
	User    *users.UserDTO `json:"user"`
}
