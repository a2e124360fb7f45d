package dto

import (
	"github.com/sotakano/todo-api/internal/models"
)

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}
}
