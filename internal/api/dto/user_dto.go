package dto

import (
	"time"

	"github.com/helpdesklabs/helpdesk-api/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  *string `json:"role"`
}

// UpdateUserRequest payload. Absent fields are left untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse response.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      *string   `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps a domain user onto the wire shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
