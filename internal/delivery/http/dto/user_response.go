package dto

import (
	"time"

	"talent-track/internal/domain/user"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Email: u.Email, CreatedAt: u.CreatedAt}
}
