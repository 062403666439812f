package dto

import (
	"time"

	"gaming-community-api/internal/domain"
)

// LoginRequest carries the identity provider ID token to exchange for an API token
type LoginRequest struct {
	IDToken string `json:"id_token" binding:"required" example:"eyJhbGciOiJSUzI1NiIs..."`
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID          string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email       string    `json:"email" example:"player@example.com"`
	DisplayName string    `json:"display_name" example:"ProGamer99"`
	PhotoURL    string    `json:"photo_url,omitempty" example:"https://example.com/avatar.png"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse is returned after a successful login
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type" example:"Bearer"`
	ExpiresIn   int64        `json:"expires_in" example:"604800"`
	User        UserResponse `json:"user"`
}

// ToUserResponse converts a user entity to its response representation
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		CreatedAt:   user.CreatedAt,
	}
}
