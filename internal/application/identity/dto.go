package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/identity"
	"github.com/schoolms/backend/internal/infrastructure/auth"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the account it belongs to
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// CreateUserRequest represents an admin creating an account
type CreateUserRequest struct {
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8,max=128"`
	FullName string     `json:"full_name" binding:"required,min=1,max=200"`
	Role     string     `json:"role" binding:"required,oneof=admin staff"`
	BranchID *uuid.UUID `json:"branch_id"`
}

// UpdateUserRequest changes mutable account fields
type UpdateUserRequest struct {
	BranchID *uuid.UUID `json:"branch_id"`
	Status   *string    `json:"status" binding:"omitempty,oneof=active deactivated"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		BranchID:    u.BranchID,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func toLoginResponse(token *auth.Token, user *identity.User) *LoginResponse {
	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}
}
