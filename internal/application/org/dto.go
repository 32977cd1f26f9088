package org

import (
	"time"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/org"
)

// ==================== Branch DTOs ====================

// CreateBranchRequest represents a request to register a branch
type CreateBranchRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Province string `json:"province" binding:"max=100"`
	Address  string `json:"address" binding:"max=500"`
	Phone    string `json:"phone" binding:"max=50"`
}

// UpdateBranchRequest represents a request to update a branch
type UpdateBranchRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Province string `json:"province" binding:"max=100"`
	Address  string `json:"address" binding:"max=500"`
	Phone    string `json:"phone" binding:"max=50"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Province  string    `json:"province,omitempty"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBranchResponse converts a domain branch to a response DTO
func ToBranchResponse(b *org.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Province:  b.Province,
		Address:   b.Address,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ==================== Staff DTOs ====================

// CreateStaffRequest represents a request to register a staff member
type CreateStaffRequest struct {
	BranchID   *uuid.UUID `json:"branch_id"`
	FirstName  string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string     `json:"last_name" binding:"required,min=1,max=100"`
	FatherName string     `json:"father_name" binding:"max=100"`
	Position   string     `json:"position" binding:"required,min=1,max=100"`
	Phone      string     `json:"phone" binding:"max=50"`
	Email      string     `json:"email" binding:"omitempty,email"`
	DateJoined *time.Time `json:"date_joined"`
	Notes      string     `json:"notes"`
}

// UpdateStaffRequest represents a request to update a staff member
type UpdateStaffRequest struct {
	BranchID   *uuid.UUID `json:"branch_id"`
	FatherName *string    `json:"father_name"`
	Position   *string    `json:"position"`
	Phone      *string    `json:"phone"`
	Email      *string    `json:"email" binding:"omitempty,email"`
	DateLeft   *time.Time `json:"date_left"`
	Notes      *string    `json:"notes"`
}

// StaffListFilter represents filter options for staff queries
type StaffListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	BranchID *uuid.UUID
	Status   string
}

// StaffResponse represents a staff member in API responses
type StaffResponse struct {
	ID         uuid.UUID  `json:"id"`
	BranchID   *uuid.UUID `json:"branch_id,omitempty"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	FatherName string     `json:"father_name,omitempty"`
	Position   string     `json:"position"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	DateJoined *time.Time `json:"date_joined,omitempty"`
	DateLeft   *time.Time `json:"date_left,omitempty"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToStaffResponse converts a domain staff member to a response DTO
func ToStaffResponse(s *org.Staff) StaffResponse {
	return StaffResponse{
		ID:         s.ID,
		BranchID:   s.BranchID,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		FullName:   s.FullName(),
		FatherName: s.FatherName,
		Position:   s.Position,
		Phone:      s.Phone,
		Email:      s.Email,
		DateJoined: s.DateJoined,
		DateLeft:   s.DateLeft,
		Status:     string(s.Status),
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
	}
}
