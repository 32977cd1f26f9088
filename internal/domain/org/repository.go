package org

import (
	"context"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/shared"
)

// BranchRepository defines persistence operations for branches
type BranchRepository interface {
	Save(ctx context.Context, branch *Branch) error
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Branch, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaffFilter extends the common filter with staff specific criteria
type StaffFilter struct {
	shared.Filter
	BranchID *uuid.UUID
	Status   StaffStatus
}

// StaffRepository defines persistence operations for staff members
type StaffRepository interface {
	Save(ctx context.Context, staff *Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	FindAll(ctx context.Context, filter StaffFilter) ([]*Staff, error)
	Count(ctx context.Context, filter StaffFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
