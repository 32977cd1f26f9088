package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/shared"
)

// Repository defines persistence operations for the report registry
type Repository interface {
	// Upsert replaces any existing entry for the same (branch, period) pair
	// so regeneration never accumulates duplicate rows.
	Upsert(ctx context.Context, entry *GeneratedReport) error

	FindByID(ctx context.Context, id uuid.UUID) (*GeneratedReport, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]GeneratedReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
