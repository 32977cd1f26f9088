package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for user accounts
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
