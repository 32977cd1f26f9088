package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolms/backend/internal/domain/shared"
)

// TransactionFilter defines filtering options for transaction queries
type TransactionFilter struct {
	shared.Filter
	Status   *TransactionStatus
	BranchID *uuid.UUID
	Currency string
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	Save(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindAll(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	Count(ctx context.Context, filter TransactionFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindForPeriod returns transactions dated within [from,to] inclusive,
	// ordered by transaction date ascending. A non-nil branchID restricts the
	// result to transfers where the branch is sender or receiver.
	FindForPeriod(ctx context.Context, branchID *uuid.UUID, from, to time.Time) ([]Transaction, error)

	// SumConfirmed returns the sum of amounts over confirmed transactions
	// received by the branch in the given currency and interval.
	SumConfirmed(ctx context.Context, branchID uuid.UUID, currency string, from, to time.Time) (decimal.Decimal, error)

	GenerateTransactionNumber(ctx context.Context) (string, error)
}

// BudgetRepository defines persistence operations for branch budgets
type BudgetRepository interface {
	Save(ctx context.Context, budget *Budget) error
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Budget, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByKey returns the budget row for a bucket, or shared.ErrNotFound
	// when no row exists for it.
	FindByKey(ctx context.Context, key BudgetKey) (*Budget, error)

	// UpdateSpent writes a recomputed spent amount on a budget row
	UpdateSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error
}
