package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolms/backend/internal/domain/shared"
)

// BudgetPeriod is the granularity of a branch budget
type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// IsValid checks whether the period is a known granularity
func (p BudgetPeriod) IsValid() bool {
	return p == PeriodMonthly || p == PeriodYearly
}

// BudgetKey identifies one budget bucket: a branch, a period, and a currency.
// Month is set only for monthly buckets.
type BudgetKey struct {
	BranchID uuid.UUID
	Period   BudgetPeriod
	Year     int
	Month    *int
	Currency string
}

// Range returns the inclusive date interval covered by the bucket
func (k BudgetKey) Range() (time.Time, time.Time) {
	if k.Period == PeriodYearly {
		start := time.Date(k.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(k.Year, time.December, 31, 23, 59, 59, 0, time.UTC)
		return start, end
	}
	month := time.January
	if k.Month != nil {
		month = time.Month(*k.Month)
	}
	start := time.Date(k.Year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// String renders the key for logging
func (k BudgetKey) String() string {
	if k.Period == PeriodYearly || k.Month == nil {
		return fmt.Sprintf("%s/%d/%s", k.BranchID, k.Year, k.Currency)
	}
	return fmt.Sprintf("%s/%d-%02d/%s", k.BranchID, k.Year, *k.Month, k.Currency)
}

// Budget represents a branch budget row. AllocatedAmount is operator-entered;
// SpentAmount is derived from confirmed transactions and is written only by
// the accrual recompute.
type Budget struct {
	shared.BaseAggregateRoot
	BranchID        uuid.UUID
	Period          BudgetPeriod
	Year            int
	Month           *int
	AllocatedAmount decimal.Decimal
	SpentAmount     decimal.Decimal
	Currency        string
	Notes           string
	CreatedBy       *uuid.UUID
}

// NewBudget creates a new budget row with zero spend
func NewBudget(
	branchID uuid.UUID,
	period BudgetPeriod,
	year int,
	month *int,
	allocated decimal.Decimal,
	currency string,
) (*Budget, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is required")
	}
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Unknown budget period %q", period))
	}
	if period == PeriodMonthly {
		if month == nil || *month < 1 || *month > 12 {
			return nil, shared.NewDomainError("INVALID_MONTH", "Monthly budgets require a month between 1 and 12")
		}
	} else {
		month = nil
	}
	if year < 1 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is required")
	}
	if allocated.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocated amount cannot be negative")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is required")
	}

	return &Budget{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		Period:            period,
		Year:              year,
		Month:             month,
		AllocatedAmount:   allocated,
		SpentAmount:       decimal.Zero,
		Currency:          currency,
	}, nil
}

// Key returns the bucket this budget row tracks
func (b *Budget) Key() BudgetKey {
	return BudgetKey{
		BranchID: b.BranchID,
		Period:   b.Period,
		Year:     b.Year,
		Month:    b.Month,
		Currency: b.Currency,
	}
}

// SetAllocated updates the operator-entered allocation
func (b *Budget) SetAllocated(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocated amount cannot be negative")
	}
	b.AllocatedAmount = amount
	b.Touch()
	b.IncrementVersion()
	return nil
}

// SetNotes sets the free-form notes
func (b *Budget) SetNotes(notes string) {
	b.Notes = notes
	b.Touch()
}

// SetCreatedBy records the creating user
func (b *Budget) SetCreatedBy(userID uuid.UUID) {
	b.CreatedBy = &userID
}

// Remaining returns allocated minus spent
func (b *Budget) Remaining() decimal.Decimal {
	return b.AllocatedAmount.Sub(b.SpentAmount)
}
