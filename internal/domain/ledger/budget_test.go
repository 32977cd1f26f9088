package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewBudget(t *testing.T) {
	branchID := uuid.New()

	t.Run("creates monthly budget with zero spend", func(t *testing.T) {
		b, err := NewBudget(branchID, PeriodMonthly, 2025, intPtr(3), decimal.NewFromInt(5000), "USD")

		require.NoError(t, err)
		assert.Equal(t, branchID, b.BranchID)
		assert.True(t, b.SpentAmount.IsZero())
		assert.True(t, b.AllocatedAmount.Equal(decimal.NewFromInt(5000)))
		require.NotNil(t, b.Month)
		assert.Equal(t, 3, *b.Month)
	})

	t.Run("creates yearly budget and drops month", func(t *testing.T) {
		b, err := NewBudget(branchID, PeriodYearly, 2025, intPtr(6), decimal.NewFromInt(60000), "AFN")

		require.NoError(t, err)
		assert.Nil(t, b.Month)
	})

	t.Run("allows zero allocation", func(t *testing.T) {
		b, err := NewBudget(branchID, PeriodYearly, 2025, nil, decimal.Zero, "USD")

		require.NoError(t, err)
		assert.True(t, b.AllocatedAmount.IsZero())
	})

	t.Run("fails without branch", func(t *testing.T) {
		b, err := NewBudget(uuid.Nil, PeriodMonthly, 2025, intPtr(1), decimal.NewFromInt(100), "USD")

		assert.Error(t, err)
		assert.Nil(t, b)
	})

	t.Run("fails for monthly without month", func(t *testing.T) {
		b, err := NewBudget(branchID, PeriodMonthly, 2025, nil, decimal.NewFromInt(100), "USD")

		assert.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "month between 1 and 12")
	})

	t.Run("fails for month out of range", func(t *testing.T) {
		b, err := NewBudget(branchID, PeriodMonthly, 2025, intPtr(13), decimal.NewFromInt(100), "USD")

		assert.Error(t, err)
		assert.Nil(t, b)
	})

	t.Run("fails with negative allocation", func(t *testing.T) {
		b, err := NewBudget(branchID, PeriodYearly, 2025, nil, decimal.NewFromInt(-1), "USD")

		assert.Error(t, err)
		assert.Nil(t, b)
	})

	t.Run("fails with unknown period", func(t *testing.T) {
		b, err := NewBudget(branchID, BudgetPeriod("weekly"), 2025, nil, decimal.NewFromInt(100), "USD")

		assert.Error(t, err)
		assert.Nil(t, b)
	})
}

func TestBudgetKey_Range(t *testing.T) {
	branchID := uuid.New()

	t.Run("monthly range covers the whole month", func(t *testing.T) {
		key := BudgetKey{BranchID: branchID, Period: PeriodMonthly, Year: 2025, Month: intPtr(2), Currency: "USD"}

		start, end := key.Range()

		assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC), end)
	})

	t.Run("handles leap year february", func(t *testing.T) {
		key := BudgetKey{BranchID: branchID, Period: PeriodMonthly, Year: 2024, Month: intPtr(2), Currency: "USD"}

		_, end := key.Range()

		assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), end)
	})

	t.Run("yearly range covers the whole year", func(t *testing.T) {
		key := BudgetKey{BranchID: branchID, Period: PeriodYearly, Year: 2025, Currency: "USD"}

		start, end := key.Range()

		assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), end)
	})
}

func TestBudget_SetAllocated(t *testing.T) {
	b, err := NewBudget(uuid.New(), PeriodYearly, 2025, nil, decimal.NewFromInt(1000), "USD")
	require.NoError(t, err)

	t.Run("updates allocation", func(t *testing.T) {
		require.NoError(t, b.SetAllocated(decimal.NewFromInt(2000)))
		assert.True(t, b.AllocatedAmount.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("rejects negative allocation", func(t *testing.T) {
		err := b.SetAllocated(decimal.NewFromInt(-5))
		assert.Error(t, err)
	})
}

func TestBudget_Remaining(t *testing.T) {
	b, err := NewBudget(uuid.New(), PeriodYearly, 2025, nil, decimal.NewFromInt(1000), "USD")
	require.NoError(t, err)
	b.SpentAmount = decimal.NewFromInt(300)

	assert.True(t, b.Remaining().Equal(decimal.NewFromInt(700)))
}
