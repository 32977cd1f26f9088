package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolms/backend/internal/domain/report"
	"github.com/schoolms/backend/internal/domain/shared"
)

func newRegistryEntry(branchID *uuid.UUID, periodLabel string) *report.GeneratedReport {
	fileName, filePath := report.ArtifactKey("Kabul Main", periodLabel)
	return report.NewGeneratedReport(
		branchID,
		report.ModeSingle,
		periodLabel,
		fileName, filePath,
		2048,
		12,
		decimal.NewFromInt(34500),
		"USD",
		nil,
	)
}

func TestGormReportRepository_Upsert(t *testing.T) {
	db := setupReportTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()
	branchID := uuid.New()

	t.Run("inserts a new entry", func(t *testing.T) {
		entry := newRegistryEntry(&branchID, "2025-03")

		require.NoError(t, repo.Upsert(ctx, entry))

		found, err := repo.FindByID(ctx, entry.GetID())
		require.NoError(t, err)
		assert.Equal(t, "2025-03", found.ReportPeriod)
		assert.Equal(t, report.StatusCompleted, found.Status)
	})

	t.Run("replaces the entry for the same branch and period", func(t *testing.T) {
		replacement := newRegistryEntry(&branchID, "2025-03")
		replacement.TransactionCount = 20

		require.NoError(t, repo.Upsert(ctx, replacement))

		entries, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, replacement.GetID(), entries[0].GetID())
		assert.Equal(t, 20, entries[0].TransactionCount)
	})

	t.Run("different period gets its own row", func(t *testing.T) {
		entry := newRegistryEntry(&branchID, "2025-04")

		require.NoError(t, repo.Upsert(ctx, entry))

		entries, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("all-branches scope is tracked separately from branch scope", func(t *testing.T) {
		allBranches := newRegistryEntry(nil, "2025-03")

		require.NoError(t, repo.Upsert(ctx, allBranches))

		entries, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, entries, 3)

		// Re-upserting the all-branches scope replaces only the nil-branch row
		require.NoError(t, repo.Upsert(ctx, newRegistryEntry(nil, "2025-03")))

		entries, err = repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

func TestGormReportRepository_Delete(t *testing.T) {
	db := setupReportTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	entry := newRegistryEntry(nil, "2025")
	require.NoError(t, repo.Upsert(ctx, entry))

	require.NoError(t, repo.Delete(ctx, entry.GetID()))
	assert.ErrorIs(t, repo.Delete(ctx, entry.GetID()), shared.ErrNotFound)

	_, err := repo.FindByID(ctx, entry.GetID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
