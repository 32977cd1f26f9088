package persistence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/schoolms/backend/internal/infrastructure/persistence/models"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func intPtr(v int) *int { return &v }

// setupTestDB opens an in-memory sqlite database and migrates the given models
func setupTestDB(t *testing.T, dst ...any) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(dst...))
	return db
}

func setupBudgetTestDB(t *testing.T) *gorm.DB {
	return setupTestDB(t, &models.BudgetModel{})
}

func setupReportTestDB(t *testing.T) *gorm.DB {
	return setupTestDB(t, &models.GeneratedReportModel{})
}
