package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/schoolms/backend/internal/domain/ledger"
	"github.com/schoolms/backend/internal/domain/shared"
	"github.com/schoolms/backend/internal/infrastructure/persistence/models"
)

// newMockTransactionRepository creates a GormTransactionRepository with a mocked SQL connection
func newMockTransactionRepository(t *testing.T) (*GormTransactionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTransactionRepository(gormDB), mock, mockDB
}

func TestGormTransactionRepository_FindByID(t *testing.T) {
	t.Run("finds existing transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockTransactionRepository(t)
		defer mockDB.Close()

		txID := uuid.New()
		fromBranch := uuid.New()
		toBranch := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "transaction_number", "from_branch_id", "to_branch_id",
			"from_staff_id", "to_staff_id", "amount", "currency", "status", "purpose",
		}).AddRow(txID, "TXN-202503-00001", fromBranch, toBranch,
			uuid.New(), uuid.New(), "1500", "USD", "confirmed", "Salaries")

		mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(txID, 1).
			WillReturnRows(rows)

		tx, err := repo.FindByID(context.Background(), txID)

		require.NoError(t, err)
		assert.Equal(t, txID, tx.ID)
		assert.Equal(t, "TXN-202503-00001", tx.TransactionNumber)
		assert.Equal(t, ledger.StatusConfirmed, tx.Status)
		assert.True(t, tx.Amount.Equal(decimalFromString(t, "1500")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockTransactionRepository(t)
		defer mockDB.Close()

		txID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(txID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		tx, err := repo.FindByID(context.Background(), txID)

		assert.Nil(t, tx)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTransactionRepository_SumConfirmed(t *testing.T) {
	repo, mock, mockDB := newMockTransactionRepository(t)
	defer mockDB.Close()

	branchID := uuid.New()
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) as total FROM "transactions"`).
		WithArgs(branchID, "USD", string(ledger.StatusConfirmed), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("2750.50"))

	total, err := repo.SumConfirmed(context.Background(), branchID, "USD", from, to)

	require.NoError(t, err)
	assert.Equal(t, "2750.5", total.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionRepository_Delete(t *testing.T) {
	t.Run("deletes existing transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockTransactionRepository(t)
		defer mockDB.Close()

		txID := uuid.New()
		mock.ExpectExec(`DELETE FROM "transactions" WHERE id = \$1`).
			WithArgs(txID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), txID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockTransactionRepository(t)
		defer mockDB.Close()

		txID := uuid.New()
		mock.ExpectExec(`DELETE FROM "transactions" WHERE id = \$1`).
			WithArgs(txID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), txID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTransactionRepository_GenerateTransactionNumber(t *testing.T) {
	repo, mock, mockDB := newMockTransactionRepository(t)
	defer mockDB.Close()

	yearMonth := time.Now().Format("200601")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions" WHERE transaction_number LIKE \$1`).
		WithArgs(fmt.Sprintf("TXN-%s-%%", yearMonth)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	number, err := repo.GenerateTransactionNumber(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("TXN-%s-00008", yearMonth), number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// seedPeriodTransaction stores a confirmed transfer dated at the given moment.
func seedPeriodTransaction(t *testing.T, repo *GormTransactionRepository, number string, from, to uuid.UUID, date time.Time) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(
		number, from, to, uuid.New(), uuid.New(),
		decimal.NewFromInt(1000), "USD", "hawala",
		date, "School supplies", ledger.StatusConfirmed,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), tx))
	return tx
}

func TestGormTransactionRepository_FindForPeriod(t *testing.T) {
	db := setupTestDB(t, &models.TransactionModel{})
	repo := NewGormTransactionRepository(db)

	branchA := uuid.New()
	branchB := uuid.New()
	branchC := uuid.New()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	seedPeriodTransaction(t, repo, "TXN-202502-00001", branchA, branchB,
		time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC))
	firstDay := seedPeriodTransaction(t, repo, "TXN-202503-00001", branchA, branchB, from)
	lastDay := seedPeriodTransaction(t, repo, "TXN-202503-00002", branchB, branchA,
		time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC))
	other := seedPeriodTransaction(t, repo, "TXN-202503-00003", branchB, branchC,
		time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC))
	seedPeriodTransaction(t, repo, "TXN-202504-00001", branchA, branchB,
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	t.Run("includes both period boundaries and nothing outside", func(t *testing.T) {
		txs, err := repo.FindForPeriod(context.Background(), nil, from, to)
		require.NoError(t, err)
		require.Len(t, txs, 3)
		assert.Equal(t, firstDay.ID, txs[0].ID)
		assert.Equal(t, other.ID, txs[1].ID)
		assert.Equal(t, lastDay.ID, txs[2].ID)
	})

	t.Run("branch scope matches sender or receiver", func(t *testing.T) {
		txs, err := repo.FindForPeriod(context.Background(), &branchA, from, to)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, firstDay.ID, txs[0].ID)
		assert.Equal(t, lastDay.ID, txs[1].ID)
	})

	t.Run("scope with no activity is empty", func(t *testing.T) {
		unknown := uuid.New()
		txs, err := repo.FindForPeriod(context.Background(), &unknown, from, to)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}
