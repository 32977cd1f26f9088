package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/schoolms/backend/internal/domain/ledger"
	"github.com/schoolms/backend/internal/domain/shared"
	"github.com/schoolms/backend/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds transactions matching the filter
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	var txModels []models.TransactionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TransactionModel{}), filter)

	sortField := ValidateSortField(filter.OrderBy, TransactionSortFields, "transaction_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}
	txs := make([]ledger.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter ledger.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TransactionModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a transaction
func (r *GormTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindForPeriod returns transactions dated within [from,to], ordered by
// transaction date ascending. A non-nil branchID restricts the result to
// transfers where the branch is sender or receiver.
func (r *GormTransactionRepository) FindForPeriod(ctx context.Context, branchID *uuid.UUID, from, to time.Time) ([]ledger.Transaction, error) {
	var txModels []models.TransactionModel
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("transaction_date >= ? AND transaction_date <= ?", from, to)
	if branchID != nil {
		query = query.Where("(from_branch_id = ? OR to_branch_id = ?)", *branchID, *branchID)
	}

	if err := query.Order("transaction_date ASC").Find(&txModels).Error; err != nil {
		return nil, err
	}
	txs := make([]ledger.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// SumConfirmed returns the sum of amounts over confirmed transactions
// received by the branch in the given currency and interval.
func (r *GormTransactionRepository) SumConfirmed(ctx context.Context, branchID uuid.UUID, currency string, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("to_branch_id = ? AND currency = ? AND status = ? AND transaction_date >= ? AND transaction_date <= ?",
			branchID, currency, ledger.StatusConfirmed, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// GenerateTransactionNumber generates the next sequential transaction number
// for the current month, in the form TXN-YYYYMM-NNNNN.
func (r *GormTransactionRepository) GenerateTransactionNumber(ctx context.Context) (string, error) {
	var count int64
	yearMonth := time.Now().Format("200601")

	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("transaction_number LIKE ?", fmt.Sprintf("TXN-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("TXN-%s-%05d", yearMonth, count+1), nil
}

// applyFilter applies filter conditions without pagination or sorting
func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter ledger.TransactionFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(transaction_number ILIKE ? OR purpose ILIKE ? OR confirmation_code ILIKE ?)",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.BranchID != nil {
		query = query.Where("(from_branch_id = ? OR to_branch_id = ?)", *filter.BranchID, *filter.BranchID)
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}
	if filter.FromDate != nil {
		query = query.Where("transaction_date >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("transaction_date <= ?", filter.ToDate)
	}
	return query
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
