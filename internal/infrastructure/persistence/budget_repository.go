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

// GormBudgetRepository implements ledger.BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// Save creates or updates a budget row
func (r *GormBudgetRepository) Save(ctx context.Context, budget *ledger.Budget) error {
	model := models.BudgetModelFromDomain(budget)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a budget by its ID
func (r *GormBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Budget, error) {
	var model models.BudgetModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds budget rows matching the filter
func (r *GormBudgetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Budget, error) {
	var budgetModels []models.BudgetModel
	query := r.db.WithContext(ctx).Model(&models.BudgetModel{})

	sortField := ValidateSortField(filter.OrderBy, BudgetSortFields, "year")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&budgetModels).Error; err != nil {
		return nil, err
	}
	budgets := make([]ledger.Budget, len(budgetModels))
	for i, model := range budgetModels {
		budgets[i] = *model.ToDomain()
	}
	return budgets, nil
}

// Delete removes a budget row
func (r *GormBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByKey returns the budget row tracking a bucket, or shared.ErrNotFound
func (r *GormBudgetRepository) FindByKey(ctx context.Context, key ledger.BudgetKey) (*ledger.Budget, error) {
	var model models.BudgetModel
	query := r.db.WithContext(ctx).
		Where("branch_id = ? AND period = ? AND year = ? AND currency = ?",
			key.BranchID, key.Period, key.Year, key.Currency)
	if key.Month != nil {
		query = query.Where("month = ?", *key.Month)
	} else {
		query = query.Where("month IS NULL")
	}

	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// UpdateSpent writes a recomputed spent amount on a budget row
func (r *GormBudgetRepository) UpdateSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.BudgetModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"spent_amount": spent,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.BudgetRepository = (*GormBudgetRepository)(nil)
