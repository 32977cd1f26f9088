package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/schoolms/backend/internal/domain/org"
	"github.com/schoolms/backend/internal/domain/shared"
	"github.com/schoolms/backend/internal/infrastructure/persistence/models"
)

// GormBranchRepository implements org.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *org.Branch) error {
	model := models.BranchModelFromDomain(branch)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds branches matching the filter
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*org.Branch, error) {
	var branchModels []models.BranchModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BranchModel{}), filter)

	sortField := ValidateSortField(filter.OrderBy, BranchSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&branchModels).Error; err != nil {
		return nil, err
	}
	branches := make([]*org.Branch, len(branchModels))
	for i, model := range branchModels {
		branches[i] = model.ToDomain()
	}
	return branches, nil
}

// Count counts branches matching the filter
func (r *GormBranchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BranchModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a branch
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BranchModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBranchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(name ILIKE ? OR province ILIKE ?)", searchPattern, searchPattern)
	}
	return query
}

var _ org.BranchRepository = (*GormBranchRepository)(nil)
