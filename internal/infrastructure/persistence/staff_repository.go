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

// GormStaffRepository implements org.StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, staff *org.Staff) error {
	model := models.StaffModelFromDomain(staff)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a staff member by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds staff members matching the filter
func (r *GormStaffRepository) FindAll(ctx context.Context, filter org.StaffFilter) ([]*org.Staff, error) {
	var staffModels []models.StaffModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffModel{}), filter)

	sortField := ValidateSortField(filter.OrderBy, StaffSortFields, "first_name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&staffModels).Error; err != nil {
		return nil, err
	}
	staff := make([]*org.Staff, len(staffModels))
	for i, model := range staffModels {
		staff[i] = model.ToDomain()
	}
	return staff, nil
}

// Count counts staff members matching the filter
func (r *GormStaffRepository) Count(ctx context.Context, filter org.StaffFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a staff member
func (r *GormStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormStaffRepository) applyFilter(query *gorm.DB, filter org.StaffFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(first_name ILIKE ? OR last_name ILIKE ? OR position ILIKE ?)",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

var _ org.StaffRepository = (*GormStaffRepository)(nil)
