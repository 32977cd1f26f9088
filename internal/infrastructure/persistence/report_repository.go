package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/schoolms/backend/internal/domain/report"
	"github.com/schoolms/backend/internal/domain/shared"
	"github.com/schoolms/backend/internal/infrastructure/persistence/models"
)

// GormReportRepository implements report.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Upsert replaces any existing registry entry for the same (branch, period)
// pair. Deleting then inserting in one transaction keeps regeneration from
// accumulating duplicate rows.
func (r *GormReportRepository) Upsert(ctx context.Context, entry *report.GeneratedReport) error {
	model := models.GeneratedReportModelFromDomain(entry)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("report_period = ?", entry.ReportPeriod)
		if entry.BranchID != nil {
			query = query.Where("branch_id = ?", *entry.BranchID)
		} else {
			query = query.Where("branch_id IS NULL")
		}
		if err := query.Delete(&models.GeneratedReportModel{}).Error; err != nil {
			return err
		}
		return tx.Create(model).Error
	})
}

// FindByID finds a registry entry by its ID
func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.GeneratedReport, error) {
	var model models.GeneratedReportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists registry entries, newest first by default
func (r *GormReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]report.GeneratedReport, error) {
	var reportModels []models.GeneratedReportModel
	query := r.db.WithContext(ctx).Model(&models.GeneratedReportModel{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(file_name ILIKE ? OR report_period ILIKE ?)", searchPattern, searchPattern)
	}

	sortField := ValidateSortField(filter.OrderBy, GeneratedReportSortFields, "generated_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&reportModels).Error; err != nil {
		return nil, err
	}
	reports := make([]report.GeneratedReport, len(reportModels))
	for i, model := range reportModels {
		reports[i] = *model.ToDomain()
	}
	return reports, nil
}

// Delete removes a registry entry
func (r *GormReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GeneratedReportModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ report.Repository = (*GormReportRepository)(nil)
