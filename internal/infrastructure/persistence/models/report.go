package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolms/backend/internal/domain/report"
)

// GeneratedReportModel is the persistence model for the report registry.
// BranchID is null for the all-branches scope.
type GeneratedReportModel struct {
	AggregateModel
	BranchID         *uuid.UUID          `gorm:"type:uuid;index:idx_report_scope"`
	ReportType       report.Mode         `gorm:"type:varchar(20);not null"`
	ReportPeriod     string              `gorm:"type:varchar(30);not null;index:idx_report_scope"`
	FileName         string              `gorm:"type:varchar(300);not null"`
	FilePath         string              `gorm:"type:varchar(500);not null"`
	FileSize         int64               `gorm:"not null"`
	TransactionCount int                 `gorm:"not null"`
	TotalAmount      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Currency         string              `gorm:"type:varchar(10);not null"`
	GeneratedBy      *uuid.UUID          `gorm:"type:uuid"`
	GeneratedAt      time.Time           `gorm:"not null;index"`
	Status           report.ReportStatus `gorm:"type:varchar(20);not null;default:'completed'"`
	ErrorMessage     string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (GeneratedReportModel) TableName() string {
	return "generated_reports"
}

// ToDomain converts the persistence model to a domain GeneratedReport entity.
func (m *GeneratedReportModel) ToDomain() *report.GeneratedReport {
	return &report.GeneratedReport{
		BaseAggregateRoot: m.toAggregateRoot(),
		BranchID:          m.BranchID,
		ReportType:        m.ReportType,
		ReportPeriod:      m.ReportPeriod,
		FileName:          m.FileName,
		FilePath:          m.FilePath,
		FileSize:          m.FileSize,
		TransactionCount:  m.TransactionCount,
		TotalAmount:       m.TotalAmount,
		Currency:          m.Currency,
		GeneratedBy:       m.GeneratedBy,
		GeneratedAt:       m.GeneratedAt,
		Status:            m.Status,
		ErrorMessage:      m.ErrorMessage,
	}
}

// FromDomain populates the persistence model from a domain GeneratedReport entity.
func (m *GeneratedReportModel) FromDomain(r *report.GeneratedReport) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.BranchID = r.BranchID
	m.ReportType = r.ReportType
	m.ReportPeriod = r.ReportPeriod
	m.FileName = r.FileName
	m.FilePath = r.FilePath
	m.FileSize = r.FileSize
	m.TransactionCount = r.TransactionCount
	m.TotalAmount = r.TotalAmount
	m.Currency = r.Currency
	m.GeneratedBy = r.GeneratedBy
	m.GeneratedAt = r.GeneratedAt
	m.Status = r.Status
	m.ErrorMessage = r.ErrorMessage
}

// GeneratedReportModelFromDomain creates a new persistence model from a domain GeneratedReport.
func GeneratedReportModelFromDomain(r *report.GeneratedReport) *GeneratedReportModel {
	m := &GeneratedReportModel{}
	m.FromDomain(r)
	return m
}
