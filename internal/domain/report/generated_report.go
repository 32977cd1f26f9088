package report

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolms/backend/internal/domain/shared"
)

// ReportStatus is the persisted outcome of a generation run
type ReportStatus string

const (
	StatusCompleted ReportStatus = "completed"
	StatusFailed    ReportStatus = "failed"
)

// GeneratedReport is the registry entry describing a rendered report
// artifact. The artifact bytes live in object storage under FilePath; the
// registry row is the source of truth for whether a report exists.
type GeneratedReport struct {
	shared.BaseAggregateRoot
	BranchID         *uuid.UUID // nil means the all-branches scope
	ReportType       Mode
	ReportPeriod     string
	FileName         string
	FilePath         string
	FileSize         int64
	TransactionCount int
	TotalAmount      decimal.Decimal
	Currency         string
	GeneratedBy      *uuid.UUID // nil for scheduled runs
	GeneratedAt      time.Time
	Status           ReportStatus
	ErrorMessage     string
}

// NewGeneratedReport creates a completed registry entry for a stored artifact
func NewGeneratedReport(
	branchID *uuid.UUID,
	mode Mode,
	periodLabel string,
	fileName, filePath string,
	fileSize int64,
	transactionCount int,
	totalAmount decimal.Decimal,
	currency string,
	generatedBy *uuid.UUID,
) *GeneratedReport {
	return &GeneratedReport{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		ReportType:        mode,
		ReportPeriod:      periodLabel,
		FileName:          fileName,
		FilePath:          filePath,
		FileSize:          fileSize,
		TransactionCount:  transactionCount,
		TotalAmount:       totalAmount,
		Currency:          currency,
		GeneratedBy:       generatedBy,
		GeneratedAt:       time.Now(),
		Status:            StatusCompleted,
	}
}

// ArtifactKey builds the deterministic object key for a branch and period:
// {period}/{branch name with spaces replaced by underscores}_{period}.pdf
func ArtifactKey(branchName, periodLabel string) (fileName, filePath string) {
	fileName = strings.ReplaceAll(branchName, " ", "_") + "_" + periodLabel + ".pdf"
	filePath = periodLabel + "/" + fileName
	return fileName, filePath
}
