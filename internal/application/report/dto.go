package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolms/backend/internal/domain/report"
)

// GenerateRequest selects the scope and period of a report run. Field names
// follow the public API contract.
type GenerateRequest struct {
	BranchID    *uuid.UUID `json:"branchId"`
	ReportType  string     `json:"reportType"`
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	StartYear   int        `json:"startYear"`
	StartMonth  int        `json:"startMonth"`
	EndYear     int        `json:"endYear"`
	EndMonth    int        `json:"endMonth"`
	IsAutomated bool       `json:"isAutomated"`
}

// GenerateResult is the outcome of one report generation
type GenerateResult struct {
	Success bool                     `json:"success"`
	Skipped bool                     `json:"skipped,omitempty"`
	Message string                   `json:"message,omitempty"`
	Report  *GeneratedReportResponse `json:"report,omitempty"`
}

// ScopeResult is the per-scope outcome of a scheduler run
type ScopeResult struct {
	Branch  string                   `json:"branch"`
	Success bool                     `json:"success"`
	Skipped bool                     `json:"skipped,omitempty"`
	Message string                   `json:"message,omitempty"`
	Error   string                   `json:"error,omitempty"`
	Report  *GeneratedReportResponse `json:"report,omitempty"`
}

// GeneratedReportResponse represents a registry entry in API responses
type GeneratedReportResponse struct {
	ID               uuid.UUID       `json:"id"`
	BranchID         *uuid.UUID      `json:"branch_id,omitempty"`
	ReportType       string          `json:"report_type"`
	ReportPeriod     string          `json:"report_period"`
	FileName         string          `json:"file_name"`
	FilePath         string          `json:"file_path"`
	FileSize         int64           `json:"file_size"`
	TransactionCount int             `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Currency         string          `json:"currency"`
	GeneratedBy      *uuid.UUID      `json:"generated_by,omitempty"`
	GeneratedAt      time.Time       `json:"generated_at"`
	Status           string          `json:"status"`
}

// ToGeneratedReportResponse converts a registry entry to a response DTO
func ToGeneratedReportResponse(r *report.GeneratedReport) GeneratedReportResponse {
	return GeneratedReportResponse{
		ID:               r.ID,
		BranchID:         r.BranchID,
		ReportType:       string(r.ReportType),
		ReportPeriod:     r.ReportPeriod,
		FileName:         r.FileName,
		FilePath:         r.FilePath,
		FileSize:         r.FileSize,
		TransactionCount: r.TransactionCount,
		TotalAmount:      r.TotalAmount,
		Currency:         r.Currency,
		GeneratedBy:      r.GeneratedBy,
		GeneratedAt:      r.GeneratedAt,
		Status:           string(r.Status),
	}
}

// DownloadResponse carries a presigned artifact URL
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	FileName  string    `json:"file_name"`
}
