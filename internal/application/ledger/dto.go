package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolms/backend/internal/domain/ledger"
)

// ==================== Transaction DTOs ====================

// CreateTransactionRequest represents a request to record a transfer
type CreateTransactionRequest struct {
	FromBranchID     uuid.UUID       `json:"from_branch_id" binding:"required"`
	ToBranchID       uuid.UUID       `json:"to_branch_id" binding:"required"`
	FromStaffID      uuid.UUID       `json:"from_staff_id" binding:"required"`
	ToStaffID        uuid.UUID       `json:"to_staff_id" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Currency         string          `json:"currency" binding:"required,min=3,max=3"`
	TransferMethod   string          `json:"transfer_method" binding:"required"`
	TransactionDate  time.Time       `json:"transaction_date" binding:"required"`
	ReceivedDate     *time.Time      `json:"received_date"`
	Status           string          `json:"status"`
	ConfirmationCode string          `json:"confirmation_code"`
	Purpose          string          `json:"purpose" binding:"required"`
	Notes            string          `json:"notes"`
}

// UpdateTransactionStatusRequest toggles a transaction between pending and
// confirmed.
type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransactionListFilter represents filter options for transaction queries
type TransactionListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   string
	BranchID *uuid.UUID
	Currency string
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID                uuid.UUID       `json:"id"`
	TransactionNumber string          `json:"transaction_number"`
	FromBranchID      uuid.UUID       `json:"from_branch_id"`
	ToBranchID        uuid.UUID       `json:"to_branch_id"`
	FromStaffID       uuid.UUID       `json:"from_staff_id"`
	ToStaffID         uuid.UUID       `json:"to_staff_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	TransferMethod    string          `json:"transfer_method"`
	TransactionDate   time.Time       `json:"transaction_date"`
	ReceivedDate      *time.Time      `json:"received_date,omitempty"`
	Status            string          `json:"status"`
	ConfirmationCode  string          `json:"confirmation_code,omitempty"`
	Purpose           string          `json:"purpose"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToTransactionResponse converts a domain transaction to a response DTO
func ToTransactionResponse(t *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID,
		TransactionNumber: t.TransactionNumber,
		FromBranchID:      t.FromBranchID,
		ToBranchID:        t.ToBranchID,
		FromStaffID:       t.FromStaffID,
		ToStaffID:         t.ToStaffID,
		Amount:            t.Amount,
		Currency:          t.Currency,
		TransferMethod:    t.TransferMethod,
		TransactionDate:   t.TransactionDate,
		ReceivedDate:      t.ReceivedDate,
		Status:            string(t.Status),
		ConfirmationCode:  t.ConfirmationCode,
		Purpose:           t.Purpose,
		Notes:             t.Notes,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// ==================== Budget DTOs ====================

// CreateBudgetRequest represents a request to allocate a branch budget
type CreateBudgetRequest struct {
	BranchID        uuid.UUID       `json:"branch_id" binding:"required"`
	Period          string          `json:"period" binding:"required,oneof=monthly yearly"`
	Year            int             `json:"year" binding:"required,min=2000,max=2100"`
	Month           *int            `json:"month" binding:"omitempty,min=1,max=12"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	Currency        string          `json:"currency" binding:"required,min=3,max=3"`
	Notes           string          `json:"notes"`
}

// UpdateBudgetRequest changes the allocation or notes of a budget
type UpdateBudgetRequest struct {
	AllocatedAmount *decimal.Decimal `json:"allocated_amount"`
	Notes           *string          `json:"notes"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID              uuid.UUID       `json:"id"`
	BranchID        uuid.UUID       `json:"branch_id"`
	Period          string          `json:"period"`
	Year            int             `json:"year"`
	Month           *int            `json:"month,omitempty"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Currency        string          `json:"currency"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToBudgetResponse converts a domain budget to a response DTO
func ToBudgetResponse(b *ledger.Budget) BudgetResponse {
	return BudgetResponse{
		ID:              b.ID,
		BranchID:        b.BranchID,
		Period:          string(b.Period),
		Year:            b.Year,
		Month:           b.Month,
		AllocatedAmount: b.AllocatedAmount,
		SpentAmount:     b.SpentAmount,
		RemainingAmount: b.Remaining(),
		Currency:        b.Currency,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
