package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolms/backend/internal/domain/shared"
)

// Transaction represents an inter-branch money transfer aggregate root.
// Only confirmed transactions count toward the destination branch budget.
type Transaction struct {
	shared.BaseAggregateRoot
	TransactionNumber string
	FromBranchID      uuid.UUID
	ToBranchID        uuid.UUID
	FromStaffID       uuid.UUID
	ToStaffID         uuid.UUID
	Amount            decimal.Decimal
	Currency          string
	TransferMethod    string
	TransactionDate   time.Time
	ReceivedDate      *time.Time
	Status            TransactionStatus
	ConfirmationCode  string
	Purpose           string
	Notes             string
	CreatedBy         *uuid.UUID
}

// NewTransaction creates a new transfer record. Status defaults to pending;
// a caller may create it directly as confirmed, in which case the budget
// accrual for the destination bucket must run immediately.
func NewTransaction(
	number string,
	fromBranchID, toBranchID uuid.UUID,
	fromStaffID, toStaffID uuid.UUID,
	amount decimal.Decimal,
	currency string,
	transferMethod string,
	transactionDate time.Time,
	purpose string,
	status TransactionStatus,
) (*Transaction, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_NUMBER", "Transaction number cannot be empty")
	}
	if fromBranchID == uuid.Nil || toBranchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Both sending and receiving branches are required")
	}
	if fromStaffID == uuid.Nil || toStaffID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Both sender and receiver are required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is required")
	}
	if transactionDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}
	if purpose == "" {
		return nil, shared.NewDomainError("INVALID_PURPOSE", "Purpose is required")
	}
	if status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown transaction status %q", status))
	}

	return &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TransactionNumber: number,
		FromBranchID:      fromBranchID,
		ToBranchID:        toBranchID,
		FromStaffID:       fromStaffID,
		ToStaffID:         toStaffID,
		Amount:            amount,
		Currency:          currency,
		TransferMethod:    transferMethod,
		TransactionDate:   transactionDate,
		Status:            status,
		Purpose:           purpose,
	}, nil
}

// SetStatus applies the manual pending<->confirmed toggle. Setting the current
// status again is a no-op so repeated calls carry no budget effect.
func (t *Transaction) SetStatus(target TransactionStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown transaction status %q", target))
	}
	if target == t.Status {
		return nil
	}
	if !t.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change transaction %s from %s to %s", t.TransactionNumber, t.Status, target))
	}
	t.Status = target
	t.Touch()
	t.IncrementVersion()
	return nil
}

// SetReceivedDate records when the transfer was picked up
func (t *Transaction) SetReceivedDate(received time.Time) {
	t.ReceivedDate = &received
	t.Touch()
}

// SetConfirmationCode records the external tracking token (MTCN etc.)
func (t *Transaction) SetConfirmationCode(code string) {
	t.ConfirmationCode = code
	t.Touch()
}

// SetNotes sets the free-form notes
func (t *Transaction) SetNotes(notes string) {
	t.Notes = notes
	t.Touch()
}

// SetCreatedBy records the creating user
func (t *Transaction) SetCreatedBy(userID uuid.UUID) {
	t.CreatedBy = &userID
}

// IsConfirmed returns true if the transaction counts toward budget spend
func (t *Transaction) IsConfirmed() bool {
	return t.Status.CountsTowardBudget()
}

// Buckets returns the budget buckets this transaction contributes to when
// confirmed: the monthly and the yearly bucket of the destination branch.
func (t *Transaction) Buckets() []BudgetKey {
	month := int(t.TransactionDate.Month())
	return []BudgetKey{
		{BranchID: t.ToBranchID, Period: PeriodMonthly, Year: t.TransactionDate.Year(), Month: &month, Currency: t.Currency},
		{BranchID: t.ToBranchID, Period: PeriodYearly, Year: t.TransactionDate.Year(), Currency: t.Currency},
	}
}
