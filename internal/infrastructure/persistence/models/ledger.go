package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolms/backend/internal/domain/ledger"
)

// TransactionModel is the persistence model for the Transaction aggregate root.
type TransactionModel struct {
	AggregateModel
	TransactionNumber string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	FromBranchID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	ToBranchID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	FromStaffID       uuid.UUID                `gorm:"type:uuid;not null"`
	ToStaffID         uuid.UUID                `gorm:"type:uuid;not null"`
	Amount            decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Currency          string                   `gorm:"type:varchar(10);not null;index"`
	TransferMethod    string                   `gorm:"type:varchar(50)"`
	TransactionDate   time.Time                `gorm:"not null;index"`
	ReceivedDate      *time.Time
	Status            ledger.TransactionStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ConfirmationCode  string                   `gorm:"type:varchar(50)"`
	Purpose           string                   `gorm:"type:varchar(500);not null"`
	Notes             string                   `gorm:"type:text"`
	CreatedBy         *uuid.UUID               `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		BaseAggregateRoot: m.toAggregateRoot(),
		TransactionNumber: m.TransactionNumber,
		FromBranchID:      m.FromBranchID,
		ToBranchID:        m.ToBranchID,
		FromStaffID:       m.FromStaffID,
		ToStaffID:         m.ToStaffID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		TransferMethod:    m.TransferMethod,
		TransactionDate:   m.TransactionDate,
		ReceivedDate:      m.ReceivedDate,
		Status:            m.Status,
		ConfirmationCode:  m.ConfirmationCode,
		Purpose:           m.Purpose,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(t *ledger.Transaction) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.TransactionNumber = t.TransactionNumber
	m.FromBranchID = t.FromBranchID
	m.ToBranchID = t.ToBranchID
	m.FromStaffID = t.FromStaffID
	m.ToStaffID = t.ToStaffID
	m.Amount = t.Amount
	m.Currency = t.Currency
	m.TransferMethod = t.TransferMethod
	m.TransactionDate = t.TransactionDate
	m.ReceivedDate = t.ReceivedDate
	m.Status = t.Status
	m.ConfirmationCode = t.ConfirmationCode
	m.Purpose = t.Purpose
	m.Notes = t.Notes
	m.CreatedBy = t.CreatedBy
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}

// BudgetModel is the persistence model for the Budget aggregate root.
// A bucket is unique per branch, period granularity, year, month and currency.
type BudgetModel struct {
	AggregateModel
	BranchID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_budget_bucket,priority:1"`
	Period          ledger.BudgetPeriod `gorm:"type:varchar(10);not null;uniqueIndex:idx_budget_bucket,priority:2"`
	Year            int                 `gorm:"not null;uniqueIndex:idx_budget_bucket,priority:3"`
	Month           *int                `gorm:"uniqueIndex:idx_budget_bucket,priority:4"`
	AllocatedAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	SpentAmount     decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Currency        string              `gorm:"type:varchar(10);not null;uniqueIndex:idx_budget_bucket,priority:5"`
	Notes           string              `gorm:"type:text"`
	CreatedBy       *uuid.UUID          `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the persistence model to a domain Budget entity.
func (m *BudgetModel) ToDomain() *ledger.Budget {
	return &ledger.Budget{
		BaseAggregateRoot: m.toAggregateRoot(),
		BranchID:          m.BranchID,
		Period:            m.Period,
		Year:              m.Year,
		Month:             m.Month,
		AllocatedAmount:   m.AllocatedAmount,
		SpentAmount:       m.SpentAmount,
		Currency:          m.Currency,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Budget entity.
func (m *BudgetModel) FromDomain(b *ledger.Budget) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.BranchID = b.BranchID
	m.Period = b.Period
	m.Year = b.Year
	m.Month = b.Month
	m.AllocatedAmount = b.AllocatedAmount
	m.SpentAmount = b.SpentAmount
	m.Currency = b.Currency
	m.Notes = b.Notes
	m.CreatedBy = b.CreatedBy
}

// BudgetModelFromDomain creates a new persistence model from a domain Budget.
func BudgetModelFromDomain(b *ledger.Budget) *BudgetModel {
	m := &BudgetModel{}
	m.FromDomain(b)
	return m
}
