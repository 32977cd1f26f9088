package ledger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolms/backend/internal/domain/ledger"
	"github.com/schoolms/backend/internal/domain/shared"
)

// TransactionService handles transfer recording and the status toggle that
// drives budget accrual.
type TransactionService struct {
	txRepo  ledger.TransactionRepository
	budgets *BudgetService
	logger  *zap.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	txRepo ledger.TransactionRepository,
	budgets *BudgetService,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		txRepo:  txRepo,
		budgets: budgets,
		logger:  logger,
	}
}

// Create records a new transfer. When the transaction is created directly as
// confirmed, the destination branch budgets accrue immediately.
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest, createdBy *uuid.UUID) (*TransactionResponse, error) {
	number, err := s.txRepo.GenerateTransactionNumber(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := ledger.NewTransaction(
		number,
		req.FromBranchID,
		req.ToBranchID,
		req.FromStaffID,
		req.ToStaffID,
		req.Amount,
		req.Currency,
		req.TransferMethod,
		req.TransactionDate,
		req.Purpose,
		ledger.TransactionStatus(req.Status),
	)
	if err != nil {
		return nil, err
	}

	if req.ConfirmationCode != "" {
		tx.SetConfirmationCode(req.ConfirmationCode)
	}
	if req.Notes != "" {
		tx.SetNotes(req.Notes)
	}
	if req.ReceivedDate != nil {
		tx.SetReceivedDate(*req.ReceivedDate)
	}
	if createdBy != nil {
		tx.SetCreatedBy(*createdBy)
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	if tx.IsConfirmed() {
		s.refreshBudgets(ctx, tx)
	}

	response := ToTransactionResponse(tx)
	return &response, nil
}

// GetByID retrieves a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(tx)
	return &response, nil
}

// List retrieves transactions with filtering and pagination
func (s *TransactionService) List(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "transaction_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := ledger.TransactionFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		BranchID: filter.BranchID,
		Currency: filter.Currency,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	if filter.Status != "" {
		status := ledger.TransactionStatus(filter.Status)
		domainFilter.Status = &status
	}

	transactions, err := s.txRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses, total, nil
}

// UpdateStatus applies the pending<->confirmed toggle. Any actual change
// re-accrues the destination budgets; setting the same status is a no-op.
func (s *TransactionService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateTransactionStatusRequest) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := tx.Status
	if err := tx.SetStatus(ledger.TransactionStatus(req.Status)); err != nil {
		return nil, err
	}

	if tx.Status != previous {
		if err := s.txRepo.Save(ctx, tx); err != nil {
			return nil, err
		}
		s.refreshBudgets(ctx, tx)
	}

	response := ToTransactionResponse(tx)
	return &response, nil
}

// Delete removes a transaction. A confirmed transaction releases its budget
// contribution on the next recompute, which runs immediately here.
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.txRepo.Delete(ctx, id); err != nil {
		return err
	}

	if tx.IsConfirmed() {
		s.refreshBudgets(ctx, tx)
	}
	return nil
}

// refreshBudgets recomputes the destination buckets after a committed write.
// The transaction itself is already stored, so a recompute failure is logged
// and surfaced on the next accrual instead of failing the request.
func (s *TransactionService) refreshBudgets(ctx context.Context, tx *ledger.Transaction) {
	if err := s.budgets.RecomputeForTransaction(ctx, tx); err != nil {
		s.logger.Error("Budget recompute failed",
			zap.String("transaction_number", tx.TransactionNumber),
			zap.Error(err),
		)
	}
}
