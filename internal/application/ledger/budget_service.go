package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolms/backend/internal/domain/ledger"
	"github.com/schoolms/backend/internal/domain/shared"
)

// BudgetService handles budget allocation and spent-amount accrual. The
// spent amount of a bucket is never adjusted incrementally: every accrual
// recomputes it as the sum of confirmed transactions received by the branch
// in the bucket's interval, so repeated status toggles cannot drift it.
type BudgetService struct {
	budgetRepo ledger.BudgetRepository
	txRepo     ledger.TransactionRepository
	logger     *zap.Logger
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo ledger.BudgetRepository,
	txRepo ledger.TransactionRepository,
	logger *zap.Logger,
) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		txRepo:     txRepo,
		logger:     logger,
	}
}

// Create allocates a budget bucket. The spent amount starts from the
// confirmed transactions already recorded for the interval, so a budget
// created late still reports accurate usage.
func (s *BudgetService) Create(ctx context.Context, req CreateBudgetRequest, createdBy *uuid.UUID) (*BudgetResponse, error) {
	budget, err := ledger.NewBudget(
		req.BranchID,
		ledger.BudgetPeriod(req.Period),
		req.Year,
		req.Month,
		req.AllocatedAmount,
		req.Currency,
	)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		budget.SetNotes(req.Notes)
	}
	if createdBy != nil {
		budget.SetCreatedBy(*createdBy)
	}

	// The unique index does not bind yearly buckets (NULL month), so the
	// key is checked here for both granularities.
	if _, err := s.budgetRepo.FindByKey(ctx, budget.Key()); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}

	if err := s.Recompute(ctx, budget.Key()); err != nil {
		return nil, err
	}

	saved, err := s.budgetRepo.FindByID(ctx, budget.ID)
	if err != nil {
		return nil, err
	}
	response := ToBudgetResponse(saved)
	return &response, nil
}

// GetByID retrieves a budget by ID
func (s *BudgetService) GetByID(ctx context.Context, id uuid.UUID) (*BudgetResponse, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBudgetResponse(budget)
	return &response, nil
}

// List retrieves budgets with pagination
func (s *BudgetService) List(ctx context.Context, filter shared.Filter) ([]BudgetResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	budgets, err := s.budgetRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		responses[i] = ToBudgetResponse(&budgets[i])
	}
	return responses, nil
}

// Update changes the allocation or notes of a budget and refreshes the
// spent amount of its bucket
func (s *BudgetService) Update(ctx context.Context, id uuid.UUID, req UpdateBudgetRequest) (*BudgetResponse, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AllocatedAmount != nil {
		if err := budget.SetAllocated(*req.AllocatedAmount); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		budget.SetNotes(*req.Notes)
	}

	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}

	if err := s.Recompute(ctx, budget.Key()); err != nil {
		return nil, err
	}

	saved, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBudgetResponse(saved)
	return &response, nil
}

// Delete removes a budget bucket
func (s *BudgetService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.budgetRepo.Delete(ctx, id)
}

// Recompute refreshes the spent amount of the bucket identified by key.
// Buckets without a budget row are silently skipped; a budget created later
// picks up past transactions through Create.
func (s *BudgetService) Recompute(ctx context.Context, key ledger.BudgetKey) error {
	budget, err := s.budgetRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	from, to := key.Range()
	spent, err := s.txRepo.SumConfirmed(ctx, key.BranchID, key.Currency, from, to)
	if err != nil {
		return err
	}

	if err := s.budgetRepo.UpdateSpent(ctx, budget.ID, spent); err != nil {
		return err
	}

	s.logger.Debug("Budget spent recomputed",
		zap.String("budget_id", budget.ID.String()),
		zap.String("bucket", key.String()),
		zap.String("spent", spent.String()),
	)
	return nil
}

// RecomputeForTransaction refreshes both budget buckets a transaction feeds:
// the monthly and the yearly bucket of the destination branch.
func (s *BudgetService) RecomputeForTransaction(ctx context.Context, tx *ledger.Transaction) error {
	for _, key := range tx.Buckets() {
		if err := s.Recompute(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
