package report

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolms/backend/internal/domain/org"
	"github.com/schoolms/backend/internal/domain/shared"
)

// SchedulerRunRequest optionally pins the period of a scheduled run. When
// both fields are zero the previous calendar month is used.
type SchedulerRunRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// SchedulerService drives the periodic generation sweep: one aggregate
// report plus one report per branch, each scope isolated from the others.
type SchedulerService struct {
	reports    *ReportService
	branchRepo org.BranchRepository
	logger     *zap.Logger
}

// NewSchedulerService creates a new SchedulerService
func NewSchedulerService(
	reports *ReportService,
	branchRepo org.BranchRepository,
	logger *zap.Logger,
) *SchedulerService {
	return &SchedulerService{
		reports:    reports,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// RunAllScopes generates reports for the all-branches scope and every branch
// in name order. A failing scope is recorded in its result and never stops
// the sweep; scopes without transactions are recorded as skipped.
func (s *SchedulerService) RunAllScopes(ctx context.Context, req SchedulerRunRequest) ([]ScopeResult, error) {
	branches, err := s.branchRepo.FindAll(ctx, shared.Filter{
		Page:     1,
		PageSize: nameLookupPageSize,
		OrderBy:  "name",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}

	results := make([]ScopeResult, 0, len(branches)+1)
	results = append(results, s.runScope(ctx, nil, allBranchesName, req))
	for _, branch := range branches {
		results = append(results, s.runScope(ctx, &branch.ID, branch.Name, req))
	}

	s.logger.Info("Scheduled report sweep finished",
		zap.Int("scopes", len(results)),
		zap.Int("failed", countFailed(results)),
	)
	return results, nil
}

func (s *SchedulerService) runScope(ctx context.Context, branchID *uuid.UUID, branchName string, req SchedulerRunRequest) ScopeResult {
	result, err := s.reports.Generate(ctx, GenerateRequest{
		BranchID:    branchID,
		Year:        req.Year,
		Month:       req.Month,
		IsAutomated: true,
	}, nil)
	if err != nil {
		s.logger.Error("Scheduled report scope failed",
			zap.String("branch", branchName),
			zap.Error(err),
		)
		return ScopeResult{Branch: branchName, Success: false, Error: err.Error()}
	}

	return ScopeResult{
		Branch:  branchName,
		Success: true,
		Skipped: result.Skipped,
		Message: result.Message,
		Report:  result.Report,
	}
}

func countFailed(results []ScopeResult) int {
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	return failed
}
