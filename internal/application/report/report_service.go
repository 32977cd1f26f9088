package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/schoolms/backend/internal/domain/ledger"
	"github.com/schoolms/backend/internal/domain/org"
	"github.com/schoolms/backend/internal/domain/report"
	"github.com/schoolms/backend/internal/domain/shared"
)

// allBranchesName labels the aggregate scope in artifacts and results
const allBranchesName = "All Branches"

// nameLookupPageSize bounds the branch and staff lists loaded for display
// name resolution.
const nameLookupPageSize = 1000

// ReportService generates transaction report artifacts and maintains the
// registry describing them.
type ReportService struct {
	txRepo          ledger.TransactionRepository
	branchRepo      org.BranchRepository
	staffRepo       org.StaffRepository
	registry        report.Repository
	storage         ObjectStorage
	renderer        DocumentRenderer
	logger          *zap.Logger
	urlExpiry       time.Duration
	defaultCurrency string
	now             func() time.Time
}

// ReportServiceOption configures optional ReportService behavior
type ReportServiceOption func(*ReportService)

// WithClock overrides the time source used for default period resolution
func WithClock(now func() time.Time) ReportServiceOption {
	return func(s *ReportService) {
		s.now = now
	}
}

// WithURLExpiry sets the lifetime of presigned download URLs
func WithURLExpiry(expiry time.Duration) ReportServiceOption {
	return func(s *ReportService) {
		s.urlExpiry = expiry
	}
}

// WithDefaultCurrency sets the currency reported for empty periods
func WithDefaultCurrency(currency string) ReportServiceOption {
	return func(s *ReportService) {
		s.defaultCurrency = currency
	}
}

// NewReportService creates a new ReportService
func NewReportService(
	txRepo ledger.TransactionRepository,
	branchRepo org.BranchRepository,
	staffRepo org.StaffRepository,
	registry report.Repository,
	storage ObjectStorage,
	renderer DocumentRenderer,
	logger *zap.Logger,
	opts ...ReportServiceOption,
) *ReportService {
	s := &ReportService{
		txRepo:          txRepo,
		branchRepo:      branchRepo,
		staffRepo:       staffRepo,
		registry:        registry,
		storage:         storage,
		renderer:        renderer,
		logger:          logger,
		urlExpiry:       15 * time.Minute,
		defaultCurrency: "AFN",
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate renders the report for the requested scope and period, stores the
// artifact and upserts the registry entry. An empty period is an error for
// interactive calls and a skip for automated ones.
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest, generatedBy *uuid.UUID) (*GenerateResult, error) {
	input := s.periodInput(req)
	period, err := report.ResolvePeriod(input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Generating report",
		zap.String("report_type", string(input.Mode)),
		zap.String("report_period", period.Label),
		zap.Any("branch_id", req.BranchID),
		zap.Bool("automated", req.IsAutomated),
	)

	transactions, err := s.txRepo.FindForPeriod(ctx, req.BranchID, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		if req.IsAutomated {
			return &GenerateResult{
				Success: true,
				Skipped: true,
				Message: "No transactions found for this period",
			}, nil
		}
		return nil, shared.ErrNoTransactions
	}

	branchName := allBranchesName
	if req.BranchID != nil {
		branch, err := s.branchRepo.FindByID(ctx, *req.BranchID)
		if err != nil {
			return nil, err
		}
		branchName = branch.Name
	}

	doc, totalAmount, currency, err := s.buildDocument(ctx, branchName, period, transactions)
	if err != nil {
		return nil, err
	}

	pdfData, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	fileName, filePath := report.ArtifactKey(branchName, period.Label)
	if err := s.storage.Upload(ctx, filePath, pdfData, "application/pdf"); err != nil {
		return nil, err
	}

	entry := report.NewGeneratedReport(
		req.BranchID,
		input.Mode,
		period.Label,
		fileName,
		filePath,
		int64(len(pdfData)),
		len(transactions),
		totalAmount,
		currency,
		generatedBy,
	)
	if err := s.registry.Upsert(ctx, entry); err != nil {
		// The artifact is already stored; remove it so storage does not
		// drift from the registry.
		if delErr := s.storage.Delete(ctx, filePath); delErr != nil {
			s.logger.Error("Orphaned report artifact could not be removed",
				zap.String("file_path", filePath),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("Report generated",
		zap.String("file_path", filePath),
		zap.Int("transaction_count", len(transactions)),
	)

	response := ToGeneratedReportResponse(entry)
	return &GenerateResult{Success: true, Report: &response}, nil
}

// periodInput merges the request with the previous-month default
func (s *ReportService) periodInput(req GenerateRequest) report.PeriodInput {
	if req.ReportType == "" {
		input := report.DefaultPeriod(s.now())
		if req.Year != 0 {
			input.Year = req.Year
		}
		if req.Month != 0 {
			input.Month = req.Month
		}
		return input
	}
	return report.PeriodInput{
		Mode:       report.Mode(req.ReportType),
		Year:       req.Year,
		Month:      req.Month,
		StartYear:  req.StartYear,
		StartMonth: req.StartMonth,
		EndYear:    req.EndYear,
		EndMonth:   req.EndMonth,
	}
}

// buildDocument resolves display names and aggregates the rendering input
func (s *ReportService) buildDocument(
	ctx context.Context,
	branchName string,
	period report.Period,
	transactions []ledger.Transaction,
) (Document, decimal.Decimal, string, error) {
	branchNames, err := s.branchNames(ctx)
	if err != nil {
		return Document{}, decimal.Zero, "", err
	}
	staffNames, err := s.staffNames(ctx)
	if err != nil {
		return Document{}, decimal.Zero, "", err
	}

	rows := make([]DocumentRow, len(transactions))
	totalAmount := decimal.Zero
	for i := range transactions {
		tx := &transactions[i]
		totalAmount = totalAmount.Add(tx.Amount)
		rows[i] = DocumentRow{
			Date:             tx.TransactionDate,
			FromBranchName:   branchNames[tx.FromBranchID],
			ToBranchName:     branchNames[tx.ToBranchID],
			FromStaffName:    staffNames[tx.FromStaffID],
			ToStaffName:      staffNames[tx.ToStaffID],
			ConfirmationCode: tx.ConfirmationCode,
			Amount:           tx.Amount,
			Currency:         tx.Currency,
			Status:           string(tx.Status),
		}
	}

	currency := s.defaultCurrency
	if len(transactions) > 0 {
		currency = transactions[0].Currency
	}

	return Document{
		BranchName:        branchName,
		PeriodDescription: period.Description,
		Rows:              rows,
		TotalAmount:       totalAmount,
		Currency:          currency,
		GeneratedAt:       s.now(),
	}, totalAmount, currency, nil
}

func (s *ReportService) branchNames(ctx context.Context) (map[uuid.UUID]string, error) {
	branches, err := s.branchRepo.FindAll(ctx, shared.Filter{Page: 1, PageSize: nameLookupPageSize, OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(branches))
	for _, branch := range branches {
		names[branch.ID] = branch.Name
	}
	return names, nil
}

func (s *ReportService) staffNames(ctx context.Context) (map[uuid.UUID]string, error) {
	staff, err := s.staffRepo.FindAll(ctx, org.StaffFilter{
		Filter: shared.Filter{Page: 1, PageSize: nameLookupPageSize, OrderBy: "created_at", OrderDir: "asc"},
	})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(staff))
	for _, member := range staff {
		names[member.ID] = member.FullName()
	}
	return names, nil
}

// List retrieves registry entries, newest first
func (s *ReportService) List(ctx context.Context, filter shared.Filter) ([]GeneratedReportResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entries, err := s.registry.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]GeneratedReportResponse, len(entries))
	for i := range entries {
		responses[i] = ToGeneratedReportResponse(&entries[i])
	}
	return responses, nil
}

// GetByID retrieves one registry entry
func (s *ReportService) GetByID(ctx context.Context, id uuid.UUID) (*GeneratedReportResponse, error) {
	entry, err := s.registry.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToGeneratedReportResponse(entry)
	return &response, nil
}

// DownloadURL returns a presigned URL for the artifact of a registry entry.
// A registry entry whose blob is gone maps to not found instead of handing
// out a URL that would 404 at the store.
func (s *ReportService) DownloadURL(ctx context.Context, id uuid.UUID) (*DownloadResponse, error) {
	entry, err := s.registry.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.Exists(ctx, entry.FilePath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	url, expiresAt, err := s.storage.DownloadURL(ctx, entry.FilePath, s.urlExpiry)
	if err != nil {
		return nil, err
	}
	return &DownloadResponse{URL: url, ExpiresAt: expiresAt, FileName: entry.FileName}, nil
}

// Remove deletes a report artifact and its registry entry. The registry is
// the source of truth, so a failed blob delete is logged and the entry is
// removed anyway.
func (s *ReportService) Remove(ctx context.Context, id uuid.UUID) error {
	entry, err := s.registry.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, entry.FilePath); err != nil {
		s.logger.Warn("Report artifact delete failed",
			zap.String("file_path", entry.FilePath),
			zap.Error(err),
		)
	}
	return s.registry.Delete(ctx, id)
}
