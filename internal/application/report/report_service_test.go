package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schoolms/backend/internal/domain/ledger"
	"github.com/schoolms/backend/internal/domain/org"
	"github.com/schoolms/backend/internal/domain/report"
	"github.com/schoolms/backend/internal/domain/shared"
)

type reportServiceFixture struct {
	service    *ReportService
	txRepo     *MockTransactionRepository
	branchRepo *MockBranchRepository
	staffRepo  *MockStaffRepository
	registry   *MockRegistry
	storage    *MockObjectStorage
	renderer   *MockDocumentRenderer
}

func newReportServiceFixture(t *testing.T, now time.Time) *reportServiceFixture {
	t.Helper()
	f := &reportServiceFixture{
		txRepo:     new(MockTransactionRepository),
		branchRepo: new(MockBranchRepository),
		staffRepo:  new(MockStaffRepository),
		registry:   new(MockRegistry),
		storage:    new(MockObjectStorage),
		renderer:   new(MockDocumentRenderer),
	}
	f.service = NewReportService(
		f.txRepo, f.branchRepo, f.staffRepo, f.registry, f.storage, f.renderer,
		zap.NewNop(),
		WithClock(func() time.Time { return now }),
	)
	return f
}

func newBranch(t *testing.T, name string) *org.Branch {
	t.Helper()
	branch, err := org.NewBranch(name, "Kabul", "", "")
	require.NoError(t, err)
	return branch
}

func newStaff(t *testing.T, first, last string) *org.Staff {
	t.Helper()
	member, err := org.NewStaff(first, last, "Manager", nil)
	require.NoError(t, err)
	return member
}

func periodTransaction(t *testing.T, from, to *org.Branch, sender, receiver *org.Staff, amount int64, date time.Time) ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(
		"TXN-202503-00001",
		from.ID, to.ID, sender.ID, receiver.ID,
		decimal.NewFromInt(amount), "USD", "western_union",
		date, "Monthly salaries",
		ledger.StatusConfirmed,
	)
	require.NoError(t, err)
	return *tx
}

func TestReportService_Generate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	marchStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	marchEnd := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	t.Run("renders, stores and registers the artifact", func(t *testing.T) {
		f := newReportServiceFixture(t, now)

		kabul := newBranch(t, "Kabul Main Branch")
		herat := newBranch(t, "Herat Branch")
		sender := newStaff(t, "Ahmad", "Waleed")
		receiver := newStaff(t, "Sara", "Noori")
		transactions := []ledger.Transaction{
			periodTransaction(t, herat, kabul, sender, receiver, 1500, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
			periodTransaction(t, herat, kabul, sender, receiver, 1000, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)),
		}
		pdfData := []byte("%PDF-1.3 fake")

		f.txRepo.On("FindForPeriod", ctx, &kabul.ID, marchStart, marchEnd).Return(transactions, nil)
		f.branchRepo.On("FindByID", ctx, kabul.ID).Return(kabul, nil)
		f.branchRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]*org.Branch{herat, kabul}, nil)
		f.staffRepo.On("FindAll", ctx, mock.AnythingOfType("org.StaffFilter")).Return([]*org.Staff{sender, receiver}, nil)
		f.renderer.On("Render", ctx, mock.MatchedBy(func(doc Document) bool {
			return doc.BranchName == "Kabul Main Branch" &&
				doc.PeriodDescription == "March 2025" &&
				len(doc.Rows) == 2 &&
				doc.Rows[0].FromBranchName == "Herat Branch" &&
				doc.Rows[0].FromStaffName == "Ahmad Waleed" &&
				doc.TotalAmount.Equal(decimal.NewFromInt(2500))
		})).Return(pdfData, nil)
		f.storage.On("Upload", ctx, "2025-03/Kabul_Main_Branch_2025-03.pdf", pdfData, "application/pdf").Return(nil)
		f.registry.On("Upsert", ctx, mock.AnythingOfType("*report.GeneratedReport")).Return(nil)

		result, err := f.service.Generate(ctx, GenerateRequest{
			BranchID:   &kabul.ID,
			ReportType: "single",
			Year:       2025,
			Month:      3,
		}, nil)

		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, result.Report)
		assert.Equal(t, "single", result.Report.ReportType)
		assert.Equal(t, "2025-03", result.Report.ReportPeriod)
		assert.Equal(t, "Kabul_Main_Branch_2025-03.pdf", result.Report.FileName)
		assert.Equal(t, int64(len(pdfData)), result.Report.FileSize)
		assert.Equal(t, 2, result.Report.TransactionCount)
		assert.Equal(t, "2500", result.Report.TotalAmount.String())
		assert.Equal(t, "USD", result.Report.Currency)
		assert.Equal(t, "completed", result.Report.Status)
		f.storage.AssertExpectations(t)
		f.registry.AssertExpectations(t)
	})

	t.Run("empty period fails interactively", func(t *testing.T) {
		f := newReportServiceFixture(t, now)

		f.txRepo.On("FindForPeriod", ctx, (*uuid.UUID)(nil), marchStart, marchEnd).
			Return([]ledger.Transaction{}, nil)

		_, err := f.service.Generate(ctx, GenerateRequest{ReportType: "single", Year: 2025, Month: 3}, nil)
		assert.ErrorIs(t, err, shared.ErrNoTransactions)
		f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	})

	t.Run("empty period is a skip for automated runs", func(t *testing.T) {
		f := newReportServiceFixture(t, now)

		f.txRepo.On("FindForPeriod", ctx, (*uuid.UUID)(nil), marchStart, marchEnd).
			Return([]ledger.Transaction{}, nil)

		result, err := f.service.Generate(ctx, GenerateRequest{
			ReportType:  "single",
			Year:        2025,
			Month:       3,
			IsAutomated: true,
		}, nil)

		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Equal(t, "No transactions found for this period", result.Message)
	})

	t.Run("defaults to the previous calendar month", func(t *testing.T) {
		f := newReportServiceFixture(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

		febStart := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		febEnd := time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)
		f.txRepo.On("FindForPeriod", ctx, (*uuid.UUID)(nil), febStart, febEnd).
			Return([]ledger.Transaction{}, nil)

		result, err := f.service.Generate(ctx, GenerateRequest{IsAutomated: true}, nil)
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		f.txRepo.AssertExpectations(t)
	})

	t.Run("rejects a reversed range before any query", func(t *testing.T) {
		f := newReportServiceFixture(t, now)

		_, err := f.service.Generate(ctx, GenerateRequest{
			ReportType: "range",
			StartYear:  2025, StartMonth: 6,
			EndYear: 2025, EndMonth: 1,
		}, nil)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
		f.txRepo.AssertNotCalled(t, "FindForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("removes the artifact when the registry write fails", func(t *testing.T) {
		f := newReportServiceFixture(t, now)

		kabul := newBranch(t, "Kabul Main Branch")
		sender := newStaff(t, "Ahmad", "Waleed")
		receiver := newStaff(t, "Sara", "Noori")
		transactions := []ledger.Transaction{
			periodTransaction(t, newBranch(t, "Herat Branch"), kabul, sender, receiver, 1500, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		}
		key := "2025-03/All_Branches_2025-03.pdf"

		f.txRepo.On("FindForPeriod", ctx, (*uuid.UUID)(nil), marchStart, marchEnd).Return(transactions, nil)
		f.branchRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]*org.Branch{kabul}, nil)
		f.staffRepo.On("FindAll", ctx, mock.AnythingOfType("org.StaffFilter")).Return([]*org.Staff{sender, receiver}, nil)
		f.renderer.On("Render", ctx, mock.AnythingOfType("report.Document")).Return([]byte("%PDF"), nil)
		f.storage.On("Upload", ctx, key, mock.Anything, "application/pdf").Return(nil)
		f.registry.On("Upsert", ctx, mock.AnythingOfType("*report.GeneratedReport")).
			Return(errors.New("unique constraint"))
		f.storage.On("Delete", ctx, key).Return(nil)

		_, err := f.service.Generate(ctx, GenerateRequest{ReportType: "single", Year: 2025, Month: 3}, nil)
		assert.EqualError(t, err, "unique constraint")
		f.storage.AssertCalled(t, "Delete", ctx, key)
	})

	t.Run("records the requesting user", func(t *testing.T) {
		f := newReportServiceFixture(t, now)

		kabul := newBranch(t, "Kabul Main Branch")
		sender := newStaff(t, "Ahmad", "Waleed")
		receiver := newStaff(t, "Sara", "Noori")
		transactions := []ledger.Transaction{
			periodTransaction(t, newBranch(t, "Herat Branch"), kabul, sender, receiver, 1500, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		}
		admin := uuid.New()

		f.txRepo.On("FindForPeriod", ctx, (*uuid.UUID)(nil), marchStart, marchEnd).Return(transactions, nil)
		f.branchRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]*org.Branch{kabul}, nil)
		f.staffRepo.On("FindAll", ctx, mock.AnythingOfType("org.StaffFilter")).Return([]*org.Staff{sender, receiver}, nil)
		f.renderer.On("Render", ctx, mock.AnythingOfType("report.Document")).Return([]byte("%PDF"), nil)
		f.storage.On("Upload", ctx, mock.Anything, mock.Anything, "application/pdf").Return(nil)
		f.registry.On("Upsert", ctx, mock.MatchedBy(func(entry *report.GeneratedReport) bool {
			return entry.GeneratedBy != nil && *entry.GeneratedBy == admin
		})).Return(nil)

		result, err := f.service.Generate(ctx, GenerateRequest{ReportType: "single", Year: 2025, Month: 3}, &admin)
		require.NoError(t, err)
		require.NotNil(t, result.Report)
		assert.Equal(t, &admin, result.Report.GeneratedBy)
	})
}

func TestReportService_Remove(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture(t, time.Now())

	entry := report.NewGeneratedReport(
		nil, report.ModeSingle, "2025-03",
		"All_Branches_2025-03.pdf", "2025-03/All_Branches_2025-03.pdf",
		1024, 3, decimal.NewFromInt(4500), "USD", nil,
	)

	t.Run("registry entry is removed even when the blob delete fails", func(t *testing.T) {
		f.registry.On("FindByID", ctx, entry.ID).Return(entry, nil)
		f.storage.On("Delete", ctx, entry.FilePath).Return(errors.New("access denied"))
		f.registry.On("Delete", ctx, entry.ID).Return(nil)

		require.NoError(t, f.service.Remove(ctx, entry.ID))
		f.registry.AssertCalled(t, "Delete", ctx, entry.ID)
	})

	t.Run("missing entry", func(t *testing.T) {
		id := uuid.New()
		f.registry.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := f.service.Remove(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestReportService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	entry := report.NewGeneratedReport(
		nil, report.ModeSingle, "2025-03",
		"All_Branches_2025-03.pdf", "2025-03/All_Branches_2025-03.pdf",
		1024, 3, decimal.NewFromInt(4500), "USD", nil,
	)

	t.Run("signs a URL for a stored artifact", func(t *testing.T) {
		f := newReportServiceFixture(t, time.Now())
		expiresAt := time.Now().Add(15 * time.Minute)

		f.registry.On("FindByID", ctx, entry.ID).Return(entry, nil)
		f.storage.On("Exists", ctx, entry.FilePath).Return(true, nil)
		f.storage.On("DownloadURL", ctx, entry.FilePath, 15*time.Minute).
			Return("https://storage.example.com/signed", expiresAt, nil)

		resp, err := f.service.DownloadURL(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/signed", resp.URL)
		assert.Equal(t, "All_Branches_2025-03.pdf", resp.FileName)
		assert.Equal(t, expiresAt, resp.ExpiresAt)
	})

	t.Run("registry entry without a blob is not found", func(t *testing.T) {
		f := newReportServiceFixture(t, time.Now())

		f.registry.On("FindByID", ctx, entry.ID).Return(entry, nil)
		f.storage.On("Exists", ctx, entry.FilePath).Return(false, nil)

		_, err := f.service.DownloadURL(ctx, entry.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.storage.AssertNotCalled(t, "DownloadURL", mock.Anything, mock.Anything, mock.Anything)
	})
}
