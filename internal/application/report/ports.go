package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ObjectStorage stores rendered report artifacts. Implementations must be
// safe for concurrent use.
type ObjectStorage interface {
	// Upload writes the artifact bytes under the given key, overwriting any
	// existing object.
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes the artifact. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an artifact is stored under the key
	Exists(ctx context.Context, key string) (bool, error)

	// DownloadURL returns a time-limited URL for fetching the artifact
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// DocumentRow is one transaction line in a rendered report. Branch and
// staff identifiers are already resolved to display names by the caller.
type DocumentRow struct {
	Date             time.Time
	FromBranchName   string
	ToBranchName     string
	FromStaffName    string
	ToStaffName      string
	ConfirmationCode string
	Amount           decimal.Decimal
	Currency         string
	Status           string
}

// Document is the input to a report renderer
type Document struct {
	BranchName        string
	PeriodDescription string
	Rows              []DocumentRow
	TotalAmount       decimal.Decimal
	Currency          string
	GeneratedAt       time.Time
}

// DocumentRenderer produces the report artifact bytes for a document
type DocumentRenderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}
