package printing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reportapp "github.com/schoolms/backend/internal/application/report"
)

func sampleRow() reportapp.DocumentRow {
	return reportapp.DocumentRow{
		Date:             time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
		FromBranchName:   "Kabul Main Branch",
		ToBranchName:     "Herat Branch",
		FromStaffName:    "Ahmad Waleed",
		ToStaffName:      "Sara Noori",
		ConfirmationCode: "1234567890",
		Amount:           decimal.NewFromInt(1500),
		Currency:         "USD",
		Status:           "confirmed",
	}
}

func TestPDFRenderer_Render(t *testing.T) {
	renderer := NewPDFRenderer()

	t.Run("produces a valid PDF document", func(t *testing.T) {
		doc := reportapp.Document{
			BranchName:        "Kabul Main Branch",
			PeriodDescription: "March 2025",
			Rows:              []reportapp.DocumentRow{sampleRow()},
			TotalAmount:       decimal.NewFromInt(1500),
			Currency:          "USD",
			GeneratedAt:       time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC),
		}

		data, err := renderer.Render(context.Background(), doc)
		require.NoError(t, err)
		require.NotEmpty(t, data)
		assert.Equal(t, "%PDF", string(data[:4]))
	})

	t.Run("handles many rows across page breaks", func(t *testing.T) {
		rows := make([]reportapp.DocumentRow, 120)
		for i := range rows {
			rows[i] = sampleRow()
		}
		doc := reportapp.Document{
			BranchName:        "All Branches",
			PeriodDescription: "Year 2025",
			Rows:              rows,
			TotalAmount:       decimal.NewFromInt(180000),
			Currency:          "USD",
			GeneratedAt:       time.Now(),
		}

		data, err := renderer.Render(context.Background(), doc)
		require.NoError(t, err)
		assert.Greater(t, len(data), 1000)
	})

	t.Run("returns the context error when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := renderer.Render(ctx, reportapp.Document{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFormatRow(t *testing.T) {
	t.Run("formats a full row", func(t *testing.T) {
		cells := formatRow(sampleRow())

		require.Len(t, cells, 6)
		assert.Equal(t, "15/03/2025", cells[0])
		assert.Equal(t, "Kabul M - Her..", cells[1])
		assert.Equal(t, "Ahmad Waleed - Sara Noori", cells[2])
		assert.Equal(t, "1234567890", cells[3])
		assert.Equal(t, "1,500 USD", cells[4])
		assert.Equal(t, "CONFI", cells[5])
	})

	t.Run("substitutes N/A for missing names and codes", func(t *testing.T) {
		row := sampleRow()
		row.FromStaffName = ""
		row.ConfirmationCode = ""

		cells := formatRow(row)
		assert.Equal(t, "N/A - Sara Noori", cells[2])
		assert.Equal(t, "N/A", cells[3])
	})

	t.Run("truncates long staff names and codes", func(t *testing.T) {
		row := sampleRow()
		row.FromStaffName = "Abdul Rahman Mohammadi"
		row.ToStaffName = "Khadija Ahmadzai Stanikzai"
		row.ConfirmationCode = "CODE-1234567890"

		cells := formatRow(row)
		assert.Len(t, cells[2], 38)
		assert.Equal(t, "..", cells[2][36:])
		assert.Equal(t, "CODE-1234..", cells[3])
	})

	t.Run("uppercases the leading status characters", func(t *testing.T) {
		row := sampleRow()
		row.Status = "pending"

		cells := formatRow(row)
		assert.Equal(t, "PENDI", cells[5])
	})
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"small integer", "500", "500"},
		{"thousands grouping", "1500", "1,500"},
		{"millions grouping", "1234567", "1,234,567"},
		{"fraction kept", "2750.5", "2,750.5"},
		{"trailing zeros dropped", "1000.500", "1,000.5"},
		{"whole fraction dropped", "1000.00", "1,000"},
		{"negative", "-12345.25", "-12,345.25"},
		{"zero", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, formatAmount(d))
		})
	}
}
