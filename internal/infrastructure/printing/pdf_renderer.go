package printing

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	reportapp "github.com/schoolms/backend/internal/application/report"
)

// Page geometry in points. A4 portrait.
const (
	pageWidth  = 595.0
	pageHeight = 842.0
	pageMargin = 50.0
	rowHeight  = 15.0
)

// tableHeaders and columnWidths are parallel; widths sum to 465pt which
// fits inside the printable area.
var (
	tableHeaders = []string{"Date", "Branch From-To", "Sender - Receiver", "MTCN", "Amount", "Status"}
	columnWidths = []float64{40, 70, 185, 65, 65, 40}
)

// PDFRenderer draws transaction report documents directly with fpdf.
// It is stateless and safe for concurrent use.
type PDFRenderer struct{}

var _ reportapp.DocumentRenderer = (*PDFRenderer)(nil)

// NewPDFRenderer creates a PDF document renderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the report PDF for the given document
func (r *PDFRenderer) Render(ctx context.Context, doc reportapp.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := pageMargin

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(26, 26, 26)
	pdf.Text(pageMargin, y, "Monthly Transaction Report")
	y += 30

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(77, 77, 77)
	pdf.Text(pageMargin, y, fmt.Sprintf("Branch: %s", doc.BranchName))
	y += 20
	pdf.Text(pageMargin, y, fmt.Sprintf("Period: %s", doc.PeriodDescription))
	y += 30

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(pageMargin, y, fmt.Sprintf("Total Transactions: %d", len(doc.Rows)))
	y += 18
	pdf.Text(pageMargin, y, fmt.Sprintf("Total Amount: %s %s", formatAmount(doc.TotalAmount), doc.Currency))
	y += 35

	pdf.SetDrawColor(204, 204, 204)
	pdf.SetLineWidth(1)
	pdf.Line(pageMargin, y, pageWidth-pageMargin, y)
	y += 20

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(51, 51, 51)
	x := pageMargin
	for i, header := range tableHeaders {
		pdf.Text(x, y, header)
		x += columnWidths[i]
	}
	y += 18

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(77, 77, 77)
	for _, row := range doc.Rows {
		if y > pageHeight-pageMargin-50 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 6)
			pdf.SetTextColor(77, 77, 77)
			y = pageMargin
		}

		x = pageMargin
		for i, cell := range formatRow(row) {
			pdf.Text(x, y, cell)
			x += columnWidths[i]
		}
		y += rowHeight
	}

	y += 10
	pdf.SetDrawColor(204, 204, 204)
	pdf.Line(pageMargin, y, pageWidth-pageMargin, y)
	y += 20

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.Text(pageMargin, y, fmt.Sprintf("Generated on: %s", doc.GeneratedAt.Format("02/01/2006, 15:04:05")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// formatRow builds the six table cells for a transaction line
func formatRow(row reportapp.DocumentRow) []string {
	fromTo := fmt.Sprintf("%s - %s",
		firstRunes(nameOrNA(row.FromBranchName), 7),
		firstRunes(nameOrNA(row.ToBranchName), 7))

	staff := fmt.Sprintf("%s - %s", nameOrNA(row.FromStaffName), nameOrNA(row.ToStaffName))

	return []string{
		row.Date.Format("02/01/2006"),
		truncate(fromTo, 15, 13),
		truncate(staff, 38, 36),
		truncate(nameOrNA(row.ConfirmationCode), 11, 9),
		fmt.Sprintf("%s %s", formatAmount(row.Amount), row.Currency),
		strings.ToUpper(firstRunes(row.Status, 5)),
	}
}

func nameOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// firstRunes returns at most n leading runes of s
func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// truncate shortens s to keep runes plus ".." when it exceeds max runes
func truncate(s string, max, keep int) string {
	if len([]rune(s)) > max {
		return firstRunes(s, keep) + ".."
	}
	return s
}

// formatAmount renders a decimal with thousands separators, dropping
// trailing zeros in the fraction.
func formatAmount(d decimal.Decimal) string {
	s := d.String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = strings.TrimRight(s[idx+1:], "0")
	}

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	out := sign + grouped.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	return out
}
