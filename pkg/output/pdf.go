package output

import (
	"bytes"
	"strconv"

	"github.com/finwise/loancalc/pkg/datetime"
	"github.com/finwise/loancalc/pkg/format"
	"github.com/finwise/loancalc/pkg/loans"
	"github.com/jung-kurt/gofpdf"
)

// SchedulePDF renders a summary and amortization schedule as a PDF
// document.
func SchedulePDF(summary loans.Summary, schedule []loans.Row, opts Options) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(40, 10, "Loan breakdown")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(80, 7, "Principal: "+format.Currency(summary.OriginalPrincipal))
	pdf.Ln(6)
	if summary.EffectivePrincipal != summary.OriginalPrincipal {
		pdf.Cell(80, 7, "Effective principal: "+format.Currency(summary.EffectivePrincipal))
		pdf.Ln(6)
	}
	pdf.Cell(80, 7, "Rate: "+format.Percent(summary.AnnualRatePercent))
	pdf.Ln(6)
	pdf.Cell(80, 7, "Term: "+strconv.Itoa(summary.TermYears)+" years")
	pdf.Ln(6)
	pdf.Cell(80, 7, "Monthly payment: "+format.Currency(summary.MonthlyPayment))
	pdf.Ln(6)
	pdf.Cell(80, 7, "Total interest: "+format.Whole(summary.TotalInterest))
	pdf.Ln(6)
	if summary.TotalFees > 0 {
		pdf.Cell(80, 7, "Total fees: "+format.Whole(summary.TotalFees))
		pdf.Ln(6)
	}
	pdf.Cell(80, 7, "Total repayment: "+format.Whole(summary.TotalRepayment))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(22, 7, "Month")
	pdf.Cell(32, 7, "Payment")
	pdf.Cell(32, 7, "Principal")
	pdf.Cell(32, 7, "Interest")
	pdf.Cell(32, 7, "Balance")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range schedule {
		label := strconv.Itoa(row.Month)
		if opts.StartMonth != "" {
			if dated, err := datetime.OffsetMonth(opts.StartMonth, row.Month-1); err == nil {
				label = dated
			}
		}
		pdf.Cell(22, 6, label)
		pdf.Cell(32, 6, format.Currency(row.Payment))
		pdf.Cell(32, 6, format.Currency(row.Principal))
		pdf.Cell(32, 6, format.Currency(row.Interest))
		pdf.Cell(32, 6, format.Currency(row.Balance))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
