// Package output provides utilities for formatting and exporting
// calculation results. All formatting is strictly presentational; the engine
// itself emits plain numbers.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/finwise/loancalc/pkg/datetime"
	"github.com/finwise/loancalc/pkg/format"
	"github.com/finwise/loancalc/pkg/loans"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Options controls export rendering.
type Options struct {
	// StartMonth, when set to a YYYY-MM label, adds a date column to
	// schedule rows.
	StartMonth string
}

// ScheduleCSV serializes a schedule plus optional summary metadata to CSV.
// Values containing commas, quotes, or newlines are quoted with internal
// quotes doubled.
func ScheduleCSV(summary *loans.Summary, schedule []loans.Row, opts Options) (string, error) {
	var builder strings.Builder
	w := csv.NewWriter(&builder)

	if summary != nil {
		metadata := [][]string{
			{"principal", strconv.FormatFloat(summary.OriginalPrincipal, 'f', 2, 64)},
			{"effective principal", strconv.FormatFloat(summary.EffectivePrincipal, 'f', 2, 64)},
			{"annual rate percent", strconv.FormatFloat(summary.AnnualRatePercent, 'f', 2, 64)},
			{"term years", strconv.Itoa(summary.TermYears)},
			{"repayment type", string(summary.Type)},
			{"monthly payment", strconv.FormatFloat(summary.MonthlyPayment, 'f', 2, 64)},
			{"total interest", strconv.FormatFloat(summary.TotalInterest, 'f', 0, 64)},
			{"total fees", strconv.FormatFloat(summary.TotalFees, 'f', 0, 64)},
			{"total repayment", strconv.FormatFloat(summary.TotalRepayment, 'f', 0, 64)},
		}
		for _, record := range metadata {
			if err := w.Write(record); err != nil {
				return "", err
			}
		}
		if err := w.Write([]string{}); err != nil {
			return "", err
		}
	}

	header := []string{"month", "payment", "principal", "interest", "balance", "cumulative interest", "grace period"}
	dated := opts.StartMonth != ""
	if dated {
		header = append([]string{header[0], "date"}, header[1:]...)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, row := range schedule {
		record := []string{
			strconv.Itoa(row.Month),
			strconv.FormatFloat(row.Payment, 'f', 2, 64),
			strconv.FormatFloat(row.Principal, 'f', 2, 64),
			strconv.FormatFloat(row.Interest, 'f', 2, 64),
			strconv.FormatFloat(row.Balance, 'f', 2, 64),
			strconv.FormatFloat(row.CumulativeInterest, 'f', 2, 64),
			strconv.FormatBool(row.GracePeriod),
		}
		if dated {
			label, err := datetime.OffsetMonth(opts.StartMonth, row.Month-1)
			if err != nil {
				return "", fmt.Errorf("invalid start month %q: %w", opts.StartMonth, err)
			}
			record = append([]string{record[0], label}, record[1:]...)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// PrettySummary writes a human-readable summary table.
func PrettySummary(w io.Writer, s loans.Summary) {
	fmt.Fprintf(w, "--- Loan summary ---\n")
	fmt.Fprintf(w, "Principal           | %s\n", format.Currency(s.OriginalPrincipal))
	if s.EffectivePrincipal != s.OriginalPrincipal {
		fmt.Fprintf(w, "Effective principal | %s\n", format.Currency(s.EffectivePrincipal))
	}
	fmt.Fprintf(w, "Rate                | %s\n", format.Percent(s.AnnualRatePercent))
	fmt.Fprintf(w, "Term                | %d years\n", s.TermYears)
	fmt.Fprintf(w, "Monthly payment     | %s\n", format.Currency(s.MonthlyPayment))
	fmt.Fprintf(w, "Total interest      | %s\n", format.Whole(s.TotalInterest))
	if s.TotalFees > 0 {
		fmt.Fprintf(w, "Total fees          | %s\n", format.Whole(s.TotalFees))
	}
	fmt.Fprintf(w, "Total repayment     | %s\n", format.Whole(s.TotalRepayment))
	if s.LoanToValue > 0 {
		fmt.Fprintf(w, "Loan-to-value       | %s\n", format.Percent(s.LoanToValue))
	}
	if s.GracePeriodMonths > 0 {
		fmt.Fprintf(w, "Grace interest      | %s over %d months\n", format.Currency(s.GraceInterest), s.GracePeriodMonths)
	}
}

// PrettySchedule writes a human-readable amortization table.
func PrettySchedule(w io.Writer, schedule []loans.Row, opts Options) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "--- Amortization schedule ---\n")
	fmt.Fprintf(w, "Month | Payment     | Principal   | Interest    | Balance\n")
	fmt.Fprintf(w, "_____ | ___________ | ___________ | ___________ | ___________\n")
	for _, row := range schedule {
		label := fmt.Sprintf("%5d", row.Month)
		if opts.StartMonth != "" {
			if dated, err := datetime.OffsetMonth(opts.StartMonth, row.Month-1); err == nil {
				label = fmt.Sprintf("%5s", dated)
			}
		}
		_, _ = p.Fprintf(w, "%s | $%10.2f | $%10.2f | $%10.2f | $%10.2f\n",
			label, row.Payment, row.Principal, row.Interest, row.Balance)
	}
}

// PrettyExtraPayment writes a human-readable early-payoff comparison.
func PrettyExtraPayment(w io.Writer, extraPerMonth float64, result loans.ExtraPaymentResult) {
	fmt.Fprintf(w, "--- Extra payment %s/month ---\n", format.Currency(extraPerMonth))
	fmt.Fprintf(w, "Months saved   | %d\n", result.MonthsSaved)
	fmt.Fprintf(w, "Interest saved | %s\n", format.Currency(result.InterestSaved))
	fmt.Fprintf(w, "Payoff after   | %d months\n", len(result.Schedule))
}

// PrettyAffordability writes a human-readable affordability report.
func PrettyAffordability(w io.Writer, result loans.AffordabilityResult) {
	fmt.Fprintf(w, "--- Affordability ---\n")
	if result.Outcome == loans.OutcomeFallback {
		fmt.Fprintf(w, "Note: fallback estimate (%s)\n", result.Reason)
	}
	fmt.Fprintf(w, "Maximum price        | %s (loan %s, payment %s)\n",
		format.Whole(result.MaxPrice), format.Whole(result.MaxLoan), format.Currency(result.MaxMonthlyPayment))
	fmt.Fprintf(w, "Conservative price   | %s (loan %s, payment %s)\n",
		format.Whole(result.ConservativePrice), format.Whole(result.ConservativeLoan), format.Currency(result.ConservativeMonthlyPayment))
}

// PrettyStampDuty writes the stamp duty line for a purchase price.
func PrettyStampDuty(w io.Writer, price, duty float64) {
	fmt.Fprintf(w, "--- Stamp duty ---\n")
	fmt.Fprintf(w, "On %s | %s\n", format.Whole(price), format.Whole(duty))
}
