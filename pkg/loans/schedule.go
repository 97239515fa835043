package loans

import (
	"github.com/finwise/loancalc/pkg/constants"
)

// GenerateSchedule produces the month-by-month amortization breakdown for an
// amortizing loan. The returned slice has exactly
// termYears*12 + gracePeriodMonths rows.
//
// Grace-period rows carry no payment and no principal portion; interest
// still accrues into the cumulative column but is not capitalized into the
// balance. Regular rows follow standard amortization, and the final row
// absorbs any floating-point residue so the closing balance is exactly zero.
// Regeneration is cheap; schedules are rebuilt on demand rather than
// incrementally updated.
func GenerateSchedule(effectivePrincipal, annualRatePercent float64, termYears, gracePeriodMonths int) []Row {
	totalPayments := termYears * constants.MonthsPerYear
	rate := MonthlyRate(annualRatePercent)
	payment := MonthlyPayment(effectivePrincipal, annualRatePercent, termYears, Repayment)

	rows := make([]Row, 0, totalPayments+gracePeriodMonths)
	balance := effectivePrincipal
	cumulativeInterest := 0.0

	for month := 1; month <= gracePeriodMonths; month++ {
		interest := balance * rate
		cumulativeInterest += interest
		rows = append(rows, Row{
			Month:              month,
			Interest:           interest,
			Balance:            balance,
			CumulativeInterest: cumulativeInterest,
			GracePeriod:        true,
		})
	}

	for n := 1; n <= totalPayments; n++ {
		interest := balance * rate
		principal := payment - interest
		balance -= principal
		if n == totalPayments {
			// Fold the residue into the last payment so the balance closes
			// at exactly zero.
			principal += balance
			balance = 0
		}
		cumulativeInterest += interest
		rows = append(rows, Row{
			Month:              gracePeriodMonths + n,
			Payment:            principal + interest,
			Principal:          principal,
			Interest:           interest,
			Balance:            balance,
			CumulativeInterest: cumulativeInterest,
		})
	}

	return rows
}

// InterestOnlySchedule produces the degenerate all-interest schedule for an
// interest-only loan: every payment covers exactly one month of interest and
// the balance stays flat for the whole term.
func InterestOnlySchedule(effectivePrincipal, annualRatePercent float64, termYears, gracePeriodMonths int) []Row {
	totalPayments := termYears * constants.MonthsPerYear
	rate := MonthlyRate(annualRatePercent)
	payment := effectivePrincipal * rate

	rows := make([]Row, 0, totalPayments+gracePeriodMonths)
	cumulativeInterest := 0.0

	for month := 1; month <= gracePeriodMonths+totalPayments; month++ {
		interest := effectivePrincipal * rate
		cumulativeInterest += interest
		row := Row{
			Month:              month,
			Interest:           interest,
			Balance:            effectivePrincipal,
			CumulativeInterest: cumulativeInterest,
		}
		if month <= gracePeriodMonths {
			row.GracePeriod = true
		} else {
			row.Payment = payment
		}
		rows = append(rows, row)
	}

	return rows
}
