package loans

import (
	"github.com/finwise/loancalc/pkg/mathutil"
)

// ApplyExtraPayment recomputes a schedule with a constant extra monthly
// payment applied against the principal. The input schedule is never
// mutated; a non-positive extra or an empty schedule returns a copy of the
// original unchanged.
//
// Each month the extra amount is capped at the remaining balance, and every
// subsequent row is recomputed from the reduced balance using the scheduled
// payment. The schedule truncates at the month the balance reaches zero.
// The annual rate is taken as an explicit parameter rather than re-derived
// from the first row's interest/balance ratio, which would divide by zero on
// a zero-balance schedule.
func ApplyExtraPayment(schedule []Row, annualRatePercent, extraPerMonth float64) ExtraPaymentResult {
	if extraPerMonth <= 0 || len(schedule) == 0 {
		copied := make([]Row, len(schedule))
		copy(copied, schedule)
		return ExtraPaymentResult{Schedule: copied}
	}

	rate := MonthlyRate(annualRatePercent)

	originalInterest := 0.0
	for _, row := range schedule {
		originalInterest += row.Interest
	}

	// Rows store the post-payment balance, so the opening balance is the
	// first row's balance plus whatever principal it already retired.
	balance := schedule[0].Balance + schedule[0].Principal

	modified := make([]Row, 0, len(schedule))
	cumulativeInterest := 0.0

	for _, row := range schedule {
		interest := balance * rate

		var principal float64
		if !row.GracePeriod {
			principal = row.Payment - interest
			if principal > balance {
				principal = balance
			}
			if principal < 0 {
				principal = 0
			}
		}

		extra := mathutil.Min(extraPerMonth, balance-principal)
		if extra < 0 {
			extra = 0
		}
		principal += extra
		balance -= principal
		cumulativeInterest += interest

		current := Row{
			Month:              row.Month,
			Payment:            principal + interest,
			Principal:          principal,
			Interest:           interest,
			Balance:            balance,
			CumulativeInterest: cumulativeInterest,
			GracePeriod:        row.GracePeriod,
		}
		if row.GracePeriod {
			// Grace rows pay no scheduled amount; the only money moving is
			// the extra itself.
			current.Payment = extra
		}
		modified = append(modified, current)

		if mathutil.Round(balance) <= 0 {
			modified[len(modified)-1].Balance = 0
			break
		}
	}

	return ExtraPaymentResult{
		Schedule:      modified,
		MonthsSaved:   len(schedule) - len(modified),
		InterestSaved: originalInterest - cumulativeInterest,
	}
}
