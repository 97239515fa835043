package loans

import (
	"math"

	"github.com/finwise/loancalc/pkg/constants"
)

// MonthlyRate converts a nominal annual rate percentage to a monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// MonthlyPayment calculates the fixed periodic payment for a loan.
//
// For interest-only loans the payment covers one month of accrued interest.
// For amortizing loans the standard annuity formula applies, with the
// zero-rate case special-cased to avoid division by zero. Callers must
// ensure principal >= 0 and termYears >= 1.
func MonthlyPayment(principal, annualRatePercent float64, termYears int, repaymentType RepaymentType) float64 {
	rate := MonthlyRate(annualRatePercent)

	if repaymentType == InterestOnly {
		return principal * rate
	}

	totalPayments := termYears * constants.MonthsPerYear
	if rate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(totalPayments)
	}

	power := math.Pow(1.00+rate, float64(totalPayments))
	return principal * rate * power / (power - 1.00)
}

// InterestPortion calculates one month of interest accrued on a balance.
func InterestPortion(balance, annualRatePercent float64) float64 {
	return balance * MonthlyRate(annualRatePercent)
}
