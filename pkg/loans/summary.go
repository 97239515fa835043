package loans

import (
	"github.com/finwise/loancalc/pkg/constants"
	"github.com/finwise/loancalc/pkg/mathutil"
)

// Summarize computes the aggregate totals for a loan.
//
// The effective principal is the requested amount net of down payment and
// trade-in, floored at zero; a fully-offset principal yields a zero payment
// and zero interest rather than an error. The rate is rounded to two
// decimals before use so that summary figures match what the caller
// displays. Grace-period interest accrues as simple, non-compounding
// interest and is counted toward total interest for both repayment types.
func Summarize(p Parameters) Summary {
	rate := mathutil.Round(p.AnnualRatePercent)
	effective := mathutil.Max(p.Principal-p.DownPayment-p.TradeInValue, 0)
	totalPayments := p.TermYears * constants.MonthsPerYear

	repaymentType := p.Type
	if repaymentType == "" {
		repaymentType = Repayment
	}

	payment := MonthlyPayment(effective, rate, p.TermYears, repaymentType)

	graceInterest := 0.0
	if p.GracePeriodMonths > 0 {
		graceInterest = effective * MonthlyRate(rate) * float64(p.GracePeriodMonths)
	}

	totalFees := 0.0
	for _, fee := range p.Fees {
		totalFees += fee
	}

	var totalInterest float64
	if repaymentType == InterestOnly {
		totalInterest = payment*float64(totalPayments) + graceInterest
	} else {
		totalInterest = payment*float64(totalPayments) - effective + graceInterest
	}

	summary := Summary{
		OriginalPrincipal:  p.Principal,
		EffectivePrincipal: effective,
		AnnualRatePercent:  rate,
		TermYears:          p.TermYears,
		Type:               repaymentType,
		MonthlyPayment:     mathutil.Round(payment),
		TotalInterest:      mathutil.RoundWhole(totalInterest),
		TotalFees:          mathutil.RoundWhole(totalFees),
		TotalRepayment:     mathutil.RoundWhole(effective + totalInterest + totalFees),
		GraceInterest:      mathutil.Round(graceInterest),
		GracePeriodMonths:  p.GracePeriodMonths,
	}

	if p.DownPayment+p.TradeInValue > 0 && p.Principal > 0 {
		summary.LoanToValue = mathutil.Round(effective / p.Principal * constants.PercentageMultiplier)
	}

	return summary
}
