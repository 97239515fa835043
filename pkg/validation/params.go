// Package validation provides input sanitization for the loan engine.
//
// Out-of-range inputs are clamped to valid ranges rather than rejected; each
// adjustment is reported as a warning string for the caller to log. This
// keeps the engine's graceful-degradation contract: every input produces a
// computable parameter set.
package validation

import (
	"fmt"

	"github.com/finwise/loancalc/pkg/constants"
	"github.com/finwise/loancalc/pkg/loans"
)

// SanitizeParameters clamps out-of-range loan inputs and reports every
// adjustment it made. The returned Parameters are always safe to feed to the
// engine.
func SanitizeParameters(p loans.Parameters) (loans.Parameters, []string) {
	var warnings []string

	if p.Principal < 0 {
		warnings = append(warnings, fmt.Sprintf("principal %.2f is negative, clamping to 0", p.Principal))
		p.Principal = 0
	}
	if p.Principal > constants.MaxLoanAmount {
		warnings = append(warnings, fmt.Sprintf("principal %.2f exceeds the maximum %.0f, clamping", p.Principal, constants.MaxLoanAmount))
		p.Principal = constants.MaxLoanAmount
	}

	if p.AnnualRatePercent < 0 {
		warnings = append(warnings, fmt.Sprintf("annual rate %.2f%% is negative, clamping to 0", p.AnnualRatePercent))
		p.AnnualRatePercent = 0
	}
	if p.AnnualRatePercent > constants.MaxAnnualRatePercent {
		warnings = append(warnings, fmt.Sprintf("annual rate %.2f%% exceeds the maximum %.0f%%, clamping", p.AnnualRatePercent, constants.MaxAnnualRatePercent))
		p.AnnualRatePercent = constants.MaxAnnualRatePercent
	}

	if p.TermYears < 1 {
		warnings = append(warnings, fmt.Sprintf("term %d years is below the minimum of 1, clamping", p.TermYears))
		p.TermYears = 1
	}
	if p.TermYears > constants.MaxTermYears {
		warnings = append(warnings, fmt.Sprintf("term %d years exceeds the maximum %d, clamping", p.TermYears, constants.MaxTermYears))
		p.TermYears = constants.MaxTermYears
	}

	if p.DownPayment < 0 {
		warnings = append(warnings, "down payment is negative, clamping to 0")
		p.DownPayment = 0
	}
	if p.TradeInValue < 0 {
		warnings = append(warnings, "trade-in value is negative, clamping to 0")
		p.TradeInValue = 0
	}
	if p.GracePeriodMonths < 0 {
		warnings = append(warnings, "grace period is negative, clamping to 0")
		p.GracePeriodMonths = 0
	}

	switch p.Type {
	case "", loans.Repayment, loans.InterestOnly:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown repayment type %q, using repayment", p.Type))
		p.Type = loans.Repayment
	}

	if len(p.Fees) > 0 {
		fees := make(map[string]float64, len(p.Fees))
		for name, amount := range p.Fees {
			if amount < 0 {
				warnings = append(warnings, fmt.Sprintf("fee %q is negative, dropping", name))
				continue
			}
			fees[name] = amount
		}
		p.Fees = fees
	}

	return p, warnings
}

// SanitizeAffordabilityInput scrubs negatives from an affordability question.
// Income and debt plausibility is left to the solver, which has its own
// fallback semantics for degenerate values.
func SanitizeAffordabilityInput(in loans.AffordabilityInput) (loans.AffordabilityInput, []string) {
	var warnings []string

	if in.MonthlyDebts < 0 {
		warnings = append(warnings, "monthly debts are negative, clamping to 0")
		in.MonthlyDebts = 0
	}
	if in.DownPayment < 0 {
		warnings = append(warnings, "down payment is negative, clamping to 0")
		in.DownPayment = 0
	}
	if in.AnnualRatePercent < 0 {
		warnings = append(warnings, "annual rate is negative, clamping to 0")
		in.AnnualRatePercent = 0
	}
	if in.AnnualRatePercent > constants.MaxAnnualRatePercent {
		warnings = append(warnings, fmt.Sprintf("annual rate %.2f%% exceeds the maximum %.0f%%, clamping", in.AnnualRatePercent, constants.MaxAnnualRatePercent))
		in.AnnualRatePercent = constants.MaxAnnualRatePercent
	}
	if in.MaxDTI < 0 || in.MaxDTI > 1 {
		warnings = append(warnings, fmt.Sprintf("debt-to-income cap %.2f is out of range, using default", in.MaxDTI))
		in.MaxDTI = 0
	}

	return in, warnings
}

// ValidateOutputFormat checks if the output format is one of the supported
// formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}
