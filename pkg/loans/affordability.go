package loans

import (
	"math"

	"github.com/finwise/loancalc/pkg/constants"
	"github.com/finwise/loancalc/pkg/mathutil"
	"go.uber.org/zap"
)

// AffordabilityInput holds the income and debt picture for an affordability
// question.
type AffordabilityInput struct {
	MonthlyIncome     float64 `json:"monthlyIncome"`
	MonthlyDebts      float64 `json:"monthlyDebts"`
	DownPayment       float64 `json:"downPayment"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         int     `json:"termYears"`

	// MaxDTI is the debt-to-income ceiling; zero selects the default.
	MaxDTI float64 `json:"maxDTI,omitempty"`
}

// Outcome tags whether a result came from the real solver or from a
// degenerate-input fallback, so callers can tell a heuristic number from a
// computed one.
type Outcome string

const (
	// OutcomeOK marks a result produced by the closed-form solver.
	OutcomeOK Outcome = "ok"

	// OutcomeFallback marks a safe substitute value; Reason says why.
	OutcomeFallback Outcome = "fallback"
)

// AffordabilityResult holds the maximum and conservative purchase prices a
// given income supports, with the derived loan amounts and payments. Prices
// and loans are rounded to whole units, payments to two decimals. No price
// is ever below the supplied down payment.
type AffordabilityResult struct {
	MaxPrice                   float64 `json:"maxPrice"`
	ConservativePrice          float64 `json:"conservativePrice"`
	MaxLoan                    float64 `json:"maxLoan"`
	ConservativeLoan           float64 `json:"conservativeLoan"`
	MaxMonthlyPayment          float64 `json:"maxMonthlyPayment"`
	ConservativeMonthlyPayment float64 `json:"conservativeMonthlyPayment"`
	Outcome                    Outcome `json:"outcome"`
	Reason                     string  `json:"reason,omitempty"`
}

// SolveAffordability finds the maximum purchase price supportable under a
// debt-to-income constraint by inverting the amortization formula in closed
// form.
//
// Degenerate inputs (non-positive income, debts already above the DTI cap,
// no payment budget left) return the down payment as the affordable price;
// arithmetic failure falls back to a heuristic multiple of annual income.
// All such cases are logged as warnings and tagged on the result; the
// function always returns usable numbers.
func SolveAffordability(logger *zap.Logger, in AffordabilityInput) AffordabilityResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxDTI := in.MaxDTI
	if maxDTI <= 0 {
		maxDTI = constants.DefaultMaxDTI
	}

	termYears := in.TermYears
	if termYears < 1 {
		logger.Warn("affordability: term below one year, clamping",
			zap.Int("termYears", in.TermYears),
			zap.String("op", "loans.SolveAffordability"),
		)
		termYears = 1
	}

	if in.MonthlyIncome <= 0 {
		logger.Warn("affordability: non-positive income, only the down payment is affordable",
			zap.Float64("monthlyIncome", in.MonthlyIncome),
			zap.String("op", "loans.SolveAffordability"),
		)
		return buildAffordability(in, termYears, in.DownPayment, OutcomeFallback, "income must be positive")
	}

	if in.MonthlyDebts > in.MonthlyIncome*maxDTI {
		logger.Warn("affordability: existing debts exceed the debt-to-income cap",
			zap.Float64("monthlyDebts", in.MonthlyDebts),
			zap.Float64("maxDTI", maxDTI),
			zap.String("op", "loans.SolveAffordability"),
		)
		return buildAffordability(in, termYears, in.DownPayment, OutcomeFallback, "existing debts exceed the debt-to-income cap")
	}

	budget := in.MonthlyIncome*maxDTI - in.MonthlyDebts
	if budget <= 0 {
		return buildAffordability(in, termYears, in.DownPayment, OutcomeFallback, "no payment budget within the debt-to-income cap")
	}

	rate := MonthlyRate(in.AnnualRatePercent)
	totalPayments := float64(termYears * constants.MonthsPerYear)

	var maxLoan float64
	if rate == 0 {
		maxLoan = budget * totalPayments
	} else {
		power := math.Pow(1.00+rate, totalPayments)
		maxLoan = budget * (power - 1.00) / (power * rate)
	}

	annualIncome := in.MonthlyIncome * constants.MonthsPerYear
	price := maxLoan + in.DownPayment

	if !mathutil.IsFinite(price) {
		logger.Warn("affordability: arithmetic failure, using heuristic estimate",
			zap.Float64("annualRatePercent", in.AnnualRatePercent),
			zap.Int("termYears", termYears),
			zap.String("op", "loans.SolveAffordability"),
		)
		heuristic := constants.AffordabilityFallbackYears*annualIncome + in.DownPayment
		return buildAffordability(in, termYears, heuristic, OutcomeFallback, "arithmetic failure in closed-form solution")
	}

	ceiling := constants.AffordabilityCeilingYears*annualIncome + in.DownPayment
	if price > ceiling {
		price = ceiling
	}
	if price < in.DownPayment {
		price = in.DownPayment
	}

	return buildAffordability(in, termYears, price, OutcomeOK, "")
}

// buildAffordability derives the conservative recommendation and per-price
// loan amounts and payments from a solved maximum price.
func buildAffordability(in AffordabilityInput, termYears int, price float64, outcome Outcome, reason string) AffordabilityResult {
	conservative := mathutil.Max(price*constants.ConservativeFactor, in.DownPayment)
	maxLoan := mathutil.Max(price-in.DownPayment, 0)
	conservativeLoan := mathutil.Max(conservative-in.DownPayment, 0)

	return AffordabilityResult{
		MaxPrice:                   mathutil.RoundWhole(price),
		ConservativePrice:          mathutil.RoundWhole(conservative),
		MaxLoan:                    mathutil.RoundWhole(maxLoan),
		ConservativeLoan:           mathutil.RoundWhole(conservativeLoan),
		MaxMonthlyPayment:          mathutil.Round(MonthlyPayment(maxLoan, in.AnnualRatePercent, termYears, Repayment)),
		ConservativeMonthlyPayment: mathutil.Round(MonthlyPayment(conservativeLoan, in.AnnualRatePercent, termYears, Repayment)),
		Outcome:                    outcome,
		Reason:                     reason,
	}
}
