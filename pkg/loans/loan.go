// Package loans implements the loan amortization and affordability engine.
//
// Every function in this package is pure: results are fresh values computed
// from the inputs, nothing is retained between calls, and callers may invoke
// any operation repeatedly with identical inputs and receive identical
// output. Degenerate inputs produce safe fallback values rather than errors
// so that a presentation layer always has something renderable.
package loans

// RepaymentType selects how periodic payments are applied to a loan.
type RepaymentType string

const (
	// Repayment amortizes the principal over the term (annuity payments).
	Repayment RepaymentType = "repayment"

	// InterestOnly covers accrued interest each month; the principal balance
	// does not decrease until a final balloon or refinancing event.
	InterestOnly RepaymentType = "interestOnly"
)

// Parameters holds the inputs for a single loan calculation. Values are
// plain numeric amounts in the active currency; no locale formatting is
// applied at this layer.
type Parameters struct {
	// Principal is the requested amount before any adjustments.
	Principal float64

	// AnnualRatePercent is the nominal annual rate as a percentage, e.g. 3.5.
	AnnualRatePercent float64

	// TermYears is the loan term in years.
	TermYears int

	// Type selects repayment or interest-only behavior. An empty value is
	// treated as Repayment.
	Type RepaymentType

	// DownPayment and TradeInValue reduce the effective principal.
	DownPayment  float64
	TradeInValue float64

	// GracePeriodMonths is an initial interest-only, non-amortizing deferral
	// before regular payments start.
	GracePeriodMonths int

	// Fees maps fee name to a one-time amount collected at closing. Fees are
	// added to the total repayment and never financed into the principal.
	Fees map[string]float64
}

// Summary aggregates the results of a loan calculation. Monthly amounts are
// rounded to two decimals, totals to whole currency units.
type Summary struct {
	OriginalPrincipal  float64       `json:"originalPrincipal"`
	EffectivePrincipal float64       `json:"effectivePrincipal"`
	AnnualRatePercent  float64       `json:"annualRatePercent"`
	TermYears          int           `json:"termYears"`
	Type               RepaymentType `json:"repaymentType"`
	MonthlyPayment     float64       `json:"monthlyPayment"`
	TotalInterest      float64       `json:"totalInterest"`
	TotalFees          float64       `json:"totalFees"`
	TotalRepayment     float64       `json:"totalRepayment"`

	// LoanToValue is the financed share of the original principal as a
	// percentage; zero when nothing was put down.
	LoanToValue float64 `json:"loanToValue,omitempty"`

	// GraceInterest is the simple interest accrued during the grace period.
	GraceInterest     float64 `json:"graceInterest,omitempty"`
	GracePeriodMonths int     `json:"gracePeriodMonths,omitempty"`
}

// Row is one month of an amortization schedule, 1-indexed. Balance holds the
// remaining principal after this month's payment.
type Row struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	Balance            float64 `json:"balance"`
	CumulativeInterest float64 `json:"cumulativeInterest"`
	GracePeriod        bool    `json:"gracePeriod,omitempty"`
}

// ExtraPaymentResult describes a schedule recomputed with a constant extra
// monthly payment.
type ExtraPaymentResult struct {
	// Schedule is the modified schedule; never longer than the original.
	Schedule []Row `json:"schedule"`

	// MonthsSaved is the difference between the original and modified
	// schedule lengths.
	MonthsSaved int `json:"monthsSaved"`

	// InterestSaved is the original cumulative interest minus the modified
	// cumulative interest; non-negative for any positive extra payment.
	InterestSaved float64 `json:"interestSaved"`
}
