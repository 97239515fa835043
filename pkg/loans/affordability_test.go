package loans

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestSolveAffordability(t *testing.T) {
	result := SolveAffordability(zap.NewNop(), AffordabilityInput{
		MonthlyIncome:     5000,
		MonthlyDebts:      500,
		DownPayment:       20000,
		AnnualRatePercent: 3.5,
		TermYears:         25,
	})

	if result.Outcome != OutcomeOK {
		t.Fatalf("Outcome = %v (%s), expected ok", result.Outcome, result.Reason)
	}

	// Payment budget is 5000*0.36 - 500 = 1300; the max loan must invert the
	// payment formula, so amortizing it costs the whole budget.
	payment := MonthlyPayment(result.MaxLoan, 3.5, 25, Repayment)
	if math.Abs(payment-1300) > 0.05 {
		t.Errorf("payment on max loan = %.4f, expected ~1300", payment)
	}

	if result.MaxPrice < 270000 || result.MaxPrice > 290000 {
		t.Errorf("MaxPrice = %v, expected roughly 279700", result.MaxPrice)
	}
	if math.Abs(result.MaxPrice-result.MaxLoan-20000) > 1.0 {
		t.Errorf("MaxPrice %v != MaxLoan %v + down payment", result.MaxPrice, result.MaxLoan)
	}
	if math.Abs(result.ConservativePrice-0.9*result.MaxPrice) > 1.0 {
		t.Errorf("ConservativePrice = %v, expected 0.9 * %v", result.ConservativePrice, result.MaxPrice)
	}
}

func TestSolveAffordabilityFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		input AffordabilityInput
	}{
		{
			name: "Zero income",
			input: AffordabilityInput{
				MonthlyIncome: 0, DownPayment: 20000,
				AnnualRatePercent: 3.5, TermYears: 25,
			},
		},
		{
			name: "Negative income",
			input: AffordabilityInput{
				MonthlyIncome: -100, DownPayment: 20000,
				AnnualRatePercent: 3.5, TermYears: 25,
			},
		},
		{
			name: "Debts above the DTI cap",
			input: AffordabilityInput{
				MonthlyIncome: 5000, MonthlyDebts: 2500, DownPayment: 20000,
				AnnualRatePercent: 3.5, TermYears: 25,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SolveAffordability(nil, tt.input)
			if result.Outcome != OutcomeFallback {
				t.Errorf("Outcome = %v, expected fallback", result.Outcome)
			}
			if result.Reason == "" {
				t.Errorf("fallback result carries no reason")
			}
			// The degenerate answer is the down payment itself.
			if result.MaxPrice != tt.input.DownPayment {
				t.Errorf("MaxPrice = %v, expected down payment %v", result.MaxPrice, tt.input.DownPayment)
			}
			if result.ConservativePrice < tt.input.DownPayment {
				t.Errorf("ConservativePrice = %v, below the down payment", result.ConservativePrice)
			}
		})
	}
}

func TestSolveAffordabilityZeroRate(t *testing.T) {
	result := SolveAffordability(zap.NewNop(), AffordabilityInput{
		MonthlyIncome:     5000,
		MonthlyDebts:      500,
		AnnualRatePercent: 0,
		TermYears:         25,
	})
	// r -> 0 limit: budget * n = 1300 * 300.
	if math.Abs(result.MaxLoan-390000) > 1.0 {
		t.Errorf("MaxLoan = %v, expected 390000", result.MaxLoan)
	}
}

func TestSolveAffordabilityCeiling(t *testing.T) {
	// A near-zero rate over 50 years would support far more than ten years
	// of income; the sanity ceiling kicks in.
	result := SolveAffordability(zap.NewNop(), AffordabilityInput{
		MonthlyIncome:     5000,
		AnnualRatePercent: 0,
		TermYears:         50,
		DownPayment:       10000,
	})
	ceiling := 10.0*5000*12 + 10000
	if result.MaxPrice != ceiling {
		t.Errorf("MaxPrice = %v, expected ceiling %v", result.MaxPrice, ceiling)
	}
}

func TestSolveAffordabilityMonotonicity(t *testing.T) {
	base := AffordabilityInput{
		MonthlyIncome:     5000,
		MonthlyDebts:      500,
		DownPayment:       20000,
		AnnualRatePercent: 3.5,
		TermYears:         25,
	}

	lower := SolveAffordability(zap.NewNop(), base)

	richer := base
	richer.MonthlyIncome = 6000
	higher := SolveAffordability(zap.NewNop(), richer)
	if higher.MaxPrice < lower.MaxPrice {
		t.Errorf("more income lowered the price: %v < %v", higher.MaxPrice, lower.MaxPrice)
	}

	indebted := base
	indebted.MonthlyDebts = 1000
	constrained := SolveAffordability(zap.NewNop(), indebted)
	if constrained.MaxPrice > lower.MaxPrice {
		t.Errorf("more debt raised the price: %v > %v", constrained.MaxPrice, lower.MaxPrice)
	}
}

func TestSolveAffordabilityNeverBelowDownPayment(t *testing.T) {
	result := SolveAffordability(zap.NewNop(), AffordabilityInput{
		MonthlyIncome:     100,
		MonthlyDebts:      35,
		DownPayment:       50000,
		AnnualRatePercent: 3.5,
		TermYears:         25,
	})
	if result.MaxPrice < 50000 {
		t.Errorf("MaxPrice = %v, below the down payment", result.MaxPrice)
	}
	if result.ConservativePrice < 50000 {
		t.Errorf("ConservativePrice = %v, below the down payment", result.ConservativePrice)
	}
}
