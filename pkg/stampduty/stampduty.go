// Package stampduty computes stamp duty from a progressive bracket table.
package stampduty

import (
	"sort"

	"github.com/finwise/loancalc/pkg/constants"
	"github.com/finwise/loancalc/pkg/mathutil"
)

// Bracket is one band of the duty table. Threshold is the price at which the
// band starts; RatePercent applies to the portion of the price above it.
type Bracket struct {
	Threshold   float64 `json:"threshold"`
	RatePercent float64 `json:"ratePercent"`
}

// DefaultBrackets returns the built-in duty table used when the
// configuration supplies none.
func DefaultBrackets() []Bracket {
	return []Bracket{
		{Threshold: 0, RatePercent: 0},
		{Threshold: 250000, RatePercent: 5},
		{Threshold: 925000, RatePercent: 10},
		{Threshold: 1500000, RatePercent: 12},
	}
}

// Calculate applies the bracket table marginally to a purchase price and
// returns the duty rounded to whole currency units. A non-positive price or
// an empty table yields zero.
func Calculate(price float64, brackets []Bracket) float64 {
	if price <= 0 || len(brackets) == 0 {
		return 0
	}

	sorted := make([]Bracket, len(brackets))
	copy(sorted, brackets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold < sorted[j].Threshold
	})

	duty := 0.0
	for i, bracket := range sorted {
		if price <= bracket.Threshold {
			break
		}
		upper := price
		if i+1 < len(sorted) && sorted[i+1].Threshold < price {
			upper = sorted[i+1].Threshold
		}
		duty += (upper - bracket.Threshold) * bracket.RatePercent / constants.PercentageMultiplier
	}

	return mathutil.RoundWhole(duty)
}
