// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/finwise/loancalc/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for monthly payment amounts and logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundWhole rounds a value to whole currency units. Used for aggregate
// totals (total interest, total repayment, affordable prices).
func RoundWhole(val float64) float64 {
	return math.Round(val)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether a value is a usable number (not NaN or Inf).
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
