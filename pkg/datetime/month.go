// Package datetime provides month-label helpers for dated schedule output.
package datetime

import (
	"time"
)

// MonthLayout is the YYYY-MM format used for schedule row labels.
const MonthLayout = "2006-01"

// OffsetMonth returns the month label offset by the given number of months
// relative to the given start label.
func OffsetMonth(start string, months int) (string, error) {
	t, err := time.Parse(MonthLayout, start)
	if err != nil {
		return start, err
	}
	return t.AddDate(0, months, 0).Format(MonthLayout), nil
}

// ValidMonth reports whether a label parses as YYYY-MM.
func ValidMonth(label string) bool {
	_, err := time.Parse(MonthLayout, label)
	return err == nil
}
