package loans

import (
	"math"
	"testing"
)

func TestGenerateScheduleLength(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		rate        float64
		termYears   int
		graceMonths int
		expected    int
	}{
		{"25-year term", 200000, 3.5, 25, 0, 300},
		{"10-year term with grace", 50000, 5.0, 10, 6, 126},
		{"1-year term", 5000, 8.0, 1, 0, 12},
		{"50-year term", 300000, 4.0, 50, 0, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := GenerateSchedule(tt.principal, tt.rate, tt.termYears, tt.graceMonths)
			if len(rows) != tt.expected {
				t.Errorf("len(schedule) = %d, expected %d", len(rows), tt.expected)
			}
		})
	}
}

func TestGenerateScheduleInvariants(t *testing.T) {
	rows := GenerateSchedule(200000, 3.5, 25, 0)

	if rows[len(rows)-1].Balance != 0 {
		t.Errorf("final balance = %v, expected exactly 0", rows[len(rows)-1].Balance)
	}

	previousBalance := 200000.0
	for i, row := range rows {
		if row.Month != i+1 {
			t.Errorf("row %d has month %d, expected %d", i, row.Month, i+1)
		}
		if row.Balance < 0 {
			t.Errorf("month %d: negative balance %v", row.Month, row.Balance)
		}
		if row.Balance > previousBalance+1e-9 {
			t.Errorf("month %d: balance increased from %v to %v", row.Month, previousBalance, row.Balance)
		}
		if math.Abs(previousBalance-row.Principal-row.Balance) > 1e-6 {
			t.Errorf("month %d: balance %v does not equal previous %v minus principal %v",
				row.Month, row.Balance, previousBalance, row.Principal)
		}
		if math.Abs(row.Payment-row.Principal-row.Interest) > 1e-6 {
			t.Errorf("month %d: payment %v != principal %v + interest %v",
				row.Month, row.Payment, row.Principal, row.Interest)
		}
		previousBalance = row.Balance
	}
}

func TestGenerateScheduleGracePeriod(t *testing.T) {
	rows := GenerateSchedule(120000, 6.0, 10, 6)

	for _, row := range rows[:6] {
		if !row.GracePeriod {
			t.Errorf("month %d: expected grace-period flag", row.Month)
		}
		if row.Payment != 0 || row.Principal != 0 {
			t.Errorf("month %d: grace row has payment %v principal %v, expected 0",
				row.Month, row.Payment, row.Principal)
		}
		// Deferred interest is not capitalized: the balance stays flat.
		if row.Balance != 120000 {
			t.Errorf("month %d: grace balance = %v, expected 120000", row.Month, row.Balance)
		}
		if math.Abs(row.Interest-600) > 0.01 {
			t.Errorf("month %d: grace interest = %v, expected 600", row.Month, row.Interest)
		}
	}

	// Accrued grace interest still shows in the cumulative column.
	if math.Abs(rows[5].CumulativeInterest-3600) > 0.05 {
		t.Errorf("cumulative interest after grace = %v, expected 3600", rows[5].CumulativeInterest)
	}

	if rows[6].GracePeriod {
		t.Errorf("month 7 still flagged as grace period")
	}
	if rows[len(rows)-1].Balance != 0 {
		t.Errorf("final balance = %v, expected exactly 0", rows[len(rows)-1].Balance)
	}
}

func TestGenerateScheduleZeroRate(t *testing.T) {
	rows := GenerateSchedule(12000, 0, 5, 0)

	for _, row := range rows {
		if row.Interest != 0 {
			t.Errorf("month %d: interest = %v, expected 0", row.Month, row.Interest)
		}
		if math.Abs(row.Principal-200) > 1e-6 {
			t.Errorf("month %d: principal = %v, expected 200", row.Month, row.Principal)
		}
	}
	if rows[len(rows)-1].Balance != 0 {
		t.Errorf("final balance = %v, expected exactly 0", rows[len(rows)-1].Balance)
	}
}

func TestInterestOnlySchedule(t *testing.T) {
	rows := InterestOnlySchedule(120000, 6.0, 10, 2)

	if len(rows) != 122 {
		t.Errorf("len(schedule) = %d, expected 122", len(rows))
	}
	for _, row := range rows {
		if row.Balance != 120000 {
			t.Errorf("month %d: balance = %v, expected flat 120000", row.Month, row.Balance)
		}
		if row.GracePeriod {
			if row.Payment != 0 {
				t.Errorf("month %d: grace payment = %v, expected 0", row.Month, row.Payment)
			}
		} else if math.Abs(row.Payment-600) > 0.01 {
			t.Errorf("month %d: payment = %v, expected 600", row.Month, row.Payment)
		}
	}
}
