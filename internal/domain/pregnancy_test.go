package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekFromDueDate(t *testing.T) {
	due := date(2026, 3, 1)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"twenty weeks before due", due.Add(-20 * 7 * 24 * time.Hour), 20},
		{"on due date", due, 40},
		{"one week overdue", due.Add(7 * 24 * time.Hour), 41},
		{"clamped high", due.Add(10 * 7 * 24 * time.Hour), MaxWeek},
		{"clamped low", due.Add(-45 * 7 * 24 * time.Hour), MinWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekFromDueDate(due, tt.now); got != tt.want {
				t.Errorf("WeekFromDueDate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysUntilDue(t *testing.T) {
	due := date(2026, 3, 1)

	if got := DaysUntilDue(due, due.Add(-10*24*time.Hour)); got != 10 {
		t.Errorf("DaysUntilDue() = %d, want 10", got)
	}
	// Partial days round up.
	if got := DaysUntilDue(due, due.Add(-36*time.Hour)); got != 2 {
		t.Errorf("DaysUntilDue() = %d, want 2", got)
	}
	if got := DaysUntilDue(due, due.Add(5*24*time.Hour)); got != -5 {
		t.Errorf("DaysUntilDue() = %d, want -5", got)
	}
}
