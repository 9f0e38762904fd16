package notify

import (
	"strings"
	"testing"
	"time"

	"walletlens/internal/budget"
	"walletlens/internal/core"
)

func TestPlanBillReminder(t *testing.T) {
	now := time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate time.Time
		wantOK  bool
	}{
		{"due tomorrow", now.AddDate(0, 0, 1), true},
		{"due next week", now.AddDate(0, 0, 7), true},
		// 09:00 today is already past a 12:00 clock.
		{"due today", now, false},
		{"due one second ago", now.Add(-time.Second), false},
		{"due last month", now.AddDate(0, -1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.NewReminder("Electricity", core.Cents(7550), tt.dueDate, "")
			alert, ok := PlanBillReminder(r, now)
			if ok != tt.wantOK {
				t.Fatalf("PlanBillReminder() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if alert.ID != "bill_"+r.ID {
				t.Errorf("alert id = %q, want bill_%s", alert.ID, r.ID)
			}
			if alert.FireAt.Hour() != BillReminderHour || alert.FireAt.Minute() != 0 {
				t.Errorf("alert must fire at 09:00, got %v", alert.FireAt)
			}
			if !strings.Contains(alert.Body, "Electricity") || !strings.Contains(alert.Body, "75.50") {
				t.Errorf("alert body missing title or amount: %q", alert.Body)
			}
			if alert.Category != CategoryBillReminder {
				t.Errorf("alert category = %q", alert.Category)
			}
		})
	}
}

func TestPlanBillReminderMorningOfDueDate(t *testing.T) {
	// Before 09:00 on the due date itself the alert still goes out.
	now := time.Date(2025, 7, 20, 7, 30, 0, 0, time.UTC)
	r := core.NewReminder("Rent", core.Cents(100000), now, "")
	if _, ok := PlanBillReminder(r, now); !ok {
		t.Error("expected alert before 09:00 on the due date")
	}
}

func TestPlanBudgetWarning(t *testing.T) {
	now := time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)

	warning := PlanBudgetWarning(budget.Signal{Level: budget.Warning, Percentage: 93}, now)
	if warning.Title != "Budget Warning" {
		t.Errorf("warning title = %q", warning.Title)
	}
	if !strings.Contains(warning.Body, "93%") {
		t.Errorf("warning body = %q", warning.Body)
	}

	critical := PlanBudgetWarning(budget.Signal{Level: budget.Critical, Percentage: 112, OverBy: 12}, now)
	if critical.Title != "Budget Exceeded!" {
		t.Errorf("critical title = %q", critical.Title)
	}
	if !strings.Contains(critical.Body, "12%") {
		t.Errorf("critical body = %q", critical.Body)
	}
	if critical.Category != CategoryBudgetWarning {
		t.Errorf("critical category = %q", critical.Category)
	}
}
