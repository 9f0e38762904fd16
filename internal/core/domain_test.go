package core

import (
	"testing"
	"time"
)

func TestNewTransactionClampsAndTrims(t *testing.T) {
	date := time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC)

	tx := NewTransaction(Cents(-500), "  coffee  ", "  Food ", Expense, date)
	if tx.Amount.Cents != 0 {
		t.Errorf("negative amount should clamp to 0, got %d", tx.Amount.Cents)
	}
	if tx.Description != "coffee" {
		t.Errorf("description not trimmed: %q", tx.Description)
	}
	if tx.Category != "Food" {
		t.Errorf("category not trimmed: %q", tx.Category)
	}
	if tx.ID == "" {
		t.Error("expected generated id")
	}
	if !tx.Date.Equal(date) {
		t.Errorf("date changed: %v", tx.Date)
	}

	tx2 := NewTransaction(Cents(300000), "salary", "Work", Income, date)
	if tx2.Amount.Cents != 300000 {
		t.Errorf("non-negative amount must pass through, got %d", tx2.Amount.Cents)
	}
	if tx2.ID == tx.ID {
		t.Error("ids must be unique")
	}
}

func TestNewReminderNormalization(t *testing.T) {
	due := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	r := NewReminder("  Rent  ", Cents(-100), due, "  pay early ")
	if r.Title != "Rent" {
		t.Errorf("title not trimmed: %q", r.Title)
	}
	if r.Amount.Cents != 0 {
		t.Errorf("negative amount should clamp to 0, got %d", r.Amount.Cents)
	}
	if r.Notes != "pay early" {
		t.Errorf("notes not trimmed: %q", r.Notes)
	}
	if r.IsCompleted {
		t.Error("new reminders start incomplete")
	}
}

func TestReminderValidate(t *testing.T) {
	due := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if err := NewReminder("Rent", Cents(100), due, "").Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := NewReminder("   ", Cents(100), due, "").Validate(); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestMonthlyBudgetDerived(t *testing.T) {
	month := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		limit       int64
		spent       int64
		remaining   int64
		percentage  float64
		overBudget  bool
		nearLimit   bool
	}{
		{"well under", 80000, 20000, 60000, 25, false, false},
		{"near limit", 80000, 75000, 5000, 93.75, false, true},
		{"exactly at limit", 80000, 80000, 0, 100, false, true},
		{"over budget", 80000, 90000, 0, 112.5, true, true},
		{"zero limit", 0, 50000, 0, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewMonthlyBudget(Cents(tt.limit), month, Cents(tt.spent))
			if got := b.Remaining().Cents; got != tt.remaining {
				t.Errorf("Remaining() = %d, want %d", got, tt.remaining)
			}
			if got := b.PercentageUsed(); got != tt.percentage {
				t.Errorf("PercentageUsed() = %v, want %v", got, tt.percentage)
			}
			if got := b.IsOverBudget(); got != tt.overBudget {
				t.Errorf("IsOverBudget() = %v, want %v", got, tt.overBudget)
			}
			if got := b.IsNearLimit(); got != tt.nearLimit {
				t.Errorf("IsNearLimit() = %v, want %v", got, tt.nearLimit)
			}
		})
	}
}

func TestMonthlyBudgetClampsNegative(t *testing.T) {
	month := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	b := NewMonthlyBudget(Cents(-100), month, Cents(-200))
	if b.TotalLimit.Cents != 0 || b.Spent.Cents != 0 {
		t.Errorf("negative limit/spent should clamp to 0, got %d/%d", b.TotalLimit.Cents, b.Spent.Cents)
	}
}

func TestCategoryBudgetDerived(t *testing.T) {
	month := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	b := NewBudget(Cents(50000), " Groceries ", month, Cents(60000))
	if b.Category != "Groceries" {
		t.Errorf("category not trimmed: %q", b.Category)
	}
	if b.Remaining().Cents != 0 {
		t.Errorf("overspent remaining must be 0, got %d", b.Remaining().Cents)
	}
	if !b.IsOverBudget() {
		t.Error("expected over budget")
	}
}

func TestSameMonth(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"same month", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 31, 23, 59, 0, 0, time.UTC), true},
		{"different month", time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), false},
		{"same month different year", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameMonth(tt.a, tt.b); got != tt.want {
				t.Errorf("SameMonth() = %v, want %v", got, tt.want)
			}
		})
	}
}
