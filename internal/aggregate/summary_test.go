package aggregate

import (
	"testing"
	"time"

	"walletlens/internal/core"
)

var now = time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)

func tx(cents int64, category string, kind core.TransactionType, date time.Time) core.Transaction {
	return core.NewTransaction(core.Cents(cents), "", category, kind, date)
}

func TestComputeCurrentMonth(t *testing.T) {
	transactions := []core.Transaction{
		tx(300000, "Salary", core.Income, now.AddDate(0, 0, -5)),
		tx(120000, "Food", core.Expense, now.AddDate(0, 0, -3)),
		tx(55000, "Transport", core.Expense, now.AddDate(0, 0, -1)),
		// Previous month, must be ignored.
		tx(999900, "Rent", core.Expense, now.AddDate(0, -1, 0)),
		tx(500000, "Bonus", core.Income, now.AddDate(0, -1, 0)),
	}

	s := Compute(transactions, now)

	if s.TotalIncome.Cents != 300000 {
		t.Errorf("TotalIncome = %d, want 300000", s.TotalIncome.Cents)
	}
	if s.TotalExpense.Cents != 175000 {
		t.Errorf("TotalExpense = %d, want 175000", s.TotalExpense.Cents)
	}
	if s.Balance.Cents != 125000 {
		t.Errorf("Balance = %d, want 125000", s.Balance.Cents)
	}

	want := []core.CategoryTotal{
		{Category: "Food", Total: core.Cents(120000)},
		{Category: "Transport", Total: core.Cents(55000)},
	}
	if len(s.CategoryTotals) != len(want) {
		t.Fatalf("CategoryTotals = %v, want %v", s.CategoryTotals, want)
	}
	for i := range want {
		if s.CategoryTotals[i] != want[i] {
			t.Errorf("CategoryTotals[%d] = %v, want %v", i, s.CategoryTotals[i], want[i])
		}
	}
}

func TestComputeGroupsCategories(t *testing.T) {
	transactions := []core.Transaction{
		tx(1000, "Food", core.Expense, now),
		tx(2000, "Transport", core.Expense, now),
		tx(5000, "Food", core.Expense, now),
	}

	s := Compute(transactions, now)
	if len(s.CategoryTotals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(s.CategoryTotals))
	}
	if s.CategoryTotals[0].Category != "Food" || s.CategoryTotals[0].Total.Cents != 6000 {
		t.Errorf("top category = %v, want Food 6000", s.CategoryTotals[0])
	}
}

func TestComputeStableTieOrder(t *testing.T) {
	transactions := []core.Transaction{
		tx(1000, "B", core.Expense, now),
		tx(1000, "A", core.Expense, now),
	}
	s := Compute(transactions, now)
	// Equal totals keep first-seen order.
	if s.CategoryTotals[0].Category != "B" || s.CategoryTotals[1].Category != "A" {
		t.Errorf("tie order changed: %v", s.CategoryTotals)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	transactions := []core.Transaction{
		tx(300000, "Salary", core.Income, now),
		tx(120000, "Food", core.Expense, now),
	}
	first := Compute(transactions, now)
	second := Compute(transactions, now)
	if first.TotalIncome != second.TotalIncome ||
		first.TotalExpense != second.TotalExpense ||
		first.Balance != second.Balance {
		t.Errorf("repeated computation diverged: %+v vs %+v", first, second)
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, now)
	if s.TotalIncome.Cents != 0 || s.TotalExpense.Cents != 0 || s.Balance.Cents != 0 {
		t.Errorf("empty snapshot must produce zero totals: %+v", s)
	}
	if len(s.CategoryTotals) != 0 {
		t.Errorf("empty snapshot must produce no category totals: %v", s.CategoryTotals)
	}
}

func TestRecent(t *testing.T) {
	transactions := []core.Transaction{
		tx(100, "a", core.Expense, now.AddDate(0, 0, -3)),
		tx(200, "b", core.Expense, now.AddDate(0, -2, 0)), // old months still count
		tx(300, "c", core.Expense, now),
		tx(400, "d", core.Expense, now.AddDate(0, 0, -1)),
		tx(500, "e", core.Expense, now.AddDate(0, 0, -2)),
	}

	got := Recent(transactions, 4)
	if len(got) != 4 {
		t.Fatalf("expected 4 transactions, got %d", len(got))
	}
	wantCategories := []string{"c", "d", "e", "a"}
	for i, want := range wantCategories {
		if got[i].Category != want {
			t.Errorf("Recent[%d].Category = %q, want %q", i, got[i].Category, want)
		}
	}

	if got := Recent(transactions, 10); len(got) != 5 {
		t.Errorf("limit above size should return all, got %d", len(got))
	}
}

func TestForMonth(t *testing.T) {
	lastMonth := now.AddDate(0, -1, 0)
	transactions := []core.Transaction{
		tx(100, "a", core.Expense, lastMonth.AddDate(0, 0, -2)),
		tx(200, "b", core.Expense, lastMonth),
		tx(300, "c", core.Expense, now),
	}

	got := ForMonth(transactions, lastMonth)
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(got))
	}
	if got[0].Category != "b" || got[1].Category != "a" {
		t.Errorf("expected newest first, got %q then %q", got[0].Category, got[1].Category)
	}
}
