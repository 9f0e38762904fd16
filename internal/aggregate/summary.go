// Package aggregate derives totals and breakdowns from a transaction
// snapshot. Everything here is a pure function: callers pass the full
// collection and a reference time and get fresh values back. At personal
// ledger volumes a full recomputation per mutation is cheaper than keeping
// incremental state correct.
package aggregate

import (
	"sort"
	"time"

	"walletlens/internal/core"
)

// Summary holds the current-month derived values published by the ledger.
type Summary struct {
	TotalIncome    core.Money
	TotalExpense   core.Money
	Balance        core.Money
	CategoryTotals []core.CategoryTotal
}

// Compute returns the summary for the calendar month containing now.
// Category totals cover expenses only and are sorted descending by total;
// ties keep first-seen category order.
func Compute(transactions []core.Transaction, now time.Time) Summary {
	var s Summary

	totalsByCategory := make(map[string]int64)
	var categoryOrder []string

	for _, tx := range transactions {
		if !core.SameMonth(tx.Date, now) {
			continue
		}
		switch tx.Type {
		case core.Income:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case core.Expense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
			if _, seen := totalsByCategory[tx.Category]; !seen {
				categoryOrder = append(categoryOrder, tx.Category)
			}
			totalsByCategory[tx.Category] += tx.Amount.Cents
		}
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpense)

	s.CategoryTotals = make([]core.CategoryTotal, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		s.CategoryTotals = append(s.CategoryTotals, core.CategoryTotal{
			Category: category,
			Total:    core.Cents(totalsByCategory[category]),
		})
	}
	sort.SliceStable(s.CategoryTotals, func(i, j int) bool {
		return s.CategoryTotals[i].Total.Cents > s.CategoryTotals[j].Total.Cents
	})

	return s
}

// Recent returns up to limit transactions from any month, newest first.
func Recent(transactions []core.Transaction, limit int) []core.Transaction {
	sorted := sortedByDateDesc(transactions)
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// ForMonth returns the transactions in the calendar month containing
// target, newest first.
func ForMonth(transactions []core.Transaction, target time.Time) []core.Transaction {
	var out []core.Transaction
	for _, tx := range transactions {
		if core.SameMonth(tx.Date, target) {
			out = append(out, tx)
		}
	}
	return sortedByDateDesc(out)
}

func sortedByDateDesc(transactions []core.Transaction) []core.Transaction {
	out := append([]core.Transaction(nil), transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
