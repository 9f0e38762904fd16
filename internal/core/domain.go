package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

type (
	TransactionType string

	// Transaction is a single income or expense entry. Immutable once
	// created; replacement happens via delete plus add.
	Transaction struct {
		ID          string          `json:"id"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Type        TransactionType `json:"type"`
		Date        time.Time       `json:"date"`
		ImagePath   string          `json:"image_path,omitempty"`
	}

	// Reminder is a bill reminder. Updated in place by identity match on ID.
	Reminder struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Amount      Money     `json:"amount"`
		DueDate     time.Time `json:"due_date"`
		IsCompleted bool      `json:"is_completed"`
		Notes       string    `json:"notes,omitempty"`
	}

	// Budget is a category-scoped budget slice of a monthly budget.
	Budget struct {
		ID           string    `json:"id"`
		MonthlyLimit Money     `json:"monthly_limit"`
		Category     string    `json:"category"`
		Month        time.Time `json:"month"`
		Spent        Money     `json:"spent"`
	}

	// MonthlyBudget is the single aggregate budget for a month. Spent is
	// derived and overwritten after every transaction mutation, never
	// authoritative on its own.
	MonthlyBudget struct {
		ID              string    `json:"id"`
		TotalLimit      Money     `json:"total_limit"`
		Month           time.Time `json:"month"`
		Spent           Money     `json:"spent"`
		CategoryBudgets []Budget  `json:"category_budgets,omitempty"`
	}

	// CategoryTotal is an expense total aggregated by category name.
	CategoryTotal struct {
		Category string
		Total    Money
	}
)

var ErrEmptyTitle = errors.New("empty title")

// IsValid reports whether the transaction type is a known value.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (t TransactionType) String() string {
	return string(t)
}

// NewTransaction builds a transaction with a generated identity.
// The amount is clamped to zero when negative and string fields are
// trimmed of surrounding whitespace.
func NewTransaction(amount Money, description, category string, kind TransactionType, date time.Time) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Amount:      amount.ClampNonNegative(),
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		Type:        kind,
		Date:        date,
	}
}

// WithImagePath returns a copy of the transaction referencing a receipt image.
func (t Transaction) WithImagePath(path string) Transaction {
	t.ImagePath = strings.TrimSpace(path)
	return t
}

// NewReminder builds a reminder with a generated identity and a fixed,
// not-yet-completed state.
func NewReminder(title string, amount Money, dueDate time.Time, notes string) Reminder {
	return Reminder{
		ID:      uuid.NewString(),
		Title:   strings.TrimSpace(title),
		Amount:  amount.ClampNonNegative(),
		DueDate: dueDate,
		Notes:   strings.TrimSpace(notes),
	}
}

// Validate checks the fields a reminder must carry before entering the ledger.
func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// NewBudget builds a category budget with clamped amounts.
func NewBudget(monthlyLimit Money, category string, month time.Time, spent Money) Budget {
	return Budget{
		ID:           uuid.NewString(),
		MonthlyLimit: monthlyLimit.ClampNonNegative(),
		Category:     strings.TrimSpace(category),
		Month:        month,
		Spent:        spent.ClampNonNegative(),
	}
}

// Remaining returns what is left of the limit, never negative.
func (b Budget) Remaining() Money {
	return Money{Cents: maxInt64(0, b.MonthlyLimit.Cents-b.Spent.Cents)}
}

// PercentageUsed returns spent over limit as a percentage, 0 for a zero limit.
func (b Budget) PercentageUsed() float64 {
	if b.MonthlyLimit.Cents <= 0 {
		return 0
	}
	return float64(b.Spent.Cents) / float64(b.MonthlyLimit.Cents) * 100
}

// IsOverBudget reports whether spending exceeds the limit.
func (b Budget) IsOverBudget() bool {
	return b.Spent.Cents > b.MonthlyLimit.Cents
}

// IsNearLimit reports whether spending reached 80% of the limit.
func (b Budget) IsNearLimit() bool {
	return b.PercentageUsed() >= 80
}

// NewMonthlyBudget builds the aggregate budget for the given month.
func NewMonthlyBudget(totalLimit Money, month time.Time, spent Money) MonthlyBudget {
	return MonthlyBudget{
		ID:         uuid.NewString(),
		TotalLimit: totalLimit.ClampNonNegative(),
		Month:      month,
		Spent:      spent.ClampNonNegative(),
	}
}

// Remaining returns what is left of the limit, never negative.
func (b MonthlyBudget) Remaining() Money {
	return Money{Cents: maxInt64(0, b.TotalLimit.Cents-b.Spent.Cents)}
}

// PercentageUsed returns spent over limit as a percentage, 0 for a zero limit.
func (b MonthlyBudget) PercentageUsed() float64 {
	if b.TotalLimit.Cents <= 0 {
		return 0
	}
	return float64(b.Spent.Cents) / float64(b.TotalLimit.Cents) * 100
}

// IsOverBudget reports whether spending exceeds the limit.
func (b MonthlyBudget) IsOverBudget() bool {
	return b.Spent.Cents > b.TotalLimit.Cents
}

// IsNearLimit reports whether spending reached 80% of the limit.
func (b MonthlyBudget) IsNearLimit() bool {
	return b.PercentageUsed() >= 80
}

// SameMonth reports whether two timestamps fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
