package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"walletlens/internal/core"
	"walletlens/internal/kvstore"
	"walletlens/internal/log"
)

// DefaultRefreshInterval is how often the provider rebuilds the timeline
// when no explicit refresh signal arrives.
const DefaultRefreshInterval = 2 * time.Minute

// TimelineEntry is the computed state the widget renders.
type TimelineEntry struct {
	Date             time.Time `json:"date"`
	BalanceCents     int64     `json:"balance_cents"`
	IncomeCents      int64     `json:"income_cents"`
	ExpenseCents     int64     `json:"expense_cents"`
	PercentageChange float64   `json:"percentage_change"`
}

// Provider reads the shared snapshot and computes timeline entries. It is
// an independent reader: it never touches the app-local namespace.
type Provider struct {
	shared kvstore.Store
	logger *log.Logger
	now    func() time.Time
}

// NewProvider builds a provider over the widget-shared store.
func NewProvider(shared kvstore.Store, logger *log.Logger) *Provider {
	return &Provider{
		shared: shared,
		logger: logger.WithComponent(log.ComponentWidget),
		now:    time.Now,
	}
}

// Timeline computes the current entry: this month's income, expense and
// balance, plus the balance change against the previous month. A missing
// or undecodable snapshot yields a zero entry, never an error the widget
// would have to render.
func (p *Provider) Timeline(ctx context.Context) TimelineEntry {
	now := p.now()
	transactions := p.loadSnapshot(ctx)

	income, expense := monthTotals(transactions, now)
	prevIncome, prevExpense := monthTotals(transactions, now.AddDate(0, -1, 0))

	balance := income - expense
	prevBalance := prevIncome - prevExpense

	var change float64
	if prevBalance != 0 {
		change = float64(balance-prevBalance) / math.Abs(float64(prevBalance)) * 100
	}

	return TimelineEntry{
		Date:             now,
		BalanceCents:     balance,
		IncomeCents:      income,
		ExpenseCents:     expense,
		PercentageChange: change,
	}
}

// Publish recomputes the timeline entry and writes it back to the shared
// namespace for the rendering surface.
func (p *Provider) Publish(ctx context.Context) (TimelineEntry, error) {
	entry := p.Timeline(ctx)
	data, err := json.Marshal(entry)
	if err != nil {
		return entry, fmt.Errorf("marshal timeline entry: %w", err)
	}
	if err := p.shared.Set(ctx, kvstore.KeyWidgetTimeline, data); err != nil {
		return entry, fmt.Errorf("store timeline entry: %w", err)
	}
	p.logger.InfoContext(ctx, "Timeline published",
		"balance_cents", entry.BalanceCents,
		"income_cents", entry.IncomeCents,
		"expense_cents", entry.ExpenseCents,
		"percentage_change", entry.PercentageChange)
	return entry, nil
}

func (p *Provider) loadSnapshot(ctx context.Context) []Transaction {
	data, err := p.shared.Get(ctx, kvstore.KeyWidgetTransactions)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to read widget snapshot", log.FieldError, err)
		return nil
	}
	transactions, err := DecodeSnapshot(data)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to decode widget snapshot", log.FieldError, err)
		return nil
	}
	return transactions
}

func monthTotals(transactions []Transaction, month time.Time) (income, expense int64) {
	for _, tx := range transactions {
		if !core.SameMonth(tx.Date, month) {
			continue
		}
		switch core.TransactionType(tx.Type) {
		case core.Income:
			income += tx.AmountCents
		case core.Expense:
			expense += tx.AmountCents
		}
	}
	return income, expense
}
