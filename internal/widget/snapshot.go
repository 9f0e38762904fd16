// Package widget holds the home-screen widget side of the ledger: the
// denormalized transaction snapshot shared between processes, the refresh
// signal, and the timeline provider that turns the snapshot into the
// balance entry the widget renders.
package widget

import (
	"context"
	"encoding/json"
	"time"

	"walletlens/internal/core"
)

// Transaction is the denormalized record written to the shared namespace.
// Only what the timeline needs: amount, direction, date.
type Transaction struct {
	AmountCents int64     `json:"amount_cents"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
}

// Snapshot converts ledger transactions into their shared-namespace form.
func Snapshot(transactions []core.Transaction) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, Transaction{
			AmountCents: tx.Amount.Cents,
			Type:        tx.Type.String(),
			Date:        tx.Date,
		})
	}
	return out
}

// EncodeSnapshot marshals the shared snapshot.
func EncodeSnapshot(transactions []Transaction) ([]byte, error) {
	return json.Marshal(transactions)
}

// DecodeSnapshot unmarshals the shared snapshot.
func DecodeSnapshot(data []byte) ([]Transaction, error) {
	var out []Transaction
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Refresher signals the widget host to rebuild all timelines. Calls are
// fire-and-forget and must return promptly.
type Refresher interface {
	ReloadAll(ctx context.Context, reason string, attempt int)
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(ctx context.Context, reason string, attempt int)

func (f RefresherFunc) ReloadAll(ctx context.Context, reason string, attempt int) {
	f(ctx, reason, attempt)
}

// NopRefresher is used when no widget host is wired up.
var NopRefresher = RefresherFunc(func(context.Context, string, int) {})
