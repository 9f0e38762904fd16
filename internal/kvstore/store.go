// Package kvstore provides the opaque key-value persistence adapter used by
// the ledger. Values are raw byte blobs; callers own encoding and decoding.
package kvstore

import (
	"context"
	"errors"
)

// Well-known keys in the app-local namespace.
const (
	KeyTransactions  = "transactions"
	KeyReminders     = "reminders"
	KeyMonthlyBudget = "monthlyBudget"
)

// Well-known keys in the widget-shared namespace.
const (
	KeyWidgetTransactions = "widget_transactions"
	KeyWidgetTimeline     = "widget_timeline"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is an opaque key to byte-blob store. There are no transactions and
// no schema versioning; each key is written independently.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
