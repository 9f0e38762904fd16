package kvstore

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if _, err := store.Get(ctx, KeyMonthlyBudget); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unwritten key, got %v", err)
	}

	payload := []byte(`{"total_limit_cents":80000}`)
	if err := store.Set(ctx, KeyMonthlyBudget, payload); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, KeyMonthlyBudget, payload); err != nil {
		t.Fatalf("Set (upsert): %v", err)
	}

	got, err := store.Get(ctx, KeyMonthlyBudget)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}
}
