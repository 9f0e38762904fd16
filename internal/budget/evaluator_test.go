package budget

import (
	"testing"

	"walletlens/internal/core"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		expense    int64
		limit      int64
		want       Signal
		wantSignal bool
	}{
		{
			name:       "well under limit",
			expense:    20000,
			limit:      80000,
			wantSignal: false,
		},
		{
			name:       "just below warning threshold",
			expense:    63999,
			limit:      80000,
			wantSignal: false,
		},
		{
			name:       "exactly at warning threshold",
			expense:    64000,
			limit:      80000,
			want:       Signal{Level: Warning, Percentage: 80},
			wantSignal: true,
		},
		{
			name:       "near limit",
			expense:    75000,
			limit:      80000,
			want:       Signal{Level: Warning, Percentage: 93},
			wantSignal: true,
		},
		{
			name:       "exactly at limit",
			expense:    80000,
			limit:      80000,
			want:       Signal{Level: Critical, Percentage: 100, OverBy: 0},
			wantSignal: true,
		},
		{
			name:       "over limit",
			expense:    90000,
			limit:      80000,
			want:       Signal{Level: Critical, Percentage: 112, OverBy: 12},
			wantSignal: true,
		},
		{
			name:       "zero limit never signals",
			expense:    90000,
			limit:      0,
			wantSignal: false,
		},
		{
			name:       "zero expense",
			expense:    0,
			limit:      80000,
			wantSignal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Evaluate(core.Cents(tt.expense), core.Cents(tt.limit))
			if ok != tt.wantSignal {
				t.Fatalf("Evaluate() signal = %v, want %v", ok, tt.wantSignal)
			}
			if ok && got != tt.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEvaluateReEmits(t *testing.T) {
	// Evaluations are stateless: the same inputs signal every time.
	first, ok1 := Evaluate(core.Cents(75000), core.Cents(80000))
	second, ok2 := Evaluate(core.Cents(75000), core.Cents(80000))
	if !ok1 || !ok2 {
		t.Fatal("expected both evaluations to signal")
	}
	if first != second {
		t.Errorf("expected identical signals, got %+v and %+v", first, second)
	}
}
