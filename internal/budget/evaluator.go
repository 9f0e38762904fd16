// Package budget evaluates monthly spending against the configured limit
// and produces threshold signals for the notification scheduler.
package budget

import "walletlens/internal/core"

// Level classifies a threshold signal.
type Level string

const (
	Warning  Level = "warning"
	Critical Level = "critical"
)

// WarningThreshold is the percentage at which a warning signal fires.
const WarningThreshold = 80

// Signal is a one-shot notification request produced by an evaluation.
// Signals are not durable: re-evaluating at the same percentage emits the
// same signal again.
type Signal struct {
	Level      Level
	Percentage int // integer percentage of the limit used
	OverBy     int // percentage points above 100, critical only
}

// Evaluate compares current-month expense against the monthly limit.
// It emits at most one signal per call:
//
//	pct <  80  -> none
//	80 <= pct < 100 -> warning carrying the integer percentage
//	pct >= 100 -> critical carrying the amount over, in percentage points
//
// A zero or negative limit never signals.
func Evaluate(currentExpense, monthlyLimit core.Money) (Signal, bool) {
	if monthlyLimit.Cents <= 0 {
		return Signal{}, false
	}

	percentage := float64(currentExpense.Cents) / float64(monthlyLimit.Cents) * 100
	pct := int(percentage)

	switch {
	case percentage >= 100:
		return Signal{Level: Critical, Percentage: pct, OverBy: pct - 100}, true
	case percentage >= WarningThreshold:
		return Signal{Level: Warning, Percentage: pct}, true
	default:
		return Signal{}, false
	}
}
