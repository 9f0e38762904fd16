// Package notify defines the alert scheduling collaborator consumed by the
// ledger, plus the bill-reminder and budget-warning glue that decides what
// to schedule and when. Scheduling is fire-and-forget: failures are logged
// by implementations and never surfaced to callers.
package notify

import (
	"context"
	"time"
)

// Category identifiers for alert action sets.
const (
	CategoryBillReminder  = "BILL_REMINDER"
	CategoryBudgetWarning = "BUDGET_WARNING"
)

// Action identifiers carried back from the notification surface.
const (
	ActionMarkPaid    = "MARK_PAID"
	ActionRemindLater = "REMIND_LATER"
	ActionViewDetails = "VIEW_DETAILS"
	ActionDismiss     = "DISMISS"
)

// Action is a single button offered on a delivered alert.
type Action struct {
	ID    string
	Title string
}

// Category groups the actions offered for one kind of alert.
type Category struct {
	ID      string
	Actions []Action
}

// DefaultCategories returns the two action sets the app registers at startup.
func DefaultCategories() []Category {
	return []Category{
		{
			ID: CategoryBillReminder,
			Actions: []Action{
				{ID: ActionMarkPaid, Title: "Mark as Paid"},
				{ID: ActionRemindLater, Title: "Remind Later"},
			},
		},
		{
			ID: CategoryBudgetWarning,
			Actions: []Action{
				{ID: ActionViewDetails, Title: "View Details"},
				{ID: ActionDismiss, Title: "Dismiss"},
			},
		},
	}
}

// Alert is a one-shot scheduled notification request.
type Alert struct {
	ID       string
	FireAt   time.Time
	Title    string
	Body     string
	Category string
}

// Scheduler schedules and cancels time-based alerts keyed by identifier.
// Implementations return control immediately; delivery is best effort.
type Scheduler interface {
	RequestPermission(ctx context.Context) error
	RegisterCategories(ctx context.Context, categories []Category) error
	ScheduleOneShot(ctx context.Context, alert Alert) error
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) error
}
