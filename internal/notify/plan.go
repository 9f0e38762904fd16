package notify

import (
	"fmt"
	"time"

	"walletlens/internal/budget"
	"walletlens/internal/core"
)

// BillReminderHour is the local hour at which bill alerts fire on the due date.
const BillReminderHour = 9

// BillReminderID derives the alert identifier for a reminder.
func BillReminderID(reminderID string) string {
	return "bill_" + reminderID
}

// BillReminderFireTime returns 09:00 local time on the reminder's due date.
func BillReminderFireTime(dueDate time.Time) time.Time {
	y, m, d := dueDate.Date()
	return time.Date(y, m, d, BillReminderHour, 0, 0, 0, dueDate.Location())
}

// PlanBillReminder builds the alert for a reminder, or reports false when
// the fire time has already passed and nothing should be scheduled.
func PlanBillReminder(r core.Reminder, now time.Time) (Alert, bool) {
	fireAt := BillReminderFireTime(r.DueDate)
	if !fireAt.After(now) {
		return Alert{}, false
	}
	return Alert{
		ID:       BillReminderID(r.ID),
		FireAt:   fireAt,
		Title:    "Bill Reminder",
		Body:     fmt.Sprintf("%s - $%s is due today", r.Title, r.Amount),
		Category: CategoryBillReminder,
	}, true
}

// PlanBudgetWarning builds the immediate alert for a threshold signal.
// The identifier is timestamped, so repeated signals never collide.
func PlanBudgetWarning(signal budget.Signal, now time.Time) Alert {
	alert := Alert{
		ID:       fmt.Sprintf("budget_warning_%d", now.UnixNano()),
		FireAt:   now,
		Category: CategoryBudgetWarning,
	}
	if signal.Level == budget.Critical {
		alert.Title = "Budget Exceeded!"
		alert.Body = fmt.Sprintf("You've exceeded your monthly budget by %d%%", signal.OverBy)
	} else {
		alert.Title = "Budget Warning"
		alert.Body = fmt.Sprintf("You've used %d%% of your monthly budget", signal.Percentage)
	}
	return alert
}
