// Package ledger holds the authoritative in-memory state of the app:
// transactions, bill reminders and the current monthly budget. Every read
// and write goes through the Store, which persists the full collection
// after each mutation and recomputes the published aggregates.
//
// Persistence failures are deliberately swallowed: the worst outcome on
// any storage error is stale or default data, never a crash. State is
// re-derived from the transactions key at the next load.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"walletlens/internal/aggregate"
	"walletlens/internal/budget"
	"walletlens/internal/core"
	"walletlens/internal/kvstore"
	"walletlens/internal/log"
	"walletlens/internal/notify"
	"walletlens/internal/widget"
)

// ErrReminderNotFound is returned by id-based reminder operations when no
// reminder carries the given id.
var ErrReminderNotFound = errors.New("reminder not found")

// DefaultRecentLimit is how many transactions the recent-activity view asks for.
const DefaultRecentLimit = 4

// refreshDelays spaces the redundant widget refresh signals after a save.
// Delivery of the first signal is not guaranteed, so two more follow at a
// fixed offset. Best effort, uncancellable, no backoff.
var refreshDelays = []time.Duration{0, 1 * time.Second, 3 * time.Second}

// Store is the single authoritative holder of ledger state. Collaborators
// are injected; none is a process-wide singleton.
type Store struct {
	mu        sync.Mutex
	app       kvstore.Store
	shared    kvstore.Store
	scheduler notify.Scheduler
	refresher widget.Refresher
	logger    *log.Logger
	now       func() time.Time
	delays    []time.Duration

	transactions  []core.Transaction
	reminders     []core.Reminder
	monthlyBudget *core.MonthlyBudget
	summary       aggregate.Summary
}

// New builds a Store over the two persistence namespaces and the injected
// collaborators. Call Load before the first read.
func New(app, shared kvstore.Store, scheduler notify.Scheduler, refresher widget.Refresher, logger *log.Logger) *Store {
	return &Store{
		app:       app,
		shared:    shared,
		scheduler: scheduler,
		refresher: refresher,
		logger:    logger.WithComponent(log.ComponentLedger),
		now:       time.Now,
		delays:    refreshDelays,
	}
}

// Load reads the three persisted collections. Each key decodes
// independently: a missing or corrupt collection resets to empty without
// failing the others. Aggregates are recomputed at the end.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = nil
	if data, err := s.app.Get(ctx, kvstore.KeyTransactions); err == nil {
		var txs []core.Transaction
		if err := json.Unmarshal(data, &txs); err != nil {
			s.logger.ErrorContext(ctx, "Error loading transactions", log.FieldError, err)
		} else {
			s.transactions = txs
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		s.logger.ErrorContext(ctx, "Error loading transactions", log.FieldError, err)
	}

	s.reminders = nil
	if data, err := s.app.Get(ctx, kvstore.KeyReminders); err == nil {
		var rs []core.Reminder
		if err := json.Unmarshal(data, &rs); err != nil {
			s.logger.ErrorContext(ctx, "Error loading reminders", log.FieldError, err)
		} else {
			s.reminders = rs
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		s.logger.ErrorContext(ctx, "Error loading reminders", log.FieldError, err)
	}

	s.monthlyBudget = nil
	if data, err := s.app.Get(ctx, kvstore.KeyMonthlyBudget); err == nil {
		var b core.MonthlyBudget
		if err := json.Unmarshal(data, &b); err != nil {
			s.logger.ErrorContext(ctx, "Error loading budget", log.FieldError, err)
		} else {
			s.monthlyBudget = &b
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		s.logger.ErrorContext(ctx, "Error loading budget", log.FieldError, err)
	}

	s.recompute()
	s.logger.InfoContext(ctx, "Ledger loaded",
		"transactions", len(s.transactions),
		"reminders", len(s.reminders),
		"has_budget", s.monthlyBudget != nil)
}

// AddTransaction appends the transaction, persists the collection,
// refreshes aggregates and budget spending, and pushes a new widget
// snapshot.
func (s *Store) AddTransaction(ctx context.Context, t core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, t)
	s.afterTransactionMutation(ctx)
	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldTransactionID, t.ID,
		log.FieldAmountCents, t.Amount.Cents,
		log.FieldCategory, t.Category,
		"type", t.Type)
}

// DeleteTransaction removes the transaction with the given id. Removing an
// unknown id is a no-op beyond the save and recomputation.
func (s *Store) DeleteTransaction(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.transactions[:0]
	for _, tx := range s.transactions {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	s.transactions = kept
	s.afterTransactionMutation(ctx)
	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id)
}

// afterTransactionMutation is the common tail of every transaction write:
// persist, recompute, refresh budget spending, push the widget snapshot.
// Callers hold the lock.
func (s *Store) afterTransactionMutation(ctx context.Context) {
	s.saveTransactions(ctx)
	s.recompute()
	s.updateBudgetSpending(ctx)
	s.pushWidgetSnapshot(ctx)
}

// AddReminder appends the reminder, persists, and schedules its due-date
// alert unless 09:00 on the due date has already passed.
func (s *Store) AddReminder(ctx context.Context, r core.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders = append(s.reminders, r)
	s.saveReminders(ctx)
	s.scheduleReminderAlert(ctx, r)
	s.logger.InfoContext(ctx, "Reminder added",
		log.FieldReminderID, r.ID,
		log.FieldDueDate, r.DueDate)
}

// DeleteReminder removes the reminder with the given id, persists, and
// cancels any pending alert keyed by it.
func (s *Store) DeleteReminder(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.reminders = kept
	s.saveReminders(ctx)
	s.cancelReminderAlert(ctx, id)
	s.logger.InfoContext(ctx, "Reminder deleted", log.FieldReminderID, id)
}

// UpdateReminder replaces the reminder whose id matches r.ID, persists,
// cancels the old alert and reschedules unless the reminder is completed.
// An unknown id is a logged no-op returning ErrReminderNotFound.
func (s *Store) UpdateReminder(ctx context.Context, r core.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reminderIndex(r.ID)
	if idx < 0 {
		s.logger.WarnContext(ctx, "Reminder not found for update", log.FieldReminderID, r.ID)
		return ErrReminderNotFound
	}

	s.reminders[idx] = r
	s.saveReminders(ctx)

	s.cancelReminderAlert(ctx, r.ID)
	if !r.IsCompleted {
		s.scheduleReminderAlert(ctx, r)
	}
	s.logger.InfoContext(ctx, "Reminder updated",
		log.FieldReminderID, r.ID,
		"is_completed", r.IsCompleted)
	return nil
}

// MarkReminderPaid completes the reminder and cancels its pending alert.
// It is the direct ingress for the MARK_PAID alert action.
func (s *Store) MarkReminderPaid(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reminderIndex(id)
	if idx < 0 {
		s.logger.WarnContext(ctx, "Reminder not found for mark-paid", log.FieldReminderID, id)
		return ErrReminderNotFound
	}

	s.reminders[idx].IsCompleted = true
	s.saveReminders(ctx)
	s.cancelReminderAlert(ctx, id)
	s.logger.InfoContext(ctx, "Reminder marked paid", log.FieldReminderID, id)
	return nil
}

// SnoozeReminder handles the REMIND_LATER alert action: it schedules a new
// alert for tomorrow under a fresh identity. The stored reminder is left
// untouched; only a clone's alert exists afterwards. This mirrors the
// shipped behavior, see DESIGN.md for the known identity caveat.
func (s *Store) SnoozeReminder(ctx context.Context, id string) (core.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reminderIndex(id)
	if idx < 0 {
		s.logger.WarnContext(ctx, "Reminder not found for snooze", log.FieldReminderID, id)
		return core.Reminder{}, ErrReminderNotFound
	}

	original := s.reminders[idx]
	clone := core.NewReminder(original.Title, original.Amount, s.now().AddDate(0, 0, 1), original.Notes)
	s.scheduleReminderAlert(ctx, clone)
	s.logger.InfoContext(ctx, "Reminder snoozed",
		log.FieldReminderID, id,
		"clone_id", clone.ID,
		log.FieldDueDate, clone.DueDate)
	return clone, nil
}

// RescheduleReminderAlerts re-arms the due-date alert of every incomplete
// reminder. Pending timers do not survive a restart, so the daemon calls
// this once after Load. Past-due reminders are skipped as usual.
func (s *Store) RescheduleReminderAlerts(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reminders {
		if r.IsCompleted {
			continue
		}
		s.scheduleReminderAlert(ctx, r)
	}
}

// SetMonthlyBudget replaces the current monthly budget with a new one whose
// spent amount starts from this month's expense total.
func (s *Store) SetMonthlyBudget(ctx context.Context, limit core.Money) core.MonthlyBudget {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := core.NewMonthlyBudget(limit, s.now(), s.summary.TotalExpense)
	s.monthlyBudget = &b
	s.saveBudget(ctx)
	s.logger.InfoContext(ctx, "Monthly budget set",
		log.FieldLimitCents, b.TotalLimit.Cents,
		log.FieldSpentCents, b.Spent.Cents)
	return b
}

// updateBudgetSpending overwrites the budget's spent amount with the fresh
// monthly expense total, persists, and evaluates threshold notifications.
// Callers hold the lock.
func (s *Store) updateBudgetSpending(ctx context.Context) {
	if s.monthlyBudget == nil {
		return
	}

	s.monthlyBudget.Spent = s.summary.TotalExpense.ClampNonNegative()
	s.saveBudget(ctx)

	signal, ok := budget.Evaluate(s.monthlyBudget.Spent, s.monthlyBudget.TotalLimit)
	if !ok {
		return
	}
	alert := notify.PlanBudgetWarning(signal, s.now())
	if err := s.scheduler.ScheduleOneShot(ctx, alert); err != nil {
		s.logger.ErrorContext(ctx, "Error scheduling budget warning", log.FieldError, err)
	}
	s.logger.InfoContext(ctx, "Budget threshold signalled",
		"level", signal.Level,
		log.FieldPercentage, signal.Percentage)
}

// pushWidgetSnapshot writes the denormalized transaction snapshot to the
// shared namespace and signals the widget host to refresh. The signal goes
// out three times because timely delivery of the first is not guaranteed.
// Callers hold the lock.
func (s *Store) pushWidgetSnapshot(ctx context.Context) {
	data, err := widget.EncodeSnapshot(widget.Snapshot(s.transactions))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error encoding widget snapshot", log.FieldError, err)
		return
	}
	if err := s.shared.Set(ctx, kvstore.KeyWidgetTransactions, data); err != nil {
		s.logger.ErrorContext(ctx, "Error saving widget snapshot", log.FieldError, err)
		return
	}

	for i, delay := range s.delays {
		attempt := i + 1
		if delay == 0 {
			s.refresher.ReloadAll(ctx, "transaction_saved", attempt)
			continue
		}
		time.AfterFunc(delay, func() {
			s.refresher.ReloadAll(context.Background(), "transaction_saved", attempt)
		})
	}
}

func (s *Store) scheduleReminderAlert(ctx context.Context, r core.Reminder) {
	alert, ok := notify.PlanBillReminder(r, s.now())
	if !ok {
		s.logger.InfoContext(ctx, "Reminder alert skipped, due time already passed",
			log.FieldReminderID, r.ID,
			log.FieldDueDate, r.DueDate)
		return
	}
	if err := s.scheduler.ScheduleOneShot(ctx, alert); err != nil {
		s.logger.ErrorContext(ctx, "Error scheduling bill reminder", log.FieldError, err)
	}
}

func (s *Store) cancelReminderAlert(ctx context.Context, id string) {
	if err := s.scheduler.Cancel(ctx, notify.BillReminderID(id)); err != nil {
		s.logger.ErrorContext(ctx, "Error cancelling bill reminder", log.FieldError, err)
	}
}

func (s *Store) reminderIndex(id string) int {
	for i, r := range s.reminders {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) recompute() {
	s.summary = aggregate.Compute(s.transactions, s.now())
}

// Persistence helpers: encode/save failures are logged and swallowed, the
// in-memory value stays authoritative until the next successful save.

func (s *Store) saveTransactions(ctx context.Context) {
	data, err := json.Marshal(s.transactions)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving transactions", log.FieldError, err)
		return
	}
	if err := s.app.Set(ctx, kvstore.KeyTransactions, data); err != nil {
		s.logger.ErrorContext(ctx, "Error saving transactions", log.FieldError, err)
	}
}

func (s *Store) saveReminders(ctx context.Context) {
	data, err := json.Marshal(s.reminders)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving reminders", log.FieldError, err)
		return
	}
	if err := s.app.Set(ctx, kvstore.KeyReminders, data); err != nil {
		s.logger.ErrorContext(ctx, "Error saving reminders", log.FieldError, err)
	}
}

func (s *Store) saveBudget(ctx context.Context) {
	if s.monthlyBudget == nil {
		return
	}
	data, err := json.Marshal(s.monthlyBudget)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving budget", log.FieldError, err)
		return
	}
	if err := s.app.Set(ctx, kvstore.KeyMonthlyBudget, data); err != nil {
		s.logger.ErrorContext(ctx, "Error saving budget", log.FieldError, err)
	}
}

// Transactions returns a copy of the transaction collection.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// Reminders returns a copy of the reminder collection.
func (s *Store) Reminders() []core.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Reminder(nil), s.reminders...)
}

// MonthlyBudget returns the current budget and whether one is set.
func (s *Store) MonthlyBudget() (core.MonthlyBudget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.monthlyBudget == nil {
		return core.MonthlyBudget{}, false
	}
	return *s.monthlyBudget, true
}

// Summary returns the published current-month aggregates.
func (s *Store) Summary() aggregate.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// RecentTransactions returns the newest transactions across all months.
func (s *Store) RecentTransactions(limit int) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return aggregate.Recent(s.transactions, limit)
}

// TransactionsForMonth returns the transactions in target's calendar month,
// newest first.
func (s *Store) TransactionsForMonth(target time.Time) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return aggregate.ForMonth(s.transactions, target)
}
