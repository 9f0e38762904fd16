package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldKey           = "key"
	FieldBackend       = "backend"
	FieldCount         = "count"
	FieldMonth         = "month"
	FieldYear          = "year"
	FieldAmountCents   = "amount_cents"
	FieldCategory      = "category"
	FieldTransactionID = "transaction_id"
	FieldReminderID    = "reminder_id"
	FieldAlertID       = "alert_id"
	FieldFireAt        = "fire_at"
	FieldDueDate       = "due_date"
	FieldPercentage    = "percentage"
	FieldLimitCents    = "limit_cents"
	FieldSpentCents    = "spent_cents"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentKVStore = "kvstore"
	ComponentBackend = "backend"
	ComponentNotify  = "notify"
	ComponentAMQP    = "amqp"
	ComponentWidget  = "widget"
	ComponentWorker  = "worker"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpSave     = "save"
	OpAdd      = "add"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpSchedule = "schedule"
	OpCancel   = "cancel"
	OpRefresh  = "refresh"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(id string, amountCents int64, category string) LogFields {
	f[FieldTransactionID] = id
	f[FieldAmountCents] = amountCents
	f[FieldCategory] = category
	return f
}

// WithReminder adds reminder-related fields
func (f LogFields) WithReminder(id string, amountCents int64) LogFields {
	f[FieldReminderID] = id
	f[FieldAmountCents] = amountCents
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
