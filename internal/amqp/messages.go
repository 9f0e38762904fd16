package amqp

import (
	"encoding/json"
	"time"
)

// WidgetRefreshMessage asks the widget worker to rebuild its timeline.
// Delivery is best effort; the saver publishes it several times per save.
type WidgetRefreshMessage struct {
	Reason    string    `json:"reason"`
	Attempt   int       `json:"attempt"`
	Timestamp time.Time `json:"timestamp"`
}

// AlertMessage is a fired alert handed to the delivery surface.
type AlertMessage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	FiredAt   time.Time `json:"fired_at"`
	Timestamp time.Time `json:"timestamp"`
}

// ActionMessage carries a user action taken on a delivered alert back to
// the app daemon.
type ActionMessage struct {
	Action     string    `json:"action"`
	ReminderID string    `json:"reminder_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewWidgetRefreshMessage builds a refresh request.
func NewWidgetRefreshMessage(reason string, attempt int) *WidgetRefreshMessage {
	return &WidgetRefreshMessage{Reason: reason, Attempt: attempt, Timestamp: time.Now()}
}

// NewActionMessage builds an action notice for the app daemon.
func NewActionMessage(action, reminderID string) *ActionMessage {
	return &ActionMessage{Action: action, ReminderID: reminderID, Timestamp: time.Now()}
}

// ToJSON converts the message to JSON bytes
func (m *WidgetRefreshMessage) ToJSON() ([]byte, error) { return json.Marshal(m) }

// ToJSON converts the message to JSON bytes
func (m *AlertMessage) ToJSON() ([]byte, error) { return json.Marshal(m) }

// ToJSON converts the message to JSON bytes
func (m *ActionMessage) ToJSON() ([]byte, error) { return json.Marshal(m) }

// WidgetRefreshMessageFromJSON creates a message from JSON bytes
func WidgetRefreshMessageFromJSON(data []byte) (*WidgetRefreshMessage, error) {
	var msg WidgetRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AlertMessageFromJSON creates a message from JSON bytes
func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ActionMessageFromJSON creates a message from JSON bytes
func ActionMessageFromJSON(data []byte) (*ActionMessage, error) {
	var msg ActionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
