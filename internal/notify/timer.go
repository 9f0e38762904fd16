package notify

import (
	"context"
	"sync"
	"time"

	"walletlens/internal/log"
)

// Sink receives alerts when their fire time arrives.
type Sink interface {
	Deliver(ctx context.Context, alert Alert) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, alert Alert) error

func (f SinkFunc) Deliver(ctx context.Context, alert Alert) error {
	return f(ctx, alert)
}

// LogSink logs delivered alerts. It is the fallback when no delivery bus
// is configured.
func LogSink(logger *log.Logger) Sink {
	return SinkFunc(func(ctx context.Context, alert Alert) error {
		logger.InfoContext(ctx, "Alert fired",
			log.FieldAlertID, alert.ID,
			"title", alert.Title,
			"body", alert.Body,
			"category", alert.Category)
		return nil
	})
}

// TimerScheduler is the in-process Scheduler. Each alert holds a timer
// until it fires or is cancelled; fired alerts go to the sink. Delivery
// results are logged only, the scheduler never retries.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	sink   Sink
	logger *log.Logger
	now    func() time.Time
}

// NewTimerScheduler builds a scheduler delivering fired alerts to sink.
func NewTimerScheduler(sink Sink, logger *log.Logger) *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[string]*time.Timer),
		sink:   sink,
		logger: logger.WithComponent(log.ComponentNotify),
		now:    time.Now,
	}
}

// RequestPermission is a no-op for the in-process scheduler; it exists so
// callers keep the same startup sequence against any implementation.
func (s *TimerScheduler) RequestPermission(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Notification permission granted")
	return nil
}

// RegisterCategories records the action sets offered on delivered alerts.
func (s *TimerScheduler) RegisterCategories(ctx context.Context, categories []Category) error {
	s.logger.InfoContext(ctx, "Registered notification categories", log.FieldCount, len(categories))
	return nil
}

// ScheduleOneShot arms a timer for the alert, replacing any pending alert
// with the same id.
func (s *TimerScheduler) ScheduleOneShot(ctx context.Context, alert Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[alert.ID]; ok {
		existing.Stop()
	}

	delay := alert.FireAt.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	s.timers[alert.ID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, alert.ID)
		s.mu.Unlock()
		if err := s.sink.Deliver(context.Background(), alert); err != nil {
			s.logger.Error("Alert delivery failed", log.FieldAlertID, alert.ID, log.FieldError, err)
		}
	})

	s.logger.InfoContext(ctx, "Alert scheduled",
		log.FieldAlertID, alert.ID,
		log.FieldFireAt, alert.FireAt)
	return nil
}

// Cancel stops and forgets the pending alert with the given id, if any.
func (s *TimerScheduler) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
		s.logger.InfoContext(ctx, "Alert cancelled", log.FieldAlertID, id)
	}
	return nil
}

// CancelAll stops every pending alert.
func (s *TimerScheduler) CancelAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.logger.InfoContext(ctx, "All alerts cancelled")
	return nil
}

// Pending returns the ids of alerts that have not fired yet.
func (s *TimerScheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.timers))
	for id := range s.timers {
		ids = append(ids, id)
	}
	return ids
}
