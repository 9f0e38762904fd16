package notify

import (
	"context"
	"testing"
	"time"

	"walletlens/internal/log"
)

func collectSink(ch chan<- Alert) Sink {
	return SinkFunc(func(_ context.Context, alert Alert) error {
		ch <- alert
		return nil
	})
}

func TestTimerSchedulerFires(t *testing.T) {
	fired := make(chan Alert, 1)
	s := NewTimerScheduler(collectSink(fired), log.New(log.DefaultConfig()))
	defer s.CancelAll(context.Background())

	alert := Alert{ID: "bill_x", FireAt: time.Now().Add(10 * time.Millisecond), Title: "t"}
	if err := s.ScheduleOneShot(context.Background(), alert); err != nil {
		t.Fatalf("ScheduleOneShot: %v", err)
	}

	select {
	case got := <-fired:
		if got.ID != "bill_x" {
			t.Errorf("fired alert id = %q", got.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("alert never fired")
	}

	if len(s.Pending()) != 0 {
		t.Errorf("fired alert still pending: %v", s.Pending())
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	fired := make(chan Alert, 1)
	s := NewTimerScheduler(collectSink(fired), log.New(log.DefaultConfig()))

	alert := Alert{ID: "bill_y", FireAt: time.Now().Add(50 * time.Millisecond)}
	if err := s.ScheduleOneShot(context.Background(), alert); err != nil {
		t.Fatalf("ScheduleOneShot: %v", err)
	}
	if err := s.Cancel(context.Background(), "bill_y"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	select {
	case got := <-fired:
		t.Errorf("cancelled alert fired: %+v", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestTimerSchedulerReplaceSameID(t *testing.T) {
	fired := make(chan Alert, 2)
	s := NewTimerScheduler(collectSink(fired), log.New(log.DefaultConfig()))
	defer s.CancelAll(context.Background())

	first := Alert{ID: "bill_z", FireAt: time.Now().Add(20 * time.Millisecond), Title: "first"}
	second := Alert{ID: "bill_z", FireAt: time.Now().Add(40 * time.Millisecond), Title: "second"}
	s.ScheduleOneShot(context.Background(), first)
	s.ScheduleOneShot(context.Background(), second)

	select {
	case got := <-fired:
		if got.Title != "second" {
			t.Errorf("expected replacement alert, got %q", got.Title)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("alert never fired")
	}

	select {
	case got := <-fired:
		t.Errorf("replaced alert fired too: %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}
