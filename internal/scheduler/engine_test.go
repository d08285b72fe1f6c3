package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Event{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineAfterFiresOnce(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	if err := engine.After(10*time.Millisecond, Event{ID: "toast-1", Kind: "dismiss"}); err != nil {
		t.Fatalf("after: %v", err)
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ID != "toast-1" || ev.Kind != "dismiss" || ev.TriggerAt.IsZero() {
		t.Fatalf("unexpected event: %+v", ev)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("unexpected second event: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEngineCancelSuppressesEvent(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	_ = engine.Schedule(Event{ID: "gone", TriggerAt: now.Add(20 * time.Millisecond)})
	_ = engine.Schedule(Event{ID: "kept", TriggerAt: now.Add(40 * time.Millisecond)})
	if !engine.Cancel("gone") {
		t.Fatal("expected pending event to be cancelled")
	}
	if engine.Cancel("missing") {
		t.Fatal("cancel of unknown id should report false")
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ID != "kept" {
		t.Fatalf("expected only kept event, got %s", ev.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Event{ID: "evt", TriggerAt: now}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidation(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
	engine.Stop()
	if err := engine.Schedule(Event{ID: "late", TriggerAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
