// Package scheduler delivers one-shot expiry events, such as the dismissal
// of a transient notification, on a channel once their time has come.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

type Event struct {
	ID        string
	Kind      string
	TriggerAt time.Time
}

type eventQueue []Event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	return q[i].TriggerAt.Before(q[j].TriggerAt)
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(Event))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine is a timer heap drained by a single goroutine. Due events are sent
// on C without blocking; when the buffer is full the event is counted as
// dropped.
type Engine struct {
	mu       sync.Mutex
	queue    eventQueue
	canceled map[string]bool
	out      chan Event
	wakeup   chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	dropped  uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:    make(eventQueue, 0),
		canceled: make(map[string]bool),
		out:      make(chan Event, bufferSize),
		wakeup:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev Event) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	delete(e.canceled, ev.ID)
	heap.Push(&e.queue, ev)
	e.signalWakeup()
	return nil
}

// After schedules ev to fire d from now.
func (e *Engine) After(d time.Duration, ev Event) error {
	ev.TriggerAt = time.Now().UTC().Add(d)
	return e.Schedule(ev)
}

// Cancel suppresses every pending event with id. It reports whether one was
// pending.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ev := range e.queue {
		if ev.ID == id {
			e.canceled[id] = true
			return true
		}
	}
	return false
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, ev := range e.popDue(time.Now().UTC()) {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Event{}, false
	}
	return e.queue[0], true
}

func (e *Engine) popDue(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Event, 0)
	for len(e.queue) > 0 {
		if e.queue[0].TriggerAt.After(now) {
			break
		}
		ev := heap.Pop(&e.queue).(Event)
		if e.canceled[ev.ID] {
			if !e.stillQueued(ev.ID) {
				delete(e.canceled, ev.ID)
			}
			continue
		}
		out = append(out, ev)
	}
	return out
}

func (e *Engine) stillQueued(id string) bool {
	for _, ev := range e.queue {
		if ev.ID == id {
			return true
		}
	}
	return false
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
