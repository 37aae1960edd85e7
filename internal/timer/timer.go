// Package timer models the one-shot software timer service the recognizer
// consumes (spec section 6): a cooperative single-goroutine dispatcher
// that runs callbacks in expiry order, plus an ISR-safe reset primitive
// that never mutates recognizer state itself.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TimerID is the opaque handle a Service hands back from NewTimer, the Go
// analogue of the FreeRTOS xTimerCreate return value the original
// component threads through its callbacks as a cookie.
type TimerID int

// Service is the timer collaborator described in spec section 6.
type Service interface {
	NewTimer(name string, period time.Duration, callback func()) (TimerID, error)
	Start(id TimerID) error
	Stop(id TimerID) error
	Reset(id TimerID, period time.Duration) error
	// ResetFromEdge (re)arms id without blocking and without touching any
	// state other than the timer's own deadline bookkeeping. It is the
	// only method the GPIO edge-delivery goroutine is allowed to call.
	ResetFromEdge(id TimerID)
	Delete(id TimerID) error
	Close() error
}

// MinPeriod is the floor every armed period is clamped to, so that no
// timer is ever scheduled with a zero period (spec section 5, "tick
// quantization").
const MinPeriod = time.Millisecond

type entry struct {
	name       string
	period     time.Duration
	callback   func()
	generation uint64
	afterTimer *time.Timer
}

// Dispatcher is the production Service: each entry is armed with
// time.AfterFunc, but the AfterFunc goroutine only posts a generation-
// tagged job onto a single command channel. One goroutine (run) drains
// that channel and executes callbacks one at a time, so from the
// recognizer's point of view all callbacks are totally ordered exactly as
// spec section 5 requires, even though scheduling wakeups happen on
// however many goroutines the runtime timer heap uses internally.
type Dispatcher struct {
	mu      sync.Mutex
	entries map[TimerID]*entry
	nextID  TimerID

	jobs   chan func()
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDispatcher starts the dispatcher goroutine. Closing the returned
// Dispatcher (or cancelling parent) stops accepting new callback
// dispatches; in-flight ones are allowed to finish.
func NewDispatcher(parent context.Context) *Dispatcher {
	ctx, cancel := context.WithCancel(parent)
	d := &Dispatcher{
		entries: make(map[TimerID]*entry),
		jobs:    make(chan func(), 32),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for {
		select {
		case <-d.ctx.Done():
			return
		case job := <-d.jobs:
			job()
		}
	}
}

func (d *Dispatcher) NewTimer(name string, period time.Duration, callback func()) (TimerID, error) {
	if callback == nil {
		return 0, fmt.Errorf("timer: nil callback for %q", name)
	}
	if period < MinPeriod {
		period = MinPeriod
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.entries[id] = &entry{name: name, period: period, callback: callback}
	return id, nil
}

func (d *Dispatcher) Start(id TimerID) error {
	return d.arm(id, 0)
}

func (d *Dispatcher) Reset(id TimerID, period time.Duration) error {
	return d.arm(id, period)
}

// ResetFromEdge is the non-blocking, ISR-safe rearm path: it never waits
// on the dispatcher goroutine, only on the Dispatcher's short-held mutex
// over its timer table.
func (d *Dispatcher) ResetFromEdge(id TimerID) {
	_ = d.arm(id, 0)
}

func (d *Dispatcher) arm(id TimerID, overridePeriod time.Duration) error {
	d.mu.Lock()
	e, ok := d.entries[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("timer: unknown id %d", id)
	}
	if overridePeriod > 0 {
		e.period = overridePeriod
	}
	if e.period < MinPeriod {
		e.period = MinPeriod
	}
	e.generation++
	gen := e.generation
	period := e.period
	cb := e.callback
	if e.afterTimer != nil {
		e.afterTimer.Stop()
	}
	e.afterTimer = time.AfterFunc(period, func() { d.fire(id, gen, cb) })
	d.mu.Unlock()
	return nil
}

// fire runs on the runtime timer goroutine (the stand-in for an
// interrupt): it does nothing but hand the callback to the single
// dispatcher goroutine, tagged with the generation it was armed under so
// a Stop/Reset that raced with expiry is honored.
func (d *Dispatcher) fire(id TimerID, gen uint64, cb func()) {
	select {
	case d.jobs <- func() {
		d.mu.Lock()
		e, ok := d.entries[id]
		stale := !ok || e.generation != gen
		d.mu.Unlock()
		if stale {
			return
		}
		cb()
	}:
	case <-d.ctx.Done():
	}
}

func (d *Dispatcher) Stop(id TimerID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[id]
	if !ok {
		return fmt.Errorf("timer: unknown id %d", id)
	}
	e.generation++
	if e.afterTimer != nil {
		e.afterTimer.Stop()
	}
	return nil
}

func (d *Dispatcher) Delete(id TimerID) error {
	if err := d.Stop(id); err != nil {
		return err
	}
	d.mu.Lock()
	delete(d.entries, id)
	d.mu.Unlock()
	return nil
}

func (d *Dispatcher) Close() error {
	d.cancel()
	<-d.done
	return nil
}

var _ Service = (*Dispatcher)(nil)
