package timer

import (
	"fmt"
	"sync"
	"time"
)

type fakeEntry struct {
	name     string
	period   time.Duration
	callback func()
	armed    bool
	deadline time.Duration
}

// Fake is a manually-advanced Service for deterministic tests: it has no
// wall-clock dependency at all. Advance moves a virtual clock forward and
// runs every callback whose deadline falls at or before the new time, in
// deadline order, one at a time — the same total ordering the real
// Dispatcher gives for free via its single goroutine.
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	entries map[TimerID]*fakeEntry
	nextID  TimerID
}

func NewFake() *Fake {
	return &Fake{entries: make(map[TimerID]*fakeEntry)}
}

func (f *Fake) NewTimer(name string, period time.Duration, callback func()) (TimerID, error) {
	if callback == nil {
		return 0, fmt.Errorf("timer: nil callback for %q", name)
	}
	if period < MinPeriod {
		period = MinPeriod
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.entries[id] = &fakeEntry{name: name, period: period, callback: callback}
	return id, nil
}

func (f *Fake) Start(id TimerID) error {
	return f.arm(id, 0)
}

func (f *Fake) Reset(id TimerID, period time.Duration) error {
	return f.arm(id, period)
}

func (f *Fake) ResetFromEdge(id TimerID) {
	_ = f.arm(id, 0)
}

func (f *Fake) arm(id TimerID, overridePeriod time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return fmt.Errorf("timer: unknown id %d", id)
	}
	if overridePeriod > 0 {
		e.period = overridePeriod
	}
	if e.period < MinPeriod {
		e.period = MinPeriod
	}
	e.armed = true
	e.deadline = f.now + e.period
	return nil
}

func (f *Fake) Stop(id TimerID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return fmt.Errorf("timer: unknown id %d", id)
	}
	e.armed = false
	return nil
}

func (f *Fake) Delete(id TimerID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[id]; !ok {
		return fmt.Errorf("timer: unknown id %d", id)
	}
	delete(f.entries, id)
	return nil
}

func (f *Fake) Close() error { return nil }

// Advance moves the virtual clock forward by d, running every callback
// whose deadline is at or before the new time, earliest first. Callbacks
// may themselves start, stop, or reset timers (including their own); a
// freshly armed deadline that still falls within the advanced window is
// honored before Advance returns.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		var (
			dueID   TimerID
			dueCB   func()
			found   bool
			earlist time.Duration
		)
		for id, e := range f.entries {
			if !e.armed || e.deadline > target {
				continue
			}
			if !found || e.deadline < earlist {
				found = true
				earlist = e.deadline
				dueID = id
				dueCB = e.callback
			}
		}
		if !found {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = earlist
		f.entries[dueID].armed = false
		f.mu.Unlock()

		dueCB()
	}
}

// Now returns the fake's current virtual time, for assertions.
func (f *Fake) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

var _ Service = (*Fake)(nil)
