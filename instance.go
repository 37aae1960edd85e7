package button

import (
	"context"
	"fmt"
	"sync"

	"github.com/maslennikov-yv/button-longpress/internal/gpio"
	"github.com/maslennikov-yv/button-longpress/internal/logger"
	"github.com/maslennikov-yv/button-longpress/internal/timer"
)

// instance is the per-button recognizer state described in spec section
// 3. All fields except mu itself are only ever mutated on the timer
// service's dispatcher goroutine (see internal/timer); mu guards reads
// from any other goroutine.
type instance struct {
	cfg Config

	line   gpio.Line
	timers timer.Service

	debounceID    timer.TimerID
	longPressID   timer.TimerID
	doubleClickID timer.TimerID

	cancelWatch context.CancelFunc

	mu                    sync.Mutex
	state                 State
	isPressed             bool
	clickCount            int
	waitingForDoubleClick bool
}

// newInstance performs the whole of spec section 4.1's Create: validate,
// configure the line, create the three timers, and wire the edge
// callback. Any failure unwinds everything acquired so far before
// returning an error — creation is all-or-nothing.
func newInstance(ctx context.Context, cfg Config, line gpio.Line, timers timer.Service) (in *instance, err error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	in = &instance{cfg: cfg, line: line, timers: timers, state: StateIdle}

	if err := line.Configure(cfg.pull()); err != nil {
		return nil, fmt.Errorf("%w: configure line %d: %v", ErrPlatformFault, cfg.Line, err)
	}
	defer func() {
		if err != nil {
			_ = line.Close()
		}
	}()

	in.debounceID, err = timers.NewTimer("debounce", cfg.debounceWindow(), in.onDebounce)
	if err != nil {
		return nil, fmt.Errorf("%w: create debounce timer: %v", ErrResourceExhausted, err)
	}
	defer func() {
		if err != nil {
			_ = timers.Delete(in.debounceID)
		}
	}()

	in.longPressID, err = timers.NewTimer("long_press", cfg.longPressWindow(), in.onLongPress)
	if err != nil {
		return nil, fmt.Errorf("%w: create long-press timer: %v", ErrResourceExhausted, err)
	}
	defer func() {
		if err != nil {
			_ = timers.Delete(in.longPressID)
		}
	}()

	in.doubleClickID, err = timers.NewTimer("double_click", cfg.doubleClickWindow(), in.onDoubleClick)
	if err != nil {
		return nil, fmt.Errorf("%w: create double-click timer: %v", ErrResourceExhausted, err)
	}
	defer func() {
		if err != nil {
			_ = timers.Delete(in.doubleClickID)
		}
	}()

	watchCtx, cancel := context.WithCancel(ctx)
	if err := line.WatchEdges(watchCtx, in.onEdge); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: install edge handler on line %d: %v", ErrPlatformFault, cfg.Line, err)
	}
	in.cancelWatch = cancel

	// Sample the initial line state once so a button already held down at
	// startup is recognized rather than silently ignored until the next
	// physical edge.
	in.timers.ResetFromEdge(in.debounceID)

	return in, nil
}

// teardown removes the ISR registration first, per spec section 4.1,
// then stops and deletes each timer, so no callback can fire again after
// this returns.
func (in *instance) teardown() {
	if in.cancelWatch != nil {
		in.cancelWatch()
	}
	if err := in.line.Close(); err != nil {
		logger.Error("button: closing line %d: %v", in.cfg.Line, err)
	}

	for _, id := range []timer.TimerID{in.debounceID, in.longPressID, in.doubleClickID} {
		if err := in.timers.Delete(id); err != nil {
			logger.Error("button: deleting timer %d: %v", id, err)
		}
	}
}

func (in *instance) getState() State {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

func (in *instance) getIsPressed() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.isPressed
}

// emit recovers a panicking sink so user code can never corrupt
// recognizer state or block subsequent events (spec section 4.7).
func (in *instance) emit(e Event) {
	logger.Info("button: line %d emitting %s", in.cfg.Line, e)

	sink := in.cfg.OnEvent
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("button: event sink panicked on %s: %v", e, r)
		}
	}()
	sink(e)
}
