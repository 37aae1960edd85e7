package button

import "github.com/maslennikov-yv/button-longpress/internal/logger"

// onEdge is the edge ISR shim of spec section 4.2: it runs on the GPIO
// adapter's event-delivery goroutine and does nothing but (re)arm the
// debounce timer. It must never touch recognizer state directly.
func (in *instance) onEdge() {
	in.timers.ResetFromEdge(in.debounceID)
}

// onDebounce is the debounce sampler of spec section 4.3. It runs on the
// timer service's dispatcher goroutine once the line has been quiet for
// DebounceMs.
func (in *instance) onDebounce() {
	level, err := in.line.Read()
	if err != nil {
		logger.Error("button: reading line %d: %v", in.cfg.Line, err)
		return
	}
	isActive := level == in.cfg.activeLevel()

	in.mu.Lock()
	wasPressed := in.isPressed

	switch {
	case isActive && !wasPressed:
		in.isPressed = true
		in.state = StatePressed
		secondOfDoubleClick := in.waitingForDoubleClick
		if secondOfDoubleClick {
			in.clickCount = 2
			in.waitingForDoubleClick = false
		} else {
			in.clickCount = 1
		}
		in.mu.Unlock()

		if secondOfDoubleClick {
			if err := in.timers.Stop(in.doubleClickID); err != nil {
				logger.Error("button: stopping double-click timer: %v", err)
			}
		}
		if err := in.timers.Start(in.longPressID); err != nil {
			logger.Error("button: starting long-press timer: %v", err)
		}
		in.emit(EventPressed)

	case !isActive && wasPressed:
		in.isPressed = false
		priorState := in.state

		const (
			afterLongPress = iota
			afterDoubleClick
			afterSingleClickWait
		)
		var disposition int
		switch {
		case priorState == StateLongPress:
			in.state = StateIdle
			in.clickCount = 0
			disposition = afterLongPress
		case in.clickCount == 2:
			in.state = StateDoubleClick
			in.clickCount = 0
			in.waitingForDoubleClick = false
			disposition = afterDoubleClick
		default:
			in.waitingForDoubleClick = true
			in.state = StateIdle
			disposition = afterSingleClickWait
		}
		in.mu.Unlock()

		if err := in.timers.Stop(in.longPressID); err != nil {
			logger.Error("button: stopping long-press timer: %v", err)
		}

		switch disposition {
		case afterLongPress:
			in.emit(EventReleased)
		case afterDoubleClick:
			in.emit(EventReleased)
			in.emit(EventDoubleClick)
		case afterSingleClickWait:
			in.emit(EventReleased)
			if err := in.timers.Start(in.doubleClickID); err != nil {
				logger.Error("button: starting double-click timer: %v", err)
			}
		}

	default:
		// Transient noise that doesn't cross the logical threshold.
		in.mu.Unlock()
	}
}

// onLongPress is the long-press deadline of spec section 4.4. It
// re-samples the line to guard against a release that raced the
// deadline.
func (in *instance) onLongPress() {
	level, err := in.line.Read()
	if err != nil {
		logger.Error("button: reading line %d: %v", in.cfg.Line, err)
		return
	}
	isActive := level == in.cfg.activeLevel()

	in.mu.Lock()
	if !isActive {
		in.isPressed = false
		in.mu.Unlock()
		return
	}
	if in.state != StatePressed {
		in.mu.Unlock()
		return
	}
	stopDoubleClick := in.waitingForDoubleClick
	in.waitingForDoubleClick = false
	in.clickCount = 0
	in.state = StateLongPress
	in.mu.Unlock()

	if stopDoubleClick {
		if err := in.timers.Stop(in.doubleClickID); err != nil {
			logger.Error("button: stopping double-click timer: %v", err)
		}
	}
	in.emit(EventLongPress)
}

// onDoubleClick is the double-click deadline of spec section 4.5: if no
// second press arrived, the chain resolves to a single CLICK.
func (in *instance) onDoubleClick() {
	in.mu.Lock()
	if !in.waitingForDoubleClick || in.clickCount != 1 {
		in.mu.Unlock()
		return
	}
	in.waitingForDoubleClick = false
	in.clickCount = 0
	if !in.isPressed {
		in.state = StateIdle
	}
	in.mu.Unlock()

	in.emit(EventClick)
}
