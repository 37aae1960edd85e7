package button

import (
	"context"

	"github.com/maslennikov-yv/button-longpress/internal/gpio"
	"github.com/maslennikov-yv/button-longpress/internal/logger"
	"github.com/maslennikov-yv/button-longpress/internal/registry"
	"github.com/maslennikov-yv/button-longpress/internal/timer"
)

// SetVerboseLogging turns the package's per-event trace logging on or off.
// It is off by default; embedders wire it to their own --verbose flag the
// same way the original component's command wired logger.SetVerbose.
func SetVerboseLogging(enabled bool) {
	logger.SetVerbose(enabled)
}

// Handle is the opaque identifier Create returns in lieu of a pointer to
// the underlying instance (spec section 6).
type Handle = registry.ID

// newLine builds the production GPIO adapter for Create. Tests override
// this package var to inject a fake line, the same dependency-injection
// idiom the corpus's periph.io/x/periph/experimental/conn/gpio/gpioutil
// package uses for its own "var now = time.Now".
var newLine = func(chip string, line int) gpio.Line {
	return gpio.NewCharDevLine(chip, line)
}

var (
	instances = registry.New[instance]()

	// timers is the single shared software timer service every button
	// instance's three deadlines are scheduled against, matching spec
	// section 1's "software timer service (one-shot deferred callbacks
	// on a shared service thread)".
	timers timer.Service = timer.NewDispatcher(context.Background())
)

// Create validates cfg, configures its GPIO line, binds its three
// deadline timers, and returns a Handle for the new recognizer instance.
// Creation is all-or-nothing: any failure unwinds whatever was already
// acquired (spec section 4.1).
func Create(cfg Config) (Handle, error) {
	line := newLine(cfg.chip, cfg.Line)
	in, err := newInstance(context.Background(), cfg, line, timers)
	if err != nil {
		return 0, err
	}
	return instances.Insert(in), nil
}

// Delete tears h down: h is first claimed out of the registry, so a
// second (even concurrent) Delete sees it as unknown; then its ISR
// registration is removed so no new edge can enter, and its timers are
// stopped and deleted. A second Delete of the same Handle returns
// ErrInvalidArgument.
func Delete(h Handle) error {
	in, ok := instances.Get(h)
	if !ok {
		return ErrInvalidArgument
	}
	if !instances.Delete(h) {
		return ErrInvalidArgument
	}
	in.teardown()
	return nil
}

// GetState returns h's current logical state. An unknown handle reports
// StateIdle rather than an error (spec section 6).
func GetState(h Handle) State {
	in, ok := instances.Get(h)
	if !ok {
		return StateIdle
	}
	return in.getState()
}

// IsPressed reports h's current debounced line status. An unknown handle
// reports false rather than an error (spec section 6).
func IsPressed(h Handle) bool {
	in, ok := instances.Get(h)
	if !ok {
		return false
	}
	return in.getIsPressed()
}

// Count reports the number of live instances.
func Count() int {
	return instances.Len()
}
