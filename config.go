package button

import (
	"fmt"
	"time"

	"github.com/maslennikov-yv/button-longpress/internal/gpio"
)

// Default timing windows, used whenever the corresponding Config field is
// left at zero (spec section 6, "Configuration defaults").
const (
	DefaultDebounceMs    = 20
	DefaultLongPressMs   = 1000
	DefaultDoubleClickMs = 300
)

// Config is the input-only value a caller builds to describe one button
// (spec section 3). A zero Config is valid: it names line 0, active-low,
// with no event sink, and its timing windows fall back to the defaults
// above.
type Config struct {
	// Line is the GPIO line identifier, in [0, gpio.MaxLine).
	Line int

	// ActiveLevel names the line level that means "pressed".
	ActiveLevel Level

	// DebounceMs, LongPressMs, DoubleClickMs are timing windows in
	// milliseconds. Zero means "use the default".
	DebounceMs    int
	LongPressMs   int
	DoubleClickMs int

	// OnEvent receives every recognized Event. May be nil, in which case
	// events are simply dropped (useful for IsPressed/GetState-only
	// callers).
	OnEvent EventSink

	// chip optionally names the gpiochip device for the line (e.g.
	// "gpiochip0"); empty selects the production adapter's default.
	// Exposed via WithChip rather than as a bare exported field so the
	// zero Config stays a one-line struct literal for the common case.
	chip string
}

// WithChip returns a copy of cfg bound to a specific gpiochip device.
func (cfg Config) WithChip(chip string) Config {
	cfg.chip = chip
	return cfg
}

func (cfg Config) withDefaults() Config {
	if cfg.DebounceMs == 0 {
		cfg.DebounceMs = DefaultDebounceMs
	}
	if cfg.LongPressMs == 0 {
		cfg.LongPressMs = DefaultLongPressMs
	}
	if cfg.DoubleClickMs == 0 {
		cfg.DoubleClickMs = DefaultDoubleClickMs
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.Line < 0 || cfg.Line >= gpio.MaxLine {
		return fmt.Errorf("%w: line %d out of range [0, %d)", ErrInvalidArgument, cfg.Line, gpio.MaxLine)
	}
	if cfg.DebounceMs < 0 || cfg.LongPressMs < 0 || cfg.DoubleClickMs < 0 {
		return fmt.Errorf("%w: negative time window", ErrInvalidArgument)
	}
	return nil
}

func (cfg Config) debounceWindow() time.Duration {
	return time.Duration(cfg.DebounceMs) * time.Millisecond
}

func (cfg Config) longPressWindow() time.Duration {
	return time.Duration(cfg.LongPressMs) * time.Millisecond
}

func (cfg Config) doubleClickWindow() time.Duration {
	return time.Duration(cfg.DoubleClickMs) * time.Millisecond
}

func (cfg Config) pull() gpio.Pull {
	if cfg.ActiveLevel == ActiveLow {
		return gpio.PullUp
	}
	return gpio.PullDown
}

func (cfg Config) activeLevel() gpio.Level {
	if cfg.ActiveLevel == ActiveHigh {
		return gpio.High
	}
	return gpio.Low
}
