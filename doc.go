// Package button recognizes pressed, released, click, double-click, and
// long-press events from a single debounced digital input line.
//
// A Config binds one GPIO line and a sink for the resulting Event stream;
// Create configures the line and the three timers (debounce, long-press,
// double-click) that drive the recognition state machine, and returns an
// opaque Handle. Delete tears the instance down again. GetState and
// IsPressed are cheap, lock-protected reads that never fail.
//
// The recognizer owns only the debounce/state-machine logic described in
// the package's design notes; it consumes a GPIO line and a software
// timer service through the narrow interfaces in internal/gpio and
// internal/timer, with production adapters backed by Linux GPIO
// character devices and the Go runtime timer respectively.
package button
