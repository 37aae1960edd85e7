package button

import "errors"

// Sentinel errors expressing the taxonomy from spec section 7. Wrap one
// of these with fmt.Errorf("...: %w", ...) when returning a more specific
// failure so callers can still errors.Is against the category.
var (
	// ErrInvalidArgument covers a bad line number, a negative time
	// window, or an unknown handle passed to Delete.
	ErrInvalidArgument = errors.New("button: invalid argument")

	// ErrResourceExhausted covers timer creation failures.
	ErrResourceExhausted = errors.New("button: resource exhausted")

	// ErrPlatformFault covers GPIO configuration failures reported by the
	// underlying line driver.
	ErrPlatformFault = errors.New("button: platform fault")
)
