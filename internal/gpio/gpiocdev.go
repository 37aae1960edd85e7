package gpio

import (
	"context"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CharDevLine is the production Line implementation, grounded on the
// teacher's internal/button use of github.com/warthog618/go-gpiocdev:
// RequestLine with a pull bias and both-edges notification, backed by a
// real /dev/gpiochipN line.
type CharDevLine struct {
	chip string
	num  int

	line *gpiocdev.Line
}

// NewCharDevLine opens chip (e.g. "gpiochip0" or a bare chip number) at the
// given line offset. The line is not requested from the kernel until
// Configure is called, matching the create-then-configure split in spec
// section 4.1.
func NewCharDevLine(chip string, num int) *CharDevLine {
	if chip == "" {
		chip = "gpiochip0"
	}
	return &CharDevLine{chip: chip, num: num}
}

func (l *CharDevLine) Configure(pull Pull) error {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithBothEdges}
	switch pull {
	case PullUp:
		opts = append(opts, gpiocdev.WithPullUp)
	case PullDown:
		opts = append(opts, gpiocdev.WithPullDown)
	}

	req, err := gpiocdev.RequestLine(l.chip, l.num, opts...)
	if err != nil {
		return fmt.Errorf("request line %s/%d: %w", l.chip, l.num, err)
	}
	l.line = req
	return nil
}

func (l *CharDevLine) Read() (Level, error) {
	v, err := l.line.Value()
	if err != nil {
		return Low, fmt.Errorf("read line %s/%d: %w", l.chip, l.num, err)
	}
	if v != 0 {
		return High, nil
	}
	return Low, nil
}

// WatchEdges re-requests the line with an event handler and relays every
// edge notification to onEdge until ctx is cancelled. onEdge carries no
// edge direction, matching spec section 4.2: any transition resets the
// debounce timer.
func (l *CharDevLine) WatchEdges(ctx context.Context, onEdge func()) error {
	if l.line == nil {
		return fmt.Errorf("gpio: line %s/%d not configured", l.chip, l.num)
	}

	events := make(chan struct{}, 8)
	handler := func(gpiocdev.LineEvent) {
		select {
		case events <- struct{}{}:
		default:
		}
	}
	if err := l.line.Reconfigure(gpiocdev.WithEventHandler(handler), gpiocdev.WithBothEdges); err != nil {
		return fmt.Errorf("watch edges on %s/%d: %w", l.chip, l.num, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-events:
				onEdge()
			}
		}
	}()
	return nil
}

func (l *CharDevLine) Close() error {
	if l.line == nil {
		return nil
	}
	return l.line.Close()
}

var _ Line = (*CharDevLine)(nil)
