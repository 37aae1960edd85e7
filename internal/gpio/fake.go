package gpio

import (
	"context"
	"sync"
)

// Fake is an in-memory Line for deterministic tests. Tests drive it with
// SetLevel to simulate edges; each SetLevel fires the registered edge
// callback synchronously, whether or not the level changed, the same way
// a real bounce storm would fire the callback once per physical transition.
type Fake struct {
	mu       sync.Mutex
	level    Level
	pull     Pull
	onEdge   func()
	closed   bool
	watchCtx context.Context
}

func NewFake(initial Level) *Fake {
	return &Fake{level: initial}
}

func (f *Fake) Configure(pull Pull) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pull = pull
	return nil
}

func (f *Fake) Pull() Pull {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pull
}

func (f *Fake) Read() (Level, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.level, nil
}

func (f *Fake) WatchEdges(ctx context.Context, onEdge func()) error {
	f.mu.Lock()
	f.onEdge = onEdge
	f.watchCtx = ctx
	f.mu.Unlock()
	return nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// SetLevel simulates a (possibly bouncy) transition of the physical line.
// It fires the edge callback unconditionally, even if the level did not
// change, so tests can model bounce storms as repeated SetLevel calls.
func (f *Fake) SetLevel(l Level) {
	f.mu.Lock()
	f.level = l
	cb := f.onEdge
	ctx := f.watchCtx
	closed := f.closed
	f.mu.Unlock()

	if closed || cb == nil {
		return
	}
	if ctx != nil && ctx.Err() != nil {
		return
	}
	cb()
}

var _ Line = (*Fake)(nil)
