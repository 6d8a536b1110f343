package timer

import (
	"context"
	"sync/atomic"
)

// A Flag is the one-bit elapsed signal shared between a timer and the loop
// that consumes it. The timer raises it; the consumer observes and clears it.
//
// Raising a flag that is already set does not queue a second tick. The lost
// tick is counted in Missed.
type Flag struct {
	set    atomic.Bool
	raised atomic.Uint64
	missed atomic.Uint64
	notify chan struct{}
}

// NewFlag creates a cleared Flag.
func NewFlag() *Flag {
	return &Flag{notify: make(chan struct{}, 1)}
}

// Raise sets the flag.
func (f *Flag) Raise() {
	f.raised.Add(1)

	if f.set.Swap(true) {
		f.missed.Add(1)
		return
	}

	select {
	case f.notify <- struct{}{}:
	default:
	}
}

// IsSet reports whether the flag is set.
func (f *Flag) IsSet() bool {
	return f.set.Load()
}

// Clear resets the flag.
func (f *Flag) Clear() {
	f.set.Store(false)
}

// Wait blocks until the flag is set or ctx is done. It does not clear the
// flag.
func (f *Flag) Wait(ctx context.Context) error {
	for {
		if f.IsSet() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.notify:
		}
	}
}

// Raised returns how many times the flag has been raised.
func (f *Flag) Raised() uint64 {
	return f.raised.Load()
}

// Missed returns how many raises found the flag still set.
func (f *Flag) Missed() uint64 {
	return f.missed.Load()
}
