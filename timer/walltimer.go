package timer

import (
	"sync"
	"time"
)

// WallTimer is a Timer that follows the wall clock.
type WallTimer struct {
	flag *Flag

	lock   sync.Mutex
	period time.Duration
	ticker *time.Ticker
	stop   chan struct{}
	done   chan struct{}
}

// NewWallTimer creates a WallTimer with the default period. If flag is nil a
// new one is created.
func NewWallTimer(flag *Flag) *WallTimer {
	if flag == nil {
		flag = NewFlag()
	}

	return &WallTimer{
		flag:   flag,
		period: DefaultPeriod,
	}
}

// Set configures the period. A running timer switches to the new period
// right away.
func (t *WallTimer) Set(period time.Duration) {
	periodMustBeValid(period)

	t.lock.Lock()
	defer t.lock.Unlock()

	t.period = period
	if t.ticker != nil {
		t.ticker.Reset(period)
	}
}

// On starts raising the flag every period. Calling On on a running timer
// does nothing.
func (t *WallTimer) On() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.ticker != nil {
		return
	}

	t.ticker = time.NewTicker(t.period)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	go t.loop(t.ticker.C, t.stop, t.done)
}

func (t *WallTimer) loop(
	ticks <-chan time.Time,
	stop <-chan struct{},
	done chan<- struct{},
) {
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case <-ticks:
			t.flag.Raise()
		}
	}
}

// Off stops the timer and waits for its goroutine to exit.
func (t *WallTimer) Off() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.ticker == nil {
		return
	}

	t.ticker.Stop()
	close(t.stop)
	<-t.done

	t.ticker = nil
}

// IsOn tells if the timer is running.
func (t *WallTimer) IsOn() bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.ticker != nil
}

// Flag returns the elapsed signal.
func (t *WallTimer) Flag() *Flag {
	return t.flag
}
