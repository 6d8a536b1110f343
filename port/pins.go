package port

import "sync"

// Pins is an in-memory input port with pull-ups. Every bit reads one until it
// is pressed. Pins can be pressed from any goroutine.
type Pins struct {
	lock  sync.Mutex
	level uint8
}

// NewPins creates a Pins with every bit released.
func NewPins() *Pins {
	return &Pins{level: 0xFF}
}

// Read returns the level of all the pins.
func (p *Pins) Read() uint8 {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.level
}

// Press pulls the bits in mask low.
func (p *Pins) Press(mask uint8) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.level &^= mask
}

// Release lets the bits in mask float high.
func (p *Pins) Release(mask uint8) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.level |= mask
}

// ReleaseAll releases every pin.
func (p *Pins) ReleaseAll() {
	p.Release(0xFF)
}

// IsPressed tells if any bit of mask is held low.
func (p *Pins) IsPressed(mask uint8) bool {
	return ^p.Read()&mask != 0
}

// Latch is an in-memory output port. It keeps the last written value and
// reports changes to an optional observer.
type Latch struct {
	lock     sync.Mutex
	value    uint8
	writes   uint64
	observer func(old, new uint8)
}

// NewLatch creates a Latch holding zero.
func NewLatch() *Latch {
	return &Latch{}
}

// Observe registers f to be called whenever the latched value changes.
func (l *Latch) Observe(f func(old, new uint8)) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.observer = f
}

// Write latches v.
func (l *Latch) Write(v uint8) {
	l.lock.Lock()
	old := l.value
	l.value = v
	l.writes++
	observer := l.observer
	l.lock.Unlock()

	if observer != nil && old != v {
		observer(old, v)
	}
}

// Read returns the latched value.
func (l *Latch) Read() uint8 {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.value
}

// Writes returns how many times the latch has been written.
func (l *Latch) Writes() uint64 {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.writes
}
