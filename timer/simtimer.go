package timer

import (
	"sync"
	"time"

	"github.com/sarchlab/simon/sim"
)

// SimTimer is a Timer that runs in virtual time. It ticks at its resolution
// and counts down from the configured period, raising the flag and reloading
// the count each time it reaches zero.
type SimTimer struct {
	*sim.TickingComponent

	flag *Flag

	lock      sync.Mutex
	on        bool
	reload    uint64
	countdown uint64
}

// Tick counts down one resolution cycle.
func (t *SimTimer) Tick() bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.on {
		return false
	}

	t.countdown--
	if t.countdown == 0 {
		t.flag.Raise()
		t.countdown = t.reload
	}

	return true
}

// Set configures the period. It is rounded to whole resolution cycles.
func (t *SimTimer) Set(period time.Duration) {
	periodMustBeValid(period)

	t.lock.Lock()
	defer t.lock.Unlock()

	t.reload = t.Freq.Cycles(period)
	t.countdown = t.reload
}

// On arms the timer. The first raise happens one period later.
func (t *SimTimer) On() {
	t.lock.Lock()
	t.on = true
	t.countdown = t.reload
	t.lock.Unlock()

	t.TickLater()
}

// Off disarms the timer. The pending tick, if any, finds the timer off and
// stops ticking.
func (t *SimTimer) Off() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.on = false
}

// Flag returns the elapsed signal.
func (t *SimTimer) Flag() *Flag {
	return t.flag
}

// IsOn tells if the timer is armed.
func (t *SimTimer) IsOn() bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.on
}

// SimBuilder builds SimTimers.
type SimBuilder struct {
	engine     sim.Engine
	resolution sim.Freq
	period     time.Duration
	flag       *Flag
}

// MakeSimBuilder creates a SimBuilder with a 1 ms resolution and the default
// period.
func MakeSimBuilder() SimBuilder {
	return SimBuilder{
		resolution: 1 * sim.KHz,
		period:     DefaultPeriod,
	}
}

// WithEngine sets the engine that the timer ticks on.
func (b SimBuilder) WithEngine(engine sim.Engine) SimBuilder {
	b.engine = engine
	return b
}

// WithResolution sets the frequency at which the timer counts down.
func (b SimBuilder) WithResolution(freq sim.Freq) SimBuilder {
	b.resolution = freq
	return b
}

// WithPeriod sets the initial period.
func (b SimBuilder) WithPeriod(period time.Duration) SimBuilder {
	b.period = period
	return b
}

// WithFlag shares an existing flag instead of creating a new one.
func (b SimBuilder) WithFlag(flag *Flag) SimBuilder {
	b.flag = flag
	return b
}

func (b SimBuilder) parametersMustBeValid() {
	if b.engine == nil {
		panic("engine is not set")
	}

	if b.resolution <= 0 {
		panic("resolution must be positive")
	}

	periodMustBeValid(b.period)
}

// Build creates a SimTimer with the given name. The timer starts off.
func (b SimBuilder) Build(name string) *SimTimer {
	b.parametersMustBeValid()

	t := &SimTimer{
		flag: b.flag,
	}
	if t.flag == nil {
		t.flag = NewFlag()
	}

	t.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.resolution, t)
	t.Set(b.period)

	return t
}
