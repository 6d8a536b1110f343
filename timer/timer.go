// Package timer provides the periodic tick source that paces the game.
//
// A Timer is configured with a period, switched on, and from then on raises
// its Flag every time the period elapses, re-arming itself. The consumer of
// the Flag must clear it after observing it. Two implementations exist: a
// SimTimer that counts down in virtual time on a sim.Engine, and a WallTimer
// that follows the wall clock.
package timer

import "time"

// DefaultPeriod is the tick period used by the game when nothing else is
// configured.
const DefaultPeriod = 200 * time.Millisecond

// A Timer raises its Flag periodically.
type Timer interface {
	// Set configures the period between two raises. It can be called while
	// the timer is on.
	Set(period time.Duration)

	// On arms the timer.
	On()

	// Off disarms the timer.
	Off()

	// Flag returns the elapsed signal.
	Flag() *Flag
}

func periodMustBeValid(period time.Duration) {
	if period <= 0 {
		panic("timer period must be positive")
	}
}
