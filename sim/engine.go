package sim

// TimeTeller tells the current time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler accepts events to run later.
type EventScheduler interface {
	Schedule(e Event)
}

// An Engine runs scheduled events in time order. Hooks see every event
// before and after it is handled.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run handles events until none is left.
	Run() error

	// Pause holds the engine before the next event until Continue is called.
	Pause()
	Continue()
}
