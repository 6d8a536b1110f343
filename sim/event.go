package sim

import "time"

// VTimeInSec is virtual time in seconds.
type VTimeInSec float64

// Duration converts the virtual time into a wall-clock duration.
func (t VTimeInSec) Duration() time.Duration {
	return time.Duration(float64(t) * float64(time.Second))
}

// An Event happens at a point of virtual time and is handled by one handler.
type Event interface {
	Time() VTimeInSec
	Handler() Handler

	// Secondary events run after every primary event of the same time.
	IsSecondary() bool
}

// EventBase implements Event for embedding.
type EventBase struct {
	ID        string
	time      VTimeInSec
	handler   Handler
	secondary bool
}

// NewEventBase creates a primary event base.
func NewEventBase(t VTimeInSec, handler Handler) *EventBase {
	return &EventBase{
		ID:      GetIDGenerator().Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns when the event happens.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

func (e EventBase) IsSecondary() bool {
	return e.secondary
}

// A Handler handles events. An event only changes the state of its own
// handler.
type Handler interface {
	Handle(e Event) error
}
