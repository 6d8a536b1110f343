package sim

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"
)

// A SerialEngine handles one event at a time on the goroutine that calls
// Run. Handlers may schedule new events while they run.
type SerialEngine struct {
	HookableBase

	lock      sync.Mutex
	now       VTimeInSec
	primary   EventQueue
	secondary EventQueue

	// gate is held by Pause and taken briefly before every event.
	gate      sync.Mutex
	pauseLock sync.Mutex
	paused    bool

	running sync.Mutex
}

// NewSerialEngine creates a SerialEngine at time 0.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		primary:   NewEventQueue(),
		secondary: NewEventQueue(),
	}
}

// Schedule queues an event. Events in the past are a programming error.
func (e *SerialEngine) Schedule(evt Event) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if evt.Time() < e.now {
		log.Panic().Msgf("scheduling %s @ %.10f before now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.now)
	}

	if evt.IsSecondary() {
		e.secondary.Push(evt)
		return
	}

	e.primary.Push(evt)
}

// Run handles events until the queues are empty or a handler fails.
func (e *SerialEngine) Run() error {
	e.running.Lock()
	defer e.running.Unlock()

	for {
		e.gate.Lock()
		e.gate.Unlock() //nolint:staticcheck

		evt := e.advance()
		if evt == nil {
			return nil
		}

		if err := e.handle(evt); err != nil {
			return err
		}
	}
}

// advance pops the next event and moves the clock to it. Primary events go
// before secondary events of the same time.
func (e *SerialEngine) advance() Event {
	e.lock.Lock()
	defer e.lock.Unlock()

	var evt Event

	switch {
	case e.primary.Len() == 0 && e.secondary.Len() == 0:
		return nil
	case e.primary.Len() == 0:
		evt = e.secondary.Pop()
	case e.secondary.Len() == 0:
		evt = e.primary.Pop()
	case e.primary.Peek().Time() <= e.secondary.Peek().Time():
		evt = e.primary.Pop()
	default:
		evt = e.secondary.Pop()
	}

	e.now = evt.Time()

	return evt
}

func (e *SerialEngine) handle(evt Event) error {
	ctx := HookCtx{Domain: e, Pos: HookPosBeforeEvent, Item: evt}
	e.InvokeHook(ctx)

	err := evt.Handler().Handle(evt)

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	if err != nil {
		return fmt.Errorf("handling %s @ %.10f: %w",
			reflect.TypeOf(evt), evt.Time(), err)
	}

	return nil
}

// Pause stops Run before the next event.
func (e *SerialEngine) Pause() {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	if e.paused {
		return
	}

	e.gate.Lock()
	e.paused = true
}

// Continue lets a paused Run go on.
func (e *SerialEngine) Continue() {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	if !e.paused {
		return
	}

	e.gate.Unlock()
	e.paused = false
}

// CurrentTime returns the time of the event being handled, or of the last
// one handled.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.now
}
