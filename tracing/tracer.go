// Package tracing follows the steps of a game controller and reports its
// transitions and games to tracers.
package tracing

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sarchlab/simon/sim"
	"github.com/sarchlab/simon/simon"
)

// A Transition is a change of state of the game.
type Transition struct {
	GameID string
	Tick   uint64
	Time   sim.VTimeInSec
	From   simon.State
	To     simon.State
	Data   simon.GameState
	Output simon.Outputs
}

// A Game runs from the press of start to a win or a loss.
type Game struct {
	ID        string
	StartTick uint64
	EndTick   uint64
	StartTime sim.VTimeInSec
	EndTime   sim.VTimeInSec
	Round     int
	Won       bool
}

// A Tracer collects transitions and games.
type Tracer interface {
	Transition(t Transition)
	StartGame(g Game)
	EndGame(g Game)
}

// NamedHookable is a hookable object with a name.
type NamedHookable interface {
	sim.Named
	sim.Hookable
	Hooks() []sim.Hook
}

// CollectTrace lets the tracer follow a game controller. The time teller
// timestamps the transitions.
func CollectTrace(
	domain NamedHookable,
	timeTeller sim.TimeTeller,
	tracer Tracer,
) {
	for _, hook := range domain.Hooks() {
		hook, ok := hook.(*traceHook)
		if ok && hook.t == tracer {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	domain.AcceptHook(&traceHook{t: tracer, timeTeller: timeTeller})
}

// A traceHook turns game steps into transitions and games.
type traceHook struct {
	t          Tracer
	timeTeller sim.TimeTeller

	game *Game
}

// Func calls the tracer when the hook is triggered.
func (h *traceHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != simon.HookPosAfterStep {
		return
	}

	info := ctx.Item.(simon.StepInfo)
	if info.From == info.To {
		return
	}

	now := h.timeTeller.CurrentTime()

	if info.To == simon.StateBlinkOn && info.From == simon.StateWelcome {
		h.game = &Game{
			ID:        xid.New().String(),
			StartTick: info.Tick,
			StartTime: now,
		}
		h.t.StartGame(*h.game)
	}

	t := Transition{
		Tick:   info.Tick,
		Time:   now,
		From:   info.From,
		To:     info.To,
		Data:   info.Data,
		Output: info.Output,
	}
	if h.game != nil {
		t.GameID = h.game.ID
	}

	h.t.Transition(t)

	if h.game != nil && (info.To == simon.StateWin || info.To == simon.StateLose) {
		h.game.EndTick = info.Tick
		h.game.EndTime = now
		h.game.Round = info.Data.Round
		h.game.Won = info.To == simon.StateWin
		h.t.EndGame(*h.game)
		h.game = nil
	}
}

// WallClock tells the seconds elapsed since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock creates a WallClock starting now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// CurrentTime returns the seconds since the clock was created.
func (c *WallClock) CurrentTime() sim.VTimeInSec {
	return sim.VTimeInSec(time.Since(c.start).Seconds())
}

// CountTracer counts the transitions into every state and the outcome of
// every game.
type CountTracer struct {
	lock   sync.Mutex
	visits map[simon.State]uint64
	wins   uint64
	losses uint64
}

// NewCountTracer creates a CountTracer.
func NewCountTracer() *CountTracer {
	return &CountTracer{visits: make(map[simon.State]uint64)}
}

// Transition counts a visit to the new state.
func (t *CountTracer) Transition(tr Transition) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.visits[tr.To]++
}

// StartGame does nothing.
func (t *CountTracer) StartGame(Game) {}

// EndGame counts the outcome.
func (t *CountTracer) EndGame(g Game) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if g.Won {
		t.wins++
	} else {
		t.losses++
	}
}

// Visits returns how many times the state was entered.
func (t *CountTracer) Visits(s simon.State) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.visits[s]
}

// Outcomes returns the number of won and lost games.
func (t *CountTracer) Outcomes() (wins, losses uint64) {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.wins, t.losses
}
