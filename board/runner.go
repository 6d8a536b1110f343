package board

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/sarchlab/simon/sim"
	"github.com/sarchlab/simon/timer"
)

// A Stepper advances the game by one tick.
type Stepper interface {
	Step()
}

// A Driver paces a game with a timer.
type Driver interface {
	// Run drives the game until ctx is done or the step limit is reached.
	Run(ctx context.Context) error

	Pause()
	Continue()
	IsPaused() bool

	// Steps returns the number of game steps taken.
	Steps() uint64
}

// gate lets exactly one game step through per timer expiry.
type gate struct {
	game     Stepper
	flag     *timer.Flag
	maxSteps uint64

	paused atomic.Bool
	steps  atomic.Uint64
}

// poll steps the game if the flag is raised and then clears the flag. It
// returns false once the step limit is reached.
func (g *gate) poll() bool {
	if !g.flag.IsSet() {
		return true
	}

	if !g.paused.Load() {
		g.game.Step()
		g.steps.Add(1)
	}

	g.flag.Clear()

	return !g.done()
}

func (g *gate) done() bool {
	return g.maxSteps > 0 && g.steps.Load() >= g.maxSteps
}

func (g *gate) Pause() {
	g.paused.Store(true)
}

func (g *gate) Continue() {
	g.paused.Store(false)
}

func (g *gate) IsPaused() bool {
	return g.paused.Load()
}

func (g *gate) Steps() uint64 {
	return g.steps.Load()
}

// Runner drives a game with a wall-clock timer. It blocks on the timer flag,
// steps the game once and clears the flag.
type Runner struct {
	gate
	timer timer.Timer
}

// NewRunner creates a Runner. A maxSteps of zero means no limit.
func NewRunner(game Stepper, t timer.Timer, maxSteps uint64) *Runner {
	return &Runner{
		gate: gate{
			game:     game,
			flag:     t.Flag(),
			maxSteps: maxSteps,
		},
		timer: t,
	}
}

// Run arms the timer and steps the game once per expiry. A done context ends
// the run without error.
//
// The first step waits for the first expiry, so the game leaves Init and
// shows the welcome text one period after Run starts. A context that ends
// within that period leaves the game in Init.
func (r *Runner) Run(ctx context.Context) error {
	r.timer.On()
	defer r.timer.Off()

	log.Info().Msg("game running")

	for {
		if err := r.flag.Wait(ctx); err != nil {
			log.Info().Err(err).Uint64("steps", r.Steps()).Msg("game stopped")
			return nil
		}

		if !r.poll() {
			log.Info().Uint64("steps", r.Steps()).Msg("step limit reached")
			return nil
		}
	}
}

// SimRunner drives a game in virtual time. It polls the timer flag at the
// timer resolution with secondary ticks, so that every expiry is consumed at
// the same virtual instant it is raised.
type SimRunner struct {
	*sim.TickingComponent
	gate

	timer timer.Timer

	lock    sync.Mutex
	stopped bool
}

// NewSimRunner creates a SimRunner on the engine. The runner polls at freq.
func NewSimRunner(
	name string,
	engine sim.Engine,
	freq sim.Freq,
	game Stepper,
	t timer.Timer,
	maxSteps uint64,
) *SimRunner {
	r := &SimRunner{
		gate: gate{
			game:     game,
			flag:     t.Flag(),
			maxSteps: maxSteps,
		},
		timer: t,
	}
	r.TickingComponent = sim.NewSecondaryTickingComponent(name, engine, freq, r)

	return r
}

// Tick polls the flag.
func (r *SimRunner) Tick() bool {
	r.lock.Lock()
	stopped := r.stopped
	r.lock.Unlock()

	if stopped || !r.poll() {
		r.timer.Off()
		return false
	}

	return true
}

// Start arms the timer and schedules the first poll.
func (r *SimRunner) Start() {
	r.timer.On()
	r.TickLater()
}

// Stop ends the run at the next poll.
func (r *SimRunner) Stop() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.stopped = true
}

// Run starts the runner and runs the engine until the runner stops. Without
// a step limit, the run only ends when ctx is done.
func (r *SimRunner) Run(ctx context.Context) error {
	r.Start()

	stop := context.AfterFunc(ctx, r.Stop)
	defer stop()

	log.Info().Uint64("max_steps", r.maxSteps).Msg("simulation running")

	return r.Engine.Run()
}
