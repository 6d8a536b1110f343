// Package board assembles a complete game: the tick source, the button and
// light ports, the display and the game controller, paced by a driver.
package board

import (
	"context"
	"time"

	"github.com/sarchlab/simon/display"
	"github.com/sarchlab/simon/port"
	"github.com/sarchlab/simon/sim"
	"github.com/sarchlab/simon/simon"
	"github.com/sarchlab/simon/timer"
)

// Board is one assembled game.
type Board struct {
	Buttons *port.Pins
	Start   *port.Pins
	Lights  *port.Latch
	LCD     *display.LCD
	Timer   timer.Timer
	Game    *simon.Comp
	Driver  Driver
	Period  time.Duration

	// Engine is set only for simulated boards.
	Engine sim.Engine
}

// Run drives the game until ctx is done or the step limit is reached.
func (b *Board) Run(ctx context.Context) error {
	return b.Driver.Run(ctx)
}

// Now returns the time elapsed on the board in seconds. Simulated boards
// report virtual time.
func (b *Board) Now() float64 {
	if b.Engine != nil {
		return float64(b.Engine.CurrentTime())
	}

	return float64(b.Driver.Steps()) * b.Period.Seconds()
}

// Builder builds boards. Boards built with an engine run in virtual time,
// the others follow the wall clock.
type Builder struct {
	engine     sim.Engine
	resolution sim.Freq
	period     time.Duration
	seed       int64
	policy     simon.RoundPolicy
	maxSteps   uint64
	displays   []display.Display
}

// MakeBuilder returns a Builder with the default period and seed.
func MakeBuilder() Builder {
	return Builder{
		resolution: 1 * sim.KHz,
		period:     timer.DefaultPeriod,
		seed:       simon.DefaultSeed,
		policy:     simon.RoundAdvance,
	}
}

// WithEngine makes the board run in virtual time on the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithResolution sets the base tick of simulated timers.
func (b Builder) WithResolution(freq sim.Freq) Builder {
	b.resolution = freq
	return b
}

// WithPeriod sets the game tick period.
func (b Builder) WithPeriod(period time.Duration) Builder {
	b.period = period
	return b
}

// WithSeed sets the seed of the game.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithRoundPolicy sets the round policy of the game.
func (b Builder) WithRoundPolicy(policy simon.RoundPolicy) Builder {
	b.policy = policy
	return b
}

// WithMaxSteps stops the board after n game steps. Zero means never.
func (b Builder) WithMaxSteps(n uint64) Builder {
	b.maxSteps = n
	return b
}

// WithDisplay mirrors the status line on an extra display.
func (b Builder) WithDisplay(d display.Display) Builder {
	b.displays = append(append([]display.Display(nil), b.displays...), d)
	return b
}

// Build assembles a board. Component names are prefixed with name.
func (b Builder) Build(name string) *Board {
	sim.NameMustBeValid(name)

	board := &Board{
		Buttons: port.NewPins(),
		Start:   port.NewPins(),
		Lights:  port.NewLatch(),
		LCD:     display.NewLCD(),
		Period:  b.period,
		Engine:  b.engine,
	}

	var screen display.Display = board.LCD
	if len(b.displays) > 0 {
		screen = append(display.Tee{board.LCD}, b.displays...)
	}

	board.Game = simon.MakeBuilder().
		WithSeed(b.seed).
		WithRoundPolicy(b.policy).
		WithButtonPort(board.Buttons).
		WithStartPort(board.Start).
		WithLightPort(board.Lights).
		WithDisplay(screen).
		Build(name + ".Game")

	if b.engine == nil {
		wall := timer.NewWallTimer(nil)
		wall.Set(b.period)
		board.Timer = wall
		board.Driver = NewRunner(board.Game, wall, b.maxSteps)

		return board
	}

	simTimer := timer.MakeSimBuilder().
		WithEngine(b.engine).
		WithResolution(b.resolution).
		WithPeriod(b.period).
		Build(name + ".Timer")
	board.Timer = simTimer
	board.Driver = NewSimRunner(name+".Runner",
		b.engine, b.resolution, board.Game, simTimer, b.maxSteps)

	return board
}
