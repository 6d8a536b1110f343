// Package simon implements the controller of a four-button memory game. The
// controller plays back a growing pattern on four lights and checks that the
// player repeats it on four buttons.
package simon

import (
	"github.com/rs/zerolog/log"
	"github.com/sarchlab/simon/display"
	"github.com/sarchlab/simon/port"
	"github.com/sarchlab/simon/sim"
)

// HookPosBeforeStep marks the moment before the controller reads its ports.
var HookPosBeforeStep = &sim.HookPos{Name: "BeforeStep"}

// HookPosAfterStep marks the moment after the controller drives its outputs.
var HookPosAfterStep = &sim.HookPos{Name: "AfterStep"}

// StepInfo is the hook item of a step. Before a step only Tick and From are
// filled.
type StepInfo struct {
	Tick   uint64
	From   State
	To     State
	Data   GameState
	Output Outputs
}

// Comp is the game controller. It reads the raw buttons, runs one machine
// step per call to Step, and drives the lights and the display.
type Comp struct {
	*sim.ComponentBase

	machine *Machine
	ticks   uint64

	buttonPort port.InputPort
	startPort  port.InputPort
	lightPort  port.OutputPort
	display    display.Display
}

// Step runs one tick of the game.
func (c *Comp) Step() {
	c.Lock()
	tick := c.ticks
	from := c.machine.State()
	c.Unlock()

	c.invoke(HookPosBeforeStep, StepInfo{Tick: tick, From: from})

	c.Lock()
	in := Inputs{
		Buttons: port.Buttons(c.buttonPort),
		Start:   port.StartPressed(c.startPort),
	}

	out := c.machine.Step(in)
	c.ticks++

	if out.Drive {
		c.lightPort.Write(out.Lights)
	}

	if out.Show {
		c.display.DisplayString(1, out.Text)
	}

	info := StepInfo{
		Tick:   tick,
		From:   from,
		To:     c.machine.State(),
		Data:   c.machine.Data(),
		Output: out,
	}
	c.Unlock()

	if info.From != info.To {
		log.Debug().
			Str("comp", c.Name()).
			Uint64("tick", tick).
			Stringer("from", info.From).
			Stringer("to", info.To).
			Int("round", info.Data.Round).
			Int("index", info.Data.Index).
			Msg("transition")
	}

	c.invoke(HookPosAfterStep, info)
}

func (c *Comp) invoke(pos *sim.HookPos, info StepInfo) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    pos,
		Item:   info,
	})
}

// State returns the active state.
func (c *Comp) State() State {
	c.Lock()
	defer c.Unlock()

	return c.machine.State()
}

// Data returns a copy of the game data.
func (c *Comp) Data() GameState {
	c.Lock()
	defer c.Unlock()

	return c.machine.Data()
}

// Ticks returns the number of steps taken.
func (c *Comp) Ticks() uint64 {
	c.Lock()
	defer c.Unlock()

	return c.ticks
}

// Policy returns the round policy of the game.
func (c *Comp) Policy() RoundPolicy {
	return c.machine.Policy()
}
