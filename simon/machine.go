package simon

import (
	"math/rand"
)

// Status lines shown on the display.
const (
	TextWelcome = "Welcome"
	TextWin     = "YOU WIN"
	TextLose    = "YOU LOSE"
)

// GameState is the data of the game in progress.
type GameState struct {
	Sequence Sequence

	// Round is the number of symbols played back this round.
	Round int

	// Index points at the symbol being played back or checked.
	Index int

	// Mistake is set on the first wrong button and kept until reset.
	Mistake bool

	// Start is the start button as read in the last tick.
	Start bool

	// Input is the button mask as read in the last tick. Zero means no
	// button is held.
	Input uint8
}

// Expected returns the button mask that the player must press next.
func (g GameState) Expected() uint8 {
	return g.Sequence[g.Index].Bit()
}

// Inputs are the decoded, active-high readings of one tick.
type Inputs struct {
	Buttons uint8
	Start   bool
}

// Outputs are what one tick asks the hardware to show.
type Outputs struct {
	// Lights is the light mask, valid only when Drive is set.
	Lights uint8
	Drive  bool

	// Text is the status line, valid only when Show is set.
	Text string
	Show bool
}

func (o *Outputs) drive(lights uint8) {
	o.Lights = lights
	o.Drive = true
}

func (o *Outputs) show(text string) {
	o.Text = text
	o.Show = true
}

// Machine is the game state machine. Every Step first takes the transition
// out of the current state, using what the previous ticks latched, and then
// runs the action of the new state on the fresh inputs.
type Machine struct {
	state  State
	data   GameState
	rng    *rand.Rand
	policy RoundPolicy
}

// NewMachine creates a machine in the Init state. The seed fixes every
// sequence the machine will ever generate.
func NewMachine(seed int64, policy RoundPolicy) *Machine {
	return &Machine{
		state:  StateInit,
		data:   GameState{Round: 1},
		rng:    rand.New(rand.NewSource(seed)),
		policy: policy,
	}
}

// State returns the active state.
func (m *Machine) State() State {
	return m.state
}

// Data returns a copy of the game data.
func (m *Machine) Data() GameState {
	return m.data
}

// Policy returns the round policy.
func (m *Machine) Policy() RoundPolicy {
	return m.policy
}

// Step runs one tick.
func (m *Machine) Step(in Inputs) Outputs {
	var out Outputs

	m.state = m.transition(&out)
	m.act(in, &out)

	return out
}

func (m *Machine) transition(out *Outputs) State {
	d := &m.data

	switch m.state {
	case StateInit:
		m.data = GameState{Round: 1}
		out.drive(0)
		out.show(TextWelcome)

		return StateWelcome

	case StateWelcome:
		if !d.Start {
			return StateWelcome
		}

		m.newGame()

		return StateBlinkOn

	case StateBlinkOn:
		return StateBlinkOff

	case StateBlinkOff:
		if d.Index < d.Round {
			return StateBlinkOn
		}

		d.Index = 0

		return StateWaitForInput

	case StateWaitForInput:
		return m.leaveWait(out)

	case StateCheckInput:
		return m.leaveCheck(out)

	case StateWin, StateLose:
		if d.Start {
			return StateReset
		}

		return m.state

	case StateReset:
		out.show(TextWelcome)
		return StateWelcome
	}

	panic("unknown state " + m.state.String())
}

func (m *Machine) newGame() {
	var seq Sequence
	for i := range seq {
		seq[i] = Symbol(m.rng.Intn(NumSymbols))
	}

	m.data = GameState{
		Sequence: seq,
		Round:    1,
	}
}

func (m *Machine) leaveWait(out *Outputs) State {
	d := &m.data

	if d.Input != 0 && d.Index < d.Round {
		if d.Input != d.Expected() {
			d.Mistake = true
		}

		return StateCheckInput
	}

	if d.Index < d.Round {
		return StateWaitForInput
	}

	if d.Round >= MaxRound {
		out.show(TextWin)
		return StateWin
	}

	if m.policy == RoundAdvance {
		d.Round++
		d.Index = 0

		return StateBlinkOn
	}

	return StateWaitForInput
}

func (m *Machine) leaveCheck(out *Outputs) State {
	d := &m.data

	if d.Input != 0 {
		return StateCheckInput
	}

	if d.Mistake {
		out.show(TextLose)
		return StateLose
	}

	d.Index++

	return StateWaitForInput
}

func (m *Machine) act(in Inputs, out *Outputs) {
	d := &m.data

	switch m.state {
	case StateWelcome, StateWin, StateLose:
		d.Start = in.Start

	case StateBlinkOn:
		out.drive(d.Expected())

	case StateBlinkOff:
		out.drive(0)
		d.Index++

	case StateWaitForInput:
		d.Input = in.Buttons
		out.drive(d.Input)

	case StateCheckInput:
		d.Input = in.Buttons
		out.drive(d.Input)

		if d.Input != 0 && d.Input != d.Expected() {
			d.Mistake = true
		}

	case StateReset:
		m.data = GameState{
			Sequence: d.Sequence,
			Round:    1,
		}
		out.drive(0)
	}
}
