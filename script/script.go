// Package script drives the buttons of a game from hooks, either from a YAML
// script or with an automatic player that watches the lights.
package script

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sarchlab/simon/port"
	"github.com/sarchlab/simon/sim"
	"github.com/sarchlab/simon/simon"
	"gopkg.in/yaml.v3"
)

// An Action presses or releases one pin right before a game step.
type Action struct {
	Tick    uint64 `yaml:"tick"`
	Press   string `yaml:"press,omitempty"`
	Release string `yaml:"release,omitempty"`
}

// An Expectation names the state the game must be in after a step.
type Expectation struct {
	Tick  uint64 `yaml:"tick"`
	State string `yaml:"state"`
}

// Script is a timed list of pin actions and state checks.
type Script struct {
	Name    string        `yaml:"name"`
	Actions []Action      `yaml:"actions"`
	Expect  []Expectation `yaml:"expect,omitempty"`
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	s := new(Script)
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	sort.SliceStable(s.Actions, func(i, j int) bool {
		return s.Actions[i].Tick < s.Actions[j].Tick
	})
	sort.SliceStable(s.Expect, func(i, j int) bool {
		return s.Expect[i].Tick < s.Expect[j].Tick
	})

	return s, nil
}

// Load reads a YAML script from a file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	return Parse(data)
}

func (s *Script) validate() error {
	for i, a := range s.Actions {
		if (a.Press == "") == (a.Release == "") {
			return fmt.Errorf("action %d: exactly one of press and release is needed", i)
		}

		name := a.Press + a.Release
		if _, _, err := port.ParsePin(name); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}

	for i, e := range s.Expect {
		if _, err := simon.ParseState(e.State); err != nil {
			return fmt.Errorf("expectation %d: %w", i, err)
		}
	}

	return nil
}

// Player plays a Script on the pins of a game. It is a hook of the game
// controller.
type Player struct {
	script  *Script
	buttons *port.Pins
	start   *port.Pins

	nextAction int
	nextExpect int
	failures   []error
}

// NewPlayer creates a Player.
func NewPlayer(s *Script, buttons, start *port.Pins) *Player {
	return &Player{
		script:  s,
		buttons: buttons,
		start:   start,
	}
}

// Func applies the actions before every step and checks the expectations
// after it.
func (p *Player) Func(ctx sim.HookCtx) {
	info, ok := ctx.Item.(simon.StepInfo)
	if !ok {
		return
	}

	switch ctx.Pos {
	case simon.HookPosBeforeStep:
		p.act(info.Tick)
	case simon.HookPosAfterStep:
		p.check(info)
	}
}

func (p *Player) act(tick uint64) {
	actions := p.script.Actions
	for p.nextAction < len(actions) && actions[p.nextAction].Tick <= tick {
		a := actions[p.nextAction]
		p.nextAction++

		if a.Press != "" {
			mask, isStart, _ := port.ParsePin(a.Press)
			p.pinsOf(isStart).Press(mask)

			continue
		}

		mask, isStart, _ := port.ParsePin(a.Release)
		p.pinsOf(isStart).Release(mask)
	}
}

func (p *Player) pinsOf(isStart bool) *port.Pins {
	if isStart {
		return p.start
	}

	return p.buttons
}

func (p *Player) check(info simon.StepInfo) {
	expect := p.script.Expect
	for p.nextExpect < len(expect) && expect[p.nextExpect].Tick <= info.Tick {
		e := expect[p.nextExpect]
		p.nextExpect++

		if e.Tick != info.Tick {
			p.failures = append(p.failures,
				fmt.Errorf("tick %d: skipped", e.Tick))

			continue
		}

		if info.To.String() != e.State {
			p.failures = append(p.failures,
				fmt.Errorf("tick %d: state is %s, want %s",
					e.Tick, info.To, e.State))
		}
	}
}

// Done tells if every action has been applied and every expectation checked.
func (p *Player) Done() bool {
	return p.nextAction >= len(p.script.Actions) &&
		p.nextExpect >= len(p.script.Expect)
}

// Err returns the failed expectations, if any.
func (p *Player) Err() error {
	if len(p.failures) == 0 {
		return nil
	}

	return fmt.Errorf("script %q: %w", p.script.Name, errors.Join(p.failures...))
}
