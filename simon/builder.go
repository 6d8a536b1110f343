package simon

import (
	"github.com/sarchlab/simon/display"
	"github.com/sarchlab/simon/port"
	"github.com/sarchlab/simon/sim"
)

// DefaultSeed seeds the sequence generator when no seed is given.
const DefaultSeed int64 = 1

// Builder builds game controllers.
type Builder struct {
	seed       int64
	policy     RoundPolicy
	buttonPort port.InputPort
	startPort  port.InputPort
	lightPort  port.OutputPort
	display    display.Display
}

// MakeBuilder returns a Builder with the default seed and the RoundAdvance
// policy.
func MakeBuilder() Builder {
	return Builder{
		seed:   DefaultSeed,
		policy: RoundAdvance,
	}
}

// WithSeed sets the seed of the sequence generator.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithRoundPolicy sets what happens after a replayed round.
func (b Builder) WithRoundPolicy(policy RoundPolicy) Builder {
	b.policy = policy
	return b
}

// WithButtonPort sets the port that the play buttons are wired to.
func (b Builder) WithButtonPort(p port.InputPort) Builder {
	b.buttonPort = p
	return b
}

// WithStartPort sets the port that the start button is wired to.
func (b Builder) WithStartPort(p port.InputPort) Builder {
	b.startPort = p
	return b
}

// WithLightPort sets the port that drives the lights.
func (b Builder) WithLightPort(p port.OutputPort) Builder {
	b.lightPort = p
	return b
}

// WithDisplay sets the status display.
func (b Builder) WithDisplay(d display.Display) Builder {
	b.display = d
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.buttonPort == nil {
		panic("button port is not set")
	}

	if b.startPort == nil {
		panic("start port is not set")
	}

	if b.lightPort == nil {
		panic("light port is not set")
	}

	if b.display == nil {
		panic("display is not set")
	}

	if b.policy != RoundAdvance && b.policy != RoundHold {
		panic("unknown round policy")
	}
}

// Build creates a controller in the Init state.
func (b Builder) Build(name string) *Comp {
	b.parametersMustBeValid()

	c := &Comp{
		machine:    NewMachine(b.seed, b.policy),
		buttonPort: b.buttonPort,
		startPort:  b.startPort,
		lightPort:  b.lightPort,
		display:    b.display,
	}
	c.ComponentBase = sim.NewComponentBase(name)

	return c
}
