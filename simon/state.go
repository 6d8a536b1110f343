package simon

import "fmt"

// MaxRound is the length of a game. Winning takes MaxRound rounds.
const MaxRound = 9

// NumSymbols is the number of distinct symbols, one per button.
const NumSymbols = 4

// A Symbol is one of the four buttons or indicators.
type Symbol uint8

// Bit returns the one-hot mask of the symbol on the button and light ports.
func (s Symbol) Bit() uint8 {
	return 1 << s
}

// Sequence is the full pattern of one game. Round n replays the first n
// symbols.
type Sequence [MaxRound]Symbol

// State is the active state of the game.
type State int

// The states of the game.
const (
	StateInit State = iota
	StateWelcome
	StateBlinkOn
	StateBlinkOff
	StateWaitForInput
	StateCheckInput
	StateLose
	StateWin
	StateReset
)

var stateNames = [...]string{
	StateInit:         "Init",
	StateWelcome:      "Welcome",
	StateBlinkOn:      "BlinkOn",
	StateBlinkOff:     "BlinkOff",
	StateWaitForInput: "WaitForInput",
	StateCheckInput:   "CheckInput",
	StateLose:         "Lose",
	StateWin:          "Win",
	StateReset:        "Reset",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// States returns all states in order.
func States() []State {
	states := make([]State, len(stateNames))
	for i := range stateNames {
		states[i] = State(i)
	}

	return states
}

// ParseState returns the state with the given name.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}

	return 0, fmt.Errorf("unknown state %q", name)
}

// DecodeOneHot returns the symbol of a mask that has exactly one button bit
// set. Masks with no bit or several bits do not decode.
func DecodeOneHot(mask uint8) (Symbol, bool) {
	for s := Symbol(0); s < NumSymbols; s++ {
		if mask == s.Bit() {
			return s, true
		}
	}

	return 0, false
}

// RoundPolicy decides what happens after the player replays a full round.
type RoundPolicy int

const (
	// RoundAdvance grows the round by one symbol and plays it back.
	RoundAdvance RoundPolicy = iota

	// RoundHold keeps waiting after a replayed round without growing it. Only
	// a game whose round already reached MaxRound can be won.
	RoundHold
)

func (p RoundPolicy) String() string {
	switch p {
	case RoundAdvance:
		return "advance"
	case RoundHold:
		return "hold"
	default:
		return fmt.Sprintf("RoundPolicy(%d)", int(p))
	}
}

// ParseRoundPolicy parses "advance" or "hold".
func ParseRoundPolicy(s string) (RoundPolicy, error) {
	switch s {
	case "advance", "":
		return RoundAdvance, nil
	case "hold":
		return RoundHold, nil
	default:
		return 0, fmt.Errorf("unknown round policy %q", s)
	}
}
