// Package port models the raw digital ports that the game reads buttons from
// and drives indicator lights with.
//
// Input pins are active low. An idle input port reads all ones and a pressed
// button pulls its bit to zero. Output ports are active high and one-hot: bit
// n lights indicator n.
package port

import (
	"errors"
	"fmt"
	"strings"
)

// Masks of the meaningful bits on each port.
const (
	// ButtonMask selects the four play buttons on the button port.
	ButtonMask uint8 = 0x0F

	// StartMask selects the start button on the start port.
	StartMask uint8 = 0x10

	// LightMask selects the four indicators on the light port.
	LightMask uint8 = 0x0F
)

// NumButtons is the number of play buttons and indicators.
const NumButtons = 4

// An InputPort is a readable digital port.
type InputPort interface {
	Read() uint8
}

// An OutputPort is a writable digital port.
type OutputPort interface {
	Write(v uint8)
}

// Buttons returns the pressed play buttons as an active-high mask.
func Buttons(p InputPort) uint8 {
	return ^p.Read() & ButtonMask
}

// StartPressed tells if the start button is held.
func StartPressed(p InputPort) bool {
	return ^p.Read()&StartMask != 0
}

// ButtonBit returns the mask of play button n.
func ButtonBit(n int) uint8 {
	if n < 0 || n >= NumButtons {
		panic("button out of range")
	}

	return 1 << uint(n)
}

// ErrUnknownPin is returned for pin names that no port has.
var ErrUnknownPin = errors.New("unknown pin")

// ParsePin resolves a pin name. Play buttons are named button0 to button3,
// or just 0 to 3, and the start button is named start. isStart tells if the
// pin is on the start port.
func ParsePin(name string) (mask uint8, isStart bool, err error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "start" {
		return StartMask, true, nil
	}

	n = strings.TrimPrefix(n, "button")
	if len(n) == 1 && n[0] >= '0' && n[0] < '0'+NumButtons {
		return ButtonBit(int(n[0] - '0')), false, nil
	}

	return 0, false, fmt.Errorf("%w: %q", ErrUnknownPin, name)
}
