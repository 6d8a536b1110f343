package port

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/term"
	"github.com/rs/zerolog/log"
)

// ErrQuit is returned by Keypad.Run when the player asks to leave.
var ErrQuit = errors.New("player quit")

// DefaultHold is how long a key stroke keeps a pin pressed. Terminals do not
// report key releases, so every stroke becomes a press of fixed length.
const DefaultHold = 400 * time.Millisecond

// Keypad turns key strokes into pin presses. Keys 1 to 4 press the play
// buttons, space or s presses start and q quits.
type Keypad struct {
	buttons *Pins
	start   *Pins
	hold    time.Duration

	lock     sync.Mutex
	releases map[uint8]*pendingRelease
	strokes  uint64
}

// pendingRelease is the scheduled release of one mask. A timer callback only
// acts if its stroke is still the latest one of the mask.
type pendingRelease struct {
	pins   *Pins
	timer  *time.Timer
	stroke uint64
}

// NewKeypad creates a keypad driving the given pins. buttons and start may be
// the same Pins.
func NewKeypad(buttons, start *Pins, hold time.Duration) *Keypad {
	if buttons == nil || start == nil {
		panic("keypad needs both button and start pins")
	}

	if hold <= 0 {
		hold = DefaultHold
	}

	return &Keypad{
		buttons:  buttons,
		start:    start,
		hold:     hold,
		releases: make(map[uint8]*pendingRelease),
	}
}

// KeyMask maps a key to the pins it presses. isStart tells if the mask is on
// the start port and ok is false for keys that press nothing.
func KeyMask(key byte) (mask uint8, isStart bool, ok bool) {
	switch key {
	case '1', '2', '3', '4':
		return ButtonBit(int(key - '1')), false, true
	case ' ', 's', 'S':
		return StartMask, true, true
	default:
		return 0, false, false
	}
}

// Stroke presses the pins of key and schedules their release.
func (k *Keypad) Stroke(key byte) {
	mask, isStart, ok := KeyMask(key)
	if !ok {
		return
	}

	pins := k.buttons
	if isStart {
		pins = k.start
	}

	k.lock.Lock()
	defer k.lock.Unlock()

	pins.Press(mask)

	if p, found := k.releases[mask]; found {
		p.timer.Stop()
	}

	k.strokes++
	stroke := k.strokes
	k.releases[mask] = &pendingRelease{
		pins:   pins,
		stroke: stroke,
		timer:  time.AfterFunc(k.hold, func() { k.release(mask, stroke) }),
	}
}

func (k *Keypad) release(mask uint8, stroke uint64) {
	k.lock.Lock()
	defer k.lock.Unlock()

	p, found := k.releases[mask]
	if !found || p.stroke != stroke {
		return
	}

	p.pins.Release(mask)
	delete(k.releases, mask)
}

// ReleaseAll stops pending releases and lets every pin float high.
func (k *Keypad) ReleaseAll() {
	k.lock.Lock()
	defer k.lock.Unlock()

	for mask, p := range k.releases {
		p.timer.Stop()
		p.pins.Release(mask)
	}

	k.releases = make(map[uint8]*pendingRelease)
}

// Run reads key strokes from r until the context is done, r is exhausted or
// q is typed. A typed q returns ErrQuit.
func (k *Keypad) Run(ctx context.Context, r io.Reader) error {
	defer k.ReleaseAll()

	buf := make([]byte, 1)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, err := r.Read(buf)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("reading keypad: %w", err)
		}

		if n == 0 {
			continue
		}

		if buf[0] == 'q' || buf[0] == 'Q' {
			return ErrQuit
		}

		log.Debug().Str("key", string(buf[0])).Msg("key stroke")
		k.Stroke(buf[0])
	}
}

// Terminal is a terminal opened in cbreak mode, so that every key stroke is
// delivered without waiting for a newline.
type Terminal struct {
	t *term.Term
}

// OpenTerminal opens the named terminal device, usually /dev/tty.
func OpenTerminal(name string) (*Terminal, error) {
	t, err := term.Open(name, term.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("opening terminal %s: %w", name, err)
	}

	return &Terminal{t: t}, nil
}

// Read reads raw key strokes.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.t.Read(p)
}

// Close restores the terminal mode and closes the device.
func (t *Terminal) Close() error {
	if err := t.t.Restore(); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}

	return t.t.Close()
}
