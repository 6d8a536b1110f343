package script

import (
	"github.com/rs/zerolog/log"
	"github.com/sarchlab/simon/port"
	"github.com/sarchlab/simon/sim"
	"github.com/sarchlab/simon/simon"
)

// AutoPlayer plays the game like a player with a perfect memory. It notes
// every light that blinks during playback and repeats the pattern on the
// buttons. It can be told to slip on a given round.
type AutoPlayer struct {
	buttons *port.Pins
	start   *port.Pins

	mistakeRound int
	maxGames     int
	onGameOver   func(won bool)

	memory []simon.Symbol
	cursor int

	games  int
	wins   int
	losses int
}

// NewAutoPlayer creates an AutoPlayer that plays a single game.
func NewAutoPlayer(buttons, start *port.Pins) *AutoPlayer {
	return &AutoPlayer{
		buttons:  buttons,
		start:    start,
		maxGames: 1,
	}
}

// WithMistakeAt makes the player press a wrong button first in the given
// round. Zero means no mistake.
func (a *AutoPlayer) WithMistakeAt(round int) *AutoPlayer {
	a.mistakeRound = round
	return a
}

// WithGames sets how many games to play. Zero means forever.
func (a *AutoPlayer) WithGames(n int) *AutoPlayer {
	a.maxGames = n
	return a
}

// OnGameOver registers a function that is called at the end of every game.
func (a *AutoPlayer) OnGameOver(f func(won bool)) *AutoPlayer {
	a.onGameOver = f
	return a
}

// Func is the hook entry point.
func (a *AutoPlayer) Func(ctx sim.HookCtx) {
	info, ok := ctx.Item.(simon.StepInfo)
	if !ok {
		return
	}

	switch ctx.Pos {
	case simon.HookPosBeforeStep:
		a.press(info.From)
	case simon.HookPosAfterStep:
		a.watch(info)
	}
}

func (a *AutoPlayer) press(state simon.State) {
	a.buttons.Release(port.ButtonMask)
	a.start.Release(port.StartMask)

	switch state {
	case simon.StateWelcome:
		if a.wantsMore() {
			a.start.Press(port.StartMask)
		}

	case simon.StateWin, simon.StateLose:
		if a.wantsMore() {
			a.start.Press(port.StartMask)
		}

	case simon.StateWaitForInput:
		if a.cursor < len(a.memory) {
			a.buttons.Press(a.symbol().Bit())
		}
	}
}

func (a *AutoPlayer) symbol() simon.Symbol {
	s := a.memory[a.cursor]
	if a.cursor == 0 && len(a.memory) == a.mistakeRound {
		return (s + 1) % simon.NumSymbols
	}

	return s
}

func (a *AutoPlayer) wantsMore() bool {
	return a.maxGames == 0 || a.games < a.maxGames
}

func (a *AutoPlayer) watch(info simon.StepInfo) {
	switch {
	case info.To == simon.StateBlinkOn:
		if info.From != simon.StateBlinkOff {
			a.memory = a.memory[:0]
		}

		if s, ok := simon.DecodeOneHot(info.Output.Lights); ok {
			a.memory = append(a.memory, s)
		}

	case info.From == simon.StateBlinkOff && info.To == simon.StateWaitForInput:
		a.cursor = 0

	case info.From == simon.StateCheckInput && info.To == simon.StateWaitForInput:
		a.cursor++

	case info.From == info.To:
		// Waiting in Win or Lose for start.

	case info.To == simon.StateWin:
		a.gameOver(true)

	case info.To == simon.StateLose:
		a.gameOver(false)
	}
}

func (a *AutoPlayer) gameOver(won bool) {
	a.games++
	if won {
		a.wins++
	} else {
		a.losses++
	}

	log.Info().
		Int("game", a.games).
		Bool("won", won).
		Int("round", len(a.memory)).
		Msg("game over")

	if a.onGameOver != nil {
		a.onGameOver(won)
	}
}

// Games returns the number of finished games.
func (a *AutoPlayer) Games() int {
	return a.games
}

// Wins returns the number of won games.
func (a *AutoPlayer) Wins() int {
	return a.wins
}

// Losses returns the number of lost games.
func (a *AutoPlayer) Losses() int {
	return a.losses
}
