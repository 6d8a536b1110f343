package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sarchlab/simon/board"
	"github.com/sarchlab/simon/display"
	"github.com/sarchlab/simon/script"
	"github.com/sarchlab/simon/sim"
	"github.com/sarchlab/simon/simon"
	"github.com/spf13/cobra"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate games in virtual time",
	Long: `Simulate games in virtual time. The buttons are driven by a YAML ` +
		`script (--script) or by a player that repeats the pattern ` +
		`(--autoplay).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadGameConfig(cmd)
		if err != nil {
			return err
		}

		o, err := loadSimOptions(cmd)
		if err != nil {
			return err
		}

		return simulate(cmd, c, o)
	},
}

func init() {
	addGameFlags(simCmd, simon.DefaultSeed)
	addSimFlags(simCmd)
	rootCmd.AddCommand(simCmd)
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().String("script", "", "YAML script that drives the pins")
	cmd.Flags().Bool("autoplay", false, "let a player repeat the pattern")
	cmd.Flags().Int("games", 1,
		"number of games the player plays, 0 plays until --max-ticks")
	cmd.Flags().Int("mistake-at", 0,
		"round in which the player presses a wrong button, 0 never")
	cmd.Flags().Uint64("max-ticks", 100000, "ticks before giving up")
	cmd.Flags().Bool("show", false, "print the display as it changes")
}

type simOptions struct {
	script    string
	autoplay  bool
	games     int
	mistakeAt int
	maxTicks  uint64
	show      bool
}

func loadSimOptions(cmd *cobra.Command) (simOptions, error) {
	var o simOptions

	flags := cmd.Flags()
	o.script, _ = flags.GetString("script")
	o.autoplay, _ = flags.GetBool("autoplay")
	o.games, _ = flags.GetInt("games")
	o.mistakeAt, _ = flags.GetInt("mistake-at")
	o.maxTicks, _ = flags.GetUint64("max-ticks")
	o.show, _ = flags.GetBool("show")

	switch {
	case o.script != "" && o.autoplay:
		return o, errors.New("--script and --autoplay cannot be combined")
	case o.games < 0:
		return o, fmt.Errorf("invalid number of games %d", o.games)
	case o.maxTicks == 0:
		return o, errors.New("--max-ticks must be positive")
	}

	return o, nil
}

func simulate(cmd *cobra.Command, c gameConfig, o simOptions) error {
	out := cmd.OutOrStdout()

	builder := board.MakeBuilder().
		WithEngine(sim.NewSerialEngine()).
		WithPeriod(c.period).
		WithSeed(c.seed).
		WithRoundPolicy(c.policy).
		WithMaxSteps(o.maxTicks)
	if o.show {
		builder = builder.WithDisplay(display.NewTerminal(out))
	}

	b := builder.Build("Simon")
	runner := b.Driver.(*board.SimRunner)

	if o.show {
		printLights(out, b.Lights)
	}

	if c.record != "" {
		rec, err := startRecording(c.record, b, b.Engine, c)
		if err != nil {
			return err
		}

		defer func() {
			if err := rec.finish(); err != nil {
				log.Error().Err(err).Msg("closing recording")
			}
		}()
	}

	var (
		player *script.Player
		auto   *script.AutoPlayer
	)

	switch {
	case o.script != "":
		s, err := script.Load(o.script)
		if err != nil {
			return err
		}

		player = script.NewPlayer(s, b.Buttons, b.Start)
		b.Game.AcceptHook(player)
		b.Game.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
			if ctx.Pos == simon.HookPosAfterStep && player.Done() {
				runner.Stop()
			}
		}))
	case o.autoplay:
		auto = script.NewAutoPlayer(b.Buttons, b.Start).
			WithMistakeAt(o.mistakeAt).
			WithGames(o.games)
		auto.OnGameOver(func(won bool) {
			log.Info().Bool("won", won).Int("game", auto.Games()).Msg("game over")

			if o.games > 0 && auto.Games() >= o.games {
				runner.Stop()
			}
		})
		b.Game.AcceptHook(auto)
	}

	if err := b.Run(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(out, "state %s, round %d, %d ticks, %.3fs\n",
		b.Game.State(), b.Game.Data().Round, b.Game.Ticks(), b.Now())

	if auto != nil {
		fmt.Fprintf(out, "games %d, wins %d, losses %d\n",
			auto.Games(), auto.Wins(), auto.Losses())
	}

	if player != nil {
		return player.Err()
	}

	return nil
}
