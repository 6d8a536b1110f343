package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/sarchlab/simon/board"
	"github.com/sarchlab/simon/display"
	"github.com/sarchlab/simon/monitoring"
	"github.com/sarchlab/simon/port"
	"github.com/sarchlab/simon/tracing"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game on the terminal",
	Long: `Play the game on the terminal. Keys 1 to 4 are the buttons, space ` +
		`is start and q quits. The display and the lights are printed as ` +
		`they change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadGameConfig(cmd)
		if err != nil {
			return err
		}

		return play(cmd, c)
	},
}

func init() {
	addGameFlags(playCmd, 0)
	playCmd.Flags().String("tty", "/dev/tty", "terminal to read keys from")
	playCmd.Flags().Bool("monitor", false, "serve the game monitor over HTTP")
	playCmd.Flags().String("monitor-port", "0",
		"port of the monitor, 0 picks a free one; env SIMON_MONITOR_PORT")
	playCmd.Flags().Bool("open-browser", false,
		"open the monitor in a browser, implies --monitor")
	rootCmd.AddCommand(playCmd)
}

func play(cmd *cobra.Command, c gameConfig) error {
	out := cmd.OutOrStdout()

	b := board.MakeBuilder().
		WithPeriod(c.period).
		WithSeed(c.seed).
		WithRoundPolicy(c.policy).
		WithDisplay(display.NewTerminal(out)).
		Build("Simon")
	printLights(out, b.Lights)

	log.Info().Int64("seed", c.seed).Dur("period", c.period).Msg("game ready")

	if c.record != "" {
		rec, err := startRecording(c.record, b, tracing.NewWallClock(), c)
		if err != nil {
			return err
		}

		defer func() {
			if err := rec.finish(); err != nil {
				log.Error().Err(err).Msg("closing recording")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	shutdown, err := startMonitor(cmd, b)
	if err != nil {
		return err
	}
	defer shutdown()

	tty, _ := cmd.Flags().GetString("tty")

	terminal, err := port.OpenTerminal(tty)
	if err != nil {
		return err
	}
	defer terminal.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keypad := port.NewKeypad(b.Buttons, b.Start, port.DefaultHold)

	go func() {
		defer cancel()

		err := keypad.Run(ctx, terminal)
		if err != nil && !errors.Is(err, port.ErrQuit) {
			log.Error().Err(err).Msg("keypad stopped")
		}
	}()

	return b.Run(ctx)
}

func printLights(w io.Writer, lights *port.Latch) {
	lights.Observe(func(_, v uint8) {
		fmt.Fprintf(w, "lights %04b\n", v)
	})
}

func startMonitor(cmd *cobra.Command, b *board.Board) (func(), error) {
	enabled, _ := cmd.Flags().GetBool("monitor")
	openBrowser, _ := cmd.Flags().GetBool("open-browser")

	if !enabled && !openBrowser {
		return func() {}, nil
	}

	portNumber, err := strconv.Atoi(
		flagOrEnv(cmd, "monitor-port", "SIMON_MONITOR_PORT"))
	if err != nil {
		return nil, fmt.Errorf("invalid monitor port: %w", err)
	}

	counter := tracing.NewCountTracer()
	tracing.CollectTrace(b.Game, tracing.NewWallClock(), counter)

	m := monitoring.NewMonitor().WithPortNumber(portNumber)
	m.RegisterBoard(b)
	m.RegisterCounter(counter)

	url, err := m.StartServer()
	if err != nil {
		return nil, err
	}

	if openBrowser {
		if err := browser.OpenURL(url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("cannot open browser")
		}
	}

	return func() {
		if err := m.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("stopping monitor")
		}
	}, nil
}
