package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sarchlab/simon/sim"
	"github.com/sarchlab/simon/simon"
	"github.com/sarchlab/simon/timer"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simon",
	Short: "Simon is a memory game that runs on a tick-driven controller.",
	Long: `Simon shows a growing pattern on four lights and asks the player to ` +
		`repeat it on four buttons. The game can be played on a terminal or ` +
		`simulated in virtual time with scripted or automatic players.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		useIDGenerator(cmd)
		return setupLogging(cmd)
	},
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("log-level", "info",
		"log level (trace, debug, info, warn, error); env SIMON_LOG_LEVEL")
}

// uniqueIDs tells if the command needs IDs that stay unique across runs.
// Live games get them. Simulations keep sequential IDs so that two runs with
// the same seed produce the same events.
func uniqueIDs(cmd *cobra.Command) bool {
	return cmd.Name() == playCmd.Name()
}

func useIDGenerator(cmd *cobra.Command) {
	if uniqueIDs(cmd) {
		sim.UseGloballyUniqueIDGenerator()
		return
	}

	sim.UseSequentialIDGenerator()
}

func setupLogging(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(flagOrEnv(cmd, "log-level", "SIMON_LOG_LEVEL"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		TimeFormat: time.TimeOnly,
	})

	return nil
}

// flagOrEnv returns the flag value when it is set on the command line, then
// the environment variable, then the flag default.
func flagOrEnv(cmd *cobra.Command, name, env string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		panic(fmt.Sprintf("flag %s is not defined", name))
	}

	if f.Changed {
		return f.Value.String()
	}

	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}

	return f.DefValue
}

// gameConfig holds the settings shared by the commands that run a game.
type gameConfig struct {
	period time.Duration
	seed   int64
	policy simon.RoundPolicy
	record string
}

func addGameFlags(cmd *cobra.Command, defaultSeed int64) {
	cmd.Flags().Duration("period", timer.DefaultPeriod,
		"tick period; env SIMON_PERIOD")
	cmd.Flags().Int64("seed", defaultSeed,
		"seed of the pattern, 0 picks one from the clock; env SIMON_SEED")
	cmd.Flags().String("policy", "advance",
		"what happens after a replayed round (advance, hold)")
	cmd.Flags().String("record", "",
		"record transitions and games to this sqlite file; env SIMON_RECORD")
}

func loadGameConfig(cmd *cobra.Command) (gameConfig, error) {
	var (
		c   gameConfig
		err error
	)

	c.period, err = time.ParseDuration(flagOrEnv(cmd, "period", "SIMON_PERIOD"))
	if err != nil {
		return c, fmt.Errorf("invalid period: %w", err)
	}

	if c.period <= 0 {
		return c, fmt.Errorf("invalid period %s", c.period)
	}

	c.seed, err = strconv.ParseInt(flagOrEnv(cmd, "seed", "SIMON_SEED"), 10, 64)
	if err != nil {
		return c, fmt.Errorf("invalid seed: %w", err)
	}

	if c.seed == 0 {
		c.seed = time.Now().UnixNano()
	}

	policy, _ := cmd.Flags().GetString("policy")

	c.policy, err = simon.ParseRoundPolicy(policy)
	if err != nil {
		return c, err
	}

	c.record = flagOrEnv(cmd, "record", "SIMON_RECORD")

	return c, nil
}
