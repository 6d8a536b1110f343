package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/simon/datarecording"
	"github.com/sarchlab/simon/tracing"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <recording>",
	Short: "Summarize a recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listGames, _ := cmd.Flags().GetBool("games")

		return report(cmd, args[0], listGames)
	},
}

func init() {
	reportCmd.Flags().Bool("games", false, "list every game")
	rootCmd.AddCommand(reportCmd)
}

func report(cmd *cobra.Command, path string, listGames bool) error {
	reader, err := datarecording.NewReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := tracing.Summarize(ctx, reader)
	if err != nil {
		return err
	}

	printSummary(out, s)

	if !listGames {
		return nil
	}

	games, err := tracing.Games(ctx, reader)
	if err != nil {
		return err
	}

	printGames(out, games)

	return nil
}

func printSummary(w io.Writer, s tracing.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "games\t%d\n", s.Games)
	fmt.Fprintf(tw, "wins\t%d\n", s.Wins)
	fmt.Fprintf(tw, "losses\t%d\n", s.Losses)
	fmt.Fprintf(tw, "best round\t%d\n", s.BestRound)
	fmt.Fprintf(tw, "transitions\t%d\n", s.Transitions)
	fmt.Fprintf(tw, "mean ticks\t%.1f\n", s.MeanTicks)
}

func printGames(w io.Writer, games []tracing.GameEntry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tSTART\tEND\tROUND\tRESULT")

	for _, g := range games {
		result := "lost"
		if g.Won {
			result = "won"
		}

		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%d\t%s\n",
			g.ID, g.StartTime, g.EndTime, g.Round, result)
	}
}
