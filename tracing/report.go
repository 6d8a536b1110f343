package tracing

import (
	"context"
	"fmt"

	"github.com/sarchlab/simon/datarecording"
)

// Summary describes the games of a recording.
type Summary struct {
	Games       int
	Wins        int
	Losses      int
	BestRound   int
	Transitions int

	// MeanTicks is the mean length of a game in ticks.
	MeanTicks float64
}

// Summarize reads the tables written by a DBTracer.
func Summarize(
	ctx context.Context,
	reader datarecording.DataReader,
) (Summary, error) {
	var s Summary

	reader.MapTable(GameTable, GameEntry{})
	reader.MapTable(TransitionTable, TransitionEntry{})

	games, _, err := reader.Query(ctx, GameTable, datarecording.QueryParams{
		OrderBy: "StartTick",
	})
	if err != nil {
		return s, fmt.Errorf("summarizing games: %w", err)
	}

	var ticks uint64

	for _, row := range games {
		g := row.(*GameEntry)

		s.Games++
		if g.Won {
			s.Wins++
		} else {
			s.Losses++
		}

		if g.Round > s.BestRound {
			s.BestRound = g.Round
		}

		ticks += g.EndTick - g.StartTick
	}

	if s.Games > 0 {
		s.MeanTicks = float64(ticks) / float64(s.Games)
	}

	_, s.Transitions, err = reader.Query(ctx, TransitionTable,
		datarecording.QueryParams{Limit: 1})
	if err != nil {
		return s, fmt.Errorf("summarizing transitions: %w", err)
	}

	return s, nil
}

// Games returns the recorded games in the order they started.
func Games(
	ctx context.Context,
	reader datarecording.DataReader,
) ([]GameEntry, error) {
	reader.MapTable(GameTable, GameEntry{})

	rows, _, err := reader.Query(ctx, GameTable, datarecording.QueryParams{
		OrderBy: "StartTick",
	})
	if err != nil {
		return nil, fmt.Errorf("reading games: %w", err)
	}

	games := make([]GameEntry, 0, len(rows))
	for _, row := range rows {
		games = append(games, *row.(*GameEntry))
	}

	return games, nil
}
