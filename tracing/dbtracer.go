package tracing

import (
	"sync"

	"github.com/sarchlab/simon/datarecording"
)

// Tables written by the DBTracer.
const (
	TransitionTable = "simon_transitions"
	GameTable       = "simon_games"
)

// TransitionEntry is a row of the transition table.
type TransitionEntry struct {
	GameID  string
	Tick    uint64
	Time    float64
	From    string
	To      string
	Round   int
	Index   int
	Mistake bool
	Lights  int
}

// GameEntry is a row of the game table.
type GameEntry struct {
	ID        string
	StartTick uint64
	EndTick   uint64
	StartTime float64
	EndTime   float64
	Round     int
	Won       bool
}

// DBTracer stores transitions and games with a data recorder.
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder
}

// NewDBTracer creates the tables on the backend.
func NewDBTracer(backend datarecording.DataRecorder) *DBTracer {
	backend.CreateTable(TransitionTable, TransitionEntry{})
	backend.CreateTable(GameTable, GameEntry{})

	return &DBTracer{backend: backend}
}

// Transition records a transition.
func (t *DBTracer) Transition(tr Transition) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lights := -1
	if tr.Output.Drive {
		lights = int(tr.Output.Lights)
	}

	t.backend.InsertData(TransitionTable, TransitionEntry{
		GameID:  tr.GameID,
		Tick:    tr.Tick,
		Time:    float64(tr.Time),
		From:    tr.From.String(),
		To:      tr.To.String(),
		Round:   tr.Data.Round,
		Index:   tr.Data.Index,
		Mistake: tr.Data.Mistake,
		Lights:  lights,
	})
}

// StartGame does nothing. Games are recorded when they end.
func (t *DBTracer) StartGame(Game) {}

// EndGame records a finished game.
func (t *DBTracer) EndGame(g Game) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(GameTable, GameEntry{
		ID:        g.ID,
		StartTick: g.StartTick,
		EndTick:   g.EndTick,
		StartTime: float64(g.StartTime),
		EndTime:   float64(g.EndTime),
		Round:     g.Round,
		Won:       g.Won,
	})
}

// Flush writes the buffered rows.
func (t *DBTracer) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Flush()
}
