// Package monitoring serves a running game over HTTP. It shows the state of
// the game, exposes virtual buttons and can pause the game.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/sarchlab/simon/board"
	"github.com/sarchlab/simon/monitoring/web"
	"github.com/sarchlab/simon/port"
	"github.com/sarchlab/simon/sim"
	"github.com/sarchlab/simon/simon"
	"github.com/sarchlab/simon/tracing"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor turns a game board into a server that can be watched and played
// from a browser.
type Monitor struct {
	board      *board.Board
	components []sim.Component
	counter    *tracing.CountTracer
	portNumber int

	lock   sync.Mutex
	server *http.Server
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Zero picks a free port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		log.Warn().
			Int("port", portNumber).
			Msg("reserved port number, using a random port instead")

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterBoard registers the board to monitor. Its game is registered as a
// component.
func (m *Monitor) RegisterBoard(b *board.Board) {
	m.board = b
	m.RegisterComponent(b.Game)

	if c, ok := b.Driver.(sim.Component); ok {
		m.RegisterComponent(c)
	}
}

// RegisterComponent registers a component that can be inspected.
func (m *Monitor) RegisterComponent(c sim.Component) {
	m.components = append(m.components, c)
}

// RegisterCounter registers a tracer whose counts are reported.
func (m *Monitor) RegisterCounter(c *tracing.CountTracer) {
	m.counter = c
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/stats", m.stats)
	r.HandleFunc("/api/pause", m.pause)
	r.HandleFunc("/api/continue", m.continueGame)
	r.HandleFunc("/api/button/{pin}/{action:press|release}", m.button).
		Methods(http.MethodPost)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts serving in the background and returns the URL of the
// monitor.
func (m *Monitor) StartServer() (string, error) {
	if m.board == nil {
		return "", errors.New("no board registered")
	}

	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", fmt.Errorf("starting monitor: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	m.lock.Lock()
	m.server = &http.Server{
		Handler:           m.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	server := m.server
	m.lock.Unlock()

	go func() {
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("monitor stopped")
		}
	}()

	log.Info().Str("url", url).Msg("monitoring game")

	return url, nil
}

// Shutdown stops the server.
func (m *Monitor) Shutdown(ctx context.Context) error {
	m.lock.Lock()
	server := m.server
	m.server = nil
	m.lock.Unlock()

	if server == nil {
		return nil
	}

	return server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writing response")
	}
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]float64{"now": m.board.Now()})
}

type stateRsp struct {
	State   string   `json:"state"`
	Round   int      `json:"round"`
	Index   int      `json:"index"`
	Mistake bool     `json:"mistake"`
	Lights  uint8    `json:"lights"`
	LCD     []string `json:"lcd"`
	Ticks   uint64   `json:"ticks"`
	Paused  bool     `json:"paused"`
	Policy  string   `json:"policy"`
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	g := m.board.Game
	d := g.Data()
	lines := m.board.LCD.Lines()

	writeJSON(w, stateRsp{
		State:   g.State().String(),
		Round:   d.Round,
		Index:   d.Index,
		Mistake: d.Mistake,
		Lights:  m.board.Lights.Read(),
		LCD:     lines[:],
		Ticks:   g.Ticks(),
		Paused:  m.board.Driver.IsPaused(),
		Policy:  g.Policy().String(),
	})
}

type statsRsp struct {
	Wins   uint64            `json:"wins"`
	Losses uint64            `json:"losses"`
	Visits map[string]uint64 `json:"visits"`
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	if m.counter == nil {
		http.Error(w, "no counter registered", http.StatusNotFound)
		return
	}

	rsp := statsRsp{Visits: make(map[string]uint64)}
	rsp.Wins, rsp.Losses = m.counter.Outcomes()

	for _, s := range simon.States() {
		rsp.Visits[s.String()] = m.counter.Visits(s)
	}

	writeJSON(w, rsp)
}

func (m *Monitor) pause(w http.ResponseWriter, _ *http.Request) {
	m.board.Driver.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueGame(w http.ResponseWriter, _ *http.Request) {
	m.board.Driver.Continue()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) button(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mask, isStart, err := port.ParsePin(vars["pin"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	pins := m.board.Buttons
	if isStart {
		pins = m.board.Start
	}

	if vars["action"] == "press" {
		pins.Press(mask)
	} else {
		pins.Release(mask)
	}

	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}

	writeJSON(w, names)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)

	if err := serializer.Serialize(w); err != nil {
		log.Error().Err(err).Str("component", name).Msg("serializing")
	}
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) sim.Component {
	for _, c := range m.components {
		if c.Name() == name {
			return c
		}
	}

	http.Error(w, "Component not found", http.StatusNotFound)

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memoryInfo, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, r *http.Request) {
	duration := time.Second
	if s := r.URL.Query().Get("ms"); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil || ms <= 0 {
			http.Error(w, "invalid duration", http.StatusBadRequest)
			return
		}

		duration = time.Duration(ms) * time.Millisecond
	}

	buf := bytes.NewBuffer(nil)
	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(duration)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, prof)
}
