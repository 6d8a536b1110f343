package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/simon/board"
	"github.com/sarchlab/simon/datarecording"
	"github.com/sarchlab/simon/sim"
	"github.com/sarchlab/simon/tracing"
)

// recording writes the transitions and games of a board to a sqlite file.
type recording struct {
	recorder datarecording.DataRecorder
	tracer   *tracing.DBTracer
	session  *datarecording.SessionRecorder
}

func startRecording(
	path string,
	b *board.Board,
	timeTeller sim.TimeTeller,
	c gameConfig,
) (*recording, error) {
	if !strings.HasSuffix(path, datarecording.FileExt) {
		path += datarecording.FileExt
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("recording %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking recording: %w", err)
	}

	r := &recording{recorder: datarecording.New(path)}
	r.tracer = tracing.NewDBTracer(r.recorder)
	tracing.CollectTrace(b.Game, timeTeller, r.tracer)

	r.session = datarecording.NewSessionRecorder(r.recorder)
	r.session.Start()
	r.session.Set("Seed", strconv.FormatInt(c.seed, 10))
	r.session.Set("Period", c.period.String())
	r.session.Set("Policy", c.policy.String())

	return r, nil
}

func (r *recording) finish() error {
	r.session.End()
	r.tracer.Flush()

	return r.recorder.Close()
}
