package datarecording

import (
	"os"
	"strings"
	"time"
)

// SessionTable is the table that describes the recorded session.
const SessionTable = "session_info"

const timeLayout = "2006-01-02 15:04:05.000000000"

// SessionInfo is one property of a recorded session.
type SessionInfo struct {
	Property string
	Value    string
}

// SessionRecorder records how and when a session ran.
type SessionRecorder struct {
	recorder DataRecorder
	entries  []SessionInfo
}

// NewSessionRecorder creates the session table on the recorder.
func NewSessionRecorder(recorder DataRecorder) *SessionRecorder {
	recorder.CreateTable(SessionTable, SessionInfo{})

	return &SessionRecorder{recorder: recorder}
}

// Start notes the start time and the command line.
func (s *SessionRecorder) Start() {
	s.Set("Start Time", time.Now().Format(timeLayout))
	s.Set("Command", strings.Join(os.Args, " "))
}

// Set notes a property of the session.
func (s *SessionRecorder) Set(property, value string) {
	s.entries = append(s.entries, SessionInfo{property, value})
}

// End writes the noted properties along with the end time.
func (s *SessionRecorder) End() {
	s.Set("End Time", time.Now().Format(timeLayout))

	for _, entry := range s.entries {
		s.recorder.InsertData(SessionTable, entry)
	}

	s.entries = nil

	s.recorder.Flush()
}
