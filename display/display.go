// Package display provides the character display that the game prints its
// status on.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Geometry of the character LCD.
const (
	Rows    = 2
	Columns = 16
)

// A Display shows short status strings.
type Display interface {
	// DisplayString clears the display and writes text on the given line.
	// Line 1 is the top row.
	DisplayString(line int, text string)
}

// LCD is an in-memory two-row character display.
type LCD struct {
	lock   sync.Mutex
	rows   [Rows]string
	writes int
}

// NewLCD creates a blank LCD.
func NewLCD() *LCD {
	return &LCD{}
}

// DisplayString clears the LCD and writes text on line, clipped to the row
// width. Lines out of range leave the display blank.
func (d *LCD) DisplayString(line int, text string) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.rows = [Rows]string{}
	d.writes++

	if line < 1 || line > Rows {
		return
	}

	d.rows[line-1] = clip(text)
}

// Lines returns the content of every row.
func (d *LCD) Lines() [Rows]string {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.rows
}

// Text returns the trimmed content of the top row.
func (d *LCD) Text() string {
	return strings.TrimSpace(d.Lines()[0])
}

// Writes returns the number of DisplayString calls.
func (d *LCD) Writes() int {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.writes
}

func clip(text string) string {
	r := []rune(text)
	if len(r) > Columns {
		r = r[:Columns]
	}

	return string(r)
}

// Terminal prints every displayed string on a writer, one per line.
type Terminal struct {
	lock sync.Mutex
	w    io.Writer
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// DisplayString prints text framed like an LCD row.
func (t *Terminal) DisplayString(line int, text string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	fmt.Fprintf(t.w, "[%d|%-*s]\n", line, Columns, clip(text))
}

// Tee forwards every string to all of its displays.
type Tee []Display

// DisplayString shows text on every display.
func (t Tee) DisplayString(line int, text string) {
	for _, d := range t {
		d.DisplayString(line, text)
	}
}
