// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package linetest provides in-memory lines for testing drivers.
//
// All lines created against the same Trace record their operations into
// it, in order, so tests can check the relative order of operations across
// lines.
package linetest

import (
	"fmt"
	"sync"

	"github.com/warthog618/joypanel/gpio"
)

// Op identifies the operation recorded in an Event.
type Op int

// Operations recorded by a Line.
const (
	OpInput Op = iota
	OpOutput
	OpWrite
	OpRead
)

func (o Op) String() string {
	switch o {
	case OpInput:
		return "input"
	case OpOutput:
		return "output"
	case OpWrite:
		return "write"
	case OpRead:
		return "read"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Event is a single operation on a Line.
type Event struct {
	Line string
	Op   Op
	// Level written or read. Unused for mode changes.
	Level gpio.Level
	// Mode of the line when the operation was performed.
	// For mode changes this is the mode before the change.
	Mode gpio.Mode
}

func (e Event) String() string {
	switch e.Op {
	case OpWrite, OpRead:
		return fmt.Sprintf("%s %s %d", e.Line, e.Op, e.Level.Bit())
	}
	return fmt.Sprintf("%s %s", e.Line, e.Op)
}

// Trace collects the events of a set of lines.
type Trace struct {
	mu     sync.Mutex
	events []Event
}

// Events returns a copy of the events recorded so far.
func (t *Trace) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Event(nil), t.events...)
}

// Reset discards the recorded events.
func (t *Trace) Reset() {
	t.mu.Lock()
	t.events = nil
	t.mu.Unlock()
}

func (t *Trace) add(e Event) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()
}

// Line is a fake gpio.Line.
type Line struct {
	name  string
	trace *Trace

	mu    sync.Mutex
	mode  gpio.Mode
	level gpio.Level
	src   func() gpio.Level
	err   error
}

// New creates a Line, initially an input reading Low.
// The trace may be nil.
func New(name string, t *Trace) *Line {
	return &Line{name: name, trace: t}
}

// Name returns the name used in recorded events.
func (l *Line) Name() string {
	return l.name
}

// SetSource sets the function providing levels for Read.
// When nil Read returns the last level written.
func (l *Line) SetSource(src func() gpio.Level) {
	l.mu.Lock()
	l.src = src
	l.mu.Unlock()
}

// SetError sets the error returned by subsequent Input, Output and Write
// calls. A nil error restores normal operation.
func (l *Line) SetError(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

// Mode returns the current mode of the line.
func (l *Line) Mode() gpio.Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// Level returns the last level written to, or read from, the line.
func (l *Line) Level() gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Input sets the line to input mode.
func (l *Line) Input() error {
	return l.setMode(OpInput, gpio.Input)
}

// Output sets the line to output mode.
func (l *Line) Output() error {
	return l.setMode(OpOutput, gpio.Output)
}

func (l *Line) setMode(op Op, m gpio.Mode) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.trace.add(Event{Line: l.name, Op: op, Mode: l.mode})
	l.mode = m
	return nil
}

// Write sets the level of the line.
func (l *Line) Write(v gpio.Level) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.trace.add(Event{Line: l.name, Op: OpWrite, Level: v, Mode: l.mode})
	l.level = v
	return nil
}

// Read returns the level of the line.
func (l *Line) Read() gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.src != nil {
		l.level = l.src()
	}
	l.trace.add(Event{Line: l.name, Op: OpRead, Level: l.level, Mode: l.mode})
	return l.level
}

// Sequence returns a source that returns the levels in turn, and Low once
// they are exhausted.
func Sequence(levels ...gpio.Level) func() gpio.Level {
	var mu sync.Mutex
	i := 0
	return func() gpio.Level {
		mu.Lock()
		defer mu.Unlock()
		if i >= len(levels) {
			return gpio.Low
		}
		l := levels[i]
		i++
		return l
	}
}
