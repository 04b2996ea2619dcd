// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package periph provides GPIO lines backed by periph.io pins.
//
// On Linux the periph host drivers expose lines through the GPIO character
// device, so this works on any board with a GPIO chip, not just the
// Raspberry Pi.
package periph

import (
	"fmt"

	"github.com/warthog618/joypanel/gpio"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Init loads the periph host drivers.
// It must be called before ByName.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("%w: %v", gpio.ErrUnavailable, err)
	}
	return nil
}

// Line adapts a periph pin to a gpio.Line.
type Line struct {
	p      pgpio.PinIO
	out    bool
	shadow pgpio.Level
}

// New wraps the periph pin.
func New(p pgpio.PinIO) *Line {
	return &Line{p: p}
}

// ByName returns the line with the given name, e.g. "GPIO23" or "23".
func ByName(name string) (*Line, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: no line named %q", gpio.ErrUnavailable, name)
	}
	return New(p), nil
}

// Name returns the name of the underlying pin.
func (l *Line) Name() string {
	return l.p.Name()
}

// Input sets the line to input, leaving the pull unchanged.
func (l *Line) Input() error {
	if err := l.p.In(pgpio.PullNoChange, pgpio.NoEdge); err != nil {
		return err
	}
	l.out = false
	return nil
}

// Output sets the line to output at the last written level.
func (l *Line) Output() error {
	if err := l.p.Out(l.shadow); err != nil {
		return err
	}
	l.out = true
	return nil
}

// Write sets the level of the line.
//
// periph only has a combined direction and level setting, so a write to a
// line in input mode is recorded and applied when it is next switched to
// output.
func (l *Line) Write(v gpio.Level) error {
	l.shadow = pgpio.Level(v)
	if !l.out {
		return nil
	}
	return l.p.Out(l.shadow)
}

// Read returns the level of the line.
func (l *Line) Read() gpio.Level {
	return gpio.Level(l.p.Read())
}
