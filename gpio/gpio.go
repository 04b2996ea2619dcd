// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package gpio provides the line abstraction used by the joypanel device
// drivers.
//
// Drivers never acquire lines themselves. They are handed lines that
// implement Line, which are provided by a backend such as gpio/rpi (memory
// mapped BCM registers) or gpio/periph (any periph.io GPIO pin), and wrap
// them in OutputPin or IOPin depending on how the line is used.
//
// Example of use:
//
//	cs, _ := gpio.NewOutputPin(line, gpio.High)
//	cs.Low()
//	...
//	cs.High()
package gpio

import (
	"errors"
	"fmt"
)

// Level represents the high (true) or low (false) level of a line.
type Level bool

// Mode defines the IO mode of a line.
type Mode int

// Level of line, High / Low
const (
	Low  Level = false
	High Level = true
)

// Line mode, a line can be set in Input or Output mode
const (
	Input Mode = iota
	Output
)

func (m Mode) String() string {
	switch m {
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// LevelOf converts a bit to a Level.
// Any non-zero value is High.
func LevelOf(b uint8) Level {
	return b != 0
}

// Bit returns the level as 0 or 1.
func (l Level) Bit() uint8 {
	if l {
		return 1
	}
	return 0
}

// Line is a single digital line provided by a backend.
//
// Read returns the level seen on the line. Backends are not required to
// police the mode, that is left to IOPin.
type Line interface {
	Input() error
	Output() error
	Write(l Level) error
	Read() Level
}

var (
	// ErrUnavailable indicates a line or device could not be acquired.
	ErrUnavailable = errors.New("device unavailable")

	// ErrWrongMode indicates a write to a line in input mode or a read from a
	// line in output mode.
	ErrWrongMode = errors.New("wrong mode")
)
