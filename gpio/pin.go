// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package gpio

import "fmt"

// OutputPin is a line that is only ever driven.
type OutputPin struct {
	l      Line
	shadow Level
}

// NewOutputPin sets the line to the initial level and then switches it to
// output, so the line never glitches to the opposite level.
func NewOutputPin(l Line, initial Level) (*OutputPin, error) {
	if l == nil {
		return nil, ErrUnavailable
	}
	if err := l.Write(initial); err != nil {
		return nil, err
	}
	if err := l.Output(); err != nil {
		return nil, err
	}
	return &OutputPin{l: l, shadow: initial}, nil
}

// High sets the pin High.
func (p *OutputPin) High() error {
	return p.Write(High)
}

// Low sets the pin Low.
func (p *OutputPin) Low() error {
	return p.Write(Low)
}

// Write sets the pin level.
func (p *OutputPin) Write(l Level) error {
	if err := p.l.Write(l); err != nil {
		return err
	}
	p.shadow = l
	return nil
}

// Shadow returns the value of the last write.
func (p *OutputPin) Shadow() Level {
	return p.shadow
}

// Release returns the line to input mode.
func (p *OutputPin) Release() error {
	return p.l.Input()
}

// IOPin is a line that switches between driving and sensing.
//
// The mode is tracked so that writes are rejected while sensing and reads are
// rejected while driving.
type IOPin struct {
	l    Line
	mode Mode
}

// NewIOPin creates an IOPin in the given mode.
// In Output mode the line is set to the initial level before being driven.
func NewIOPin(l Line, mode Mode, initial Level) (*IOPin, error) {
	if l == nil {
		return nil, ErrUnavailable
	}
	p := &IOPin{l: l}
	switch mode {
	case Output:
		if err := l.Write(initial); err != nil {
			return nil, err
		}
		if err := l.Output(); err != nil {
			return nil, err
		}
	case Input:
		if err := l.Input(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported %s", mode)
	}
	p.mode = mode
	return p, nil
}

// Mode returns the current mode of the pin.
func (p *IOPin) Mode() Mode {
	return p.mode
}

// Output switches the pin to Output mode.
func (p *IOPin) Output() error {
	if err := p.l.Output(); err != nil {
		return err
	}
	p.mode = Output
	return nil
}

// Input switches the pin to Input mode.
func (p *IOPin) Input() error {
	if err := p.l.Input(); err != nil {
		return err
	}
	p.mode = Input
	return nil
}

// Write sets the pin level.
// The pin must be in Output mode.
func (p *IOPin) Write(l Level) error {
	if p.mode != Output {
		return fmt.Errorf("write: %w", ErrWrongMode)
	}
	return p.l.Write(l)
}

// High sets the pin High.
func (p *IOPin) High() error {
	return p.Write(High)
}

// Low sets the pin Low.
func (p *IOPin) Low() error {
	return p.Write(Low)
}

// Read returns the level of the pin.
// The pin must be in Input mode.
func (p *IOPin) Read() (Level, error) {
	if p.mode != Input {
		return Low, fmt.Errorf("read: %w", ErrWrongMode)
	}
	return p.l.Read(), nil
}
