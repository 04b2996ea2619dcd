// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package panel polls the joystick and range sensor and reports the readings
// on a character display.
package panel

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Sampler reads an ADC channel.
type Sampler interface {
	Read(ch int) uint8
}

// Display is a character display.
type Display interface {
	Clear() error
	Write(col, row int, data []byte) error
}

// Ranger measures distance.
// ok is false if nothing was measured.
type Ranger interface {
	MeasureDistance() (d float64, ok bool, err error)
}

// NoRanger is a Ranger that never measures anything.
type NoRanger struct{}

// MeasureDistance always reports nothing measured.
func (NoRanger) MeasureDistance() (float64, bool, error) {
	return 0, false, nil
}

// Channels sampled for the joystick axes.
const (
	ChannelX = 0
	ChannelY = 1
)

// NothingMeasured is displayed when the ranger has no reading.
const NothingMeasured = "Nothing measured"

// Panel renders joystick and ranger readings on a display.
type Panel struct {
	adc      Sampler
	display  Display
	ranger   Ranger
	interval time.Duration
	out      io.Writer
}

type options struct {
	interval time.Duration
	out      io.Writer
}

// Option modifies the construction of a Panel.
type Option func(*options)

// WithInterval sets the time between updates.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// WithOutput sets where readings are logged.
// A nil writer disables logging.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// New creates a Panel.
// A nil ranger is treated as NoRanger.
func New(adc Sampler, display Display, ranger Ranger, opts ...Option) *Panel {
	o := options{
		interval: 50 * time.Millisecond,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.out == nil {
		o.out = io.Discard
	}
	if ranger == nil {
		ranger = NoRanger{}
	}
	return &Panel{
		adc:      adc,
		display:  display,
		ranger:   ranger,
		interval: o.interval,
		out:      o.out,
	}
}

// Start shows the greeting.
func (p *Panel) Start() error {
	if err := p.display.Write(0, 0, []byte("Hello")); err != nil {
		return err
	}
	return p.display.Write(0, 1, []byte("World"))
}

// Reading is the result of a single poll.
type Reading struct {
	X, Y     uint8
	Distance float64
	// Ranged is false if the ranger measured nothing.
	Ranged bool
}

// Joystick returns the joystick line displayed for the reading.
func (r Reading) Joystick() string {
	return fmt.Sprintf("%d:%d", r.X, r.Y)
}

// Range returns the range line displayed for the reading.
func (r Reading) Range() string {
	if !r.Ranged {
		return NothingMeasured
	}
	return strconv.FormatFloat(r.Distance, 'f', -1, 64)
}

// Poll reads the joystick and ranger.
func (p *Panel) Poll() (Reading, error) {
	r := Reading{
		X: p.adc.Read(ChannelX),
		Y: p.adc.Read(ChannelY),
	}
	fmt.Fprintf(p.out, "Read value: %d, %d\n", r.X, r.Y)
	d, ok, err := p.ranger.MeasureDistance()
	if err != nil {
		return r, fmt.Errorf("ranger: %w", err)
	}
	r.Distance, r.Ranged = d, ok
	return r, nil
}

// Step polls and updates the display.
func (p *Panel) Step() error {
	r, err := p.Poll()
	if err != nil {
		return err
	}
	return p.show(r)
}

func (p *Panel) show(r Reading) error {
	if err := p.display.Clear(); err != nil {
		return err
	}
	if err := p.display.Write(0, 0, []byte(r.Joystick())); err != nil {
		return err
	}
	return p.display.Write(0, 1, []byte(r.Range()))
}

// Run shows the greeting then updates the display every interval until the
// context is done or an update fails.
func (p *Panel) Run(ctx context.Context) error {
	if err := p.Start(); err != nil {
		return err
	}
	for {
		if err := p.Step(); err != nil {
			return err
		}
		select {
		case <-time.After(p.interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
