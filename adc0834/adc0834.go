// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package adc0834 provides a bit bashed device driver for the ADC0834
// four channel 8-bit serial ADC.
//
// The DI and DO pins of the ADC are tied and connected to a single GPIO
// line, which the driver switches between output and input as the
// conversion progresses.
package adc0834

import (
	"errors"
	"fmt"
	"time"

	"github.com/warthog618/joypanel/gpio"
	"github.com/warthog618/joypanel/spi"
	"periph.io/x/conn/v3/physic"
)

// DefaultFrequency is the bit clock used unless overridden by WithFrequency.
const DefaultFrequency = 50 * physic.KiloHertz

// ADC0834 reads ADC values from a connected ADC0834.
type ADC0834 struct {
	*spi.SPI
	freq physic.Frequency
	// covered by Mu
	closed bool
}

type options struct {
	freq physic.Frequency
}

// Option modifies the construction of an ADC0834.
type Option func(*options)

// WithFrequency sets the bit clock frequency.
// Each clock edge is held for half the period.
func WithFrequency(f physic.Frequency) Option {
	return func(o *options) {
		o.freq = f
	}
}

// New creates an ADC0834 from the chip select, clock and data lines.
//
// The lines are owned by the ADC until it is closed. The ADC is held reset,
// with chip select high, until a read.
func New(cs, clk, dio gpio.Line, opts ...Option) (*ADC0834, error) {
	o := options{freq: DefaultFrequency}
	for _, opt := range opts {
		opt(&o)
	}
	if o.freq <= 0 {
		return nil, ErrInvalidFrequency
	}
	s, err := spi.New(o.freq.Period()/2, cs, clk, dio)
	if err != nil {
		return nil, err
	}
	return &ADC0834{SPI: s, freq: o.freq}, nil
}

// Frequency returns the bit clock frequency.
func (adc *ADC0834) Frequency() physic.Frequency {
	return adc.freq
}

// HalfPeriod returns the time each clock edge is held.
func (adc *ADC0834) HalfPeriod() time.Duration {
	return adc.Thalf
}

// Close releases the lines used to drive the ADC.
func (adc *ADC0834) Close() error {
	adc.Mu.Lock()
	if adc.closed {
		adc.Mu.Unlock()
		return ErrClosed
	}
	adc.closed = true
	adc.Mu.Unlock()
	return adc.SPI.Close()
}

// Read returns the value of a single ended channel read from the ADC.
//
// A zero is returned if the conversion could not be read reliably, so a
// zero reading is indistinguishable from a failed read. Use ReadChecked to
// tell the two apart.
func (adc *ADC0834) Read(ch int) uint8 {
	d, _ := adc.ReadChecked(ch)
	return d
}

// ReadChecked returns the value of a single ended channel read from the ADC.
//
// The conversion is clocked out by the ADC twice, MSB first and then LSB
// first, and ErrMismatch is returned if the two do not agree.
func (adc *ADC0834) ReadChecked(ch int) (uint8, error) {
	if ch < 0 || ch > 3 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}
	adc.Mu.Lock()
	defer adc.Mu.Unlock()
	if adc.closed {
		return 0, ErrClosed
	}
	msb, lsb, err := adc.convert(ch)
	if err != nil {
		return 0, err
	}
	if msb != lsb {
		return 0, ErrMismatch
	}
	return msb, nil
}

// convert performs a full conversion cycle and returns both readings.
// Assumes caller already holds the Mu lock.
func (adc *ADC0834) convert(ch int) (msb, lsb uint8, err error) {
	defer func() {
		// deselect clears the ADC registers
		if e := adc.Deselect(); err == nil {
			err = e
		}
		// idle with dio driven
		if e := adc.Dio.Output(); err == nil {
			err = e
		}
	}()
	if err = adc.Select(); err != nil {
		return
	}
	if err = adc.Dio.Output(); err != nil {
		return
	}
	odd := gpio.LevelOf(uint8(ch & 1))
	sel := gpio.Level(ch > 1)
	// Start, SGL/DIF (single ended), ODD/SIGN, SELECT1
	for _, l := range [...]gpio.Level{gpio.High, gpio.High, odd, sel} {
		if err = adc.ClockOut(l); err != nil {
			return
		}
	}
	// mux settling
	if err = adc.ClockLow(); err != nil {
		return
	}
	if err = adc.Dio.Input(); err != nil {
		return
	}
	var b gpio.Level
	for i := 0; i < 8; i++ {
		if err = adc.ClockPulse(); err != nil {
			return
		}
		if b, err = adc.Dio.Read(); err != nil {
			return
		}
		msb = msb<<1 | b.Bit()
	}
	// LSB is shared by both passes so is already on dio
	for i := uint(0); i < 8; i++ {
		if b, err = adc.Dio.Read(); err != nil {
			return
		}
		lsb |= b.Bit() << i
		if err = adc.ClockPulse(); err != nil {
			return
		}
	}
	return
}

var (
	// ErrClosed indicates the ADC is closed.
	ErrClosed = errors.New("closed")

	// ErrInvalidChannel indicates the requested channel is not in the range 0-3.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrInvalidFrequency indicates the bit clock frequency is not positive.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrMismatch indicates the MSB first and LSB first readings of a
	// conversion did not agree.
	ErrMismatch = errors.New("readback mismatch")
)
