// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package spi provides the basis for bit bashed three wire serial devices.
package spi

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/joypanel/gpio"
)

// SPI represents a device connected via a serial bus using 3 GPIO lines,
// a chip select, a clock, and a single data line that is driven by the host
// while sending and by the device while receiving.
// It is not related to the SPI device drivers provided by Linux.
type SPI struct {
	Mu sync.Mutex
	// time between clock edges (i.e. half the cycle time)
	Thalf time.Duration
	Ssz   *gpio.OutputPin
	Sclk  *gpio.OutputPin
	Dio   *gpio.IOPin
}

// New creates a SPI from the provided lines.
// The device is held deselected, with the clock low and the data line
// driven low, until needed.
func New(thalf time.Duration, ssz, sclk, dio gpio.Line) (*SPI, error) {
	cs, err := gpio.NewOutputPin(ssz, gpio.High)
	if err != nil {
		return nil, fmt.Errorf("ssz: %w", unavailable(err))
	}
	clk, err := gpio.NewOutputPin(sclk, gpio.Low)
	if err != nil {
		return nil, fmt.Errorf("sclk: %w", unavailable(err))
	}
	d, err := gpio.NewIOPin(dio, gpio.Output, gpio.Low)
	if err != nil {
		return nil, fmt.Errorf("dio: %w", unavailable(err))
	}
	return &SPI{Thalf: thalf, Ssz: cs, Sclk: clk, Dio: d}, nil
}

// unavailable marks a line failure during construction as the device being
// unavailable, while retaining the underlying cause.
func unavailable(err error) error {
	if errors.Is(err, gpio.ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", gpio.ErrUnavailable, err)
}

// Close releases the lines used to drive the device by returning them to
// input mode.
func (s *SPI) Close() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	err := s.Sclk.Release()
	if e := s.Ssz.Release(); err == nil {
		err = e
	}
	if e := s.Dio.Input(); err == nil {
		err = e
	}
	return err
}

// Tick holds the bus for half a clock cycle.
func (s *SPI) Tick() {
	time.Sleep(s.Thalf)
}

// ClockHigh raises the clock and holds it for half a cycle.
// Assumes caller already holds the Mu lock.
func (s *SPI) ClockHigh() error {
	if err := s.Sclk.High(); err != nil {
		return err
	}
	s.Tick()
	return nil
}

// ClockLow lowers the clock and holds it for half a cycle.
// Assumes caller already holds the Mu lock.
func (s *SPI) ClockLow() error {
	if err := s.Sclk.Low(); err != nil {
		return err
	}
	s.Tick()
	return nil
}

// ClockPulse raises then lowers the clock, taking a full cycle.
// Assumes caller already holds the Mu lock.
func (s *SPI) ClockPulse() error {
	if err := s.ClockHigh(); err != nil {
		return err
	}
	return s.ClockLow()
}

// ClockOut drives a data bit onto Dio.
// The clock is lowered before the bit is set and raised after, as the
// device reads on the rising edge.
// Assumes caller already holds the Mu lock.
func (s *SPI) ClockOut(l gpio.Level) error {
	if err := s.ClockLow(); err != nil {
		return err
	}
	if err := s.Dio.Write(l); err != nil {
		return err
	}
	return s.ClockHigh()
}

// Select asserts the chip select, starting a transaction.
func (s *SPI) Select() error {
	return s.Ssz.Low()
}

// Deselect releases the chip select, ending a transaction.
func (s *SPI) Deselect() error {
	return s.Ssz.High()
}
