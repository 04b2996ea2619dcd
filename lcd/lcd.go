// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package lcd provides a driver for 16x2 HD44780 character LCDs attached via
// a PCF8574 I2C backpack.
//
// The backpack maps the expander outputs to the LCD as
// P0=RS, P1=RW, P2=EN, P3=backlight and P4-P7=D4-D7, so the LCD is driven
// in 4-bit mode, a nibble at a time.
package lcd

import (
	"errors"
	"sync"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// Display geometry.
const (
	Cols = 16
	Rows = 2
)

// DefaultAddress is the usual address of a PCF8574 backpack.
const DefaultAddress = 0x27

const (
	rs        = 0x01
	enable    = 0x04
	backlight = 0x08

	cmdClear    = 0x01
	cmdSetDDRAM = 0x80
	rowOffset   = 0x40
)

// LCD is a character LCD behind a PCF8574 backpack.
type LCD struct {
	mu     sync.Mutex
	d      i2c.Dev
	strobe time.Duration
	settle time.Duration
}

type options struct {
	addr   uint16
	strobe time.Duration
	settle time.Duration
}

// Option modifies the construction of an LCD.
type Option func(*options)

// WithAddress sets the I2C address of the backpack.
func WithAddress(addr uint16) Option {
	return func(o *options) {
		o.addr = addr
	}
}

// WithStrobe sets how long EN is held high for each nibble.
func WithStrobe(d time.Duration) Option {
	return func(o *options) {
		o.strobe = d
	}
}

// WithSettle sets the delay after each step of the initialisation sequence.
func WithSettle(d time.Duration) Option {
	return func(o *options) {
		o.settle = d
	}
}

// New creates an LCD on the bus.
// The LCD must be initialised with Init before use.
func New(bus i2c.Bus, opts ...Option) *LCD {
	o := options{
		addr:   DefaultAddress,
		strobe: 2 * time.Millisecond,
		settle: 5 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &LCD{
		d:      i2c.Dev{Bus: bus, Addr: o.addr},
		strobe: o.strobe,
		settle: o.settle,
	}
}

// Init switches the LCD into 4-bit mode, two lines, display on with cursor
// off, and clears it.
func (l *LCD) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	// 0x33, 0x32 drop from 8-bit to 4-bit mode
	for _, c := range []byte{0x33, 0x32, 0x28, 0x0c} {
		if err := l.send(c, 0); err != nil {
			return err
		}
		time.Sleep(l.settle)
	}
	if err := l.send(cmdClear, 0); err != nil {
		return err
	}
	return l.write(0)
}

// SendCommand sends an instruction to the LCD.
func (l *LCD) SendCommand(c byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.send(c, 0)
}

// SendData sends a data byte to the LCD, written to the current address.
func (l *LCD) SendData(d byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.send(d, rs)
}

// Clear clears the display.
func (l *LCD) Clear() error {
	return l.SendCommand(cmdClear)
}

// Write writes the data to the display starting at the given column and row.
// Positions beyond the display are clamped to the last column or row.
// The data is written as-is, so must be in the character set of the LCD.
func (l *LCD) Write(col, row int, data []byte) error {
	col = clamp(col, Cols-1)
	row = clamp(row, Rows-1)
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.send(byte(cmdSetDDRAM+rowOffset*row+col), 0); err != nil {
		return err
	}
	for _, b := range data {
		if err := l.send(b, rs); err != nil {
			return err
		}
	}
	return nil
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

// send sends the byte as two nibbles, high first.
func (l *LCD) send(b byte, mode byte) error {
	if err := l.pulse(b&0xf0 | mode); err != nil {
		return err
	}
	return l.pulse((b&0x0f)<<4 | mode)
}

// pulse latches a nibble with a high then low EN.
func (l *LCD) pulse(buf byte) error {
	if err := l.write(buf | enable); err != nil {
		return err
	}
	time.Sleep(l.strobe)
	return l.write(buf &^ enable)
}

// write sets the expander outputs, keeping the backlight on.
func (l *LCD) write(b byte) error {
	n, err := l.d.Write([]byte{b | backlight})
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrShortWrite
	}
	return nil
}

// ErrShortWrite indicates the backpack did not accept the write.
var ErrShortWrite = errors.New("short write")
