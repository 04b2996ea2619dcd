// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package rpi

import (
	"fmt"
	"time"

	"github.com/warthog618/joypanel/gpio"
)

// Pin represents a single GPIO pin.
// It implements gpio.Line.
type Pin struct {
	c *Chip
	// Immutable fields
	pin         int
	fsel        int
	levelReg    int
	clearReg    int
	setReg      int
	pullReg2711 int
	bank        int
	mask        uint32
	// Mutable fields
	shadow gpio.Level
}

// Mode defines the function of a Pin.
type Mode int

// Pull defines the pull up/down state of a Pin.
type Pull int

const (
	modeMask uint32 = 7 // pin mode is 3 bits wide
	pullMask uint32 = 3 // pull mode is 2 bits wide
	// BCM2835 pullReg is the same for all pins.
	pullReg2835 = 37
)

// Pin Mode, values match the fsel field.
const (
	Input Mode = iota
	Output
	Alt5
	Alt4
	Alt0
	Alt1
	Alt2
	Alt3
)

var modeNames = map[Mode]string{
	Input:  "input",
	Output: "output",
	Alt0:   "alt0",
	Alt1:   "alt1",
	Alt2:   "alt2",
	Alt3:   "alt3",
	Alt4:   "alt4",
	Alt5:   "alt5",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Pull Up / Down / Off
const (
	// Values match bcm pull field.
	PullNone Pull = iota
	PullDown
	PullUp
)

// Mapping from J8 header pins to BCM GPIO numbers.
const (
	J8p27 = iota
	J8p28
	J8p3
	J8p5
	J8p7
	J8p29
	J8p31
	J8p26
	J8p24
	J8p21
	J8p19
	J8p23
	J8p32
	J8p33
	J8p8
	J8p10
	J8p36
	J8p11
	J8p12
	J8p35
	J8p38
	J8p40
	J8p15
	J8p16
	J8p18
	J8p22
	J8p37
	J8p13
	MaxGPIOPin
)

// Pin returns the pin with the given BCM GPIO number.
func (c *Chip) Pin(pin int) (*Pin, error) {
	c.mu.Lock()
	mem := c.mem
	c.mu.Unlock()
	if mem == nil {
		return nil, ErrClosed
	}
	if pin < 0 || pin >= MaxGPIOPin {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPin, pin)
	}
	// Pre-calculate commonly used register addresses and bit masks.
	bank := pin / 32
	p := &Pin{
		c:    c,
		pin:  pin,
		fsel: pin / 10,
		bank: bank,
		mask: uint32(1 << uint(pin&0x1f)),
		// level: 13 / 14, clear: 10 / 11, set: 7 / 8 depending on bank
		levelReg: 13 + bank,
		clearReg: 10 + bank,
		setReg:   7 + bank,
		// 57-60 depending on pin
		pullReg2711: 57 + pin/16,
	}
	if mem[p.levelReg]&p.mask != 0 {
		p.shadow = gpio.High
	}
	return p, nil
}

func (p *Pin) mem() ([]uint32, error) {
	mem := p.c.mem
	if mem == nil {
		return nil, ErrClosed
	}
	return mem, nil
}

// Number returns the BCM GPIO number of the pin.
func (p *Pin) Number() int {
	return p.pin
}

func (p *Pin) String() string {
	return fmt.Sprintf("GPIO%d", p.pin)
}

// Input sets pin as Input.
func (p *Pin) Input() error {
	return p.SetMode(Input)
}

// Output sets pin as Output.
func (p *Pin) Output() error {
	return p.SetMode(Output)
}

// Mode returns the mode of the pin in the Function Select register.
func (p *Pin) Mode() Mode {
	mem, err := p.mem()
	if err != nil {
		return Input
	}
	modeShift := uint(p.pin%10) * 3
	return Mode(mem[p.fsel] >> modeShift & modeMask)
}

// SetMode sets the pin Mode.
func (p *Pin) SetMode(mode Mode) error {
	// shift for pin mode field within fsel register.
	modeShift := uint(p.pin%10) * 3

	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	mem, err := p.mem()
	if err != nil {
		return err
	}
	mem[p.fsel] = mem[p.fsel]&^(modeMask<<modeShift) | uint32(mode)<<modeShift
	return nil
}

// Shadow returns the value of the last write to an output pin or the last
// read on an input pin.
func (p *Pin) Shadow() gpio.Level {
	return p.shadow
}

// Toggle pin state
func (p *Pin) Toggle() error {
	return p.Write(!p.shadow)
}

// Read pin state (high/low)
func (p *Pin) Read() gpio.Level {
	mem, err := p.mem()
	if err != nil {
		return gpio.Low
	}
	level := gpio.Level(mem[p.levelReg]&p.mask != 0)
	p.shadow = level
	return level
}

// Write sets pin state (high/low)
func (p *Pin) Write(level gpio.Level) error {
	mem, err := p.mem()
	if err != nil {
		return err
	}
	if level == gpio.Low {
		mem[p.clearReg] = p.mask
	} else {
		mem[p.setReg] = p.mask
	}
	p.shadow = level
	return nil
}

// SetPull sets the pull up/down mode for a Pin.
// Unlike the mode, the pull value cannot be read back from hardware and
// so must be remembered by the caller.
func (p *Pin) SetPull(pull Pull) error {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	mem, err := p.mem()
	if err != nil {
		return err
	}
	if p.c.model == BCM2711 {
		p.setPull2711(mem, pull)
	} else {
		p.setPull2835(mem, pull)
	}
	return nil
}

func (p *Pin) setPull2835(mem []uint32, pull Pull) {
	clkReg := p.bank + 38
	mem[pullReg2835] = mem[pullReg2835]&^pullMask | uint32(pull)
	// Wait for value to clock in, this is ugly, sorry :(
	// This wait corresponds to at least 150 clock cycles.
	time.Sleep(time.Microsecond)
	mem[clkReg] = p.mask
	time.Sleep(time.Microsecond)
	mem[pullReg2835] = mem[pullReg2835] &^ pullMask
	mem[clkReg] = 0
}

func (p *Pin) setPull2711(mem []uint32, pull Pull) {
	// 2711 reverses up/down sense
	switch pull {
	case PullUp:
		pull = PullDown
	case PullDown:
		pull = PullUp
	}
	shift := uint(p.pin&0x0f) << 1
	mem[p.pullReg2711] = mem[p.pullReg2711]&^(pullMask<<shift) | uint32(pull)<<shift
}
