// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

// Package rpi provides GPIO lines on the Raspberry Pi (rev 2 and later) by
// direct access to the BCM2835/BCM2711 GPIO registers.
//
// Supports simple operations such as:
//   - Pin mode/direction (input/output)
//   - Pin write (high/low)
//   - Pin read (high/low)
//   - Pull up/down/off
//
// The package uses the raw BCM pin numbers, not the ports as they are mapped
// on the J8 header. A mapping from J8 to BCM is provided for those wanting to
// use the J8 numbering.
//
// Example of use:
//
//	c, err := rpi.Open()
//	...
//	defer c.Close()
//	pin, err := c.Pin(rpi.J8p7)
//
// See the datasheet for full details of the BCM2835 controller:
// http://www.raspberrypi.org/wp-content/uploads/2012/02/BCM2835-ARM-Peripherals.pdf
package rpi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/warthog618/joypanel/gpio"
	"golang.org/x/sys/unix"
)

// Model identifies the GPIO controller.
type Model int

// Supported controllers.
const (
	BCM2835 Model = iota
	BCM2711
)

func (m Model) String() string {
	if m == BCM2711 {
		return "bcm2711"
	}
	return "bcm2835"
}

const (
	memLength = 4096
	memPath   = "/dev/gpiomem"
	dtPath    = "/proc/device-tree/compatible"
)

// Only one mapping of the registers may exist at a time.
var (
	openMu sync.Mutex
	opened bool
)

// Chip is the mapped GPIO register block.
type Chip struct {
	// The mu covers read/modify/write access to the mem block, and the
	// mapping itself. Individual reads and writes skip the lock on the
	// assumption that register writes are atomic, e.g. Read, Write and Mode.
	mu    sync.Mutex
	mem   []uint32
	mem8  []byte
	model Model
}

// Open memory maps the GPIO registers from /dev/gpiomem.
func Open() (*Chip, error) {
	openMu.Lock()
	defer openMu.Unlock()
	if opened {
		return nil, ErrAlreadyOpen
	}
	file, err := os.OpenFile(memPath, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gpio.ErrUnavailable, err)
	}
	defer file.Close()
	mem8, err := unix.Mmap(
		int(file.Fd()),
		0,
		memLength,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gpio.ErrUnavailable, err)
	}
	opened = true
	return &Chip{
		mem:   unsafe.Slice((*uint32)(unsafe.Pointer(&mem8[0])), len(mem8)/4),
		mem8:  mem8,
		model: detectModel(),
	}, nil
}

func detectModel() Model {
	compat, err := os.ReadFile(dtPath)
	if err == nil && bytes.Contains(compat, []byte("bcm2711")) {
		return BCM2711
	}
	return BCM2835
}

// Close unmaps the GPIO registers.
// Pins from the chip are unusable after it is closed.
func (c *Chip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mem == nil {
		return ErrClosed
	}
	c.mem = nil
	openMu.Lock()
	opened = false
	openMu.Unlock()
	return unix.Munmap(c.mem8)
}

// Model returns the detected GPIO controller.
func (c *Chip) Model() Model {
	return c.model
}

var (
	// ErrAlreadyOpen indicates the registers are already mapped.
	ErrAlreadyOpen = errors.New("already open")

	// ErrClosed indicates the chip has been closed.
	ErrClosed = errors.New("closed")

	// ErrInvalidPin indicates the pin number is not a J8 GPIO pin.
	ErrInvalidPin = errors.New("invalid pin")
)
