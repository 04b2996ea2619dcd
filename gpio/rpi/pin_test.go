// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

// Register tests run against an in-memory register block.
package rpi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/joypanel/gpio"
)

var _ gpio.Line = (*Pin)(nil)

func fakeChip(m Model) *Chip {
	return &Chip{mem: make([]uint32, memLength/4), model: m}
}

func TestPinInvalid(t *testing.T) {
	c := fakeChip(BCM2835)
	for _, n := range []int{-1, MaxGPIOPin, 54} {
		p, err := c.Pin(n)
		assert.True(t, errors.Is(err, ErrInvalidPin), n)
		assert.Nil(t, p)
	}
}

func TestPinShadowInit(t *testing.T) {
	c := fakeChip(BCM2835)
	c.mem[13] = 1 << 4
	p, err := c.Pin(J8p7)
	require.Nil(t, err)
	assert.Equal(t, gpio.High, p.Shadow())
	assert.Equal(t, 4, p.Number())
	assert.Equal(t, "GPIO4", p.String())

	p, err = c.Pin(J8p11)
	require.Nil(t, err)
	assert.Equal(t, gpio.Low, p.Shadow())
}

func TestPinMode(t *testing.T) {
	c := fakeChip(BCM2835)
	// pin 10 is alt0, and must be left alone
	c.mem[1] = uint32(Alt0)
	p, err := c.Pin(17)
	require.Nil(t, err)
	assert.Equal(t, Input, p.Mode())

	require.Nil(t, p.Output())
	assert.Equal(t, uint32(Output)<<21|uint32(Alt0), c.mem[1])
	assert.Equal(t, Output, p.Mode())

	require.Nil(t, p.SetMode(Alt3))
	assert.Equal(t, Alt3, p.Mode())
	assert.Equal(t, "alt3", p.Mode().String())

	require.Nil(t, p.Input())
	assert.Equal(t, uint32(Alt0), c.mem[1])
}

func TestPinWrite(t *testing.T) {
	c := fakeChip(BCM2835)
	p, err := c.Pin(J8p7)
	require.Nil(t, err)

	require.Nil(t, p.Write(gpio.High))
	assert.Equal(t, uint32(1<<4), c.mem[7])
	assert.Equal(t, gpio.High, p.Shadow())

	require.Nil(t, p.Write(gpio.Low))
	assert.Equal(t, uint32(1<<4), c.mem[10])
	assert.Equal(t, gpio.Low, p.Shadow())

	c.mem[7] = 0
	require.Nil(t, p.Toggle())
	assert.Equal(t, uint32(1<<4), c.mem[7])
	assert.Equal(t, gpio.High, p.Shadow())
}

func TestPinRead(t *testing.T) {
	c := fakeChip(BCM2835)
	p, err := c.Pin(J8p15)
	require.Nil(t, err)
	assert.Equal(t, gpio.Low, p.Read())
	c.mem[13] = 1 << 22
	assert.Equal(t, gpio.High, p.Read())
	assert.Equal(t, gpio.High, p.Shadow())
}

func TestSetPull2711(t *testing.T) {
	c := fakeChip(BCM2711)
	p, err := c.Pin(20)
	require.Nil(t, err)
	require.Nil(t, p.SetPull(PullUp))
	// up/down sense is reversed
	assert.Equal(t, uint32(PullDown)<<8, c.mem[58])
	require.Nil(t, p.SetPull(PullDown))
	assert.Equal(t, uint32(PullUp)<<8, c.mem[58])
	require.Nil(t, p.SetPull(PullNone))
	assert.Equal(t, uint32(0), c.mem[58])
}

func TestSetPull2835(t *testing.T) {
	c := fakeChip(BCM2835)
	p, err := c.Pin(20)
	require.Nil(t, err)
	require.Nil(t, p.SetPull(PullUp))
	// pull and clock registers are cleared once clocked in
	assert.Equal(t, uint32(0), c.mem[pullReg2835])
	assert.Equal(t, uint32(0), c.mem[38])
}

func TestClosedChip(t *testing.T) {
	c := fakeChip(BCM2835)
	p, err := c.Pin(J8p7)
	require.Nil(t, err)
	c.mem = nil

	_, err = c.Pin(J8p7)
	assert.Equal(t, ErrClosed, err)
	assert.Equal(t, ErrClosed, p.Write(gpio.High))
	assert.Equal(t, ErrClosed, p.Output())
	assert.Equal(t, ErrClosed, p.SetPull(PullUp))
	assert.Equal(t, gpio.Low, p.Read())
	assert.Equal(t, Input, p.Mode())
}

func TestModel(t *testing.T) {
	assert.Equal(t, "bcm2835", BCM2835.String())
	assert.Equal(t, "bcm2711", BCM2711.String())
	assert.Equal(t, BCM2711, fakeChip(BCM2711).Model())
}
