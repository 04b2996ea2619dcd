// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package spi_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/joypanel/gpio"
	"github.com/warthog618/joypanel/gpio/linetest"
	"github.com/warthog618/joypanel/spi"
)

func newSPI(t *testing.T) (*spi.SPI, *linetest.Trace) {
	t.Helper()
	tr := &linetest.Trace{}
	s, err := spi.New(time.Nanosecond,
		linetest.New("ssz", tr),
		linetest.New("sclk", tr),
		linetest.New("dio", tr))
	require.Nil(t, err)
	tr.Reset()
	return s, tr
}

func TestNew(t *testing.T) {
	s, _ := newSPI(t)
	assert.Equal(t, gpio.High, s.Ssz.Shadow())
	assert.Equal(t, gpio.Low, s.Sclk.Shadow())
	assert.Equal(t, gpio.Output, s.Dio.Mode())
	assert.Equal(t, time.Nanosecond, s.Thalf)
}

func TestNewUnavailable(t *testing.T) {
	l := linetest.New("l", nil)
	_, err := spi.New(0, nil, l, l)
	assert.True(t, errors.Is(err, gpio.ErrUnavailable))
	_, err = spi.New(0, l, nil, l)
	assert.True(t, errors.Is(err, gpio.ErrUnavailable))

	bad := linetest.New("bad", nil)
	busy := errors.New("busy")
	bad.SetError(busy)
	_, err = spi.New(0, l, l, bad)
	assert.True(t, errors.Is(err, gpio.ErrUnavailable))
}

func TestClockOut(t *testing.T) {
	s, tr := newSPI(t)
	require.Nil(t, s.ClockOut(gpio.High))
	assert.Equal(t, []linetest.Event{
		{Line: "sclk", Op: linetest.OpWrite, Level: gpio.Low, Mode: gpio.Output},
		{Line: "dio", Op: linetest.OpWrite, Level: gpio.High, Mode: gpio.Output},
		{Line: "sclk", Op: linetest.OpWrite, Level: gpio.High, Mode: gpio.Output},
	}, tr.Events())
}

func TestClockPulse(t *testing.T) {
	s, tr := newSPI(t)
	require.Nil(t, s.ClockPulse())
	assert.Equal(t, []linetest.Event{
		{Line: "sclk", Op: linetest.OpWrite, Level: gpio.High, Mode: gpio.Output},
		{Line: "sclk", Op: linetest.OpWrite, Level: gpio.Low, Mode: gpio.Output},
	}, tr.Events())
}

func TestSelect(t *testing.T) {
	s, _ := newSPI(t)
	require.Nil(t, s.Select())
	assert.Equal(t, gpio.Low, s.Ssz.Shadow())
	require.Nil(t, s.Deselect())
	assert.Equal(t, gpio.High, s.Ssz.Shadow())
}

func TestClose(t *testing.T) {
	tr := &linetest.Trace{}
	ssz := linetest.New("ssz", tr)
	sclk := linetest.New("sclk", tr)
	dio := linetest.New("dio", tr)
	s, err := spi.New(0, ssz, sclk, dio)
	require.Nil(t, err)
	assert.Nil(t, s.Close())
	assert.Equal(t, gpio.Input, ssz.Mode())
	assert.Equal(t, gpio.Input, sclk.Mode())
	assert.Equal(t, gpio.Input, dio.Mode())
}
