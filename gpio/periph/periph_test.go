// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package periph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/joypanel/gpio"
	"github.com/warthog618/joypanel/gpio/periph"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

var _ gpio.Line = (*periph.Line)(nil)

func TestLine(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO23", Num: 23}
	l := periph.New(p)
	assert.Equal(t, "GPIO23", l.Name())

	// level is latched until the line is driven
	require.Nil(t, l.Write(gpio.High))
	assert.Equal(t, pgpio.Low, p.L)
	require.Nil(t, l.Output())
	assert.Equal(t, pgpio.High, p.L)
	require.Nil(t, l.Write(gpio.Low))
	assert.Equal(t, pgpio.Low, p.L)

	require.Nil(t, l.Input())
	p.L = pgpio.High
	assert.Equal(t, gpio.High, l.Read())
	p.L = pgpio.Low
	assert.Equal(t, gpio.Low, l.Read())
}

func TestIOPin(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO24", Num: 24}
	dio, err := gpio.NewIOPin(periph.New(p), gpio.Output, gpio.High)
	require.Nil(t, err)
	assert.Equal(t, pgpio.High, p.L)

	require.Nil(t, dio.Input())
	p.L = pgpio.Low
	v, err := dio.Read()
	assert.Nil(t, err)
	assert.Equal(t, gpio.Low, v)
}

func TestByNameUnknown(t *testing.T) {
	l, err := periph.ByName("JOYPANEL_NO_SUCH_LINE")
	assert.True(t, errors.Is(err, gpio.ErrUnavailable))
	assert.Nil(t, l)
}
