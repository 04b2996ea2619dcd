// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package panel_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/joypanel/panel"
)

type sampler map[int]uint8

func (s sampler) Read(ch int) uint8 {
	return s[ch]
}

type display struct {
	mu  sync.Mutex
	ops []string
	err error
}

func (d *display) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, "clear")
	return d.err
}

func (d *display) Write(col, row int, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, fmt.Sprintf("%d,%d %s", col, row, data))
	return d.err
}

func (d *display) Ops() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.ops...)
}

type ranger struct {
	d   float64
	ok  bool
	err error
}

func (r ranger) MeasureDistance() (float64, bool, error) {
	return r.d, r.ok, r.err
}

func TestStart(t *testing.T) {
	d := &display{}
	p := panel.New(sampler{}, d, nil, panel.WithOutput(nil))
	require.Nil(t, p.Start())
	assert.Equal(t, []string{"0,0 Hello", "0,1 World"}, d.Ops())
}

func TestStep(t *testing.T) {
	patterns := []struct {
		name   string
		r      panel.Ranger
		row1   string
		ranged bool
	}{
		{"nothing", nil, "Nothing measured", false},
		{"no ranger", panel.NoRanger{}, "Nothing measured", false},
		{"fraction", ranger{d: 1.25, ok: true}, "1.25", true},
		{"whole", ranger{d: 2, ok: true}, "2", true},
	}
	for _, p := range patterns {
		t.Run(p.name, func(t *testing.T) {
			d := &display{}
			var out bytes.Buffer
			pn := panel.New(sampler{0: 128, 1: 7}, d, p.r, panel.WithOutput(&out))
			require.Nil(t, pn.Step())
			assert.Equal(t, []string{"clear", "0,0 128:7", "0,1 " + p.row1}, d.Ops())
			assert.Equal(t, "Read value: 128, 7\n", out.String())
		})
	}
}

func TestPoll(t *testing.T) {
	pn := panel.New(sampler{0: 1, 1: 255}, &display{}, ranger{d: 0.5, ok: true},
		panel.WithOutput(nil))
	r, err := pn.Poll()
	require.Nil(t, err)
	assert.Equal(t, panel.Reading{X: 1, Y: 255, Distance: 0.5, Ranged: true}, r)
	assert.Equal(t, "1:255", r.Joystick())
	assert.Equal(t, "0.5", r.Range())
}

func TestStepRangerError(t *testing.T) {
	timeout := errors.New("timeout")
	d := &display{}
	pn := panel.New(sampler{}, d, ranger{err: timeout}, panel.WithOutput(nil))
	err := pn.Step()
	assert.True(t, errors.Is(err, timeout))
	assert.Empty(t, d.Ops())
}

func TestStepDisplayError(t *testing.T) {
	busy := errors.New("busy")
	d := &display{err: busy}
	pn := panel.New(sampler{}, d, nil, panel.WithOutput(nil))
	assert.Equal(t, busy, pn.Step())
	assert.Equal(t, []string{"clear"}, d.Ops())
}

func TestRun(t *testing.T) {
	d := &display{}
	var out bytes.Buffer
	pn := panel.New(sampler{0: 3, 1: 4}, d, nil,
		panel.WithInterval(time.Millisecond), panel.WithOutput(&out))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := pn.Run(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)
	ops := d.Ops()
	require.Greater(t, len(ops), 5)
	assert.Equal(t, []string{"0,0 Hello", "0,1 World", "clear", "0,0 3:4", "0,1 Nothing measured"}, ops[:5])
}

func TestRunCancelled(t *testing.T) {
	d := &display{}
	pn := panel.New(sampler{}, d, nil, panel.WithOutput(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pn.Run(ctx)
	assert.Equal(t, context.Canceled, err)
	// greeting and a single update
	assert.Len(t, d.Ops(), 5)
}
