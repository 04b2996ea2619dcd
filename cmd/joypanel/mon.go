// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/warthog618/joypanel/panel"
)

func init() {
	monCmd.Flags().BoolVarP(&monOpts.Quiet, "quiet", "q", false, "don't display readings on stdout")
	rootCmd.AddCommand(monCmd)
}

var (
	monCmd = &cobra.Command{
		Use:   "mon",
		Short: "Monitor the joystick and display it on the LCD",
		Long: `Poll the joystick and range sensor, displaying the readings on the LCD
and standard output, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: mon,
	}
	monOpts = struct {
		Quiet bool
	}{}
)

func mon(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	b, err := openBoard(cfg)
	if err != nil {
		return err
	}
	defer b.close()
	adc, err := newADC(cfg, b)
	if err != nil {
		return err
	}
	defer adc.Close()
	display, bus, err := newLCD(cfg)
	if err != nil {
		return err
	}
	defer bus.Close()

	opts := []panel.Option{panel.WithInterval(cfg.MustGet("interval").Duration())}
	if monOpts.Quiet {
		opts = append(opts, panel.WithOutput(nil))
	}
	// no ranger is wired to the panel, so the range line reports nothing measured
	p := panel.New(adc, display, panel.NoRanger{}, opts...)

	// capture exit signals to ensure lines are released on exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
