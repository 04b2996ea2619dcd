// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"github.com/spf13/cobra"
)

func init() {
	lcdCmd.Flags().IntVarP(&lcdOpts.Col, "col", "x", 0, "starting column")
	rootCmd.AddCommand(lcdCmd)
}

var (
	lcdCmd = &cobra.Command{
		Use:     "lcd <line1> [line2]",
		Short:   "Write text to the LCD",
		Args:    cobra.RangeArgs(1, 2),
		Example: "  joypanel lcd Hello World",
		RunE:    writeLCD,
	}
	lcdOpts = struct {
		Col int
	}{}
)

func writeLCD(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	display, bus, err := newLCD(cfg)
	if err != nil {
		return err
	}
	defer bus.Close()
	for row, text := range args {
		if err := display.Write(lcdOpts.Col, row, []byte(text)); err != nil {
			return err
		}
	}
	return nil
}
