// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warthog618/joypanel/gpio"
)

func init() {
	getCmd.Flags().BoolVarP(&getOpts.ActiveLow, "active-low", "l", false, "treat the line level as active low")
	getCmd.Flags().BoolVarP(&getOpts.Short, "short", "s", false, "single line output format")
	getCmd.SetHelpTemplate(getCmd.HelpTemplate() + extendedGetHelp)
	rootCmd.AddCommand(getCmd)
}

var (
	getCmd = &cobra.Command{
		Use:     "get <pin1>...",
		Short:   "Read the level of a pin or pins",
		Example: "  joypanel get 24 J8p18",
		Args:    cobra.MinimumNArgs(1),
		RunE:    get,
	}
	getOpts = struct {
		ActiveLow bool
		Short     bool
	}{}
)

var extendedGetHelp = `
Pins:
  Pins may be identified by name (J8pXX) or number (0-27).

Note that reading a pin forces it into input mode, so use this to check the
wiring of the ADC data line rather than while the panel is running.
`

func get(cmd *cobra.Command, args []string) error {
	oo, err := parseOffsets(args)
	if err != nil {
		return err
	}
	b, err := openBoard(loadConfig())
	if err != nil {
		return err
	}
	defer b.close()
	ll, err := b.lines(oo...)
	if err != nil {
		return err
	}
	vv := make([]gpio.Level, len(oo))
	for i, l := range ll {
		p, err := gpio.NewIOPin(l, gpio.Input, gpio.Low)
		if err != nil {
			return err
		}
		v, err := p.Read()
		if err != nil {
			return err
		}
		if getOpts.ActiveLow {
			v = !v
		}
		vv[i] = v
	}
	if getOpts.Short {
		printValuesShort(vv)
	} else {
		printValues(oo, vv)
	}
	return nil
}

func printValues(oo []int, vv []gpio.Level) {
	for i, o := range oo {
		fmt.Printf("pin %2d: %t\n", o, vv[i])
	}
}

func printValuesShort(vv []gpio.Level) {
	fmt.Printf("%d", vv[0].Bit())
	for _, v := range vv[1:] {
		fmt.Printf(" %d", v.Bit())
	}
	fmt.Println()
}
