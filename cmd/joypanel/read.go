// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	readCmd.Flags().BoolVarP(&readOpts.Decimal, "decimal", "d", false, "display values in decimal")
	rootCmd.AddCommand(readCmd)
}

var (
	readCmd = &cobra.Command{
		Use:     "read [ch]...",
		Short:   "Read channels from the ADC0834",
		Long:    `Read one or more ADC0834 channels, 0 and 1 if none are given.`,
		Example: "  joypanel read 0 1 2 3",
		RunE:    read,
	}
	readOpts = struct {
		Decimal bool
	}{}
)

func read(cmd *cobra.Command, args []string) error {
	cc, err := parseChannels(args)
	if err != nil {
		return err
	}
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
	for _, ch := range cc {
		d, err := adc.ReadChecked(ch)
		if err != nil {
			logErr(cmd, fmt.Errorf("ch%d: %w", ch, err))
			continue
		}
		if readOpts.Decimal {
			fmt.Printf("ch%d=%d\n", ch, d)
		} else {
			fmt.Printf("ch%d=0x%02x\n", ch, d)
		}
	}
	return nil
}

func parseChannels(args []string) ([]int, error) {
	if len(args) == 0 {
		return []int{0, 1}, nil
	}
	cc := []int(nil)
	for _, arg := range args {
		c, err := strconv.ParseUint(arg, 10, 8)
		if err != nil || c > 3 {
			return nil, fmt.Errorf("invalid channel '%s'", arg)
		}
		cc = append(cc, int(c))
	}
	return cc, nil
}
