// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"
	"os"

	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/joypanel/adc0834"
	"github.com/warthog618/joypanel/gpio/rpi"
	"periph.io/x/conn/v3/physic"
)

// This example reads all four channels from an ADC0834 connected to the RPI
// by three data lines - CS, CLK, and DIO, with the ADC DI and DO tied
// together. The default pin assignments are defined in loadConfig, but can be
// altered via configuration (env, flag or config file).
// All pins are outputs at some point so do not run this example on a board
// where those pins serve other purposes.
func main() {
	cfg := loadConfig()
	c, err := rpi.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "adc0834: %s\n", err)
		os.Exit(1)
	}
	defer c.Close()
	var pins [3]*rpi.Pin
	for i, k := range []string{"cs", "clk", "dio"} {
		pins[i], err = c.Pin(cfg.MustGet(k).Int())
		if err != nil {
			fmt.Fprintf(os.Stderr, "adc0834: %s: %s\n", k, err)
			os.Exit(1)
		}
	}
	adc, err := adc0834.New(pins[0], pins[1], pins[2],
		adc0834.WithFrequency(physic.Frequency(cfg.MustGet("frequency").Int())*physic.Hertz))
	if err != nil {
		fmt.Fprintf(os.Stderr, "adc0834: %s\n", err)
		os.Exit(1)
	}
	defer adc.Close()
	for ch := 0; ch < 4; ch++ {
		d, err := adc.ReadChecked(ch)
		if err != nil {
			fmt.Printf("error reading ch%d: %s\n", ch, err)
			continue
		}
		fmt.Printf("ch%d=0x%02x\n", ch, d)
	}
}

func loadConfig() *config.Config {
	defaultConfig := map[string]interface{}{
		"frequency": 50000,
		"cs":        rpi.J8p16,
		"dio":       rpi.J8p18,
		"clk":       rpi.J8p22,
	}
	def := dict.New(dict.WithMap(defaultConfig))
	cfg := config.New(
		pflag.New(pflag.WithFlags(
			[]pflag.Flag{{Short: 'c', Name: "config-file"}})),
		env.New(env.WithEnvPrefix("ADC0834_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "adc0834.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust)
	return cfg
}
