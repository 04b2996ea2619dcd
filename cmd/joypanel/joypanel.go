// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/joypanel/adc0834"
	"github.com/warthog618/joypanel/gpio"
	"github.com/warthog618/joypanel/gpio/periph"
	"github.com/warthog618/joypanel/gpio/rpi"
	"github.com/warthog618/joypanel/lcd"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
)

var version = "undefined"

var rootCmd = &cobra.Command{
	Use:   "joypanel",
	Short: "joypanel reads a joystick via an ADC0834 and reports it on an LCD",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	Version: version,
}

var rootOpts = struct {
	ConfigFile string
}{}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config-file", "c", "", "configuration file (JSON)")
	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + extendedRootHelp)
}

var extendedRootHelp = `
Configuration:
  Pin assignments and timing are read from the environment (JOYPANEL_ prefix,
  e.g. JOYPANEL_CS=23) or a JSON config file, which defaults to joypanel.json.

  backend      rpi or periph (default rpi)
  cs, dio, clk ADC0834 lines (default 23, 24, 25)
  frequency    ADC bit clock in Hz (default 50000)
  lcd.bus      I2C bus name (default first available)
  lcd.address  LCD backpack address (default 0x27)
  interval     mon update period (default 50ms)
`

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "joypanel %s: %s\n", cmd.Name(), err)
}

func loadConfig() *config.Config {
	defaultConfig := map[string]interface{}{
		"backend":     "rpi",
		"cs":          rpi.J8p16,
		"dio":         rpi.J8p18,
		"clk":         rpi.J8p22,
		"frequency":   50000,
		"lcd.bus":     "",
		"lcd.address": lcd.DefaultAddress,
		"interval":    "50ms",
	}
	if rootOpts.ConfigFile != "" {
		defaultConfig["config.file"] = rootOpts.ConfigFile
	}
	def := dict.New(dict.WithMap(defaultConfig))
	cfg := config.New(
		env.New(env.WithEnvPrefix("JOYPANEL_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "joypanel.json", json.NewDecoder()))
	return cfg.GetConfig("", config.WithMust)
}

// board provides the lines of the configured backend.
type board struct {
	line  func(n int) (gpio.Line, error)
	close func() error
}

func openBoard(cfg *config.Config) (*board, error) {
	switch backend := cfg.MustGet("backend").String(); backend {
	case "rpi":
		c, err := rpi.Open()
		if err != nil {
			return nil, err
		}
		line := func(n int) (gpio.Line, error) {
			p, err := c.Pin(n)
			if err != nil {
				return nil, err
			}
			return p, nil
		}
		return &board{line: line, close: c.Close}, nil
	case "periph":
		if err := periph.Init(); err != nil {
			return nil, err
		}
		line := func(n int) (gpio.Line, error) {
			l, err := periph.ByName(strconv.Itoa(n))
			if err != nil {
				return nil, err
			}
			return l, nil
		}
		return &board{line: line, close: func() error { return nil }}, nil
	default:
		return nil, fmt.Errorf("unknown backend '%s'", backend)
	}
}

func (b *board) lines(nn ...int) ([]gpio.Line, error) {
	ll := make([]gpio.Line, len(nn))
	for i, n := range nn {
		l, err := b.line(n)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		ll[i] = l
	}
	return ll, nil
}

func newADC(cfg *config.Config, b *board) (*adc0834.ADC0834, error) {
	ll, err := b.lines(
		cfg.MustGet("cs").Int(),
		cfg.MustGet("clk").Int(),
		cfg.MustGet("dio").Int())
	if err != nil {
		return nil, err
	}
	freq := physic.Frequency(cfg.MustGet("frequency").Int()) * physic.Hertz
	return adc0834.New(ll[0], ll[1], ll[2], adc0834.WithFrequency(freq))
}

// newLCD opens the I2C bus and initialises the LCD.
// The bus must be closed by the caller.
func newLCD(cfg *config.Config) (*lcd.LCD, i2c.BusCloser, error) {
	if err := periph.Init(); err != nil {
		return nil, nil, err
	}
	bus, err := i2creg.Open(cfg.MustGet("lcd.bus").String())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", gpio.ErrUnavailable, err)
	}
	d := lcd.New(bus, lcd.WithAddress(uint16(cfg.MustGet("lcd.address").Int())))
	if err := d.Init(); err != nil {
		bus.Close()
		return nil, nil, err
	}
	return d, bus, nil
}

var pinNames = map[string]int{
	"J8P3":  rpi.J8p3,
	"J8P03": rpi.J8p3,
	"J8P5":  rpi.J8p5,
	"J8P05": rpi.J8p5,
	"J8P7":  rpi.J8p7,
	"J8P07": rpi.J8p7,
	"J8P8":  rpi.J8p8,
	"J8P08": rpi.J8p8,
	"J8P10": rpi.J8p10,
	"J8P11": rpi.J8p11,
	"J8P12": rpi.J8p12,
	"J8P13": rpi.J8p13,
	"J8P15": rpi.J8p15,
	"J8P16": rpi.J8p16,
	"J8P18": rpi.J8p18,
	"J8P19": rpi.J8p19,
	"J8P21": rpi.J8p21,
	"J8P22": rpi.J8p22,
	"J8P23": rpi.J8p23,
	"J8P24": rpi.J8p24,
	"J8P26": rpi.J8p26,
	"J8P27": rpi.J8p27,
	"J8P28": rpi.J8p28,
	"J8P29": rpi.J8p29,
	"J8P31": rpi.J8p31,
	"J8P32": rpi.J8p32,
	"J8P33": rpi.J8p33,
	"J8P35": rpi.J8p35,
	"J8P36": rpi.J8p36,
	"J8P37": rpi.J8p37,
	"J8P38": rpi.J8p38,
	"J8P40": rpi.J8p40,
}

func parseOffset(arg string) (int, error) {
	if o, ok := pinNames[strings.ToUpper(arg)]; ok {
		return o, nil
	}
	o, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("can't parse pin '%s'", arg)
	}
	if o >= rpi.MaxGPIOPin {
		return 0, fmt.Errorf("unknown pin '%d'", o)
	}
	return int(o), nil
}

func parseOffsets(args []string) ([]int, error) {
	oo := []int(nil)
	for _, arg := range args {
		o, err := parseOffset(arg)
		if err != nil {
			return nil, err
		}
		oo = append(oo, o)
	}
	return oo, nil
}
