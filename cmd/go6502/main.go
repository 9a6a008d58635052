// Command go6502 loads a raw binary image into a flat 64KiB address
// space and runs the CPU core against it, optionally tracing every
// instruction through the disassembler.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/urfave/cli.v2"

	"go6502/cpu"
	"go6502/disassembler"
	"go6502/irq"
	"go6502/memory"
)

// noLine never raises; this binary doesn't wire a host-side interrupt
// source, it only drives the core against a static image.
type noLine struct{}

func (noLine) Raised() bool { return false }

func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func run(c *cli.Context) error {
	path := c.String("image")
	if path == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("", 1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("go6502: %v", err), 1)
	}

	offset, err := parseAddr(c.String("origin"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("go6502: %v", err), 1)
	}

	bus := memory.NewFlatRAM()
	if err := bus.Load(offset, data); err != nil {
		return cli.Exit(fmt.Sprintf("go6502: %v", err), 1)
	}

	resetVec := c.String("reset")
	if resetVec != "" {
		addr, err := parseAddr(resetVec)
		if err != nil {
			return cli.Exit(fmt.Sprintf("go6502: %v", err), 1)
		}
		bus.SetVector(cpu.ResetVector, addr)
	}

	var irqSrc, nmiSrc irq.Sender = noLine{}, noLine{}
	chip := cpu.New(bus, irqSrc, nmiSrc)

	if pc := c.String("pc"); pc != "" {
		addr, err := parseAddr(pc)
		if err != nil {
			return cli.Exit(fmt.Sprintf("go6502: %v", err), 1)
		}
		chip.SetPC(addr)
	}

	trace := c.Bool("trace")
	maxSteps := c.Int("max-steps")
	for i := 0; maxSteps <= 0 || i < maxSteps; i++ {
		if trace {
			text, _ := disassembler.Step(chip.PC, bus)
			fmt.Printf("%.4X  %-20s A=%.2X X=%.2X Y=%.2X S=%.2X P=%.2X\n",
				chip.PC, text, chip.A, chip.X, chip.Y, chip.S, chip.P)
		}
		if err := chip.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "go6502: halted: %v\n", err)
			return cli.Exit("", 2)
		}
		if chip.IsTrapped() {
			fmt.Fprintf(os.Stderr, "go6502: trapped at PC=%.4X\n", chip.PC)
			return nil
		}
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:    "go6502",
		Usage:   "run a raw 6502 binary image against the cycle-accurate core",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "image",
				Aliases: []string{"i"},
				Usage:   "path to a raw binary image",
			},
			&cli.StringFlag{
				Name:  "origin",
				Usage: "address the image is loaded at",
				Value: "0x0000",
			},
			&cli.StringFlag{
				Name:  "reset",
				Usage: "override the reset vector to this address before power-on",
			},
			&cli.StringFlag{
				Name:  "pc",
				Usage: "force PC to this address after reset, bypassing the vector",
			},
			&cli.BoolFlag{
				Name:    "trace",
				Aliases: []string{"t"},
				Usage:   "print a disassembly trace line before each instruction",
			},
			&cli.IntFlag{
				Name:  "max-steps",
				Usage: "stop after this many instructions (0 = run until halt/trap)",
				Value: 0,
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
