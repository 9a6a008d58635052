// Package cpu implements a cycle-accurate NMOS 6502 core: the instruction
// decoder, addressing-mode micro-sequencer, and operation semantics that
// drive a memory.Bus one clock cycle at a time.
package cpu

import (
	"fmt"

	"go6502/irq"
	"go6502/memory"
)

// Vector addresses and status bits, per the NMOS 6502 architecture.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)

	PNegative  = uint8(0x80)
	POverflow  = uint8(0x40)
	PUnused    = uint8(0x20) // Always reads as 1.
	PBreak     = uint8(0x10) // Only meaningful in a byte pushed to the stack.
	PDecimal   = uint8(0x08)
	PInterrupt = uint8(0x04)
	PZero      = uint8(0x02)
	PCarry     = uint8(0x01)

	stackPage = uint16(0x0100)
)

// irqClass tracks which interrupt (if any) is currently being serviced so a
// higher-priority NMI can pre-empt an in-flight IRQ/BRK vector choice.
type irqClass int

const (
	irqNone irqClass = iota
	irqIRQ
	irqNMI
)

// InvalidCPUState is returned when the tick engine finds itself in a state
// that cannot occur on real hardware (a programming error in the core, not
// a property of the program being run).
type InvalidCPUState struct {
	Reason string
}

func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// IllegalOpcode is returned when the decoder encounters a byte outside the
// 151-opcode NMOS table. It is fatal: the CPU halts and every subsequent
// Tick/Step returns the same error until the state is discarded.
type IllegalOpcode struct {
	Opcode uint8
	PC     uint16
}

func (e IllegalOpcode) Error() string {
	return fmt.Sprintf("illegal opcode 0x%.2X at PC 0x%.4X", e.Opcode, e.PC)
}

// Chip is the architectural state of one 6502 core plus the bookkeeping
// needed to resume mid-instruction on every Tick call.
type Chip struct {
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	P  uint8
	PC uint16

	// CycleHook, if non-nil, is invoked once per error-free Tick call after the cycle's
	// bus transaction has completed. It may spin, sleep, or no-op to pace
	// wall-clock execution; it must never mutate CPU state. Real-time pacing
	// is not a correctness requirement (spec.md ยง9), so this is a thin hook
	// rather than a calibrated delay loop.
	CycleHook func()

	bus memory.Bus
	irq irq.Sender
	nmi irq.Sender

	tickDone bool

	op       uint8
	opVal    uint8
	opTick   int
	opAddr   uint16
	opDone   bool
	addrDone bool
	insnPC   uint16

	resetting bool

	skipInterrupt     bool
	prevSkipInterrupt bool
	irqRaised         irqClass
	runningInterrupt  bool

	halted  bool
	haltErr error
	trapped bool
}

// New constructs a Chip wired to the given bus and powers it on (equivalent
// to running the RESET sequence to completion). irqSrc/nmiSrc may be nil if
// the host never raises those lines.
func New(bus memory.Bus, irqSrc, nmiSrc irq.Sender) *Chip {
	c := &Chip{
		bus:      bus,
		irq:      irqSrc,
		nmi:      nmiSrc,
		tickDone: true,
		S:        0xFF,
		P:        PUnused,
	}
	for {
		done, err := c.Reset()
		if err != nil {
			// Reset() as implemented below cannot itself error; this guards
			// against a future change making that no longer true.
			panic(err)
		}
		if done {
			break
		}
	}
	return c
}

// Reset runs one tick of the RESET sequence (spec.md ยง4.2): six ticks that
// read the current PC, disable interrupts, decrement S three times without
// writing (emulating the suppressed PC/P push), then load PC from the reset
// vector. Returns true once the sequence has completed.
func (c *Chip) Reset() (bool, error) {
	if !c.resetting {
		c.resetting = true
		c.tickDone = false
		c.opTick = 0
		c.halted = false
		c.haltErr = nil
		c.trapped = false
		c.irqRaised = irqNone
	}
	c.opTick++
	switch {
	case c.opTick == 1:
		_ = c.bus.Read(c.PC)
		c.P |= PInterrupt
		return false, nil
	case c.opTick >= 2 && c.opTick <= 4:
		c.S--
		return false, nil
	case c.opTick == 5:
		c.opVal = c.bus.Read(ResetVector)
		return false, nil
	case c.opTick == 6:
		c.PC = uint16(c.bus.Read(ResetVector+1))<<8 | uint16(c.opVal)
		c.resetting = false
		c.opTick = 0
		c.tickDone = true
		return true, nil
	}
	return true, InvalidCPUState{Reason: fmt.Sprintf("Reset: bad opTick %d", c.opTick)}
}

// SetPC forces the program counter, bypassing the reset vector. Test
// harnesses use this right after power-on/reset to pick a fixed entry point.
func (c *Chip) SetPC(pc uint16) {
	c.PC = pc
}

// IsTrapped reports whether a self-branch (or self-jump) halt condition was
// detected — see performBranch and iJMP for how it is set.
func (c *Chip) IsTrapped() bool {
	return c.trapped
}

// IsHalted reports whether the core stopped due to an illegal opcode or
// other invalid-state error. Once halted every Tick/Step returns haltErr.
func (c *Chip) IsHalted() bool {
	return c.halted
}

// Carry, Zero, InterruptDisable, Decimal, Overflow, and Negative expose the
// individual status bits for test assertions without requiring callers to
// know the packed-byte layout.
func (c *Chip) Carry() bool            { return c.P&PCarry != 0 }
func (c *Chip) Zero() bool             { return c.P&PZero != 0 }
func (c *Chip) InterruptDisable() bool { return c.P&PInterrupt != 0 }
func (c *Chip) Decimal() bool          { return c.P&PDecimal != 0 }
func (c *Chip) Overflow() bool         { return c.P&POverflow != 0 }
func (c *Chip) Negative() bool         { return c.P&PNegative != 0 }

// Tick runs a single bus cycle, which may start a new instruction, continue
// one in progress, or service a pending interrupt. It returns nil on every
// cycle except the one where an unrecoverable error occurs (illegal opcode
// or an internal precondition failure), after which the CPU is halted and
// every subsequent Tick returns the same error.
func (c *Chip) Tick() error {
	if !c.tickDone {
		c.opDone = true
		return InvalidCPUState{Reason: "Tick called without TickDone at end of previous cycle"}
	}
	c.tickDone = false

	if c.halted {
		c.opDone = true
		return c.haltErr
	}

	c.opTick++

	var irqLine, nmiLine bool
	if c.irq != nil {
		irqLine = c.irq.Raised() && c.P&PInterrupt == 0
	}
	if c.nmi != nil {
		// NMI is non-maskable: the I flag never blocks it.
		nmiLine = c.nmi.Raised()
	}
	if irqLine || nmiLine {
		switch c.irqRaised {
		case irqNone:
			c.irqRaised = irqIRQ
			if nmiLine {
				c.irqRaised = irqNMI
			}
		case irqIRQ:
			if nmiLine {
				c.irqRaised = irqNMI
			}
		}
	}

	switch {
	case c.opTick == 1:
		c.insnPC = c.PC
		c.op = c.bus.Read(c.PC)
		c.opDone = false
		c.addrDone = false
		if c.irqRaised == irqNone || c.skipInterrupt {
			c.PC++
			c.runningInterrupt = false
		}
		if c.irqRaised != irqNone && !c.skipInterrupt {
			c.runningInterrupt = true
		}
		if c.CycleHook != nil {
			c.CycleHook()
		}
		return nil
	case c.opTick == 2:
		c.opVal = c.bus.Read(c.PC)
		c.prevSkipInterrupt = false
		if c.skipInterrupt {
			c.skipInterrupt = false
			c.prevSkipInterrupt = true
		}
	case c.opTick > 8:
		c.opDone = true
		err := InvalidCPUState{Reason: fmt.Sprintf("opTick %d exceeds maximum instruction length", c.opTick)}
		c.fail(err)
		return err
	}

	var done bool
	var err error
	if c.runningInterrupt {
		vector := IRQVector
		if c.irqRaised == irqNMI {
			vector = NMIVector
		}
		done, err = c.runInterrupt(vector, true)
	} else {
		done, err = c.processOpcode()
	}
	c.opDone = done

	if err != nil {
		c.fail(err)
		return err
	}
	if done {
		c.opTick = 0
		if c.runningInterrupt {
			c.irqRaised = irqNone
		}
		c.runningInterrupt = false
	}
	if c.CycleHook != nil {
		c.CycleHook()
	}
	return nil
}

// fail transitions the CPU into the halted state, remembering err so every
// subsequent Tick/Step reports the same condition.
func (c *Chip) fail(err error) {
	c.halted = true
	c.haltErr = err
}

// TickDone marks the current cycle's post-processing as complete, allowing
// the next Tick call to proceed. Split out (rather than folded into Tick)
// so a host driving several chips off one clock can order their latch
// updates consistently between cycles.
func (c *Chip) TickDone() {
	c.tickDone = true
}

// Step executes exactly one complete instruction (every bus cycle it takes)
// and returns. It is a thin convenience loop over Tick/TickDone for callers
// that don't need cycle-by-cycle control.
func (c *Chip) Step() error {
	for {
		err := c.Tick()
		c.TickDone()
		if err != nil {
			return err
		}
		if c.opDone {
			return nil
		}
	}
}
