// Package functionality runs the core against complete instruction
// sequences rather than single opcodes, the way a loader would drive it
// against a real program image.
package functionality

import (
	"testing"

	"go6502/cpu"
	"go6502/irq"
	"go6502/memory"
)

type neverRaised struct{}

func (neverRaised) Raised() bool { return false }

var _ irq.Sender = neverRaised{}

func newChipAt(t *testing.T, entry uint16, program []uint8, origin uint16) (*cpu.Chip, *memory.FlatRAM) {
	t.Helper()
	r := memory.NewFlatRAM()
	if err := r.Load(origin, program); err != nil {
		t.Fatalf("Load: %v", err)
	}
	r.SetVector(cpu.ResetVector, entry)
	chip := cpu.New(r, neverRaised{}, neverRaised{})
	return chip, r
}

func step(t *testing.T, c *cpu.Chip, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
}

// ADC without carry: LDA #5, ADC #3, BRK.
func TestScenarioADCWithoutCarry(t *testing.T) {
	c, _ := newChipAt(t, 0x0400, []uint8{0xA9, 0x05, 0x69, 0x03, 0x00}, 0x0400)
	step(t, c, 2)
	if c.A != 0x08 || c.Carry() || c.Overflow() || c.Zero() || c.Negative() {
		t.Errorf("A=%.2X C=%v V=%v Z=%v N=%v, want A=08 all flags clear",
			c.A, c.Carry(), c.Overflow(), c.Zero(), c.Negative())
	}
}

// SBC with borrow: LDA #5, SEC, SBC #3.
func TestScenarioSBCWithBorrow(t *testing.T) {
	c, _ := newChipAt(t, 0x0400, []uint8{0xA9, 0x05, 0x38, 0xE9, 0x03}, 0x0400)
	step(t, c, 3)
	if c.A != 0x02 || !c.Carry() || c.Overflow() {
		t.Errorf("A=%.2X C=%v V=%v, want A=02 C=true V=false", c.A, c.Carry(), c.Overflow())
	}
}

// Signed overflow on ADC: LDA #$7F, ADC #1.
func TestScenarioADCSignedOverflow(t *testing.T) {
	c, _ := newChipAt(t, 0x0400, []uint8{0xA9, 0x7F, 0x69, 0x01}, 0x0400)
	step(t, c, 2)
	if c.A != 0x80 || !c.Overflow() || !c.Negative() || c.Carry() {
		t.Errorf("A=%.2X V=%v N=%v C=%v, want A=80 V=true N=true C=false",
			c.A, c.Overflow(), c.Negative(), c.Carry())
	}
}

// JMP indirect page-wrap: the high byte of the target is read from $xx00,
// not $(xx+1)00, when the pointer's low byte is 0xFF.
func TestScenarioJMPIndirectPageWrap(t *testing.T) {
	r := memory.NewFlatRAM()
	r.Write(0x0400, 0x6C)
	r.Write(0x0401, 0xFF)
	r.Write(0x0402, 0x02)
	r.Write(0x02FF, 0x34)
	r.Write(0x0200, 0x12)
	r.SetVector(cpu.ResetVector, 0x0400)
	c := cpu.New(r, neverRaised{}, neverRaised{})
	step(t, c, 1)
	if c.PC != 0x1234 {
		t.Errorf("PC=%.4X, want 1234", c.PC)
	}
}

// JSR/RTS round-trip: JSR $0408, NOP, ... RTS at $0408.
func TestScenarioJSRRTSRoundTrip(t *testing.T) {
	program := []uint8{0x20, 0x08, 0x04, 0xEA, 0x00, 0x00, 0x00, 0x00, 0x60}
	c, r := newChipAt(t, 0x0400, program, 0x0400)
	startS := c.S

	step(t, c, 1)
	if c.PC != 0x0408 {
		t.Fatalf("after JSR: PC=%.4X, want 0408", c.PC)
	}
	if got, want := c.S, startS-2; got != want {
		t.Errorf("after JSR: S=%.2X, want %.2X", got, want)
	}
	if got, want := r.Read(0x0100|uint16(c.S+1)), uint8(0x02); got != want {
		t.Errorf("pushed PCL = %.2X, want %.2X", got, want)
	}
	if got, want := r.Read(0x0100|uint16(c.S+2)), uint8(0x04); got != want {
		t.Errorf("pushed PCH = %.2X, want %.2X", got, want)
	}

	step(t, c, 1)
	if c.PC != 0x0403 {
		t.Errorf("after RTS: PC=%.4X, want 0403", c.PC)
	}
	if c.S != startS {
		t.Errorf("after RTS: S=%.2X, want %.2X", c.S, startS)
	}
}

// Branch page-cross trap detection: BNE -2 with Z clear loops back onto
// itself and must be flagged as trapped rather than run forever.
func TestScenarioBranchTraps(t *testing.T) {
	r := memory.NewFlatRAM()
	r.Write(0x04FE, 0xD0)
	r.Write(0x04FF, 0xFE)
	r.SetVector(cpu.ResetVector, 0x04FE)
	c := cpu.New(r, neverRaised{}, neverRaised{})
	step(t, c, 1)
	if c.PC != 0x04FE {
		t.Errorf("PC=%.4X, want 04FE", c.PC)
	}
	if !c.IsTrapped() {
		t.Errorf("IsTrapped() = false, want true")
	}
}

// Pushing and popping P preserves every flag except the never-stored B bit.
func TestInvariantPHPPLPRoundTrip(t *testing.T) {
	r := memory.NewFlatRAM()
	r.SetVector(cpu.ResetVector, 0x0400)
	r.Write(0x0400, 0x08) // PHP
	r.Write(0x0401, 0xA9) // LDA #$00, scribbles on Z/N in between
	r.Write(0x0402, 0x00)
	r.Write(0x0403, 0x28) // PLP
	c := cpu.New(r, neverRaised{}, neverRaised{})
	c.P = 0xE5 // arbitrary mix of C/Z/I/D/V/N bits plus the always-set bits.
	want := c.P
	step(t, c, 3)
	if c.P != want {
		t.Errorf("P after PHP/LDA/PLP = %.2X, want %.2X", c.P, want)
	}
}

// writeLog wraps a FlatRAM and records every value written to addr.
type writeLog struct {
	*memory.FlatRAM
	addr   uint16
	writes []uint8
}

func (w *writeLog) Write(addr uint16, val uint8) {
	if addr == w.addr {
		w.writes = append(w.writes, val)
	}
	w.FlatRAM.Write(addr, val)
}

// Every RMW instruction writes the untouched value back before writing the
// transformed one: ASL on a tracked address should see two writes, the
// first equal to the original byte.
func TestInvariantRMWDummyWrite(t *testing.T) {
	r := memory.NewFlatRAM()
	r.SetVector(cpu.ResetVector, 0x0400)
	r.Write(0x0400, 0x06) // ASL $10
	r.Write(0x0401, 0x10)
	r.Write(0x0010, 0x81) // 1000_0001
	bus := &writeLog{FlatRAM: r, addr: 0x0010}
	c := cpu.New(bus, neverRaised{}, neverRaised{})
	step(t, c, 1)
	if got, want := len(bus.writes), 2; got != want {
		t.Fatalf("ASL $10 wrote $10 %d times (% X), want %d", got, bus.writes, want)
	}
	if got, want := bus.writes[0], uint8(0x81); got != want {
		t.Errorf("first write to $10 = %.2X, want %.2X (original byte)", got, want)
	}
	if got, want := bus.writes[1], uint8(0x02); got != want {
		t.Errorf("second write to $10 = %.2X, want %.2X (shifted byte)", got, want)
	}
	if got, want := r.Read(0x0010), uint8(0x02); got != want {
		t.Errorf("ASL $10 result = %.2X, want %.2X", got, want)
	}
	if !c.Carry() {
		t.Errorf("ASL $10: carry not set from shifted-out bit 7")
	}
}
