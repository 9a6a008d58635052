package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"

	"go6502/irq"
	"go6502/memory"
)

// alwaysLow never raises its line; used where a test doesn't exercise
// interrupts at all.
type alwaysLow struct{}

func (alwaysLow) Raised() bool { return false }

func newTestChip(t *testing.T) (*Chip, *memory.FlatRAM) {
	t.Helper()
	r := memory.NewFlatRAM()
	r.SetVector(ResetVector, 0x0400)
	c := New(r, alwaysLow{}, alwaysLow{})
	if c.PC != 0x0400 {
		t.Fatalf("New: PC after reset = %.4X, want 0400\nstate: %s", c.PC, spew.Sdump(c))
	}
	return c, r
}

// regs is a snapshot of architectural state used with go-test/deep to
// produce a readable diff when a test's expectations don't match.
type regs struct {
	A, X, Y, S, P uint8
	PC            uint16
}

func snapshot(c *Chip) regs {
	return regs{A: c.A, X: c.X, Y: c.Y, S: c.S, P: c.P, PC: c.PC}
}

func runOne(t *testing.T, c *Chip) {
	t.Helper()
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v\nstate: %s", err, spew.Sdump(c))
	}
}

func TestResetState(t *testing.T) {
	r := memory.NewFlatRAM()
	r.SetVector(ResetVector, 0x8000)
	c := New(r, alwaysLow{}, alwaysLow{})
	want := regs{A: 0, X: 0, Y: 0, S: 0xFC, P: PUnused | PInterrupt, PC: 0x8000}
	if diff := deep.Equal(snapshot(c), want); diff != nil {
		t.Errorf("post-reset state diff: %v\nstate: %s", diff, spew.Sdump(c))
	}
}

func TestLDAImmediateFlags(t *testing.T) {
	c, r := newTestChip(t)
	r.Write(0x0400, 0xA9) // LDA #$00
	r.Write(0x0401, 0x00)
	runOne(t, c)
	if !c.Zero() || c.Negative() {
		t.Errorf("LDA #$00: Z=%v N=%v, want Z=true N=false\nstate: %s", c.Zero(), c.Negative(), spew.Sdump(c))
	}

	r.Write(0x0402, 0xA9) // LDA #$80
	r.Write(0x0403, 0x80)
	runOne(t, c)
	if c.Zero() || !c.Negative() {
		t.Errorf("LDA #$80: Z=%v N=%v, want Z=false N=true\nstate: %s", c.Zero(), c.Negative(), spew.Sdump(c))
	}
}

func TestADCNoCarry(t *testing.T) {
	c, r := newTestChip(t)
	c.A = 0x10
	r.Write(0x0400, 0x69) // ADC #$20
	r.Write(0x0401, 0x20)
	runOne(t, c)
	if c.A != 0x30 || c.Carry() || c.Overflow() {
		t.Errorf("ADC #$20: A=%.2X C=%v V=%v, want A=30 C=false V=false\nstate: %s", c.A, c.Carry(), c.Overflow(), spew.Sdump(c))
	}
}

func TestADCSignedOverflow(t *testing.T) {
	c, r := newTestChip(t)
	c.A = 0x7F // +127
	r.Write(0x0400, 0x69)
	r.Write(0x0401, 0x01) // +1 -> -128 in two's complement
	runOne(t, c)
	if c.A != 0x80 || !c.Overflow() || !c.Negative() {
		t.Errorf("ADC overflow: A=%.2X V=%v N=%v, want A=80 V=true N=true\nstate: %s", c.A, c.Overflow(), c.Negative(), spew.Sdump(c))
	}
}

func TestSBCWithBorrow(t *testing.T) {
	c, r := newTestChip(t)
	c.A = 0x05
	c.P &^= PCarry // carry clear means a borrow is pending
	r.Write(0x0400, 0xE9)
	r.Write(0x0401, 0x01)
	runOne(t, c)
	// A - 1 - (1-C) = 5 - 1 - 1 = 3
	if c.A != 0x03 || !c.Carry() {
		t.Errorf("SBC borrow: A=%.2X C=%v, want A=03 C=true\nstate: %s", c.A, c.Carry(), spew.Sdump(c))
	}
}

func TestDecimalFlagHasNoArithmeticEffect(t *testing.T) {
	c, r := newTestChip(t)
	c.A = 0x09
	c.P |= PDecimal
	r.Write(0x0400, 0x69) // ADC #$01
	r.Write(0x0401, 0x01)
	runOne(t, c)
	if c.A != 0x0A {
		t.Errorf("ADC with D set: A=%.2X, want 0A (binary result, no decimal correction)\nstate: %s", c.A, spew.Sdump(c))
	}
}

func TestJMPAbsolute(t *testing.T) {
	c, r := newTestChip(t)
	r.Write(0x0400, 0x4C) // JMP $1234
	r.Write(0x0401, 0x34)
	r.Write(0x0402, 0x12)
	runOne(t, c)
	if c.PC != 0x1234 {
		t.Errorf("JMP: PC=%.4X, want 1234\nstate: %s", c.PC, spew.Sdump(c))
	}
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, r := newTestChip(t)
	r.Write(0x0400, 0x6C) // JMP ($02FF)
	r.Write(0x0401, 0xFF)
	r.Write(0x0402, 0x02)
	r.Write(0x02FF, 0x34) // low byte of target
	r.Write(0x0200, 0x12) // high byte read from the WRONG address (page wrap)
	r.Write(0x0300, 0x99) // correct (non-buggy) address; must NOT be used
	runOne(t, c)
	if c.PC != 0x1234 {
		t.Errorf("JMP indirect page-wrap: PC=%.4X, want 1234\nstate: %s", c.PC, spew.Sdump(c))
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, r := newTestChip(t)
	r.Write(0x0400, 0x20) // JSR $0500
	r.Write(0x0401, 0x00)
	r.Write(0x0402, 0x05)
	r.Write(0x0500, 0x60) // RTS
	startS := c.S

	runOne(t, c)
	if c.PC != 0x0500 {
		t.Fatalf("JSR: PC=%.4X, want 0500\nstate: %s", c.PC, spew.Sdump(c))
	}
	if c.S != startS-2 {
		t.Errorf("JSR: S=%.2X, want %.2X (pushed 2 bytes)", c.S, startS-2)
	}

	runOne(t, c)
	if c.PC != 0x0403 {
		t.Errorf("RTS: PC=%.4X, want 0403 (instruction after JSR)\nstate: %s", c.PC, spew.Sdump(c))
	}
	if c.S != startS {
		t.Errorf("RTS: S=%.2X, want %.2X (restored)", c.S, startS)
	}
}

func TestBranchSelfLoopTraps(t *testing.T) {
	c, r := newTestChip(t)
	c.SetPC(0x04FE)
	r.Write(0x04FE, 0xD0) // BNE *-2
	r.Write(0x04FF, 0xFE)
	runOne(t, c)
	if c.PC != 0x04FE {
		t.Errorf("self-branch: PC=%.4X, want 04FE\nstate: %s", c.PC, spew.Sdump(c))
	}
	if !c.IsTrapped() {
		t.Errorf("self-branch: IsTrapped() = false, want true\nstate: %s", spew.Sdump(c))
	}
}

func TestBranchNotTrappedWhenNotTaken(t *testing.T) {
	c, r := newTestChip(t)
	c.SetPC(0x04FE)
	c.P |= PZero // BNE with Z set does not branch
	r.Write(0x04FE, 0xD0)
	r.Write(0x04FF, 0xFE)
	runOne(t, c)
	if c.PC != 0x0500 {
		t.Errorf("untaken branch: PC=%.4X, want 0500", c.PC)
	}
	if c.IsTrapped() {
		t.Errorf("untaken branch incorrectly set trapped")
	}
}

func TestIllegalOpcodeHalts(t *testing.T) {
	c, r := newTestChip(t)
	r.Write(0x0400, 0x02) // HLT, not in the legal 151-opcode table.
	err := c.Step()
	if err == nil {
		t.Fatalf("Step on illegal opcode: got nil error, want IllegalOpcode")
	}
	if _, ok := err.(IllegalOpcode); !ok {
		t.Errorf("Step on illegal opcode: err = %T, want IllegalOpcode", err)
	}
	if !c.IsHalted() {
		t.Errorf("IsHalted() = false after illegal opcode, want true")
	}
	// Every subsequent Tick/Step reports the same error.
	if err2 := c.Step(); err2 != err {
		t.Errorf("second Step after halt = %v, want same error %v", err2, err)
	}
}

func TestPushPullStack(t *testing.T) {
	c, r := newTestChip(t)
	c.A = 0x42
	r.Write(0x0400, 0x48) // PHA
	r.Write(0x0401, 0xA9) // LDA #$00
	r.Write(0x0402, 0x00)
	r.Write(0x0403, 0x68) // PLA
	runOne(t, c)
	runOne(t, c)
	if c.A != 0 {
		t.Fatalf("LDA #$00 after PHA: A=%.2X, want 00", c.A)
	}
	runOne(t, c)
	if c.A != 0x42 {
		t.Errorf("PLA: A=%.2X, want 42\nstate: %s", c.A, spew.Sdump(c))
	}
}

func TestCompareFlags(t *testing.T) {
	c, r := newTestChip(t)
	c.A = 0x10
	r.Write(0x0400, 0xC9) // CMP #$10
	r.Write(0x0401, 0x10)
	runOne(t, c)
	if !c.Zero() || !c.Carry() {
		t.Errorf("CMP equal: Z=%v C=%v, want both true\nstate: %s", c.Zero(), c.Carry(), spew.Sdump(c))
	}
}

type raisedFlag struct{ raised bool }

func (r *raisedFlag) Raised() bool { return r.raised }

var _ irq.Sender = (*raisedFlag)(nil)

func TestIRQRespectsIFlag(t *testing.T) {
	c, r := newTestChip(t)
	c.P |= PInterrupt
	r.SetVector(IRQVector, 0x0900)
	r.Write(0x0400, 0xEA) // NOP
	c.irq = &raisedFlag{raised: true}
	runOne(t, c)
	if c.PC != 0x0401 {
		t.Errorf("IRQ with I set: PC=%.4X, want 0401 (interrupt deferred)\nstate: %s", c.PC, spew.Sdump(c))
	}
}

func TestIRQTakenWhenEnabled(t *testing.T) {
	c, r := newTestChip(t)
	c.P &^= PInterrupt
	r.SetVector(IRQVector, 0x0900)
	r.Write(0x0400, 0xEA) // NOP; read but never executed since the interrupt preempts it.
	c.irq = &raisedFlag{raised: true}
	runOne(t, c) // entire interrupt sequence
	if c.PC != 0x0900 {
		t.Errorf("IRQ taken: PC=%.4X, want 0900\nstate: %s", c.PC, spew.Sdump(c))
	}
	if !c.InterruptDisable() {
		t.Errorf("IRQ taken: I flag not set after entry")
	}
}
