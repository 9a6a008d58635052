package cpu

import "fmt"

// loadRegisterA, loadRegisterX, and loadRegisterY are curried versions of
// loadRegister used as the opFunc argument to loadInstruction.
func (c *Chip) loadRegisterA() (bool, error) { return c.loadRegister(&c.A, c.opVal) }
func (c *Chip) loadRegisterX() (bool, error) { return c.loadRegister(&c.X, c.opVal) }
func (c *Chip) loadRegisterY() (bool, error) { return c.loadRegister(&c.Y, c.opVal) }

// iADC implements addition with carry (spec.md ยง4.3): binary math only, no
// decimal-mode correction regardless of the D flag's state.
func (c *Chip) iADC() (bool, error) {
	carry := c.P & PCarry
	sum := c.A + c.opVal + carry
	c.overflowCheck(c.A, c.opVal, sum)
	c.carryCheck(uint16(c.A) + uint16(c.opVal) + uint16(carry))
	return c.loadRegister(&c.A, sum)
}

// iSBC implements subtraction with borrow as ones-complement-and-ADC, the
// same binary-only identity the NMOS chip uses internally.
func (c *Chip) iSBC() (bool, error) {
	c.opVal = ^c.opVal
	return c.iADC()
}

// iORA, iAND, iEOR implement the bitwise accumulator operations.
func (c *Chip) iORA() (bool, error) { return c.loadRegister(&c.A, c.A|c.opVal) }
func (c *Chip) iAND() (bool, error) { return c.loadRegister(&c.A, c.A&c.opVal) }
func (c *Chip) iEOR() (bool, error) { return c.loadRegister(&c.A, c.A^c.opVal) }

// iBIT implements BIT: Z from A&opVal, N and V copied directly from bits 7
// and 6 of the tested byte (not of the AND result).
func (c *Chip) iBIT() (bool, error) {
	c.zeroCheck(c.A & c.opVal)
	c.negativeCheck(c.opVal)
	c.P &^= POverflow
	if c.opVal&POverflow != 0 {
		c.P |= POverflow
	}
	return true, nil
}

// iASLAcc and iASL implement arithmetic shift left.
func (c *Chip) iASLAcc() (bool, error) {
	c.carryCheck(uint16(c.A) << 1)
	return c.loadRegister(&c.A, c.A<<1)
}

func (c *Chip) iASL() (bool, error) {
	new := c.opVal << 1
	c.bus.Write(c.opAddr, new)
	c.carryCheck(uint16(c.opVal) << 1)
	c.zeroCheck(new)
	c.negativeCheck(new)
	return true, nil
}

// iLSRAcc and iLSR implement logical shift right.
func (c *Chip) iLSRAcc() (bool, error) {
	c.carryCheck(uint16(c.A&0x01) << 8)
	return c.loadRegister(&c.A, c.A>>1)
}

func (c *Chip) iLSR() (bool, error) {
	new := c.opVal >> 1
	c.bus.Write(c.opAddr, new)
	c.carryCheck(uint16(c.opVal&0x01) << 8)
	c.zeroCheck(new)
	c.negativeCheck(new)
	return true, nil
}

// iROLAcc and iROL implement rotate left through carry.
func (c *Chip) iROLAcc() (bool, error) {
	carry := c.P & PCarry
	c.carryCheck(uint16(c.A) << 1)
	return c.loadRegister(&c.A, (c.A<<1)|carry)
}

func (c *Chip) iROL() (bool, error) {
	carry := c.P & PCarry
	new := (c.opVal << 1) | carry
	c.bus.Write(c.opAddr, new)
	c.carryCheck(uint16(c.opVal) << 1)
	c.zeroCheck(new)
	c.negativeCheck(new)
	return true, nil
}

// iRORAcc and iROR implement rotate right through carry.
func (c *Chip) iRORAcc() (bool, error) {
	carry := (c.P & PCarry) << 7
	c.carryCheck((uint16(c.A) << 8) & 0x0100)
	return c.loadRegister(&c.A, (c.A>>1)|carry)
}

func (c *Chip) iROR() (bool, error) {
	carry := (c.P & PCarry) << 7
	new := (c.opVal >> 1) | carry
	c.bus.Write(c.opAddr, new)
	c.carryCheck((uint16(c.opVal) << 8) & 0x0100)
	c.zeroCheck(new)
	c.negativeCheck(new)
	return true, nil
}

// store writes val to addr with no flag side effects (the generic STA/STX/STY
// opFunc).
func (c *Chip) store(val uint8, addr uint16) (bool, error) {
	c.bus.Write(addr, val)
	return true, nil
}

// storeWithFlags writes val to addr and updates Z/N from it; used by INC/DEC.
func (c *Chip) storeWithFlags(val uint8, addr uint16) (bool, error) {
	c.zeroCheck(val)
	c.negativeCheck(val)
	return c.store(val, addr)
}

func (c *Chip) iINC() (bool, error) { return c.storeWithFlags(c.opVal+1, c.opAddr) }
func (c *Chip) iDEC() (bool, error) { return c.storeWithFlags(c.opVal-1, c.opAddr) }

// compare implements the shared CMP/CPX/CPY logic: reg-val computed as
// two's-complement addition so the carry flag comes out of the same
// uint16 math carryCheck already knows how to read.
func (c *Chip) compare(reg, val uint8) (bool, error) {
	c.zeroCheck(reg - val)
	c.negativeCheck(reg - val)
	c.carryCheck(uint16(reg) + uint16(^val) + uint16(1))
	return true, nil
}

func (c *Chip) compareA() (bool, error) { return c.compare(c.A, c.opVal) }
func (c *Chip) compareX() (bool, error) { return c.compare(c.X, c.opVal) }
func (c *Chip) compareY() (bool, error) { return c.compare(c.Y, c.opVal) }

// iBCC, iBCS, iBEQ, iBMI, iBNE, iBPL, iBVC, iBVS are the eight conditional
// branches: each dispatches to performBranch when its predicate holds, or
// branchNOP (consume the offset byte, no extra cycle) otherwise.
func (c *Chip) iBCC() (bool, error) {
	if c.P&PCarry == 0 {
		return c.performBranch()
	}
	return c.branchNOP()
}

func (c *Chip) iBCS() (bool, error) {
	if c.P&PCarry != 0 {
		return c.performBranch()
	}
	return c.branchNOP()
}

func (c *Chip) iBEQ() (bool, error) {
	if c.P&PZero != 0 {
		return c.performBranch()
	}
	return c.branchNOP()
}

func (c *Chip) iBMI() (bool, error) {
	if c.P&PNegative != 0 {
		return c.performBranch()
	}
	return c.branchNOP()
}

func (c *Chip) iBNE() (bool, error) {
	if c.P&PZero == 0 {
		return c.performBranch()
	}
	return c.branchNOP()
}

func (c *Chip) iBPL() (bool, error) {
	if c.P&PNegative == 0 {
		return c.performBranch()
	}
	return c.branchNOP()
}

func (c *Chip) iBVC() (bool, error) {
	if c.P&POverflow == 0 {
		return c.performBranch()
	}
	return c.branchNOP()
}

func (c *Chip) iBVS() (bool, error) {
	if c.P&POverflow != 0 {
		return c.performBranch()
	}
	return c.branchNOP()
}

// iJMP implements absolute JMP. It doesn't go through the addressing-mode
// helpers since it neither loads, stores, nor read-modify-writes: opVal (the
// low byte) was already fetched generically on tick 2. A JMP whose target is
// its own opcode address is a self-jump and sets the trapped flag.
func (c *Chip) iJMP() (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 3:
		return true, InvalidCPUState{Reason: fmt.Sprintf("JMP invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		c.PC++
		return false, nil
	}
	// opTick == 3
	hi := c.bus.Read(c.PC)
	c.PC = uint16(hi)<<8 | uint16(c.opVal)
	if c.PC == c.insnPC {
		c.trapped = true
	}
	return true, nil
}

// iJMPIndirect implements indirect JMP (spec.md ยง4.3): the pointer address
// is fetched with the same first three ticks as absolute mode, then the
// target is read through that pointer with the NMOS page-wrap bug, where a
// pointer ending in 0xFF reads its high byte from the start of the same
// page instead of the next one.
func (c *Chip) iJMPIndirect() (bool, error) {
	if c.opTick < 4 {
		return c.addrAbsolute(modeLoad)
	}
	switch {
	case c.opTick > 5:
		return true, InvalidCPUState{Reason: fmt.Sprintf("JMP indirect invalid opTick %d", c.opTick)}
	case c.opTick == 4:
		c.opVal = c.bus.Read(c.opAddr)
		return false, nil
	}
	// opTick == 5
	wrapped := (c.opAddr & 0xFF00) | uint16(uint8(c.opAddr&0xFF)+1)
	hi := c.bus.Read(wrapped)
	c.PC = uint16(hi)<<8 | uint16(c.opVal)
	return true, nil
}

// iJSR pushes the return address (PC of the last byte of the JSR
// instruction, not the following one) and jumps to the target.
func (c *Chip) iJSR() (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 6:
		return true, InvalidCPUState{Reason: fmt.Sprintf("JSR invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		c.PC++
		return false, nil
	case c.opTick == 3:
		c.S--
		_ = c.popStack()
		return false, nil
	case c.opTick == 4:
		c.pushStack(uint8(c.PC >> 8))
		return false, nil
	case c.opTick == 5:
		c.pushStack(uint8(c.PC & 0xFF))
		return false, nil
	}
	// opTick == 6
	hi := c.bus.Read(c.PC)
	c.PC = uint16(hi)<<8 | uint16(c.opVal)
	return true, nil
}

// iRTS pops the return address pushed by JSR and advances past it, since
// JSR pushed the address of its own last byte rather than the next
// instruction.
func (c *Chip) iRTS() (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 6:
		return true, InvalidCPUState{Reason: fmt.Sprintf("RTS invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	case c.opTick == 3:
		c.S--
		_ = c.popStack()
		return false, nil
	case c.opTick == 4:
		c.opVal = c.popStack()
		return false, nil
	case c.opTick == 5:
		c.PC = uint16(c.popStack())<<8 | uint16(c.opVal)
		return false, nil
	}
	// opTick == 6
	_ = c.bus.Read(c.PC)
	c.PC++
	return true, nil
}

// iPHA pushes A.
func (c *Chip) iPHA() (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 3:
		return true, InvalidCPUState{Reason: fmt.Sprintf("PHA invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	}
	c.pushStack(c.A)
	return true, nil
}

// iPLA pops the stack into A, updating Z/N.
func (c *Chip) iPLA() (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 4:
		return true, InvalidCPUState{Reason: fmt.Sprintf("PLA invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	case c.opTick == 3:
		c.S--
		_ = c.popStack()
		return false, nil
	}
	return c.loadRegister(&c.A, c.popStack())
}

// iPHP pushes P with both the unused bit and B always set, regardless of
// their live values.
func (c *Chip) iPHP() (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 3:
		return true, InvalidCPUState{Reason: fmt.Sprintf("PHP invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	}
	c.pushStack(c.P | PUnused | PBreak)
	return true, nil
}

// iPLP pops the stack into P; the unused bit always reads 1 and B is never
// actually stored in the live register.
func (c *Chip) iPLP() (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 4:
		return true, InvalidCPUState{Reason: fmt.Sprintf("PLP invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	case c.opTick == 3:
		c.S--
		_ = c.popStack()
		return false, nil
	}
	c.P = c.popStack()
	c.P |= PUnused
	c.P &^= PBreak
	return true, nil
}

// iCLC, iSEC, iCLI, iSEI, iCLD, iSED, iCLV implement the single-bit status
// flag instructions.
func (c *Chip) iCLC() (bool, error) { c.P &^= PCarry; return true, nil }
func (c *Chip) iSEC() (bool, error) { c.P |= PCarry; return true, nil }
func (c *Chip) iCLI() (bool, error) { c.P &^= PInterrupt; return true, nil }
func (c *Chip) iSEI() (bool, error) { c.P |= PInterrupt; return true, nil }
func (c *Chip) iCLD() (bool, error) { c.P &^= PDecimal; return true, nil }
func (c *Chip) iSED() (bool, error) { c.P |= PDecimal; return true, nil }
func (c *Chip) iCLV() (bool, error) { c.P &^= POverflow; return true, nil }

// iTAX, iTAY, iTXA, iTYA, iTSX, iINX, iINY, iDEX, iDEY implement the
// register transfer and increment/decrement instructions. TXS is the one
// transfer that doesn't touch Z/N (the stack pointer has no flag meaning).
func (c *Chip) iTAX() (bool, error) { return c.loadRegister(&c.X, c.A) }
func (c *Chip) iTAY() (bool, error) { return c.loadRegister(&c.Y, c.A) }
func (c *Chip) iTXA() (bool, error) { return c.loadRegister(&c.A, c.X) }
func (c *Chip) iTYA() (bool, error) { return c.loadRegister(&c.A, c.Y) }
func (c *Chip) iTSX() (bool, error) { return c.loadRegister(&c.X, c.S) }
func (c *Chip) iTXS() (bool, error) { c.S = c.X; return true, nil }
func (c *Chip) iINX() (bool, error) { return c.loadRegister(&c.X, c.X+1) }
func (c *Chip) iINY() (bool, error) { return c.loadRegister(&c.Y, c.Y+1) }
func (c *Chip) iDEX() (bool, error) { return c.loadRegister(&c.X, c.X-1) }
func (c *Chip) iDEY() (bool, error) { return c.loadRegister(&c.Y, c.Y-1) }

// iNOP consumes no operand and has no effect beyond the ticks implicit
// addressing mode already charged (single-byte NOP, opcode 0xEA).
func (c *Chip) iNOP() (bool, error) { return true, nil }

// loadInstruction abstracts every load-type opcode: drive addrFunc in modeLoad
// until it reports the address phase done, then hand off to opFunc (which
// reads c.opVal) on the same tick.
func (c *Chip) loadInstruction(addrFunc func(instructionMode) (bool, error), opFunc func() (bool, error)) (bool, error) {
	var err error
	if !c.addrDone {
		c.addrDone, err = addrFunc(modeLoad)
	}
	if err != nil {
		return true, err
	}
	if c.addrDone {
		return opFunc()
	}
	return false, nil
}

// rmwInstruction abstracts every read-modify-write opcode: addrFunc itself
// performs the mandatory dummy write of the original value before opFunc
// computes and stores the new one.
func (c *Chip) rmwInstruction(addrFunc func(instructionMode) (bool, error), opFunc func() (bool, error)) (bool, error) {
	var err error
	if !c.addrDone {
		c.addrDone, err = addrFunc(modeRMW)
		return false, err
	}
	return opFunc()
}

// storeInstruction abstracts every store-type opcode (STA/STX/STY): once
// addrFunc has resolved c.opAddr, val is written directly with no
// intervening read of the destination.
func (c *Chip) storeInstruction(addrFunc func(instructionMode) (bool, error), val uint8) (bool, error) {
	var err error
	if !c.addrDone {
		c.addrDone, err = addrFunc(modeStore)
		return false, err
	}
	return c.store(val, c.opAddr)
}
