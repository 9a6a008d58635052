package cpu

import "fmt"

// pushStack writes val to the current stack location and moves S toward
// zero (push decrements).
func (c *Chip) pushStack(val uint8) {
	c.bus.Write(stackPage|uint16(c.S), val)
	c.S--
}

// popStack moves S toward 0xFF (pop increments) and returns the byte there.
func (c *Chip) popStack() uint8 {
	c.S++
	return c.bus.Read(stackPage | uint16(c.S))
}

// branchNOP consumes the offset byte and advances PC when a conditional
// branch's predicate is false.
func (c *Chip) branchNOP() (bool, error) {
	if c.opTick <= 1 || c.opTick > 3 {
		return true, InvalidCPUState{Reason: fmt.Sprintf("branchNOP invalid opTick %d", c.opTick)}
	}
	c.PC++
	return true, nil
}

// performBranch computes the new PC for a taken branch, charging the extra
// cycles the real chip does: one dummy read of the current PC always, and
// one more if the branch target lands on a different page than the byte
// immediately following the instruction.
//
// A branch whose offset is 0xFE (-2) and which lands back on the PC value
// the instruction itself started from is a self-branch: the program can
// never make forward progress, so this sets the trapped flag the way a
// functional-test ROM uses an infinite loop to signal completion.
func (c *Chip) performBranch() (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 4:
		return true, InvalidCPUState{Reason: fmt.Sprintf("performBranch invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		c.PC++
		return false, nil
	case c.opTick == 3:
		if !c.prevSkipInterrupt {
			c.skipInterrupt = true
		}
		c.opAddr = c.PC
		c.PC = (c.PC & 0xFF00) + uint16(uint8(c.PC&0xFF)+c.opVal)
		_ = c.bus.Read(c.PC)
		target := c.opAddr + uint16(int16(int8(c.opVal)))
		if c.opVal == 0xFE && target == c.insnPC {
			c.trapped = true
		}
		if c.PC == target {
			return true, nil
		}
		return false, nil
	}
	// opTick == 4: page-crossing fixup.
	c.PC = c.opAddr + uint16(int16(int8(c.opVal)))
	_ = c.bus.Read(c.PC)
	return true, nil
}

// runInterrupt drives the shared 7-tick shape of NMI, IRQ, and BRK: push PC
// high, PC low, then P (with B/unused bits set per the caller's irq flag),
// set I, then load PC from the given vector. For BRK (irqStyle false) it
// additionally advances PC past the signature byte on tick 2.
func (c *Chip) runInterrupt(vector uint16, irqStyle bool) (bool, error) {
	switch {
	case c.opTick < 1 || c.opTick > 7:
		return true, InvalidCPUState{Reason: fmt.Sprintf("runInterrupt invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		if !irqStyle {
			c.PC++
		}
		return false, nil
	case c.opTick == 3:
		c.pushStack(uint8(c.PC >> 8))
		return false, nil
	case c.opTick == 4:
		c.pushStack(uint8(c.PC & 0xFF))
		return false, nil
	case c.opTick == 5:
		push := c.P | PUnused | PBreak
		if irqStyle {
			push &^= PBreak
		}
		c.P |= PInterrupt
		c.pushStack(push)
		return false, nil
	case c.opTick == 6:
		c.opVal = c.bus.Read(vector)
		return false, nil
	}
	// opTick == 7
	c.PC = uint16(c.bus.Read(vector+1))<<8 | uint16(c.opVal)
	if irqStyle && !c.prevSkipInterrupt {
		c.skipInterrupt = true
	}
	return true, nil
}

// iBRK implements the BRK instruction (spec.md ยง4.2): it shares
// runInterrupt's shape but always reads/discards its signature byte (done
// by the addrImmediate-like tick 2 advance inside runInterrupt when
// irqStyle is false) and sets the B bit in the pushed P. An NMI that
// arrives on the same tick BRK starts pre-empts its vector, matching real
// hardware's priority.
func (c *Chip) iBRK() (bool, error) {
	vector := IRQVector
	itr := c.irqRaised != irqNone
	if c.irqRaised == irqNMI {
		vector = NMIVector
	}
	done, err := c.runInterrupt(vector, itr)
	if done {
		c.irqRaised = irqNone
	}
	return done, err
}

// iRTI pops P then PC off the stack, returning control after an interrupt.
func (c *Chip) iRTI() (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 6:
		return true, InvalidCPUState{Reason: fmt.Sprintf("RTI invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		return false, nil
	case c.opTick == 3:
		c.S--
		_ = c.popStack()
		return false, nil
	case c.opTick == 4:
		c.P = c.popStack()
		c.P |= PUnused
		c.P &^= PBreak
		return false, nil
	case c.opTick == 5:
		c.opVal = c.popStack()
		return false, nil
	}
	// opTick == 6
	c.PC = uint16(c.popStack())<<8 | uint16(c.opVal)
	return true, nil
}
