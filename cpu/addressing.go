package cpu

import "fmt"

// instructionMode tells an addressing-mode routine which category of
// instruction is driving it, since load/store/RMW instructions diverge in
// which ticks are "done" and whether a dummy write occurs.
type instructionMode int

const (
	modeLoad instructionMode = iota
	modeRMW
	modeStore
)

// addrAccumulator implements accumulator addressing (ASL/LSR/ROL/ROR A): a
// dummy read of PC, then the transform applies directly to A with no memory
// access at all.
func (c *Chip) addrAccumulator(instructionMode) (bool, error) {
	if c.opTick != 2 {
		return true, InvalidCPUState{Reason: fmt.Sprintf("addrAccumulator invalid opTick %d, not 2", c.opTick)}
	}
	_ = c.bus.Read(c.PC)
	return true, nil
}

// addrImmediate implements immediate mode (#i): opVal was already read on
// tick 2 by the stepper, so this just advances PC past it.
func (c *Chip) addrImmediate(instructionMode) (bool, error) {
	if c.opTick != 2 {
		return true, InvalidCPUState{Reason: fmt.Sprintf("addrImmediate invalid opTick %d, not 2", c.opTick)}
	}
	c.PC++
	return true, nil
}

// addrZP implements zero-page mode (d).
func (c *Chip) addrZP(mode instructionMode) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 4:
		return true, InvalidCPUState{Reason: fmt.Sprintf("addrZP invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return mode == modeStore, nil
	case c.opTick == 3:
		c.opVal = c.bus.Read(c.opAddr)
		return mode != modeRMW, nil
	}
	// opTick == 4: the mandatory RMW dummy write of the original value.
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrZPX and addrZPY implement zero-page indexed modes (d,x / d,y), both
// wrapping the pointer addition within the zero page.
func (c *Chip) addrZPX(mode instructionMode) (bool, error) { return c.addrZPIndexed(mode, c.X) }
func (c *Chip) addrZPY(mode instructionMode) (bool, error) { return c.addrZPIndexed(mode, c.Y) }

func (c *Chip) addrZPIndexed(mode instructionMode, reg uint8) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 5:
		return true, InvalidCPUState{Reason: fmt.Sprintf("addrZPIndexed invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		_ = c.bus.Read(c.opAddr)
		c.opAddr = uint16(uint8(c.opVal + reg))
		return mode == modeStore, nil
	case c.opTick == 4:
		c.opVal = c.bus.Read(c.opAddr)
		return mode != modeRMW, nil
	}
	// opTick == 5
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrAbsolute implements absolute mode (a).
func (c *Chip) addrAbsolute(mode instructionMode) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 5:
		return true, InvalidCPUState{Reason: fmt.Sprintf("addrAbsolute invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		c.opVal = c.bus.Read(c.PC)
		c.PC++
		c.opAddr |= uint16(c.opVal) << 8
		return mode == modeStore, nil
	case c.opTick == 4:
		c.opVal = c.bus.Read(c.opAddr)
		return mode != modeRMW, nil
	}
	// opTick == 5
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrAbsoluteX and addrAbsoluteY implement absolute indexed modes (a,x /
// a,y), including the page-crossing dummy read: for read modes the extra
// cycle is only observable when the addition actually crosses a page; for
// store and RMW it always happens.
func (c *Chip) addrAbsoluteX(mode instructionMode) (bool, error) {
	return c.addrAbsoluteIndexed(mode, c.X)
}
func (c *Chip) addrAbsoluteY(mode instructionMode) (bool, error) {
	return c.addrAbsoluteIndexed(mode, c.Y)
}

func (c *Chip) addrAbsoluteIndexed(mode instructionMode, reg uint8) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 6:
		return true, InvalidCPUState{Reason: fmt.Sprintf("addrAbsoluteIndexed invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		c.opVal = c.bus.Read(c.PC)
		c.PC++
		c.opAddr |= uint16(c.opVal) << 8
		// Form the (possibly wrong) dummy address: same page, indexed low byte.
		dummy := (c.opAddr & 0xFF00) | uint16(uint8(c.opAddr&0xFF)+reg)
		crossed := dummy != c.opAddr+uint16(reg)
		c.opVal = 0
		if crossed {
			c.opVal = 1
		}
		c.opAddr = dummy
		return false, nil
	case c.opTick == 4:
		crossed := c.opVal != 0
		c.opVal = c.bus.Read(c.opAddr)
		done := true
		if crossed {
			c.opAddr += 0x0100
			if mode == modeLoad {
				done = false
			}
		}
		if mode == modeRMW {
			done = false
		}
		return done, nil
	case c.opTick == 5:
		c.opVal = c.bus.Read(c.opAddr)
		return mode != modeRMW, nil
	}
	// opTick == 6
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrIndirectX implements (d,x): both pointer bytes are fetched from the
// zero page, wrapped to 8 bits — ptr+1 never escapes into page 1.
func (c *Chip) addrIndirectX(mode instructionMode) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 7:
		return true, InvalidCPUState{Reason: fmt.Sprintf("addrIndirectX invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		_ = c.bus.Read(c.opAddr)
		c.opAddr = uint16(uint8(c.opVal + c.X))
		return false, nil
	case c.opTick == 4:
		c.opVal = c.bus.Read(c.opAddr)
		c.opAddr = uint16(uint8(c.opAddr) + 1)
		return false, nil
	case c.opTick == 5:
		c.opAddr = uint16(c.bus.Read(c.opAddr))<<8 | uint16(c.opVal)
		return mode == modeStore, nil
	case c.opTick == 6:
		c.opVal = c.bus.Read(c.opAddr)
		return mode != modeRMW, nil
	}
	// opTick == 7
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}

// addrIndirectY implements (d),y: the zero-page pointer is fetched first
// (both bytes wrapped within the zero page), then Y is added to the
// resulting 16 bit address with the same page-crossing dummy-read behavior
// as the absolute indexed modes.
func (c *Chip) addrIndirectY(mode instructionMode) (bool, error) {
	switch {
	case c.opTick <= 1 || c.opTick > 7:
		return true, InvalidCPUState{Reason: fmt.Sprintf("addrIndirectY invalid opTick %d", c.opTick)}
	case c.opTick == 2:
		c.opAddr = uint16(c.opVal)
		c.PC++
		return false, nil
	case c.opTick == 3:
		c.opVal = c.bus.Read(c.opAddr)
		c.opAddr = uint16(uint8(c.opAddr) + 1)
		return false, nil
	case c.opTick == 4:
		c.opAddr = uint16(c.bus.Read(c.opAddr))<<8 | uint16(c.opVal)
		dummy := (c.opAddr & 0xFF00) | uint16(uint8(c.opAddr&0xFF)+c.Y)
		crossed := dummy != c.opAddr+uint16(c.Y)
		c.opVal = 0
		if crossed {
			c.opVal = 1
		}
		c.opAddr = dummy
		return false, nil
	case c.opTick == 5:
		crossed := c.opVal != 0
		c.opVal = c.bus.Read(c.opAddr)
		done := true
		if crossed {
			c.opAddr += 0x0100
			if mode == modeLoad {
				done = false
			}
		}
		if mode == modeRMW {
			done = false
		}
		return done, nil
	case c.opTick == 6:
		c.opVal = c.bus.Read(c.opAddr)
		return mode != modeRMW, nil
	}
	// opTick == 7
	c.bus.Write(c.opAddr, c.opVal)
	return true, nil
}
