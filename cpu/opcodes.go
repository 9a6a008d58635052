package cpu

// processOpcode dispatches the 151 documented NMOS 6502 opcodes (spec.md
// ยง4.1/ยง4.6) to their addressing-mode and operation functions. Any other
// byte is an illegal opcode: the CPU halts rather than emulating the
// undocumented behavior real silicon happens to exhibit there.
//
// Opcode layout: http://www.obelisk.me.uk/6502/reference.html
func (c *Chip) processOpcode() (bool, error) {
	switch c.op {
	case 0x00: // BRK
		return c.iBRK()
	case 0x01: // ORA (d,x)
		return c.loadInstruction(c.addrIndirectX, c.iORA)
	case 0x05: // ORA d
		return c.loadInstruction(c.addrZP, c.iORA)
	case 0x06: // ASL d
		return c.rmwInstruction(c.addrZP, c.iASL)
	case 0x08: // PHP
		return c.iPHP()
	case 0x09: // ORA #i
		return c.loadInstruction(c.addrImmediate, c.iORA)
	case 0x0A: // ASL A
		return c.iASLAcc()
	case 0x0D: // ORA a
		return c.loadInstruction(c.addrAbsolute, c.iORA)
	case 0x0E: // ASL a
		return c.rmwInstruction(c.addrAbsolute, c.iASL)
	case 0x10: // BPL
		return c.iBPL()
	case 0x11: // ORA (d),y
		return c.loadInstruction(c.addrIndirectY, c.iORA)
	case 0x15: // ORA d,x
		return c.loadInstruction(c.addrZPX, c.iORA)
	case 0x16: // ASL d,x
		return c.rmwInstruction(c.addrZPX, c.iASL)
	case 0x18: // CLC
		return c.iCLC()
	case 0x19: // ORA a,y
		return c.loadInstruction(c.addrAbsoluteY, c.iORA)
	case 0x1D: // ORA a,x
		return c.loadInstruction(c.addrAbsoluteX, c.iORA)
	case 0x1E: // ASL a,x
		return c.rmwInstruction(c.addrAbsoluteX, c.iASL)
	case 0x20: // JSR a
		return c.iJSR()
	case 0x21: // AND (d,x)
		return c.loadInstruction(c.addrIndirectX, c.iAND)
	case 0x24: // BIT d
		return c.loadInstruction(c.addrZP, c.iBIT)
	case 0x25: // AND d
		return c.loadInstruction(c.addrZP, c.iAND)
	case 0x26: // ROL d
		return c.rmwInstruction(c.addrZP, c.iROL)
	case 0x28: // PLP
		return c.iPLP()
	case 0x29: // AND #i
		return c.loadInstruction(c.addrImmediate, c.iAND)
	case 0x2A: // ROL A
		return c.iROLAcc()
	case 0x2C: // BIT a
		return c.loadInstruction(c.addrAbsolute, c.iBIT)
	case 0x2D: // AND a
		return c.loadInstruction(c.addrAbsolute, c.iAND)
	case 0x2E: // ROL a
		return c.rmwInstruction(c.addrAbsolute, c.iROL)
	case 0x30: // BMI
		return c.iBMI()
	case 0x31: // AND (d),y
		return c.loadInstruction(c.addrIndirectY, c.iAND)
	case 0x35: // AND d,x
		return c.loadInstruction(c.addrZPX, c.iAND)
	case 0x36: // ROL d,x
		return c.rmwInstruction(c.addrZPX, c.iROL)
	case 0x38: // SEC
		return c.iSEC()
	case 0x39: // AND a,y
		return c.loadInstruction(c.addrAbsoluteY, c.iAND)
	case 0x3D: // AND a,x
		return c.loadInstruction(c.addrAbsoluteX, c.iAND)
	case 0x3E: // ROL a,x
		return c.rmwInstruction(c.addrAbsoluteX, c.iROL)
	case 0x40: // RTI
		return c.iRTI()
	case 0x41: // EOR (d,x)
		return c.loadInstruction(c.addrIndirectX, c.iEOR)
	case 0x45: // EOR d
		return c.loadInstruction(c.addrZP, c.iEOR)
	case 0x46: // LSR d
		return c.rmwInstruction(c.addrZP, c.iLSR)
	case 0x48: // PHA
		return c.iPHA()
	case 0x49: // EOR #i
		return c.loadInstruction(c.addrImmediate, c.iEOR)
	case 0x4A: // LSR A
		return c.iLSRAcc()
	case 0x4C: // JMP a
		return c.iJMP()
	case 0x4D: // EOR a
		return c.loadInstruction(c.addrAbsolute, c.iEOR)
	case 0x4E: // LSR a
		return c.rmwInstruction(c.addrAbsolute, c.iLSR)
	case 0x50: // BVC
		return c.iBVC()
	case 0x51: // EOR (d),y
		return c.loadInstruction(c.addrIndirectY, c.iEOR)
	case 0x55: // EOR d,x
		return c.loadInstruction(c.addrZPX, c.iEOR)
	case 0x56: // LSR d,x
		return c.rmwInstruction(c.addrZPX, c.iLSR)
	case 0x58: // CLI
		return c.iCLI()
	case 0x59: // EOR a,y
		return c.loadInstruction(c.addrAbsoluteY, c.iEOR)
	case 0x5D: // EOR a,x
		return c.loadInstruction(c.addrAbsoluteX, c.iEOR)
	case 0x5E: // LSR a,x
		return c.rmwInstruction(c.addrAbsoluteX, c.iLSR)
	case 0x60: // RTS
		return c.iRTS()
	case 0x61: // ADC (d,x)
		return c.loadInstruction(c.addrIndirectX, c.iADC)
	case 0x65: // ADC d
		return c.loadInstruction(c.addrZP, c.iADC)
	case 0x66: // ROR d
		return c.rmwInstruction(c.addrZP, c.iROR)
	case 0x68: // PLA
		return c.iPLA()
	case 0x69: // ADC #i
		return c.loadInstruction(c.addrImmediate, c.iADC)
	case 0x6A: // ROR A
		return c.iRORAcc()
	case 0x6C: // JMP (a)
		return c.iJMPIndirect()
	case 0x6D: // ADC a
		return c.loadInstruction(c.addrAbsolute, c.iADC)
	case 0x6E: // ROR a
		return c.rmwInstruction(c.addrAbsolute, c.iROR)
	case 0x70: // BVS
		return c.iBVS()
	case 0x71: // ADC (d),y
		return c.loadInstruction(c.addrIndirectY, c.iADC)
	case 0x75: // ADC d,x
		return c.loadInstruction(c.addrZPX, c.iADC)
	case 0x76: // ROR d,x
		return c.rmwInstruction(c.addrZPX, c.iROR)
	case 0x78: // SEI
		return c.iSEI()
	case 0x79: // ADC a,y
		return c.loadInstruction(c.addrAbsoluteY, c.iADC)
	case 0x7D: // ADC a,x
		return c.loadInstruction(c.addrAbsoluteX, c.iADC)
	case 0x7E: // ROR a,x
		return c.rmwInstruction(c.addrAbsoluteX, c.iROR)
	case 0x81: // STA (d,x)
		return c.storeInstruction(c.addrIndirectX, c.A)
	case 0x84: // STY d
		return c.storeInstruction(c.addrZP, c.Y)
	case 0x85: // STA d
		return c.storeInstruction(c.addrZP, c.A)
	case 0x86: // STX d
		return c.storeInstruction(c.addrZP, c.X)
	case 0x88: // DEY
		return c.iDEY()
	case 0x8A: // TXA
		return c.iTXA()
	case 0x8C: // STY a
		return c.storeInstruction(c.addrAbsolute, c.Y)
	case 0x8D: // STA a
		return c.storeInstruction(c.addrAbsolute, c.A)
	case 0x8E: // STX a
		return c.storeInstruction(c.addrAbsolute, c.X)
	case 0x90: // BCC
		return c.iBCC()
	case 0x91: // STA (d),y
		return c.storeInstruction(c.addrIndirectY, c.A)
	case 0x94: // STY d,x
		return c.storeInstruction(c.addrZPX, c.Y)
	case 0x95: // STA d,x
		return c.storeInstruction(c.addrZPX, c.A)
	case 0x96: // STX d,y
		return c.storeInstruction(c.addrZPY, c.X)
	case 0x98: // TYA
		return c.iTYA()
	case 0x99: // STA a,y
		return c.storeInstruction(c.addrAbsoluteY, c.A)
	case 0x9A: // TXS
		return c.iTXS()
	case 0x9D: // STA a,x
		return c.storeInstruction(c.addrAbsoluteX, c.A)
	case 0xA0: // LDY #i
		return c.loadInstruction(c.addrImmediate, c.loadRegisterY)
	case 0xA1: // LDA (d,x)
		return c.loadInstruction(c.addrIndirectX, c.loadRegisterA)
	case 0xA2: // LDX #i
		return c.loadInstruction(c.addrImmediate, c.loadRegisterX)
	case 0xA4: // LDY d
		return c.loadInstruction(c.addrZP, c.loadRegisterY)
	case 0xA5: // LDA d
		return c.loadInstruction(c.addrZP, c.loadRegisterA)
	case 0xA6: // LDX d
		return c.loadInstruction(c.addrZP, c.loadRegisterX)
	case 0xA8: // TAY
		return c.iTAY()
	case 0xA9: // LDA #i
		return c.loadInstruction(c.addrImmediate, c.loadRegisterA)
	case 0xAA: // TAX
		return c.iTAX()
	case 0xAC: // LDY a
		return c.loadInstruction(c.addrAbsolute, c.loadRegisterY)
	case 0xAD: // LDA a
		return c.loadInstruction(c.addrAbsolute, c.loadRegisterA)
	case 0xAE: // LDX a
		return c.loadInstruction(c.addrAbsolute, c.loadRegisterX)
	case 0xB0: // BCS
		return c.iBCS()
	case 0xB1: // LDA (d),y
		return c.loadInstruction(c.addrIndirectY, c.loadRegisterA)
	case 0xB4: // LDY d,x
		return c.loadInstruction(c.addrZPX, c.loadRegisterY)
	case 0xB5: // LDA d,x
		return c.loadInstruction(c.addrZPX, c.loadRegisterA)
	case 0xB6: // LDX d,y
		return c.loadInstruction(c.addrZPY, c.loadRegisterX)
	case 0xB8: // CLV
		return c.iCLV()
	case 0xB9: // LDA a,y
		return c.loadInstruction(c.addrAbsoluteY, c.loadRegisterA)
	case 0xBA: // TSX
		return c.iTSX()
	case 0xBC: // LDY a,x
		return c.loadInstruction(c.addrAbsoluteX, c.loadRegisterY)
	case 0xBD: // LDA a,x
		return c.loadInstruction(c.addrAbsoluteX, c.loadRegisterA)
	case 0xBE: // LDX a,y
		return c.loadInstruction(c.addrAbsoluteY, c.loadRegisterX)
	case 0xC0: // CPY #i
		return c.loadInstruction(c.addrImmediate, c.compareY)
	case 0xC1: // CMP (d,x)
		return c.loadInstruction(c.addrIndirectX, c.compareA)
	case 0xC4: // CPY d
		return c.loadInstruction(c.addrZP, c.compareY)
	case 0xC5: // CMP d
		return c.loadInstruction(c.addrZP, c.compareA)
	case 0xC6: // DEC d
		return c.rmwInstruction(c.addrZP, c.iDEC)
	case 0xC8: // INY
		return c.iINY()
	case 0xC9: // CMP #i
		return c.loadInstruction(c.addrImmediate, c.compareA)
	case 0xCA: // DEX
		return c.iDEX()
	case 0xCC: // CPY a
		return c.loadInstruction(c.addrAbsolute, c.compareY)
	case 0xCD: // CMP a
		return c.loadInstruction(c.addrAbsolute, c.compareA)
	case 0xCE: // DEC a
		return c.rmwInstruction(c.addrAbsolute, c.iDEC)
	case 0xD0: // BNE
		return c.iBNE()
	case 0xD1: // CMP (d),y
		return c.loadInstruction(c.addrIndirectY, c.compareA)
	case 0xD5: // CMP d,x
		return c.loadInstruction(c.addrZPX, c.compareA)
	case 0xD6: // DEC d,x
		return c.rmwInstruction(c.addrZPX, c.iDEC)
	case 0xD8: // CLD
		return c.iCLD()
	case 0xD9: // CMP a,y
		return c.loadInstruction(c.addrAbsoluteY, c.compareA)
	case 0xDD: // CMP a,x
		return c.loadInstruction(c.addrAbsoluteX, c.compareA)
	case 0xDE: // DEC a,x
		return c.rmwInstruction(c.addrAbsoluteX, c.iDEC)
	case 0xE0: // CPX #i
		return c.loadInstruction(c.addrImmediate, c.compareX)
	case 0xE1: // SBC (d,x)
		return c.loadInstruction(c.addrIndirectX, c.iSBC)
	case 0xE4: // CPX d
		return c.loadInstruction(c.addrZP, c.compareX)
	case 0xE5: // SBC d
		return c.loadInstruction(c.addrZP, c.iSBC)
	case 0xE6: // INC d
		return c.rmwInstruction(c.addrZP, c.iINC)
	case 0xE8: // INX
		return c.iINX()
	case 0xE9: // SBC #i
		return c.loadInstruction(c.addrImmediate, c.iSBC)
	case 0xEA: // NOP
		return c.iNOP()
	case 0xEC: // CPX a
		return c.loadInstruction(c.addrAbsolute, c.compareX)
	case 0xED: // SBC a
		return c.loadInstruction(c.addrAbsolute, c.iSBC)
	case 0xEE: // INC a
		return c.rmwInstruction(c.addrAbsolute, c.iINC)
	case 0xF0: // BEQ
		return c.iBEQ()
	case 0xF1: // SBC (d),y
		return c.loadInstruction(c.addrIndirectY, c.iSBC)
	case 0xF5: // SBC d,x
		return c.loadInstruction(c.addrZPX, c.iSBC)
	case 0xF6: // INC d,x
		return c.rmwInstruction(c.addrZPX, c.iINC)
	case 0xF8: // SED
		return c.iSED()
	case 0xF9: // SBC a,y
		return c.loadInstruction(c.addrAbsoluteY, c.iSBC)
	case 0xFD: // SBC a,x
		return c.loadInstruction(c.addrAbsoluteX, c.iSBC)
	case 0xFE: // INC a,x
		return c.rmwInstruction(c.addrAbsoluteX, c.iINC)
	}
	return true, IllegalOpcode{Opcode: c.op, PC: c.insnPC}
}
