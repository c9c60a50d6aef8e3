package m6800

import "github.com/patsoffice/arcadecore/bus"

// decode dispatches every page-0 opcode; the 6800 has no prefix pages.
// Addressing-mode columns follow the same layout the 6809 inherited from
// it: 0x8x/0x9x/0xAx/0xBx are immediate/direct/indexed/extended for the
// same operation, and 0xCx/0xDx/0xEx/0xFx are the B-register equivalents.
// Like cpu/m6809, every case only appends micro-ops to c.pending; Tick
// drains exactly one queued bus access per call (plus the one that fires
// immediately at the fetch boundary).
func (c *M6800) decode(opcode uint8) {
	switch opcode {
	case 0x01: // NOP
		c.queueImplied(func(c *M6800) {})
	case 0x06: // TAP
		c.queueImplied(func(c *M6800) { c.CC = c.A })
	case 0x07: // TPA
		c.queueImplied(func(c *M6800) { c.A = c.CC })
	case 0x08: // INX
		c.queueImplied(func(c *M6800) { c.X++; c.flag(CCZero, c.X == 0) })
	case 0x09: // DEX
		c.queueImplied(func(c *M6800) { c.X--; c.flag(CCZero, c.X == 0) })
	case 0x0A: // CLV
		c.queueImplied(func(c *M6800) { c.flag(CCOverflow, false) })
	case 0x0B: // SEV
		c.queueImplied(func(c *M6800) { c.flag(CCOverflow, true) })
	case 0x0C: // CLC
		c.queueImplied(func(c *M6800) { c.flag(CCCarry, false) })
	case 0x0D: // SEC
		c.queueImplied(func(c *M6800) { c.flag(CCCarry, true) })
	case 0x0E: // CLI
		c.queueImplied(func(c *M6800) { c.flag(CCIRQMask, false) })
	case 0x0F: // SEI
		c.queueImplied(func(c *M6800) { c.flag(CCIRQMask, true) })
	case 0x16: // TAB
		c.queueImplied(func(c *M6800) { c.B = c.A; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0x17: // TBA
		c.queueImplied(func(c *M6800) { c.A = c.B; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x19: // DAA
		c.queueImplied(func(c *M6800) { c.daa() })
	case 0x1B: // ABA
		c.queueImplied(func(c *M6800) { c.A = c.add8(c.A, c.B, false) })

	case 0x20: // BRA
		c.queueRelBranch(true)
	case 0x22: // BHI
		c.queueRelBranch(!c.has(CCCarry) && !c.has(CCZero))
	case 0x23: // BLS
		c.queueRelBranch(c.has(CCCarry) || c.has(CCZero))
	case 0x24: // BCC
		c.queueRelBranch(!c.has(CCCarry))
	case 0x25: // BCS
		c.queueRelBranch(c.has(CCCarry))
	case 0x26: // BNE
		c.queueRelBranch(!c.has(CCZero))
	case 0x27: // BEQ
		c.queueRelBranch(c.has(CCZero))
	case 0x28: // BVC
		c.queueRelBranch(!c.has(CCOverflow))
	case 0x29: // BVS
		c.queueRelBranch(c.has(CCOverflow))
	case 0x2A: // BPL
		c.queueRelBranch(!c.has(CCNegative))
	case 0x2B: // BMI
		c.queueRelBranch(c.has(CCNegative))
	case 0x2C: // BGE
		c.queueRelBranch(c.has(CCNegative) == c.has(CCOverflow))
	case 0x2D: // BLT
		c.queueRelBranch(c.has(CCNegative) != c.has(CCOverflow))
	case 0x2E: // BGT
		c.queueRelBranch(!c.has(CCZero) && (c.has(CCNegative) == c.has(CCOverflow)))
	case 0x2F: // BLE
		c.queueRelBranch(c.has(CCZero) || (c.has(CCNegative) != c.has(CCOverflow)))

	case 0x30: // TSX
		c.queueImplied(func(c *M6800) { c.X = c.SP + 1 })
	case 0x31: // INS
		c.queueImplied(func(c *M6800) { c.SP++ })
	case 0x32: // PULA
		c.pending = append(c.pending, c.pullOp(&c.A))
	case 0x33: // PULB
		c.pending = append(c.pending, c.pullOp(&c.B))
	case 0x34: // DES
		c.queueImplied(func(c *M6800) { c.SP-- })
	case 0x35: // TXS
		c.queueImplied(func(c *M6800) { c.SP = c.X - 1 })
	case 0x36: // PSHA
		c.pending = append(c.pending, c.pushOp(func(c *M6800) uint8 { return c.A }))
	case 0x37: // PSHB
		c.pending = append(c.pending, c.pushOp(func(c *M6800) uint8 { return c.B }))
	case 0x39: // RTS
		c.pending = append(c.pending, c.pull16Ops(&c.PC)...)
	case 0x3A: // ABX (undocumented on real 6800 but harmless here)
		c.queueImplied(func(c *M6800) { c.X += uint16(c.B) })
	case 0x3B: // RTI
		c.queueRTI()
	case 0x3E: // WAI
		// modeled as a no-op wait-for-interrupt; the board never relies on
		// WAI for the sound CPU in this system, so full stacking semantics
		// are not implemented — a documented scope reduction.
		c.queueImplied(func(c *M6800) {})
	case 0x3F: // SWI
		c.queuePushFull(func(c *M6800, b bus.Bus, m bus.Master) {
			c.flag(CCIRQMask, true)
			hi := b.Read(m, 0xFFFA)
			lo := b.Read(m, 0xFFFB)
			c.PC = uint16(hi)<<8 | uint16(lo)
		})

	case 0x40: // NEGA
		c.queueImplied(func(c *M6800) { c.A = c.neg8(c.A) })
	case 0x43:
		c.queueImplied(func(c *M6800) { c.A = c.com8(c.A) })
	case 0x44:
		c.queueImplied(func(c *M6800) { c.A = c.lsr8(c.A) })
	case 0x46:
		c.queueImplied(func(c *M6800) { c.A = c.ror8(c.A) })
	case 0x47:
		c.queueImplied(func(c *M6800) { c.A = c.asr8(c.A) })
	case 0x48:
		c.queueImplied(func(c *M6800) { c.A = c.asl8(c.A) })
	case 0x49:
		c.queueImplied(func(c *M6800) { c.A = c.rol8(c.A) })
	case 0x4A:
		c.queueImplied(func(c *M6800) { c.A = c.dec8(c.A) })
	case 0x4C:
		c.queueImplied(func(c *M6800) { c.A = c.inc8(c.A) })
	case 0x4D:
		c.queueImplied(func(c *M6800) { c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x4F:
		c.queueImplied(func(c *M6800) { c.A = 0; c.clrFlags() })

	case 0x50: // NEGB
		c.queueImplied(func(c *M6800) { c.B = c.neg8(c.B) })
	case 0x53:
		c.queueImplied(func(c *M6800) { c.B = c.com8(c.B) })
	case 0x54:
		c.queueImplied(func(c *M6800) { c.B = c.lsr8(c.B) })
	case 0x56:
		c.queueImplied(func(c *M6800) { c.B = c.ror8(c.B) })
	case 0x57:
		c.queueImplied(func(c *M6800) { c.B = c.asr8(c.B) })
	case 0x58:
		c.queueImplied(func(c *M6800) { c.B = c.asl8(c.B) })
	case 0x59:
		c.queueImplied(func(c *M6800) { c.B = c.rol8(c.B) })
	case 0x5A:
		c.queueImplied(func(c *M6800) { c.B = c.dec8(c.B) })
	case 0x5C:
		c.queueImplied(func(c *M6800) { c.B = c.inc8(c.B) })
	case 0x5D:
		c.queueImplied(func(c *M6800) { c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0x5F:
		c.queueImplied(func(c *M6800) { c.B = 0; c.clrFlags() })

	case 0x60: // NEG ,X
		c.queueIndexedEA(c.rmwOps(c.neg8)...)
	case 0x63:
		c.queueIndexedEA(c.rmwOps(c.com8)...)
	case 0x64:
		c.queueIndexedEA(c.rmwOps(c.lsr8)...)
	case 0x66:
		c.queueIndexedEA(c.rmwOps(c.ror8)...)
	case 0x67:
		c.queueIndexedEA(c.rmwOps(c.asr8)...)
	case 0x68:
		c.queueIndexedEA(c.rmwOps(c.asl8)...)
	case 0x69:
		c.queueIndexedEA(c.rmwOps(c.rol8)...)
	case 0x6A:
		c.queueIndexedEA(c.rmwOps(c.dec8)...)
	case 0x6C:
		c.queueIndexedEA(c.rmwOps(c.inc8)...)
	case 0x6D:
		c.queueIndexedEA(func(c *M6800, b bus.Bus, m bus.Master) {
			c.setNZ8(b.Read(m, c.effAddr))
			c.flag(CCOverflow, false)
		})
	case 0x6E: // JMP ,X
		c.queueIndexedJump()
	case 0x6F:
		c.queueIndexedEA(func(c *M6800, b bus.Bus, m bus.Master) {
			b.Write(m, c.effAddr, 0)
			c.clrFlags()
		})

	case 0x70: // NEG extended
		c.queueExtendedEA(c.rmwOps(c.neg8)...)
	case 0x73:
		c.queueExtendedEA(c.rmwOps(c.com8)...)
	case 0x74:
		c.queueExtendedEA(c.rmwOps(c.lsr8)...)
	case 0x76:
		c.queueExtendedEA(c.rmwOps(c.ror8)...)
	case 0x77:
		c.queueExtendedEA(c.rmwOps(c.asr8)...)
	case 0x78:
		c.queueExtendedEA(c.rmwOps(c.asl8)...)
	case 0x79:
		c.queueExtendedEA(c.rmwOps(c.rol8)...)
	case 0x7A:
		c.queueExtendedEA(c.rmwOps(c.dec8)...)
	case 0x7C:
		c.queueExtendedEA(c.rmwOps(c.inc8)...)
	case 0x7D:
		c.queueExtendedEA(func(c *M6800, b bus.Bus, m bus.Master) {
			c.setNZ8(b.Read(m, c.effAddr))
			c.flag(CCOverflow, false)
		})
	case 0x7E: // JMP extended
		c.queueJMPExtended()
	case 0x7F:
		c.queueExtendedEA(func(c *M6800, b bus.Bus, m bus.Master) {
			b.Write(m, c.effAddr, 0)
			c.clrFlags()
		})

	case 0x80: // SUBA #imm
		c.queueImmediate8(func(c *M6800, v uint8) { c.A = c.sub8(c.A, v, false) })
	case 0x81:
		c.queueImmediate8(func(c *M6800, v uint8) { c.sub8(c.A, v, false) })
	case 0x82:
		c.queueImmediate8(func(c *M6800, v uint8) { c.A = c.sub8(c.A, v, c.has(CCCarry)) })
	case 0x84:
		c.queueImmediate8(func(c *M6800, v uint8) { c.A &= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x85:
		c.queueImmediate8(func(c *M6800, v uint8) { c.setNZ8(c.A & v); c.flag(CCOverflow, false) })
	case 0x86: // LDAA #imm
		c.queueImmediate8(func(c *M6800, v uint8) { c.A = v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x88:
		c.queueImmediate8(func(c *M6800, v uint8) { c.A ^= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x89:
		c.queueImmediate8(func(c *M6800, v uint8) { c.A = c.add8(c.A, v, c.has(CCCarry)) })
	case 0x8A:
		c.queueImmediate8(func(c *M6800, v uint8) { c.A |= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x8B:
		c.queueImmediate8(func(c *M6800, v uint8) { c.A = c.add8(c.A, v, false) })
	case 0x8C: // CPX #imm
		c.queueImmediate16(func(c *M6800, v uint16) { c.sub16(c.X, v) })
	case 0x8D: // BSR
		c.queueBSR()
	case 0x8E: // LDS #imm
		c.queueImmediate16(func(c *M6800, v uint16) { c.SP = v; c.setNZ16(c.SP); c.flag(CCOverflow, false) })

	case 0x90, 0xA0, 0xB0: // SUBA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.A = c.sub8(c.A, v, false) })
	case 0x91, 0xA1, 0xB1: // CMPA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.sub8(c.A, v, false) })
	case 0x92, 0xA2, 0xB2: // SBCA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.A = c.sub8(c.A, v, c.has(CCCarry)) })
	case 0x94, 0xA4, 0xB4: // ANDA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.A &= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x95, 0xA5, 0xB5: // BITA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.setNZ8(c.A & v); c.flag(CCOverflow, false) })
	case 0x96, 0xA6, 0xB6: // LDAA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.A = v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x97, 0xA7, 0xB7: // STAA
		c.queueEAByMode(opcode, func(c *M6800, b bus.Bus, m bus.Master) {
			c.setNZ8(c.A)
			c.flag(CCOverflow, false)
			b.Write(m, c.effAddr, c.A)
		})
	case 0x98, 0xA8, 0xB8: // EORA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.A ^= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x99, 0xA9, 0xB9: // ADCA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.A = c.add8(c.A, v, c.has(CCCarry)) })
	case 0x9A, 0xAA, 0xBA: // ORAA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.A |= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x9B, 0xAB, 0xBB: // ADDA
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.A = c.add8(c.A, v, false) })
	case 0x9C, 0xAC, 0xBC: // CPX
		c.queueRead16ByMode(opcode, func(c *M6800, v uint16) { c.sub16(c.X, v) })
	case 0x9E, 0xAE, 0xBE: // LDS
		c.queueRead16ByMode(opcode, func(c *M6800, v uint16) { c.SP = v; c.setNZ16(c.SP); c.flag(CCOverflow, false) })
	case 0x9D, 0xAD, 0xBD: // JSR
		c.queueJSRByMode(opcode)
	case 0x9F, 0xAF, 0xBF: // STS
		c.queueStore16ByMode(opcode, func(c *M6800) uint16 { return c.SP },
			func(c *M6800) { c.setNZ16(c.SP); c.flag(CCOverflow, false) })

	case 0xC0: // SUBB #imm
		c.queueImmediate8(func(c *M6800, v uint8) { c.B = c.sub8(c.B, v, false) })
	case 0xC1:
		c.queueImmediate8(func(c *M6800, v uint8) { c.sub8(c.B, v, false) })
	case 0xC2:
		c.queueImmediate8(func(c *M6800, v uint8) { c.B = c.sub8(c.B, v, c.has(CCCarry)) })
	case 0xC4:
		c.queueImmediate8(func(c *M6800, v uint8) { c.B &= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xC5:
		c.queueImmediate8(func(c *M6800, v uint8) { c.setNZ8(c.B & v); c.flag(CCOverflow, false) })
	case 0xC6: // LDAB #imm
		c.queueImmediate8(func(c *M6800, v uint8) { c.B = v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xC8:
		c.queueImmediate8(func(c *M6800, v uint8) { c.B ^= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xC9:
		c.queueImmediate8(func(c *M6800, v uint8) { c.B = c.add8(c.B, v, c.has(CCCarry)) })
	case 0xCA:
		c.queueImmediate8(func(c *M6800, v uint8) { c.B |= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xCB:
		c.queueImmediate8(func(c *M6800, v uint8) { c.B = c.add8(c.B, v, false) })
	case 0xCE: // LDX #imm
		c.queueImmediate16(func(c *M6800, v uint16) { c.X = v; c.setNZ16(c.X); c.flag(CCOverflow, false) })

	case 0xD0, 0xE0, 0xF0: // SUBB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.B = c.sub8(c.B, v, false) })
	case 0xD1, 0xE1, 0xF1: // CMPB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.sub8(c.B, v, false) })
	case 0xD2, 0xE2, 0xF2: // SBCB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.B = c.sub8(c.B, v, c.has(CCCarry)) })
	case 0xD4, 0xE4, 0xF4: // ANDB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.B &= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xD5, 0xE5, 0xF5: // BITB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.setNZ8(c.B & v); c.flag(CCOverflow, false) })
	case 0xD6, 0xE6, 0xF6: // LDAB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.B = v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xD7, 0xE7, 0xF7: // STAB
		c.queueEAByMode(opcode, func(c *M6800, b bus.Bus, m bus.Master) {
			c.setNZ8(c.B)
			c.flag(CCOverflow, false)
			b.Write(m, c.effAddr, c.B)
		})
	case 0xD8, 0xE8, 0xF8: // EORB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.B ^= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xD9, 0xE9, 0xF9: // ADCB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.B = c.add8(c.B, v, c.has(CCCarry)) })
	case 0xDA, 0xEA, 0xFA: // ORAB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.B |= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xDB, 0xEB, 0xFB: // ADDB
		c.queueReadByMode(opcode, func(c *M6800, v uint8) { c.B = c.add8(c.B, v, false) })
	case 0xDE, 0xEE, 0xFE: // LDX
		c.queueRead16ByMode(opcode, func(c *M6800, v uint16) { c.X = v; c.setNZ16(c.X); c.flag(CCOverflow, false) })
	case 0xDF, 0xEF, 0xFF: // STX
		c.queueStore16ByMode(opcode, func(c *M6800) uint16 { return c.X },
			func(c *M6800) { c.setNZ16(c.X); c.flag(CCOverflow, false) })

	default:
		// Unimplemented/illegal opcode: treated as a single-cycle NOP.
	}
}

func (c *M6800) clrFlags() {
	c.flag(CCZero, true)
	c.flag(CCNegative, false)
	c.flag(CCOverflow, false)
	c.flag(CCCarry, false)
}

func (c *M6800) queueImplied(op func(c *M6800)) {
	c.pending = append(c.pending, func(c *M6800, b bus.Bus, m bus.Master) {
		b.Read(m, c.PC)
		op(c)
	})
}

func (c *M6800) queueImmediate8(op func(c *M6800, v uint8)) {
	c.pending = append(c.pending, func(c *M6800, b bus.Bus, m bus.Master) {
		v := b.Read(m, c.PC)
		c.PC++
		op(c, v)
	})
}

func (c *M6800) queueImmediate16(op func(c *M6800, v uint16)) {
	c.pending = append(c.pending,
		func(c *M6800, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.PC); c.PC++ },
		func(c *M6800, b bus.Bus, m bus.Master) {
			lo := b.Read(m, c.PC)
			c.PC++
			op(c, uint16(c.addrHigh)<<8|uint16(lo))
		},
	)
}

func (c *M6800) queueRelBranch(taken bool) {
	c.pending = append(c.pending, func(c *M6800, b bus.Bus, m bus.Master) {
		off := int8(b.Read(m, c.PC))
		c.PC++
		if taken {
			c.PC = uint16(int32(c.PC) + int32(off))
		}
	})
}

func (c *M6800) queueBSR() {
	c.pending = append(c.pending, func(c *M6800, b bus.Bus, m bus.Master) {
		off := int8(b.Read(m, c.PC))
		c.PC++
		ret := c.PC
		c.PC = uint16(int32(ret) + int32(off))
		c.pending = append(c.pending, c.push16Ops(ret)...)
	})
}

// queueIndexedEA queues the one-cycle offset fetch for the 6800's single
// indexed mode (X plus an unsigned 8-bit offset; no postbyte, no
// auto-increment/decrement — those are 6809 extensions) and appends after
// once c.effAddr is valid.
func (c *M6800) queueIndexedEA(after ...microOp) {
	c.pending = append(c.pending, func(c *M6800, b bus.Bus, m bus.Master) {
		off := b.Read(m, c.PC)
		c.PC++
		c.effAddr = c.X + uint16(off)
		c.pending = append(c.pending, after...)
	})
}

func (c *M6800) queueIndexedJump() {
	c.pending = append(c.pending, func(c *M6800, b bus.Bus, m bus.Master) {
		off := b.Read(m, c.PC)
		c.PC++
		c.PC = c.X + uint16(off)
	})
}

func (c *M6800) queueExtendedEA(after ...microOp) {
	c.pending = append(c.pending,
		func(c *M6800, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.PC); c.PC++ },
		func(c *M6800, b bus.Bus, m bus.Master) {
			lo := b.Read(m, c.PC)
			c.PC++
			c.effAddr = uint16(c.addrHigh)<<8 | uint16(lo)
			c.pending = append(c.pending, after...)
		},
	)
}

func (c *M6800) queueJMPExtended() {
	c.pending = append(c.pending,
		func(c *M6800, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.PC); c.PC++ },
		func(c *M6800, b bus.Bus, m bus.Master) {
			lo := b.Read(m, c.PC)
			c.PC = uint16(c.addrHigh)<<8 | uint16(lo)
		},
	)
}

func (c *M6800) queueEAByMode(opcode uint8, after ...microOp) {
	switch opcode & 0xF0 {
	case 0x90, 0xD0:
		// direct: a single zero-page byte, modeled with the extended path's
		// high-byte forced to zero since the 6800 has no DP register.
		c.pending = append(c.pending, func(c *M6800, b bus.Bus, m bus.Master) {
			off := b.Read(m, c.PC)
			c.PC++
			c.effAddr = uint16(off)
			c.pending = append(c.pending, after...)
		})
	case 0xA0, 0xE0:
		c.queueIndexedEA(after...)
	default:
		c.queueExtendedEA(after...)
	}
}

func (c *M6800) queueReadByMode(opcode uint8, op func(c *M6800, v uint8)) {
	c.queueEAByMode(opcode, func(c *M6800, b bus.Bus, m bus.Master) { op(c, b.Read(m, c.effAddr)) })
}

func (c *M6800) read16Ops(op func(c *M6800, v uint16)) []microOp {
	return []microOp{
		func(c *M6800, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.effAddr) },
		func(c *M6800, b bus.Bus, m bus.Master) {
			lo := b.Read(m, c.effAddr+1)
			op(c, uint16(c.operand)<<8|uint16(lo))
		},
	}
}

func (c *M6800) write16Ops(get func(c *M6800) uint16) []microOp {
	return []microOp{
		func(c *M6800, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, uint8(get(c)>>8)) },
		func(c *M6800, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr+1, uint8(get(c))) },
	}
}

func (c *M6800) queueRead16ByMode(opcode uint8, op func(c *M6800, v uint16)) {
	c.queueEAByMode(opcode, c.read16Ops(op)...)
}

func (c *M6800) queueStore16ByMode(opcode uint8, get func(c *M6800) uint16, setFlags func(c *M6800)) {
	ops := c.write16Ops(get)
	first := ops[0]
	ops[0] = func(c *M6800, b bus.Bus, m bus.Master) { setFlags(c); first(c, b, m) }
	c.queueEAByMode(opcode, ops...)
}

// rmwOps is the read/modify/write cycle triplet shared by every indexed
// and extended read-modify-write instruction.
func (c *M6800) rmwOps(op func(v uint8) uint8) []microOp {
	return []microOp{
		func(c *M6800, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.effAddr) },
		func(c *M6800, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, c.operand) },
		func(c *M6800, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, op(c.operand)) },
	}
}

func (c *M6800) queueJSRByMode(opcode uint8) {
	c.queueEAByMode(opcode, func(c *M6800, b bus.Bus, m bus.Master) {
		ret := c.PC
		c.PC = c.effAddr
		c.pending = append(c.pending, c.push16Ops(ret)...)
	})
}

// pushOp/push16Ops/pullOp/pull16Ops are the queued, one-byte-per-cycle
// stack primitives behind PSHA/PSHB/PULA/PULB, RTS, BSR/JSR, RTI and SWI.
// The 6800 has a single hardware stack (SP), unlike the 6809's S/U pair.
func (c *M6800) pushOp(get func(c *M6800) uint8) microOp {
	return func(c *M6800, b bus.Bus, m bus.Master) { c.push(b, m, get(c)) }
}

func (c *M6800) push16Ops(v uint16) []microOp {
	return []microOp{
		func(c *M6800, b bus.Bus, m bus.Master) { c.push(b, m, uint8(v)) },
		func(c *M6800, b bus.Bus, m bus.Master) { c.push(b, m, uint8(v>>8)) },
	}
}

func (c *M6800) pullOp(dst *uint8) microOp {
	return func(c *M6800, b bus.Bus, m bus.Master) { *dst = c.pull(b, m) }
}

func (c *M6800) pull16Ops(dst *uint16) []microOp {
	return []microOp{
		func(c *M6800, b bus.Bus, m bus.Master) { c.addrHigh = c.pull(b, m) },
		func(c *M6800, b bus.Bus, m bus.Master) {
			lo := c.pull(b, m)
			*dst = uint16(c.addrHigh)<<8 | uint16(lo)
		},
	}
}

// queueRTI pulls the entire stacked register file, one byte per cycle,
// in the 6800's fixed order: CC,B,A,X,PC (the reverse of SWI/interrupt
// push order).
func (c *M6800) queueRTI() {
	c.pending = append(c.pending,
		c.pullOp(&c.CC),
		c.pullOp(&c.B),
		c.pullOp(&c.A),
	)
	c.pending = append(c.pending, c.pull16Ops(&c.X)...)
	c.pending = append(c.pending, c.pull16Ops(&c.PC)...)
}

// queuePushFull stacks the entire machine state (PC,X,A,B,CC — the 6800
// has no Entire bit, it always pushes everything), then runs then on the
// same cycle as the final (CC) write. Used by SWI, which is reached
// through decode() and so must queue rather than execute synchronously.
// The asynchronous NMI/IRQ hardware path in Tick uses its own synchronous
// serviceInterrupt, mirroring cpu/m6502's and cpu/m6809's hardware path.
func (c *M6800) queuePushFull(then microOp) {
	var ops []microOp
	ops = append(ops, c.push16Ops(c.PC)...)
	ops = append(ops, c.push16Ops(c.X)...)
	ops = append(ops, c.pushOp(func(c *M6800) uint8 { return c.A }))
	last := c.pushOp(func(c *M6800) uint8 { return c.B })
	cc := c.pushOp(func(c *M6800) uint8 { return c.CC })
	ops = append(ops, last)
	ops = append(ops, func(c *M6800, b bus.Bus, m bus.Master) { cc(c, b, m); then(c, b, m) })
	c.pending = append(c.pending, ops...)
}

func (c *M6800) add8(a, v uint8, carryIn bool) uint8 {
	var carry uint16
	if carryIn {
		carry = 1
	}
	res := uint16(a) + uint16(v) + carry
	c.flag(CCHalfCarry, (a&0x0F)+(v&0x0F)+uint8(carry) > 0x0F)
	c.flag(CCCarry, res > 0xFF)
	c.flag(CCOverflow, (a^uint8(res))&(v^uint8(res))&0x80 != 0)
	c.setNZ8(uint8(res))
	return uint8(res)
}

func (c *M6800) sub8(a, v uint8, borrowIn bool) uint8 {
	var borrow uint16
	if borrowIn {
		borrow = 1
	}
	res := uint16(a) - uint16(v) - borrow
	c.flag(CCCarry, res > 0xFF)
	c.flag(CCOverflow, (a^v)&(a^uint8(res))&0x80 != 0)
	c.setNZ8(uint8(res))
	return uint8(res)
}

func (c *M6800) sub16(a, v uint16) uint16 {
	res := uint32(a) - uint32(v)
	c.flag(CCCarry, res > 0xFFFF)
	c.flag(CCOverflow, (a^v)&(a^uint16(res))&0x8000 != 0)
	c.setNZ16(uint16(res))
	return uint16(res)
}

func (c *M6800) neg8(v uint8) uint8 {
	res := -int16(v)
	c.flag(CCCarry, res != 0)
	c.flag(CCOverflow, v == 0x80)
	c.setNZ8(uint8(res))
	return uint8(res)
}

func (c *M6800) com8(v uint8) uint8 {
	res := ^v
	c.setNZ8(res)
	c.flag(CCOverflow, false)
	c.flag(CCCarry, true)
	return res
}

func (c *M6800) lsr8(v uint8) uint8 {
	c.flag(CCCarry, v&0x01 != 0)
	res := v >> 1
	c.setNZ8(res)
	return res
}

func (c *M6800) ror8(v uint8) uint8 {
	carryIn := uint8(0)
	if c.has(CCCarry) {
		carryIn = 0x80
	}
	c.flag(CCCarry, v&0x01 != 0)
	res := (v >> 1) | carryIn
	c.setNZ8(res)
	return res
}

func (c *M6800) asr8(v uint8) uint8 {
	c.flag(CCCarry, v&0x01 != 0)
	res := (v >> 1) | (v & 0x80)
	c.setNZ8(res)
	return res
}

func (c *M6800) asl8(v uint8) uint8 {
	c.flag(CCCarry, v&0x80 != 0)
	res := v << 1
	c.flag(CCOverflow, (v^res)&0x80 != 0)
	c.setNZ8(res)
	return res
}

func (c *M6800) rol8(v uint8) uint8 {
	carryIn := uint8(0)
	if c.has(CCCarry) {
		carryIn = 0x01
	}
	c.flag(CCCarry, v&0x80 != 0)
	res := (v << 1) | carryIn
	c.flag(CCOverflow, (v^res)&0x80 != 0)
	c.setNZ8(res)
	return res
}

func (c *M6800) inc8(v uint8) uint8 {
	res := v + 1
	c.flag(CCOverflow, v == 0x7F)
	c.setNZ8(res)
	return res
}

func (c *M6800) dec8(v uint8) uint8 {
	res := v - 1
	c.flag(CCOverflow, v == 0x80)
	c.setNZ8(res)
	return res
}

func (c *M6800) daa() {
	a := c.A
	cf := c.has(CCCarry)
	hf := c.has(CCHalfCarry)
	correction := uint8(0)
	if hf || a&0x0F > 9 {
		correction |= 0x06
	}
	if cf || a > 0x99 || (a > 0x8F && a&0x0F > 9) {
		correction |= 0x60
		cf = true
	}
	res := uint16(a) + uint16(correction)
	c.A = uint8(res)
	c.flag(CCCarry, cf || res > 0xFF)
	c.setNZ8(c.A)
}
