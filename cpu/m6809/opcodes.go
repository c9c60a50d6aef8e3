package m6809

import "github.com/patsoffice/arcadecore/bus"

// decode dispatches page-0 opcodes, falling through to the $10/$11 prefix
// pages for the extended instruction set (LBcc, SWI2/SWI3, CMPD/CMPY/CMPU
// etc). Like cpu/m6502's decode, every case here only appends micro-ops to
// c.pending — it never touches the bus directly. The opcode fetch that got
// us here has already consumed its own cycle in Tick; the first queued op
// is drained immediately afterwards, in the same Tick call, and every
// further op drains one per subsequent call.
func (c *M6809) decode(opcode uint8) {
	switch opcode {
	case 0x10:
		c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
			op2 := b.Read(m, c.PC)
			c.PC++
			c.decodePage10(op2)
		})
		return
	case 0x11:
		c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
			op2 := b.Read(m, c.PC)
			c.PC++
			c.decodePage11(op2)
		})
		return
	}

	switch opcode {
	case 0x12: // NOP
		c.queueImplied(func(c *M6809) {})
	case 0x13: // SYNC
		c.queueImplied(func(c *M6809) { c.waiting = true; c.waitIsCWAI = false })
	case 0x19: // DAA
		c.queueImplied(func(c *M6809) { c.daa() })
	case 0x1A: // ORCC #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.CC |= v })
	case 0x1C: // ANDCC #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.CC &= v })
	case 0x1D: // SEX
		c.queueImplied(func(c *M6809) {
			if c.B&0x80 != 0 {
				c.A = 0xFF
			} else {
				c.A = 0
			}
			c.setNZ16(c.D())
		})
	case 0x1E: // EXG
		c.queueImmediate8(func(c *M6809, post uint8) { c.exg(post) })
	case 0x1F: // TFR
		c.queueImmediate8(func(c *M6809, post uint8) { c.tfr(post) })

	case 0x20: // BRA
		c.queueRelBranch(true)
	case 0x21: // BRN
		c.queueRelBranch(false)
	case 0x22: // BHI
		c.queueRelBranch(!c.has(CCCarry) && !c.has(CCZero))
	case 0x23: // BLS
		c.queueRelBranch(c.has(CCCarry) || c.has(CCZero))
	case 0x24: // BCC/BHS
		c.queueRelBranch(!c.has(CCCarry))
	case 0x25: // BCS/BLO
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

	case 0x30: // LEAX
		c.queueIndexedEA(func(c *M6809, b bus.Bus, m bus.Master) {
			c.X = c.effAddr
			c.flag(CCZero, c.effAddr == 0)
		})
	case 0x31: // LEAY
		c.queueIndexedEA(func(c *M6809, b bus.Bus, m bus.Master) {
			c.Y = c.effAddr
			c.flag(CCZero, c.effAddr == 0)
		})
	case 0x32: // LEAS
		c.queueIndexedEA(func(c *M6809, b bus.Bus, m bus.Master) { c.S = c.effAddr })
	case 0x33: // LEAU
		c.queueIndexedEA(func(c *M6809, b bus.Bus, m bus.Master) { c.U = c.effAddr })
	case 0x34: // PSHS
		c.queuePushRegs(false)
	case 0x35: // PULS
		c.queuePullRegs(false)
	case 0x36: // PSHU
		c.queuePushRegs(true)
	case 0x37: // PULU
		c.queuePullRegs(true)
	case 0x39: // RTS
		c.pending = append(c.pending, c.pull16Ops(false, &c.PC)...)
	case 0x3A: // ABX
		c.queueImplied(func(c *M6809) { c.X += uint16(c.B) })
	case 0x3B: // RTI
		c.queueRTI()
	case 0x3C: // CWAI
		c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
			mask := b.Read(m, c.PC)
			c.PC++
			c.CC &= mask
			c.queuePushFull(func(c *M6809, b bus.Bus, m bus.Master) {
				c.waiting = true
				c.waitIsCWAI = true
			})
		})
	case 0x3D: // MUL
		c.queueImplied(func(c *M6809) {
			res := uint16(c.A) * uint16(c.B)
			c.SetD(res)
			c.flag(CCZero, res == 0)
			c.flag(CCCarry, res&0x80 != 0)
		})
	case 0x3F: // SWI
		c.queuePushFull(func(c *M6809, b bus.Bus, m bus.Master) {
			c.flag(CCIRQMask, true)
			c.flag(CCFIRQMask, true)
			c.loadVector(b, m, 0xFFFA)
		})

	case 0x40: // NEGA
		c.queueImplied(func(c *M6809) { c.A = c.neg8(c.A) })
	case 0x43:
		c.queueImplied(func(c *M6809) { c.A = c.com8(c.A) })
	case 0x44:
		c.queueImplied(func(c *M6809) { c.A = c.lsr8(c.A) })
	case 0x46:
		c.queueImplied(func(c *M6809) { c.A = c.ror8(c.A) })
	case 0x47:
		c.queueImplied(func(c *M6809) { c.A = c.asr8(c.A) })
	case 0x48:
		c.queueImplied(func(c *M6809) { c.A = c.asl8(c.A) })
	case 0x49:
		c.queueImplied(func(c *M6809) { c.A = c.rol8(c.A) })
	case 0x4A:
		c.queueImplied(func(c *M6809) { c.A = c.dec8(c.A) })
	case 0x4C:
		c.queueImplied(func(c *M6809) { c.A = c.inc8(c.A) })
	case 0x4D: // TSTA
		c.queueImplied(func(c *M6809) { c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x4F: // CLRA
		c.queueImplied(func(c *M6809) { c.A = 0; c.clrFlags() })

	case 0x50: // NEGB
		c.queueImplied(func(c *M6809) { c.B = c.neg8(c.B) })
	case 0x53:
		c.queueImplied(func(c *M6809) { c.B = c.com8(c.B) })
	case 0x54:
		c.queueImplied(func(c *M6809) { c.B = c.lsr8(c.B) })
	case 0x56:
		c.queueImplied(func(c *M6809) { c.B = c.ror8(c.B) })
	case 0x57:
		c.queueImplied(func(c *M6809) { c.B = c.asr8(c.B) })
	case 0x58:
		c.queueImplied(func(c *M6809) { c.B = c.asl8(c.B) })
	case 0x59:
		c.queueImplied(func(c *M6809) { c.B = c.rol8(c.B) })
	case 0x5A:
		c.queueImplied(func(c *M6809) { c.B = c.dec8(c.B) })
	case 0x5C:
		c.queueImplied(func(c *M6809) { c.B = c.inc8(c.B) })
	case 0x5D:
		c.queueImplied(func(c *M6809) { c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0x5F:
		c.queueImplied(func(c *M6809) { c.B = 0; c.clrFlags() })

	case 0x60: // NEG indexed
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
		c.queueIndexedEA(func(c *M6809, b bus.Bus, m bus.Master) {
			c.setNZ8(b.Read(m, c.effAddr))
			c.flag(CCOverflow, false)
		})
	case 0x6E: // JMP indexed
		c.queueIndexedJump()
	case 0x6F:
		c.queueIndexedEA(func(c *M6809, b bus.Bus, m bus.Master) {
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
		c.queueExtendedEA(func(c *M6809, b bus.Bus, m bus.Master) {
			c.setNZ8(b.Read(m, c.effAddr))
			c.flag(CCOverflow, false)
		})
	case 0x7E: // JMP extended
		c.queueJMPExtended()
	case 0x7F:
		c.queueExtendedEA(func(c *M6809, b bus.Bus, m bus.Master) {
			b.Write(m, c.effAddr, 0)
			c.clrFlags()
		})

	case 0x80: // SUBA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.A = c.sub8(c.A, v, false) })
	case 0x81: // CMPA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.sub8(c.A, v, false) })
	case 0x82: // SBCA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.A = c.sub8(c.A, v, c.has(CCCarry)) })
	case 0x83: // SUBD #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.SetD(c.sub16(c.D(), v)) })
	case 0x84: // ANDA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.A &= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x85: // BITA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.setNZ8(c.A & v); c.flag(CCOverflow, false) })
	case 0x86: // LDA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.A = v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x88: // EORA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.A ^= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x89: // ADCA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.A = c.add8(c.A, v, c.has(CCCarry)) })
	case 0x8A: // ORA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.A |= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x8B: // ADDA #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.A = c.add8(c.A, v, false) })
	case 0x8C: // CMPX #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.sub16(c.X, v) })
	case 0x8D: // BSR
		c.queueBSR()
	case 0x8E: // LDX #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.X = v; c.setNZ16(c.X); c.flag(CCOverflow, false) })

	case 0x90, 0xA0, 0xB0: // SUBA direct/indexed/extended
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.A = c.sub8(c.A, v, false) })
	case 0x91, 0xA1, 0xB1: // CMPA
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.sub8(c.A, v, false) })
	case 0x92, 0xA2, 0xB2: // SBCA
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.A = c.sub8(c.A, v, c.has(CCCarry)) })
	case 0x93, 0xA3, 0xB3: // SUBD
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.SetD(c.sub16(c.D(), v)) })
	case 0x94, 0xA4, 0xB4: // ANDA
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.A &= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x95, 0xA5, 0xB5: // BITA
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.setNZ8(c.A & v); c.flag(CCOverflow, false) })
	case 0x96, 0xA6, 0xB6: // LDA
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.A = v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x97, 0xA7, 0xB7: // STA
		c.queueEAByMode(opcode, func(c *M6809, b bus.Bus, m bus.Master) {
			c.setNZ8(c.A)
			c.flag(CCOverflow, false)
			b.Write(m, c.effAddr, c.A)
		})
	case 0x98, 0xA8, 0xB8: // EORA
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.A ^= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x99, 0xA9, 0xB9: // ADCA
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.A = c.add8(c.A, v, c.has(CCCarry)) })
	case 0x9A, 0xAA, 0xBA: // ORA
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.A |= v; c.setNZ8(c.A); c.flag(CCOverflow, false) })
	case 0x9B, 0xAB, 0xBB: // ADDA
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.A = c.add8(c.A, v, false) })
	case 0x9C, 0xAC, 0xBC: // CMPX
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.sub16(c.X, v) })
	case 0x9D, 0xAD, 0xBD: // JSR
		c.queueJSRByMode(opcode)
	case 0x9E, 0xAE, 0xBE: // LDX
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.X = v; c.setNZ16(c.X); c.flag(CCOverflow, false) })
	case 0x9F, 0xAF, 0xBF: // STX
		c.queueStore16ByMode(opcode, func(c *M6809) uint16 { return c.X },
			func(c *M6809) { c.setNZ16(c.X); c.flag(CCOverflow, false) })

	case 0xC0: // SUBB #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.B = c.sub8(c.B, v, false) })
	case 0xC1: // CMPB #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.sub8(c.B, v, false) })
	case 0xC2: // SBCB
		c.queueImmediate8(func(c *M6809, v uint8) { c.B = c.sub8(c.B, v, c.has(CCCarry)) })
	case 0xC3: // ADDD #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.SetD(c.add16(c.D(), v)) })
	case 0xC4: // ANDB
		c.queueImmediate8(func(c *M6809, v uint8) { c.B &= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xC5: // BITB
		c.queueImmediate8(func(c *M6809, v uint8) { c.setNZ8(c.B & v); c.flag(CCOverflow, false) })
	case 0xC6: // LDB #imm
		c.queueImmediate8(func(c *M6809, v uint8) { c.B = v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xC8: // EORB
		c.queueImmediate8(func(c *M6809, v uint8) { c.B ^= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xC9: // ADCB
		c.queueImmediate8(func(c *M6809, v uint8) { c.B = c.add8(c.B, v, c.has(CCCarry)) })
	case 0xCA: // ORB
		c.queueImmediate8(func(c *M6809, v uint8) { c.B |= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xCB: // ADDB
		c.queueImmediate8(func(c *M6809, v uint8) { c.B = c.add8(c.B, v, false) })
	case 0xCC: // LDD #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.SetD(v); c.setNZ16(c.D()); c.flag(CCOverflow, false) })
	case 0xCE: // LDU #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.U = v; c.setNZ16(c.U); c.flag(CCOverflow, false) })

	case 0xD0, 0xE0, 0xF0: // SUBB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.B = c.sub8(c.B, v, false) })
	case 0xD1, 0xE1, 0xF1: // CMPB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.sub8(c.B, v, false) })
	case 0xD2, 0xE2, 0xF2: // SBCB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.B = c.sub8(c.B, v, c.has(CCCarry)) })
	case 0xD3, 0xE3, 0xF3: // ADDD
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.SetD(c.add16(c.D(), v)) })
	case 0xD4, 0xE4, 0xF4: // ANDB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.B &= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xD5, 0xE5, 0xF5: // BITB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.setNZ8(c.B & v); c.flag(CCOverflow, false) })
	case 0xD6, 0xE6, 0xF6: // LDB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.B = v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xD7, 0xE7, 0xF7: // STB
		c.queueEAByMode(opcode, func(c *M6809, b bus.Bus, m bus.Master) {
			c.setNZ8(c.B)
			c.flag(CCOverflow, false)
			b.Write(m, c.effAddr, c.B)
		})
	case 0xD8, 0xE8, 0xF8: // EORB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.B ^= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xD9, 0xE9, 0xF9: // ADCB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.B = c.add8(c.B, v, c.has(CCCarry)) })
	case 0xDA, 0xEA, 0xFA: // ORB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.B |= v; c.setNZ8(c.B); c.flag(CCOverflow, false) })
	case 0xDB, 0xEB, 0xFB: // ADDB
		c.queueReadByMode(opcode, func(c *M6809, v uint8) { c.B = c.add8(c.B, v, false) })
	case 0xDC, 0xEC, 0xFC: // LDD
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.SetD(v); c.setNZ16(c.D()); c.flag(CCOverflow, false) })
	case 0xDD, 0xED, 0xFD: // STD
		c.queueStore16ByMode(opcode, func(c *M6809) uint16 { return c.D() },
			func(c *M6809) { c.setNZ16(c.D()); c.flag(CCOverflow, false) })
	case 0xDE, 0xEE, 0xFE: // LDU
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.U = v; c.setNZ16(c.U); c.flag(CCOverflow, false) })
	case 0xDF, 0xEF, 0xFF: // STU
		c.queueStore16ByMode(opcode, func(c *M6809) uint16 { return c.U },
			func(c *M6809) { c.setNZ16(c.U); c.flag(CCOverflow, false) })

	default:
		// Unimplemented/illegal opcode: treated as a single-cycle NOP, the
		// same deliberate scope reduction applied in cpu/m6502.
	}
}

// decodePage10 handles the $10-prefixed extended page: long branches and
// 16-bit CMPY/LDS/STS plus SWI2.
func (c *M6809) decodePage10(opcode uint8) {
	switch opcode {
	case 0x21:
		c.queueLongRelBranch(false)
	case 0x22:
		c.queueLongRelBranch(!c.has(CCCarry) && !c.has(CCZero))
	case 0x23:
		c.queueLongRelBranch(c.has(CCCarry) || c.has(CCZero))
	case 0x24:
		c.queueLongRelBranch(!c.has(CCCarry))
	case 0x25:
		c.queueLongRelBranch(c.has(CCCarry))
	case 0x26:
		c.queueLongRelBranch(!c.has(CCZero))
	case 0x27:
		c.queueLongRelBranch(c.has(CCZero))
	case 0x2E:
		c.queueLongRelBranch(!c.has(CCZero) && (c.has(CCNegative) == c.has(CCOverflow)))
	case 0x2F:
		c.queueLongRelBranch(c.has(CCZero) || (c.has(CCNegative) != c.has(CCOverflow)))
	case 0x3F: // SWI2
		c.queuePushFull(func(c *M6809, b bus.Bus, m bus.Master) { c.loadVector(b, m, 0xFFF4) })
	case 0x83: // CMPD #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.sub16(c.D(), v) })
	case 0x8C: // CMPY #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.sub16(c.Y, v) })
	case 0x8E: // LDY #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.Y = v; c.setNZ16(c.Y); c.flag(CCOverflow, false) })
	case 0x93, 0xA3, 0xB3: // CMPD
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.sub16(c.D(), v) })
	case 0x9C, 0xAC, 0xBC: // CMPY
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.sub16(c.Y, v) })
	case 0x9E, 0xAE, 0xBE: // LDY
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.Y = v; c.setNZ16(c.Y); c.flag(CCOverflow, false) })
	case 0x9F, 0xAF, 0xBF: // STY
		c.queueStore16ByMode(opcode, func(c *M6809) uint16 { return c.Y },
			func(c *M6809) { c.setNZ16(c.Y); c.flag(CCOverflow, false) })
	case 0xCE: // LDS #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.S = v; c.setNZ16(c.S); c.flag(CCOverflow, false) })
	case 0xDE, 0xEE, 0xFE: // LDS
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.S = v; c.setNZ16(c.S); c.flag(CCOverflow, false) })
	case 0xDF, 0xEF, 0xFF: // STS
		c.queueStore16ByMode(opcode, func(c *M6809) uint16 { return c.S },
			func(c *M6809) { c.setNZ16(c.S); c.flag(CCOverflow, false) })
	default:
	}
}

// decodePage11 handles the $11-prefixed page: SWI3 and CMPU/CMPS.
func (c *M6809) decodePage11(opcode uint8) {
	switch opcode {
	case 0x3F: // SWI3
		c.queuePushFull(func(c *M6809, b bus.Bus, m bus.Master) { c.loadVector(b, m, 0xFFF2) })
	case 0x83: // CMPU #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.sub16(c.U, v) })
	case 0x8C: // CMPS #imm
		c.queueImmediate16(func(c *M6809, v uint16) { c.sub16(c.S, v) })
	case 0x93, 0xA3, 0xB3: // CMPU
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.sub16(c.U, v) })
	case 0x9C, 0xAC, 0xBC: // CMPS
		c.queueRead16ByMode(opcode, func(c *M6809, v uint16) { c.sub16(c.S, v) })
	default:
	}
}

func (c *M6809) clrFlags() {
	c.flag(CCZero, true)
	c.flag(CCNegative, false)
	c.flag(CCOverflow, false)
	c.flag(CCCarry, false)
}

// queueImplied models a one-byte "inherent" instruction: a single dummy
// bus cycle (the real 6809 speculatively reads the following opcode byte)
// followed by the register/flag effect, mirroring cpu/m6502's
// queueImplied. MUL's true 11-cycle cost is not modeled; it is treated
// like any other inherent instruction, a disclosed scope reduction.
func (c *M6809) queueImplied(op func(c *M6809)) {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		b.Read(m, c.PC)
		op(c)
	})
}

func (c *M6809) queueImmediate8(op func(c *M6809, v uint8)) {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		v := b.Read(m, c.PC)
		c.PC++
		op(c, v)
	})
}

func (c *M6809) queueImmediate16(op func(c *M6809, v uint16)) {
	c.pending = append(c.pending,
		func(c *M6809, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.PC); c.PC++ },
		func(c *M6809, b bus.Bus, m bus.Master) {
			lo := b.Read(m, c.PC)
			c.PC++
			op(c, uint16(c.addrHigh)<<8|uint16(lo))
		},
	)
}

func (c *M6809) queueRelBranch(taken bool) {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		off := int8(b.Read(m, c.PC))
		c.PC++
		if taken {
			c.PC = uint16(int32(c.PC) + int32(off))
		}
	})
}

func (c *M6809) queueLongRelBranch(taken bool) {
	c.pending = append(c.pending,
		func(c *M6809, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.PC); c.PC++ },
		func(c *M6809, b bus.Bus, m bus.Master) {
			lo := b.Read(m, c.PC)
			c.PC++
			off := int16(uint16(c.addrHigh)<<8 | uint16(lo))
			if taken {
				c.PC = uint16(int32(c.PC) + int32(off))
			}
		},
	)
}

func (c *M6809) queueBSR() {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		off := int8(b.Read(m, c.PC))
		c.PC++
		ret := c.PC
		c.PC = uint16(int32(ret) + int32(off))
		c.pending = append(c.pending, c.push16Ops(false, ret)...)
	})
}

// queueDirectEA queues the one-cycle direct-page effective-address
// computation (DP:offset) and then appends after, which runs once
// c.effAddr is valid.
func (c *M6809) queueDirectEA(after ...microOp) {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		off := b.Read(m, c.PC)
		c.PC++
		c.effAddr = uint16(c.DP)<<8 | uint16(off)
		c.pending = append(c.pending, after...)
	})
}

// queueExtendedEA queues the two-cycle extended (16-bit absolute)
// effective-address computation and then appends after.
func (c *M6809) queueExtendedEA(after ...microOp) {
	c.pending = append(c.pending,
		func(c *M6809, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.PC); c.PC++ },
		func(c *M6809, b bus.Bus, m bus.Master) {
			lo := b.Read(m, c.PC)
			c.PC++
			c.effAddr = uint16(c.addrHigh)<<8 | uint16(lo)
			c.pending = append(c.pending, after...)
		},
	)
}

// indexedReg returns the base register selected by an indexed postbyte's
// bits 5-6.
func (c *M6809) indexedReg(post uint8) *uint16 {
	switch (post >> 5) & 0x03 {
	case 0:
		return &c.X
	case 1:
		return &c.Y
	case 2:
		return &c.U
	default:
		return &c.S
	}
}

// indexedPostbyte implements the common Motorola indexed addressing
// postbyte forms: constant/accumulator offset from X/Y/U/S, auto
// increment/decrement by 1 or 2, 8/16-bit constant offset and PC-relative
// offset. Extended-indirect ([..]) forms and undocumented postbytes are
// not modeled, the same documented scope reduction as before. commit is
// invoked with the resolved address, either immediately (postbyte-only
// modes) or after further bytes are fetched across additional Tick calls
// (the 0x08/0x09/0x0C/0x0D forms).
func (c *M6809) indexedPostbyte(post uint8, commit func(c *M6809, ea uint16)) {
	reg := c.indexedReg(post)

	if post&0x80 == 0 {
		off := int8(post & 0x1F)
		if post&0x10 != 0 {
			off |= ^int8(0x1F)
		}
		commit(c, uint16(int32(*reg)+int32(off)))
		return
	}

	switch post & 0x0F {
	case 0x00: // ,R+
		ea := *reg
		*reg++
		commit(c, ea)
	case 0x01: // ,R++
		ea := *reg
		*reg += 2
		commit(c, ea)
	case 0x02: // ,-R
		*reg--
		commit(c, *reg)
	case 0x03: // ,--R
		*reg -= 2
		commit(c, *reg)
	case 0x04: // ,R
		commit(c, *reg)
	case 0x05: // B,R
		commit(c, uint16(int32(*reg)+int32(int8(c.B))))
	case 0x06: // A,R
		commit(c, uint16(int32(*reg)+int32(int8(c.A))))
	case 0x08: // 8-bit offset,R
		c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
			off := int8(b.Read(m, c.PC))
			c.PC++
			commit(c, uint16(int32(*reg)+int32(off)))
		})
	case 0x09: // 16-bit offset,R
		c.pending = append(c.pending,
			func(c *M6809, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.PC); c.PC++ },
			func(c *M6809, b bus.Bus, m bus.Master) {
				lo := b.Read(m, c.PC)
				c.PC++
				off := int16(uint16(c.addrHigh)<<8 | uint16(lo))
				commit(c, uint16(int32(*reg)+int32(off)))
			},
		)
	case 0x0B: // D,R
		commit(c, uint16(int32(*reg)+int32(int16(c.D()))))
	case 0x0C: // 8-bit offset,PC
		c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
			off := int8(b.Read(m, c.PC))
			c.PC++
			commit(c, uint16(int32(c.PC)+int32(off)))
		})
	case 0x0D: // 16-bit offset,PC
		c.pending = append(c.pending,
			func(c *M6809, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.PC); c.PC++ },
			func(c *M6809, b bus.Bus, m bus.Master) {
				lo := b.Read(m, c.PC)
				c.PC++
				off := int16(uint16(c.addrHigh)<<8 | uint16(lo))
				commit(c, uint16(int32(c.PC)+int32(off)))
			},
		)
	default:
		commit(c, *reg)
	}
}

// queueIndexedEA queues the postbyte fetch (and any further offset bytes
// it implies) and appends after once c.effAddr is resolved.
func (c *M6809) queueIndexedEA(after ...microOp) {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		post := b.Read(m, c.PC)
		c.PC++
		c.indexedPostbyte(post, func(c *M6809, ea uint16) {
			c.effAddr = ea
			c.pending = append(c.pending, after...)
		})
	})
}

// queueIndexedJump is JMP's indexed form: the resolved address becomes PC
// directly, with no extra read cycle, mirroring cpu/m6502's
// queueJMPAbsolute fusing the final fetch with the effect.
func (c *M6809) queueIndexedJump() {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		post := b.Read(m, c.PC)
		c.PC++
		c.indexedPostbyte(post, func(c *M6809, ea uint16) { c.PC = ea })
	})
}

func (c *M6809) queueJMPExtended() {
	c.pending = append(c.pending,
		func(c *M6809, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.PC); c.PC++ },
		func(c *M6809, b bus.Bus, m bus.Master) {
			lo := b.Read(m, c.PC)
			c.PC = uint16(c.addrHigh)<<8 | uint16(lo)
		},
	)
}

// queueEAByMode dispatches to direct/indexed/extended EA computation based
// on which of the three opcodes in a {dir,idx,ext} triad fired, inferred
// from the opcode's column (0x90/0xD0=direct, 0xA0/0xE0=indexed,
// 0xB0/0xF0=extended).
func (c *M6809) queueEAByMode(opcode uint8, after ...microOp) {
	switch opcode & 0xF0 {
	case 0x90, 0xD0:
		c.queueDirectEA(after...)
	case 0xA0, 0xE0:
		c.queueIndexedEA(after...)
	default:
		c.queueExtendedEA(after...)
	}
}

func (c *M6809) queueReadByMode(opcode uint8, op func(c *M6809, v uint8)) {
	c.queueEAByMode(opcode, func(c *M6809, b bus.Bus, m bus.Master) { op(c, b.Read(m, c.effAddr)) })
}

// read16Ops reads the 16-bit big-endian value at c.effAddr across two bus
// cycles and calls op with the result.
func (c *M6809) read16Ops(op func(c *M6809, v uint16)) []microOp {
	return []microOp{
		func(c *M6809, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.effAddr) },
		func(c *M6809, b bus.Bus, m bus.Master) {
			lo := b.Read(m, c.effAddr+1)
			op(c, uint16(c.operand)<<8|uint16(lo))
		},
	}
}

// write16Ops writes get()'s 16-bit value at c.effAddr across two bus
// cycles, high byte first.
func (c *M6809) write16Ops(get func(c *M6809) uint16) []microOp {
	return []microOp{
		func(c *M6809, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, uint8(get(c)>>8)) },
		func(c *M6809, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr+1, uint8(get(c))) },
	}
}

func (c *M6809) queueRead16ByMode(opcode uint8, op func(c *M6809, v uint16)) {
	c.queueEAByMode(opcode, c.read16Ops(op)...)
}

// queueStore16ByMode stores a 16-bit register at the addressed location,
// running setFlags once, on the first of the two write cycles.
func (c *M6809) queueStore16ByMode(opcode uint8, get func(c *M6809) uint16, setFlags func(c *M6809)) {
	ops := c.write16Ops(get)
	first := ops[0]
	ops[0] = func(c *M6809, b bus.Bus, m bus.Master) { setFlags(c); first(c, b, m) }
	c.queueEAByMode(opcode, ops...)
}

// rmwOps is the read/modify/write cycle triplet shared by every indexed
// and extended read-modify-write instruction (NEG, COM, LSR, ...): read
// the operand, write it back unchanged (the real 6809 always writes
// twice), then write the transformed value.
func (c *M6809) rmwOps(op func(v uint8) uint8) []microOp {
	return []microOp{
		func(c *M6809, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.effAddr) },
		func(c *M6809, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, c.operand) },
		func(c *M6809, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, op(c.operand)) },
	}
}

func (c *M6809) queueJSRByMode(opcode uint8) {
	c.queueEAByMode(opcode, func(c *M6809, b bus.Bus, m bus.Master) {
		ret := c.PC
		c.PC = c.effAddr
		c.pending = append(c.pending, c.push16Ops(false, ret)...)
	})
}

// push8Op/push16Ops/pull8Op/pull16Ops are the queued, one-byte-per-cycle
// primitives behind PSHS/PULS/PSHU/PULU, RTS, BSR/JSR, RTI and SWI/CWAI.
// viaU selects the U stack (PSHU/PULU) over the default S stack.
func (c *M6809) push8Op(viaU bool, v uint8) microOp {
	return func(c *M6809, b bus.Bus, m bus.Master) {
		if viaU {
			c.pushU(b, m, v)
		} else {
			c.pushS(b, m, v)
		}
	}
}

func (c *M6809) push16Ops(viaU bool, v uint16) []microOp {
	return []microOp{
		func(c *M6809, b bus.Bus, m bus.Master) {
			if viaU {
				c.pushU(b, m, uint8(v))
			} else {
				c.pushS(b, m, uint8(v))
			}
		},
		func(c *M6809, b bus.Bus, m bus.Master) {
			if viaU {
				c.pushU(b, m, uint8(v>>8))
			} else {
				c.pushS(b, m, uint8(v>>8))
			}
		},
	}
}

func (c *M6809) pull8Op(viaU bool, dst *uint8) microOp {
	return func(c *M6809, b bus.Bus, m bus.Master) {
		if viaU {
			*dst = c.pullU(b, m)
		} else {
			*dst = c.pullS(b, m)
		}
	}
}

func (c *M6809) pull16Ops(viaU bool, dst *uint16) []microOp {
	return []microOp{
		func(c *M6809, b bus.Bus, m bus.Master) {
			if viaU {
				c.addrHigh = c.pullU(b, m)
			} else {
				c.addrHigh = c.pullS(b, m)
			}
		},
		func(c *M6809, b bus.Bus, m bus.Master) {
			var lo uint8
			if viaU {
				lo = c.pullU(b, m)
			} else {
				lo = c.pullS(b, m)
			}
			*dst = uint16(c.addrHigh)<<8 | uint16(lo)
		},
	}
}

// queuePushRegs and queuePullRegs implement PSHS/PSHU and PULS/PULU: fetch
// the postbyte, then queue one bus cycle per byte of the selected
// registers in the 6809's fixed documented order (PC,U-or-S,Y,X,DP,B,A,CC
// for push; the reverse for pull).
func (c *M6809) queuePushRegs(viaU bool) {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		post := b.Read(m, c.PC)
		c.PC++
		var ops []microOp
		if post&0x80 != 0 {
			ops = append(ops, c.push16Ops(viaU, c.PC)...)
		}
		if post&0x40 != 0 {
			if viaU {
				ops = append(ops, c.push16Ops(viaU, c.S)...)
			} else {
				ops = append(ops, c.push16Ops(viaU, c.U)...)
			}
		}
		if post&0x20 != 0 {
			ops = append(ops, c.push16Ops(viaU, c.Y)...)
		}
		if post&0x10 != 0 {
			ops = append(ops, c.push16Ops(viaU, c.X)...)
		}
		if post&0x08 != 0 {
			ops = append(ops, c.push8Op(viaU, c.DP))
		}
		if post&0x04 != 0 {
			ops = append(ops, c.push8Op(viaU, c.B))
		}
		if post&0x02 != 0 {
			ops = append(ops, c.push8Op(viaU, c.A))
		}
		if post&0x01 != 0 {
			ops = append(ops, c.push8Op(viaU, c.CC))
		}
		c.pending = append(c.pending, ops...)
	})
}

func (c *M6809) queuePullRegs(viaU bool) {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		post := b.Read(m, c.PC)
		c.PC++
		var ops []microOp
		if post&0x01 != 0 {
			ops = append(ops, c.pull8Op(viaU, &c.CC))
		}
		if post&0x02 != 0 {
			ops = append(ops, c.pull8Op(viaU, &c.A))
		}
		if post&0x04 != 0 {
			ops = append(ops, c.pull8Op(viaU, &c.B))
		}
		if post&0x08 != 0 {
			ops = append(ops, c.pull8Op(viaU, &c.DP))
		}
		if post&0x10 != 0 {
			ops = append(ops, c.pull16Ops(viaU, &c.X)...)
		}
		if post&0x20 != 0 {
			ops = append(ops, c.pull16Ops(viaU, &c.Y)...)
		}
		if post&0x40 != 0 {
			if viaU {
				ops = append(ops, c.pull16Ops(viaU, &c.S)...)
			} else {
				ops = append(ops, c.pull16Ops(viaU, &c.U)...)
			}
		}
		if post&0x80 != 0 {
			ops = append(ops, c.pull16Ops(viaU, &c.PC)...)
		}
		c.pending = append(c.pending, ops...)
	})
}

// queueRTI pulls CC, then, if the stacked state is "entire" (CWAI/NMI/IRQ,
// not FIRQ), pulls the rest of the register file before PC, one byte per
// cycle.
func (c *M6809) queueRTI() {
	c.pending = append(c.pending, func(c *M6809, b bus.Bus, m bus.Master) {
		c.CC = c.pullS(b, m)
		var ops []microOp
		if c.CC&CCEntire != 0 {
			ops = append(ops, c.pull8Op(false, &c.A))
			ops = append(ops, c.pull8Op(false, &c.B))
			ops = append(ops, c.pull8Op(false, &c.DP))
			ops = append(ops, c.pull16Ops(false, &c.X)...)
			ops = append(ops, c.pull16Ops(false, &c.Y)...)
			ops = append(ops, c.pull16Ops(false, &c.U)...)
		}
		ops = append(ops, c.pull16Ops(false, &c.PC)...)
		c.pending = append(c.pending, ops...)
	})
}

// queuePushFull stacks the entire machine state via S, one byte per bus
// cycle, in the 6809's documented order (PC,U,Y,X,DP,B,A,CC), then runs
// then on the same cycle as the final (CC) write — used by SWI/SWI2/SWI3
// and CWAI, which are reached through decode() and so must queue rather
// than execute synchronously. The asynchronous NMI/FIRQ/IRQ hardware path
// in Tick uses its own synchronous pushFull, mirroring cpu/m6502's
// serviceInterrupt.
func (c *M6809) queuePushFull(then microOp) {
	c.flag(CCEntire, true)
	var ops []microOp
	ops = append(ops, c.push16Ops(false, c.PC)...)
	ops = append(ops, c.push16Ops(false, c.U)...)
	ops = append(ops, c.push16Ops(false, c.Y)...)
	ops = append(ops, c.push16Ops(false, c.X)...)
	ops = append(ops, c.push8Op(false, c.DP))
	ops = append(ops, c.push8Op(false, c.B))
	ops = append(ops, c.push8Op(false, c.A))
	last := c.push8Op(false, c.CC)
	ops = append(ops, func(c *M6809, b bus.Bus, m bus.Master) { last(c, b, m); then(c, b, m) })
	c.pending = append(c.pending, ops...)
}

func (c *M6809) add8(a, v uint8, carryIn bool) uint8 {
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

func (c *M6809) sub8(a, v uint8, borrowIn bool) uint8 {
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

func (c *M6809) add16(a, v uint16) uint16 {
	res := uint32(a) + uint32(v)
	c.flag(CCCarry, res > 0xFFFF)
	c.flag(CCOverflow, (a^uint16(res))&(v^uint16(res))&0x8000 != 0)
	c.setNZ16(uint16(res))
	return uint16(res)
}

func (c *M6809) sub16(a, v uint16) uint16 {
	res := uint32(a) - uint32(v)
	c.flag(CCCarry, res > 0xFFFF)
	c.flag(CCOverflow, (a^v)&(a^uint16(res))&0x8000 != 0)
	c.setNZ16(uint16(res))
	return uint16(res)
}

func (c *M6809) neg8(v uint8) uint8 {
	res := -int16(v)
	c.flag(CCCarry, res != 0)
	c.flag(CCOverflow, v == 0x80)
	c.setNZ8(uint8(res))
	return uint8(res)
}

func (c *M6809) com8(v uint8) uint8 {
	res := ^v
	c.setNZ8(res)
	c.flag(CCOverflow, false)
	c.flag(CCCarry, true)
	return res
}

func (c *M6809) lsr8(v uint8) uint8 {
	c.flag(CCCarry, v&0x01 != 0)
	res := v >> 1
	c.setNZ8(res)
	return res
}

func (c *M6809) ror8(v uint8) uint8 {
	carryIn := uint8(0)
	if c.has(CCCarry) {
		carryIn = 0x80
	}
	c.flag(CCCarry, v&0x01 != 0)
	res := (v >> 1) | carryIn
	c.setNZ8(res)
	return res
}

func (c *M6809) asr8(v uint8) uint8 {
	c.flag(CCCarry, v&0x01 != 0)
	res := (v >> 1) | (v & 0x80)
	c.setNZ8(res)
	return res
}

func (c *M6809) asl8(v uint8) uint8 {
	c.flag(CCCarry, v&0x80 != 0)
	res := v << 1
	c.flag(CCOverflow, (v^res)&0x80 != 0)
	c.setNZ8(res)
	return res
}

func (c *M6809) rol8(v uint8) uint8 {
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

func (c *M6809) inc8(v uint8) uint8 {
	res := v + 1
	c.flag(CCOverflow, v == 0x7F)
	c.setNZ8(res)
	return res
}

func (c *M6809) dec8(v uint8) uint8 {
	res := v - 1
	c.flag(CCOverflow, v == 0x80)
	c.setNZ8(res)
	return res
}

// daa adjusts A after a BCD addition, following the standard 6809 table of
// half-carry/carry-driven nibble corrections.
func (c *M6809) daa() {
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

// regWidth16 maps a TFR/EXG postbyte nibble to register width (true=16-bit).
func regWidth16(n uint8) bool { return n <= 0x05 }

func (c *M6809) regValue16(n uint8) uint16 {
	switch n {
	case 0x00:
		return c.D()
	case 0x01:
		return c.X
	case 0x02:
		return c.Y
	case 0x03:
		return c.U
	case 0x04:
		return c.S
	case 0x05:
		return c.PC
	}
	return 0
}

func (c *M6809) setReg16(n uint8, v uint16) {
	switch n {
	case 0x00:
		c.SetD(v)
	case 0x01:
		c.X = v
	case 0x02:
		c.Y = v
	case 0x03:
		c.U = v
	case 0x04:
		c.S = v
	case 0x05:
		c.PC = v
	}
}

func (c *M6809) regValue8(n uint8) uint8 {
	switch n {
	case 0x08:
		return c.A
	case 0x09:
		return c.B
	case 0x0A:
		return c.CC
	case 0x0B:
		return c.DP
	}
	return 0
}

func (c *M6809) setReg8(n uint8, v uint8) {
	switch n {
	case 0x08:
		c.A = v
	case 0x09:
		c.B = v
	case 0x0A:
		c.CC = v
	case 0x0B:
		c.DP = v
	}
}

func (c *M6809) tfr(post uint8) {
	src, dst := post>>4, post&0x0F
	if regWidth16(src) {
		c.setReg16(dst, c.regValue16(src))
	} else {
		c.setReg8(dst, c.regValue8(src))
	}
}

func (c *M6809) exg(post uint8) {
	a, bb := post>>4, post&0x0F
	if regWidth16(a) {
		va, vb := c.regValue16(a), c.regValue16(bb)
		c.setReg16(a, vb)
		c.setReg16(bb, va)
	} else {
		va, vb := c.regValue8(a), c.regValue8(bb)
		c.setReg8(a, vb)
		c.setReg8(bb, va)
	}
}

func (c *M6809) pushU(b bus.Bus, master bus.Master, v uint8) {
	c.U--
	b.Write(master, c.U, v)
}

func (c *M6809) pullU(b bus.Bus, master bus.Master) uint8 {
	v := b.Read(master, c.U)
	c.U++
	return v
}
