package m6502

import "github.com/patsoffice/arcadecore/bus"

// decode appends one micro-op per remaining bus cycle to c.pending. The
// queue* helpers build those sequences per addressing mode, assembling the
// effective address in c.effAddr as they go.
//
// Cycle counts mirror real NMOS 6502 timing; the final bus cycle reads the
// operand (for read instructions) or performs the write (the write and RMW
// helpers queue their own write cycles).

func (c *M6502) decode(opcode uint8) {
	switch opcode {
	// ---- load/store ----
	case 0xA9: // LDA #imm
		c.queueImmediate(func(c *M6502, v uint8) { c.A = v; c.setNZ(v) })
	case 0xA5: // LDA zp
		c.queueZeroPage(func(c *M6502, v uint8) { c.A = v; c.setNZ(v) })
	case 0xB5: // LDA zp,X
		c.queueZeroPageIndexed(&c.X, func(c *M6502, v uint8) { c.A = v; c.setNZ(v) })
	case 0xAD: // LDA abs
		c.queueAbsolute(func(c *M6502, v uint8) { c.A = v; c.setNZ(v) })
	case 0xBD: // LDA abs,X
		c.queueAbsoluteIndexed(&c.X, func(c *M6502, v uint8) { c.A = v; c.setNZ(v) })
	case 0xB9: // LDA abs,Y
		c.queueAbsoluteIndexed(&c.Y, func(c *M6502, v uint8) { c.A = v; c.setNZ(v) })
	case 0xA1: // LDA (zp,X)
		c.queueIndexedIndirect(func(c *M6502, v uint8) { c.A = v; c.setNZ(v) })
	case 0xB1: // LDA (zp),Y
		c.queueIndirectIndexed(func(c *M6502, v uint8) { c.A = v; c.setNZ(v) })

	case 0xA2: // LDX #imm
		c.queueImmediate(func(c *M6502, v uint8) { c.X = v; c.setNZ(v) })
	case 0xA6:
		c.queueZeroPage(func(c *M6502, v uint8) { c.X = v; c.setNZ(v) })
	case 0xB6:
		c.queueZeroPageIndexed(&c.Y, func(c *M6502, v uint8) { c.X = v; c.setNZ(v) })
	case 0xAE:
		c.queueAbsolute(func(c *M6502, v uint8) { c.X = v; c.setNZ(v) })
	case 0xBE:
		c.queueAbsoluteIndexed(&c.Y, func(c *M6502, v uint8) { c.X = v; c.setNZ(v) })

	case 0xA0: // LDY #imm
		c.queueImmediate(func(c *M6502, v uint8) { c.Y = v; c.setNZ(v) })
	case 0xA4:
		c.queueZeroPage(func(c *M6502, v uint8) { c.Y = v; c.setNZ(v) })
	case 0xB4:
		c.queueZeroPageIndexed(&c.X, func(c *M6502, v uint8) { c.Y = v; c.setNZ(v) })
	case 0xAC:
		c.queueAbsolute(func(c *M6502, v uint8) { c.Y = v; c.setNZ(v) })
	case 0xBC:
		c.queueAbsoluteIndexed(&c.X, func(c *M6502, v uint8) { c.Y = v; c.setNZ(v) })

	case 0x85:
		c.queueStoreZeroPage(func(c *M6502) uint8 { return c.A })
	case 0x95:
		c.queueStoreZeroPageIndexed(&c.X, func(c *M6502) uint8 { return c.A })
	case 0x8D:
		c.queueStoreAbsolute(func(c *M6502) uint8 { return c.A })
	case 0x9D:
		c.queueStoreAbsoluteIndexed(&c.X, func(c *M6502) uint8 { return c.A })
	case 0x99:
		c.queueStoreAbsoluteIndexed(&c.Y, func(c *M6502) uint8 { return c.A })
	case 0x81:
		c.queueStoreIndexedIndirect(func(c *M6502) uint8 { return c.A })
	case 0x91:
		c.queueStoreIndirectIndexed(func(c *M6502) uint8 { return c.A })

	case 0x86:
		c.queueStoreZeroPage(func(c *M6502) uint8 { return c.X })
	case 0x96:
		c.queueStoreZeroPageIndexed(&c.Y, func(c *M6502) uint8 { return c.X })
	case 0x8E:
		c.queueStoreAbsolute(func(c *M6502) uint8 { return c.X })

	case 0x84:
		c.queueStoreZeroPage(func(c *M6502) uint8 { return c.Y })
	case 0x94:
		c.queueStoreZeroPageIndexed(&c.X, func(c *M6502) uint8 { return c.Y })
	case 0x8C:
		c.queueStoreAbsolute(func(c *M6502) uint8 { return c.Y })

	// ---- transfers ----
	case 0xAA: // TAX
		c.queueImplied(func(c *M6502) { c.X = c.A; c.setNZ(c.X) })
	case 0x8A: // TXA
		c.queueImplied(func(c *M6502) { c.A = c.X; c.setNZ(c.A) })
	case 0xA8: // TAY
		c.queueImplied(func(c *M6502) { c.Y = c.A; c.setNZ(c.Y) })
	case 0x98: // TYA
		c.queueImplied(func(c *M6502) { c.A = c.Y; c.setNZ(c.A) })
	case 0xBA: // TSX
		c.queueImplied(func(c *M6502) { c.X = c.SP; c.setNZ(c.X) })
	case 0x9A: // TXS
		c.queueImplied(func(c *M6502) { c.SP = c.X })

	// ---- ALU (accumulator ops) ----
	case 0x69:
		c.queueImmediate(c.adc)
	case 0x65:
		c.queueZeroPage(c.adc)
	case 0x75:
		c.queueZeroPageIndexed(&c.X, c.adc)
	case 0x6D:
		c.queueAbsolute(c.adc)
	case 0x7D:
		c.queueAbsoluteIndexed(&c.X, c.adc)
	case 0x79:
		c.queueAbsoluteIndexed(&c.Y, c.adc)
	case 0x61:
		c.queueIndexedIndirect(c.adc)
	case 0x71:
		c.queueIndirectIndexed(c.adc)

	case 0xE9:
		c.queueImmediate(c.sbc)
	case 0xE5:
		c.queueZeroPage(c.sbc)
	case 0xF5:
		c.queueZeroPageIndexed(&c.X, c.sbc)
	case 0xED:
		c.queueAbsolute(c.sbc)
	case 0xFD:
		c.queueAbsoluteIndexed(&c.X, c.sbc)
	case 0xF9:
		c.queueAbsoluteIndexed(&c.Y, c.sbc)
	case 0xE1:
		c.queueIndexedIndirect(c.sbc)
	case 0xF1:
		c.queueIndirectIndexed(c.sbc)

	case 0x29:
		c.queueImmediate(func(c *M6502, v uint8) { c.A &= v; c.setNZ(c.A) })
	case 0x25:
		c.queueZeroPage(func(c *M6502, v uint8) { c.A &= v; c.setNZ(c.A) })
	case 0x35:
		c.queueZeroPageIndexed(&c.X, func(c *M6502, v uint8) { c.A &= v; c.setNZ(c.A) })
	case 0x2D:
		c.queueAbsolute(func(c *M6502, v uint8) { c.A &= v; c.setNZ(c.A) })
	case 0x3D:
		c.queueAbsoluteIndexed(&c.X, func(c *M6502, v uint8) { c.A &= v; c.setNZ(c.A) })
	case 0x39:
		c.queueAbsoluteIndexed(&c.Y, func(c *M6502, v uint8) { c.A &= v; c.setNZ(c.A) })
	case 0x21:
		c.queueIndexedIndirect(func(c *M6502, v uint8) { c.A &= v; c.setNZ(c.A) })
	case 0x31:
		c.queueIndirectIndexed(func(c *M6502, v uint8) { c.A &= v; c.setNZ(c.A) })

	case 0x09:
		c.queueImmediate(func(c *M6502, v uint8) { c.A |= v; c.setNZ(c.A) })
	case 0x05:
		c.queueZeroPage(func(c *M6502, v uint8) { c.A |= v; c.setNZ(c.A) })
	case 0x15:
		c.queueZeroPageIndexed(&c.X, func(c *M6502, v uint8) { c.A |= v; c.setNZ(c.A) })
	case 0x0D:
		c.queueAbsolute(func(c *M6502, v uint8) { c.A |= v; c.setNZ(c.A) })
	case 0x1D:
		c.queueAbsoluteIndexed(&c.X, func(c *M6502, v uint8) { c.A |= v; c.setNZ(c.A) })
	case 0x19:
		c.queueAbsoluteIndexed(&c.Y, func(c *M6502, v uint8) { c.A |= v; c.setNZ(c.A) })
	case 0x01:
		c.queueIndexedIndirect(func(c *M6502, v uint8) { c.A |= v; c.setNZ(c.A) })
	case 0x11:
		c.queueIndirectIndexed(func(c *M6502, v uint8) { c.A |= v; c.setNZ(c.A) })

	case 0x49:
		c.queueImmediate(func(c *M6502, v uint8) { c.A ^= v; c.setNZ(c.A) })
	case 0x45:
		c.queueZeroPage(func(c *M6502, v uint8) { c.A ^= v; c.setNZ(c.A) })
	case 0x55:
		c.queueZeroPageIndexed(&c.X, func(c *M6502, v uint8) { c.A ^= v; c.setNZ(c.A) })
	case 0x4D:
		c.queueAbsolute(func(c *M6502, v uint8) { c.A ^= v; c.setNZ(c.A) })
	case 0x5D:
		c.queueAbsoluteIndexed(&c.X, func(c *M6502, v uint8) { c.A ^= v; c.setNZ(c.A) })
	case 0x59:
		c.queueAbsoluteIndexed(&c.Y, func(c *M6502, v uint8) { c.A ^= v; c.setNZ(c.A) })
	case 0x41:
		c.queueIndexedIndirect(func(c *M6502, v uint8) { c.A ^= v; c.setNZ(c.A) })
	case 0x51:
		c.queueIndirectIndexed(func(c *M6502, v uint8) { c.A ^= v; c.setNZ(c.A) })

	case 0xC9:
		c.queueImmediate(func(c *M6502, v uint8) { c.compare(c.A, v) })
	case 0xC5:
		c.queueZeroPage(func(c *M6502, v uint8) { c.compare(c.A, v) })
	case 0xCD:
		c.queueAbsolute(func(c *M6502, v uint8) { c.compare(c.A, v) })
	case 0xDD:
		c.queueAbsoluteIndexed(&c.X, func(c *M6502, v uint8) { c.compare(c.A, v) })
	case 0xD9:
		c.queueAbsoluteIndexed(&c.Y, func(c *M6502, v uint8) { c.compare(c.A, v) })
	case 0xD1:
		c.queueIndirectIndexed(func(c *M6502, v uint8) { c.compare(c.A, v) })
	case 0xC1:
		c.queueIndexedIndirect(func(c *M6502, v uint8) { c.compare(c.A, v) })

	case 0xE0:
		c.queueImmediate(func(c *M6502, v uint8) { c.compare(c.X, v) })
	case 0xE4:
		c.queueZeroPage(func(c *M6502, v uint8) { c.compare(c.X, v) })
	case 0xEC:
		c.queueAbsolute(func(c *M6502, v uint8) { c.compare(c.X, v) })

	case 0xC0:
		c.queueImmediate(func(c *M6502, v uint8) { c.compare(c.Y, v) })
	case 0xC4:
		c.queueZeroPage(func(c *M6502, v uint8) { c.compare(c.Y, v) })
	case 0xCC:
		c.queueAbsolute(func(c *M6502, v uint8) { c.compare(c.Y, v) })

	case 0x24: // BIT zp
		c.queueZeroPage(c.bit)
	case 0x2C: // BIT abs
		c.queueAbsolute(c.bit)

	// ---- inc/dec ----
	case 0xE8:
		c.queueImplied(func(c *M6502) { c.X++; c.setNZ(c.X) })
	case 0xC8:
		c.queueImplied(func(c *M6502) { c.Y++; c.setNZ(c.Y) })
	case 0xCA:
		c.queueImplied(func(c *M6502) { c.X--; c.setNZ(c.X) })
	case 0x88:
		c.queueImplied(func(c *M6502) { c.Y--; c.setNZ(c.Y) })
	case 0xE6:
		c.queueRMWZeroPage(func(c *M6502, v uint8) uint8 { v++; c.setNZ(v); return v })
	case 0xF6:
		c.queueRMWZeroPageIndexed(&c.X, func(c *M6502, v uint8) uint8 { v++; c.setNZ(v); return v })
	case 0xEE:
		c.queueRMWAbsolute(func(c *M6502, v uint8) uint8 { v++; c.setNZ(v); return v })
	case 0xC6:
		c.queueRMWZeroPage(func(c *M6502, v uint8) uint8 { v--; c.setNZ(v); return v })
	case 0xD6:
		c.queueRMWZeroPageIndexed(&c.X, func(c *M6502, v uint8) uint8 { v--; c.setNZ(v); return v })
	case 0xCE:
		c.queueRMWAbsolute(func(c *M6502, v uint8) uint8 { v--; c.setNZ(v); return v })

	// ---- shifts/rotates ----
	case 0x0A: // ASL A
		c.queueImplied(func(c *M6502) { c.A = c.asl(c.A) })
	case 0x06:
		c.queueRMWZeroPage(func(c *M6502, v uint8) uint8 { return c.asl(v) })
	case 0x0E:
		c.queueRMWAbsolute(func(c *M6502, v uint8) uint8 { return c.asl(v) })
	case 0x4A: // LSR A
		c.queueImplied(func(c *M6502) { c.A = c.lsr(c.A) })
	case 0x46:
		c.queueRMWZeroPage(func(c *M6502, v uint8) uint8 { return c.lsr(v) })
	case 0x4E:
		c.queueRMWAbsolute(func(c *M6502, v uint8) uint8 { return c.lsr(v) })
	case 0x2A: // ROL A
		c.queueImplied(func(c *M6502) { c.A = c.rol(c.A) })
	case 0x26:
		c.queueRMWZeroPage(func(c *M6502, v uint8) uint8 { return c.rol(v) })
	case 0x2E:
		c.queueRMWAbsolute(func(c *M6502, v uint8) uint8 { return c.rol(v) })
	case 0x6A: // ROR A
		c.queueImplied(func(c *M6502) { c.A = c.ror(c.A) })
	case 0x66:
		c.queueRMWZeroPage(func(c *M6502, v uint8) uint8 { return c.ror(v) })
	case 0x6E:
		c.queueRMWAbsolute(func(c *M6502, v uint8) uint8 { return c.ror(v) })

	// ---- branches ----
	case 0x90:
		c.queueBranch(!c.has(FlagC))
	case 0xB0:
		c.queueBranch(c.has(FlagC))
	case 0xF0:
		c.queueBranch(c.has(FlagZ))
	case 0xD0:
		c.queueBranch(!c.has(FlagZ))
	case 0x30:
		c.queueBranch(c.has(FlagN))
	case 0x10:
		c.queueBranch(!c.has(FlagN))
	case 0x50:
		c.queueBranch(!c.has(FlagV))
	case 0x70:
		c.queueBranch(c.has(FlagV))

	// ---- jumps/calls ----
	case 0x4C: // JMP abs
		c.queueJMPAbsolute()
	case 0x6C: // JMP (ind) — reproduces the classic page-wrap fetch bug
		c.queueJMPIndirect()
	case 0x20: // JSR abs
		c.queueJSR()
	case 0x60: // RTS
		c.queueRTS()
	case 0x40: // RTI
		c.queueRTI()

	// ---- stack ----
	case 0x48: // PHA
		c.queuePush(func(c *M6502) uint8 { return c.A })
	case 0x08: // PHP
		c.queuePush(func(c *M6502) uint8 { return c.Status | Flag1 | FlagB })
	case 0x68: // PLA
		c.queuePull(func(c *M6502, v uint8) { c.A = v; c.setNZ(v) })
	case 0x28: // PLP
		c.queuePull(func(c *M6502, v uint8) { c.Status = (v &^ FlagB) | Flag1 })

	// ---- flags ----
	case 0x18:
		c.queueImplied(func(c *M6502) { c.flag(FlagC, false) })
	case 0x38:
		c.queueImplied(func(c *M6502) { c.flag(FlagC, true) })
	case 0x58:
		c.queueImplied(func(c *M6502) { c.flag(FlagI, false) })
	case 0x78:
		c.queueImplied(func(c *M6502) { c.flag(FlagI, true) })
	case 0xB8:
		c.queueImplied(func(c *M6502) { c.flag(FlagV, false) })
	case 0xD8:
		c.queueImplied(func(c *M6502) { c.flag(FlagD, false) })
	case 0xF8:
		c.queueImplied(func(c *M6502) { c.flag(FlagD, true) })

	case 0xEA: // NOP
		c.queueImplied(func(c *M6502) {})

	case 0x00: // BRK
		c.queueBRK()

	default:
		// Unimplemented/undocumented opcode: treat as a 2-cycle NOP rather
		// than panicking, so a board can still make forward progress while
		// the opcode table is extended. Real hardware quirks for the rest
		// of the undocumented set are out of scope for now.
		c.queueImplied(func(c *M6502) {})
	}
}

// ---- addressing-mode / operation helpers ----

func (c *M6502) queueImplied(op func(c *M6502)) {
	c.pending = append(c.pending, func(c *M6502, b bus.Bus, m bus.Master) {
		b.Read(m, c.PC) // dummy read of the following opcode byte
		op(c)
	})
}

func (c *M6502) queueImmediate(op func(c *M6502, v uint8)) {
	c.pending = append(c.pending, func(c *M6502, b bus.Bus, m bus.Master) {
		v := b.Read(m, c.PC)
		c.PC++
		op(c, v)
	})
}

func (c *M6502) queueZeroPage(op func(c *M6502, v uint8)) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { op(c, b.Read(m, uint16(c.addrLow))) },
	)
}

func (c *M6502) queueStoreZeroPage(val func(c *M6502) uint8) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, uint16(c.addrLow), val(c)) },
	)
}

func (c *M6502) queueRMWZeroPage(op func(c *M6502, v uint8) uint8) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { c.operand = b.Read(m, uint16(c.addrLow)) },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, uint16(c.addrLow), c.operand) }, // dummy write-back
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, uint16(c.addrLow), op(c, c.operand)) },
	)
}

func (c *M6502) queueZeroPageIndexed(idx *uint8, op func(c *M6502, v uint8)) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, uint16(c.addrLow)); c.addrLow += *idx },
		func(c *M6502, b bus.Bus, m bus.Master) { op(c, b.Read(m, uint16(c.addrLow))) },
	)
}

func (c *M6502) queueStoreZeroPageIndexed(idx *uint8, val func(c *M6502) uint8) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, uint16(c.addrLow)); c.addrLow += *idx },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, uint16(c.addrLow), val(c)) },
	)
}

func (c *M6502) queueRMWZeroPageIndexed(idx *uint8, op func(c *M6502, v uint8) uint8) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, uint16(c.addrLow)); c.addrLow += *idx },
		func(c *M6502, b bus.Bus, m bus.Master) { c.operand = b.Read(m, uint16(c.addrLow)) },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, uint16(c.addrLow), c.operand) },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, uint16(c.addrLow), op(c, c.operand)) },
	)
}

func (c *M6502) fetchAbsAddr() {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) {
			c.addrHigh = b.Read(m, c.PC)
			c.PC++
			c.effAddr = uint16(c.addrHigh)<<8 | uint16(c.addrLow)
		},
	)
}

func (c *M6502) queueAbsolute(op func(c *M6502, v uint8)) {
	c.fetchAbsAddr()
	c.pending = append(c.pending, func(c *M6502, b bus.Bus, m bus.Master) { op(c, b.Read(m, c.effAddr)) })
}

func (c *M6502) queueStoreAbsolute(val func(c *M6502) uint8) {
	c.fetchAbsAddr()
	c.pending = append(c.pending, func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, val(c)) })
}

func (c *M6502) queueRMWAbsolute(op func(c *M6502, v uint8) uint8) {
	c.fetchAbsAddr()
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.effAddr) },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, c.operand) },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, op(c, c.operand)) },
	)
}

// queueAbsoluteIndexed models the real 5-vs-4-cycle behavior: an extra
// cycle is spent only when adding the index crosses a page boundary.
func (c *M6502) queueAbsoluteIndexed(idx *uint8, op func(c *M6502, v uint8)) {
	c.fetchAbsAddr()
	c.pending = append(c.pending, func(c *M6502, b bus.Bus, m bus.Master) {
		base := c.effAddr
		c.effAddr = base + uint16(*idx)
		c.pageCrossed = (base & 0xFF00) != (c.effAddr & 0xFF00)
		if c.pageCrossed {
			// dummy read from the not-yet-carried address
			b.Read(m, (base&0xFF00)|(c.effAddr&0x00FF))
			c.pending = append([]microOp{func(c *M6502, b bus.Bus, m bus.Master) { op(c, b.Read(m, c.effAddr)) }}, c.pending...)
		} else {
			op(c, b.Read(m, c.effAddr))
		}
	})
}

func (c *M6502) queueStoreAbsoluteIndexed(idx *uint8, val func(c *M6502) uint8) {
	c.fetchAbsAddr()
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) {
			base := c.effAddr
			c.effAddr = base + uint16(*idx)
			b.Read(m, (base&0xFF00)|(c.effAddr&0x00FF)) // always spent on stores
		},
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, val(c)) },
	)
}

func (c *M6502) queueIndexedIndirect(op func(c *M6502, v uint8)) { // (zp,X)
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, uint16(c.addrLow)); c.addrLow += c.X },
		func(c *M6502, b bus.Bus, m bus.Master) {
			lo := b.Read(m, uint16(c.addrLow))
			hi := b.Read(m, uint16(c.addrLow+1))
			c.effAddr = uint16(hi)<<8 | uint16(lo)
		},
		func(c *M6502, b bus.Bus, m bus.Master) { op(c, b.Read(m, c.effAddr)) },
	)
}

func (c *M6502) queueStoreIndexedIndirect(val func(c *M6502) uint8) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, uint16(c.addrLow)); c.addrLow += c.X },
		func(c *M6502, b bus.Bus, m bus.Master) {
			lo := b.Read(m, uint16(c.addrLow))
			hi := b.Read(m, uint16(c.addrLow+1))
			c.effAddr = uint16(hi)<<8 | uint16(lo)
		},
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, val(c)) },
	)
}

func (c *M6502) queueIndirectIndexed(op func(c *M6502, v uint8)) { // (zp),Y
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) {
			lo := b.Read(m, uint16(c.addrLow))
			hi := b.Read(m, uint16(c.addrLow+1))
			c.effAddr = uint16(hi)<<8 | uint16(lo)
		},
		func(c *M6502, b bus.Bus, m bus.Master) {
			base := c.effAddr
			c.effAddr = base + uint16(c.Y)
			c.pageCrossed = (base & 0xFF00) != (c.effAddr & 0xFF00)
			if c.pageCrossed {
				b.Read(m, (base&0xFF00)|(c.effAddr&0x00FF))
				c.pending = append([]microOp{func(c *M6502, b bus.Bus, m bus.Master) { op(c, b.Read(m, c.effAddr)) }}, c.pending...)
			} else {
				op(c, b.Read(m, c.effAddr))
			}
		},
	)
}

func (c *M6502) queueStoreIndirectIndexed(val func(c *M6502) uint8) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) {
			lo := b.Read(m, uint16(c.addrLow))
			hi := b.Read(m, uint16(c.addrLow+1))
			c.effAddr = uint16(hi)<<8 | uint16(lo)
		},
		func(c *M6502, b bus.Bus, m bus.Master) {
			base := c.effAddr
			c.effAddr = base + uint16(c.Y)
			b.Read(m, (base&0xFF00)|(c.effAddr&0x00FF))
		},
		func(c *M6502, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, val(c)) },
	)
}

func (c *M6502) queueBranch(taken bool) {
	c.pending = append(c.pending, func(c *M6502, b bus.Bus, m bus.Master) {
		offset := int8(b.Read(m, c.PC))
		c.PC++
		if !taken {
			return
		}
		base := c.PC
		target := uint16(int32(base) + int32(offset))
		// extra cycle taken
		c.pending = append(c.pending, func(c *M6502, b bus.Bus, m bus.Master) {
			b.Read(m, base)
			if base&0xFF00 != target&0xFF00 {
				c.pending = append(c.pending, func(c *M6502, b bus.Bus, m bus.Master) {
					b.Read(m, (base&0xFF00)|(target&0x00FF))
					c.PC = target
				})
			} else {
				c.PC = target
			}
		})
	})
}

func (c *M6502) queueJMPAbsolute() {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) {
			c.addrHigh = b.Read(m, c.PC)
			c.PC = uint16(c.addrHigh)<<8 | uint16(c.addrLow)
		},
	)
}

func (c *M6502) queueJMPIndirect() {
	c.fetchAbsAddr()
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.effAddr) },
		func(c *M6502, b bus.Bus, m bus.Master) {
			// faithful reproduction of the page-wrap fetch bug: the high
			// byte is read from (addr & 0xFF00) | ((addr+1) & 0x00FF), so
			// JMP ($xxFF) wraps within the same page instead of crossing it
			hiAddr := (c.effAddr & 0xFF00) | ((c.effAddr + 1) & 0x00FF)
			hi := b.Read(m, hiAddr)
			c.PC = uint16(hi)<<8 | uint16(c.addrLow)
		},
	)
}

func (c *M6502) queueJSR() {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, 0x0100 + uint16(c.SP)) }, // internal delay
		func(c *M6502, b bus.Bus, m bus.Master) { c.push(b, m, uint8(c.PC>>8)) },
		func(c *M6502, b bus.Bus, m bus.Master) { c.push(b, m, uint8(c.PC)) },
		func(c *M6502, b bus.Bus, m bus.Master) {
			c.addrHigh = b.Read(m, c.PC)
			c.PC = uint16(c.addrHigh)<<8 | uint16(c.addrLow)
		},
	)
}

func (c *M6502) queueRTS() {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, c.PC) },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, 0x0100 + uint16(c.SP)) },
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = c.pop(b, m) },
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrHigh = c.pop(b, m) },
		func(c *M6502, b bus.Bus, m bus.Master) {
			c.PC = uint16(c.addrHigh)<<8 | uint16(c.addrLow)
			b.Read(m, c.PC)
			c.PC++
		},
	)
}

func (c *M6502) queueRTI() {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, c.PC) },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, 0x0100 + uint16(c.SP)) },
		func(c *M6502, b bus.Bus, m bus.Master) { c.Status = (c.pop(b, m) &^ FlagB) | Flag1 },
		func(c *M6502, b bus.Bus, m bus.Master) { c.addrLow = c.pop(b, m) },
		func(c *M6502, b bus.Bus, m bus.Master) {
			c.addrHigh = c.pop(b, m)
			c.PC = uint16(c.addrHigh)<<8 | uint16(c.addrLow)
		},
	)
}

func (c *M6502) queuePush(val func(c *M6502) uint8) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, c.PC) },
		func(c *M6502, b bus.Bus, m bus.Master) { c.push(b, m, val(c)) },
	)
}

func (c *M6502) queuePull(op func(c *M6502, v uint8)) {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, c.PC) },
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, 0x0100 + uint16(c.SP)) },
		func(c *M6502, b bus.Bus, m bus.Master) { op(c, c.pop(b, m)) },
	)
}

func (c *M6502) queueBRK() {
	c.pending = append(c.pending,
		func(c *M6502, b bus.Bus, m bus.Master) { b.Read(m, c.PC); c.PC++ },
		func(c *M6502, b bus.Bus, m bus.Master) { c.push(b, m, uint8(c.PC>>8)) },
		func(c *M6502, b bus.Bus, m bus.Master) { c.push(b, m, uint8(c.PC)) },
		func(c *M6502, b bus.Bus, m bus.Master) { c.push(b, m, c.Status|Flag1|FlagB) },
		func(c *M6502, b bus.Bus, m bus.Master) { c.flag(FlagI, true); c.addrLow = b.Read(m, 0xFFFE) },
		func(c *M6502, b bus.Bus, m bus.Master) {
			c.addrHigh = b.Read(m, 0xFFFF)
			c.PC = uint16(c.addrHigh)<<8 | uint16(c.addrLow)
		},
	)
}

// ---- ALU helpers ----

func (c *M6502) adc(cpu *M6502, v uint8) {
	carry := uint16(0)
	if cpu.has(FlagC) {
		carry = 1
	}
	sum := uint16(cpu.A) + uint16(v) + carry
	cpu.flag(FlagV, (^(uint16(cpu.A)^uint16(v)))&(uint16(cpu.A)^sum)&0x80 != 0)
	cpu.flag(FlagC, sum > 0xFF)
	cpu.A = uint8(sum)
	cpu.setNZ(cpu.A)
}

func (c *M6502) sbc(cpu *M6502, v uint8) {
	cpu.adc(cpu, ^v)
}

func (c *M6502) compare(reg, v uint8) {
	result := reg - v
	c.flag(FlagC, reg >= v)
	c.setNZ(result)
}

func (c *M6502) bit(cpu *M6502, v uint8) {
	cpu.flag(FlagZ, cpu.A&v == 0)
	cpu.flag(FlagV, v&0x40 != 0)
	cpu.flag(FlagN, v&0x80 != 0)
}

func (c *M6502) asl(v uint8) uint8 {
	c.flag(FlagC, v&0x80 != 0)
	v <<= 1
	c.setNZ(v)
	return v
}

func (c *M6502) lsr(v uint8) uint8 {
	c.flag(FlagC, v&0x01 != 0)
	v >>= 1
	c.setNZ(v)
	return v
}

func (c *M6502) rol(v uint8) uint8 {
	carryIn := uint8(0)
	if c.has(FlagC) {
		carryIn = 1
	}
	c.flag(FlagC, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.setNZ(v)
	return v
}

func (c *M6502) ror(v uint8) uint8 {
	carryIn := uint8(0)
	if c.has(FlagC) {
		carryIn = 0x80
	}
	c.flag(FlagC, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.setNZ(v)
	return v
}
