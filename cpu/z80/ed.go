package z80

import "github.com/patsoffice/arcadecore/bus"

func (c *Z80) getSS(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *Z80) setSS(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// decodeED handles the ED-prefixed extended instruction set: 16-bit
// ADC/SBC against HL, LD ss,(nn)/LD (nn),ss, NEG, RETN/RETI, IM 0/1/2, the
// I/R load-and-interrupt-vector group, RRD/RLD, IN r,(C)/OUT (C),r, and
// the single-step block transfer/search instructions (LDI/LDD/CPI/CPD and
// their repeating IR forms). The I/O block instructions (INI/IND/OUTI/
// OUTD and their repeating forms) are not implemented — no Williams/Atari
// board in scope drives the Z80's I/O block path — a disclosed omission.
func (c *Z80) decodeED(b bus.Bus, master bus.Master, sub uint8) {
	switch sub {
	case 0x47:
		c.I = c.A
		return
	case 0x4F:
		c.R = c.A
		return
	case 0x57:
		c.A = c.I
		c.flag(FlagS, c.A&0x80 != 0)
		c.flag(FlagZ, c.A == 0)
		c.flag(FlagH, false)
		c.flag(FlagN, false)
		c.flag(FlagPV, c.IFF2)
		return
	case 0x5F:
		c.A = c.R
		c.flag(FlagS, c.A&0x80 != 0)
		c.flag(FlagZ, c.A == 0)
		c.flag(FlagH, false)
		c.flag(FlagN, false)
		c.flag(FlagPV, c.IFF2)
		return
	case 0x67: // RRD
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.HL()) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				hl := c.HL()
				v := c.operand
				a := c.A
				c.A = a&0xF0 | v&0x0F
				b.Write(m, hl, (a<<4)|(v>>4))
				c.flag(FlagH, false)
				c.flag(FlagN, false)
				c.flag(FlagPV, parity(c.A))
				c.setSZXY(c.A)
				c.MEMPTR = hl + 1
			},
		)
		return
	case 0x6F: // RLD
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.HL()) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				hl := c.HL()
				v := c.operand
				a := c.A
				c.A = a&0xF0 | v>>4
				b.Write(m, hl, (v<<4)|(a&0x0F))
				c.flag(FlagH, false)
				c.flag(FlagN, false)
				c.flag(FlagPV, parity(c.A))
				c.setSZXY(c.A)
				c.MEMPTR = hl + 1
			},
		)
		return
	case 0xA0:
		c.queueLDI(false)
		return
	case 0xB0:
		c.queueLDI(true)
		return
	case 0xA8:
		c.queueLDD(false)
		return
	case 0xB8:
		c.queueLDD(true)
		return
	case 0xA1:
		c.queueCPI(false)
		return
	case 0xB1:
		c.queueCPI(true)
		return
	case 0xA9:
		c.queueCPD(false)
		return
	case 0xB9:
		c.queueCPD(true)
		return
	case 0x45, 0x4D, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D: // RETN/RETI
		c.pending = append(c.pending, c.pop16Ops(func(c *Z80, v uint16) {
			c.IFF1 = c.IFF2
			c.PC = v
		})...)
		return
	}

	switch sub {
	case 0x46, 0x4E, 0x66, 0x6E:
		c.IM = 0
		return
	case 0x56, 0x76:
		c.IM = 1
		return
	case 0x5E, 0x7E:
		c.IM = 2
		return
	}

	switch sub & 0xC7 {
	case 0x42: // SBC HL,ss
		ss := c.getSS((sub >> 4) & 3)
		hl := c.HL()
		r := int32(hl) - int32(ss) - int32(b2u(c.has(FlagC)))
		c.flag(FlagH, int32(hl&0x0FFF)-int32(ss&0x0FFF)-int32(b2u(c.has(FlagC))) < 0)
		c.flag(FlagC, r < 0)
		c.flag(FlagPV, (hl^ss)&0x8000 != 0 && (hl^uint16(r))&0x8000 != 0)
		c.flag(FlagN, true)
		c.SetHL(uint16(r))
		c.setSZXY16(uint16(r))
		c.MEMPTR = hl + 1
		return
	case 0x4A: // ADC HL,ss
		ss := c.getSS((sub >> 4) & 3)
		hl := c.HL()
		r := uint32(hl) + uint32(ss) + uint32(b2u(c.has(FlagC)))
		c.flag(FlagH, (hl&0x0FFF)+(ss&0x0FFF)+uint16(b2u(c.has(FlagC))) > 0x0FFF)
		c.flag(FlagC, r > 0xFFFF)
		c.flag(FlagPV, (hl^ss)&0x8000 == 0 && (hl^uint16(r))&0x8000 != 0)
		c.flag(FlagN, false)
		c.SetHL(uint16(r))
		c.setSZXY16(uint16(r))
		c.MEMPTR = hl + 1
		return
	case 0x43: // LD (nn),ss
		ss := c.getSS((sub >> 4) & 3)
		c.queueAddr16(c.write16LEOps(func(c *Z80) uint16 { return ss }, true)...)
		return
	case 0x4B: // LD ss,(nn)
		idx := (sub >> 4) & 3
		c.queueAddr16(c.read16LEOps(func(c *Z80, v uint16) { c.setSS(idx, v) }, true)...)
		return
	case 0x44: // NEG
		v := c.A
		c.A = 0 - v
		c.flag(FlagC, v != 0)
		c.flag(FlagH, v&0x0F != 0)
		c.flag(FlagPV, v == 0x80)
		c.flag(FlagN, true)
		c.setSZXY(c.A)
		return
	}

	switch sub & 0xC7 {
	case 0x40: // IN r,(C)
		idx := (sub >> 3) & 7
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
			addr := c.BC()
			v := b.Read(m, addr)
			c.MEMPTR = addr + 1
			if idx != 6 {
				c.setReg8(b, m, idx, v, 0)
			}
			c.flag(FlagH, false)
			c.flag(FlagN, false)
			c.flag(FlagPV, parity(v))
			c.setSZXY(v)
		})
		return
	case 0x41: // OUT (C),r
		idx := (sub >> 3) & 7
		v := c.getReg8(b, master, idx, c.HL())
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
			addr := c.BC()
			b.Write(m, addr, v)
			c.MEMPTR = addr + 1
		})
		return
	}
	// Unrecognized ED opcode: no-op, per the undocumented-opcode policy.
}

func (c *Z80) setSZXY16(v uint16) {
	c.flag(FlagS, v&0x8000 != 0)
	c.flag(FlagZ, v == 0)
	c.flag(FlagX, uint8(v>>8)&0x08 != 0)
	c.flag(FlagY, uint8(v>>8)&0x20 != 0)
}

// queueLDI/queueLDD each spread their single read-then-write across two
// queued cycles; the repeating IR forms' conditional PC rewind is pure
// register work and is folded into the write cycle at no extra cost.
func (c *Z80) queueLDI(repeat bool) {
	c.pending = append(c.pending,
		func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.HL()) },
		func(c *Z80, b bus.Bus, m bus.Master) {
			v := c.operand
			b.Write(m, c.DE(), v)
			c.SetHL(c.HL() + 1)
			c.SetDE(c.DE() + 1)
			c.SetBC(c.BC() - 1)
			c.flag(FlagH, false)
			c.flag(FlagN, false)
			c.flag(FlagPV, c.BC() != 0)
			n := c.A + v
			c.flag(FlagX, n&0x08 != 0)
			c.flag(FlagY, n&0x02 != 0)
			if repeat && c.BC() != 0 {
				c.PC -= 2
				c.MEMPTR = c.PC + 1
			}
		},
	)
}

func (c *Z80) queueLDD(repeat bool) {
	c.pending = append(c.pending,
		func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.HL()) },
		func(c *Z80, b bus.Bus, m bus.Master) {
			v := c.operand
			b.Write(m, c.DE(), v)
			c.SetHL(c.HL() - 1)
			c.SetDE(c.DE() - 1)
			c.SetBC(c.BC() - 1)
			c.flag(FlagH, false)
			c.flag(FlagN, false)
			c.flag(FlagPV, c.BC() != 0)
			n := c.A + v
			c.flag(FlagX, n&0x08 != 0)
			c.flag(FlagY, n&0x02 != 0)
			if repeat && c.BC() != 0 {
				c.PC -= 2
				c.MEMPTR = c.PC + 1
			}
		},
	)
}

func (c *Z80) queueCPI(repeat bool) {
	c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
		v := b.Read(m, c.HL())
		r := c.A - v
		c.SetHL(c.HL() + 1)
		c.SetBC(c.BC() - 1)
		c.flag(FlagH, c.A&0x0F < v&0x0F)
		c.flag(FlagN, true)
		c.flag(FlagPV, c.BC() != 0)
		c.flag(FlagS, r&0x80 != 0)
		c.flag(FlagZ, r == 0)
		c.MEMPTR++
		if repeat && c.BC() != 0 && r != 0 {
			c.PC -= 2
			c.MEMPTR = c.PC + 1
		}
	})
}

func (c *Z80) queueCPD(repeat bool) {
	c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
		v := b.Read(m, c.HL())
		r := c.A - v
		c.SetHL(c.HL() - 1)
		c.SetBC(c.BC() - 1)
		c.flag(FlagH, c.A&0x0F < v&0x0F)
		c.flag(FlagN, true)
		c.flag(FlagPV, c.BC() != 0)
		c.flag(FlagS, r&0x80 != 0)
		c.flag(FlagZ, r == 0)
		c.MEMPTR--
		if repeat && c.BC() != 0 && r != 0 {
			c.PC -= 2
			c.MEMPTR = c.PC + 1
		}
	})
}
