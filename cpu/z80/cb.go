package z80

import "github.com/patsoffice/arcadecore/bus"

// cbOp applies one CB-page operation (rotate/shift group below 0x40, BIT
// 0x40-0x7F, RES 0x80-0xBF, SET 0xC0-0xFF) to v, returning the new value
// and whether the op was BIT (which never writes its operand back).
func (c *Z80) cbOp(sub uint8, v uint8) (uint8, bool) {
	bitIdx := (sub >> 3) & 7
	switch {
	case sub < 0x40:
		switch (sub >> 3) & 7 {
		case 0: // RLC
			cy := v&0x80 != 0
			v = v<<1 | b2u(cy)
			c.flag(FlagC, cy)
		case 1: // RRC
			cy := v&0x01 != 0
			v = v>>1 | (b2u(cy) << 7)
			c.flag(FlagC, cy)
		case 2: // RL
			cy := v&0x80 != 0
			v = v<<1 | b2u(c.has(FlagC))
			c.flag(FlagC, cy)
		case 3: // RR
			cy := v&0x01 != 0
			v = v>>1 | (b2u(c.has(FlagC)) << 7)
			c.flag(FlagC, cy)
		case 4: // SLA
			cy := v&0x80 != 0
			v = v << 1
			c.flag(FlagC, cy)
		case 5: // SRA
			cy := v&0x01 != 0
			v = v&0x80 | v>>1
			c.flag(FlagC, cy)
		case 6: // SLL (undocumented, sets bit 0)
			cy := v&0x80 != 0
			v = v<<1 | 1
			c.flag(FlagC, cy)
		case 7: // SRL
			cy := v&0x01 != 0
			v = v >> 1
			c.flag(FlagC, cy)
		}
		c.flag(FlagH, false)
		c.flag(FlagN, false)
		c.flag(FlagPV, parity(v))
		c.setSZXY(v)
		return v, false
	case sub < 0x80: // BIT b,v
		set := v&(1<<bitIdx) != 0
		c.flag(FlagZ, !set)
		c.flag(FlagPV, !set)
		c.flag(FlagS, bitIdx == 7 && set)
		c.flag(FlagH, true)
		c.flag(FlagN, false)
		c.flag(FlagX, v&0x08 != 0)
		c.flag(FlagY, v&0x20 != 0)
		return v, true
	case sub < 0xC0: // RES b,v
		return v &^ (1 << bitIdx), false
	default: // SET b,v
		return v | (1 << bitIdx), false
	}
}

// decodeCB handles the plain (unprefixed-by-IX/IY) CB page: the operand is
// the standard 0-7 register index, (HL) for index 6. Register forms carry
// no further bus access and run within the combined CB-prefix fetch;
// (HL) forms queue the read, and the write-back (skipped for BIT) as
// their own cycle.
func (c *Z80) decodeCB(b bus.Bus, master bus.Master, sub uint8) {
	idx := sub & 7
	if idx == 6 {
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
			v := b.Read(m, c.HL())
			r, isBit := c.cbOp(sub, v)
			if !isBit {
				c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
					b.Write(m, c.HL(), r)
				})
			}
		})
		return
	}
	v := c.getReg8(b, master, idx, 0)
	r, isBit := c.cbOp(sub, v)
	if !isBit {
		c.setReg8(b, master, idx, r, 0)
	}
}

// decodeIndexedCB handles DDCB/FDCB: the operand is always the byte at
// addr ((IX+d)/(IY+d)); the undocumented "also store into register" form
// is not modeled (disclosed scope reduction). Called from within a
// queued op already past the displacement and sub-opcode fetches, so it
// only needs to queue the read and (for non-BIT ops) the write.
func (c *Z80) decodeIndexedCB(sub uint8, addr uint16) {
	c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
		v := b.Read(m, addr)
		r, isBit := c.cbOp(sub, v)
		if !isBit {
			c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
				b.Write(m, addr, r)
			})
		}
	})
}
