package z80

import "github.com/patsoffice/arcadecore/bus"

// decodeIndexed handles the DD/FD prefix, substituting ix for HL across
// the subset of opcodes that reference HL or (HL): 16-bit load/arithmetic,
// INC/DEC, PUSH/POP, EX (SP),ix, JP (ix), LD SP,ix, the (ix+d)-addressed
// 8-bit load/ALU/INC/DEC forms, and the DDCB/FDCB bit-op page. Plain
// register-to-register opcodes that don't touch (HL) fall through to the
// unprefixed decoder unchanged — real hardware substitutes the undocumented
// IXH/IXL halves in that case, which this core does not model (disclosed
// scope reduction, consistent with not fabricating undocumented behavior).
//
// Called from within the already-executing DD/FD prefix-dispatch op, so
// it only ever appends further micro-ops; it never touches the bus
// directly itself.
func (c *Z80) decodeIndexed(sub uint8, ix *uint16) {
	switch sub {
	case 0x21:
		c.queueImmediate16(func(c *Z80, v uint16) { *ix = v })
		return
	case 0x22:
		c.queueAddr16(c.write16LEOps(func(c *Z80) uint16 { return *ix }, true)...)
		return
	case 0x2A:
		c.queueAddr16(c.read16LEOps(func(c *Z80, v uint16) { *ix = v }, true)...)
		return
	case 0x23:
		c.queueImplied(func(c *Z80) { *ix++ })
		return
	case 0x2B:
		c.queueImplied(func(c *Z80) { *ix-- })
		return
	case 0x09:
		c.queueImplied(func(c *Z80) { *ix = c.addHL16(*ix, c.BC()) })
		return
	case 0x19:
		c.queueImplied(func(c *Z80) { *ix = c.addHL16(*ix, c.DE()) })
		return
	case 0x29:
		c.queueImplied(func(c *Z80) { *ix = c.addHL16(*ix, *ix) })
		return
	case 0x39:
		c.queueImplied(func(c *Z80) { *ix = c.addHL16(*ix, c.SP) })
		return
	case 0x34: // INC (ix+d)
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) {
				c.displacement = int8(c.fetch8(b, m))
				c.effAddr = uint16(int32(*ix) + int32(c.displacement))
			},
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.effAddr) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				v := c.operand
				r := v + 1
				b.Write(m, c.effAddr, r)
				c.flag(FlagH, v&0x0F == 0x0F)
				c.flag(FlagPV, v == 0x7F)
				c.flag(FlagN, false)
				c.setSZXY(r)
			},
		)
		return
	case 0x35: // DEC (ix+d)
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) {
				c.displacement = int8(c.fetch8(b, m))
				c.effAddr = uint16(int32(*ix) + int32(c.displacement))
			},
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.effAddr) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				v := c.operand
				r := v - 1
				b.Write(m, c.effAddr, r)
				c.flag(FlagH, v&0x0F == 0x00)
				c.flag(FlagPV, v == 0x80)
				c.flag(FlagN, true)
				c.setSZXY(r)
			},
		)
		return
	case 0x36: // LD (ix+d),n
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) {
				c.displacement = int8(c.fetch8(b, m))
				c.effAddr = uint16(int32(*ix) + int32(c.displacement))
			},
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = c.fetch8(b, m) },
			func(c *Z80, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr, c.operand) },
		)
		return
	case 0xE5:
		c.pending = append(c.pending, c.push16Ops(*ix)...)
		return
	case 0xE1:
		c.pending = append(c.pending, c.pop16Ops(func(c *Z80, v uint16) { *ix = v })...)
		return
	case 0xE3: // EX (SP),ix
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.SP) },
			func(c *Z80, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.SP+1) },
			func(c *Z80, b bus.Bus, m bus.Master) { b.Write(m, c.SP, uint8(*ix)) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				b.Write(m, c.SP+1, uint8(*ix>>8))
				*ix = uint16(c.addrHigh)<<8 | uint16(c.operand)
				c.MEMPTR = *ix
			},
		)
		return
	case 0xE9:
		c.queueImplied(func(c *Z80) { c.PC = *ix })
		return
	case 0xF9:
		c.queueImplied(func(c *Z80) { c.SP = *ix })
		return
	case 0xCB:
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) { c.displacement = int8(c.fetch8(b, m)) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				sub2 := c.fetch8(b, m)
				addr := uint16(int32(*ix) + int32(c.displacement))
				c.decodeIndexedCB(sub2, addr)
			},
		)
		return
	}

	if sub >= 0x40 && sub <= 0x7F {
		dst := (sub >> 3) & 7
		src := sub & 7
		if dst == 6 || src == 6 {
			c.pending = append(c.pending,
				func(c *Z80, b bus.Bus, m bus.Master) {
					c.displacement = int8(c.fetch8(b, m))
					c.effAddr = uint16(int32(*ix) + int32(c.displacement))
				},
				func(c *Z80, b bus.Bus, m bus.Master) {
					v := c.getReg8(b, m, src, c.effAddr)
					c.setReg8(b, m, dst, v, c.effAddr)
				},
			)
			return
		}
		c.decodeMain8Bit(sub)
		return
	}
	if sub >= 0x80 && sub <= 0xBF {
		idx := sub & 7
		which := (sub >> 3) & 7
		if idx == 6 {
			c.pending = append(c.pending,
				func(c *Z80, b bus.Bus, m bus.Master) {
					c.displacement = int8(c.fetch8(b, m))
					c.effAddr = uint16(int32(*ix) + int32(c.displacement))
				},
				func(c *Z80, b bus.Bus, m bus.Master) { c.alu(which, b.Read(m, c.effAddr)) },
			)
			return
		}
		c.queueImplied(func(c *Z80) { c.alu(which, c.getReg8(nil, bus.Master{}, idx, 0)) })
		return
	}

	// Any other opcode following DD/FD behaves as if the prefix were
	// absent (the real CPU's behavior for opcodes the prefix doesn't
	// affect); we delegate to the plain decoder rather than refetch a
	// byte that's already consumed.
	c.decode(sub)
}
