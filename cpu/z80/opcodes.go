package z80

import "github.com/patsoffice/arcadecore/bus"

// decode dispatches one unprefixed opcode. Coverage is the common subset
// exercised by Williams/Atari-era sound and driver boards: full 8/16-bit
// load group, ALU group, INC/DEC, the documented rotate/shift and bit
// groups via CB, jumps/calls/returns/restarts, block transfer and search
// via ED, and the IX/IY-indexed forms via DD/FD (including DDCB/FDCB).
// Less common ED I/O block instructions (INI/IND/OTIR/OTDR-class repeats)
// and the undocumented IXH/IXL register-direct forms are not implemented;
// see DESIGN.md for the full disclosure.
//
// Like cpu/m6809 and cpu/m6800, decode only appends micro-ops to c.pending;
// it never touches the bus directly. Tick drains exactly one queued op per
// call, except at the fetch boundary where the first newly-queued op also
// runs in the same call that fetched the opcode.
func (c *Z80) decode(opcode uint8) {
	switch opcode {
	case 0x00: // NOP
		c.queueImplied(func(c *Z80) {})
	case 0x76: // HALT
		c.queueImplied(func(c *Z80) { c.halted = true })
	case 0xF3: // DI
		c.queueImplied(func(c *Z80) { c.IFF1, c.IFF2 = false, false })
	case 0xFB: // EI
		c.queueImplied(func(c *Z80) { c.eiArmed = true })
	case 0xCB:
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
			sub := c.fetch8(b, m)
			c.decodeCB(b, m, sub)
		})
	case 0xED:
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
			sub := c.fetch8(b, m)
			c.decodeED(b, m, sub)
		})
	case 0xDD:
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
			sub := c.fetch8(b, m)
			c.decodeIndexed(sub, &c.IX)
		})
	case 0xFD:
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
			sub := c.fetch8(b, m)
			c.decodeIndexed(sub, &c.IY)
		})

	case 0x01:
		c.queueImmediate16(func(c *Z80, v uint16) { c.SetBC(v) })
	case 0x11:
		c.queueImmediate16(func(c *Z80, v uint16) { c.SetDE(v) })
	case 0x21:
		c.queueImmediate16(func(c *Z80, v uint16) { c.SetHL(v) })
	case 0x31:
		c.queueImmediate16(func(c *Z80, v uint16) { c.SP = v })

	case 0x02:
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) { b.Write(m, c.BC(), c.A) })
	case 0x12:
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) { b.Write(m, c.DE(), c.A) })
	case 0x0A:
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) { c.A = b.Read(m, c.BC()) })
	case 0x1A:
		c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) { c.A = b.Read(m, c.DE()) })

	case 0x22: // LD (nn),HL
		c.queueAddr16(c.write16LEOps(func(c *Z80) uint16 { return c.HL() }, true)...)
	case 0x2A: // LD HL,(nn)
		c.queueAddr16(c.read16LEOps(func(c *Z80, v uint16) { c.SetHL(v) }, true)...)
	case 0x32: // LD (nn),A
		c.queueAddr16(func(c *Z80, b bus.Bus, m bus.Master) {
			b.Write(m, c.effAddr, c.A)
			c.MEMPTR = uint16(c.A)<<8 | (c.effAddr+1)&0xFF
		})
	case 0x3A: // LD A,(nn)
		c.queueAddr16(func(c *Z80, b bus.Bus, m bus.Master) {
			c.A = b.Read(m, c.effAddr)
			c.MEMPTR = c.effAddr + 1
		})

	case 0x03:
		c.queueImplied(func(c *Z80) { c.SetBC(c.BC() + 1) })
	case 0x13:
		c.queueImplied(func(c *Z80) { c.SetDE(c.DE() + 1) })
	case 0x23:
		c.queueImplied(func(c *Z80) { c.SetHL(c.HL() + 1) })
	case 0x33:
		c.queueImplied(func(c *Z80) { c.SP++ })
	case 0x0B:
		c.queueImplied(func(c *Z80) { c.SetBC(c.BC() - 1) })
	case 0x1B:
		c.queueImplied(func(c *Z80) { c.SetDE(c.DE() - 1) })
	case 0x2B:
		c.queueImplied(func(c *Z80) { c.SetHL(c.HL() - 1) })
	case 0x3B:
		c.queueImplied(func(c *Z80) { c.SP-- })

	case 0x09:
		c.queueImplied(func(c *Z80) { c.SetHL(c.addHL16(c.HL(), c.BC())) })
	case 0x19:
		c.queueImplied(func(c *Z80) { c.SetHL(c.addHL16(c.HL(), c.DE())) })
	case 0x29:
		c.queueImplied(func(c *Z80) { c.SetHL(c.addHL16(c.HL(), c.HL())) })
	case 0x39:
		c.queueImplied(func(c *Z80) { c.SetHL(c.addHL16(c.HL(), c.SP)) })

	case 0x07: // RLCA
		c.queueImplied(func(c *Z80) {
			cy := c.A&0x80 != 0
			c.A = c.A<<1 | b2u(cy)
			c.flag(FlagC, cy)
			c.flag(FlagH, false)
			c.flag(FlagN, false)
			c.flag(FlagX, c.A&0x08 != 0)
			c.flag(FlagY, c.A&0x20 != 0)
		})
	case 0x0F: // RRCA
		c.queueImplied(func(c *Z80) {
			cy := c.A&0x01 != 0
			c.A = c.A>>1 | (b2u(cy) << 7)
			c.flag(FlagC, cy)
			c.flag(FlagH, false)
			c.flag(FlagN, false)
			c.flag(FlagX, c.A&0x08 != 0)
			c.flag(FlagY, c.A&0x20 != 0)
		})
	case 0x17: // RLA
		c.queueImplied(func(c *Z80) {
			cy := c.A&0x80 != 0
			c.A = c.A<<1 | b2u(c.has(FlagC))
			c.flag(FlagC, cy)
			c.flag(FlagH, false)
			c.flag(FlagN, false)
			c.flag(FlagX, c.A&0x08 != 0)
			c.flag(FlagY, c.A&0x20 != 0)
		})
	case 0x1F: // RRA
		c.queueImplied(func(c *Z80) {
			cy := c.A&0x01 != 0
			c.A = c.A>>1 | (b2u(c.has(FlagC)) << 7)
			c.flag(FlagC, cy)
			c.flag(FlagH, false)
			c.flag(FlagN, false)
			c.flag(FlagX, c.A&0x08 != 0)
			c.flag(FlagY, c.A&0x20 != 0)
		})
	case 0x27:
		c.queueImplied(func(c *Z80) { c.daa() })
	case 0x2F: // CPL
		c.queueImplied(func(c *Z80) {
			c.A = ^c.A
			c.flag(FlagH, true)
			c.flag(FlagN, true)
			c.flag(FlagX, c.A&0x08 != 0)
			c.flag(FlagY, c.A&0x20 != 0)
		})
	case 0x37: // SCF
		c.queueImplied(func(c *Z80) {
			c.flag(FlagC, true)
			c.flag(FlagH, false)
			c.flag(FlagN, false)
		})
	case 0x3F: // CCF
		c.queueImplied(func(c *Z80) {
			c.flag(FlagH, c.has(FlagC))
			c.flag(FlagC, !c.has(FlagC))
			c.flag(FlagN, false)
		})

	case 0x08: // EX AF,AF'
		c.queueImplied(func(c *Z80) { c.A, c.A2 = c.A2, c.A; c.F, c.F2 = c.F2, c.F })
	case 0xD9: // EXX
		c.queueImplied(func(c *Z80) {
			c.B, c.B2 = c.B2, c.B
			c.C, c.C2 = c.C2, c.C
			c.D, c.D2 = c.D2, c.D
			c.E, c.E2 = c.E2, c.E
			c.H, c.H2 = c.H2, c.H
			c.L, c.L2 = c.L2, c.L
		})
	case 0xEB: // EX DE,HL
		c.queueImplied(func(c *Z80) { c.D, c.H = c.H, c.D; c.E, c.L = c.L, c.E })
	case 0xE3: // EX (SP),HL
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.SP) },
			func(c *Z80, b bus.Bus, m bus.Master) { c.addrHigh = b.Read(m, c.SP+1) },
			func(c *Z80, b bus.Bus, m bus.Master) { b.Write(m, c.SP, c.L) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				b.Write(m, c.SP+1, c.H)
				c.L, c.H = c.operand, c.addrHigh
				c.MEMPTR = c.HL()
			},
		)
	case 0xF9: // LD SP,HL
		c.queueImplied(func(c *Z80) { c.SP = c.HL() })

	case 0xC5:
		c.pending = append(c.pending, c.push16Ops(c.BC())...)
	case 0xD5:
		c.pending = append(c.pending, c.push16Ops(c.DE())...)
	case 0xE5:
		c.pending = append(c.pending, c.push16Ops(c.HL())...)
	case 0xF5:
		c.pending = append(c.pending, c.push16Ops(c.AF())...)
	case 0xC1:
		c.pending = append(c.pending, c.pop16Ops(func(c *Z80, v uint16) { c.SetBC(v) })...)
	case 0xD1:
		c.pending = append(c.pending, c.pop16Ops(func(c *Z80, v uint16) { c.SetDE(v) })...)
	case 0xE1:
		c.pending = append(c.pending, c.pop16Ops(func(c *Z80, v uint16) { c.SetHL(v) })...)
	case 0xF1:
		c.pending = append(c.pending, c.pop16Ops(func(c *Z80, v uint16) { c.SetAF(v) })...)

	case 0x10: // DJNZ e
		c.queueRelBranch(func(c *Z80) bool { c.B--; return c.B != 0 })
	case 0x18: // JR e
		c.queueRelBranch(func(c *Z80) bool { return true })
	case 0x20, 0x28, 0x30, 0x38: // JR cc,e
		c.queueRelBranch(func(c *Z80) bool { return c.condJR(opcode) })
	case 0xC3: // JP nn
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = c.fetch8(b, m) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				hi := c.fetch8(b, m)
				addr := uint16(hi)<<8 | uint16(c.operand)
				c.MEMPTR = addr
				c.PC = addr
			},
		)
	case 0xC2, 0xCA, 0xD2, 0xDA, 0xE2, 0xEA, 0xF2, 0xFA: // JP cc,nn
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = c.fetch8(b, m) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				hi := c.fetch8(b, m)
				addr := uint16(hi)<<8 | uint16(c.operand)
				c.MEMPTR = addr
				if c.condCC(opcode) {
					c.PC = addr
				}
			},
		)
	case 0xE9: // JP (HL)
		c.queueImplied(func(c *Z80) { c.PC = c.HL() })
	case 0xCD: // CALL nn
		c.queueAddr16(func(c *Z80, b bus.Bus, m bus.Master) {
			ret := c.PC
			c.PC = c.effAddr
			c.MEMPTR = c.effAddr
			c.pending = append(c.pending, c.push16Ops(ret)...)
		})
	case 0xC4, 0xCC, 0xD4, 0xDC, 0xE4, 0xEC, 0xF4, 0xFC: // CALL cc,nn
		c.queueAddr16(func(c *Z80, b bus.Bus, m bus.Master) {
			c.MEMPTR = c.effAddr
			if c.condCC(opcode) {
				ret := c.PC
				c.PC = c.effAddr
				c.pending = append(c.pending, c.push16Ops(ret)...)
			}
		})
	case 0xC9: // RET
		c.pending = append(c.pending, c.pop16Ops(func(c *Z80, v uint16) { c.PC = v; c.MEMPTR = v })...)
	case 0xC0, 0xC8, 0xD0, 0xD8, 0xE0, 0xE8, 0xF0, 0xF8: // RET cc
		c.queueImplied(func(c *Z80) {
			if c.condCC(opcode) {
				c.pending = append(c.pending, c.pop16Ops(func(c *Z80, v uint16) { c.PC = v; c.MEMPTR = v })...)
			}
		})
	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF: // RST p
		c.queueImplied(func(c *Z80) {
			ret := c.PC
			c.PC = uint16(opcode & 0x38)
			c.MEMPTR = c.PC
			c.pending = append(c.pending, c.push16Ops(ret)...)
		})

	case 0xDB: // IN A,(n)
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = c.fetch8(b, m) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				addr := uint16(c.A)<<8 | uint16(c.operand)
				c.A = b.Read(m, addr)
				c.MEMPTR = addr + 1
			},
		)
	case 0xD3: // OUT (n),A
		c.pending = append(c.pending,
			func(c *Z80, b bus.Bus, m bus.Master) { c.operand = c.fetch8(b, m) },
			func(c *Z80, b bus.Bus, m bus.Master) {
				addr := uint16(c.A)<<8 | uint16(c.operand)
				b.Write(m, addr, c.A)
				c.MEMPTR = uint16(c.A)<<8 | (addr+1)&0xFF
			},
		)

	default:
		c.decodeMain8Bit(opcode)
	}
}

// decodeMain8Bit handles the dense 0x40-0xBF region: LD r,r'; the ALU
// group A,r; and INC/DEC r — each parameterized by the standard 3-bit
// register index embedded in the opcode. Pure register-to-register forms
// need no further bus access and complete within the combined fetch op;
// forms touching (HL) queue the read and/or write as their own cycle.
func (c *Z80) decodeMain8Bit(opcode uint8) {
	if opcode >= 0x40 && opcode <= 0x7F {
		dst := (opcode >> 3) & 7
		src := opcode & 7
		switch {
		case src == 6:
			c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
				v := b.Read(m, c.HL())
				c.setReg8(b, m, dst, v, c.HL())
			})
		case dst == 6:
			c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
				v := c.getReg8(b, m, src, c.HL())
				b.Write(m, c.HL(), v)
			})
		default:
			c.queueImplied(func(c *Z80) {
				v := c.getReg8(nil, bus.Master{}, src, 0)
				c.setReg8(nil, bus.Master{}, dst, v, 0)
			})
		}
		return
	}
	if opcode >= 0x80 && opcode <= 0xBF {
		idx := opcode & 7
		which := (opcode >> 3) & 7
		if idx == 6 {
			c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
				c.alu(which, b.Read(m, c.HL()))
			})
		} else {
			c.queueImplied(func(c *Z80) { c.alu(which, c.getReg8(nil, bus.Master{}, idx, 0)) })
		}
		return
	}
	switch opcode & 0xC7 {
	case 0x04: // INC r
		idx := (opcode >> 3) & 7
		if idx == 6 {
			c.pending = append(c.pending,
				func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.HL()) },
				func(c *Z80, b bus.Bus, m bus.Master) {
					v := c.operand
					r := v + 1
					b.Write(m, c.HL(), r)
					c.flag(FlagH, v&0x0F == 0x0F)
					c.flag(FlagPV, v == 0x7F)
					c.flag(FlagN, false)
					c.setSZXY(r)
				},
			)
		} else {
			c.queueImplied(func(c *Z80) {
				v := c.getReg8(nil, bus.Master{}, idx, 0)
				r := v + 1
				c.setReg8(nil, bus.Master{}, idx, r, 0)
				c.flag(FlagH, v&0x0F == 0x0F)
				c.flag(FlagPV, v == 0x7F)
				c.flag(FlagN, false)
				c.setSZXY(r)
			})
		}
		return
	case 0x05: // DEC r
		idx := (opcode >> 3) & 7
		if idx == 6 {
			c.pending = append(c.pending,
				func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.HL()) },
				func(c *Z80, b bus.Bus, m bus.Master) {
					v := c.operand
					r := v - 1
					b.Write(m, c.HL(), r)
					c.flag(FlagH, v&0x0F == 0x00)
					c.flag(FlagPV, v == 0x80)
					c.flag(FlagN, true)
					c.setSZXY(r)
				},
			)
		} else {
			c.queueImplied(func(c *Z80) {
				v := c.getReg8(nil, bus.Master{}, idx, 0)
				r := v - 1
				c.setReg8(nil, bus.Master{}, idx, r, 0)
				c.flag(FlagH, v&0x0F == 0x00)
				c.flag(FlagPV, v == 0x80)
				c.flag(FlagN, true)
				c.setSZXY(r)
			})
		}
		return
	case 0x06: // LD r,n
		idx := (opcode >> 3) & 7
		if idx == 6 {
			c.pending = append(c.pending,
				func(c *Z80, b bus.Bus, m bus.Master) { c.operand = c.fetch8(b, m) },
				func(c *Z80, b bus.Bus, m bus.Master) { b.Write(m, c.HL(), c.operand) },
			)
		} else {
			c.queueImmediate8(func(c *Z80, v uint8) { c.setReg8(nil, bus.Master{}, idx, v, 0) })
		}
		return
	}
	if opcode&0xC0 == 0xC0 && opcode&0x07 == 0x06 { // ALU A,n
		which := (opcode >> 3) & 7
		c.queueImmediate8(func(c *Z80, v uint8) { c.alu(which, v) })
		return
	}
	// Unrecognized/undocumented opcode: behaves as NOP rather than
	// fabricate semantics no test vector constrains (spec.md open question).
}

func (c *Z80) queueImplied(op func(c *Z80)) {
	c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) { op(c) })
}

func (c *Z80) queueImmediate8(op func(c *Z80, v uint8)) {
	c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) { op(c, c.fetch8(b, m)) })
}

func (c *Z80) queueImmediate16(op func(c *Z80, v uint16)) {
	c.pending = append(c.pending,
		func(c *Z80, b bus.Bus, m bus.Master) { c.operand = c.fetch8(b, m) },
		func(c *Z80, b bus.Bus, m bus.Master) {
			hi := c.fetch8(b, m)
			op(c, uint16(hi)<<8|uint16(c.operand))
		},
	)
}

// queueAddr16 fetches the little-endian (nn) operand across two cycles
// (low byte, then high byte), leaving the result in c.effAddr, and only
// then appends after for the instructions's real memory access.
func (c *Z80) queueAddr16(after ...microOp) {
	c.pending = append(c.pending,
		func(c *Z80, b bus.Bus, m bus.Master) { c.operand = c.fetch8(b, m) },
		func(c *Z80, b bus.Bus, m bus.Master) {
			hi := c.fetch8(b, m)
			c.effAddr = uint16(hi)<<8 | uint16(c.operand)
			c.pending = append(c.pending, after...)
		},
	)
}

func (c *Z80) write16LEOps(get func(c *Z80) uint16, setMemPtr bool) []microOp {
	return []microOp{
		func(c *Z80, b bus.Bus, m bus.Master) {
			b.Write(m, c.effAddr, uint8(get(c)))
			if setMemPtr {
				c.MEMPTR = c.effAddr + 1
			}
		},
		func(c *Z80, b bus.Bus, m bus.Master) { b.Write(m, c.effAddr+1, uint8(get(c)>>8)) },
	}
}

func (c *Z80) read16LEOps(set func(c *Z80, v uint16), setMemPtr bool) []microOp {
	return []microOp{
		func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.effAddr) },
		func(c *Z80, b bus.Bus, m bus.Master) {
			hi := b.Read(m, c.effAddr+1)
			set(c, uint16(hi)<<8|uint16(c.operand))
			if setMemPtr {
				c.MEMPTR = c.effAddr + 1
			}
		},
	}
}

func (c *Z80) queueRelBranch(cond func(c *Z80) bool) {
	c.pending = append(c.pending, func(c *Z80, b bus.Bus, m bus.Master) {
		e := int8(c.fetch8(b, m))
		if cond(c) {
			c.PC = uint16(int32(c.PC) + int32(e))
			c.MEMPTR = c.PC
		}
	})
}

func (c *Z80) push16Ops(v uint16) []microOp {
	return []microOp{
		func(c *Z80, b bus.Bus, m bus.Master) { c.SP--; b.Write(m, c.SP, uint8(v>>8)) },
		func(c *Z80, b bus.Bus, m bus.Master) { c.SP--; b.Write(m, c.SP, uint8(v)) },
	}
}

func (c *Z80) pop16Ops(set func(c *Z80, v uint16)) []microOp {
	return []microOp{
		func(c *Z80, b bus.Bus, m bus.Master) { c.operand = b.Read(m, c.SP); c.SP++ },
		func(c *Z80, b bus.Bus, m bus.Master) {
			hi := b.Read(m, c.SP)
			c.SP++
			set(c, uint16(hi)<<8|uint16(c.operand))
		},
	}
}

// fetch8 reads the next byte at PC and advances it. Every call represents
// exactly one bus access, so callers must only invoke it once per queued
// micro-op.
func (c *Z80) fetch8(b bus.Bus, master bus.Master) uint8 {
	v := b.Read(master, c.PC)
	c.PC++
	return v
}

// getReg8/setReg8 implement the standard 0-7 register index (B,C,D,E,H,L,
// (HL),A). hl is passed in rather than recomputed so indexed callers can
// substitute (IX+d)/(IY+d) for index 6. b may be nil (and master the zero bus.Master) when the
// caller has already established idx != 6.
func (c *Z80) getReg8(b bus.Bus, master bus.Master, idx uint8, hl uint16) uint8 {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return b.Read(master, hl)
	default:
		return c.A
	}
}

func (c *Z80) setReg8(b bus.Bus, master bus.Master, idx uint8, v uint8, hl uint16) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		b.Write(master, hl, v)
	default:
		c.A = v
	}
}

// alu applies ALU op `which` (0=ADD,1=ADC,2=SUB,3=SBC,4=AND,5=XOR,6=OR,7=CP)
// against the accumulator.
func (c *Z80) alu(which uint8, v uint8) {
	a := c.A
	switch which {
	case 0: // ADD
		r := uint16(a) + uint16(v)
		c.flag(FlagH, (a&0x0F)+(v&0x0F) > 0x0F)
		c.flag(FlagC, r > 0xFF)
		c.flag(FlagPV, (a^v)&0x80 == 0 && (a^uint8(r))&0x80 != 0)
		c.flag(FlagN, false)
		c.A = uint8(r)
		c.setSZXY(c.A)
	case 1: // ADC
		cy := b2u(c.has(FlagC))
		r := uint16(a) + uint16(v) + uint16(cy)
		c.flag(FlagH, (a&0x0F)+(v&0x0F)+cy > 0x0F)
		c.flag(FlagC, r > 0xFF)
		c.flag(FlagPV, (a^v)&0x80 == 0 && (a^uint8(r))&0x80 != 0)
		c.flag(FlagN, false)
		c.A = uint8(r)
		c.setSZXY(c.A)
	case 2: // SUB
		r := int16(a) - int16(v)
		c.flag(FlagH, int16(a&0x0F)-int16(v&0x0F) < 0)
		c.flag(FlagC, r < 0)
		c.flag(FlagPV, (a^v)&0x80 != 0 && (a^uint8(r))&0x80 != 0)
		c.flag(FlagN, true)
		c.A = uint8(r)
		c.setSZXY(c.A)
	case 3: // SBC
		cy := int16(b2u(c.has(FlagC)))
		r := int16(a) - int16(v) - cy
		c.flag(FlagH, int16(a&0x0F)-int16(v&0x0F)-cy < 0)
		c.flag(FlagC, r < 0)
		c.flag(FlagPV, (a^v)&0x80 != 0 && (a^uint8(r))&0x80 != 0)
		c.flag(FlagN, true)
		c.A = uint8(r)
		c.setSZXY(c.A)
	case 4: // AND
		c.A = a & v
		c.flag(FlagH, true)
		c.flag(FlagC, false)
		c.flag(FlagN, false)
		c.flag(FlagPV, parity(c.A))
		c.setSZXY(c.A)
	case 5: // XOR
		c.A = a ^ v
		c.flag(FlagH, false)
		c.flag(FlagC, false)
		c.flag(FlagN, false)
		c.flag(FlagPV, parity(c.A))
		c.setSZXY(c.A)
	case 6: // OR
		c.A = a | v
		c.flag(FlagH, false)
		c.flag(FlagC, false)
		c.flag(FlagN, false)
		c.flag(FlagPV, parity(c.A))
		c.setSZXY(c.A)
	case 7: // CP
		r := int16(a) - int16(v)
		c.flag(FlagH, int16(a&0x0F)-int16(v&0x0F) < 0)
		c.flag(FlagC, r < 0)
		c.flag(FlagPV, (a^v)&0x80 != 0 && (a^uint8(r))&0x80 != 0)
		c.flag(FlagN, true)
		c.flag(FlagS, uint8(r)&0x80 != 0)
		c.flag(FlagZ, uint8(r) == 0)
		c.flag(FlagX, v&0x08 != 0)
		c.flag(FlagY, v&0x20 != 0)
	}
}

func (c *Z80) addHL16(hl, rr uint16) uint16 {
	r := uint32(hl) + uint32(rr)
	c.flag(FlagH, (hl&0x0FFF)+(rr&0x0FFF) > 0x0FFF)
	c.flag(FlagC, r > 0xFFFF)
	c.flag(FlagN, false)
	c.MEMPTR = hl + 1
	return uint16(r)
}

func (c *Z80) daa() {
	a := c.A
	adjust := uint8(0)
	carry := c.has(FlagC)
	if c.has(FlagH) || a&0x0F > 9 {
		adjust |= 0x06
	}
	if carry || a > 0x99 {
		adjust |= 0x60
		carry = true
	}
	if c.has(FlagN) {
		a -= adjust
	} else {
		a += adjust
	}
	c.flag(FlagH, false)
	c.flag(FlagC, carry)
	c.A = a
	c.setSZXY(a)
	c.flag(FlagPV, parity(a))
}

func (c *Z80) condJR(opcode uint8) bool {
	switch opcode {
	case 0x20:
		return !c.has(FlagZ)
	case 0x28:
		return c.has(FlagZ)
	case 0x30:
		return !c.has(FlagC)
	case 0x38:
		return c.has(FlagC)
	}
	return false
}

func (c *Z80) condCC(opcode uint8) bool {
	switch (opcode >> 3) & 7 {
	case 0:
		return !c.has(FlagZ)
	case 1:
		return c.has(FlagZ)
	case 2:
		return !c.has(FlagC)
	case 3:
		return c.has(FlagC)
	case 4:
		return !c.has(FlagPV)
	case 5:
		return c.has(FlagPV)
	case 6:
		return !c.has(FlagS)
	default:
		return c.has(FlagS)
	}
}

func parity(v uint8) bool {
	n := 0
	for i := 0; i < 8; i++ {
		if v&(1<<i) != 0 {
			n++
		}
	}
	return n%2 == 0
}

func b2u(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
