// Package z80 implements a Zilog Z80 core. Like cpu/m6809 and cpu/m6800, an
// instruction is decoded once at its opcode fetch into a queue of
// micro-operations, and Tick runs one queued micro-op per call, except that
// the opcode fetch shares its call with the first micro-op and NMI/IRQ
// entry runs whole within one call; see
// DESIGN.md for the disclosed consequences of the remaining simplifications
// (the queue models one bus access per cycle rather than the chip's true
// per-T-state internal timing, and mid-instruction bus-halting is not
// reproduced by this core).
package z80

import (
	"github.com/patsoffice/arcadecore/bus"
	"github.com/patsoffice/arcadecore/random"
)

// F register bits.
const (
	FlagC  uint8 = 1 << 0
	FlagN  uint8 = 1 << 1
	FlagPV uint8 = 1 << 2
	FlagX  uint8 = 1 << 3 // undocumented, mirrors bit 3 of the result
	FlagH  uint8 = 1 << 4
	FlagY  uint8 = 1 << 5 // undocumented, mirrors bit 5 of the result
	FlagZ  uint8 = 1 << 6
	FlagS  uint8 = 1 << 7
)

// Z80 is one Zilog Z80 core, including the shadow register set, IX/IY,
// and the I/R/IFF1/IFF2/IM interrupt-control state.
type Z80 struct {
	A, F       uint8
	B, C       uint8
	D, E       uint8
	H, L       uint8
	A2, F2     uint8
	B2, C2     uint8
	D2, E2     uint8
	H2, L2     uint8
	IX, IY     uint16
	SP, PC     uint16
	I, R       uint8
	MEMPTR     uint16
	IFF1, IFF2 bool
	IM         uint8
	halted     bool

	// eiArmed delays the effect of EI until the instruction fetch that
	// follows it, per the documented EI-delay rule.
	eiArmed bool

	pending []microOp

	addrHigh     uint8
	effAddr      uint16
	operand      uint8
	displacement int8

	rnd *random.Random

	cycle   uint64
	lastNMI bool
}

type microOp func(c *Z80, b bus.Bus, master bus.Master)

func New() *Z80 {
	c := &Z80{F: 0}
	c.rnd = random.NewRandom(c)
	return c
}

// Seed implements random.SeedSource.
func (c *Z80) Seed() uint64 { return c.cycle }

// Reset puts the CPU in its documented power-on state: PC=0, SP=0xFFFF,
// I=R=0, IFF1=IFF2=false, IM=0. randomize seeds the general-purpose
// registers with power-on noise instead of zero.
func (c *Z80) Reset(b bus.Bus, master bus.Master, randomize bool) {
	if randomize {
		c.A = c.rnd.Rewindable(0)
		c.B = c.rnd.Rewindable(1)
		c.C = c.rnd.Rewindable(2)
		c.D = c.rnd.Rewindable(3)
		c.E = c.rnd.Rewindable(4)
		c.H = c.rnd.Rewindable(5)
		c.L = c.rnd.Rewindable(6)
	} else {
		c.A, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0
	}
	c.F = 0
	c.IX, c.IY = 0xFFFF, 0xFFFF
	c.SP = 0xFFFF
	c.PC = 0
	c.I, c.R = 0, 0
	c.IFF1, c.IFF2 = false, false
	c.IM = 0
	c.halted = false
	c.eiArmed = false
	c.pending = nil
}

func (c *Z80) flag(mask uint8, set bool) {
	if set {
		c.F |= mask
	} else {
		c.F &^= mask
	}
}

func (c *Z80) has(mask uint8) bool { return c.F&mask != 0 }

// setSZXY sets S, Z, and the undocumented X/Y bits from the given result.
func (c *Z80) setSZXY(v uint8) {
	c.flag(FlagS, v&0x80 != 0)
	c.flag(FlagZ, v == 0)
	c.flag(FlagX, v&0x08 != 0)
	c.flag(FlagY, v&0x20 != 0)
}

func (c *Z80) BC() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *Z80) DE() uint16 { return uint16(c.D)<<8 | uint16(c.E) }
func (c *Z80) HL() uint16 { return uint16(c.H)<<8 | uint16(c.L) }
func (c *Z80) AF() uint16 { return uint16(c.A)<<8 | uint16(c.F) }

func (c *Z80) SetBC(v uint16) { c.B, c.C = uint8(v>>8), uint8(v) }
func (c *Z80) SetDE(v uint16) { c.D, c.E = uint8(v>>8), uint8(v) }
func (c *Z80) SetHL(v uint16) { c.H, c.L = uint8(v>>8), uint8(v) }
func (c *Z80) SetAF(v uint16) { c.A, c.F = uint8(v>>8), uint8(v) }

func (c *Z80) bumpR() { c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F) }

// Tick runs one queued micro-op, or at a fetch boundary the opcode fetch
// together with the first micro-op (or a whole interrupt entry), and
// returns true at the start of a new instruction (equivalently, whenever
// interrupts are sampled), mirroring cpu/m6809.Tick's and cpu/m6800.Tick's
// contract.
func (c *Z80) Tick(b bus.Bus, master bus.Master) bool {
	c.cycle++

	if b.IsHaltedFor(master) {
		return false
	}

	if len(c.pending) > 0 {
		op := c.pending[0]
		c.pending = c.pending[1:]
		op(c, b, master)
		return false
	}

	// EI only arms eiArmed; IFF1/IFF2 are set here, at the next fetch
	// boundary, and the instruction that follows EI must still execute
	// before an interrupt can be sampled — skipIRQFetch suppresses exactly
	// that one fetch boundary's interrupt check.
	skipIRQFetch := false
	if c.eiArmed {
		c.IFF1, c.IFF2 = true, true
		c.eiArmed = false
		skipIRQFetch = true
	}

	irqs := b.CheckInterrupts(master)
	edgeNMI := irqs.NMI && !c.lastNMI
	c.lastNMI = irqs.NMI
	if edgeNMI {
		c.halted = false
		c.serviceNMI(b, master)
		return true
	}
	if irqs.IRQ && c.IFF1 && !skipIRQFetch {
		c.halted = false
		c.serviceIRQ(b, master)
		return true
	}

	if c.halted {
		c.bumpR()
		return true
	}

	opcode := b.Read(master, c.PC)
	c.PC++
	c.bumpR()
	c.decode(opcode)
	if len(c.pending) > 0 {
		op := c.pending[0]
		c.pending = c.pending[1:]
		op(c, b, master)
	}
	return true
}

func (c *Z80) serviceNMI(b bus.Bus, master bus.Master) {
	c.push16(b, master, c.PC)
	c.IFF2 = c.IFF1
	c.IFF1 = false
	c.PC = 0x0066
}

// serviceIRQ honors IM0/1/2. IM0 is modeled as RST 0x38 (the common case
// for a single-device daisy chain supplying 0xFF on the data bus, which is
// also this module's open-bus floating value); IM2's vector byte is read
// from the bus at I<<8|0xFF for the same reason, since no peripheral in
// this module's scope drives an interrupt-acknowledge data byte.
func (c *Z80) serviceIRQ(b bus.Bus, master bus.Master) {
	c.IFF1, c.IFF2 = false, false
	c.push16(b, master, c.PC)
	switch c.IM {
	case 2:
		vector := b.Read(master, uint16(c.I)<<8|0x00FF)
		addr := uint16(c.I)<<8 | uint16(vector)
		lo := b.Read(master, addr)
		hi := b.Read(master, addr+1)
		c.PC = uint16(hi)<<8 | uint16(lo)
	default:
		c.PC = 0x0038
	}
}

func (c *Z80) push16(b bus.Bus, master bus.Master, v uint16) {
	c.SP--
	b.Write(master, c.SP, uint8(v>>8))
	c.SP--
	b.Write(master, c.SP, uint8(v))
}

func (c *Z80) pop16(b bus.Bus, master bus.Master) uint16 {
	lo := b.Read(master, c.SP)
	c.SP++
	hi := b.Read(master, c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Snapshot is the architectural register state, used for save/rewind.
type Snapshot struct {
	A, F, B, C, D, E, H, L     uint8
	A2, F2, B2, C2, D2, E2, H2 uint8
	L2                         uint8
	IX, IY, SP, PC, MEMPTR     uint16
	I, R                       uint8
	IFF1, IFF2                 bool
	IM                         uint8
	Halted                     bool
}

func (c *Z80) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		A2: c.A2, F2: c.F2, B2: c.B2, C2: c.C2, D2: c.D2, E2: c.E2, H2: c.H2, L2: c.L2,
		IX: c.IX, IY: c.IY, SP: c.SP, PC: c.PC, MEMPTR: c.MEMPTR,
		I: c.I, R: c.R, IFF1: c.IFF1, IFF2: c.IFF2, IM: c.IM, Halted: c.halted,
	}
}

func (c *Z80) Restore(s Snapshot) {
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L
	c.A2, c.F2, c.B2, c.C2, c.D2, c.E2, c.H2, c.L2 = s.A2, s.F2, s.B2, s.C2, s.D2, s.E2, s.H2, s.L2
	c.IX, c.IY, c.SP, c.PC, c.MEMPTR = s.IX, s.IY, s.SP, s.PC, s.MEMPTR
	c.I, c.R, c.IFF1, c.IFF2, c.IM, c.halted = s.I, s.R, s.IFF1, s.IFF2, s.IM, s.Halted
	c.eiArmed = false
}
