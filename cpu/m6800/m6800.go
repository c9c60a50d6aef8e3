// Package m6800 implements a cycle-accurate Motorola 6800 core, the sound
// CPU of a Williams gen-1 board. It is architecturally a reduced 6809:
// accumulators A and B with no D-combine, a single index register X, no
// direct-page register (direct mode is always page 0), no FIRQ, no long
// branches, and no 0x10/0x11 prefix pages.
package m6800

import (
	"github.com/patsoffice/arcadecore/bus"
	"github.com/patsoffice/arcadecore/random"
)

// Condition code bits (the 6800 has no Entire/FIRQ-mask bits, unlike 6809).
const (
	CCCarry     uint8 = 1 << 0
	CCOverflow  uint8 = 1 << 1
	CCZero      uint8 = 1 << 2
	CCNegative  uint8 = 1 << 3
	CCIRQMask   uint8 = 1 << 4
	CCHalfCarry uint8 = 1 << 5
)

type microOp func(c *M6800, b bus.Bus, master bus.Master)

// M6800 is one Motorola 6800 core.
type M6800 struct {
	A, B uint8
	X    uint16
	SP   uint16
	PC   uint16
	CC   uint8

	pending []microOp

	addrHigh uint8
	effAddr  uint16
	operand  uint8

	rnd *random.Random

	cycle   uint64
	lastNMI bool
}

func New() *M6800 {
	c := &M6800{CC: CCIRQMask}
	c.rnd = random.NewRandom(c)
	return c
}

// Seed implements random.SeedSource.
func (c *M6800) Seed() uint64 { return c.cycle }

// Reset fetches the reset vector at $FFFE/$FFFF and masks IRQ.
func (c *M6800) Reset(b bus.Bus, master bus.Master, randomize bool) {
	if randomize {
		c.A = c.rnd.Rewindable(0)
		c.B = c.rnd.Rewindable(1)
		c.X = uint16(c.rnd.Rewindable(2))<<8 | uint16(c.rnd.Rewindable(3))
	} else {
		c.A, c.B, c.X = 0, 0, 0
	}
	c.CC = CCIRQMask
	c.SP = 0
	hi := b.Read(master, 0xFFFE)
	lo := b.Read(master, 0xFFFF)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.pending = nil
}

func (c *M6800) flag(mask uint8, set bool) {
	if set {
		c.CC |= mask
	} else {
		c.CC &^= mask
	}
}

func (c *M6800) has(mask uint8) bool { return c.CC&mask != 0 }

func (c *M6800) setNZ8(v uint8) {
	c.flag(CCZero, v == 0)
	c.flag(CCNegative, v&0x80 != 0)
}

func (c *M6800) setNZ16(v uint16) {
	c.flag(CCZero, v == 0)
	c.flag(CCNegative, v&0x8000 != 0)
}

// Tick performs one queued micro-op per call and returns true at
// instruction (fetch) boundaries, mirroring cpu/m6809's contract. At a
// fetch boundary the opcode fetch and the instruction's first micro-op run
// together in the same call, and a taken interrupt's full stacking and
// vector fetch run within that one call.
func (c *M6800) Tick(b bus.Bus, master bus.Master) bool {
	c.cycle++

	if b.IsHaltedFor(master) {
		return false
	}

	irqs := b.CheckInterrupts(master)
	edgeNMI := irqs.NMI && !c.lastNMI
	c.lastNMI = irqs.NMI

	if len(c.pending) > 0 {
		op := c.pending[0]
		c.pending = c.pending[1:]
		op(c, b, master)
		return false
	}

	if edgeNMI {
		c.serviceInterrupt(b, master, 0xFFFC)
		return true
	}
	if irqs.IRQ && !c.has(CCIRQMask) {
		c.serviceInterrupt(b, master, 0xFFF8)
		return true
	}

	opcode := b.Read(master, c.PC)
	c.PC++
	c.decode(opcode)
	if len(c.pending) > 0 {
		op := c.pending[0]
		c.pending = c.pending[1:]
		op(c, b, master)
	}
	return true
}

// serviceInterrupt stacks the full register file (PC,X,A,B,CC — the 6800
// has no E/Entire bit, it always pushes everything) and vectors.
func (c *M6800) serviceInterrupt(b bus.Bus, master bus.Master, vector uint16) {
	c.push(b, master, uint8(c.PC))
	c.push(b, master, uint8(c.PC>>8))
	c.push(b, master, uint8(c.X))
	c.push(b, master, uint8(c.X>>8))
	c.push(b, master, c.A)
	c.push(b, master, c.B)
	c.push(b, master, c.CC)
	c.flag(CCIRQMask, true)
	hi := b.Read(master, vector)
	lo := b.Read(master, vector+1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *M6800) push(b bus.Bus, master bus.Master, v uint8) {
	b.Write(master, c.SP, v)
	c.SP--
}

func (c *M6800) pull(b bus.Bus, master bus.Master) uint8 {
	c.SP++
	return b.Read(master, c.SP)
}

// Snapshot is the architectural register state, used for save/rewind.
type Snapshot struct {
	A, B, CC uint8
	X, SP    uint16
	PC       uint16
}

func (c *M6800) Snapshot() Snapshot {
	return Snapshot{A: c.A, B: c.B, CC: c.CC, X: c.X, SP: c.SP, PC: c.PC}
}

func (c *M6800) Restore(s Snapshot) {
	c.A, c.B, c.CC = s.A, s.B, s.CC
	c.X, c.SP, c.PC = s.X, s.SP, s.PC
	c.pending = nil
}
