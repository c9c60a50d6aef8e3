// Package m6809 implements a cycle-accurate Motorola 6809E core, the main
// CPU of a Williams gen-1 board. Like cpu/m6502, an instruction is decoded
// once at its opcode fetch into a queue of micro-operations, and Tick runs
// one queued micro-op per call. Unlike cpu/m6502, the opcode fetch and the
// instruction's first micro-op run together in the same call, and a
// hardware interrupt's stacking and vector fetch run whole within one call.
//
// The 6809E additionally exposes interrupt semantics the 6502 doesn't:
// NMI/FIRQ/IRQ each with their own stacking depth (FIRQ stacks only PC and
// CC; NMI/IRQ/SWI stack the entire register file), CWAI (stack everything,
// then wait for an unmasked interrupt before resuming), and SYNC (wait for
// any interrupt line without stacking, then fall through).
package m6809

import (
	"github.com/patsoffice/arcadecore/bus"
	"github.com/patsoffice/arcadecore/random"
)

// Condition code bits.
const (
	CCCarry    uint8 = 1 << 0
	CCOverflow uint8 = 1 << 1
	CCZero     uint8 = 1 << 2
	CCNegative uint8 = 1 << 3
	CCIRQMask  uint8 = 1 << 4
	CCHalfCarry uint8 = 1 << 5
	CCFIRQMask uint8 = 1 << 6
	CCEntire   uint8 = 1 << 7
)

type microOp func(c *M6809, b bus.Bus, master bus.Master)

// M6809 is one Motorola 6809E core.
type M6809 struct {
	A, B     uint8
	X, Y     uint16
	U, S     uint16
	PC       uint16
	DP       uint8
	CC       uint8

	pending []microOp

	addrHigh uint8
	effAddr  uint16
	operand  uint8

	rnd *random.Random

	cycle uint64

	// waiting is true while the core is in CWAI or SYNC, during which Tick
	// consumes cycles without fetching until an unmasked interrupt arrives.
	waiting     bool
	waitIsCWAI  bool
	lastNMI     bool
}

// D returns the 16-bit concatenation of A:B.
func (c *M6809) D() uint16 { return uint16(c.A)<<8 | uint16(c.B) }

// SetD stores the high/low halves of v into A and B.
func (c *M6809) SetD(v uint16) { c.A = uint8(v >> 8); c.B = uint8(v) }

// New returns an M6809 with registers zeroed; call Reset to run the real
// reset-vector sequence against a bus.
func New() *M6809 {
	c := &M6809{CC: CCIRQMask | CCFIRQMask}
	c.rnd = random.NewRandom(c)
	return c
}

// Seed implements random.SeedSource.
func (c *M6809) Seed() uint64 { return c.cycle }

// Reset fetches the reset vector at $FFFE/$FFFF into PC and masks both IRQ
// and FIRQ, matching the real chip's power-on/reset behavior.
func (c *M6809) Reset(b bus.Bus, master bus.Master, randomize bool) {
	if randomize {
		c.A = c.rnd.Rewindable(0)
		c.B = c.rnd.Rewindable(1)
		c.X = uint16(c.rnd.Rewindable(2))<<8 | uint16(c.rnd.Rewindable(3))
		c.Y = uint16(c.rnd.Rewindable(4))<<8 | uint16(c.rnd.Rewindable(5))
		c.U = uint16(c.rnd.Rewindable(6))<<8 | uint16(c.rnd.Rewindable(7))
	} else {
		c.A, c.B, c.X, c.Y, c.U = 0, 0, 0, 0, 0
	}
	c.DP = 0
	c.CC = CCIRQMask | CCFIRQMask
	c.S = 0
	hi := b.Read(master, 0xFFFE)
	lo := b.Read(master, 0xFFFF)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.pending = nil
	c.waiting = false
}

func (c *M6809) flag(mask uint8, set bool) {
	if set {
		c.CC |= mask
	} else {
		c.CC &^= mask
	}
}

func (c *M6809) has(mask uint8) bool { return c.CC&mask != 0 }

func (c *M6809) setNZ8(v uint8) {
	c.flag(CCZero, v == 0)
	c.flag(CCNegative, v&0x80 != 0)
}

func (c *M6809) setNZ16(v uint16) {
	c.flag(CCZero, v == 0)
	c.flag(CCNegative, v&0x8000 != 0)
}

// Tick runs one queued micro-op, or at a fetch boundary the opcode fetch
// together with the first micro-op (or a whole interrupt entry), and
// returns true at the start of a new instruction (equivalently, whenever
// interrupts are sampled).
func (c *M6809) Tick(b bus.Bus, master bus.Master) bool {
	c.cycle++

	if b.IsHaltedFor(master) {
		return false
	}

	irqs := b.CheckInterrupts(master)
	edgeNMI := irqs.NMI && !c.lastNMI
	c.lastNMI = irqs.NMI

	if c.waiting {
		if c.waitIsCWAI {
			if edgeNMI || (irqs.FIRQ && !c.has(CCFIRQMask)) || (irqs.IRQ && !c.has(CCIRQMask)) {
				c.waiting = false
				c.dispatchInterrupt(b, master, irqs, edgeNMI, true)
				return true
			}
			return false
		}
		// SYNC: any interrupt line wakes the core without stacking
		if edgeNMI || irqs.FIRQ || irqs.IRQ {
			c.waiting = false
			return true
		}
		return false
	}

	if len(c.pending) > 0 {
		op := c.pending[0]
		c.pending = c.pending[1:]
		op(c, b, master)
		return false
	}

	if edgeNMI || (irqs.FIRQ && !c.has(CCFIRQMask)) || (irqs.IRQ && !c.has(CCIRQMask)) {
		c.dispatchInterrupt(b, master, irqs, edgeNMI, false)
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

// dispatchInterrupt stacks state (full for NMI/IRQ, PC+CC only for FIRQ,
// unless alreadyStacked is true because CWAI already pushed everything)
// and loads the vector for whichever line has priority: NMI, then FIRQ,
// then IRQ.
func (c *M6809) dispatchInterrupt(b bus.Bus, master bus.Master, irqs bus.InterruptState, nmiEdge bool, alreadyStacked bool) {
	switch {
	case nmiEdge:
		if !alreadyStacked {
			c.pushFull(b, master)
		}
		c.flag(CCIRQMask, true)
		c.flag(CCFIRQMask, true)
		c.loadVector(b, master, 0xFFFC)
	case irqs.FIRQ && !c.has(CCFIRQMask):
		if !alreadyStacked {
			c.pushPCAndCC(b, master)
		}
		c.flag(CCEntire, false)
		c.flag(CCIRQMask, true)
		c.flag(CCFIRQMask, true)
		c.loadVector(b, master, 0xFFF6)
	default: // IRQ
		if !alreadyStacked {
			c.pushFull(b, master)
		}
		c.flag(CCIRQMask, true)
		c.loadVector(b, master, 0xFFF8)
	}
}

func (c *M6809) loadVector(b bus.Bus, master bus.Master, vector uint16) {
	hi := b.Read(master, vector)
	lo := b.Read(master, vector+1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *M6809) pushS(b bus.Bus, master bus.Master, v uint8) {
	c.S--
	b.Write(master, c.S, v)
}

func (c *M6809) pullS(b bus.Bus, master bus.Master) uint8 {
	v := b.Read(master, c.S)
	c.S++
	return v
}

// pushFull stacks the entire machine state in the 6809's documented order
// (PC, U, Y, X, DP, B, A, CC) and sets the Entire-state bit in the stacked
// CC image so RTI knows to restore all of it.
func (c *M6809) pushFull(b bus.Bus, master bus.Master) {
	c.flag(CCEntire, true)
	c.pushS(b, master, uint8(c.PC))
	c.pushS(b, master, uint8(c.PC>>8))
	c.pushS(b, master, uint8(c.U))
	c.pushS(b, master, uint8(c.U>>8))
	c.pushS(b, master, uint8(c.Y))
	c.pushS(b, master, uint8(c.Y>>8))
	c.pushS(b, master, uint8(c.X))
	c.pushS(b, master, uint8(c.X>>8))
	c.pushS(b, master, c.DP)
	c.pushS(b, master, c.B)
	c.pushS(b, master, c.A)
	c.pushS(b, master, c.CC)
}

func (c *M6809) pushPCAndCC(b bus.Bus, master bus.Master) {
	c.flag(CCEntire, false)
	c.pushS(b, master, uint8(c.PC))
	c.pushS(b, master, uint8(c.PC>>8))
	c.pushS(b, master, c.CC)
}

// Snapshot is the architectural register state, used for save/rewind.
type Snapshot struct {
	A, B, DP, CC uint8
	X, Y, U, S   uint16
	PC           uint16
}

func (c *M6809) Snapshot() Snapshot {
	return Snapshot{A: c.A, B: c.B, DP: c.DP, CC: c.CC, X: c.X, Y: c.Y, U: c.U, S: c.S, PC: c.PC}
}

func (c *M6809) Restore(s Snapshot) {
	c.A, c.B, c.DP, c.CC = s.A, s.B, s.DP, s.CC
	c.X, c.Y, c.U, c.S, c.PC = s.X, s.Y, s.U, s.S, s.PC
	c.pending = nil
	c.waiting = false
}
