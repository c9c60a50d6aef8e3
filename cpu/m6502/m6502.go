// Package m6502 implements a cycle-accurate MOS 6502 core (NMOS), driven
// one bus cycle at a time through bus.Bus. Each call to Tick performs one
// bus cycle of an instruction — its opcode fetch or one queued micro-op —
// so a board can interleave it with DMA or another CPU at single-cycle
// granularity; a taken NMI or IRQ is the exception, its whole entry
// sequence running within one call. Undocumented opcodes, and the few
// documented ones decode has no case for (see DESIGN.md), run as 2-cycle
// NOPs. Decimal mode is not implemented: ADC and SBC ignore the D flag.
//
// Internally an instruction is decoded once, at its opcode fetch, into a
// queue of micro-operations — one per remaining bus cycle — modeled after
// the teacher's LastResult-driven execution loop but restructured so the
// core can be suspended and resumed between any two cycles rather than
// only between instructions.
package m6502

import (
	"github.com/patsoffice/arcadecore/bus"
	"github.com/patsoffice/arcadecore/random"
)

// Status flag bits.
const (
	FlagC uint8 = 1 << 0
	FlagZ uint8 = 1 << 1
	FlagI uint8 = 1 << 2
	FlagD uint8 = 1 << 3
	FlagB uint8 = 1 << 4
	Flag1 uint8 = 1 << 5 // always set
	FlagV uint8 = 1 << 6
	FlagN uint8 = 1 << 7
)

// micro-op closures capture everything they need from the CPU struct
// itself, so the queue is just a slice of funcs bound to the instance.
type microOp func(c *M6502, b bus.Bus, master bus.Master)

// M6502 is one MOS 6502 core.
type M6502 struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	Status  uint8

	// scratch registers used while assembling an effective address across
	// several cycles (e.g. the high byte read in absolute addressing)
	addrLow, addrHigh uint8
	effAddr           uint16
	operand           uint8
	pageCrossed       bool

	pending []microOp

	rnd *random.Random

	// SYNC is asserted for the single cycle each instruction's opcode is
	// fetched, exposed so a board (Missile Command's MADSEL circuit) can
	// intercept that cycle's following writes.
	SYNC bool

	cycle uint64

	nmiPending bool
	lastNMI    bool
}

// New returns an M6502 with PC at zero; call Reset to perform the real
// power-on/reset-vector sequence against a bus.
func New() *M6502 {
	c := &M6502{Status: Flag1 | FlagI}
	c.rnd = random.NewRandom(c)
	return c
}

// Seed implements random.SeedSource using the CPU's own cycle count, so
// power-on register noise is a pure function of when reset happened.
func (c *M6502) Seed() uint64 { return c.cycle }

// Reset reads the reset vector at $FFFC/$FFFD and loads it into PC, all
// within this one call (the hardware's 7-cycle reset sequence is not
// stepped through the bus cycle by cycle). randomize seeds A/X/Y/SP with
// pseudo-random power-on noise instead of zero, matching real hardware.
func (c *M6502) Reset(b bus.Bus, master bus.Master, randomize bool) {
	if randomize {
		c.A = c.rnd.Rewindable(0)
		c.X = c.rnd.Rewindable(1)
		c.Y = c.rnd.Rewindable(2)
		c.SP = c.rnd.Rewindable(3)
	} else {
		c.A, c.X, c.Y = 0, 0, 0
		c.SP = 0xFD
	}
	c.Status = Flag1 | FlagI
	lo := b.Read(master, 0xFFFC)
	hi := b.Read(master, 0xFFFD)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.pending = nil
}

func (c *M6502) flag(mask uint8, set bool) {
	if set {
		c.Status |= mask
	} else {
		c.Status &^= mask
	}
}

func (c *M6502) has(mask uint8) bool { return c.Status&mask != 0 }

func (c *M6502) setNZ(v uint8) {
	c.flag(FlagZ, v == 0)
	c.flag(FlagN, v&0x80 != 0)
}

// Tick performs one bus cycle: either the next queued micro-op of an
// in-flight instruction, or — if the queue is empty — checks for
// interrupts, then fetches and decodes the next opcode, leaving the
// instruction's remaining cycles queued for the following calls. A taken
// NMI or IRQ is the exception: its three stack pushes and vector fetch all
// run within this one call. It returns true at the start of a new
// instruction (the CPU's SYNC pin), matching the fetch-boundary suspension
// points a board is allowed to halt this master at.
func (c *M6502) Tick(b bus.Bus, master bus.Master) bool {
	c.cycle++

	if b.IsHaltedFor(master) {
		return false
	}

	if len(c.pending) > 0 {
		op := c.pending[0]
		c.pending = c.pending[1:]
		c.SYNC = false
		op(c, b, master)
		return false
	}

	c.SYNC = true

	irqs := b.CheckInterrupts(master)
	edgeNMI := irqs.NMI && !c.lastNMI
	c.lastNMI = irqs.NMI
	if edgeNMI {
		c.nmiPending = true
	}

	if c.nmiPending {
		c.nmiPending = false
		c.serviceInterrupt(b, master, 0xFFFA, false)
		return true
	}
	if irqs.IRQ && !c.has(FlagI) {
		c.serviceInterrupt(b, master, 0xFFFE, false)
		return true
	}

	opcode := b.Read(master, c.PC)
	c.PC++
	c.decode(opcode)
	return true
}

func (c *M6502) serviceInterrupt(b bus.Bus, master bus.Master, vector uint16, brk bool) {
	c.push(b, master, uint8(c.PC>>8))
	c.push(b, master, uint8(c.PC))
	status := c.Status | Flag1
	if brk {
		status |= FlagB
	} else {
		status &^= FlagB
	}
	c.push(b, master, status)
	c.flag(FlagI, true)
	lo := b.Read(master, vector)
	hi := b.Read(master, vector+1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *M6502) push(b bus.Bus, master bus.Master, v uint8) {
	b.Write(master, 0x0100+uint16(c.SP), v)
	c.SP--
}

func (c *M6502) pop(b bus.Bus, master bus.Master) uint8 {
	c.SP++
	return b.Read(master, 0x0100+uint16(c.SP))
}

// Snapshot captures the architectural register state for save/rewind.
type Snapshot struct {
	A, X, Y, SP, Status uint8
	PC                  uint16
}

// Snapshot returns the CPU's architectural register state.
func (c *M6502) Snapshot() Snapshot {
	return Snapshot{A: c.A, X: c.X, Y: c.Y, SP: c.SP, Status: c.Status, PC: c.PC}
}

// Restore loads a previously captured Snapshot, discarding any in-flight
// instruction.
func (c *M6502) Restore(s Snapshot) {
	c.A, c.X, c.Y, c.SP, c.Status, c.PC = s.A, s.X, s.Y, s.SP, s.Status, s.PC
	c.pending = nil
}
