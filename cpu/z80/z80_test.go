package z80_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patsoffice/arcadecore/bus"
	"github.com/patsoffice/arcadecore/cpu/z80"
)

type memBus struct {
	ram  [65536]uint8
	irqs bus.InterruptState
}

func (m *memBus) Read(master bus.Master, addr uint16) uint8        { return m.ram[addr] }
func (m *memBus) Write(master bus.Master, addr uint16, data uint8) { m.ram[addr] = data }
func (m *memBus) IsHaltedFor(master bus.Master) bool                { return false }
func (m *memBus) CheckInterrupts(master bus.Master) bus.InterruptState {
	return m.irqs
}

func tickN(t *testing.T, c *z80.Z80, b *memBus, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		c.Tick(b, bus.Cpu(0))
	}
}

// TestJPZTakenSetsMEMPTR checks JP cc,nn spreads its two address-byte
// fetches across two Tick calls (the first rides along with the opcode
// fetch), with the jump fused onto the second.
func TestJPZTakenSetsMEMPTR(t *testing.T) {
	b := &memBus{}
	b.ram[0x0000] = 0xCA // JP Z,$3000
	b.ram[0x0001] = 0x00
	b.ram[0x0002] = 0x30

	c := z80.New()
	c.Reset(b, bus.Cpu(0), false)
	c.F = z80.FlagZ
	tickN(t, c, b, 2)

	snap := c.Snapshot()
	assert.Equal(t, uint16(0x3000), snap.PC)
	assert.Equal(t, uint16(0x3000), snap.MEMPTR)
}

func TestLDAImmediateAndStoreAbsolute(t *testing.T) {
	b := &memBus{}
	b.ram[0x0000] = 0x3E // LD A,#$42
	b.ram[0x0001] = 0x42
	b.ram[0x0002] = 0x32 // LD ($4000),A
	b.ram[0x0003] = 0x00
	b.ram[0x0004] = 0x40

	c := z80.New()
	c.Reset(b, bus.Cpu(0), false)
	tickN(t, c, b, 1) // LD A,n: register-only after the combined fetch+operand
	assert.Equal(t, uint8(0x42), c.Snapshot().A)

	// LD (nn),A: fetch+lo (combined), hi+EA, then the write — three calls.
	tickN(t, c, b, 2)
	assert.Zero(t, b.ram[0x4000], "LD (nn),A must not have written yet")
	tickN(t, c, b, 1)
	assert.Equal(t, uint8(0x42), b.ram[0x4000])
}

// TestIndexedLoadStoreThroughIXPlusD exercises the DD-prefix dispatch
// (queued as a single combined sub-opcode fetch), the displacement-byte
// fetch for (IX+d) forms, and the extra data cycles each instruction
// needs beyond that.
func TestIndexedLoadStoreThroughIXPlusD(t *testing.T) {
	b := &memBus{}
	b.ram[0x0000] = 0xDD
	b.ram[0x0001] = 0x21 // LD IX,$5000
	b.ram[0x0002] = 0x00
	b.ram[0x0003] = 0x50
	b.ram[0x0004] = 0xDD
	b.ram[0x0005] = 0x36 // LD (IX+2),$99
	b.ram[0x0006] = 0x02
	b.ram[0x0007] = 0x99
	b.ram[0x0008] = 0xDD
	b.ram[0x0009] = 0x7E // LD A,(IX+2)
	b.ram[0x000A] = 0x02

	c := z80.New()
	c.Reset(b, bus.Cpu(0), false)

	// LD IX,nn: DD+21 combined, then the 16-bit immediate's lo and hi bytes.
	tickN(t, c, b, 3)
	assert.Equal(t, uint16(0x5000), c.Snapshot().IX)

	// LD (IX+2),n: DD+36 combined, displacement, immediate, write.
	tickN(t, c, b, 4)
	assert.Equal(t, uint8(0x99), b.ram[0x5002])

	// LD A,(IX+2): DD+7E combined, displacement, read-and-set.
	tickN(t, c, b, 3)
	assert.Equal(t, uint8(0x99), c.Snapshot().A)
}

// TestCallAndRetRoundtrip checks CALL's address fetch and return-address
// push, and RET's pop, each spread one bus access per Tick call.
func TestCallAndRetRoundtrip(t *testing.T) {
	b := &memBus{}
	b.ram[0x0000] = 0xCD // CALL $2000
	b.ram[0x0001] = 0x00
	b.ram[0x0002] = 0x20
	b.ram[0x2000] = 0xC9 // RET

	c := z80.New()
	c.Reset(b, bus.Cpu(0), false)
	c.SP = 0x8000

	// CALL nn: fetch+lo (combined), hi+EA, set-PC+queue-push, push hi, push lo.
	tickN(t, c, b, 5)
	assert.Equal(t, uint16(0x2000), c.Snapshot().PC)
	assert.Equal(t, uint16(0x7FFE), c.Snapshot().SP)

	// RET: fetch+pop-lo (combined), pop-hi+set-PC.
	tickN(t, c, b, 2)
	assert.Equal(t, uint16(0x0003), c.Snapshot().PC)
	assert.Equal(t, uint16(0x8000), c.Snapshot().SP)
}

func TestEIDelaysInterruptByOneInstruction(t *testing.T) {
	b := &memBus{}
	b.ram[0x0000] = 0xFB // EI
	b.ram[0x0001] = 0x00 // NOP
	b.ram[0x0002] = 0x00 // NOP
	b.ram[0x0038] = 0x00

	c := z80.New()
	c.Reset(b, bus.Cpu(0), false)
	c.IM = 1
	c.SP = 0x8000
	b.irqs = bus.InterruptState{IRQ: true}

	tickN(t, c, b, 1) // EI executes; IFF not yet enabled for this boundary
	assert.False(t, c.Snapshot().IFF1)

	tickN(t, c, b, 1) // the instruction right after EI still runs uninterrupted
	assert.True(t, c.Snapshot().IFF1)
	assert.Equal(t, uint16(0x0002), c.Snapshot().PC)

	tickN(t, c, b, 1) // only now is the pending IRQ taken
	assert.Equal(t, uint16(0x0038), c.Snapshot().PC)
}
