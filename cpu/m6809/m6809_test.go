package m6809_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patsoffice/arcadecore/bus"
	"github.com/patsoffice/arcadecore/cpu/m6809"
)

type memBus struct {
	ram  [65536]uint8
	irqs bus.InterruptState
}

func (m *memBus) Read(master bus.Master, addr uint16) uint8       { return m.ram[addr] }
func (m *memBus) Write(master bus.Master, addr uint16, data uint8) { m.ram[addr] = data }
func (m *memBus) IsHaltedFor(master bus.Master) bool               { return false }
func (m *memBus) CheckInterrupts(master bus.Master) bus.InterruptState {
	return m.irqs
}

func tickN(t *testing.T, c *m6809.M6809, b *memBus, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		c.Tick(b, bus.Cpu(0))
	}
}

func TestResetLoadsVectorAndMasksInterrupts(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFE], b.ram[0xFFFF] = 0x80, 0x00

	c := m6809.New()
	c.Reset(b, bus.Cpu(0), false)

	snap := c.Snapshot()
	assert.Equal(t, uint16(0x8000), snap.PC)
	assert.NotZero(t, snap.CC&m6809.CCIRQMask)
	assert.NotZero(t, snap.CC&m6809.CCFIRQMask)
}

// TestLDAImmediateAndSTAExtended mirrors spec.md's E1 scenario structurally
// (LDA immediate then a store), checking that each instruction's bus
// effect lands only once its real cycle count has elapsed, not all at once
// at the opcode fetch.
func TestLDAImmediateAndSTAExtended(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFE], b.ram[0xFFFF] = 0x80, 0x00
	b.ram[0x8000] = 0x86 // LDA #$42
	b.ram[0x8001] = 0x42
	b.ram[0x8002] = 0xB7 // STA $3000 (extended: opcode + 2 addr bytes + write = 4 cycles)
	b.ram[0x8003] = 0x30
	b.ram[0x8004] = 0x00

	c := m6809.New()
	c.Reset(b, bus.Cpu(0), false)

	tickN(t, c, b, 1) // LDA: opcode fetch + immediate operand, one combined Tick call
	assert.Equal(t, uint8(0x42), c.Snapshot().A)

	// STA extended spreads across three further Tick calls: the high
	// address byte is drained in the same call that fetched the opcode,
	// then the low address byte, then the write — never all in one call.
	tickN(t, c, b, 1)
	assert.Zero(t, b.ram[0x3000], "STA must not have written yet after its first cycle")
	tickN(t, c, b, 1)
	assert.Zero(t, b.ram[0x3000], "STA must not have written yet after its second cycle")
	tickN(t, c, b, 1)
	assert.Equal(t, uint8(0x42), b.ram[0x3000])
}

func TestJSRAndRTSRoundtrip(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFE], b.ram[0xFFFF] = 0x80, 0x00
	b.ram[0x8000] = 0xBD // JSR $9000 (extended)
	b.ram[0x8001] = 0x90
	b.ram[0x8002] = 0x00
	b.ram[0x9000] = 0x39 // RTS

	c := m6809.New()
	c.Reset(b, bus.Cpu(0), false)
	c.S = 0x2000

	// JSR extended: opcode+hi (combined), lo+EA, jump+queue return push,
	// push high, push low — five Tick calls in total.
	tickN(t, c, b, 5)
	assert.Equal(t, uint16(0x9000), c.Snapshot().PC)
	assert.Equal(t, uint16(0x1FFE), c.Snapshot().S)

	// RTS: postbyte-free pull of PC across two Tick calls.
	tickN(t, c, b, 2)
	assert.Equal(t, uint16(0x8003), c.Snapshot().PC)
	assert.Equal(t, uint16(0x2000), c.Snapshot().S)
}

func TestPSHSAndPULSRoundtripRegisters(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFE], b.ram[0xFFFF] = 0x80, 0x00
	b.ram[0x8000] = 0x86 // LDA #$11
	b.ram[0x8001] = 0x11
	b.ram[0x8002] = 0xC6 // LDB #$22
	b.ram[0x8003] = 0x22
	b.ram[0x8004] = 0x34 // PSHS A,B
	b.ram[0x8005] = 0x06
	b.ram[0x8006] = 0x86 // LDA #$00 (clobber)
	b.ram[0x8007] = 0x00
	b.ram[0x8008] = 0x35 // PULS A,B
	b.ram[0x8009] = 0x06

	c := m6809.New()
	c.Reset(b, bus.Cpu(0), false)
	c.S = 0x1000 // establish a stack below the program
	tickN(t, c, b, 1) // LDA #$11
	tickN(t, c, b, 1) // LDB #$22

	// PSHS A,B: postbyte fetch (combined with opcode fetch), push B, push A.
	tickN(t, c, b, 3)
	assert.Equal(t, uint16(0x0FFE), c.Snapshot().S)
	assert.Equal(t, uint8(0x11), b.ram[0x0FFE]) // A pushed last, sits on top
	assert.Equal(t, uint8(0x22), b.ram[0x0FFF])

	tickN(t, c, b, 1) // LDA #0
	assert.Equal(t, uint8(0), c.Snapshot().A)

	// PULS A,B: postbyte fetch (combined), pull A, pull B.
	tickN(t, c, b, 3)
	assert.Equal(t, uint8(0x11), c.Snapshot().A)
	assert.Equal(t, uint8(0x22), c.Snapshot().B)
	assert.Equal(t, uint16(0x1000), c.Snapshot().S)
}

func TestIRQStacksFullStateAndRTIRestores(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFE], b.ram[0xFFFF] = 0x80, 0x00
	b.ram[0xFFF8], b.ram[0xFFF9] = 0x90, 0x00
	b.ram[0x8000] = 0x1A // ORCC #0 (no-op, clears nothing, IRQ still masked by reset)
	b.ram[0x8001] = 0x00
	b.ram[0x8002] = 0x1C // ANDCC #$EF clears IRQ mask bit
	b.ram[0x8003] = 0xEF
	b.ram[0x8004] = 0x12 // NOP
	b.ram[0x9000] = 0x3B // RTI

	c := m6809.New()
	c.Reset(b, bus.Cpu(0), false)
	c.S = 0x2000
	tickN(t, c, b, 1) // ORCC
	tickN(t, c, b, 1) // ANDCC, IRQ now unmasked
	b.irqs = bus.InterruptState{IRQ: true}

	// Hardware interrupt entry is dispatched synchronously (mirroring
	// cpu/m6502's serviceInterrupt), so it still completes in the single
	// Tick call at the fetch boundary where it's detected.
	tickN(t, c, b, 1) // fetch boundary: IRQ taken instead of NOP
	assert.Equal(t, uint16(0x9000), c.Snapshot().PC)
	assert.NotZero(t, c.Snapshot().CC&m6809.CCIRQMask)
	assert.Equal(t, uint16(0x1FF4), c.Snapshot().S) // 12 bytes of full state stacked

	b.irqs = bus.InterruptState{}

	// RTI, reached through decode() like any other opcode, is queued: CC
	// is pulled first (combined with its opcode fetch), and because the
	// stacked CC carries the Entire bit, the rest of the register file is
	// pulled one byte per further Tick call before PC, for 12 calls total.
	tickN(t, c, b, 12)
	assert.Equal(t, uint16(0x8004), c.Snapshot().PC)
	assert.Equal(t, uint16(0x2000), c.Snapshot().S)
}

func TestSyncWaitsForAnyInterruptWithoutStacking(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFE], b.ram[0xFFFF] = 0x80, 0x00
	b.ram[0x8000] = 0x13 // SYNC
	b.ram[0x8001] = 0x12 // NOP

	c := m6809.New()
	c.Reset(b, bus.Cpu(0), false)
	c.S = 0x2000
	tickN(t, c, b, 1) // SYNC enters the waiting state
	startS := c.Snapshot()
	tickN(t, c, b, 5) // still waiting, no stacking
	assert.Equal(t, startS.S, c.Snapshot().S)

	b.irqs = bus.InterruptState{IRQ: true}
	tickN(t, c, b, 1) // wakes, PC advances to NOP without servicing it itself
	assert.Equal(t, uint16(0x8001), c.Snapshot().PC)
}
