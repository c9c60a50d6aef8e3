package m6502_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/bus"
	"github.com/patsoffice/arcadecore/cpu/m6502"
)

// memBus is a flat 64KB RAM bus with no halting or interrupts, enough to
// drive the core through simple programs one cycle at a time.
type memBus struct {
	ram [65536]uint8
	irq bus.InterruptState
}

func (m *memBus) Read(master bus.Master, addr uint16) uint8  { return m.ram[addr] }
func (m *memBus) Write(master bus.Master, addr uint16, data uint8) { m.ram[addr] = data }
func (m *memBus) IsHaltedFor(master bus.Master) bool          { return false }
func (m *memBus) CheckInterrupts(master bus.Master) bus.InterruptState { return m.irq }

func tickN(t *testing.T, c *m6502.M6502, b *memBus, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		c.Tick(b, bus.Cpu(0))
	}
}

func TestResetLoadsVectorAndDefaultsSP(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFC] = 0x00
	b.ram[0xFFFD] = 0x80

	c := m6502.New()
	c.Reset(b, bus.Cpu(0), false)

	assert.Equal(t, uint16(0x8000), c.Snapshot().PC)
	assert.Equal(t, uint8(0xFD), c.Snapshot().SP)
}

func TestLDAImmediateSetsAccumulatorAndFlags(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFC], b.ram[0xFFFD] = 0x00, 0x80
	b.ram[0x8000] = 0xA9 // LDA #$00
	b.ram[0x8001] = 0x00

	c := m6502.New()
	c.Reset(b, bus.Cpu(0), false)
	tickN(t, c, b, 2)

	snap := c.Snapshot()
	assert.Equal(t, uint8(0), snap.A)
	assert.NotZero(t, snap.Status&m6502.FlagZ)
}

func TestLDAAbsoluteReadsMemory(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFC], b.ram[0xFFFD] = 0x00, 0x80
	b.ram[0x8000] = 0xAD // LDA $1234
	b.ram[0x8001] = 0x34
	b.ram[0x8002] = 0x12
	b.ram[0x1234] = 0x42

	c := m6502.New()
	c.Reset(b, bus.Cpu(0), false)
	tickN(t, c, b, 4)

	assert.Equal(t, uint8(0x42), c.Snapshot().A)
}

func TestJSRAndRTSRoundtrip(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFC], b.ram[0xFFFD] = 0x00, 0x80
	b.ram[0x8000] = 0x20 // JSR $9000
	b.ram[0x8001] = 0x00
	b.ram[0x8002] = 0x90
	b.ram[0x9000] = 0x60 // RTS

	c := m6502.New()
	c.Reset(b, bus.Cpu(0), false)
	tickN(t, c, b, 6) // JSR
	assert.Equal(t, uint16(0x9000), c.Snapshot().PC)

	tickN(t, c, b, 6) // RTS
	assert.Equal(t, uint16(0x8003), c.Snapshot().PC)
}

func TestBranchTakenCrossesPage(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFC], b.ram[0xFFFD] = 0xF0, 0x80
	b.ram[0x80F0] = 0x18 // CLC
	b.ram[0x80F1] = 0x90 // BCC +100 -> crosses into next page
	b.ram[0x80F2] = 100

	c := m6502.New()
	c.Reset(b, bus.Cpu(0), false)
	tickN(t, c, b, 2) // CLC
	require.False(t, c.Snapshot().Status&m6502.FlagC != 0)

	tickN(t, c, b, 4) // BCC, page-crossing variant takes 4 cycles
	assert.Equal(t, uint16(0x80F3+100), c.Snapshot().PC)
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFC], b.ram[0xFFFD] = 0x00, 0x80
	b.ram[0x8000] = 0xA9 // LDA #$7F
	b.ram[0x8001] = 0x7F
	b.ram[0x8002] = 0x69 // ADC #$01
	b.ram[0x8003] = 0x01

	c := m6502.New()
	c.Reset(b, bus.Cpu(0), false)
	tickN(t, c, b, 2)
	tickN(t, c, b, 2)

	snap := c.Snapshot()
	assert.Equal(t, uint8(0x80), snap.A)
	assert.NotZero(t, snap.Status&m6502.FlagV, "signed overflow from 0x7F+0x01 must set V")
	assert.NotZero(t, snap.Status&m6502.FlagN)
}

func TestIRQDeferredUntilFlagClear(t *testing.T) {
	b := &memBus{}
	b.ram[0xFFFC], b.ram[0xFFFD] = 0x00, 0x80
	b.ram[0xFFFE], b.ram[0xFFFF] = 0x00, 0x90
	b.ram[0x8000] = 0x58 // CLI
	b.ram[0x8001] = 0xEA // NOP
	b.irq = bus.InterruptState{IRQ: true}

	c := m6502.New()
	c.Reset(b, bus.Cpu(0), false) // Reset sets I flag; IRQ held off
	tickN(t, c, b, 2)             // CLI
	assert.False(t, c.Snapshot().Status&m6502.FlagI != 0)

	tickN(t, c, b, 1) // fetch boundary: IRQ now taken instead of NOP
	assert.Equal(t, uint16(0x9000), c.Snapshot().PC)
	assert.NotZero(t, c.Snapshot().Status&m6502.FlagI, "servicing the IRQ must set I")
}
