package pia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patsoffice/arcadecore/device/pia"
)

func TestDDRDefaultsToInput(t *testing.T) {
	p := pia.New()
	// CRA bit 2 clear => register 0 addresses the DDR, which resets to 0
	assert.Equal(t, uint8(0), p.Read(0))
}

func TestWriteDataAfterSelectingDataRegister(t *testing.T) {
	p := pia.New()
	p.Write(1, 0x04) // CRA bit 2 set: register 0 now addresses the data register
	p.Write(0, 0xFF) // DDR still all-input, so this writes ORA, not DDRA
	// all bits are inputs, so read reflects inputA not outputA
	p.SetInputA(0x3C)
	assert.Equal(t, uint8(0x3C), p.Read(0))
}

func TestOutputBitsReflectOutputRegister(t *testing.T) {
	p := pia.New()
	p.Write(1, 0x00) // CRA bit2 clear: register 0 addresses DDRA
	p.Write(0, 0xFF) // DDRA = all outputs
	p.Write(1, 0x04) // now register 0 addresses ORA
	p.Write(0, 0xAA)
	assert.Equal(t, uint8(0xAA), p.ReadOutputA())
	assert.Equal(t, uint8(0xAA), p.Read(0))
}

func TestCA1RisingEdgeSetsIRQWhenConfigured(t *testing.T) {
	p := pia.New()
	p.Write(1, 0x02) // CRA bit1 set: trigger on rising edge
	p.Write(1, 0x02|0x01)
	p.SetCA1(false)
	p.SetCA1(true)
	assert.True(t, p.IRQA())
}

func TestCA1FallingEdgeDefault(t *testing.T) {
	p := pia.New()
	p.Write(1, 0x01) // bit1 clear: trigger on falling edge; bit0 set: irq enabled
	p.SetCA1(true)
	assert.False(t, p.IRQA())
	p.SetCA1(false)
	assert.True(t, p.IRQA())
}

func TestReadingDataRegisterClearsIRQA(t *testing.T) {
	p := pia.New()
	p.Write(1, 0x05) // bit0 (irq enable) + bit2 (data register select)
	p.SetCA1(true)
	p.SetCA1(false)
	assert.True(t, p.IRQA())
	p.Read(0)
	assert.False(t, p.IRQA())
}

func TestCA2OutputModeIgnoresExternalEdges(t *testing.T) {
	p := pia.New()
	p.Write(1, 0x38) // bit5 set: CA2 output mode
	p.SetCA2(true)
	p.SetCA2(false)
	assert.False(t, p.IRQA())
}

func TestCB2OutputDirectMode(t *testing.T) {
	p := pia.New()
	// CRB bit5 (output) + bit4 (direct) + bit3 (level) set
	p.Write(3, 0x38)
	assert.True(t, p.CB2Output())
}

func TestCB2OutputHandshakeModeDefaultsLow(t *testing.T) {
	p := pia.New()
	p.Write(3, 0x20) // output mode, handshake (bit4 clear)
	assert.False(t, p.CB2Output())
}

func TestPortBWrittenIsOneShot(t *testing.T) {
	p := pia.New()
	p.Write(3, 0x04) // CRB bit2 set: register 2 addresses data register
	assert.False(t, p.TakePortBWritten())
	p.Write(2, 0x42)
	assert.True(t, p.TakePortBWritten())
	assert.False(t, p.TakePortBWritten())
}

func TestResetClearsAllState(t *testing.T) {
	p := pia.New()
	p.Write(1, 0xFF)
	p.Write(3, 0xFF)
	p.Reset()
	assert.Equal(t, uint8(0), p.Read(1)&0x3F)
	assert.False(t, p.IRQA())
	assert.False(t, p.IRQB())
}
