package pokey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/device/pokey"
)

func TestNewHasExpectedPowerOnRegisters(t *testing.T) {
	p := pokey.New(44_100)
	assert.Equal(t, uint8(0xFF), p.Read(0x09)) // KBCODE
	assert.Equal(t, uint8(0xFF), p.Read(0x0F)) // SKSTAT
}

func TestIRQEnableLatchesStatusBitsImmediately(t *testing.T) {
	p := pokey.New(44_100)
	// Writing IRQEN with a bit clear forces the matching status bit set
	// (active-low "pending" convention), per the real chip's behavior.
	p.Write(0x0E, 0x00)
	assert.False(t, p.IRQ())
}

func TestTickingProducesResampledAudio(t *testing.T) {
	p := pokey.New(44_100)
	p.Write(0x01, 0xAF) // AUDC1: volume-only, volume 15
	p.Write(0x00, 40)   // AUDF1: some audible frequency

	for i := 0; i < 1_789_773; i++ { // one second of master-clock ticks
		p.Tick()
	}

	samples := p.DrainAudio()
	require.NotEmpty(t, samples)
	// Expect roughly one second's worth of samples at the configured
	// output rate, within the Bresenham accumulator's rounding slop.
	assert.InDelta(t, 44_100, len(samples), 50)
}

func TestSetPotInputIsLatched(t *testing.T) {
	p := pokey.New(44_100)
	p.SetPotInput(3, 0x80)
	// No direct getter is exposed; this only asserts the call doesn't
	// panic and that potentiometer scanning still runs to completion.
	p.Write(0x0B, 0x00) // POTGO: start a scan
	for i := 0; i < 2_000_000; i++ {
		p.Tick()
	}
}

func TestDrainAudioClearsBuffer(t *testing.T) {
	p := pokey.New(44_100)
	p.Write(0x01, 0xAF)
	p.Write(0x00, 40)
	for i := 0; i < 100_000; i++ {
		p.Tick()
	}
	first := p.DrainAudio()
	require.NotEmpty(t, first)

	second := p.DrainAudio()
	assert.Empty(t, second)
}
