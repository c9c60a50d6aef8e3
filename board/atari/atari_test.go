package atari_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/board/atari"
)

func romWithReset(pc uint16) []byte {
	rom := make([]byte, 0x3000)
	off := 0x2FFC // (0xFFFC & 0x7FFF) - 0x5000
	rom[off] = uint8(pc)
	rom[off+1] = uint8(pc >> 8)
	return rom
}

func TestNewRunsAFullFrameWithoutPanicking(t *testing.T) {
	b := atari.New(romWithReset(0x5000))
	require.NotNil(t, b)

	b.RunFrame()

	buf := make([]byte, atari.DisplayWidth*atari.DisplayHeight*3)
	b.RenderFrame(buf)
	assert.Len(t, buf, atari.DisplayWidth*atari.DisplayHeight*3)
}

func TestFrameRateMatchesDocumentedValue(t *testing.T) {
	b := atari.New(romWithReset(0x5000))
	// 1.25MHz / (256 scanlines * 80 cycles) ~= 61.04Hz, per spec.md's own
	// derivation of this board's vertical refresh.
	assert.InDelta(t, 61.04, b.FrameRateHz(), 0.01)
}

func TestSaveNVRAMIsAlwaysEmpty(t *testing.T) {
	b := atari.New(romWithReset(0x5000))
	assert.Nil(t, b.SaveNVRAM())
}

func TestTickRunsWithTrackballHeld(t *testing.T) {
	b := atari.New(romWithReset(0x5000))
	b.SetTrackballRight(true)

	// Run enough ticks to cross the simulated trackball step rate several
	// times over; this only asserts the board keeps running without
	// panicking while a direction is held, since the board exposes no
	// direct trackball-position getter (that's read back only via the
	// MADSEL-free $4800 trackball register a running CPU would consult).
	for i := 0; i < 5000; i++ {
		b.Tick()
	}
	b.SetTrackballRight(false)
}

func TestFillAudioDrainsWithoutPanicking(t *testing.T) {
	b := atari.New(romWithReset(0x5000))
	b.RunFrame()

	buf := make([]int16, 4096)
	n := b.FillAudio(buf)
	assert.GreaterOrEqual(t, n, 0)
	assert.LessOrEqual(t, n, len(buf))
}
