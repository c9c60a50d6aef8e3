package williams_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/board/williams"
)

func fixedROMWithReset(pc uint16) []byte {
	rom := make([]byte, 0x3000)
	off := 0x2FFE // 0xFFFE - 0xD000
	rom[off] = uint8(pc >> 8)
	rom[off+1] = uint8(pc)
	return rom
}

func soundROMWithReset(pc uint16) []byte {
	rom := make([]byte, 0x1000)
	off := 0x0FFE // 0xFFFE & 0x0FFF
	rom[off] = uint8(pc >> 8)
	rom[off+1] = uint8(pc)
	return rom
}

func TestNewBoardTicksWithoutPanicking(t *testing.T) {
	fixed := fixedROMWithReset(0xD123)
	fixed[0x0123] = 0x12 // NOP-equivalent not required; just leave as-is

	sound := soundROMWithReset(0xB456)

	b := williams.New(nil, fixed, sound)
	require.NotNil(t, b)

	// Running a handful of ticks must not panic; this exercises the full
	// master-clock sequence (video timing, arbitration, sound tick, DAC).
	for i := 0; i < 1000; i++ {
		b.Tick()
	}
}

func TestRunFrameProducesAFullFrame(t *testing.T) {
	fixed := fixedROMWithReset(0xD000)
	sound := soundROMWithReset(0xB000)
	b := williams.New(nil, fixed, sound)

	b.RunFrame()

	buf := make([]byte, williams.DisplayWidth*williams.DisplayHeight*3)
	b.RenderFrame(buf)
	assert.Len(t, buf, williams.DisplayWidth*williams.DisplayHeight*3)
}

func TestSaveNVRAMAfterStaticInputHasHighNibblesSet(t *testing.T) {
	fixed := fixedROMWithReset(0xD000)
	sound := soundROMWithReset(0xB000)
	b := williams.New(nil, fixed, sound)

	b.SetWidgetPortAInput(0x5A)
	// widgetPIA defaults to all-input DDR (0x00) after reset, and CRA's
	// data-select bit (bit 2) is also clear after reset, so a direct read
	// through the board's bus would see the DDR register, not port data.
	// This checks only that setting the static input leaves SaveNVRAM's
	// 1024-byte image intact, every byte reading back with its high nibble
	// set; the Port A value itself is not read back here.
	nv := b.SaveNVRAM()
	assert.Len(t, nv, 1024)
	for _, v := range nv {
		assert.Equal(t, uint8(0xF0), v&0xF0)
	}
}

func TestNVRAMRoundTrip(t *testing.T) {
	fixed := fixedROMWithReset(0xD000)
	sound := soundROMWithReset(0xB000)
	b := williams.New(nil, fixed, sound)

	saved := b.SaveNVRAM()
	saved[10] = 0xF7
	b.LoadNVRAM(saved)

	got := b.SaveNVRAM()
	assert.Equal(t, uint8(0xF7), got[10])
}

type fakeMux struct{ selectP1 bool }

func (m *fakeMux) PortAInput(cb2 bool) uint8 {
	if cb2 {
		return 0x01
	}
	return 0x02
}

func TestWidgetInputSourceInstallAndClearKeepTicking(t *testing.T) {
	fixed := fixedROMWithReset(0xD000)
	sound := soundROMWithReset(0xB000)
	b := williams.New(nil, fixed, sound)

	b.SetWidgetInputSource(&fakeMux{})
	// No direct PIA-window read helper is exposed at this layer (that's
	// the main CPU's job); this asserts only that installing and clearing
	// the source doesn't panic the tick loop, since the mux's actual
	// effect is exercised end-to-end by machine/joust.
	b.Tick()
	b.SetWidgetInputSource(nil)
	b.Tick()
}
