// Package williams composes the cycle-accurate substrate — an M6809E main
// CPU, an M6800 sound CPU, two MC6821 PIAs, the SC1 blitter, CMOS RAM, and
// an MC1408 DAC — into the Williams gen-1 arcade board model spec.md §2's
// L2 row describes. Game wrappers (machine/joust, machine/robotron) own a
// Board and layer their own ROM layout and input wiring on top of it.
package williams

import (
	"github.com/patsoffice/arcadecore/bus"
	"github.com/patsoffice/arcadecore/cpu/m6800"
	"github.com/patsoffice/arcadecore/cpu/m6809"
	"github.com/patsoffice/arcadecore/device/blitter"
	"github.com/patsoffice/arcadecore/device/cmos"
	"github.com/patsoffice/arcadecore/device/dac"
	"github.com/patsoffice/arcadecore/device/pia"
)

const (
	// DisplayWidth and DisplayHeight are the cropped visible raster: 292x240
	// after discarding 6 pixels of horizontal overscan and the first 7
	// scanlines, per spec.md §3's video RAM layout note.
	DisplayWidth  = 292
	DisplayHeight = 240

	rawWidth   = DisplayWidth + 6
	cropTop    = 7
	scanlines  = 260
	cycleClock = 1_000_000 // main-clock rate, Hz
	cyclesPerLine = 64
	audioSampleRate = 44_100

	vramSize    = 0xC000 // 48KB: 0x0000-0xBFFF
	romOverlay  = 0x9000 // 36KB banked overlay, 0x0000-0x8FFF
	fixedROMLen = 0x3000 // 12KB, 0xD000-0xFFFF
)

// WidgetInputSource computes the Widget PIA's port A input byte for the
// current tick, given the PIA's current CB2 output level. Joust's 74LS157
// mux reads cb2 to choose between P1 and P2 controls; a game with no mux
// ignores cb2 and returns a static value.
type WidgetInputSource interface {
	PortAInput(cb2 bool) uint8
}

type staticSource struct{ v uint8 }

func (s *staticSource) PortAInput(bool) uint8 { return s.v }

// Board is one Williams gen-1 composite system.
type Board struct {
	vram       [vramSize]byte
	programROM []byte // 36KB, present only when a banked overlay ROM is loaded
	fixedROM   []byte // 12KB, 0xD000-0xFFFF
	palette    [16]byte

	romBank uint8 // 0 = VRAM visible at 0x0000-0x8FFF; nonzero = programROM

	widgetPIA *pia.Pia
	romPIA    *pia.Pia
	cmosRAM   *cmos.Ram
	blit      *blitter.Blitter

	widgetSourceA *staticSource
	widgetInputA  WidgetInputSource
	widgetInputB  uint8

	mainCPU *m6809.M6809

	soundCPU *m6800.M6800
	soundRAM [256]byte
	soundROM []byte // 4KB, mirrored through 0xB000-0xFFFF
	soundPIA *pia.Pia
	dacDev   *dac.Dac

	scanline  int
	lineCycle int
	framebuf  []byte // DisplayWidth*DisplayHeight*3, RGB24

	watchdog int
}

// New constructs a Board. fixedROM must be exactly 12KB (0xD000-0xFFFF);
// programROM, if non-nil, must be exactly 36KB; soundROM must be exactly
// 4KB. A nil programROM leaves the bank-select latch inert (VRAM is always
// visible at 0x0000-0x8FFF), which is fine for boards that don't bank.
func New(programROM, fixedROM, soundROM []byte) *Board {
	b := &Board{
		programROM:    programROM,
		fixedROM:      fixedROM,
		soundROM:      soundROM,
		widgetPIA:     pia.New(),
		romPIA:        pia.New(),
		soundPIA:      pia.New(),
		cmosRAM:       cmos.New(),
		blit:          blitter.New(),
		widgetSourceA: &staticSource{},
		mainCPU:       m6809.New(),
		soundCPU:      m6800.New(),
		dacDev:        dac.New(cycleClock, audioSampleRate),
		framebuf:      make([]byte, DisplayWidth*DisplayHeight*3),
	}
	b.widgetInputA = b.widgetSourceA
	b.Reset()
	return b
}

// SetWidgetInputSource installs a custom Port A input computation (Joust's
// mux). Passing nil restores the plain static-register behavior.
func (b *Board) SetWidgetInputSource(src WidgetInputSource) {
	if src == nil {
		b.widgetInputA = b.widgetSourceA
		return
	}
	b.widgetInputA = src
}

// SetWidgetPortAInput sets the static Port A input value used when no
// WidgetInputSource is installed (Robotron's direct wiring).
func (b *Board) SetWidgetPortAInput(v uint8) { b.widgetSourceA.v = v }

// SetWidgetPortBInput sets the Widget PIA's Port B input register.
func (b *Board) SetWidgetPortBInput(v uint8) { b.widgetInputB = v }

// Reset pulses every device's reset line and reloads both CPUs' reset
// vectors.
func (b *Board) Reset() {
	b.widgetPIA.Reset()
	b.romPIA.Reset()
	b.soundPIA.Reset()
	b.blit.Reset()
	b.dacDev.Reset()
	b.romBank = 0
	b.scanline = 0
	b.lineCycle = 0
	b.watchdog = 0
	b.mainCPU.Reset(b.mainBus(), bus.Cpu(0), true)
	b.soundCPU.Reset(b.soundBusFor(), bus.Cpu(0), true)
}

// mainBus and soundBusFor return bus.Bus views bound to this board; the two
// CPUs genuinely sit on separate physical buses, so each gets its own
// adapter rather than sharing one address-decode path.
func (b *Board) mainBus() bus.Bus  { return (*mainBus)(b) }
func (b *Board) soundBusFor() bus.Bus { return (*soundBus)(b) }

// Tick advances the board by one master-clock cycle (1 MHz): it updates
// video-timing PIA inputs, propagates a posted sound command, lets the
// blitter or the main CPU drive the shared bus, ticks the sound CPU on its
// own bus, and advances the DAC — the sequence spec.md §4.5 specifies.
func (b *Board) Tick() {
	b.updateVideoTiming()

	if b.romPIA.TakePortBWritten() {
		cmd := b.romPIA.ReadOutputB()
		b.soundPIA.SetInputB(cmd)
		if cmd != 0xFF {
			b.soundPIA.SetCB1(true)
		} else {
			b.soundPIA.SetCB1(false)
		}
	}

	if b.lineCycle == 0 && b.scanline >= cropTop && b.scanline < cropTop+DisplayHeight {
		b.renderScanline(b.scanline)
	}

	if b.blit.IsActive() {
		b.blit.DoDMACycle(b.vram[:])
	} else {
		b.mainCPU.Tick(b.mainBus(), bus.Cpu(0))
	}

	b.soundCPU.Tick(b.soundBusFor(), bus.Cpu(0))

	b.dacDev.Write(b.soundPIA.ReadOutputA())
	b.dacDev.Tick()

	b.lineCycle++
	if b.lineCycle >= cyclesPerLine {
		b.lineCycle = 0
		b.scanline++
		if b.scanline >= scanlines {
			b.scanline = 0
		}
	}
}

func (b *Board) updateVideoTiming() {
	b.romPIA.SetCB1(b.scanline&0x20 != 0) // VA11: bit 5 of the scanline counter
	b.romPIA.SetCA1(b.scanline >= 240)    // count240
}

// RunFrame advances the board through one full 260-scanline frame: exactly
// 16640 ticks, matching spec.md §4.5's 60.096 Hz derivation.
func (b *Board) RunFrame() {
	for i := 0; i < scanlines*cyclesPerLine; i++ {
		b.Tick()
	}
}

// renderScanline assembles one visible scanline from VRAM+palette into the
// framebuffer, at the exact tick the real CRT would have read it — not
// deferred to end-of-frame, per spec.md §4.5/§9.
func (b *Board) renderScanline(scanline int) {
	y := scanline
	row := (scanline - cropTop) * DisplayWidth * 3
	for col := 0; col < DisplayWidth; col++ {
		x := col + 6 // crop 6px of horizontal overscan
		addr := (x/2)*256 + y
		var nibble uint8
		if addr >= 0 && addr < vramSize {
			v := b.vram[addr]
			if x%2 == 0 {
				nibble = v >> 4
			} else {
				nibble = v & 0x0F
			}
		}
		r, g, bl := paletteToRGB(b.palette[nibble])
		off := row + col*3
		b.framebuf[off], b.framebuf[off+1], b.framebuf[off+2] = r, g, bl
	}
}

// paletteToRGB expands one BBGGGRRR palette byte to 8-bit RGB channels.
func paletteToRGB(v uint8) (r, g, bl uint8) {
	r = (v & 0x07) * 255 / 7
	g = ((v >> 3) & 0x07) * 255 / 7
	bl = ((v >> 6) & 0x03) * 255 / 3
	return
}

// RenderFrame copies the already-assembled framebuffer into dst, which must
// be at least DisplayWidth*DisplayHeight*3 bytes.
func (b *Board) RenderFrame(dst []byte) {
	copy(dst, b.framebuf)
}

// FillAudio drains resampled DAC output into out.
func (b *Board) FillAudio(out []int16) int { return b.dacDev.FillAudio(out) }

// AudioSampleRate is the rate FillAudio's samples are resampled to.
func (b *Board) AudioSampleRate() int { return audioSampleRate }

// FrameRateHz is the board's native vertical refresh rate.
func (b *Board) FrameRateHz() float64 { return float64(cycleClock) / float64(scanlines*cyclesPerLine) }

// SaveNVRAM returns the CMOS contents with the documented high-nibble-1
// convention applied, matching the 1024-byte NVRAM format spec.md §6
// specifies.
func (b *Board) SaveNVRAM() []byte {
	snap := b.cmosRAM.Snapshot()
	out := make([]byte, len(snap))
	for i, v := range snap {
		out[i] = 0xF0 | (v & 0x0F)
	}
	return out
}

// LoadNVRAM restores CMOS contents previously returned by SaveNVRAM,
// keeping only the low nibble of each byte.
func (b *Board) LoadNVRAM(data []byte) {
	masked := make([]byte, len(data))
	for i, v := range data {
		masked[i] = v & 0x0F
	}
	b.cmosRAM.LoadFrom(masked)
}
