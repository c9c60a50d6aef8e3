// Package atari composes the cycle-accurate substrate — a single MOS 6502
// and an Atari POKEY sound/IO chip — into the Atari "Missile Command" era
// board model spec.md §2's L2 row describes alongside board/williams. The
// distinguishing feature of this board is MADSEL: there is no dedicated
// pixel-write register anywhere in its memory map, so the game draws by
// letting the CPU's own (zp,X)-addressed opcode fetches arm a one-shot
// circuit that, five cycles later, reroutes the *next* bus cycle into a
// bit-planar video RAM coder instead of wherever the instruction's operand
// address actually pointed.
package atari

import (
	"github.com/patsoffice/arcadecore/bus"
	"github.com/patsoffice/arcadecore/cpu/m6502"
	"github.com/patsoffice/arcadecore/device/pokey"
)

const (
	// DisplayWidth and DisplayHeight are the visible raster: 256x231,
	// scanlines 25-255 of a 256-line frame (VBEND=25).
	DisplayWidth  = 256
	DisplayHeight = 231

	cpuClockHz        = 1_250_000 // 10MHz crystal / 8
	cyclesPerScanline = 80
	scanlinesPerFrame = 256
	cyclesPerFrame    = scanlinesPerFrame * cyclesPerScanline
	vblankEnd         = 25 // first visible scanline
	clockHalveAt      = 224

	ramSize = 0x4000 // 16KB video/work RAM
	romSize = 0x3000 // 12KB program ROM

	audioSampleRate = 44_100

	trackballStepCycles = 1000 // arbitrary-but-steady trackball simulation rate
)

// Board is one Atari "Missile Command" generation composite system.
type Board struct {
	cpu   *m6502.M6502
	pokey *pokey.Pokey

	ram [ramSize]byte
	rom []byte // 12KB, 0x5000-0x7FFF and mirrored at 0xF800-0xFFFF

	in0         uint8 // switches: coin, starts, cocktail fire (active-low)
	in1         uint8 // VBLANK, self-test, tilt, trackball direction, fire (mixed polarity)
	dipSwitches uint8
	ctrld       bool    // output-latch bit 0: 0 = read switches at 0x4800, 1 = read trackball
	palette     [8]byte // 1-bit-per-channel color RAM

	trackballX, trackballY         uint8
	trackballLeft, trackballRight  bool
	trackballUp, trackballDown     bool

	irqState bool // latched by the /32V IRQ source, cleared by writing 0x4D00

	// MADSEL one-shot: armed at the clock of an opcode fetch whose low 5
	// bits are 0x01 (indirect-X addressing), fires exactly 5 cycles later.
	madselArmed bool
	madselAt    uint64

	clock           uint64
	watchdogCounter uint32

	framebuf []byte // DisplayWidth*DisplayHeight*3, RGB24
}

// New constructs a Board. rom must be exactly 12KB (the 0x5000-0x7FFF
// program ROM, also visible through the reset/IRQ vector mirror at
// 0xF800-0xFFFF once masked onto the 15-bit address bus).
func New(rom []byte) *Board {
	b := &Board{
		cpu:      m6502.New(),
		pokey:    pokey.New(audioSampleRate),
		rom:      rom,
		in0:      0xFF, // all switches released (active-low)
		in1:      0x67, // fire buttons + self-test/tilt released, VBLANK off
		framebuf: make([]byte, DisplayWidth*DisplayHeight*3),
	}
	b.Reset()
	return b
}

// Reset pulses the CPU's reset line and clears the board's latched I/O and
// timing state.
func (b *Board) Reset() {
	b.ctrld = false
	b.irqState = false
	b.madselArmed = false
	b.watchdogCounter = 0
	b.cpu.Reset(b.cpuBus(), bus.Cpu(0), true)
}

func (b *Board) cpuBus() bus.Bus { return (*atariBus)(b) }

// currentScanline returns the V counter (0-255) for the current clock.
func (b *Board) currentScanline() uint16 {
	frameCycle := b.clock % cyclesPerFrame
	return uint16(frameCycle / cyclesPerScanline)
}

// Tick advances the board by one CPU-clock cycle: it steps the simulated
// trackball, latches the /32V IRQ and VBLANK bits, ticks POKEY, and — save
// for every other cycle once the CPU clock halves below scanline 224 —
// lets the 6502 drive the bus.
func (b *Board) Tick() {
	if b.clock%trackballStepCycles == 0 {
		if b.trackballLeft {
			b.trackballX = (b.trackballX - 1) & 0x0F
		}
		if b.trackballRight {
			b.trackballX = (b.trackballX + 1) & 0x0F
		}
		if b.trackballUp {
			b.trackballY = (b.trackballY - 1) & 0x0F
		}
		if b.trackballDown {
			b.trackballY = (b.trackballY + 1) & 0x0F
		}
	}

	// /32V-derived IRQ: clocked at 16-scanline boundaries, asserted when
	// bit 5 of the V counter (32V) is clear, cleared only by an explicit
	// acknowledge write to 0x4D00.
	frameCycle := b.clock % cyclesPerFrame
	if frameCycle%cyclesPerScanline == 0 {
		scanline := uint16(frameCycle / cyclesPerScanline)
		if scanline%16 == 0 {
			if (scanline>>5)&1 == 0 {
				b.irqState = true
			}
		}
	}

	if b.currentScanline() < vblankEnd {
		b.in1 |= 0x80
	} else {
		b.in1 &^= 0x80
	}

	b.pokey.Tick()

	runCPU := true
	if b.currentScanline() >= clockHalveAt {
		runCPU = b.clock%2 == 0
	}
	if runCPU {
		b.cpu.Tick(b.cpuBus(), bus.Cpu(0))
	}

	b.clock++
	b.watchdogCounter++
}

// RunFrame advances the board through one full 256-scanline frame.
func (b *Board) RunFrame() {
	for i := 0; i < cyclesPerFrame; i++ {
		b.Tick()
	}
	b.renderFrame()
}

// getBit3Addr converts a 16-bit pixel address to the VRAM address holding
// that pixel's third color bit (the MUSHROOM-region palette extension),
// per the hardware's address-decode PALs.
func getBit3Addr(pixAddr uint16) uint16 {
	return ((pixAddr & 0x0800) >> 1) |
		((^pixAddr & 0x0800) >> 2) |
		((pixAddr & 0x07F8) >> 2) |
		((pixAddr & 0x1000) >> 12)
}

// renderFrame assembles the visible raster from VRAM's bit-planar pixel
// format plus the 3-bit color RAM into the RGB24 framebuffer.
func (b *Board) renderFrame() {
	var paletteRGB [8][3]uint8
	for i, entry := range b.palette {
		r, g, bl := uint8(255), uint8(255), uint8(255)
		if entry&0x08 != 0 {
			r = 0
		}
		if entry&0x04 != 0 {
			g = 0
		}
		if entry&0x02 != 0 {
			bl = 0
		}
		paletteRGB[i] = [3]uint8{r, g, bl}
	}

	for y := 0; y < DisplayHeight; y++ {
		effY := y + vblankEnd
		srcBase := effY * 64

		hasBit3 := effY >= clockHalveAt
		bit3Base := 0
		if hasBit3 {
			bit3Base = int(getBit3Addr(uint16(effY) << 8))
		}

		for x := 0; x < DisplayWidth; x++ {
			byteOffset := srcBase + x/4
			pixelInByte := uint(x & 3)

			var raw uint8
			if byteOffset < ramSize {
				raw = b.ram[byteOffset]
			}

			pix := raw >> pixelInByte
			colorIdx := ((pix >> 2) & 4) | ((pix << 1) & 2)

			if hasBit3 {
				bit3Offset := bit3Base + (x/8)*2
				if bit3Offset < ramSize {
					colorIdx |= (b.ram[bit3Offset] >> uint(x&7)) & 1
				}
			}

			rgb := paletteRGB[colorIdx]
			off := (y*DisplayWidth + x) * 3
			b.framebuf[off], b.framebuf[off+1], b.framebuf[off+2] = rgb[0], rgb[1], rgb[2]
		}
	}
}

// RenderFrame copies the already-assembled framebuffer into dst, which must
// be at least DisplayWidth*DisplayHeight*3 bytes.
func (b *Board) RenderFrame(dst []byte) {
	copy(dst, b.framebuf)
}

// FillAudio drains POKEY's resampled float32 output into out as signed
// 16-bit samples, returning the count written.
func (b *Board) FillAudio(out []int16) int {
	samples := b.pokey.DrainAudio()
	n := len(samples)
	if n > len(out) {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		v := samples[i]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = int16(v * 32767)
	}
	return n
}

// AudioSampleRate is the rate FillAudio's samples are resampled to.
func (b *Board) AudioSampleRate() int { return audioSampleRate }

// FrameRateHz is the board's native vertical refresh rate: ~61.04Hz, the
// CPU clock divided by one full 256-scanline frame.
func (b *Board) FrameRateHz() float64 { return float64(cpuClockHz) / float64(cyclesPerFrame) }

// Hardware-named input setters. A game wrapper (machine/missilecommand)
// maps its logical button IDs onto these; the board itself knows nothing
// about "fire" or "start", only which switch or trackball line changed.

func setActiveLowBit(reg *uint8, bit uint8, pressed bool) {
	if pressed {
		*reg &^= 1 << bit
	} else {
		*reg |= 1 << bit
	}
}

func (b *Board) SetSwitchCoin(pressed bool)   { setActiveLowBit(&b.in0, 5, pressed) }
func (b *Board) SetSwitchStart1(pressed bool) { setActiveLowBit(&b.in0, 4, pressed) }
func (b *Board) SetSwitchStart2(pressed bool) { setActiveLowBit(&b.in0, 3, pressed) }

func (b *Board) SetFireLeft(pressed bool)   { setActiveLowBit(&b.in1, 2, pressed) }
func (b *Board) SetFireCenter(pressed bool) { setActiveLowBit(&b.in1, 1, pressed) }
func (b *Board) SetFireRight(pressed bool)  { setActiveLowBit(&b.in1, 0, pressed) }

func (b *Board) SetTrackballLeft(pressed bool)  { b.trackballLeft = pressed }
func (b *Board) SetTrackballRight(pressed bool) { b.trackballRight = pressed }
func (b *Board) SetTrackballUp(pressed bool)    { b.trackballUp = pressed }
func (b *Board) SetTrackballDown(pressed bool)  { b.trackballDown = pressed }

// SetDIPSwitches sets the board's pricing/option DIP bank, read at 0x4A00.
func (b *Board) SetDIPSwitches(v uint8) { b.dipSwitches = v }

// SaveNVRAM always returns nil: this board has no battery-backed storage.
func (b *Board) SaveNVRAM() []byte { return nil }
