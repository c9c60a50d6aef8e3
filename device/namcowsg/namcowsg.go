// Package namcowsg implements the Namco WSG (Waveform Sound Generator), the
// 3-voice wavetable chip used by early Namco arcade boards. Each voice reads
// through a 32-sample, 4-bit waveform at a programmable frequency and
// volume, with waveform data supplied by an 8-waveform sound PROM.
package namcowsg

// fFracBits is the number of fractional bits used by each voice's phase
// counter.
//
// The WSG's native input clock is masterClock/6/32 (96kHz for an
// 18.432MHz master). A reference implementation doubles that to a 192kHz
// internal stream rate and uses 16 fractional bits. This model instead
// advances the counter once per CPU clock (16x faster than 192kHz), so it
// adds 4 extra fractional bits to compensate: 16+4 = 20, giving the same
// waveform rate as clocking at the native 192kHz stream rate.
const fFracBits = 20

const outputSampleRate = 44100

type voice struct {
	frequency      uint32
	counter        uint32
	volume         uint8
	waveformSelect uint8
}

// Wsg is a 3-voice Namco WSG.
type Wsg struct {
	voices      [3]voice
	soundRegs   [32]uint8
	waveformROM [256]uint8

	soundEnabled bool

	buffer      []int16
	sampleAccum int64
	sampleCount uint32
	samplePhase uint64

	cpuClockHz uint64
}

// New creates a Wsg ticked at cpuClockHz (e.g. 3_072_000 for Pac-Man).
func New(cpuClockHz uint64) *Wsg {
	return &Wsg{cpuClockHz: cpuClockHz, buffer: make([]int16, 0, 2048)}
}

// LoadWaveformROM loads the 256-byte sound PROM (only the low nibble of
// each byte is used); data longer than 256 bytes is truncated.
func (w *Wsg) LoadWaveformROM(data []byte) {
	n := len(data)
	if n > len(w.waveformROM) {
		n = len(w.waveformROM)
	}
	copy(w.waveformROM[:n], data[:n])
}

// SetSoundEnabled enables or mutes the chip's output.
func (w *Wsg) SetSoundEnabled(enabled bool) {
	w.soundEnabled = enabled
}

// Write stores a nibble register, offsets 0x00-0x1F as described by the
// Namco sound-register map (waveform select, per-channel frequency
// nibbles, per-channel volume).
func (w *Wsg) Write(offset uint8, data uint8) {
	off := int(offset & 0x1F)
	data &= 0x0F

	if w.soundRegs[off] == data {
		return
	}
	w.soundRegs[off] = data

	var ch int
	switch {
	case off < 0x10:
		ch = (off - 5) / 5
	case off == 0x10:
		ch = 0
	default:
		ch = (off - 0x11) / 5
	}
	if ch < 0 || ch >= 3 {
		return
	}

	v := &w.voices[ch]
	regInCh := off - ch*5

	switch {
	case regInCh == 0x05:
		v.waveformSelect = data & 7
	case regInCh >= 0x10 && regInCh <= 0x14:
		v.frequency = 0
		if ch == 0 {
			v.frequency = uint32(w.soundRegs[0x10])
		}
		v.frequency += uint32(w.soundRegs[ch*5+0x11]) << 4
		v.frequency += uint32(w.soundRegs[ch*5+0x12]) << 8
		v.frequency += uint32(w.soundRegs[ch*5+0x13]) << 12
		v.frequency += uint32(w.soundRegs[ch*5+0x14]) << 16
	case regInCh == 0x15:
		v.volume = data
	}
}

// Tick advances the WSG by one CPU clock cycle.
func (w *Wsg) Tick() {
	if !w.soundEnabled {
		w.sampleCount++
		w.samplePhase += outputSampleRate
		if w.samplePhase >= w.cpuClockHz {
			w.samplePhase -= w.cpuClockHz
			w.buffer = append(w.buffer, 0)
			w.sampleCount = 0
			w.sampleAccum = 0
		}
		return
	}

	var mixed int32
	for i := range w.voices {
		v := &w.voices[i]
		if v.volume == 0 {
			continue
		}
		v.counter += v.frequency

		pos := int((v.counter >> fFracBits) & 0x1F)
		sample := int32(w.waveformROM[int(v.waveformSelect)*32+pos]&0x0F) - 8

		mixed += sample * int32(v.volume)
	}

	sample := int64(mixed) * 80

	w.sampleAccum += sample
	w.sampleCount++
	w.samplePhase += outputSampleRate

	if w.samplePhase >= w.cpuClockHz {
		w.samplePhase -= w.cpuClockHz
		avg := int16(w.sampleAccum / int64(w.sampleCount))
		w.buffer = append(w.buffer, avg)
		w.sampleAccum = 0
		w.sampleCount = 0
	}
}

// FillAudio drains up to len(out) samples into out, returning the count
// written.
func (w *Wsg) FillAudio(out []int16) int {
	n := len(out)
	if n > len(w.buffer) {
		n = len(w.buffer)
	}
	copy(out[:n], w.buffer[:n])
	w.buffer = w.buffer[n:]
	return n
}

// Reset returns the chip to its power-on state. The waveform ROM contents
// survive a reset since it is mask-programmed, not writable.
func (w *Wsg) Reset() {
	w.voices = [3]voice{}
	w.soundRegs = [32]uint8{}
	w.soundEnabled = false
	w.buffer = w.buffer[:0]
	w.sampleAccum = 0
	w.sampleCount = 0
	w.samplePhase = 0
}
