// Package dac models the MC1408 8-bit multiplying DAC used by Williams
// gen-1 boards to turn the sound CPU's output-latch writes into an audio
// waveform, resampled from the CPU clock down to a front-end-friendly
// output rate using the same Bresenham accumulation the rest of this
// module's sound devices use.
package dac

// Dac is an 8-bit unsigned-input DAC with a Bresenham downsampler.
type Dac struct {
	level uint8 // last value written, 0-255

	outputSampleRate uint64
	cpuClockHz       uint64

	buffer       []int16
	sampleAccum  int64
	sampleCount  uint32
	samplePhase  uint64
}

// New creates a Dac ticked at cpuClockHz and resampled to outputSampleRate.
func New(cpuClockHz, outputSampleRate uint64) *Dac {
	return &Dac{
		cpuClockHz:       cpuClockHz,
		outputSampleRate: outputSampleRate,
		buffer:           make([]int16, 0, 2048),
	}
}

// Write latches a new 8-bit output level.
func (d *Dac) Write(level uint8) {
	d.level = level
}

// Tick advances the DAC by one CPU clock cycle, accumulating the current
// level and emitting a resampled output sample when the Bresenham phase
// accumulator rolls over.
func (d *Dac) Tick() {
	// Center the unsigned 8-bit level around zero and scale to use most of
	// the int16 range: (level-128) * 256 spans roughly -32768..32512.
	sample := (int64(d.level) - 128) * 256

	d.sampleAccum += sample
	d.sampleCount++
	d.samplePhase += d.outputSampleRate

	if d.samplePhase >= d.cpuClockHz {
		d.samplePhase -= d.cpuClockHz
		avg := int16(d.sampleAccum / int64(d.sampleCount))
		d.buffer = append(d.buffer, avg)
		d.sampleAccum = 0
		d.sampleCount = 0
	}
}

// FillAudio drains up to len(out) resampled audio samples into out,
// returning how many were written.
func (d *Dac) FillAudio(out []int16) int {
	n := len(out)
	if n > len(d.buffer) {
		n = len(d.buffer)
	}
	copy(out[:n], d.buffer[:n])
	d.buffer = d.buffer[n:]
	return n
}

// Reset returns the DAC to its power-on state, discarding any buffered
// audio.
func (d *Dac) Reset() {
	d.level = 0
	d.buffer = d.buffer[:0]
	d.sampleAccum = 0
	d.sampleCount = 0
	d.samplePhase = 0
}
