// Package dkong models the Donkey Kong sound board's discrete analog sound
// effects circuits (walk, jump, stomp), driven by a 74LS259 control latch
// rather than by any programmable tone generator.
package dkong

import "math"

// Discrete is the three-voice discrete sound circuit.
type Discrete struct {
	walkLFOPhase float64
	walkVCOPhase float64

	jumpActive   bool
	jumpTimer    float64
	jumpVCOPhase float64

	stompActive    bool
	stompTimer     float64
	stompLFSR      uint32
	stompLFSRClock float64

	latch uint8
}

// New returns a Discrete in its power-on state.
func New() *Discrete {
	return &Discrete{stompLFSR: 0x1ACFFC}
}

// vcoFreq computes the frequency of a 555 astable oscillator with the given
// timing capacitor (in nF) and control voltage, using the charge/discharge
// RC equations for R1=47kOhm, R2=27kOhm, Vcc=5V (the values shared by all
// three 555 VCOs on the DK sound board).
func vcoFreq(capNF, cv float64) float64 {
	const vcc = 5.0
	const r1 = 47_000.0
	const r2 = 27_000.0
	c := capNF * 1e-9
	tCharge := (r1 + r2) * c * math.Log((vcc-cv*0.5)/(vcc-cv))
	tDischarge := r2 * c * math.Log(2)
	return 1.0 / (tCharge + tDischarge)
}

// WriteLatch sets or clears one bit (0-2) of the control latch, arming the
// jump and stomp one-shots on a rising edge.
func (d *Discrete) WriteLatch(bit uint8, value bool) {
	old := d.latch
	if value {
		d.latch |= 1 << bit
	} else {
		d.latch &^= 1 << bit
	}
	rising := d.latch &^ old

	if rising&0x02 != 0 {
		d.jumpActive = true
		d.jumpTimer = 0
		d.jumpVCOPhase = 0
	}
	if rising&0x04 != 0 {
		d.stompActive = true
		d.stompTimer = 0
	}
}

const dt = 1.0 / 44100.0

// GenerateSample produces one output sample; call at 44.1kHz.
func (d *Discrete) GenerateSample() int16 {
	var output float64

	if d.latch&0x01 != 0 {
		d.walkLFOPhase += 1.0 * dt
		if d.walkLFOPhase >= 1.0 {
			d.walkLFOPhase -= 1.0
		}
		lfo := math.Sin(d.walkLFOPhase * 2 * math.Pi)
		cv := 3.15 + 0.65*lfo
		freq := vcoFreq(33.0, cv)

		d.walkVCOPhase += freq * dt
		if d.walkVCOPhase >= 1.0 {
			d.walkVCOPhase -= 1.0
		}
		wave := -1.0
		if d.walkVCOPhase < 0.5 {
			wave = 1.0
		}
		output += wave * 0.12
	}

	if d.jumpActive {
		d.jumpTimer += dt
		if d.jumpTimer > 0.5 {
			d.jumpActive = false
		} else {
			t := d.jumpTimer
			cv := 1.0 + 3.0*math.Exp(-t/0.36)
			freq := vcoFreq(47.0, cv)
			amp := math.Exp(-t / 0.36)

			d.jumpVCOPhase += freq * dt
			if d.jumpVCOPhase >= 1.0 {
				d.jumpVCOPhase -= 1.0
			}
			wave := -1.0
			if d.jumpVCOPhase < 0.5 {
				wave = 1.0
			}
			output += wave * amp * 0.15
		}
	}

	if d.stompActive {
		d.stompTimer += dt
		if d.stompTimer > 0.25 {
			d.stompActive = false
		} else {
			d.stompLFSRClock += 4000.0 * dt
			for d.stompLFSRClock >= 1.0 {
				d.stompLFSRClock -= 1.0
				bit := ((d.stompLFSR >> 10) ^ (d.stompLFSR >> 23)) & 1
				d.stompLFSR = (d.stompLFSR >> 1) | (bit << 23)
			}
			noise := -1.0
			if d.stompLFSR&1 != 0 {
				noise = 1.0
			}
			amp := math.Exp(-d.stompTimer / 0.05)
			output += noise * amp * 0.12
		}
	}

	if output > 1.0 {
		output = 1.0
	} else if output < -1.0 {
		output = -1.0
	}
	return int16(output * 32767.0)
}

// Reset returns the circuit to its power-on state.
func (d *Discrete) Reset() {
	*d = *New()
}
