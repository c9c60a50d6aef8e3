// Package pia implements the Motorola MC6821 Peripheral Interface Adapter
// (6820-compatible), the chip both Widget and ROM boards on a Williams
// gen-1 system use to talk to the sound board and coin/switch inputs.
package pia

// Pia is one MC6821: two independent 8-bit ports (A and B), each with a
// data-direction register, a control register, and an edge-detected
// control-line pair (CA1/CA2, CB1/CB2).
type Pia struct {
	outputA, ddrA, ctrlA, inputA uint8
	outputB, ddrB, ctrlB, inputB uint8

	irqA1, irqA2 bool
	irqB1, irqB2 bool

	ca1, ca2, cb1, cb2 bool

	// portBWritten latches the instant the CPU writes port B's output
	// register, cleared the next time it is read. Boards use this as a
	// one-shot "sound command posted" signal distinct from the data value
	// itself, since the value 0x00 is itself a valid command byte.
	portBWritten bool
}

// New returns a Pia in its reset state.
func New() *Pia {
	return &Pia{}
}

// Reset returns the Pia to its power-on state: both ports configured as
// inputs, both control registers clear, no interrupts latched.
func (p *Pia) Reset() {
	*p = Pia{}
}

// Read performs a CPU read of the register selected by the low two bits of
// offset, exactly as the real chip's RS0/RS1 address lines do.
func (p *Pia) Read(offset uint8) uint8 {
	switch offset & 3 {
	case 0:
		if p.ctrlA&0x04 != 0 {
			p.irqA1 = false
			p.irqA2 = false
			return (p.inputA &^ p.ddrA) | (p.outputA & p.ddrA)
		}
		return p.ddrA
	case 1:
		return (b2u8(p.irqA1) << 7) | (b2u8(p.irqA2) << 6) | (p.ctrlA & 0x3F)
	case 2:
		if p.ctrlB&0x04 != 0 {
			p.irqB1 = false
			p.irqB2 = false
			p.portBWritten = false
			return (p.inputB &^ p.ddrB) | (p.outputB & p.ddrB)
		}
		return p.ddrB
	default: // 3
		return (b2u8(p.irqB1) << 7) | (b2u8(p.irqB2) << 6) | (p.ctrlB & 0x3F)
	}
}

// Write performs a CPU write of the register selected by the low two bits
// of offset.
func (p *Pia) Write(offset uint8, data uint8) {
	switch offset & 3 {
	case 0:
		if p.ctrlA&0x04 != 0 {
			p.outputA = data
		} else {
			p.ddrA = data
		}
	case 1:
		p.ctrlA = data & 0x3F
	case 2:
		if p.ctrlB&0x04 != 0 {
			p.outputB = data
			p.portBWritten = true
		} else {
			p.ddrB = data
		}
	case 3:
		p.ctrlB = data & 0x3F
	}
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// SetInputA latches the bits of port A's input lines that are configured
// as inputs (DDR bit clear); bits configured as outputs are unaffected.
func (p *Pia) SetInputA(value uint8) { p.inputA = value }

// SetInputB latches port B's input lines.
func (p *Pia) SetInputB(value uint8) { p.inputB = value }

// SetCA1 updates the CA1 line and latches IRQA1 on the edge selected by
// CRA bit 1 (0 = falling, 1 = rising).
func (p *Pia) SetCA1(state bool) {
	risingEdge := state && !p.ca1
	fallingEdge := !state && p.ca1
	p.ca1 = state

	triggerOnRising := p.ctrlA&0x02 != 0
	if (triggerOnRising && risingEdge) || (!triggerOnRising && fallingEdge) {
		p.irqA1 = true
	}
}

// SetCB1 updates the CB1 line and latches IRQB1 analogously to SetCA1.
func (p *Pia) SetCB1(state bool) {
	risingEdge := state && !p.cb1
	fallingEdge := !state && p.cb1
	p.cb1 = state

	triggerOnRising := p.ctrlB&0x02 != 0
	if (triggerOnRising && risingEdge) || (!triggerOnRising && fallingEdge) {
		p.irqB1 = true
	}
}

// SetCA2 updates the CA2 line when it is configured as an input (CRA bit 5
// clear); when CA2 is an output, incoming line changes are ignored.
func (p *Pia) SetCA2(state bool) {
	if p.ctrlA&0x20 != 0 {
		return
	}
	risingEdge := state && !p.ca2
	fallingEdge := !state && p.ca2
	p.ca2 = state

	triggerOnRising := p.ctrlA&0x10 != 0
	if (triggerOnRising && risingEdge) || (!triggerOnRising && fallingEdge) {
		p.irqA2 = true
	}
}

// SetCB2 updates the CB2 line when it is configured as an input (CRB bit 5
// clear).
func (p *Pia) SetCB2(state bool) {
	if p.ctrlB&0x20 != 0 {
		return
	}
	risingEdge := state && !p.cb2
	fallingEdge := !state && p.cb2
	p.cb2 = state

	triggerOnRising := p.ctrlB&0x10 != 0
	if (triggerOnRising && risingEdge) || (!triggerOnRising && fallingEdge) {
		p.irqB2 = true
	}
}

// IRQA reports the composite interrupt output of side A: IRQA1 gated by
// its always-enabled mask bit, ORed with IRQA2 gated by CA2's
// interrupt-enable bit when CA2 is configured as an input.
func (p *Pia) IRQA() bool {
	return (p.irqA1 && p.ctrlA&0x01 != 0) ||
		(p.irqA2 && p.ctrlA&0x20 == 0 && p.ctrlA&0x08 != 0)
}

// IRQB is the side-B equivalent of IRQA.
func (p *Pia) IRQB() bool {
	return (p.irqB1 && p.ctrlB&0x01 != 0) ||
		(p.irqB2 && p.ctrlB&0x20 == 0 && p.ctrlB&0x08 != 0)
}

// ReadOutputA returns the chip's current port-A output level, masked to the
// pins configured as outputs, the value a board wires to external hardware.
func (p *Pia) ReadOutputA() uint8 { return p.outputA & p.ddrA }

// ReadOutputB returns the chip's current port-B output level.
func (p *Pia) ReadOutputB() uint8 { return p.outputB & p.ddrB }

// CB2Output computes the level a board should read off the CB2 pin when it
// is configured as an output: a direct register bit in "direct" mode (CRB
// bit 4 set), or the handshake-latched value otherwise.
func (p *Pia) CB2Output() bool {
	if p.ctrlB&0x20 == 0 {
		return false // configured as input
	}
	if p.ctrlB&0x10 != 0 {
		return p.ctrlB&0x08 != 0
	}
	return p.cb2
}

// TakePortBWritten reports and clears the one-shot "port B output written"
// flag.
func (p *Pia) TakePortBWritten() bool {
	v := p.portBWritten
	p.portBWritten = false
	return v
}
