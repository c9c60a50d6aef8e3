package atari

import "github.com/patsoffice/arcadecore/bus"

// atariBus is the bus.Bus adapter the 6502 core is driven through. It is a
// conversion-of-underlying-type view over Board (no wrapper struct), the
// same pattern board/williams uses for its two CPU buses.
type atariBus Board

func (b *atariBus) board() *Board { return (*Board)(b) }

// checkMADSEL reports whether the one-shot MADSEL circuit fires on this
// cycle: armed exactly 5 cycles ago. It disarms itself when it fires,
// matching the real circuit's single-cycle pulse; on any other cycle it
// stays armed.
func (b *atariBus) checkMADSEL() bool {
	brd := b.board()
	if !brd.madselArmed {
		return false
	}
	fire := brd.clock-brd.madselAt == 5
	if fire {
		brd.madselArmed = false
	}
	return fire
}

// Read implements bus.Bus. A read on the cycle exactly 5 cycles after the
// MADSEL circuit was armed is redirected into the bit-planar pixel decoder
// instead of whatever the normal address decode would return.
func (b *atariBus) Read(master bus.Master, addr uint16) uint8 {
	brd := b.board()

	if b.checkMADSEL() {
		return b.vramMADSELRead(addr)
	}

	a := addr & 0x7FFF
	var data uint8
	switch {
	case a < 0x4000:
		data = brd.ram[a]
	case a < 0x4800:
		data = brd.pokey.Read(uint8(a & 0x0F))
	case a < 0x4900:
		if brd.ctrld {
			data = (brd.trackballY << 4) | (brd.trackballX & 0x0F)
		} else {
			data = brd.in0
		}
	case a < 0x4A00:
		data = brd.in1
	case a < 0x4B00:
		data = brd.dipSwitches
	case a >= 0x5000 && a <= 0x7FFF:
		data = brd.rom[a-0x5000]
	default:
		data = 0xFF
	}

	// MADSEL arming: during the CPU's opcode-fetch cycle (SYNC), an opcode
	// whose low 5 bits select (zp,X) addressing arms the counter, unless
	// an interrupt is already pending — matching the real schematics'
	// interlock between MADSEL and the IRQ logic.
	if brd.cpu.SYNC && data&0x1F == 0x01 && !brd.irqState && !brd.pokey.IRQ() {
		brd.madselArmed = true
		brd.madselAt = brd.clock
	}

	return data
}

// Write implements bus.Bus.
func (b *atariBus) Write(master bus.Master, addr uint16, data uint8) {
	brd := b.board()

	if b.checkMADSEL() {
		b.vramMADSELWrite(addr, data)
		return
	}

	a := addr & 0x7FFF
	switch {
	case a < 0x4000:
		brd.ram[a] = data
	case a < 0x4800:
		brd.pokey.Write(uint8(a&0x0F), data)
	case a < 0x4900:
		brd.ctrld = data&1 != 0
	case a >= 0x4B00 && a < 0x4C00:
		brd.palette[a&0x07] = data
	case a >= 0x4C00 && a < 0x4D00:
		brd.watchdogCounter = 0
	case a >= 0x4D00 && a < 0x4E00:
		brd.irqState = false
	}
}

// IsHaltedFor implements bus.Bus: there is no DMA hardware on this board.
func (b *atariBus) IsHaltedFor(master bus.Master) bool { return false }

// CheckInterrupts implements bus.Bus: IRQ is the OR of the /32V latch and
// POKEY's own composite interrupt output; this board has no NMI or FIRQ.
func (b *atariBus) CheckInterrupts(target bus.Master) bus.InterruptState {
	brd := b.board()
	return bus.InterruptState{IRQ: brd.irqState || brd.pokey.IRQ()}
}

// vramMADSELWrite decodes a MADSEL-redirected write: the top two data bits
// select a 2-bit pixel value packed two-planes-per-nibble across four
// pixels per VRAM byte, with a third color bit (data bit 5) stored in a
// second, address-scrambled VRAM region for the bottom ("MUSHROOM") band
// of the screen.
func (b *atariBus) vramMADSELWrite(offset uint16, data uint8) {
	brd := b.board()

	var dataLookup = [4]uint8{0x00, 0x0F, 0xF0, 0xFF}

	vramAddr := int(offset >> 2)
	pixel := offset & 3
	vramData := dataLookup[data>>6]
	vramMask := ^(uint8(0x11) << pixel)

	if vramAddr < ramSize {
		brd.ram[vramAddr] = (brd.ram[vramAddr] & vramMask) | (vramData &^ vramMask)
	}

	if offset&0xE000 == 0xE000 {
		bit3Addr := int(getBit3Addr(offset))
		var bit3Data uint8
		if data&0x20 != 0 {
			bit3Data = 0xFF
		}
		bit3Mask := ^(uint8(1) << (offset & 7))

		if bit3Addr < ramSize {
			brd.ram[bit3Addr] = (brd.ram[bit3Addr] & bit3Mask) | (bit3Data &^ bit3Mask)
		}
	}
}

// vramMADSELRead is vramMADSELWrite's inverse: it reassembles a pixel's
// color bits into the data byte's top bits (7:6, plus bit 5 for the third
// color bit), the shape the real hardware's read-back logic produces.
func (b *atariBus) vramMADSELRead(offset uint16) uint8 {
	brd := b.board()

	vramAddr := int(offset >> 2)
	vramMask := uint8(0x11) << (offset & 3)
	var vramData uint8
	if vramAddr < ramSize {
		vramData = brd.ram[vramAddr] & vramMask
	}

	result := uint8(0xFF)
	if vramData&0xF0 == 0 {
		result &^= 0x80
	}
	if vramData&0x0F == 0 {
		result &^= 0x40
	}

	if offset&0xE000 == 0xE000 {
		bit3Addr := int(getBit3Addr(offset))
		bit3Mask := uint8(1) << (offset & 7)
		var bit3Data uint8
		if bit3Addr < ramSize {
			bit3Data = brd.ram[bit3Addr] & bit3Mask
		}
		if bit3Data == 0 {
			result &^= 0x20
		}
	}

	return result
}
