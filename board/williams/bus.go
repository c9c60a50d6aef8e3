package williams

import "github.com/patsoffice/arcadecore/bus"

// mainBus is the main 6809E's view of a Board: the banked 48KB video
// RAM/ROM overlay, palette RAM, both PIAs, the blitter's register window,
// CMOS, and the fixed 12KB program ROM, per spec.md §3's address map.
type mainBus Board

func (m *mainBus) b() *Board { return (*Board)(m) }

func (m *mainBus) Read(master bus.Master, addr uint16) uint8 {
	b := m.b()
	switch {
	case addr < 0x9000:
		if b.romBank != 0 && b.programROM != nil && int(addr) < len(b.programROM) {
			return b.programROM[addr]
		}
		return b.vram[addr]
	case addr < 0xC000:
		return b.vram[addr]
	case addr < 0xC010:
		return b.palette[addr-0xC000]
	case addr >= 0xC804 && addr < 0xC808:
		b.primeWidgetInputs()
		return b.widgetPIA.Read(uint8(addr - 0xC804))
	case addr >= 0xC80C && addr < 0xC810:
		return b.romPIA.Read(uint8(addr - 0xC80C))
	case addr == 0xC900:
		return b.romBank
	case addr >= 0xCA00 && addr < 0xCA08:
		return 0xFF // blitter registers are write-only
	case addr >= 0xCB00 && addr < 0xCC00:
		return uint8(b.scanline)
	case addr >= 0xCC00 && addr < 0xD000:
		return 0xF0 | (b.cmosRAM.Read(addr-0xCC00) & 0x0F)
	case addr >= 0xD000:
		off := int(addr - 0xD000)
		if b.fixedROM != nil && off < len(b.fixedROM) {
			return b.fixedROM[off]
		}
		return 0xFF
	}
	return 0xFF
}

func (m *mainBus) Write(master bus.Master, addr uint16, data uint8) {
	b := m.b()
	switch {
	case addr < 0xC000:
		b.vram[addr] = data
	case addr < 0xC010:
		b.palette[addr-0xC000] = data
	case addr >= 0xC804 && addr < 0xC808:
		b.primeWidgetInputs()
		b.widgetPIA.Write(uint8(addr-0xC804), data)
	case addr >= 0xC80C && addr < 0xC810:
		b.romPIA.Write(uint8(addr-0xC80C), data)
	case addr == 0xC900:
		b.romBank = data
	case addr >= 0xCA00 && addr < 0xCA08:
		b.blit.WriteRegister(uint8(addr-0xCA00), data)
	case addr >= 0xCB00 && addr < 0xCC00:
		b.watchdog = 0
	case addr >= 0xCC00 && addr < 0xD000:
		b.cmosRAM.Write(addr-0xCC00, data&0x0F)
	// 0xD000-0xFFFF is the fixed program ROM: not writable.
	}
}

// primeWidgetInputs refreshes the Widget PIA's input latches immediately
// before a main-CPU access touches its register window, so a game's input
// wiring (Joust's port-A mux, Robotron's direct stick mapping) is always
// current at read time.
func (b *Board) primeWidgetInputs() {
	b.widgetPIA.SetInputA(b.widgetInputA.PortAInput(b.widgetPIA.CB2Output()))
	b.widgetPIA.SetInputB(b.widgetInputB)
}

func (m *mainBus) IsHaltedFor(master bus.Master) bool {
	return m.b().blit.IsActive()
}

func (m *mainBus) CheckInterrupts(target bus.Master) bus.InterruptState {
	b := m.b()
	irq := b.romPIA.IRQA() || b.romPIA.IRQB() || b.widgetPIA.IRQA() || b.widgetPIA.IRQB()
	return bus.InterruptState{IRQ: irq}
}

// soundBus is the sound M6800's view of a Board: it sits on a physically
// separate bus from the main CPU, with its own RAM, the sound PIA, and a
// 4KB ROM mirrored across its upper address space, per spec.md §4.5.
type soundBus Board

func (s *soundBus) b() *Board { return (*Board)(s) }

func (s *soundBus) Read(master bus.Master, addr uint16) uint8 {
	b := s.b()
	switch {
	case addr < 0x0100:
		return b.soundRAM[addr]
	case addr >= 0x0400 && addr < 0x0404:
		return b.soundPIA.Read(uint8(addr - 0x0400))
	case addr >= 0xB000:
		if b.soundROM != nil {
			return b.soundROM[addr&0x0FFF]
		}
	}
	return 0xFF
}

func (s *soundBus) Write(master bus.Master, addr uint16, data uint8) {
	b := s.b()
	switch {
	case addr < 0x0100:
		b.soundRAM[addr] = data
	case addr >= 0x0400 && addr < 0x0404:
		b.soundPIA.Write(uint8(addr-0x0400), data)
	// the mirrored sound ROM is not writable.
	}
}

func (s *soundBus) IsHaltedFor(master bus.Master) bool { return false }

func (s *soundBus) CheckInterrupts(target bus.Master) bus.InterruptState {
	b := s.b()
	return bus.InterruptState{IRQ: b.soundPIA.IRQA() || b.soundPIA.IRQB()}
}
