// Package robotron wraps board/williams.Board with Robotron: 2084's ROM
// layout and its direct-wired twin-stick input split, the second of the two
// Williams gen-1 game wrappers spec.md §4.6 names.
package robotron

import (
	"github.com/patsoffice/arcadecore/board/williams"
	"github.com/patsoffice/arcadecore/machine"
	"github.com/patsoffice/arcadecore/machine/registry"
	"github.com/patsoffice/arcadecore/rom"
)

// Logical input IDs this machine exposes.
const (
	InputMoveUp uint8 = iota
	InputMoveDown
	InputMoveLeft
	InputMoveRight
	InputStart1
	InputStart2
	InputFireUp
	InputFireDown
	InputFireLeft
	InputFireRight
)

var programROMRegion = rom.Region{
	Size: 0x9000,
	Entries: []rom.Entry{
		{Name: "rr1", Size: 0x1000, Offset: 0x0000},
		{Name: "rr2", Size: 0x1000, Offset: 0x1000},
		{Name: "rr3", Size: 0x1000, Offset: 0x2000},
		{Name: "rr4", Size: 0x1000, Offset: 0x3000},
		{Name: "rr5", Size: 0x1000, Offset: 0x4000},
		{Name: "rr6", Size: 0x1000, Offset: 0x5000},
		{Name: "rr7", Size: 0x1000, Offset: 0x6000},
		{Name: "rr8", Size: 0x1000, Offset: 0x7000},
		{Name: "rr9", Size: 0x1000, Offset: 0x8000},
	},
}

var fixedROMRegion = rom.Region{
	Size: 0x3000,
	Entries: []rom.Entry{
		{Name: "rrom1", Size: 0x1000, Offset: 0x0000},
		{Name: "rrom2", Size: 0x1000, Offset: 0x1000},
		{Name: "rrom3", Size: 0x1000, Offset: 0x2000},
	},
}

var soundROMRegion = rom.Region{
	Size:    0x1000,
	Entries: []rom.Entry{{Name: "rsound", Size: 0x1000, Offset: 0x0000}},
}

// System is one Robotron: 2084 machine.
type System struct {
	board *williams.Board

	move   uint8 // bits 0-3: up, down, left, right
	starts uint8 // bits 0-1: start1, start2
	fireUD uint8 // bits 0-1: fire up, fire down (goes out on Port A bits 6-7)
	fireLR uint8 // bits 0-1: fire left, fire right (goes out on Port B bits 0-1)
}

// New loads a Robotron ROM set and returns a ready-to-run System.
func New(set *rom.Set) (machine.Machine, error) {
	programROM, err := programROMRegion.Load("program", set, false)
	if err != nil {
		return nil, err
	}
	fixedROM, err := fixedROMRegion.Load("fixed", set, false)
	if err != nil {
		return nil, err
	}
	soundROM, err := soundROMRegion.Load("sound", set, false)
	if err != nil {
		return nil, err
	}

	s := &System{board: williams.New(programROM, fixedROM, soundROM)}
	s.push()
	return s, nil
}

// push recomputes Widget PIA Port A/B from the current input state and
// writes them straight into the board, since Robotron has no input mux to
// consult the PIA's CB2 state through.
func (s *System) push() {
	portA := (s.move & 0x0F) | (s.starts&0x03)<<4 | (s.fireUD&0x03)<<6
	portB := s.fireLR & 0x03
	s.board.SetWidgetPortAInput(portA)
	s.board.SetWidgetPortBInput(portB)
}

func (s *System) DisplaySize() (int, int) {
	return williams.DisplayWidth, williams.DisplayHeight
}

func (s *System) RunFrame() { s.board.RunFrame() }

func (s *System) RenderFrame(dst []byte) { s.board.RenderFrame(dst) }

func (s *System) SetInput(id uint8, pressed bool) {
	setBit := func(reg *uint8, bit uint8) {
		if pressed {
			*reg |= 1 << bit
		} else {
			*reg &^= 1 << bit
		}
	}
	switch id {
	case InputMoveUp:
		setBit(&s.move, 0)
	case InputMoveDown:
		setBit(&s.move, 1)
	case InputMoveLeft:
		setBit(&s.move, 2)
	case InputMoveRight:
		setBit(&s.move, 3)
	case InputStart1:
		setBit(&s.starts, 0)
	case InputStart2:
		setBit(&s.starts, 1)
	case InputFireUp:
		setBit(&s.fireUD, 0)
	case InputFireDown:
		setBit(&s.fireUD, 1)
	case InputFireLeft:
		setBit(&s.fireLR, 0)
	case InputFireRight:
		setBit(&s.fireLR, 1)
	default:
		return
	}
	s.push()
}

func (s *System) InputMap() []machine.InputButton {
	return []machine.InputButton{
		{ID: InputMoveUp, Name: "Move Up"},
		{ID: InputMoveDown, Name: "Move Down"},
		{ID: InputMoveLeft, Name: "Move Left"},
		{ID: InputMoveRight, Name: "Move Right"},
		{ID: InputStart1, Name: "1 Player Start"},
		{ID: InputStart2, Name: "2 Player Start"},
		{ID: InputFireUp, Name: "Fire Up"},
		{ID: InputFireDown, Name: "Fire Down"},
		{ID: InputFireLeft, Name: "Fire Left"},
		{ID: InputFireRight, Name: "Fire Right"},
	}
}

func (s *System) Reset() { s.board.Reset(); s.push() }

func (s *System) SaveNVRAM() []byte { return s.board.SaveNVRAM() }

func (s *System) LoadNVRAM(data []byte) error {
	if len(data) != 1024 {
		return machine.ErrNVRAMSizeMismatch
	}
	s.board.LoadNVRAM(data)
	return nil
}

func (s *System) FillAudio(buffer []int16) int { return s.board.FillAudio(buffer) }

func (s *System) AudioSampleRate() int { return s.board.AudioSampleRate() }

func (s *System) FrameRateHz() float64 { return s.board.FrameRateHz() }

func init() {
	registry.Register(registry.Entry{Name: "robotron", RomName: "robotron", Create: New})
}
