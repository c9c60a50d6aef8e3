// Package joust wraps board/williams.Board with Joust's ROM layout and its
// 74LS157 input multiplexer, the first of the two Williams gen-1 game
// wrappers spec.md §4.6 names.
package joust

import (
	"github.com/patsoffice/arcadecore/board/williams"
	"github.com/patsoffice/arcadecore/machine"
	"github.com/patsoffice/arcadecore/machine/registry"
	"github.com/patsoffice/arcadecore/rom"
)

// Logical input IDs this machine exposes.
const (
	InputP1Left uint8 = iota
	InputP1Right
	InputP1Flap
	InputP2Left
	InputP2Right
	InputP2Flap
	InputStart1
	InputStart2
)

// programROMRegion is the 36KB banked program ROM overlay at 0x0000-0x8FFF:
// nine 4KB chips at 0x1000 increments, per spec.md §6's Joust example.
var programROMRegion = rom.Region{
	Size: 0x9000,
	Entries: []rom.Entry{
		{Name: "jr1", Size: 0x1000, Offset: 0x0000},
		{Name: "jr2", Size: 0x1000, Offset: 0x1000},
		{Name: "jr3", Size: 0x1000, Offset: 0x2000},
		{Name: "jr4", Size: 0x1000, Offset: 0x3000},
		{Name: "jr5", Size: 0x1000, Offset: 0x4000},
		{Name: "jr6", Size: 0x1000, Offset: 0x5000},
		{Name: "jr7", Size: 0x1000, Offset: 0x6000},
		{Name: "jr8", Size: 0x1000, Offset: 0x7000},
		{Name: "jr9", Size: 0x1000, Offset: 0x8000},
	},
}

// fixedROMRegion is the 12KB fixed program ROM at 0xD000-0xFFFF.
var fixedROMRegion = rom.Region{
	Size: 0x3000,
	Entries: []rom.Entry{
		{Name: "jrom1", Size: 0x1000, Offset: 0x0000},
		{Name: "jrom2", Size: 0x1000, Offset: 0x1000},
		{Name: "jrom3", Size: 0x1000, Offset: 0x2000},
	},
}

// soundROMRegion is the 4KB sound ROM.
var soundROMRegion = rom.Region{
	Size:    0x1000,
	Entries: []rom.Entry{{Name: "jsound", Size: 0x1000, Offset: 0x0000}},
}

// System is one Joust machine.
type System struct {
	board *williams.Board

	p1, p2 uint8 // bits 0-2: left, right, flap
	starts uint8 // bits 0-1: start1, start2
}

// New loads a Joust ROM set and returns a ready-to-run System.
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
	s.board.SetWidgetInputSource(s)
	return s, nil
}

// PortAInput implements williams.WidgetInputSource: the 74LS157 mux
// switches bits 0-3 between P1 and P2 on the Widget PIA's CB2 output level,
// with the two start buttons direct-wired onto bits 4-5 regardless of the
// mux's position.
func (s *System) PortAInput(cb2 bool) uint8 {
	var dirs uint8
	if cb2 {
		dirs = s.p1
	} else {
		dirs = s.p2
	}
	return (dirs & 0x07) | (s.starts&0x03)<<4
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
	case InputP1Left:
		setBit(&s.p1, 0)
	case InputP1Right:
		setBit(&s.p1, 1)
	case InputP1Flap:
		setBit(&s.p1, 2)
	case InputP2Left:
		setBit(&s.p2, 0)
	case InputP2Right:
		setBit(&s.p2, 1)
	case InputP2Flap:
		setBit(&s.p2, 2)
	case InputStart1:
		setBit(&s.starts, 0)
	case InputStart2:
		setBit(&s.starts, 1)
	}
}

func (s *System) InputMap() []machine.InputButton {
	return []machine.InputButton{
		{ID: InputP1Left, Name: "P1 Left"},
		{ID: InputP1Right, Name: "P1 Right"},
		{ID: InputP1Flap, Name: "P1 Flap"},
		{ID: InputP2Left, Name: "P2 Left"},
		{ID: InputP2Right, Name: "P2 Right"},
		{ID: InputP2Flap, Name: "P2 Flap"},
		{ID: InputStart1, Name: "1 Player Start"},
		{ID: InputStart2, Name: "2 Player Start"},
	}
}

func (s *System) Reset() { s.board.Reset() }

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
	registry.Register(registry.Entry{Name: "joust", RomName: "joust", Create: New})
}
