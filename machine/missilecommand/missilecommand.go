// Package missilecommand wraps board/atari.Board with Missile Command's
// ROM layout, trackball-as-delta-accumulator input, and cocktail/cabinet
// switch wiring — the Atari sibling board spec.md §4.6 and its expansion
// name alongside the two Williams gen-1 wrappers.
package missilecommand

import (
	"github.com/patsoffice/arcadecore/board/atari"
	"github.com/patsoffice/arcadecore/machine"
	"github.com/patsoffice/arcadecore/machine/registry"
	"github.com/patsoffice/arcadecore/rom"
)

// Logical input IDs this machine exposes.
const (
	InputCoin uint8 = iota
	InputStart1
	InputStart2
	InputFireLeft
	InputFireCenter
	InputFireRight
	InputTrackballLeft
	InputTrackballRight
	InputTrackballUp
	InputTrackballDown
)

// programROMRegion is the 12KB program ROM at 0x5000-0x7FFF, assembled from
// six 2KB chips. CRC32 values are the parent-set checksums from the
// original cabinet's documented ROM dump list; missile_command_2's
// alternate kl1 revision is accepted as a second entry on that chip.
var programROMRegion = rom.Region{
	Size: 0x3000,
	Entries: []rom.Entry{
		{Name: "035820-02.h1", Size: 0x0800, Offset: 0x0000, CRC32: []uint32{0x7a62ce6a}},
		{Name: "035821-02.jk1", Size: 0x0800, Offset: 0x0800, CRC32: []uint32{0xdf3bd57f}},
		{Name: "035822-03e.kl1", Size: 0x0800, Offset: 0x1000, CRC32: []uint32{0x1a2f599a, 0xa1cd384a}},
		{Name: "035823-02.lm1", Size: 0x0800, Offset: 0x1800, CRC32: []uint32{0x82e552bb}},
		{Name: "035824-02.np1", Size: 0x0800, Offset: 0x2000, CRC32: []uint32{0x606e42e0}},
		{Name: "035825-02.r1", Size: 0x0800, Offset: 0x2800, CRC32: []uint32{0xf752eaeb}},
	},
}

// System is one Missile Command machine.
type System struct {
	board *atari.Board
}

// New loads a Missile Command ROM set and returns a ready-to-run System.
func New(set *rom.Set) (machine.Machine, error) {
	programROM, err := programROMRegion.Load("program", set, true)
	if err != nil {
		return nil, err
	}

	return &System{board: atari.New(programROM)}, nil
}

func (s *System) DisplaySize() (int, int) {
	return atari.DisplayWidth, atari.DisplayHeight
}

func (s *System) RunFrame() { s.board.RunFrame() }

func (s *System) RenderFrame(dst []byte) { s.board.RenderFrame(dst) }

// SetInput maps a logical button onto the board's hardware-named switch or
// trackball-direction setters. The trackball directions are held, not
// pulsed: the board accumulates position deltas itself for as long as a
// direction stays pressed, the same "digital trackball" simplification
// spec.md's Open Questions resolve this board to (see DESIGN.md).
func (s *System) SetInput(id uint8, pressed bool) {
	switch id {
	case InputCoin:
		s.board.SetSwitchCoin(pressed)
	case InputStart1:
		s.board.SetSwitchStart1(pressed)
	case InputStart2:
		s.board.SetSwitchStart2(pressed)
	case InputFireLeft:
		s.board.SetFireLeft(pressed)
	case InputFireCenter:
		s.board.SetFireCenter(pressed)
	case InputFireRight:
		s.board.SetFireRight(pressed)
	case InputTrackballLeft:
		s.board.SetTrackballLeft(pressed)
	case InputTrackballRight:
		s.board.SetTrackballRight(pressed)
	case InputTrackballUp:
		s.board.SetTrackballUp(pressed)
	case InputTrackballDown:
		s.board.SetTrackballDown(pressed)
	}
}

func (s *System) InputMap() []machine.InputButton {
	return []machine.InputButton{
		{ID: InputCoin, Name: "Coin"},
		{ID: InputStart1, Name: "1 Player Start"},
		{ID: InputStart2, Name: "2 Player Start"},
		{ID: InputFireLeft, Name: "Fire Left"},
		{ID: InputFireCenter, Name: "Fire Center"},
		{ID: InputFireRight, Name: "Fire Right"},
		{ID: InputTrackballLeft, Name: "Trackball Left"},
		{ID: InputTrackballRight, Name: "Trackball Right"},
		{ID: InputTrackballUp, Name: "Trackball Up"},
		{ID: InputTrackballDown, Name: "Trackball Down"},
	}
}

func (s *System) Reset() { s.board.Reset() }

// SaveNVRAM always returns an empty slice: Missile Command's original
// cabinet has no battery-backed storage.
func (s *System) SaveNVRAM() []byte { return s.board.SaveNVRAM() }

// LoadNVRAM accepts only an empty slice, since this machine has nothing to
// restore.
func (s *System) LoadNVRAM(data []byte) error {
	if len(data) != 0 {
		return machine.ErrNVRAMSizeMismatch
	}
	return nil
}

func (s *System) FillAudio(buffer []int16) int { return s.board.FillAudio(buffer) }

func (s *System) AudioSampleRate() int { return s.board.AudioSampleRate() }

func (s *System) FrameRateHz() float64 { return s.board.FrameRateHz() }

func init() {
	registry.Register(registry.Entry{Name: "missilecommand", RomName: "missile", Create: New})
}
