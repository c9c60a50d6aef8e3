package joust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/board/williams"
	"github.com/patsoffice/arcadecore/rom"
)

func TestNewReportsMissingFile(t *testing.T) {
	set := rom.NewSet()
	_, err := New(set)
	require.Error(t, err)
	assert.ErrorIs(t, err, rom.ErrMissingFile)
}

func newTestSystem() *System {
	s := &System{board: williams.New(nil, make([]byte, 0x3000), make([]byte, 0x1000))}
	s.board.SetWidgetInputSource(s)
	return s
}

func TestInputMapCoversEveryDefinedInputID(t *testing.T) {
	s := newTestSystem()
	ids := map[uint8]bool{}
	for _, b := range s.InputMap() {
		ids[b.ID] = true
	}
	for _, id := range []uint8{
		InputP1Left, InputP1Right, InputP1Flap,
		InputP2Left, InputP2Right, InputP2Flap,
		InputStart1, InputStart2,
	} {
		assert.True(t, ids[id], "missing input id %d in InputMap", id)
	}
}

func TestPortAInputSelectsPlayerByCB2Level(t *testing.T) {
	s := newTestSystem()
	s.SetInput(InputP1Left, true)
	s.SetInput(InputP2Right, true)
	s.SetInput(InputStart2, true)

	p1Side := s.PortAInput(true)
	p2Side := s.PortAInput(false)

	assert.Equal(t, uint8(0x01), p1Side&0x07)
	assert.Equal(t, uint8(0x02), p2Side&0x07)
	// Starts are wired independently of the mux position on both reads.
	assert.Equal(t, uint8(0x02), p1Side>>4&0x03)
	assert.Equal(t, uint8(0x02), p2Side>>4&0x03)
}

func TestLoadNVRAMRejectsWrongSize(t *testing.T) {
	s := newTestSystem()
	assert.Error(t, s.LoadNVRAM([]byte{1, 2, 3}))
	assert.NoError(t, s.LoadNVRAM(make([]byte, 1024)))
}
