package robotron

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
	s.push()
	return s
}

func TestInputMapCoversEveryDefinedInputID(t *testing.T) {
	s := newTestSystem()
	ids := map[uint8]bool{}
	for _, b := range s.InputMap() {
		ids[b.ID] = true
	}
	for _, id := range []uint8{
		InputMoveUp, InputMoveDown, InputMoveLeft, InputMoveRight,
		InputStart1, InputStart2,
		InputFireUp, InputFireDown, InputFireLeft, InputFireRight,
	} {
		assert.True(t, ids[id], "missing input id %d in InputMap", id)
	}
}

func TestSetInputRecordsMoveAndFireStickState(t *testing.T) {
	s := newTestSystem()
	s.SetInput(InputMoveUp, true)
	s.SetInput(InputFireLeft, true)

	assert.Equal(t, uint8(0x01), s.move&0x0F)
	assert.Equal(t, uint8(0x01), s.fireLR&0x03)
}

func TestLoadNVRAMRejectsWrongSize(t *testing.T) {
	s := newTestSystem()
	assert.Error(t, s.LoadNVRAM([]byte{1, 2, 3}))
	assert.NoError(t, s.LoadNVRAM(make([]byte, 1024)))
}

func TestResetKeepsHeldInputState(t *testing.T) {
	s := newTestSystem()
	s.SetInput(InputStart1, true)
	s.Reset()
	assert.Equal(t, uint8(0x01), s.starts&0x03)
}
