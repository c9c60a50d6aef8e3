package missilecommand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/board/atari"
	"github.com/patsoffice/arcadecore/rom"
)

// placeholderSet returns a rom.Set with every chip present under its
// canonical filename at the right size, but with arbitrary
// (checksum-mismatching) content — enough to exercise the checksum-mismatch
// path without needing the real cabinet's dumps.
func placeholderSet() *rom.Set {
	set := rom.NewSet()
	for _, e := range programROMRegion.Entries {
		set.Put(e.Name, make([]byte, e.Size))
	}
	return set
}

func TestNewRejectsWrongChecksums(t *testing.T) {
	_, err := New(placeholderSet())
	require.Error(t, err)
	var loadErr *rom.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, rom.ErrChecksumMismatch)
}

func TestNewReportsMissingFile(t *testing.T) {
	set := rom.NewSet()
	_, err := New(set)
	require.Error(t, err)
	assert.ErrorIs(t, err, rom.ErrMissingFile)
}

func newTestSystem() *System {
	return &System{board: atari.New(make([]byte, 0x3000))}
}

func TestDisplaySizeMatchesBoard(t *testing.T) {
	s := newTestSystem()
	w, h := s.DisplaySize()
	assert.Equal(t, atari.DisplayWidth, w)
	assert.Equal(t, atari.DisplayHeight, h)
}

func TestInputMapCoversEveryDefinedInputID(t *testing.T) {
	s := newTestSystem()
	ids := map[uint8]bool{}
	for _, b := range s.InputMap() {
		ids[b.ID] = true
	}
	for _, id := range []uint8{
		InputCoin, InputStart1, InputStart2,
		InputFireLeft, InputFireCenter, InputFireRight,
		InputTrackballLeft, InputTrackballRight, InputTrackballUp, InputTrackballDown,
	} {
		assert.True(t, ids[id], "missing input id %d in InputMap", id)
	}
}

func TestSetInputDoesNotPanicForAnyKnownID(t *testing.T) {
	s := newTestSystem()
	for _, b := range s.InputMap() {
		s.SetInput(b.ID, true)
		s.SetInput(b.ID, false)
	}
}

func TestLoadNVRAMRejectsNonEmptyData(t *testing.T) {
	s := newTestSystem()
	assert.NoError(t, s.LoadNVRAM(nil))
	assert.Error(t, s.LoadNVRAM([]byte{1, 2, 3}))
}

func TestSaveNVRAMIsEmpty(t *testing.T) {
	s := newTestSystem()
	assert.Empty(t, s.SaveNVRAM())
}
