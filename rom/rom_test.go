package rom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/rom"
)

func TestSetGetIsCaseInsensitive(t *testing.T) {
	s := rom.NewSet()
	s.Put("Program.ROM", []byte{1, 2, 3})

	data, ok := s.Get("program.rom")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestFindByCRC32(t *testing.T) {
	s := rom.NewSet()
	data := []byte("123456789")
	s.Put("vectors.bin", data)

	found, ok := s.FindByCRC32(0xCBF43926)
	require.True(t, ok)
	assert.Equal(t, data, found)

	_, ok = s.FindByCRC32(0xDEADBEEF)
	assert.False(t, ok)
}

func TestRegionLoadByCRC32PrefersCRCOverName(t *testing.T) {
	s := rom.NewSet()
	// stored under an unrelated filename; must still be found by CRC32
	s.Put("unexpected_name.bin", []byte("123456789"))

	region := &rom.Region{
		Size: 9,
		Entries: []rom.Entry{
			{Name: "expected_name.bin", Size: 9, Offset: 0, CRC32: []uint32{0xCBF43926}},
		},
	}

	data, err := region.Load("test-region", s, true)
	require.NoError(t, err)
	assert.Equal(t, []byte("123456789"), data)
}

func TestRegionLoadFallsBackToName(t *testing.T) {
	s := rom.NewSet()
	s.Put("rom1.bin", []byte{0xAA, 0xBB})

	region := &rom.Region{
		Size: 2,
		Entries: []rom.Entry{
			{Name: "rom1.bin", Size: 2, Offset: 0, CRC32: []uint32{0x11111111}},
		},
	}

	// verifyChecksums=false: a name-matched file with the wrong CRC32 is
	// still accepted (useful for bad-dump or hacked ROM sets).
	data, err := region.Load("test-region", s, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, data)
}

func TestRegionLoadRejectsChecksumMismatchWhenVerifying(t *testing.T) {
	s := rom.NewSet()
	s.Put("rom1.bin", []byte{0xAA, 0xBB})

	region := &rom.Region{
		Size: 2,
		Entries: []rom.Entry{
			{Name: "rom1.bin", Size: 2, Offset: 0, CRC32: []uint32{0x11111111}},
		},
	}

	_, err := region.Load("test-region", s, true)
	require.Error(t, err)

	var loadErr *rom.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, loadErr, rom.ErrChecksumMismatch)
}

func TestRegionLoadMissingFile(t *testing.T) {
	s := rom.NewSet()

	region := &rom.Region{
		Size: 2,
		Entries: []rom.Entry{
			{Name: "missing.bin", Size: 2, Offset: 0, CRC32: nil},
		},
	}

	_, err := region.Load("test-region", s, true)
	require.Error(t, err)

	var loadErr *rom.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, loadErr, rom.ErrMissingFile)
}

func TestRegionLoadSizeMismatch(t *testing.T) {
	s := rom.NewSet()
	s.Put("rom1.bin", []byte{0xAA, 0xBB, 0xCC})

	region := &rom.Region{
		Size: 2,
		Entries: []rom.Entry{
			{Name: "rom1.bin", Size: 2, Offset: 0, CRC32: nil},
		},
	}

	_, err := region.Load("test-region", s, true)
	require.Error(t, err)

	var loadErr *rom.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, loadErr, rom.ErrSizeMismatch)
}

func TestRegionLoadAssemblesMultipleEntries(t *testing.T) {
	s := rom.NewSet()
	s.Put("a.bin", []byte{0x11, 0x22})
	s.Put("b.bin", []byte{0x33, 0x44})

	region := &rom.Region{
		Size: 4,
		Entries: []rom.Entry{
			{Name: "a.bin", Size: 2, Offset: 0, CRC32: nil},
			{Name: "b.bin", Size: 2, Offset: 2, CRC32: nil},
		},
	}

	data, err := region.Load("test-region", s, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, data)
}

func TestCRC32MatchesIEEEVectors(t *testing.T) {
	s := rom.NewSet()
	s.Put("empty.bin", []byte{})
	s.Put("single.bin", []byte{0x00})

	_, ok := s.FindByCRC32(0)
	assert.True(t, ok)

	found, ok := s.FindByCRC32(0xD202EF8D)
	require.True(t, ok)
	assert.Equal(t, []byte{0x00}, found)
}
