package cmos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patsoffice/arcadecore/device/cmos"
)

func TestNewIsZeroed(t *testing.T) {
	r := cmos.New()
	for i := uint16(0); i < 1024; i++ {
		assert.Equal(t, uint8(0), r.Read(i))
	}
}

func TestReadWriteBasic(t *testing.T) {
	r := cmos.New()
	r.Write(10, 0x42)
	assert.Equal(t, uint8(0x42), r.Read(10))
}

func TestOffsetMaskingWrapsAt1024(t *testing.T) {
	r := cmos.New()
	r.Write(0, 0x11)
	assert.Equal(t, uint8(0x11), r.Read(1024))
	assert.Equal(t, uint8(0x11), r.Read(2048))
}

func TestOffsetMaskingHighBits(t *testing.T) {
	r := cmos.New()
	r.Write(0x0401, 0x77) // 0x0401 & 0x03FF == 1
	assert.Equal(t, uint8(0x77), r.Read(1))
}

func TestLastValidOffset(t *testing.T) {
	r := cmos.New()
	r.Write(1023, 0x99)
	assert.Equal(t, uint8(0x99), r.Read(1023))
}

func TestLoadFromExactSize(t *testing.T) {
	src := make([]byte, 1024)
	src[0] = 0xAB
	src[1023] = 0xCD
	r := cmos.New()
	r.LoadFrom(src)
	assert.Equal(t, uint8(0xAB), r.Read(0))
	assert.Equal(t, uint8(0xCD), r.Read(1023))
}

func TestLoadFromShortSlice(t *testing.T) {
	src := []byte{0x01, 0x02, 0x03}
	r := cmos.New()
	r.LoadFrom(src)
	assert.Equal(t, uint8(0x01), r.Read(0))
	assert.Equal(t, uint8(0x02), r.Read(1))
	assert.Equal(t, uint8(0x03), r.Read(2))
	assert.Equal(t, uint8(0), r.Read(3))
}

func TestLoadFromLongSlice(t *testing.T) {
	src := make([]byte, 2048)
	for i := range src {
		src[i] = 0xFF
	}
	r := cmos.New()
	r.LoadFrom(src)
	assert.Equal(t, uint8(0xFF), r.Read(1023))
}

func TestSnapshotRoundtrip(t *testing.T) {
	r := cmos.New()
	r.Write(5, 0x55)
	snap := r.Snapshot()

	r2 := cmos.New()
	r2.LoadFrom(snap[:])
	assert.Equal(t, uint8(0x55), r2.Read(5))
}
