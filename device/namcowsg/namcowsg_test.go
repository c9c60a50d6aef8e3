package namcowsg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/device/namcowsg"
)

func sawtoothROM() []byte {
	rom := make([]byte, 256)
	for wave := 0; wave < 8; wave++ {
		for i := 0; i < 32; i++ {
			rom[wave*32+i] = uint8(i % 16)
		}
	}
	return rom
}

func TestSilentWhenVolumeIsZero(t *testing.T) {
	w := namcowsg.New(3_072_000)
	w.LoadWaveformROM(sawtoothROM())
	w.SetSoundEnabled(true)

	// Channel 0 frequency set, volume left at zero.
	w.Write(0x10, 0x0F)
	w.Write(0x11, 0x00)
	w.Write(0x12, 0x00)
	w.Write(0x13, 0x00)
	w.Write(0x14, 0x00)

	for i := 0; i < 3_072_000; i++ {
		w.Tick()
	}

	out := make([]int16, 4096)
	n := w.FillAudio(out)
	require.Greater(t, n, 0)
	for i := 0; i < n; i++ {
		assert.Equal(t, int16(0), out[i])
	}
}

func TestSoundDisabledStillProducesSilentSamples(t *testing.T) {
	w := namcowsg.New(3_072_000)
	w.LoadWaveformROM(sawtoothROM())
	w.SetSoundEnabled(false)

	for i := 0; i < 3_072_000; i++ {
		w.Tick()
	}

	out := make([]int16, 4096)
	n := w.FillAudio(out)
	require.Greater(t, n, 0)
	for i := 0; i < n; i++ {
		assert.Equal(t, int16(0), out[i])
	}
}

func TestResetClearsVoicesAndBuffer(t *testing.T) {
	w := namcowsg.New(3_072_000)
	w.LoadWaveformROM(sawtoothROM())
	w.SetSoundEnabled(true)
	w.Write(0x15, 0x0F) // channel 0 volume
	for i := 0; i < 1_000; i++ {
		w.Tick()
	}

	w.Reset()

	out := make([]int16, 16)
	n := w.FillAudio(out)
	assert.Equal(t, 0, n)
}

func TestFillAudioDrainsAtMostRequested(t *testing.T) {
	w := namcowsg.New(3_072_000)
	w.LoadWaveformROM(sawtoothROM())
	w.SetSoundEnabled(true)
	w.Write(0x10, 0x0F)
	w.Write(0x15, 0x0F)
	for i := 0; i < 3_072_000; i++ {
		w.Tick()
	}

	small := make([]int16, 3)
	n := w.FillAudio(small)
	assert.LessOrEqual(t, n, 3)
}
