package dkong_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patsoffice/arcadecore/device/dkong"
)

func absInt16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func TestNewIsSilentUntilLatched(t *testing.T) {
	d := dkong.New()
	for i := 0; i < 1000; i++ {
		assert.Equal(t, int16(0), d.GenerateSample())
	}
}

func TestJumpRisingEdgeProducesBoundedOutputThenDecays(t *testing.T) {
	d := dkong.New()
	d.WriteLatch(1, true) // bit 1 rising edge arms the jump one-shot

	sawNonZero := false
	for i := 0; i < int(0.5*44100)+10; i++ {
		s := d.GenerateSample()
		if absInt16(s) > 0 {
			sawNonZero = true
		}
	}
	assert.True(t, sawNonZero, "expected jump one-shot to produce audible output")

	// Past the one-shot's duration the jump voice should have stopped
	// contributing; generate a further batch and expect silence (no other
	// voice is latched).
	for i := 0; i < 1000; i++ {
		assert.Equal(t, int16(0), d.GenerateSample())
	}
}

func TestStompRisingEdgeProducesBoundedOutputThenDecays(t *testing.T) {
	d := dkong.New()
	d.WriteLatch(2, true) // bit 2 rising edge arms the stomp one-shot

	sawNonZero := false
	for i := 0; i < int(0.25*44100)+10; i++ {
		s := d.GenerateSample()
		if absInt16(s) > 0 {
			sawNonZero = true
		}
	}
	assert.True(t, sawNonZero, "expected stomp one-shot to produce audible output")

	for i := 0; i < 1000; i++ {
		assert.Equal(t, int16(0), d.GenerateSample())
	}
}

func TestWalkToneIsContinuousWhileLatched(t *testing.T) {
	d := dkong.New()
	d.WriteLatch(0, true)

	sawNonZero := false
	for i := 0; i < 4410; i++ {
		if absInt16(d.GenerateSample()) > 0 {
			sawNonZero = true
		}
	}
	assert.True(t, sawNonZero, "expected the walk VCO to produce continuous tone while latched")
}

func TestLatchFallingEdgeDoesNotRearm(t *testing.T) {
	d := dkong.New()
	d.WriteLatch(1, true)
	d.WriteLatch(1, false)
	d.WriteLatch(1, false) // no rising edge here, should not re-arm

	// Drain past the one-shot's duration.
	for i := 0; i < int(0.5*44100)+10; i++ {
		d.GenerateSample()
	}
	for i := 0; i < 1000; i++ {
		assert.Equal(t, int16(0), d.GenerateSample())
	}
}

func TestResetReturnsToSilentPowerOnState(t *testing.T) {
	d := dkong.New()
	d.WriteLatch(0, true)
	d.WriteLatch(1, true)
	d.GenerateSample()

	d.Reset()

	for i := 0; i < 100; i++ {
		assert.Equal(t, int16(0), d.GenerateSample())
	}
}
