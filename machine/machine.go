// Package machine defines the uniform front-end-facing contract every
// playable system (Joust, Robotron, Missile Command, ...) implements, so a
// front-end can drive any of them without knowing which board or CPU
// cores sit underneath.
package machine

import "github.com/patsoffice/arcadecore/errors"

// ErrNVRAMSizeMismatch is returned by LoadNVRAM when given data of an
// unrecognised size for the target machine.
var ErrNVRAMSizeMismatch = errors.Errorf(errors.NVRAMSizeMismatch, "unexpected length")

// InputButton describes one logical input a Machine exposes to a
// front-end, e.g. for building a key-binding menu.
type InputButton struct {
	ID   uint8
	Name string
}

// Machine is the front-end contract for a complete playable arcade system.
type Machine interface {
	// DisplaySize returns the machine's native pixel dimensions.
	DisplaySize() (width, height int)

	// RunFrame advances the machine by exactly one video frame.
	RunFrame()

	// RenderFrame writes the current frame as packed RGB24 (3 bytes per
	// pixel, row-major, top-to-bottom) into dst, which must be at least
	// width*height*3 bytes.
	RenderFrame(dst []byte)

	// SetInput sets or clears the named button's pressed state.
	SetInput(id uint8, pressed bool)

	// InputMap lists every logical button this machine exposes.
	InputMap() []InputButton

	// Reset pulses the machine's reset line.
	Reset()

	// SaveNVRAM returns a copy of the machine's persistent settings/high
	// score storage.
	SaveNVRAM() []byte

	// LoadNVRAM restores persistent storage previously returned by
	// SaveNVRAM. It returns an error if data is not a recognised size for
	// this machine's NVRAM.
	LoadNVRAM(data []byte) error

	// FillAudio drains up to len(buffer) resampled audio samples into
	// buffer, returning the count written.
	FillAudio(buffer []int16) int

	// AudioSampleRate is the sample rate FillAudio's output is resampled
	// to.
	AudioSampleRate() int

	// FrameRateHz is the machine's native vertical refresh rate.
	FrameRateHz() float64
}
