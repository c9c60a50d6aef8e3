package errors

// Leading message parts used throughout the core. Keeping them as constants
// means Is/Has callers can't typo a category string.
const (
	// ROM loading
	RomMissingFile        = "missing ROM file: %s"
	RomSizeMismatch       = "ROM size mismatch: %s"
	RomChecksumMismatch   = "ROM checksum mismatch: %s"
	RomIo                 = "ROM io error: %v"
	RomUnknownRegion      = "unknown ROM region: %s"

	// CPU
	UnimplementedOpcode = "unimplemented opcode: $%02X"
	InvalidCPUState     = "invalid CPU state: %s"

	// Bus / memory
	UnmappedRead  = "unmapped read at $%04X"
	UnmappedWrite = "unmapped write at $%04X"

	// Machine / boards
	NVRAMSizeMismatch = "NVRAM size mismatch: %s"
	UnknownMachine    = "unknown machine: %s"
)
