package types

// Address represents a memory address in the Game Boy's memory,
// which can be read from or written to. The MMU holds one per
// address, so routing is a single table lookup on every access.
type Address struct {
	// Read is called when the CPU reads from the address.
	Read func(address uint16) uint8
	// Write is called when the CPU writes to the address.
	Write func(address uint16, value uint8)
}

// Memory map boundaries. Each range is [Start, End].
const (
	ROMBank0Start    uint16 = 0x0000 // static ROM bank
	ROMBank0End      uint16 = 0x3FFF
	ROMBankNStart    uint16 = 0x4000 // switchable ROM bank
	ROMBankNEnd      uint16 = 0x7FFF
	VRAMStart        uint16 = 0x8000
	VRAMEnd          uint16 = 0x9FFF
	ExternalRAMStart uint16 = 0xA000 // switchable cartridge RAM
	ExternalRAMEnd   uint16 = 0xBFFF
	WRAMStart        uint16 = 0xC000
	WRAMEnd          uint16 = 0xDFFF
	EchoStart        uint16 = 0xE000 // mirror of 0xC000 - 0xDDFF
	EchoEnd          uint16 = 0xFDFF
	OAMStart         uint16 = 0xFE00
	OAMEnd           uint16 = 0xFE9F
	UnusableStart    uint16 = 0xFEA0
	UnusableEnd      uint16 = 0xFEFF
	IOStart          uint16 = 0xFF00
	IOEnd            uint16 = 0xFF7F
	HRAMStart        uint16 = 0xFF80
	HRAMEnd          uint16 = 0xFFFE
)

// Sizes of the fixed storage units.
const (
	ROMBankSize = 0x4000 // 16 KiB
	RAMBankSize = 0x2000 // 8 KiB
)

// HardwareAddress is the address of a hardware register
// in the I/O page (0xFF00 - 0xFF7F) or 0xFFFF.
type HardwareAddress = uint16

const (
	// SB holds the byte being transferred over the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port. Writing 0x81 starts a transfer
	// using the internal clock.
	SC HardwareAddress = 0xFF02
	// IF is the interrupt request register.
	IF HardwareAddress = 0xFF0F
	// BDIS disables the boot ROM overlay when written to.
	BDIS HardwareAddress = 0xFF50
	// SVBK selects the WRAM bank mapped at 0xD000 - 0xDFFF (CGB only).
	SVBK HardwareAddress = 0xFF70
	// IE is the interrupt enable register.
	IE HardwareAddress = 0xFFFF
)
