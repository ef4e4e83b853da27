package cartridge

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/memory"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// RAMChangedFunc is notified of every write accepted by cartridge RAM.
type RAMChangedFunc func(bank, offset int, value uint8)

// MemoryBankController maps the banks of a cartridge into the three
// cartridge windows of the address space, and interprets writes to the
// ROM area as control register writes.
type MemoryBankController interface {
	// StaticROM is mapped at 0x0000-0x3FFF.
	StaticROM() memory.Segment
	// SwitchableROM is mapped at 0x4000-0x7FFF.
	SwitchableROM() memory.Segment
	// SwitchableRAM is mapped at 0xA000-0xBFFF.
	SwitchableRAM() memory.Segment

	// Write handles a write to 0x0000-0x7FFF.
	Write(address uint16, value uint8)

	// RAMContent returns every RAM bank concatenated in bank order.
	RAMContent() []byte
	// LoadRAMContent replaces the RAM banks with the given content.
	LoadRAMContent(data []byte) error
	// SetRAMChanged sets the function notified of RAM writes.
	SetRAMChanged(fn RAMChangedFunc)
}

// banks holds the storage shared by every controller, and the state
// that selects the mapped banks.
type banks struct {
	rom []memory.Segment
	ram []*memory.Buffer

	// ramViews has one gated view per RAM bank, or a single stand-in
	// when the cartridge has no RAM.
	ramViews []memory.Segment

	romBank    int
	ramBank    int
	ramEnabled bool
	ramChanged RAMChangedFunc

	log log.Logger
}

// newBanks splits rom into info.ROMBanks banks and allocates the RAM
// banks. Space beyond the end of the image is zero-filled.
func newBanks(rom []byte, info Info, l log.Logger) *banks {
	b := &banks{
		rom:     make([]memory.Segment, info.ROMBanks),
		romBank: 1,
		log:     l,
	}
	for i := range b.rom {
		start := i * types.ROMBankSize
		var src []byte
		if start < len(rom) {
			src = rom[start:]
		}
		b.rom[i] = readOnly(memory.NewBufferFrom(types.ROMBankSize, src))
	}

	if info.RAMBanks == 0 || info.Controller == MBC2 {
		b.ramViews = []memory.Segment{memory.NewStatic(types.RAMBankSize)}
		return b
	}
	b.ram = make([]*memory.Buffer, info.RAMBanks)
	b.ramViews = make([]memory.Segment, info.RAMBanks)
	for i := range b.ram {
		b.ram[i] = memory.NewBuffer(types.RAMBankSize)
		b.ramViews[i] = b.gate(i, b.ram[i])
	}
	return b
}

// readOnly wraps a segment so that writes to it are dropped.
func readOnly(s memory.Segment) memory.Segment {
	d := memory.Decorate(s)
	d.OnWrite = func(uint16, uint8, memory.WriteFunc) {}
	return d
}

// gate wraps a RAM bank so that it reads 0xFF and drops writes while
// RAM is disabled, and reports accepted writes to ramChanged.
func (b *banks) gate(bank int, s memory.Segment) memory.Segment {
	d := memory.Decorate(s)
	d.OnRead = func(offset uint16, next memory.ReadFunc) uint8 {
		if !b.ramEnabled {
			return 0xFF
		}
		return next(offset)
	}
	d.OnWrite = func(offset uint16, value uint8, next memory.WriteFunc) {
		if !b.ramEnabled {
			return
		}
		next(offset, value)
		if b.ramChanged != nil {
			b.ramChanged(bank, int(offset), value)
		}
	}
	return d
}

func (b *banks) StaticROM() memory.Segment {
	return b.rom[0]
}

func (b *banks) SwitchableROM() memory.Segment {
	return b.rom[b.romBank%len(b.rom)]
}

func (b *banks) SwitchableRAM() memory.Segment {
	return b.ramViews[b.ramBank%len(b.ramViews)]
}

func (b *banks) SetRAMChanged(fn RAMChangedFunc) {
	b.ramChanged = fn
}

func (b *banks) RAMContent() []byte {
	out := make([]byte, 0, len(b.ram)*types.RAMBankSize)
	for _, bank := range b.ram {
		out = append(out, bank.Bytes()...)
	}
	return out
}

func (b *banks) LoadRAMContent(data []byte) error {
	if want := len(b.ram) * types.RAMBankSize; len(data) != want {
		return ramSizeError(want, len(data))
	}
	for i, bank := range b.ram {
		copy(bank.Bytes(), data[i*types.RAMBankSize:])
	}
	return nil
}

func ramSizeError(want, got int) error {
	return fmt.Errorf("%w: expected %d bytes, got %d", ErrRAMSize, want, got)
}

// setRAMEnabled applies the enable convention shared by every
// controller with an enable register: 0x0A enables RAM, any other value
// disables it.
func (b *banks) setRAMEnabled(value uint8) {
	enabled := value == 0x0A
	if enabled != b.ramEnabled {
		b.log.Debugf("cartridge RAM enabled: %t", enabled)
	}
	b.ramEnabled = enabled
}

func (b *banks) setROMBank(bank int) {
	if bank != b.romBank {
		b.log.Debugf("switching ROM bank %d -> %d", b.romBank, bank)
	}
	b.romBank = bank
}

func (b *banks) setRAMBank(bank int) {
	if bank != b.ramBank {
		b.log.Debugf("switching RAM bank %d -> %d", b.ramBank, bank)
	}
	b.ramBank = bank
}

// newController returns the controller described by info.
func newController(rom []byte, info Info, cfg *config) (MemoryBankController, error) {
	b := newBanks(rom, info, cfg.log)
	switch info.Controller {
	case NoMBC:
		return newROMOnly(b), nil
	case MBC1:
		return newMBC1(b), nil
	case MBC2:
		return newMBC2(b), nil
	case MBC3:
		return newMBC3(b, info.HasTimer, cfg.clock), nil
	case MBC5:
		var rumble func(bool)
		if info.HasRumble {
			rumble = cfg.rumble
		}
		return newMBC5(b, info.HasRumble, rumble), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedController, info.Controller)
}
