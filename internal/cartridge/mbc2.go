package cartridge

import (
	"github.com/thelolagemann/gomeboy-core/internal/memory"
	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

// mbc2 supports up to 256 KiB of ROM and has 512 half-bytes of RAM built
// in. Both registers live in 0x0000-0x3FFF and are told apart by bit 8
// of the address.
type mbc2 struct {
	*banks

	nibbles *memory.Buffer
	view    memory.Segment
}

func newMBC2(b *banks) *mbc2 {
	m := &mbc2{banks: b, nibbles: memory.NewBuffer(mbc2RAMSize)}

	// only the low nibble of each byte exists, and nothing past 0x1FF
	d := memory.Decorate(m.nibbles)
	d.OnRead = func(offset uint16, next memory.ReadFunc) uint8 {
		if !m.ramEnabled || offset >= mbc2RAMSize {
			return 0xFF
		}
		return next(offset) & 0x0F
	}
	d.OnWrite = func(offset uint16, value uint8, next memory.WriteFunc) {
		if !m.ramEnabled || offset >= mbc2RAMSize {
			return
		}
		value &= 0x0F
		next(offset, value)
		if m.ramChanged != nil {
			m.ramChanged(0, int(offset), value)
		}
	}
	m.view = d
	return m
}

func (m *mbc2) Write(address uint16, value uint8) {
	if address >= 0x4000 {
		return
	}
	if bits.Test(uint8(address>>8), 0) {
		bank := int(value & 0x0F)
		if bank == 0 {
			bank = 1
		}
		m.setROMBank(bank)
		return
	}
	m.setRAMEnabled(value)
}

func (m *mbc2) SwitchableRAM() memory.Segment {
	return m.view
}

func (m *mbc2) RAMContent() []byte {
	return append([]byte(nil), m.nibbles.Bytes()...)
}

func (m *mbc2) LoadRAMContent(data []byte) error {
	if len(data) != mbc2RAMSize {
		return ramSizeError(mbc2RAMSize, len(data))
	}
	for i, v := range data {
		m.nibbles.Write(uint16(i), v&0x0F)
	}
	return nil
}
