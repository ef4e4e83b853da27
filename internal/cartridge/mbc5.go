package cartridge

// mbc5 supports up to 8 MiB of ROM and 128 KiB of RAM. Unlike the
// earlier controllers, ROM bank 0 can be mapped into 0x4000-0x7FFF.
//
//	0x0000-0x1FFF  RAM enable (0x0A in the low nibble)
//	0x2000-0x2FFF  ROM bank, low 8 bits
//	0x3000-0x3FFF  ROM bank, bit 8
//	0x4000-0x5FFF  RAM bank, 4 bits (bit 3 drives the motor on rumble carts)
type mbc5 struct {
	*banks

	romLow, romHigh uint8
	hasRumble       bool
	rumble          func(on bool)
	rumbling        bool
}

func newMBC5(b *banks, hasRumble bool, rumble func(on bool)) *mbc5 {
	return &mbc5{banks: b, romLow: 1, hasRumble: hasRumble, rumble: rumble}
}

func (m *mbc5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.setRAMEnabled(value)
	case address < 0x3000:
		m.romLow = value
		m.setROMBank(int(m.romHigh)<<8 | int(m.romLow))
	case address < 0x4000:
		m.romHigh = value & 0x01
		m.setROMBank(int(m.romHigh)<<8 | int(m.romLow))
	case address < 0x6000:
		if m.hasRumble {
			m.setRumble(value&0x08 != 0)
			value &= 0x07
		}
		m.setRAMBank(int(value & 0x0F))
	}
}

func (m *mbc5) setRumble(on bool) {
	if on == m.rumbling {
		return
	}
	m.rumbling = on
	if m.rumble != nil {
		m.rumble(on)
	}
}
