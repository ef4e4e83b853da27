package cartridge

// mbc1 supports up to 2 MiB of ROM and 32 KiB of RAM. The 2-bit
// secondary register either extends the ROM bank number or selects the
// RAM bank, depending on the banking mode.
//
//	0x0000-0x1FFF  RAM enable (0x0A in the low nibble)
//	0x2000-0x3FFF  ROM bank, low 5 bits (0 selects 1)
//	0x4000-0x5FFF  RAM bank / ROM bank bits 5-6
//	0x6000-0x7FFF  banking mode (0 = ROM, nonzero = RAM)
type mbc1 struct {
	*banks

	bank1, bank2 uint8
	ramMode      bool
}

func newMBC1(b *banks) *mbc1 {
	return &mbc1{banks: b, bank1: 1}
}

func (m *mbc1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.setRAMEnabled(value)
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	default:
		m.ramMode = value != 0
	}
	m.update()
}

func (m *mbc1) update() {
	if m.ramMode {
		m.setROMBank(int(m.bank1))
		m.setRAMBank(int(m.bank2))
		return
	}
	m.setROMBank(int(m.bank2)<<5 | int(m.bank1))
	m.setRAMBank(0)
}
