package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMBC1_ROMBank(t *testing.T) {
	// 64 banks
	c := newTestCartridge(t, MBC1ROM, 0x05, 0)

	assert.Equal(t, 1, switchableBank(c))

	c.Write(0x2000, 0x05)
	assert.Equal(t, 5, switchableBank(c))

	// 0 selects 1
	c.Write(0x3FFF, 0x00)
	assert.Equal(t, 1, switchableBank(c))

	// only the low 5 bits are used
	c.Write(0x2000, 0xE3)
	assert.Equal(t, 3, switchableBank(c))

	// the secondary register supplies bits 5-6 in ROM mode
	c.Write(0x4000, 0x01)
	assert.Equal(t, 0x23, switchableBank(c))

	// bank 0x20 cannot be selected, it maps to 0x21
	c.Write(0x2000, 0x00)
	assert.Equal(t, 0x21, switchableBank(c))

	// bank 0 is always mapped at 0x0000
	assert.Equal(t, uint8(0), c.Read(0x0000))
}

func TestMBC1_Mode(t *testing.T) {
	// 64 banks, 4 RAM banks
	c := newTestCartridge(t, MBC1RAMBATT, 0x05, 0x03)
	c.Write(0x0000, 0x0A)

	// any nonzero value selects RAM banking
	c.Write(0x6000, 0x02)
	c.Write(0x4000, 0x01)
	c.Write(0x2000, 0x02)
	assert.Equal(t, 0x02, switchableBank(c))
	c.Write(0xA000, 0x77)

	c.Write(0x6000, 0x00)
	assert.Equal(t, 0x22, switchableBank(c))
	assert.Equal(t, uint8(0x00), c.Read(0xA000), "ROM mode maps RAM bank 0")

	c.Write(0x6000, 0xFE)
	assert.Equal(t, 0x02, switchableBank(c))
	assert.Equal(t, uint8(0x77), c.Read(0xA000))
}

func TestMBC1_ROMBankWraps(t *testing.T) {
	// 4 banks
	c := newTestCartridge(t, MBC1ROM, 0x01, 0)

	c.Write(0x2000, 0x05)
	assert.Equal(t, 1, switchableBank(c))
	c.Write(0x2000, 0x1F)
	assert.Equal(t, 3, switchableBank(c))
}

func TestMBC1_RAMBank(t *testing.T) {
	c := newTestCartridge(t, MBC1RAMBATT, 0x06, 0x03)
	c.Write(0x0000, 0x0A)

	// RAM mode: the secondary register selects the RAM bank
	c.Write(0x6000, 0x01)
	for bank := uint8(0); bank < 4; bank++ {
		c.Write(0x4000, bank)
		c.Write(0xA000, 0x10+bank)
	}
	// and no longer affects the ROM bank
	c.Write(0x2000, 0x02)
	assert.Equal(t, 2, switchableBank(c))

	for bank := uint8(0); bank < 4; bank++ {
		c.Write(0x4000, bank)
		assert.Equal(t, 0x10+bank, c.Read(0xA000))
	}

	// ROM mode always maps RAM bank 0
	c.Write(0x6000, 0x00)
	assert.Equal(t, uint8(0x10), c.Read(0xA000))
	assert.Equal(t, 0x62, switchableBank(c))
}

func TestMBC1_RAMBankWraps(t *testing.T) {
	// a single 8 KiB bank
	var writes []ramWrite
	c := newTestCartridge(t, MBC1RAM, 0x00, 0x02, recordWrites(&writes))
	c.Write(0x0000, 0x0A)
	c.Write(0x6000, 0x01)
	c.Write(0x4000, 0x03)

	c.Write(0xA123, 0x77)
	c.Write(0x4000, 0x00)
	assert.Equal(t, uint8(0x77), c.Read(0xA123))
	assert.Equal(t, []ramWrite{{0, 0x123, 0x77}}, writes)
}
