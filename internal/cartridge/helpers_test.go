package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestROM builds a ROM image with a valid header for the given
// controller byte and size codes. The first two bytes of every bank hold
// the bank number, little-endian.
func newTestROM(typ Type, romCode, ramCode uint8) []byte {
	size := (32 * 1024) << romCode
	rom := make([]byte, size)
	for bank := 0; bank < size/0x4000; bank++ {
		rom[bank*0x4000] = uint8(bank)
		rom[bank*0x4000+1] = uint8(bank >> 8)
	}

	copy(rom[0x0104:], logo)
	copy(rom[0x0134:], "TESTROM")
	rom[0x0147] = uint8(typ)
	rom[0x0148] = romCode
	rom[0x0149] = ramCode
	rom[0x014D] = HeaderChecksum(rom)
	sum := GlobalChecksum(rom)
	rom[0x014E], rom[0x014F] = uint8(sum>>8), uint8(sum)
	return rom
}

func newTestCartridge(t *testing.T, typ Type, romCode, ramCode uint8, opts ...Opt) *Cartridge {
	t.Helper()
	c, err := New(newTestROM(typ, romCode, ramCode), opts...)
	require.NoError(t, err)
	return c
}

// switchableBank returns the bank mapped at 0x4000-0x7FFF.
func switchableBank(c *Cartridge) int {
	return int(c.Read(0x4000)) | int(c.Read(0x4001))<<8
}

type fakeClock struct {
	now int64
}

func (c *fakeClock) Now() int64 { return c.now }

func (c *fakeClock) advance(seconds int64) { c.now += seconds }

type ramWrite struct {
	bank, offset int
	value        uint8
}

// recordWrites returns an option collecting RAM notifications into w.
func recordWrites(w *[]ramWrite) Opt {
	return WithRAMChanged(func(bank, offset int, value uint8) {
		*w = append(*w, ramWrite{bank, offset, value})
	})
}
