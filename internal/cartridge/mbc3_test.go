package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMBC3_ROMBank(t *testing.T) {
	// 128 banks
	c := newTestCartridge(t, MBC3ROM, 0x06, 0)

	c.Write(0x2000, 0x7F)
	assert.Equal(t, 0x7F, switchableBank(c))
	c.Write(0x2000, 0x00)
	assert.Equal(t, 1, switchableBank(c))
	// bit 7 is ignored
	c.Write(0x2000, 0x85)
	assert.Equal(t, 5, switchableBank(c))
	// the RAM bank register has no effect on the ROM bank
	c.Write(0x4000, 0x03)
	assert.Equal(t, 5, switchableBank(c))
}

func TestMBC3_RAMBank(t *testing.T) {
	var writes []ramWrite
	c := newTestCartridge(t, MBC3RAMBATT, 0x00, 0x03, recordWrites(&writes))
	c.Write(0x0000, 0x0A)

	c.Write(0x4000, 0x02)
	c.Write(0xA042, 0x55)
	assert.Equal(t, []ramWrite{{2, 0x42, 0x55}}, writes)

	c.Write(0x4000, 0x00)
	assert.Equal(t, uint8(0x00), c.Read(0xA042))
	// 0x06 wraps onto bank 2 with only 4 banks
	c.Write(0x4000, 0x06)
	assert.Equal(t, uint8(0x55), c.Read(0xA042))

	// without a timer, the RTC selectors read as open bus
	c.Write(0x4000, RTCSeconds)
	assert.Equal(t, uint8(0xFF), c.Read(0xA000))
	c.Write(0xA000, 0x12)
	c.Write(0x4000, 0x00)
	assert.Equal(t, uint8(0x00), c.Read(0xA000))
}

func newTimerCartridge(t *testing.T, clock *fakeClock) *Cartridge {
	t.Helper()
	c := newTestCartridge(t, MBC3TIMERRAMBATT, 0x00, 0x02, WithClock(clock))
	c.Write(0x0000, 0x0A)
	return c
}

func latch(c *Cartridge) {
	c.Write(0x6000, 0x00)
	c.Write(0x6000, 0x01)
}

func readRTC(c *Cartridge, register uint8) uint8 {
	c.Write(0x4000, register)
	return c.Read(0xA000)
}

func TestMBC3_RTCLatch(t *testing.T) {
	clock := &fakeClock{now: 1_000_000}
	c := newTimerCartridge(t, clock)

	// nothing latched yet
	assert.Equal(t, uint8(0), readRTC(c, RTCSeconds))

	clock.advance(1*86400 + 2*3600 + 3*60 + 4)
	latch(c)
	assert.Equal(t, uint8(4), readRTC(c, RTCSeconds))
	assert.Equal(t, uint8(3), readRTC(c, RTCMinutes))
	assert.Equal(t, uint8(2), readRTC(c, RTCHours))
	assert.Equal(t, uint8(1), readRTC(c, RTCDaysLow))
	assert.Equal(t, uint8(0), readRTC(c, RTCDaysHigh))

	// the latched values do not move with the clock
	clock.advance(30)
	assert.Equal(t, uint8(4), readRTC(c, RTCSeconds))

	// 0x01 alone does not latch
	c.Write(0x6000, 0x01)
	assert.Equal(t, uint8(4), readRTC(c, RTCSeconds))
	c.Write(0x6000, 0x00)
	c.Write(0x6000, 0x02)
	c.Write(0x6000, 0x01)
	assert.Equal(t, uint8(4), readRTC(c, RTCSeconds))

	latch(c)
	assert.Equal(t, uint8(34), readRTC(c, RTCSeconds))

	// every address of the window reads the register
	c.Write(0x4000, RTCHours)
	assert.Equal(t, uint8(2), c.Read(0xB123))
}

func TestMBC3_RTCHalt(t *testing.T) {
	clock := &fakeClock{now: 500}
	c := newTimerCartridge(t, clock)
	clock.advance(10)

	c.Write(0x4000, RTCDaysHigh)
	c.Write(0xA000, 0x40)

	latch(c)
	first := readRTC(c, RTCSeconds)
	assert.Equal(t, uint8(10), first)
	assert.Equal(t, uint8(0x40), readRTC(c, RTCDaysHigh))

	// halted: time passes, the clock does not
	for i := 0; i < 3; i++ {
		clock.advance(100)
		latch(c)
		assert.Equal(t, first, readRTC(c, RTCSeconds))
	}

	// resume, and the clock counts from where it stopped
	c.Write(0x4000, RTCDaysHigh)
	c.Write(0xA000, 0x00)
	clock.advance(15)
	latch(c)
	assert.Equal(t, uint8(25), readRTC(c, RTCSeconds))
	assert.Equal(t, uint8(0x00), readRTC(c, RTCDaysHigh))
}

func TestMBC3_RTCWrite(t *testing.T) {
	clock := &fakeClock{now: 0}
	c := newTimerCartridge(t, clock)

	for register, value := range map[uint8]uint8{
		RTCSeconds: 75,
		RTCMinutes: 61,
		RTCHours:   30,
		RTCDaysLow: 0xFF,
	} {
		c.Write(0x4000, register)
		c.Write(0xA000, value)
	}
	c.Write(0x4000, RTCDaysHigh)
	c.Write(0xA000, 0x01)

	latch(c)
	assert.Equal(t, uint8(59), readRTC(c, RTCSeconds))
	assert.Equal(t, uint8(59), readRTC(c, RTCMinutes))
	assert.Equal(t, uint8(23), readRTC(c, RTCHours))
	assert.Equal(t, uint8(0xFF), readRTC(c, RTCDaysLow))
	assert.Equal(t, uint8(0x01), readRTC(c, RTCDaysHigh))

	// one second later the 9-bit day counter overflows
	clock.advance(1)
	latch(c)
	assert.Equal(t, uint8(0), readRTC(c, RTCSeconds))
	assert.Equal(t, uint8(0), readRTC(c, RTCDaysLow))
	assert.Equal(t, uint8(0x80), readRTC(c, RTCDaysHigh))

	// the overflow flag sticks until it is written
	clock.advance(86400)
	latch(c)
	assert.Equal(t, uint8(1), readRTC(c, RTCDaysLow))
	assert.Equal(t, uint8(0x80), readRTC(c, RTCDaysHigh))

	c.Write(0x4000, RTCDaysHigh)
	c.Write(0xA000, 0x00)
	latch(c)
	assert.Equal(t, uint8(0x00), readRTC(c, RTCDaysHigh))
	assert.Equal(t, uint8(1), readRTC(c, RTCDaysLow))
}

func TestMBC3_RTCDisabled(t *testing.T) {
	clock := &fakeClock{now: 0}
	c := newTimerCartridge(t, clock)
	clock.advance(5)
	latch(c)

	c.Write(0x0000, 0x00)
	assert.Equal(t, uint8(0xFF), readRTC(c, RTCSeconds))
	// writes are dropped while disabled
	c.Write(0xA000, 0x30)
	c.Write(0x0000, 0x0A)
	latch(c)
	assert.Equal(t, uint8(5), readRTC(c, RTCSeconds))
}

func TestMBC3_RTCAccessor(t *testing.T) {
	c := newTestCartridge(t, MBC3TIMERBATT, 0x00, 0x00, WithClock(&fakeClock{}))
	m, ok := c.MBC().(interface{ RTC() *RTC })
	require.True(t, ok)
	assert.NotNil(t, m.RTC())

	// no RAM, the RAM selectors read as the stand-in
	c.Write(0x0000, 0x0A)
	c.Write(0x4000, 0x00)
	assert.Equal(t, uint8(0xFF), c.Read(0xA000))
}
