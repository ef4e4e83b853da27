package gameboy

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/internal/cheats"
	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// newROM returns a 32 KiB image that jumps to program at 0x0150.
func newROM(typ cartridge.Type, ramCode uint8, program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], []byte{0x00, 0xC3, 0x50, 0x01})
	copy(rom[0x0134:], "GBTEST")
	rom[0x0147] = uint8(typ)
	rom[0x0149] = ramCode
	copy(rom[0x0150:], program)
	rom[0x014D] = cartridge.HeaderChecksum(rom)
	return rom
}

func newTestGameBoy(t *testing.T, rom []byte, opts ...Opt) *GameBoy {
	t.Helper()
	g, err := NewGameBoy(rom, opts...)
	require.NoError(t, err)
	return g
}

func TestNewGameBoy_PostBoot(t *testing.T) {
	g := newTestGameBoy(t, newROM(cartridge.ROM, 0))

	assert.Equal(t, uint16(0x01B0), g.CPU.AF())
	assert.Equal(t, uint16(0x0013), g.CPU.BC())
	assert.Equal(t, uint16(0x00D8), g.CPU.DE())
	assert.Equal(t, uint16(0x014D), g.CPU.HL())
	assert.Equal(t, uint16(0xFFFE), g.CPU.SP)
	assert.Equal(t, uint16(0x0100), g.CPU.PC)
	assert.Equal(t, "GBTEST", g.Cart.Title())
	assert.Nil(t, g.Save())
}

func TestNewGameBoy_Errors(t *testing.T) {
	_, err := NewGameBoy(make([]byte, 0x100))
	assert.ErrorIs(t, err, cartridge.ErrHeaderTooShort)

	_, err = NewGameBoy(newROM(cartridge.HUDSONHUC1, 0))
	assert.ErrorIs(t, err, cartridge.ErrUnsupportedController)

	_, err = NewGameBoy(newROM(cartridge.ROM, 0), WithBootROM([]byte{0x00}))
	assert.Error(t, err)
}

func TestGameBoy_Breakpoint(t *testing.T) {
	g := newTestGameBoy(t, newROM(cartridge.ROM, 0,
		0x3E, 0x42, // LD A, 0x42
		0xEA, 0x00, 0xC0, // LD (0xC000), A
		0x40,       // LD B, B
		0x18, 0xFE, // JR -2
	), Debug())

	require.NoError(t, g.RunFor(0))
	assert.True(t, g.Breakpoint())
	assert.Equal(t, uint8(0x42), g.MMU.Read(0xC000))
	assert.Equal(t, uint16(0x0156), g.CPU.PC)

	// a stopped machine stays stopped
	cycles := g.CPU.Cycles()
	require.NoError(t, g.RunFor(100))
	assert.Equal(t, cycles, g.CPU.Cycles())
}

func TestGameBoy_RunFor(t *testing.T) {
	g := newTestGameBoy(t, newROM(cartridge.ROM, 0,
		0x40,       // LD B, B
		0x18, 0xFD, // JR -3
	))

	require.NoError(t, g.RunFor(20))
	assert.GreaterOrEqual(t, g.CPU.Cycles(), uint64(20))
	assert.Less(t, g.CPU.Cycles(), uint64(24))
	assert.False(t, g.Breakpoint(), "LD B, B is a NOP without Debug")

	require.NoError(t, g.RunFor(20))
	assert.GreaterOrEqual(t, g.CPU.Cycles(), uint64(40))
}

func TestGameBoy_Step(t *testing.T) {
	g := newTestGameBoy(t, newROM(cartridge.ROM, 0))

	cycles, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), cycles)
	cycles, err = g.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(4), cycles)
	assert.Equal(t, uint16(0x0150), g.CPU.PC)
}

func TestGameBoy_Halt(t *testing.T) {
	g := newTestGameBoy(t, newROM(cartridge.ROM, 0, 0x76))
	assert.ErrorIs(t, g.RunFor(100), ErrHalted)
}

func TestGameBoy_IllegalOpcode(t *testing.T) {
	g := newTestGameBoy(t, newROM(cartridge.ROM, 0, 0x00, 0xD3))
	assert.ErrorIs(t, g.RunFor(100), cpu.ErrIllegalOpcode)
	assert.Equal(t, uint16(0x0151), g.CPU.PC)
}

func TestGameBoy_SerialDebugger(t *testing.T) {
	var program []uint8
	for _, c := range []byte("Passed") {
		program = append(program,
			0x3E, c, // LD A, c
			0xE0, 0x01, // LDH (SB), A
			0x3E, 0x81, // LD A, 0x81
			0xE0, 0x02, // LDH (SC), A
		)
	}
	program = append(program, 0x18, 0xFE)

	var output string
	g := newTestGameBoy(t, newROM(cartridge.ROM, 0, program...), SerialDebugger(&output))
	require.NoError(t, g.RunFor(0))
	assert.Equal(t, "Passed", output)
	assert.True(t, g.Breakpoint())

	// the transfer has completed
	assert.Equal(t, uint8(0x7F), g.MMU.Read(0xFF02))
	assert.Equal(t, uint8(0xFF), g.MMU.Read(0xFF01))
}

func TestGameBoy_BootROM(t *testing.T) {
	boot := make([]byte, 0x100)
	copy(boot, []byte{
		0x3E, 0x01, // LD A, 0x01
		0xE0, 0x50, // LDH (BDIS), A
	})
	g := newTestGameBoy(t, newROM(cartridge.ROM, 0), WithBootROM(boot))

	assert.Equal(t, uint16(0x0000), g.CPU.PC)
	assert.Equal(t, uint16(0x0000), g.CPU.AF())
	assert.True(t, g.MMU.BootROMActive())
	assert.Equal(t, uint8(0x3E), g.MMU.Read(0x0000))

	for i := 0; i < 2; i++ {
		_, err := g.Step()
		require.NoError(t, err)
	}
	assert.False(t, g.MMU.BootROMActive())
	assert.Equal(t, uint8(0x00), g.MMU.Read(0x0000))
	assert.Equal(t, uint16(0x0004), g.CPU.PC)
}

func TestGameBoy_Saves(t *testing.T) {
	dir := t.TempDir()
	rom := newROM(cartridge.MBC1RAMBATT, 0x02,
		0x3E, 0x0A, // LD A, 0x0A
		0xEA, 0x00, 0x00, // LD (0x0000), A
		0x3E, 0x5A, // LD A, 0x5A
		0xEA, 0x00, 0xA0, // LD (0xA000), A
		0x76, // HALT
	)

	g := newTestGameBoy(t, rom, WithSaveDir(dir))
	require.NotNil(t, g.Save())
	assert.ErrorIs(t, g.RunFor(0), ErrHalted)
	assert.True(t, g.Save().Dirty())
	require.NoError(t, g.Close())

	g = newTestGameBoy(t, rom, WithSaveDir(dir))
	g.Cart.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x5A), g.Cart.Read(0xA000))
	require.NoError(t, g.Close())

	// without a battery nothing is kept
	g = newTestGameBoy(t, newROM(cartridge.MBC1RAM, 0x02), WithSaveDir(dir))
	assert.Nil(t, g.Save())
	assert.NoError(t, g.Close())
}

type stoppedClock struct{}

func (stoppedClock) Now() int64 { return 0 }

func TestGameBoy_Options(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGameBoy(t, newROM(cartridge.MBC3TIMERRAMBATT, 0x02),
		WithLogger(log.NewWithLevel(&buf, logrus.InfoLevel)),
		WithClock(stoppedClock{}),
	)

	// the image has no logo, so the header does not validate
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "logo does not match")
	assert.Contains(t, buf.String(), "cartridge GBTEST (MBC3)")

	g.Cart.Write(0x0000, 0x0A)
	g.Cart.Write(0x4000, cartridge.RTCSeconds)
	g.Cart.Write(0x6000, 0x00)
	g.Cart.Write(0x6000, 0x01)
	assert.Equal(t, uint8(0), g.Cart.Read(0xA000))
}

func TestGameBoy_GameGenie(t *testing.T) {
	genie := cheats.NewGameGenie()
	// 0x0151: JP becomes LD B, B
	require.NoError(t, genie.Load("401-51F", "breakpoint"))

	g := newTestGameBoy(t, newROM(cartridge.ROM, 0), WithGameGenie(genie), Debug())
	assert.Equal(t, uint8(0x40), g.MMU.Read(0x0151))
	require.NoError(t, g.RunFor(100))
	assert.True(t, g.Breakpoint())
	assert.Equal(t, uint16(0x0152), g.CPU.PC)
}
