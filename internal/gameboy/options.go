package gameboy

import (
	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/internal/cheats"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug enables the LD B, B breakpoint.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// SerialDebugger collects the bytes sent over the serial port into
// output, and stops the machine once a test ROM reports "Passed" or
// "Failed".
func SerialDebugger(output *string) Opt {
	return func(gb *GameBoy) {
		gb.output = output
	}
}

// WithLogger sets the logger of the machine and its components.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM maps a boot ROM at startup. The CPU then starts at 0x0000
// with every register cleared, rather than at 0x0100 with the registers
// the boot ROM would have left behind.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithClock sets the time source of the cartridge real-time clock.
func WithClock(clock cartridge.Clock) Opt {
	return func(gb *GameBoy) {
		gb.clock = clock
	}
}

// WithSaveDir keeps the battery RAM of the cartridge in dir.
func WithSaveDir(dir string) Opt {
	return func(gb *GameBoy) {
		gb.saveDir = dir
	}
}

// WithGameGenie patches ROM reads with the codes loaded into genie.
func WithGameGenie(genie *cheats.GameGenie) Opt {
	return func(gb *GameBoy) {
		gb.genie = genie
	}
}
