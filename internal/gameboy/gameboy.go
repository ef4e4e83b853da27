// Package gameboy assembles a cartridge, the address bus and the CPU into
// a machine that can run a ROM headlessly.
package gameboy

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/internal/cheats"
	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/internal/mmu"
	"github.com/thelolagemann/gomeboy-core/internal/serial"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
	"github.com/thelolagemann/gomeboy-core/pkg/saves"
)

// ErrHalted is returned by RunFor when the CPU stops on HALT or STOP.
// Interrupts are not emulated, so nothing can wake it.
var ErrHalted = errors.New("gameboy: CPU halted")

// GameBoy represents a Game Boy. It contains all the components of the
// Game Boy, and is the main entry point for the emulator.
type GameBoy struct {
	CPU  *cpu.CPU
	MMU  *mmu.MMU
	Cart *cartridge.Cartridge

	log.Logger

	Serial *serial.Controller

	save *saves.Save

	// set by options
	bootROM []byte
	clock   cartridge.Clock
	saveDir string
	debug   bool
	output  *string
	genie   *cheats.GameGenie
}

// NewGameBoy returns a GameBoy running rom.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{Logger: log.NewNullLogger()}
	for _, opt := range opts {
		opt(g)
	}

	if err := cartridge.Validate(rom); err != nil {
		g.Warnf("cartridge header: %v", err)
	}
	cartOpts := []cartridge.Opt{cartridge.WithLogger(g.Logger)}
	if g.clock != nil {
		cartOpts = append(cartOpts, cartridge.WithClock(g.clock))
	}
	if g.genie != nil {
		for _, c := range g.genie.Codes() {
			g.Debugf("game genie %s: 0x%04X = 0x%02X (%s)", c.Raw, c.Address, c.NewData, c.Name)
		}
		cartOpts = append(cartOpts, cartridge.WithROMPatch(g.genie.Patch))
	}
	cart, err := cartridge.New(rom, cartOpts...)
	if err != nil {
		return nil, err
	}
	g.Cart = cart

	if err := g.openSave(rom); err != nil {
		return nil, err
	}

	g.MMU = mmu.NewMMU(cart, g.Logger)
	g.Serial = serial.NewController()
	g.Serial.Connect(g.MMU)
	if g.output != nil {
		g.Serial.Attach(&serialOutput{
			Recorder: serial.Recorder{Finished: func() {
				g.CPU.DebugBreakpoint = true
			}},
			output: g.output,
		})
	}

	regs := PostBootRegisters()
	if g.bootROM != nil {
		if err := g.MMU.SetBootROM(g.bootROM); err != nil {
			return nil, err
		}
		// the boot ROM starts from a clean slate
		regs = cpu.Registers{}
	}
	g.CPU = cpu.NewCPU(g.MMU, cpu.WithLogger(g.Logger), cpu.WithRegisters(regs))
	g.CPU.Debug = g.debug

	return g, nil
}

// PostBootRegisters returns the register values the DMG boot ROM leaves
// behind when it hands over to the cartridge.
func PostBootRegisters() cpu.Registers {
	var r cpu.Registers
	r.SetAF(0x01B0)
	r.SetBC(0x0013)
	r.SetDE(0x00D8)
	r.SetHL(0x014D)
	r.SP = 0xFFFE
	r.PC = 0x0100
	return r
}

func (g *GameBoy) openSave(rom []byte) error {
	info := g.Cart.Info()
	size := len(g.Cart.RAMContent())
	if g.saveDir == "" || !info.HasBattery || size == 0 {
		return nil
	}

	s, err := saves.Open(g.saveDir, rom, info.Title, size)
	if err != nil {
		return err
	}
	if err := g.Cart.LoadRAMContent(s.Bytes()); err != nil {
		return err
	}
	g.Cart.SetRAMChanged(s.OnRAMChanged)
	g.save = s
	g.Infof("battery save %s", s.Path)
	return nil
}

// serialOutput mirrors the recorded serial output into a string.
type serialOutput struct {
	serial.Recorder
	output *string
}

func (s *serialOutput) Exchange(out uint8) uint8 {
	in := s.Recorder.Exchange(out)
	*s.output = s.Output.String()
	return in
}

// Step executes a single instruction, returning its cost in machine
// cycles.
func (g *GameBoy) Step() (uint8, error) {
	return g.CPU.Step()
}

// RunFor runs at least the given number of machine cycles. It returns
// early, without error, when a breakpoint is hit; either the LD B, B
// breakpoint of a Debug machine or the serial debugger seeing a test
// result. A cycle count of 0 runs until a breakpoint.
func (g *GameBoy) RunFor(cycles uint64) error {
	target := g.CPU.Cycles() + cycles
	for cycles == 0 || g.CPU.Cycles() < target {
		if g.CPU.DebugBreakpoint {
			return nil
		}
		if g.CPU.Mode() != cpu.ModeNormal {
			return fmt.Errorf("%w at 0x%04X", ErrHalted, g.CPU.PC)
		}
		if _, err := g.CPU.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Breakpoint reports whether the machine stopped on a breakpoint.
func (g *GameBoy) Breakpoint() bool {
	return g.CPU.DebugBreakpoint
}

// Save returns the battery save, or nil if the cartridge has none or
// saves are disabled.
func (g *GameBoy) Save() *saves.Save {
	return g.save
}

// Close writes the battery save to disk.
func (g *GameBoy) Close() error {
	if g.save == nil {
		return nil
	}
	return g.save.Close()
}
