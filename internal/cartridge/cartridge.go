// Package cartridge implements Game Boy cartridges: header parsing, the
// ROM and RAM banks, and the memory bank controllers that map them into
// the address space.
package cartridge

import (
	"errors"

	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// ErrRAMSize is returned when loading RAM content of the wrong length.
var ErrRAMSize = errors.New("cartridge: RAM content has the wrong size")

type config struct {
	clock      Clock
	log        log.Logger
	ramChanged RAMChangedFunc
	rumble     func(on bool)
	romPatch   ROMPatchFunc
}

// ROMPatchFunc returns the byte the CPU sees when value is read from a
// ROM address.
type ROMPatchFunc func(address uint16, value uint8) uint8

// Opt configures a Cartridge.
type Opt func(c *config)

// WithClock sets the time source of the MBC3 real-time clock.
func WithClock(clock Clock) Opt {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Opt {
	return func(c *config) {
		c.log = l
	}
}

// WithRAMChanged sets the function notified of every accepted write to
// cartridge RAM.
func WithRAMChanged(fn RAMChangedFunc) Opt {
	return func(c *config) {
		c.ramChanged = fn
	}
}

// WithRumble sets the function driven by the rumble motor of MBC5
// rumble cartridges.
func WithRumble(fn func(on bool)) Opt {
	return func(c *config) {
		c.rumble = fn
	}
}

// WithROMPatch sets a function that may replace bytes read from ROM,
// such as the Game Genie.
func WithROMPatch(fn ROMPatchFunc) Opt {
	return func(c *config) {
		c.romPatch = fn
	}
}

// Cartridge is a loaded ROM image and its memory bank controller.
type Cartridge struct {
	rom  []byte
	info Info
	mbc  MemoryBankController
	cfg  config
}

// New parses the header of rom and creates the matching controller.
func New(rom []byte, opts ...Opt) (*Cartridge, error) {
	c := &Cartridge{
		rom: rom,
		cfg: config{
			clock: SystemClock{},
			log:   log.NewNullLogger(),
		},
	}
	for _, opt := range opts {
		opt(&c.cfg)
	}

	info, err := ReadInfo(rom)
	if err != nil {
		return nil, err
	}
	c.info = info

	if c.mbc, err = c.newController(); err != nil {
		return nil, err
	}
	c.cfg.log.Infof("cartridge %s", info)
	return c, nil
}

func (c *Cartridge) newController() (MemoryBankController, error) {
	mbc, err := newController(c.rom, c.info, &c.cfg)
	if err != nil {
		return nil, err
	}
	mbc.SetRAMChanged(c.cfg.ramChanged)
	return mbc, nil
}

// Info returns the parsed header information.
func (c *Cartridge) Info() Info {
	return c.info
}

// Title returns the title of the cartridge.
func (c *Cartridge) Title() string {
	return c.info.Title
}

// MBC returns the memory bank controller.
func (c *Cartridge) MBC() MemoryBankController {
	return c.mbc
}

// Read reads from the cartridge windows 0x0000-0x7FFF and 0xA000-0xBFFF.
// Any other address reads 0xFF.
func (c *Cartridge) Read(address uint16) uint8 {
	switch {
	case address <= types.ROMBank0End:
		return c.patch(address, c.mbc.StaticROM().Read(address))
	case address <= types.ROMBankNEnd:
		return c.patch(address, c.mbc.SwitchableROM().Read(address-types.ROMBankNStart))
	case address >= types.ExternalRAMStart && address <= types.ExternalRAMEnd:
		return c.mbc.SwitchableRAM().Read(address - types.ExternalRAMStart)
	}
	return 0xFF
}

func (c *Cartridge) patch(address uint16, value uint8) uint8 {
	if c.cfg.romPatch == nil {
		return value
	}
	return c.cfg.romPatch(address, value)
}

// Write writes to the cartridge. Writes to the ROM area go to the
// controller's registers.
func (c *Cartridge) Write(address uint16, value uint8) {
	switch {
	case address <= types.ROMBankNEnd:
		c.mbc.Write(address, value)
	case address >= types.ExternalRAMStart && address <= types.ExternalRAMEnd:
		c.mbc.SwitchableRAM().Write(address-types.ExternalRAMStart, value)
	}
}

// Reset replaces the controller with a fresh one. RAM content survives
// when the cartridge has a battery.
func (c *Cartridge) Reset() error {
	var saved []byte
	if c.mbc != nil && c.info.HasBattery {
		saved = c.mbc.RAMContent()
	}

	mbc, err := c.newController()
	if err != nil {
		return err
	}
	if saved != nil {
		if err := mbc.LoadRAMContent(saved); err != nil {
			return err
		}
	}
	c.mbc = mbc
	return nil
}

// RAMContent returns the RAM banks concatenated in bank order. It is
// empty for cartridges without RAM.
func (c *Cartridge) RAMContent() []byte {
	return c.mbc.RAMContent()
}

// LoadRAMContent restores RAM content returned by RAMContent.
func (c *Cartridge) LoadRAMContent(data []byte) error {
	return c.mbc.LoadRAMContent(data)
}

// SetRAMChanged replaces the function notified of RAM writes. It
// survives Reset.
func (c *Cartridge) SetRAMChanged(fn RAMChangedFunc) {
	c.cfg.ramChanged = fn
	c.mbc.SetRAMChanged(fn)
}
