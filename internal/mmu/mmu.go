// Package mmu provides the address bus of the Game Boy. Every access is
// routed through a table holding one handler per address, so the bus
// needs no knowledge of the devices behind it beyond the ranges they
// occupy.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/boot"
	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/internal/memory"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// MMU is the memory management unit. It handles all reads and writes to
// the 64 KiB address space.
type MMU struct {
	// 64kB address space
	raw [65536]*types.Address

	// 0x0000 - 0x00FF/0x0900 - boot ROM overlay
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM
	// 0xA000 - 0xBFFF - external RAM
	Cart *cartridge.Cartridge

	// 0x8000 - 0x9FFF - video RAM (8kB)
	vRAM *memory.Buffer

	// 0xC000 - 0xDFFF - work RAM (8kB)
	// 0xE000 - 0xFDFF - echo RAM
	wRAM *WRAM

	// 0xFE00 - 0xFE9F - sprite attribute table (160B)
	oam *memory.Buffer

	// 0xFF00 - 0xFF7F - I/O registers without an attached device
	io *memory.Buffer

	// 0xFF80 - 0xFFFE - high RAM (127B)
	hRAM *memory.Buffer

	// 0xFFFF - interrupt enable register
	ie uint8

	isGBC bool
	log   log.Logger
}

// NewMMU returns an MMU with the cartridge mapped and every other region
// backed by zeroed RAM.
func NewMMU(cart *cartridge.Cartridge, l log.Logger) *MMU {
	if l == nil {
		l = log.NewNullLogger()
	}
	m := &MMU{
		Cart:  cart,
		vRAM:  memory.NewBuffer(0x2000),
		wRAM:  NewWRAM(),
		oam:   memory.NewBuffer(0xA0),
		io:    memory.NewBuffer(0x80),
		hRAM:  memory.NewBuffer(0x7F),
		isGBC: cart.Info().GameboyColor(),
		log:   l,
	}
	m.init()
	return m
}

func (m *MMU) init() {
	addresses := []types.Address{
		{Read: m.readCart, Write: m.Cart.Write},
		{Read: m.Cart.Read, Write: m.Cart.Write},
		{Read: offset(m.vRAM, types.VRAMStart), Write: offsetWrite(m.vRAM, types.VRAMStart)},
		{Read: m.wRAM.Read, Write: m.wRAM.Write},
		{Read: offset(m.oam, types.OAMStart), Write: offsetWrite(m.oam, types.OAMStart)},
		{Read: func(uint16) uint8 { return 0xFF }, Write: func(uint16, uint8) {}},
		{Read: offset(m.io, types.IOStart), Write: offsetWrite(m.io, types.IOStart)},
		{Read: offset(m.hRAM, types.HRAMStart), Write: offsetWrite(m.hRAM, types.HRAMStart)},
		{Read: func(uint16) uint8 { return m.ie }, Write: func(_ uint16, v uint8) { m.ie = v }},
	}

	m.mapRange(0x0000, boot.CGBSize-1, &addresses[0])
	m.mapRange(boot.CGBSize, types.ROMBankNEnd, &addresses[1])
	m.mapRange(types.VRAMStart, types.VRAMEnd, &addresses[2])
	m.mapRange(types.ExternalRAMStart, types.ExternalRAMEnd, &addresses[1])
	m.mapRange(types.WRAMStart, types.EchoEnd, &addresses[3])
	m.mapRange(types.OAMStart, types.OAMEnd, &addresses[4])
	m.mapRange(types.UnusableStart, types.UnusableEnd, &addresses[5])
	m.mapRange(types.IOStart, types.IOEnd, &addresses[6])
	m.mapRange(types.HRAMStart, types.HRAMEnd, &addresses[7])
	m.raw[types.IE] = &addresses[8]

	m.AttachIO(types.BDIS, func(uint8) {
		// any write disables the overlay until reset
		if m.bootROM != nil && !m.bootROMDone {
			m.log.Debugf("boot ROM disabled")
		}
		m.bootROMDone = true
	}, func() uint8 {
		return 0xFF
	})
	if m.isGBC {
		m.AttachIO(types.SVBK, m.wRAM.SetBank, m.wRAM.Bank)
	}
}

func (m *MMU) mapRange(start, end uint16, a *types.Address) {
	for i := int(start); i <= int(end); i++ {
		m.raw[i] = a
	}
}

func offset(s memory.Segment, start uint16) func(uint16) uint8 {
	return func(address uint16) uint8 {
		return s.Read(address - start)
	}
}

func offsetWrite(s memory.Segment, start uint16) func(uint16, uint8) {
	return func(address uint16, v uint8) {
		s.Write(address-start, v)
	}
}

// SetBootROM maps rom over the start of the cartridge until 0xFF50 is
// written.
func (m *MMU) SetBootROM(rom []byte) error {
	b, err := boot.Load(rom)
	if err != nil {
		return err
	}
	m.bootROM = b
	m.bootROMDone = false
	m.log.Infof("boot ROM %s (%s)", b.Model(), b.Checksum())
	return nil
}

// BootROMActive reports whether the boot ROM overlay is mapped.
func (m *MMU) BootROMActive() bool {
	return m.bootROM != nil && !m.bootROMDone
}

// AttachIO routes reads and writes of an I/O register to a device. The
// address must lie in 0xFF00 - 0xFF7F.
func (m *MMU) AttachIO(address types.HardwareAddress, write func(uint8), read func() uint8) {
	if address < types.IOStart || address > types.IOEnd {
		panic(fmt.Sprintf("mmu: 0x%04X is not an I/O register", address))
	}
	m.raw[address] = &types.Address{
		Read: func(uint16) uint8 {
			return read()
		},
		Write: func(_ uint16, v uint8) {
			write(v)
		},
	}
}

// IsGBC reports whether the cartridge runs in colour mode.
func (m *MMU) IsGBC() bool {
	return m.isGBC
}

func (m *MMU) readCart(address uint16) uint8 {
	if m.BootROMActive() && m.bootROM.Maps(address) {
		return m.bootROM.Read(address)
	}
	return m.Cart.Read(address)
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].Write(address, value)
}

// Read16 reads a little-endian word.
func (m *MMU) Read16(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// Write16 writes a little-endian word.
func (m *MMU) Write16(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}
