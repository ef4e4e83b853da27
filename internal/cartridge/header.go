package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

var (
	// ErrHeaderTooShort is returned when the image ends before the header.
	ErrHeaderTooShort = errors.New("cartridge: image too short to contain a header")
	// ErrUnsupportedController is returned for a controller byte that has
	// no implementation.
	ErrUnsupportedController = errors.New("cartridge: unsupported controller")
	// ErrInvalidSize is returned for an unknown ROM or RAM size code.
	ErrInvalidSize = errors.New("cartridge: invalid size code")
)

// Controller identifies the memory bank controller of a cartridge.
type Controller uint8

const (
	NoMBC Controller = iota
	MBC1
	MBC2
	MBC3
	MBC5
)

func (c Controller) String() string {
	switch c {
	case NoMBC:
		return "NONE"
	case MBC1:
		return "MBC1"
	case MBC2:
		return "MBC2"
	case MBC3:
		return "MBC3"
	case MBC5:
		return "MBC5"
	}
	return fmt.Sprintf("Controller(%d)", uint8(c))
}

// Type is the controller/feature byte found at 0x0147.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1ROM           Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2ROM           Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3ROM           Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5ROM           Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

func (t Type) String() string {
	return fmt.Sprintf("0x%02X", uint8(t))
}

// features describes what a controller byte implies.
type features struct {
	controller Controller
	ram        bool
	battery    bool
	timer      bool
	rumble     bool
}

var supportedTypes = map[Type]features{
	ROM:               {controller: NoMBC},
	MBC1ROM:           {controller: MBC1},
	MBC1RAM:           {controller: MBC1, ram: true},
	MBC1RAMBATT:       {controller: MBC1, ram: true, battery: true},
	MBC2ROM:           {controller: MBC2, ram: true},
	MBC2BATT:          {controller: MBC2, ram: true, battery: true},
	ROMRAM:            {controller: NoMBC, ram: true},
	ROMRAMBATT:        {controller: NoMBC, ram: true, battery: true},
	MBC3TIMERBATT:     {controller: MBC3, timer: true, battery: true},
	MBC3TIMERRAMBATT:  {controller: MBC3, ram: true, timer: true, battery: true},
	MBC3ROM:           {controller: MBC3},
	MBC3RAM:           {controller: MBC3, ram: true},
	MBC3RAMBATT:       {controller: MBC3, ram: true, battery: true},
	MBC5ROM:           {controller: MBC5},
	MBC5RAM:           {controller: MBC5, ram: true},
	MBC5RAMBATT:       {controller: MBC5, ram: true, battery: true},
	MBC5RUMBLE:        {controller: MBC5, rumble: true},
	MBC5RUMBLERAM:     {controller: MBC5, ram: true, rumble: true},
	MBC5RUMBLERAMBATT: {controller: MBC5, ram: true, battery: true, rumble: true},
}

// ramSizes maps the RAM size code at 0x0149 to a size in bytes.
var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// mbc2RAMSize is the size of the RAM built into the MBC2, in nibbles.
const mbc2RAMSize = 512

// CGB compatibility flags found at 0x0143.
const (
	FlagOnlyDMG     uint8 = 0x00
	FlagSupportsCGB uint8 = 0x80
	FlagOnlyCGB     uint8 = 0xC0
)

// Header is the raw cartridge header found at 0x0100-0x014F.
type Header struct {
	// 0x0134-0x0143 - Title of the game, up to the first NUL.
	Title string
	// 0x013F-0x0142 - ManufacturerCode of newer cartridges.
	ManufacturerCode string
	// 0x0143 - CGBFlag tells the Colour Game Boy whether the cartridge
	// supports it. In older cartridges this byte is part of the title.
	CGBFlag uint8
	// 0x0144-0x0145 - NewLicenseeCode, used when OldLicenseeCode is 0x33.
	NewLicenseeCode string
	// 0x0146 - SGBFlag is set when the cartridge supports the Super Game Boy.
	SGBFlag bool
	// 0x0147 - CartridgeType is the controller/feature byte.
	CartridgeType Type
	// 0x0148 - ROMSizeCode, the ROM is 32 KiB << code.
	ROMSizeCode uint8
	// 0x0149 - RAMSizeCode, see ramSizes.
	RAMSizeCode     uint8
	Destination     uint8
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16
}

// parseHeader parses the header from a full ROM image, which must be at
// least headerEnd bytes long.
func parseHeader(rom []byte) Header {
	h := Header{
		CGBFlag:          rom[0x0143],
		ManufacturerCode: cString(rom[0x013F:0x0143]),
		NewLicenseeCode:  string(rom[0x0144:0x0146]),
		SGBFlag:          rom[0x0146] == 0x03,
		CartridgeType:    Type(rom[0x0147]),
		ROMSizeCode:      rom[0x0148],
		RAMSizeCode:      rom[0x0149],
		Destination:      rom[0x014A],
		OldLicenseeCode:  rom[0x014B],
		MaskROMVersion:   rom[0x014C],
		HeaderChecksum:   rom[0x014D],
		GlobalChecksum:   uint16(rom[0x014E])<<8 | uint16(rom[0x014F]),
	}

	// the CGB flag takes the place of the last title character
	if h.CGBFlag == FlagSupportsCGB || h.CGBFlag == FlagOnlyCGB {
		h.Title = cString(rom[0x0134:0x0143])
	} else {
		h.Title = cString(rom[0x0134:0x0144])
	}
	return h
}

// cString returns b up to its first NUL byte.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

const headerEnd = 0x0150

// Info is the cartridge metadata derived from the header.
type Info struct {
	Title      string
	CGBFlag    uint8
	Type       Type
	Controller Controller

	HasRAM     bool
	HasBattery bool
	HasTimer   bool
	HasRumble  bool

	// ROMSize and RAMSize are the declared sizes in bytes. RAMSize is
	// 512 for the MBC2's built-in RAM.
	ROMSize  int
	RAMSize  int
	ROMBanks int
	RAMBanks int

	Header Header
}

// ReadInfo parses the header of a ROM image.
func ReadInfo(rom []byte) (Info, error) {
	if len(rom) < headerEnd {
		return Info{}, fmt.Errorf("%w: %d bytes", ErrHeaderTooShort, len(rom))
	}
	h := parseHeader(rom)

	f, ok := supportedTypes[h.CartridgeType]
	if !ok {
		return Info{}, fmt.Errorf("%w: 0x%02X", ErrUnsupportedController, uint8(h.CartridgeType))
	}
	if h.ROMSizeCode > 0x08 {
		return Info{}, fmt.Errorf("%w: ROM size code 0x%02X", ErrInvalidSize, h.ROMSizeCode)
	}
	ramSize, ok := ramSizes[h.RAMSizeCode]
	if !ok {
		return Info{}, fmt.Errorf("%w: RAM size code 0x%02X", ErrInvalidSize, h.RAMSizeCode)
	}
	if f.controller == MBC2 {
		ramSize = mbc2RAMSize
	}

	info := Info{
		Title:      h.Title,
		CGBFlag:    h.CGBFlag,
		Type:       h.CartridgeType,
		Controller: f.controller,
		HasRAM:     f.ram,
		HasBattery: f.battery,
		HasTimer:   f.timer,
		HasRumble:  f.rumble,
		ROMSize:    (32 * 1024) << h.ROMSizeCode,
		RAMSize:    ramSize,
		Header:     h,
	}
	info.ROMBanks = ceilDiv(info.ROMSize, types.ROMBankSize)
	if info.ROMBanks < 2 {
		info.ROMBanks = 2
	}
	info.RAMBanks = ceilDiv(info.RAMSize, types.RAMBankSize)
	return info, nil
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// GameboyColor reports whether the cartridge supports the Colour Game Boy.
func (i Info) GameboyColor() bool {
	return i.CGBFlag == FlagSupportsCGB || i.CGBFlag == FlagOnlyCGB
}

// Hardware returns the model the cartridge was made for.
func (i Info) Hardware() string {
	switch i.CGBFlag {
	case FlagOnlyCGB:
		return "CGB"
	case FlagSupportsCGB:
		return "DMG/CGB"
	}
	return "DMG"
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s) Mode: %s | ROM Size: %dkB | RAM Size: %dkB",
		i.Title, i.Controller, i.Hardware(), i.ROMSize/1024, i.RAMSize/1024)
}
