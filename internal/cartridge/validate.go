package cartridge

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// logo is the bitmap at 0x0104-0x0133 that the boot ROM checks before
// handing over to the cartridge.
var logo = []byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// HeaderChecksum computes the checksum of 0x0134-0x014C that the boot ROM
// compares against the byte at 0x014D.
func HeaderChecksum(rom []byte) uint8 {
	var sum uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum
}

// GlobalChecksum computes the sum of every byte of the image except the
// checksum itself at 0x014E-0x014F.
func GlobalChecksum(rom []byte) uint16 {
	var sum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		sum += uint16(b)
	}
	return sum
}

// Validate checks a ROM image for the inconsistencies real hardware either
// rejects or tolerates silently. Every problem found is reported in the
// returned *multierror.Error. None of them prevent the cartridge from
// being loaded.
func Validate(rom []byte) error {
	info, err := ReadInfo(rom)
	if err != nil {
		return err
	}

	var result *multierror.Error
	if !bytes.Equal(rom[0x0104:0x0134], logo) {
		result = multierror.Append(result, fmt.Errorf("logo does not match"))
	}
	if sum := HeaderChecksum(rom); sum != info.Header.HeaderChecksum {
		result = multierror.Append(result, fmt.Errorf("header checksum: expected 0x%02X, got 0x%02X", info.Header.HeaderChecksum, sum))
	}
	if sum := GlobalChecksum(rom); sum != info.Header.GlobalChecksum {
		result = multierror.Append(result, fmt.Errorf("global checksum: expected 0x%04X, got 0x%04X", info.Header.GlobalChecksum, sum))
	}
	if len(rom) != info.ROMSize {
		result = multierror.Append(result, fmt.Errorf("image is %d bytes, header declares %d", len(rom), info.ROMSize))
	}
	if info.HasRAM && info.Controller != MBC2 && info.RAMSize == 0 {
		result = multierror.Append(result, fmt.Errorf("controller 0x%02X has RAM, header declares none", uint8(info.Type)))
	}
	if !info.HasRAM && info.RAMSize > 0 {
		result = multierror.Append(result, fmt.Errorf("header declares %d bytes of RAM for a controller without RAM", info.RAMSize))
	}
	return result.ErrorOrNil()
}
