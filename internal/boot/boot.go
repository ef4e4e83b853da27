// Package boot loads boot ROM images. A boot ROM is optional: without one
// the machine starts at 0x0100 with the registers the DMG boot ROM leaves
// behind.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

// Boot ROM sizes. The CGB image is mapped at 0x0000-0x00FF and
// 0x0200-0x08FF, leaving the cartridge header visible.
const (
	DMGSize = 0x100
	CGBSize = 0x900
)

// ErrInvalidLength is returned for images that are neither DMGSize nor
// CGBSize bytes long.
var ErrInvalidLength = errors.New("boot: invalid boot ROM length")

// ROM is a boot ROM image.
type ROM struct {
	raw      []byte
	checksum string
}

// Load returns a ROM for b, which must be DMGSize or CGBSize bytes.
func Load(b []byte) (*ROM, error) {
	if len(b) != DMGSize && len(b) != CGBSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, len(b))
	}

	sum := md5.Sum(b)
	raw := make([]byte, len(b))
	copy(raw, b)
	return &ROM{raw: raw, checksum: hex.EncodeToString(sum[:])}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(address uint16) uint8 {
	return b.raw[address]
}

// Len returns the size of the image.
func (b *ROM) Len() int {
	return len(b.raw)
}

// Maps reports whether address is covered by the boot ROM overlay.
func (b *ROM) Maps(address uint16) bool {
	if address < DMGSize {
		return true
	}
	return len(b.raw) == CGBSize && address >= 0x200 && address < CGBSize
}

// Checksum returns the MD5 checksum of the image.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model names the hardware the image was dumped from, if it is known.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := models[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// MD5 checksums of known boot ROM dumps.
const (
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	DMG  = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by the value loaded into A (0xFF).
	MGB  = "71a378e71ff30b2d8a1f02bf5c7896aa"
	SGB  = "d574d4f9c12f305074798f54c091a8b4"
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
	CGB0 = "7c773f3c0b01cb73bca8e83227287b7f"
	CGB  = "dbfce9db9deaa2567f6a84fde55f9680"
	AGB  = "e6cefb5f7d352fab6681989763917c73"
)

var models = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
	CGB0: "Game Boy Color (CGB-0)",
	CGB:  "Game Boy Color (CGB-A/B/C/D/E)",
	AGB:  "Game Boy Advance (AGB-001)",
}
