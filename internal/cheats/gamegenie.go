package cheats

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// MaxGameGenieCodes is the number of codes the Game Genie accepts at
// once.
const MaxGameGenieCodes = 3

var (
	// ErrInvalidCode is returned for codes that are not of the form
	// ABC-DEF or ABC-DEF-GHI.
	ErrInvalidCode = errors.New("cheats: invalid Game Genie code")
	// ErrTooManyCodes is returned when more than MaxGameGenieCodes are
	// loaded.
	ErrTooManyCodes = errors.New("cheats: too many Game Genie codes")
)

// A GameGenieCode replaces the byte the CPU reads from a ROM address.
//
// Codes are written ABC-DEF-GHI. AB is the new data, FCDE is the address
// XORed with 0xF000, and GI is the old data XORed with 0xBA and rotated
// left by 2. H is not used. The six digit form ABC-DEF has no old data,
// and replaces the byte unconditionally.
type GameGenieCode struct {
	Address uint16
	NewData uint8
	OldData uint8
	// Compare is set for nine digit codes, which only apply while the
	// ROM holds OldData at Address.
	Compare bool

	Name string
	Raw  string
}

// ParseGameGenie parses a single code.
func ParseGameGenie(code string) (GameGenieCode, error) {
	c := GameGenieCode{Raw: code}
	digits := strings.ReplaceAll(code, "-", "")
	if len(code) != 7 && len(code) != 11 || len(digits) != 6 && len(digits) != 9 {
		return c, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	// AB, then CDEF reordered to FCDE
	hex := []string{digits[0:2], digits[5:6] + digits[2:5]}
	if len(digits) == 9 {
		hex = append(hex, digits[6:7]+digits[8:9])
	}
	var values [3]uint64
	for i, h := range hex {
		v, err := strconv.ParseUint(h, 16, 16)
		if err != nil {
			return c, fmt.Errorf("%w: %q", ErrInvalidCode, code)
		}
		values[i] = v
	}

	c.NewData = uint8(values[0])
	c.Address = uint16(values[1]) ^ 0xF000
	if len(digits) == 9 {
		c.Compare = true
		c.OldData = bits.RotateLeft8(uint8(values[2])^0xBA, -2)
	}
	if c.Address >= 0x8000 {
		return c, fmt.Errorf("%w: %q patches 0x%04X, outside ROM", ErrInvalidCode, code, c.Address)
	}
	return c, nil
}

// GameGenie holds the active codes.
type GameGenie struct {
	codes []GameGenieCode
}

// NewGameGenie creates a new GameGenie.
func NewGameGenie() *GameGenie {
	return &GameGenie{}
}

// Load parses code and activates it under the given name.
func (g *GameGenie) Load(code, name string) error {
	if len(g.codes) == MaxGameGenieCodes {
		return fmt.Errorf("%w: %s", ErrTooManyCodes, code)
	}
	c, err := ParseGameGenie(code)
	if err != nil {
		return err
	}
	c.Name = name
	g.codes = append(g.codes, c)
	return nil
}

// Codes returns the active codes.
func (g *GameGenie) Codes() []GameGenieCode {
	return g.codes
}

// Remove deactivates every code loaded under name.
func (g *GameGenie) Remove(name string) {
	kept := g.codes[:0]
	for _, c := range g.codes {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	g.codes = kept
}

// Patch returns the byte the CPU sees when reading value from a ROM
// address. Its signature matches cartridge.ROMPatchFunc.
func (g *GameGenie) Patch(address uint16, value uint8) uint8 {
	for _, c := range g.codes {
		if c.Address == address && (!c.Compare || c.OldData == value) {
			return c.NewData
		}
	}
	return value
}
