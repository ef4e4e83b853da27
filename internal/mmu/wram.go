package mmu

import (
	"github.com/thelolagemann/gomeboy-core/internal/memory"
)

const wramBankSize = 0x1000

// WRAM is the work RAM at 0xC000 - 0xDFFF, together with its echo at
// 0xE000 - 0xFDFF. Bank 0 is fixed at 0xC000; 0xD000 maps bank 1, or on
// the CGB the bank selected by SVBK.
type WRAM struct {
	bank  uint8
	banks [8]*memory.Buffer
}

// NewWRAM returns a zeroed WRAM with bank 1 selected.
func NewWRAM() *WRAM {
	w := &WRAM{bank: 1}
	for i := range w.banks {
		w.banks[i] = memory.NewBuffer(wramBankSize)
	}
	return w
}

// segment returns the bank backing address, which may be in the echo
// range.
func (w *WRAM) segment(address uint16) memory.Segment {
	if address&0x1000 == 0 {
		return w.banks[0]
	}
	return w.banks[w.bank]
}

func (w *WRAM) Read(address uint16) uint8 {
	return w.segment(address).Read(address & 0x0FFF)
}

func (w *WRAM) Write(address uint16, value uint8) {
	w.segment(address).Write(address&0x0FFF, value)
}

// SetBank handles a write to SVBK. Only 3 bits are used, and 0 selects
// bank 1.
func (w *WRAM) SetBank(v uint8) {
	v &= 0x07
	if v == 0 {
		v = 1
	}
	w.bank = v
}

// Bank returns the bank mapped at 0xD000.
func (w *WRAM) Bank() uint8 {
	return w.bank | 0xF8
}
