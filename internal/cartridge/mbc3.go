package cartridge

import (
	"github.com/thelolagemann/gomeboy-core/internal/memory"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// mbc3 supports up to 2 MiB of ROM, 32 KiB of RAM and, on timer
// cartridges, a real-time clock.
//
//	0x0000-0x1FFF  RAM and RTC enable (0x0A in the low nibble)
//	0x2000-0x3FFF  ROM bank, 7 bits (0 selects 1)
//	0x4000-0x5FFF  RAM bank (0x00-0x07) or RTC register (0x08-0x0C)
//	0x6000-0x7FFF  latch clock data (0x00 then 0x01)
type mbc3 struct {
	*banks

	rtc      *RTC
	selector uint8
	rtcView  memory.Segment
	openBus  memory.Segment
}

func newMBC3(b *banks, timer bool, clock Clock) *mbc3 {
	m := &mbc3{banks: b, openBus: memory.NewStatic(types.RAMBankSize)}
	if timer {
		m.rtc = NewRTC(clock)

		// every address of the window maps to the selected register
		d := memory.Decorate(memory.NewStatic(types.RAMBankSize))
		d.OnRead = func(uint16, memory.ReadFunc) uint8 {
			if !m.ramEnabled {
				return 0xFF
			}
			return m.rtc.Read(m.selector)
		}
		d.OnWrite = func(_ uint16, value uint8, _ memory.WriteFunc) {
			if m.ramEnabled {
				m.rtc.Write(m.selector, value)
			}
		}
		m.rtcView = d
	}
	return m
}

func (m *mbc3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.setRAMEnabled(value)
	case address < 0x4000:
		bank := int(value & 0x7F)
		if bank == 0 {
			bank = 1
		}
		m.setROMBank(bank)
	case address < 0x6000:
		m.selector = value
		if value <= 0x07 {
			m.setRAMBank(int(value))
		}
	default:
		if m.rtc != nil {
			m.rtc.writeLatch(value)
		}
	}
}

func (m *mbc3) SwitchableRAM() memory.Segment {
	switch {
	case m.selector <= 0x07:
		return m.banks.SwitchableRAM()
	case m.rtc != nil && m.selector <= RTCDaysHigh:
		return m.rtcView
	}
	return m.openBus
}

// RTC returns the real-time clock, or nil for cartridges without one.
func (m *mbc3) RTC() *RTC {
	return m.rtc
}
