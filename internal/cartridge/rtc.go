package cartridge

// RTC register selectors, as written to 0x4000-0x5FFF.
const (
	RTCSeconds uint8 = 0x08 + iota
	RTCMinutes
	RTCHours
	RTCDaysLow
	RTCDaysHigh
)

const (
	secondsPerDay = 24 * 60 * 60
	maxDays       = 512

	rtcDayHigh  = 0x01
	rtcHalt     = 0x40
	rtcOverflow = 0x80
)

// RTC is the real-time clock of the MBC3. Rather than ticking, it stores
// the epoch second at which the counter was zero and derives the current
// value from the clock whenever it is needed.
type RTC struct {
	clock Clock

	// base is the epoch second at which the counter read zero. While
	// halted, held is the counter value instead.
	base     int64
	held     int64
	halted   bool
	overflow bool

	latched    [5]uint8
	latchArmed bool
}

// NewRTC returns an RTC counting from zero.
func NewRTC(clock Clock) *RTC {
	return &RTC{clock: clock, base: clock.Now()}
}

// elapsed returns the counter in seconds, folding any day counter
// overflow into the sticky overflow flag.
func (r *RTC) elapsed() int64 {
	if r.halted {
		return r.held
	}

	now := r.clock.Now()
	total := now - r.base
	if total < 0 {
		// the clock went backwards, restart from zero
		r.base, total = now, 0
	}
	if total >= maxDays*secondsPerDay {
		r.overflow = true
		wraps := total / (maxDays * secondsPerDay)
		r.base += wraps * maxDays * secondsPerDay
		total -= wraps * maxDays * secondsPerDay
	}
	return total
}

// set replaces the counter value.
func (r *RTC) set(total int64) {
	if r.halted {
		r.held = total
		return
	}
	r.base = r.clock.Now() - total
}

// Registers returns the live register values, ordered S, M, H, DL, DH.
func (r *RTC) Registers() [5]uint8 {
	total := r.elapsed()
	days := total / secondsPerDay

	dh := uint8(days>>8) & rtcDayHigh
	if r.halted {
		dh |= rtcHalt
	}
	if r.overflow {
		dh |= rtcOverflow
	}
	return [5]uint8{
		uint8(total % 60),
		uint8(total / 60 % 60),
		uint8(total / 3600 % 24),
		uint8(days),
		dh,
	}
}

// Latch freezes the current register values for reading.
func (r *RTC) Latch() {
	r.latched = r.Registers()
}

// writeLatch handles a write to 0x6000-0x7FFF. Writing 0x00 then 0x01
// latches the clock.
func (r *RTC) writeLatch(value uint8) {
	if r.latchArmed && value == 0x01 {
		r.Latch()
	}
	r.latchArmed = value == 0x00
}

// Read returns the latched value of the selected register.
func (r *RTC) Read(register uint8) uint8 {
	if register < RTCSeconds || register > RTCDaysHigh {
		return 0xFF
	}
	return r.latched[register-RTCSeconds]
}

// Write sets the selected register. Seconds and minutes are clamped to
// 59 and hours to 23.
func (r *RTC) Write(register uint8, value uint8) {
	total := r.elapsed()
	s, m, h, d := total%60, total/60%60, total/3600%24, total/secondsPerDay

	switch register {
	case RTCSeconds:
		s = clamp(value, 59)
	case RTCMinutes:
		m = clamp(value, 59)
	case RTCHours:
		h = clamp(value, 23)
	case RTCDaysLow:
		d = d&0x100 | int64(value)
	case RTCDaysHigh:
		d = d&0xFF | int64(value&rtcDayHigh)<<8
		r.overflow = value&rtcOverflow != 0

		total = d*secondsPerDay + h*3600 + m*60 + s
		switch halt := value&rtcHalt != 0; {
		case halt && !r.halted:
			r.halted, r.held = true, total
		case !halt && r.halted:
			r.halted = false
			r.base = r.clock.Now() - total
		}
	default:
		return
	}
	r.set(d*secondsPerDay + h*3600 + m*60 + s)
}

func clamp(v, limit uint8) int64 {
	if v > limit {
		v = limit
	}
	return int64(v)
}
