package cartridge

import "time"

// Clock is the time source of the real-time clock.
type Clock interface {
	// Now returns the current time in seconds since the Unix epoch.
	Now() int64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().Unix()
}
