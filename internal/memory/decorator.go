package memory

// ReadFunc reads a byte from a segment.
type ReadFunc func(offset uint16) uint8

// WriteFunc writes a byte to a segment.
type WriteFunc func(offset uint16, value uint8)

// Decorator wraps a Segment, passing every access through to it unless
// an override has been installed. Overrides receive the wrapped
// segment's accessor so that they can delegate after inspecting or
// altering the access.
type Decorator struct {
	Segment

	OnRead  func(offset uint16, next ReadFunc) uint8
	OnWrite func(offset uint16, value uint8, next WriteFunc)
}

// Decorate returns a Decorator over s with no overrides installed.
func Decorate(s Segment) *Decorator {
	return &Decorator{Segment: s}
}

// Read returns the value at offset, via OnRead if set.
func (d *Decorator) Read(offset uint16) uint8 {
	if d.OnRead != nil {
		return d.OnRead(offset, d.Segment.Read)
	}
	return d.Segment.Read(offset)
}

// Write writes value to offset, via OnWrite if set.
func (d *Decorator) Write(offset uint16, value uint8) {
	if d.OnWrite != nil {
		d.OnWrite(offset, value, d.Segment.Write)
		return
	}
	d.Segment.Write(offset, value)
}
