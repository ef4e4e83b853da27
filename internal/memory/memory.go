// Package memory provides the fixed-size storage blocks that back the
// cartridge ROM and RAM banks, together with a decorator that allows
// individual reads and writes to be intercepted without duplicating the
// storage itself.
package memory

import "fmt"

// Segment represents a fixed-size block of byte addressable memory.
// Offsets are relative to the start of the segment.
type Segment interface {
	Read(offset uint16) uint8
	Write(offset uint16, value uint8)
	Len() int
}

// Buffer is a Segment backed by a byte slice. Accessing an offset
// outside the buffer is a programming error and panics.
type Buffer struct {
	data []byte
}

// NewBuffer returns a zero-filled Buffer of the given size.
func NewBuffer(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// NewBufferFrom returns a Buffer of the given size, initialised with
// as much of src as fits. Any remaining space is left zero-filled.
func NewBufferFrom(size int, src []byte) *Buffer {
	b := NewBuffer(size)
	copy(b.data, src)
	return b
}

// Read returns the value at the given offset.
func (b *Buffer) Read(offset uint16) uint8 {
	b.check(offset)
	return b.data[offset]
}

// Write writes the value to the given offset.
func (b *Buffer) Write(offset uint16, value uint8) {
	b.check(offset)
	b.data[offset] = value
}

// Len returns the size of the buffer in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the underlying storage. The slice is shared with
// the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

func (b *Buffer) check(offset uint16) {
	if int(offset) >= len(b.data) {
		panic(fmt.Sprintf("memory: offset 0x%04X out of range for segment of %d bytes", offset, len(b.data)))
	}
}

// Static is a read-only Segment that reads as 0xFF everywhere. It
// stands in for storage that is not physically present, such as the
// RAM of a cartridge that declares none.
type Static struct {
	size int
}

// NewStatic returns a Static segment of the given size.
func NewStatic(size int) *Static {
	return &Static{size: size}
}

// Read always returns 0xFF.
func (s *Static) Read(offset uint16) uint8 {
	if int(offset) >= s.size {
		panic(fmt.Sprintf("memory: offset 0x%04X out of range for segment of %d bytes", offset, s.size))
	}
	return 0xFF
}

// Write is a no-op.
func (s *Static) Write(uint16, uint8) {}

// Len returns the size of the segment in bytes.
func (s *Static) Len() int {
	return s.size
}
