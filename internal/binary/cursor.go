// Package binary provides type-safe binary reading primitives with bounds checking.
package binary

import (
	"encoding/binary"
	"fmt"
)

// OutOfRangeError is returned when a read would pass the end of the buffer.
//
// Decoders treat this as "stop parsing the current block and keep whatever
// was already found", never as a fatal condition.
type OutOfRangeError struct {
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfRangeError) Error() string {
	if e.Offset >= e.Size || e.Offset < 0 {
		return fmt.Sprintf("offset %d out of range (buffer size: %d) while reading %s",
			e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("read of %d bytes at offset %d would exceed buffer size %d while reading %s",
		e.Length, e.Offset, e.Size, e.What)
}

// Cursor wraps an immutable byte buffer with bounds-checked random access.
//
// All accessors return borrowed sub-slices of the underlying buffer; callers
// must not modify them. Every multi-byte read is preceded by a length check,
// so a truncated or corrupt buffer surfaces as an *OutOfRangeError rather
// than a panic.
type Cursor struct {
	data []byte
}

// NewCursor creates a Cursor over data. The buffer is not copied.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Len returns the buffer length in bytes.
func (c *Cursor) Len() int64 {
	return int64(len(c.data))
}

// Slice returns a borrowed view of length bytes at off with context for
// error messages. A zero-length slice at off == Len() is valid.
func (c *Cursor) Slice(off int64, length int, what string) ([]byte, error) {
	if off < 0 || off > int64(len(c.data)) {
		return nil, &OutOfRangeError{What: what, Offset: off, Length: length, Size: c.Len()}
	}
	if length < 0 || off+int64(length) > int64(len(c.data)) {
		return nil, &OutOfRangeError{What: what, Offset: off, Length: length, Size: c.Len()}
	}
	return c.data[off : off+int64(length)], nil
}

// String reads a fixed-length raw string at off.
func (c *Cursor) String(off int64, length int, what string) (string, error) {
	b, err := c.Slice(off, length, what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian is used by MP4 atoms, ID3v2 frames and FLAC block headers.
	BigEndian Endianness = iota

	// LittleEndian is used by Vorbis comments, RIFF/WAV chunks and ASF objects.
	LittleEndian
)

// Read reads a numeric value of type T at the given offset, big-endian.
func Read[T uint8 | uint16 | uint32 | uint64](c *Cursor, off int64, what string) (T, error) {
	return ReadEndian[T](c, off, what, BigEndian)
}

// ReadBE reads a numeric value of type T at the given offset, big-endian.
// Equivalent to Read() but explicit about byte order.
func ReadBE[T uint8 | uint16 | uint32 | uint64](c *Cursor, off int64, what string) (T, error) {
	return ReadEndian[T](c, off, what, BigEndian)
}

// ReadLE reads a numeric value of type T at the given offset, little-endian.
func ReadLE[T uint8 | uint16 | uint32 | uint64](c *Cursor, off int64, what string) (T, error) {
	return ReadEndian[T](c, off, what, LittleEndian)
}

// ReadEndian reads a numeric value of type T at the given offset with the
// specified byte order. Most code should use the Read/ReadLE/ReadBE wrappers.
func ReadEndian[T uint8 | uint16 | uint32 | uint64](c *Cursor, off int64, what string, endian Endianness) (T, error) {
	var zero T
	var size int

	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	buf, err := c.Slice(off, size, what)
	if err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		if endian == LittleEndian {
			val = T(binary.LittleEndian.Uint16(buf))
		} else {
			val = T(binary.BigEndian.Uint16(buf))
		}
	case uint32:
		if endian == LittleEndian {
			val = T(binary.LittleEndian.Uint32(buf))
		} else {
			val = T(binary.BigEndian.Uint32(buf))
		}
	case uint64:
		if endian == LittleEndian {
			val = T(binary.LittleEndian.Uint64(buf))
		} else {
			val = T(binary.BigEndian.Uint64(buf))
		}
	}

	return val, nil
}

// ReadUint24 reads a 24-bit big-endian value (FLAC block lengths, ID3v2.2
// frame sizes).
func ReadUint24(c *Cursor, off int64, what string) (uint32, error) {
	buf, err := c.Slice(off, 3, what)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2]), nil
}
