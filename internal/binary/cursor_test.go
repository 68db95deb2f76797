package binary

import (
	"errors"
	"testing"
)

func TestCursor_Slice(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4, 5})

	b, err := c.Slice(1, 3, "test bytes")
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if len(b) != 3 || b[0] != 2 || b[2] != 4 {
		t.Errorf("Slice returned %v, want [2 3 4]", b)
	}
}

func TestCursor_SliceZeroLengthAtEnd(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})

	b, err := c.Slice(3, 0, "empty tail")
	if err != nil {
		t.Fatalf("zero-length slice at the buffer end failed: %v", err)
	}
	if len(b) != 0 {
		t.Errorf("Slice returned %v, want empty", b)
	}

	if _, err := c.Slice(4, 0, "past end"); err == nil {
		t.Error("zero-length slice past the buffer end should fail")
	}
}

func TestCursor_SliceOutOfRange(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})

	tests := []struct {
		name   string
		offset int64
		length int
	}{
		{"past end", 2, 5},
		{"offset beyond buffer", 10, 1},
		{"negative offset", -1, 1},
		{"negative length", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Slice(tt.offset, tt.length, "test")
			var oor *OutOfRangeError
			if !errors.As(err, &oor) {
				t.Errorf("Slice(%d, %d) error = %v, want *OutOfRangeError", tt.offset, tt.length, err)
			}
		})
	}
}

func TestRead_BigEndian(t *testing.T) {
	c := NewCursor([]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0})

	u8, err := Read[uint8](c, 0, "u8")
	if err != nil || u8 != 0x12 {
		t.Errorf("Read[uint8] = %#x, %v; want 0x12", u8, err)
	}

	u16, err := Read[uint16](c, 0, "u16")
	if err != nil || u16 != 0x1234 {
		t.Errorf("Read[uint16] = %#x, %v; want 0x1234", u16, err)
	}

	u32, err := Read[uint32](c, 0, "u32")
	if err != nil || u32 != 0x12345678 {
		t.Errorf("Read[uint32] = %#x, %v; want 0x12345678", u32, err)
	}

	u64, err := Read[uint64](c, 0, "u64")
	if err != nil || u64 != 0x123456789ABCDEF0 {
		t.Errorf("Read[uint64] = %#x, %v; want 0x123456789abcdef0", u64, err)
	}
}

func TestRead_LittleEndian(t *testing.T) {
	c := NewCursor([]byte{0x78, 0x56, 0x34, 0x12})

	u32, err := ReadLE[uint32](c, 0, "u32")
	if err != nil || u32 != 0x12345678 {
		t.Errorf("ReadLE[uint32] = %#x, %v; want 0x12345678", u32, err)
	}

	u16, err := ReadLE[uint16](c, 0, "u16")
	if err != nil || u16 != 0x5678 {
		t.Errorf("ReadLE[uint16] = %#x, %v; want 0x5678", u16, err)
	}
}

func TestRead_OutOfRange(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})

	if _, err := Read[uint32](c, 0, "u32"); err == nil {
		t.Error("Read[uint32] on 2-byte buffer should fail")
	}
	if _, err := Read[uint16](c, 1, "u16"); err == nil {
		t.Error("Read[uint16] at offset 1 of 2-byte buffer should fail")
	}
}

func TestReadUint24(t *testing.T) {
	c := NewCursor([]byte{0x00, 0x00, 0x22})

	v, err := ReadUint24(c, 0, "block length")
	if err != nil || v != 34 {
		t.Errorf("ReadUint24 = %d, %v; want 34", v, err)
	}
}

func TestCursor_String(t *testing.T) {
	c := NewCursor([]byte("fLaCrest"))

	s, err := c.String(0, 4, "magic")
	if err != nil || s != "fLaC" {
		t.Errorf("String = %q, %v; want \"fLaC\"", s, err)
	}
}
