// Package mp4 decodes iTunes-style metadata atoms from M4A/MP4/AAC buffers.
package mp4

import (
	"fmt"

	"github.com/simonhull/mediameta/internal/binary"
)

// Atom represents an MP4/ISO-BMFF atom (box).
type Atom struct {
	Size     uint64 // Total size including header
	Type     string // 4-character type code
	Offset   int64  // Position in buffer
	Extended bool   // Whether this uses 64-bit extended size
}

// DataSize returns the size of the atom's payload (excluding header).
func (a *Atom) DataSize() int64 {
	headerSize := uint64(8)
	if a.Extended {
		headerSize = 16
	}
	if a.Size < headerSize {
		return 0
	}
	return int64(a.Size - headerSize)
}

// DataOffset returns the buffer offset where the atom's payload starts.
func (a *Atom) DataOffset() int64 {
	headerSize := int64(8)
	if a.Extended {
		headerSize = 16
	}
	return a.Offset + headerSize
}

// readAtomHeader reads an atom header at the given offset.
func readAtomHeader(c *binary.Cursor, offset int64) (*Atom, error) {
	size32, err := binary.Read[uint32](c, offset, "atom size")
	if err != nil {
		return nil, err
	}

	atomType, err := c.String(offset+4, 4, "atom type")
	if err != nil {
		return nil, err
	}

	atom := &Atom{
		Type:   atomType,
		Offset: offset,
	}

	// size == 1 means a 64-bit extended size follows the type.
	if size32 == 1 {
		size64, err := binary.Read[uint64](c, offset+8, "extended atom size")
		if err != nil {
			return nil, err
		}
		atom.Size = size64
		atom.Extended = true
	} else {
		atom.Size = uint64(size32)
	}

	// Sizes below the header length cannot advance the walk; treat as
	// corruption and stop at this level.
	if atom.Size < 8 {
		return nil, fmt.Errorf("invalid atom size %d at offset %d", atom.Size, offset)
	}

	return atom, nil
}

// findAtom scans [start, end) for the first atom of the given type.
func findAtom(c *binary.Cursor, start, end int64, atomType string) (*Atom, error) {
	offset := start

	for offset < end {
		atom, err := readAtomHeader(c, offset)
		if err != nil {
			return nil, err
		}

		if atom.Type == atomType {
			return atom, nil
		}

		next := offset + int64(atom.Size)
		if next <= offset {
			return nil, fmt.Errorf("atom walk stalled at offset %d", offset)
		}
		offset = next
	}

	return nil, fmt.Errorf("atom %q not found", atomType)
}
