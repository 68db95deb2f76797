package asf

import (
	"encoding/binary"

	bincur "github.com/simonhull/mediameta/internal/binary"
	"github.com/simonhull/mediameta/internal/registry"
	"github.com/simonhull/mediameta/internal/textenc"
	"github.com/simonhull/mediameta/internal/types"
	"github.com/simonhull/mediameta/internal/vorbis"
)

// objectHeaderSize is 16 bytes of GUID plus an 8-byte little-endian size.
const objectHeaderSize = 24

// preambleSize covers the ASF Header Object header: GUID (16) + size (8) +
// header count (4) + reserved (2).
const preambleSize = 30

// Extended Content Description value type 0 is a UTF-16LE string.
const valueTypeString = 0

// Decoder implements the registry.Decoder interface for WMA buffers.
type Decoder struct{}

// Decode verifies the ASF header GUID and walks the object stream.
//
// The walk stops at the end of the buffer or when an object declares a
// size that cannot advance the cursor.
func (d *Decoder) Decode(data []byte) (*types.RawFields, error) {
	fields := &types.RawFields{}
	c := bincur.NewCursor(data)

	head, err := c.Slice(0, preambleSize, "ASF header preamble")
	if err != nil || guid(head[:16]) != headerObjectGUID {
		return fields, &types.MalformedHeaderError{
			Format: "WMA",
			Reason: "missing ASF header GUID",
		}
	}

	offset := int64(preambleSize)
	for offset+objectHeaderSize <= c.Len() {
		objHeader, err := c.Slice(offset, objectHeaderSize, "ASF object header")
		if err != nil {
			break
		}
		objGUID := guid(objHeader[:16])
		objSize := int64(binary.LittleEndian.Uint64(objHeader[16:24]))

		if objSize <= objectHeaderSize {
			break
		}

		payload, err := c.Slice(offset+objectHeaderSize, int(objSize-objectHeaderSize), "ASF object payload")
		if err == nil {
			switch objGUID {
			case contentDescriptionGUID:
				parseContentDescription(payload, fields)
			case extendedContentGUID:
				parseExtendedContent(payload, fields)
			}
		}

		offset += objSize
	}

	return fields, nil
}

// parseContentDescription reads the fixed five-field object: 2-byte lengths
// for title, author, copyright, description and rating, followed by the
// UTF-16LE values in the same order. Only title and author are kept.
func parseContentDescription(data []byte, fields *types.RawFields) {
	if len(data) < 10 {
		return
	}

	lengths := make([]int, 5)
	for i := range lengths {
		lengths[i] = int(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
	}

	offset := 10
	for i, length := range lengths {
		if offset+length > len(data) {
			return
		}
		value := textenc.Decode(data[offset:offset+length], textenc.HintUTF16)
		if value != "" {
			switch i {
			case 0:
				fields.Title = value
			case 1:
				fields.Artist = value
			}
		}
		offset += length
	}
}

// parseExtendedContent reads name/type/value descriptor triples and keeps
// the string-typed WM/AlbumTitle and WM/Year entries.
func parseExtendedContent(data []byte, fields *types.RawFields) {
	if len(data) < 2 {
		return
	}
	count := int(binary.LittleEndian.Uint16(data[:2]))
	offset := 2

	for i := 0; i < count; i++ {
		if offset+2 > len(data) {
			return
		}
		nameLen := int(binary.LittleEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if offset+nameLen+4 > len(data) {
			return
		}
		name := textenc.Decode(data[offset:offset+nameLen], textenc.HintUTF16)
		offset += nameLen

		valueType := int(binary.LittleEndian.Uint16(data[offset : offset+2]))
		valueLen := int(binary.LittleEndian.Uint16(data[offset+2 : offset+4]))
		offset += 4
		if offset+valueLen > len(data) {
			return
		}
		value := data[offset : offset+valueLen]
		offset += valueLen

		if valueType != valueTypeString {
			continue
		}

		switch name {
		case "WM/AlbumTitle":
			if album := textenc.Decode(value, textenc.HintUTF16); album != "" {
				fields.Album = album
			}
		case "WM/Year":
			if year := vorbis.ParseYear(textenc.Decode(value, textenc.HintUTF16)); year > 0 {
				fields.Year = year
			}
		}
	}
}

func init() {
	registry.Register(types.FormatWMA, &Decoder{})
}
