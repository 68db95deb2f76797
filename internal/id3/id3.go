// Package id3 decodes ID3v1 trailers and ID3v2.2/2.3/2.4 tag headers.
package id3

import (
	"bytes"

	"github.com/simonhull/mediameta/internal/artwork"
	"github.com/simonhull/mediameta/internal/binary"
	"github.com/simonhull/mediameta/internal/registry"
	"github.com/simonhull/mediameta/internal/textenc"
	"github.com/simonhull/mediameta/internal/types"
)

// Decoder implements the registry.Decoder interface for MP3 files.
type Decoder struct{}

// Decode extracts tag fields from an MP3 buffer.
//
// An ID3v2 header at the start of the buffer is preferred; a 128-byte ID3v1
// trailer at the end fills in any fields v2 left empty. A buffer carrying
// neither yields empty fields and a MalformedHeaderError.
func (d *Decoder) Decode(data []byte) (*types.RawFields, error) {
	fields := &types.RawFields{}

	hasV2 := len(data) >= 10 && string(data[:3]) == "ID3"
	if hasV2 {
		parseV2(binary.NewCursor(data), fields)
	}

	// The v1 trailer is a fallback for fields v2 did not carry.
	hasV1 := parseV1(data, fields)

	if !hasV2 && !hasV1 {
		return fields, &types.MalformedHeaderError{
			Format: "ID3",
			Reason: "no ID3v2 header and no ID3v1 trailer",
		}
	}
	return fields, nil
}

// frameKey identifies the metadata field a frame maps to.
type frameKey int

const (
	keyNone frameKey = iota
	keyTitle
	keyArtist
	keyAlbum
	keyYear
	keyGenre
	keyTrack
	keyImage
)

// Frame ID tables per tag version. v2.2 uses 3-character IDs.
var (
	framesV23 = map[string]frameKey{
		"TIT2": keyTitle, "TPE1": keyArtist, "TALB": keyAlbum,
		"TYER": keyYear, "TDRC": keyYear, "TCON": keyGenre,
		"TRCK": keyTrack, "APIC": keyImage,
	}
	framesV22 = map[string]frameKey{
		"TT2": keyTitle, "TP1": keyArtist, "TAL": keyAlbum,
		"TYE": keyYear, "TCO": keyGenre, "TRK": keyTrack,
		"PIC": keyImage,
	}
)

// parseV2 walks the ID3v2 frame list. Corrupt or truncated frames stop the
// walk; fields found before the stop are kept.
func parseV2(c *binary.Cursor, fields *types.RawFields) {
	header, err := c.Slice(0, 10, "ID3v2 header")
	if err != nil {
		return
	}

	version := header[3]
	flags := header[5]
	tagSize := decodeSynchsafe(header[6:10])

	if version != 2 && version != 3 && version != 4 {
		return
	}

	// Frame header geometry varies by version.
	idLen := 4
	headerLen := int64(10)
	if version == 2 {
		idLen = 3
		headerLen = 6
	}

	offset := int64(10)

	// Skip the extended header if present (v2.3/v2.4 only).
	if version >= 3 && flags&0x40 != 0 {
		if extBuf, err := c.Slice(offset, 4, "extended header size"); err == nil {
			if version == 4 {
				offset += int64(decodeSynchsafe(extBuf))
			} else {
				offset += int64(be32(extBuf)) + 4
			}
		}
	}

	tagEnd := int64(10) + int64(tagSize)
	if tagEnd > c.Len() {
		tagEnd = c.Len()
	}

	for offset+headerLen <= tagEnd {
		frameHeader, err := c.Slice(offset, int(headerLen), "frame header")
		if err != nil {
			break
		}

		// Padding bytes mark the end of the frame list.
		if frameHeader[0] == 0 {
			break
		}

		frameID := string(frameHeader[:idLen])
		var frameSize int64
		switch version {
		case 2:
			frameSize = int64(frameHeader[3])<<16 | int64(frameHeader[4])<<8 | int64(frameHeader[5])
		case 3:
			frameSize = int64(be32(frameHeader[4:8]))
		default: // v2.4: synchsafe
			frameSize = int64(decodeSynchsafe(frameHeader[4:8]))
		}

		// Zero or overflowing sizes mean corruption; stop and keep
		// whatever was already found.
		if frameSize <= 0 || offset+headerLen+frameSize > c.Len() {
			break
		}

		frameData, err := c.Slice(offset+headerLen, int(frameSize), "frame data")
		if err != nil {
			break
		}

		table := framesV23
		if version == 2 {
			table = framesV22
		}

		switch table[frameID] {
		case keyImage:
			if fields.Image == nil {
				fields.Image = parseImageFrame(frameData, version)
			}
		case keyNone:
			// Unknown frame, skipped by size.
		default:
			applyTextFrame(table[frameID], frameData, fields)
		}

		offset += headerLen + frameSize
	}
}

// applyTextFrame decodes a text frame (encoding byte + payload) into the
// matching field.
func applyTextFrame(key frameKey, data []byte, fields *types.RawFields) {
	if len(data) < 2 {
		return
	}
	text := textenc.Decode(data[1:], data[0])
	if text == "" {
		return
	}

	switch key {
	case keyTitle:
		fields.Title = text
	case keyArtist:
		fields.Artist = text
	case keyAlbum:
		fields.Album = text
	case keyYear:
		if year := parseYear(text); year > 0 {
			fields.Year = year
		}
	case keyGenre:
		if genre := normalizeGenre(text); genre != "" {
			fields.Genre = genre
		}
	case keyTrack:
		if track := parseTrack(text); track > 0 {
			fields.Track = track
		}
	}
}

// parseImageFrame extracts the picture payload from an APIC (v2.3/2.4) or
// PIC (v2.2) frame.
//
// APIC: [encoding][MIME\0][picture type][description\0*][image data]
// PIC:  [encoding][format(3)][picture type][description\0*][image data]
func parseImageFrame(data []byte, version byte) *types.Image {
	if len(data) < 2 {
		return nil
	}

	encoding := data[0]
	rest := data[1:]
	mimeType := ""

	if version == 2 {
		if len(rest) < 4 {
			return nil
		}
		switch string(rest[:3]) {
		case "JPG":
			mimeType = "image/jpeg"
		case "PNG":
			mimeType = "image/png"
		}
		rest = rest[3:]
	} else {
		// MIME type is a NUL-terminated ISO-8859-1 string.
		nul := bytes.IndexByte(rest, 0)
		if nul < 0 {
			return nil
		}
		mimeType = string(rest[:nul])
		rest = rest[nul+1:]
	}

	// Picture type byte.
	if len(rest) < 1 {
		return nil
	}
	rest = rest[1:]

	// Description: NUL-terminated, terminator width depends on encoding.
	nul := findNullTerminator(rest, encoding)
	if nul < 0 {
		return nil
	}
	rest = rest[nul+terminatorSize(encoding):]

	if len(rest) == 0 {
		return nil
	}
	return artwork.NewImage(rest, mimeType)
}

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte).
// ID3v2 uses 7-bit encoding where bit 7 is always 0.
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// findNullTerminator finds the text terminator for the given encoding.
// UTF-16 variants use a double-byte terminator.
func findNullTerminator(data []byte, encoding byte) int {
	switch encoding {
	case 1, 2:
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1
	default:
		return bytes.IndexByte(data, 0)
	}
}

// terminatorSize returns the terminator width for the encoding.
func terminatorSize(encoding byte) int {
	if encoding == 1 || encoding == 2 {
		return 2
	}
	return 1
}

func init() {
	registry.Register(types.FormatMP3, &Decoder{})
}
