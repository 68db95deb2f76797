// Package wav decodes RIFF/WAV chunk lists, including nested LIST/INFO
// metadata and embedded ID3 chunks.
package wav

import (
	"github.com/simonhull/mediameta/internal/binary"
	"github.com/simonhull/mediameta/internal/id3"
	"github.com/simonhull/mediameta/internal/registry"
	"github.com/simonhull/mediameta/internal/textenc"
	"github.com/simonhull/mediameta/internal/types"
	"github.com/simonhull/mediameta/internal/vorbis"
)

// Decoder implements the registry.Decoder interface for WAV buffers.
type Decoder struct{}

// id3Decoder handles embedded "id3 " chunk payloads. One level of
// recursion only: an ID3 chunk inside the embedded tag is not followed.
var id3Decoder = &id3.Decoder{}

// Decode verifies the RIFF header and walks the chunk list.
//
// All chunk sizes are padded to even length per RIFF convention. The walk
// stops at the end of the buffer or an unreadable chunk header.
func (d *Decoder) Decode(data []byte) (*types.RawFields, error) {
	fields := &types.RawFields{}
	c := binary.NewCursor(data)

	if magic, err := c.String(0, 4, "RIFF magic"); err != nil || magic != "RIFF" {
		return fields, &types.MalformedHeaderError{
			Format: "WAV",
			Reason: "missing RIFF magic bytes",
		}
	}

	// 12-byte header: "RIFF" + file size + "WAVE".
	offset := int64(12)

	for offset+8 <= c.Len() {
		chunkID, err := c.String(offset, 4, "chunk ID")
		if err != nil {
			break
		}
		chunkSize, err := binary.ReadLE[uint32](c, offset+4, "chunk size")
		if err != nil {
			break
		}
		if chunkSize == 0 || offset+8+int64(chunkSize) < offset {
			break
		}

		switch chunkID {
		case "LIST":
			if subType, err := c.String(offset+8, 4, "LIST sub-type"); err == nil && subType == "INFO" {
				parseInfoList(c, offset+12, int64(chunkSize)-4, fields)
			}
		case "id3 ":
			if payload, err := c.Slice(offset+8, int(chunkSize), "id3 chunk payload"); err == nil {
				mergeEmbeddedID3(payload, fields)
			}
		}

		// Chunk data is padded to even length.
		offset += 8 + int64(chunkSize)
		if chunkSize%2 == 1 {
			offset++
		}
	}

	return fields, nil
}

// infoFields maps LIST/INFO field IDs onto the tag record.
var infoFields = map[string]func(*types.RawFields, string){
	"INAM": func(f *types.RawFields, v string) { f.Title = v },
	"IART": func(f *types.RawFields, v string) { f.Artist = v },
	"IPRD": func(f *types.RawFields, v string) { f.Album = v },
	"IGNR": func(f *types.RawFields, v string) { f.Genre = v },
	"ICRD": func(f *types.RawFields, v string) {
		if year := vorbis.ParseYear(v); year > 0 {
			f.Year = year
		}
	},
}

// parseInfoList walks the sub-chunks of a LIST/INFO chunk. Each field is a
// length-prefixed string padded to even length.
func parseInfoList(c *binary.Cursor, offset, length int64, fields *types.RawFields) {
	end := offset + length
	if end > c.Len() {
		end = c.Len()
	}

	for offset+8 <= end {
		fieldID, err := c.String(offset, 4, "INFO field ID")
		if err != nil {
			return
		}
		fieldSize, err := binary.ReadLE[uint32](c, offset+4, "INFO field size")
		if err != nil || fieldSize == 0 {
			return
		}

		value, err := c.Slice(offset+8, int(fieldSize), "INFO field value")
		if err != nil {
			return
		}

		if apply, ok := infoFields[fieldID]; ok {
			if text := textenc.Decode(value, textenc.HintLegacy); text != "" {
				apply(fields, text)
			}
		}

		offset += 8 + int64(fieldSize)
		if fieldSize%2 == 1 {
			offset++
		}
	}
}

// mergeEmbeddedID3 re-enters the ID3 decoder on an embedded chunk payload
// and fills fields the INFO list did not provide.
func mergeEmbeddedID3(payload []byte, fields *types.RawFields) {
	embedded, err := id3Decoder.Decode(payload)
	if err != nil && embedded.Empty() {
		return
	}

	if fields.Title == "" {
		fields.Title = embedded.Title
	}
	if fields.Artist == "" {
		fields.Artist = embedded.Artist
	}
	if fields.Album == "" {
		fields.Album = embedded.Album
	}
	if fields.Genre == "" {
		fields.Genre = embedded.Genre
	}
	if fields.Year == 0 {
		fields.Year = embedded.Year
	}
	if fields.Track == 0 {
		fields.Track = embedded.Track
	}
	if fields.Image == nil {
		fields.Image = embedded.Image
	}
}

func init() {
	registry.Register(types.FormatWAV, &Decoder{})
}
