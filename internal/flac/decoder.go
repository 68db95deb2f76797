// Package flac decodes metadata blocks from FLAC buffers.
package flac

import (
	"github.com/simonhull/mediameta/internal/artwork"
	"github.com/simonhull/mediameta/internal/binary"
	"github.com/simonhull/mediameta/internal/registry"
	"github.com/simonhull/mediameta/internal/types"
	"github.com/simonhull/mediameta/internal/vorbis"
)

// Metadata block types.
const (
	blockTypeVorbisComment = 4
	blockTypePicture       = 6
)

// Decoder implements the registry.Decoder interface for FLAC buffers.
type Decoder struct{}

// Decode verifies the "fLaC" magic and walks the metadata block list.
//
// The walk stops at the last-block flag, the end of the buffer, or the
// first unreadable block header; fields found before the stop are kept.
func (d *Decoder) Decode(data []byte) (*types.RawFields, error) {
	fields := &types.RawFields{}
	c := binary.NewCursor(data)

	magic, err := c.String(0, 4, "FLAC magic")
	if err != nil || magic != "fLaC" {
		return fields, &types.MalformedHeaderError{
			Format: "FLAC",
			Reason: "missing fLaC magic bytes",
		}
	}

	offset := int64(4)
	for offset < c.Len() {
		// Block header: 1 byte [last-block flag | type], 3 bytes length.
		header, err := binary.Read[uint8](c, offset, "metadata block header")
		if err != nil {
			break
		}
		isLast := header&0x80 != 0
		blockType := header & 0x7F

		blockLength, err := binary.ReadUint24(c, offset+1, "metadata block length")
		if err != nil {
			break
		}
		offset += 4

		switch blockType {
		case blockTypeVorbisComment:
			if block, err := c.Slice(offset, int(blockLength), "VORBIS_COMMENT block"); err == nil {
				_ = vorbis.ParseBlock(block, fields)
			}
		case blockTypePicture:
			if fields.Image == nil {
				fields.Image = parsePicture(c, offset, int64(blockLength))
			}
		}

		offset += int64(blockLength)
		if isLast {
			break
		}
	}

	return fields, nil
}

// parsePicture extracts the image payload from a PICTURE block.
//
// Layout: picture type (4), MIME length + string, description length +
// string, 4×4 bytes of dimension/depth fields, data length + bytes. All
// integers big-endian.
func parsePicture(c *binary.Cursor, offset, blockLength int64) *types.Image {
	end := offset + blockLength
	cur := offset + 4 // picture type, unused

	mimeLength, err := binary.Read[uint32](c, cur, "picture MIME length")
	if err != nil {
		return nil
	}
	cur += 4
	mimeType, err := c.String(cur, int(mimeLength), "picture MIME type")
	if err != nil {
		return nil
	}
	cur += int64(mimeLength)

	descLength, err := binary.Read[uint32](c, cur, "picture description length")
	if err != nil {
		return nil
	}
	cur += 4 + int64(descLength)

	// Width, height, color depth, indexed colors: skipped.
	cur += 16

	dataLength, err := binary.Read[uint32](c, cur, "picture data length")
	if err != nil {
		return nil
	}
	cur += 4

	if cur+int64(dataLength) > end || cur+int64(dataLength) > c.Len() {
		return nil
	}
	payload, err := c.Slice(cur, int(dataLength), "picture data")
	if err != nil {
		return nil
	}

	return artwork.NewImage(payload, mimeType)
}

func init() {
	registry.Register(types.FormatFLAC, &Decoder{})
}
