package mp4

import (
	"github.com/simonhull/mediameta/internal/artwork"
	"github.com/simonhull/mediameta/internal/binary"
	"github.com/simonhull/mediameta/internal/registry"
	"github.com/simonhull/mediameta/internal/textenc"
	"github.com/simonhull/mediameta/internal/types"
)

// data atom type-flag values.
const (
	flagUTF8Text = 1
	flagJPEG     = 13
	flagPNG      = 14
)

// Decoder implements the registry.Decoder interface for MP4 buffers.
type Decoder struct{}

// Decode walks moov/udta/meta/ilst and maps iTunes metadata atoms to tag
// fields. A buffer without that atom path yields empty fields, not an
// error: MP4 carries no mandatory magic for the metadata tree.
func (d *Decoder) Decode(data []byte) (*types.RawFields, error) {
	fields := &types.RawFields{}
	c := binary.NewCursor(data)

	moov, err := findAtom(c, 0, c.Len(), "moov")
	if err != nil {
		return fields, nil
	}
	udta, err := findAtom(c, moov.DataOffset(), moov.DataOffset()+moov.DataSize(), "udta")
	if err != nil {
		return fields, nil
	}
	meta, err := findAtom(c, udta.DataOffset(), udta.DataOffset()+udta.DataSize(), "meta")
	if err != nil {
		return fields, nil
	}
	// meta is a full atom: 4 bytes of version/flags precede its children.
	ilst, err := findAtom(c, meta.DataOffset()+4, meta.DataOffset()+meta.DataSize(), "ilst")
	if err != nil {
		return fields, nil
	}

	walkIlst(c, ilst, fields)
	return fields, nil
}

// walkIlst visits every child of ilst and maps known tags. Corrupt child
// atoms stop the walk, keeping what was already found.
func walkIlst(c *binary.Cursor, ilst *Atom, fields *types.RawFields) {
	offset := ilst.DataOffset()
	end := offset + ilst.DataSize()
	if end > c.Len() {
		end = c.Len()
	}

	for offset < end {
		tag, err := readAtomHeader(c, offset)
		if err != nil {
			return
		}

		value, flags, ok := readDataValue(c, tag)
		if ok {
			applyTag(tag.Type, value, flags, fields)
		}

		next := offset + int64(tag.Size)
		if next <= offset {
			return
		}
		offset = next
	}
}

// readDataValue extracts the payload and type flags of a tag's "data"
// sub-atom.
func readDataValue(c *binary.Cursor, tag *Atom) ([]byte, uint32, bool) {
	data, err := findAtom(c, tag.DataOffset(), tag.DataOffset()+tag.DataSize(), "data")
	if err != nil {
		return nil, 0, false
	}

	// Payload layout: [1-byte version + 3-byte flags][4 bytes locale][value]
	word, err := binary.Read[uint32](c, data.DataOffset(), "data atom flags")
	if err != nil {
		return nil, 0, false
	}
	flags := word & 0x00FFFFFF

	valueSize := data.DataSize() - 8
	if valueSize <= 0 {
		return nil, 0, false
	}
	value, err := c.Slice(data.DataOffset()+8, int(valueSize), "data atom value")
	if err != nil {
		return nil, 0, false
	}

	return value, flags, true
}

// applyTag maps one ilst tag onto the field set.
//
// In MP4 atom names the copyright sign is byte 0xA9, so "©nam" is "\xA9nam".
func applyTag(atomType string, value []byte, flags uint32, fields *types.RawFields) {
	if atomType == "covr" {
		if fields.Image != nil {
			return
		}
		// covr payloads are the raw image bytes; the flags word names
		// the codec, the payload itself settles any disagreement.
		mimeType := ""
		switch flags {
		case flagJPEG:
			mimeType = "image/jpeg"
		case flagPNG:
			mimeType = "image/png"
		}
		fields.Image = artwork.NewImage(value, mimeType)
		return
	}

	if atomType == "trkn" {
		// Binary layout: 2 bytes reserved, 2 bytes number, 2 bytes total.
		if len(value) >= 4 {
			fields.Track = int(value[2])<<8 | int(value[3])
		}
		return
	}

	if flags != flagUTF8Text {
		return
	}
	text := textenc.Decode(value, textenc.HintUTF8)
	if text == "" {
		return
	}

	switch atomType {
	case "\xA9nam":
		fields.Title = text
	case "\xA9ART", "aART":
		// First non-empty artist wins.
		if fields.Artist == "" {
			fields.Artist = text
		}
	case "\xA9alb":
		fields.Album = text
	case "\xA9gen":
		fields.Genre = text
	case "\xA9day":
		if year := parseYear(text); year > 0 {
			fields.Year = year
		}
	}
}

// parseYear extracts a plausible year from "2004" or "2004-02-10T00:00:00Z".
func parseYear(text string) int {
	if len(text) < 4 {
		return 0
	}
	year := 0
	for _, r := range text[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	if year < 1000 || year > 2999 {
		return 0
	}
	return year
}

func init() {
	registry.Register(types.FormatMP4, &Decoder{})
}
