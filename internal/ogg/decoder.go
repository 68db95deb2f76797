// Package ogg locates the Vorbis comment packet inside Ogg page framing.
package ogg

import (
	"bytes"

	"github.com/simonhull/mediameta/internal/binary"
	"github.com/simonhull/mediameta/internal/registry"
	"github.com/simonhull/mediameta/internal/types"
	"github.com/simonhull/mediameta/internal/vorbis"
)

// capturePattern marks the start of every Ogg page.
const capturePattern = "OggS"

// Comment packet type byte followed by the "vorbis" codec marker.
const commentPacketType = 3

// Decoder implements the registry.Decoder interface for Ogg Vorbis buffers.
type Decoder struct{}

// Decode scans Ogg pages for the first Vorbis comment packet.
//
// The scanner re-synchronizes on the "OggS" capture pattern byte by byte,
// so junk before the first page and between pages is tolerated. Only the
// first comment packet is used; multiplexed streams and comment packets
// split across pages are deliberately not handled.
func (d *Decoder) Decode(data []byte) (*types.RawFields, error) {
	fields := &types.RawFields{}
	c := binary.NewCursor(data)

	first := bytes.Index(data, []byte(capturePattern))
	if first < 0 {
		return fields, &types.MalformedHeaderError{
			Format: "Ogg",
			Reason: "missing OggS capture pattern",
		}
	}

	offset := int64(first)
	for offset < c.Len() {
		magic, err := c.String(offset, 4, "Ogg capture pattern")
		if err != nil {
			break
		}
		if magic != capturePattern {
			// Out of sync; slide forward one byte until the next page.
			offset++
			continue
		}

		// Segment table byte count lives at offset 26 of the page header.
		segmentCount, err := binary.Read[uint8](c, offset+26, "segment count")
		if err != nil {
			break
		}
		segments, err := c.Slice(offset+27, int(segmentCount), "segment table")
		if err != nil {
			break
		}

		payloadSize := 0
		for _, seg := range segments {
			payloadSize += int(seg)
		}

		payloadOffset := offset + 27 + int64(segmentCount)
		payload, err := c.Slice(payloadOffset, payloadSize, "page payload")
		if err != nil {
			break
		}

		if len(payload) >= 7 &&
			payload[0] == commentPacketType &&
			string(payload[1:7]) == "vorbis" {
			_ = vorbis.ParseBlock(payload[7:], fields)
			break
		}

		offset = payloadOffset + int64(payloadSize)
	}

	return fields, nil
}

func init() {
	registry.Register(types.FormatOgg, &Decoder{})
}
