// Package vorbis provides shared Vorbis comment parsing.
//
// Vorbis comments are used by both FLAC and Ogg Vorbis. The format is
// identical: length-prefixed UTF-8 strings in "KEY=value" form, preceded by
// a length-prefixed vendor string and a comment count, all lengths 32-bit
// little-endian.
package vorbis

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/simonhull/mediameta/internal/textenc"
	"github.com/simonhull/mediameta/internal/types"
)

// ParseBlock walks a raw Vorbis comment block and fills fields.
//
// Truncated blocks are not an error: parsing stops at the cut and whatever
// was already mapped is kept.
func ParseBlock(data []byte, fields *types.RawFields) error {
	offset := 0

	// Vendor string: length-prefixed, skipped.
	if offset+4 > len(data) {
		return fmt.Errorf("truncated vendor length")
	}
	vendorLen := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4
	if vendorLen < 0 || offset+vendorLen > len(data) {
		return fmt.Errorf("truncated vendor string")
	}
	offset += vendorLen

	if offset+4 > len(data) {
		return fmt.Errorf("truncated comment count")
	}
	count := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	for i := uint32(0); i < count; i++ {
		if offset+4 > len(data) {
			// Truncated list; keep what we have.
			return nil
		}
		commentLen := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
		offset += 4
		if commentLen < 0 || offset+commentLen > len(data) {
			return nil
		}
		ParseComment(string(data[offset:offset+commentLen]), fields)
		offset += commentLen
	}

	return nil
}

// ParseComment maps a single "KEY=value" comment onto fields.
//
// Keys are case-insensitive. Comments without '=' are ignored.
func ParseComment(comment string, fields *types.RawFields) {
	eq := strings.IndexByte(comment, '=')
	if eq < 0 {
		return
	}

	key := strings.ToUpper(comment[:eq])
	value := textenc.Sanitize(comment[eq+1:])
	if value == "" {
		return
	}

	switch key {
	case "TITLE":
		fields.Title = value
	case "ARTIST":
		fields.Artist = value
	case "ALBUM":
		fields.Album = value
	case "GENRE":
		fields.Genre = value
	case "DATE", "YEAR":
		if year := ParseYear(value); year > 0 {
			fields.Year = year
		}
	case "TRACKNUMBER":
		if track := ParseTrack(value); track > 0 {
			fields.Track = track
		}
	}
}

// ParseYear extracts a plausible year from the leading digits of a date
// string like "1994" or "1994-06-21".
func ParseYear(s string) int {
	if len(s) < 4 {
		return 0
	}
	var year int
	if _, err := fmt.Sscanf(s[:4], "%d", &year); err != nil {
		return 0
	}
	if year < 1000 || year > 2999 {
		return 0
	}
	return year
}

// ParseTrack parses the leading integer of "N" or "N/Total".
func ParseTrack(s string) int {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n); err != nil {
		return 0
	}
	return n
}
