package id3

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/simonhull/mediameta/internal/textenc"
	"github.com/simonhull/mediameta/internal/types"
)

// v1TagSize is the fixed size of an ID3v1 trailer at end-of-file.
const v1TagSize = 128

// parseV1 reads the fixed 128-byte ID3v1 trailer and fills fields that are
// still empty. Reports whether a trailer was present.
//
// Layout: "TAG" + title(30) + artist(30) + album(30) + year(4) +
// comment(30) + genre(1). ID3v1.1 reuses the last two comment bytes as a
// zero marker plus track number.
func parseV1(data []byte, fields *types.RawFields) bool {
	if len(data) < v1TagSize {
		return false
	}

	trailer := data[len(data)-v1TagSize:]
	if string(trailer[:3]) != "TAG" {
		return false
	}

	if fields.Title == "" {
		fields.Title = v1Field(trailer[3:33])
	}
	if fields.Artist == "" {
		fields.Artist = v1Field(trailer[33:63])
	}
	if fields.Album == "" {
		fields.Album = v1Field(trailer[63:93])
	}
	if fields.Year == 0 {
		if year := parseYear(v1Field(trailer[93:97])); year > 0 {
			fields.Year = year
		}
	}
	// ID3v1.1: comment[28] == 0 marks comment[29] as the track number.
	if fields.Track == 0 && trailer[125] == 0 && trailer[126] != 0 {
		fields.Track = int(trailer[126])
	}
	if fields.Genre == "" {
		if name := genreName(int(trailer[127])); name != "" {
			fields.Genre = name
		}
	}

	return true
}

// v1Field decodes a fixed-width, NUL-padded ID3v1 field.
func v1Field(b []byte) string {
	if nul := bytes.IndexByte(b, 0); nul >= 0 {
		b = b[:nul]
	}
	return textenc.Decode(b, textenc.HintLegacy)
}

// parseYear extracts a plausible year from the leading digits of a date
// string ("1994", "1994-06-21").
func parseYear(text string) int {
	if len(text) < 4 {
		return 0
	}
	var year int
	if _, err := fmt.Sscanf(text[:4], "%d", &year); err != nil {
		return 0
	}
	if year < 1000 || year > 2999 {
		return 0
	}
	return year
}

// parseTrack parses "N" or "N/Total" track fields.
func parseTrack(text string) int {
	if i := strings.IndexByte(text, '/'); i >= 0 {
		text = text[:i]
	}
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(text), "%d", &n); err != nil {
		return 0
	}
	return n
}
