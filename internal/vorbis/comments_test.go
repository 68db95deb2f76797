package vorbis

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/simonhull/mediameta/internal/types"
)

// buildBlock assembles a Vorbis comment block from KEY=value strings.
func buildBlock(vendor string, comments ...string) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)
	binary.Write(buf, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(buf, binary.LittleEndian, uint32(len(c)))
		buf.WriteString(c)
	}
	return buf.Bytes()
}

func TestParseBlock(t *testing.T) {
	block := buildBlock("test vendor",
		"TITLE=Hello",
		"ARTIST=World",
		"ALBUM=Greatest Hits",
		"GENRE=Jazz",
		"DATE=1994-06-21",
		"TRACKNUMBER=3/10",
	)

	fields := &types.RawFields{}
	if err := ParseBlock(block, fields); err != nil {
		t.Fatalf("ParseBlock failed: %v", err)
	}

	if fields.Title != "Hello" {
		t.Errorf("Title = %q, want \"Hello\"", fields.Title)
	}
	if fields.Artist != "World" {
		t.Errorf("Artist = %q, want \"World\"", fields.Artist)
	}
	if fields.Album != "Greatest Hits" {
		t.Errorf("Album = %q, want \"Greatest Hits\"", fields.Album)
	}
	if fields.Genre != "Jazz" {
		t.Errorf("Genre = %q, want \"Jazz\"", fields.Genre)
	}
	if fields.Year != 1994 {
		t.Errorf("Year = %d, want 1994", fields.Year)
	}
	if fields.Track != 3 {
		t.Errorf("Track = %d, want 3", fields.Track)
	}
}

func TestParseBlock_CaseInsensitiveKeys(t *testing.T) {
	block := buildBlock("v", "title=lower", "Artist=Mixed")

	fields := &types.RawFields{}
	if err := ParseBlock(block, fields); err != nil {
		t.Fatalf("ParseBlock failed: %v", err)
	}
	if fields.Title != "lower" || fields.Artist != "Mixed" {
		t.Errorf("got %q / %q, keys should match case-insensitively", fields.Title, fields.Artist)
	}
}

func TestParseBlock_TruncatedListKeepsPartial(t *testing.T) {
	block := buildBlock("v", "TITLE=Kept", "ARTIST=Lost")
	block = block[:len(block)-4] // cut into the last comment

	fields := &types.RawFields{}
	if err := ParseBlock(block, fields); err != nil {
		t.Fatalf("ParseBlock on truncated list should keep partial results, got %v", err)
	}
	if fields.Title != "Kept" {
		t.Errorf("Title = %q, want \"Kept\"", fields.Title)
	}
	if fields.Artist != "" {
		t.Errorf("Artist = %q, want empty", fields.Artist)
	}
}

func TestParseBlock_TruncatedVendor(t *testing.T) {
	fields := &types.RawFields{}
	if err := ParseBlock([]byte{0x10, 0x00}, fields); err == nil {
		t.Error("ParseBlock on truncated vendor length should fail")
	}
}

func TestParseComment(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		check   func(*types.RawFields) bool
	}{
		{"no equals ignored", "JUSTAKEY", func(f *types.RawFields) bool { return f.Empty() }},
		{"unknown key ignored", "COMPOSER=Bach", func(f *types.RawFields) bool { return f.Empty() }},
		{"empty value ignored", "TITLE=", func(f *types.RawFields) bool { return f.Title == "" }},
		{"year alias", "YEAR=2001", func(f *types.RawFields) bool { return f.Year == 2001 }},
		{"whitespace trimmed", "TITLE=  Song  ", func(f *types.RawFields) bool { return f.Title == "Song" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := &types.RawFields{}
			ParseComment(tt.comment, fields)
			if !tt.check(fields) {
				t.Errorf("ParseComment(%q) gave %+v", tt.comment, fields)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1994", 1994},
		{"1994-06-21", 1994},
		{"0042", 0},
		{"3001", 0},
		{"abc", 0},
		{"19", 0},
	}

	for _, tt := range tests {
		if got := ParseYear(tt.in); got != tt.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseTrack(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"3/10", 3},
		{" 12 ", 12},
		{"x", 0},
	}

	for _, tt := range tests {
		if got := ParseTrack(tt.in); got != tt.want {
			t.Errorf("ParseTrack(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
