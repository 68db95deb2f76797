package id3

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// encodeSynchsafe encodes a size as a 4-byte synchsafe integer.
func encodeSynchsafe(n uint32) []byte {
	return []byte{
		byte(n >> 21 & 0x7F),
		byte(n >> 14 & 0x7F),
		byte(n >> 7 & 0x7F),
		byte(n & 0x7F),
	}
}

// v23Frame builds an ID3v2.3 text frame: encoding byte 3 (UTF-8) + text.
func v23Frame(id, text string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(id)
	payload := append([]byte{3}, []byte(text)...)
	binary.Write(buf, binary.BigEndian, uint32(len(payload)))
	buf.Write([]byte{0, 0}) // flags
	buf.Write(payload)
	return buf.Bytes()
}

// buildV23 wraps frames in an ID3v2.3 tag header.
func buildV23(frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	buf := &bytes.Buffer{}
	buf.WriteString("ID3")
	buf.Write([]byte{3, 0, 0}) // version 2.3, revision, flags
	buf.Write(encodeSynchsafe(uint32(len(body))))
	buf.Write(body)
	return buf.Bytes()
}

// v22Frame builds an ID3v2.2 frame: 3-byte ID, 3-byte size, no flags.
func v22Frame(id, text string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(id)
	payload := append([]byte{0}, []byte(text)...)
	buf.Write([]byte{byte(len(payload) >> 16), byte(len(payload) >> 8), byte(len(payload))})
	buf.Write(payload)
	return buf.Bytes()
}

func buildV22(frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	buf := &bytes.Buffer{}
	buf.WriteString("ID3")
	buf.Write([]byte{2, 0, 0})
	buf.Write(encodeSynchsafe(uint32(len(body))))
	buf.Write(body)
	return buf.Bytes()
}

// buildV1 builds a 128-byte ID3v1.1 trailer.
func buildV1(title, artist, album, year string, track, genre byte) []byte {
	trailer := make([]byte, 128)
	copy(trailer[0:], "TAG")
	copy(trailer[3:33], title)
	copy(trailer[33:63], artist)
	copy(trailer[63:93], album)
	copy(trailer[93:97], year)
	trailer[125] = 0
	trailer[126] = track
	trailer[127] = genre
	return trailer
}

func TestDecode_V23(t *testing.T) {
	data := buildV23(
		v23Frame("TIT2", "Song"),
		v23Frame("TPE1", "Artist"),
		v23Frame("TALB", "Album"),
		v23Frame("TYER", "1999"),
		v23Frame("TCON", "Rock"),
		v23Frame("TRCK", "7/12"),
	)

	fields, err := (&Decoder{}).Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if fields.Title != "Song" {
		t.Errorf("Title = %q, want \"Song\"", fields.Title)
	}
	if fields.Artist != "Artist" {
		t.Errorf("Artist = %q, want \"Artist\"", fields.Artist)
	}
	if fields.Album != "Album" {
		t.Errorf("Album = %q, want \"Album\"", fields.Album)
	}
	if fields.Year != 1999 {
		t.Errorf("Year = %d, want 1999", fields.Year)
	}
	if fields.Genre != "Rock" {
		t.Errorf("Genre = %q, want \"Rock\"", fields.Genre)
	}
	if fields.Track != 7 {
		t.Errorf("Track = %d, want 7", fields.Track)
	}
}

func TestDecode_V24Synchsafe(t *testing.T) {
	// v2.4 frame sizes are synchsafe.
	payload := append([]byte{3}, []byte("Song")...)
	frame := &bytes.Buffer{}
	frame.WriteString("TIT2")
	frame.Write(encodeSynchsafe(uint32(len(payload))))
	frame.Write([]byte{0, 0})
	frame.Write(payload)

	buf := &bytes.Buffer{}
	buf.WriteString("ID3")
	buf.Write([]byte{4, 0, 0})
	buf.Write(encodeSynchsafe(uint32(frame.Len())))
	buf.Write(frame.Bytes())

	fields, err := (&Decoder{}).Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if fields.Title != "Song" {
		t.Errorf("Title = %q, want \"Song\"", fields.Title)
	}
}

func TestDecode_V22(t *testing.T) {
	data := buildV22(
		v22Frame("TT2", "Old Song"),
		v22Frame("TP1", "Old Artist"),
		v22Frame("TAL", "Old Album"),
	)

	fields, err := (&Decoder{}).Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if fields.Title != "Old Song" || fields.Artist != "Old Artist" || fields.Album != "Old Album" {
		t.Errorf("got %q / %q / %q", fields.Title, fields.Artist, fields.Album)
	}
}

func TestDecode_V1Trailer(t *testing.T) {
	data := append(make([]byte, 64), buildV1("V1 Title", "V1 Artist", "V1 Album", "1987", 5, 17)...)

	fields, err := (&Decoder{}).Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if fields.Title != "V1 Title" {
		t.Errorf("Title = %q, want \"V1 Title\"", fields.Title)
	}
	if fields.Artist != "V1 Artist" {
		t.Errorf("Artist = %q, want \"V1 Artist\"", fields.Artist)
	}
	if fields.Year != 1987 {
		t.Errorf("Year = %d, want 1987", fields.Year)
	}
	if fields.Track != 5 {
		t.Errorf("Track = %d, want 5", fields.Track)
	}
	if fields.Genre != "Rock" {
		t.Errorf("Genre = %q, want \"Rock\" (index 17)", fields.Genre)
	}
}

func TestDecode_V1FillsMissingV2Fields(t *testing.T) {
	// v2 carries only the title; artist comes from the trailer.
	data := buildV23(v23Frame("TIT2", "Front Title"))
	data = append(data, buildV1("Back Title", "Back Artist", "", "", 0, 255)...)

	fields, err := (&Decoder{}).Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if fields.Title != "Front Title" {
		t.Errorf("Title = %q, want v2 title to win", fields.Title)
	}
	if fields.Artist != "Back Artist" {
		t.Errorf("Artist = %q, want trailer fallback", fields.Artist)
	}
}

func TestDecode_NoTag(t *testing.T) {
	fields, err := (&Decoder{}).Decode([]byte("not a tag"))
	if err == nil {
		t.Error("Decode of untagged buffer should report a malformed header")
	}
	if !fields.Empty() {
		t.Errorf("fields = %+v, want empty", fields)
	}
}

func TestDecode_APICImage(t *testing.T) {
	// APIC: encoding 0, MIME "image/png\0", type 3, empty description,
	// then a PNG signature payload.
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	payload := &bytes.Buffer{}
	payload.WriteByte(0)
	payload.WriteString("image/png")
	payload.WriteByte(0)
	payload.WriteByte(3) // front cover
	payload.WriteByte(0) // empty description
	payload.Write(png)

	frame := &bytes.Buffer{}
	frame.WriteString("APIC")
	binary.Write(frame, binary.BigEndian, uint32(payload.Len()))
	frame.Write([]byte{0, 0})
	frame.Write(payload.Bytes())

	data := buildV23(frame.Bytes(), v23Frame("TIT2", "Song"))

	fields, err := (&Decoder{}).Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if fields.Image == nil {
		t.Fatal("Image = nil, want APIC payload")
	}
	if fields.Image.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q, want \"image/png\"", fields.Image.MIMEType)
	}
	if !bytes.Equal(fields.Image.Data, png) {
		t.Errorf("image payload mismatch")
	}
	if fields.Title != "Song" {
		t.Errorf("Title = %q, frames after APIC should still parse", fields.Title)
	}
}

func TestDecode_CorruptFrameSizeStopsWalk(t *testing.T) {
	good := v23Frame("TIT2", "Kept")

	// A frame declaring a size far past the buffer end.
	bad := &bytes.Buffer{}
	bad.WriteString("TPE1")
	binary.Write(bad, binary.BigEndian, uint32(0xFFFFFF))
	bad.Write([]byte{0, 0})
	bad.WriteString("x")

	data := buildV23(good, bad.Bytes())

	fields, err := (&Decoder{}).Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if fields.Title != "Kept" {
		t.Errorf("Title = %q, want partial results kept", fields.Title)
	}
	if fields.Artist != "" {
		t.Errorf("Artist = %q, want empty after corrupt frame", fields.Artist)
	}
}

func TestDecode_TruncatedAnywhere(t *testing.T) {
	data := buildV23(
		v23Frame("TIT2", "Song"),
		v23Frame("TPE1", "Artist"),
	)

	for cut := 0; cut <= len(data); cut++ {
		// Must never panic, whatever the cut point.
		_, _ = (&Decoder{}).Decode(data[:cut])
	}
}

func TestNormalizeGenre(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(17)", "Rock"},
		{"17", "Rock"},
		{"Rock", "Rock"},
		{"Progressive House", "Progressive House"},
		{"(255)", ""},
	}

	for _, tt := range tests {
		if got := normalizeGenre(tt.in); got != tt.want {
			t.Errorf("normalizeGenre(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
