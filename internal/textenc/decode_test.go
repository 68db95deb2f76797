package textenc

import (
	"testing"
)

// utf16le encodes an ASCII string as UTF-16LE bytes for test fixtures.
func utf16le(s string) []byte {
	b := make([]byte, 0, len(s)*2)
	for _, r := range s {
		b = append(b, byte(r), byte(r>>8))
	}
	return b
}

func TestDecode_BOM(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"UTF-16LE BOM", append([]byte{0xFF, 0xFE}, utf16le("Hello")...), "Hello"},
		{"UTF-16BE BOM", []byte{0xFE, 0xFF, 0x00, 'H', 0x00, 'i'}, "Hi"},
		{"UTF-8 BOM", []byte{0xEF, 0xBB, 0xBF, 'H', 'i'}, "Hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.data, HintLegacy); got != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode_UTF16Heuristic(t *testing.T) {
	// No BOM, legacy hint, but every other byte is zero: the density
	// heuristic should pick UTF-16LE before the legacy candidates.
	data := utf16le("Artist")
	if got := Decode(data, HintLegacy); got != "Artist" {
		t.Errorf("Decode = %q, want \"Artist\"", got)
	}
}

func TestDecode_Hints(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		hint byte
		want string
	}{
		{"plain ASCII legacy", []byte("Song Title"), HintLegacy, "Song Title"},
		{"UTF-8 hint", []byte("Caf\xC3\xA9"), HintUTF8, "Café"},
		{"UTF-16LE no BOM", utf16le("Song"), HintUTF16, "Song"},
		{"Latin-1 accents", []byte{'C', 'a', 'f', 0xE9}, HintLegacy, "Café"},
		{"unknown hint falls back to legacy", []byte("Plain"), 9, "Plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.data, tt.hint); got != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode_DoubleEncodingRepair(t *testing.T) {
	// UTF-8 bytes for "Café" decoded as Latin-1 give mojibake "CafÃ©";
	// the repair path should prefer the shorter UTF-8 reading.
	data := []byte("Caf\xC3\xA9")
	if got := Decode(data, HintLegacy); got != "Café" {
		t.Errorf("Decode = %q, want \"Café\"", got)
	}
}

func TestDecode_Empty(t *testing.T) {
	if got := Decode(nil, HintLegacy); got != "" {
		t.Errorf("Decode(nil) = %q, want empty", got)
	}
	if got := Decode([]byte{0x00, 0x00}, HintLegacy); got != "" {
		t.Errorf("Decode(NULs) = %q, want empty", got)
	}
}

func TestDecode_NeverFails(t *testing.T) {
	// Arbitrary garbage must come back as a (possibly empty) string,
	// never a panic.
	garbage := []byte{0xFF, 0x00, 0xFE, 0x80, 0x81, 0x9F, 0xC0, 0xC1}
	for hint := byte(0); hint < 5; hint++ {
		_ = Decode(garbage, hint)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips NUL", "Song\x00Title", "SongTitle"},
		{"strips control", "Ti\x01tle\x1F", "Title"},
		{"strips replacement char", "Bad�Text", "BadText"},
		{"strips private use area", "A\uE000B", "AB"},
		{"trims whitespace", "  Title  ", "Title"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecode_StripsDelete(t *testing.T) {
	data := []byte{'O', 'K', 0x7F}
	if got := Decode(data, HintUTF8); got != "OK" {
		t.Errorf("Decode = %q, want \"OK\"", got)
	}
}
