// Package textenc recovers clean text from tag payloads with unreliable
// character encodings.
//
// Tag text in the wild is encoded in any of several legacy character sets
// with no trustworthy declaration. The decoder tries an ordered list of
// candidate interpretations and returns the first one that decodes cleanly;
// it never fails, worst case is an empty string.
package textenc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Encoding hints, mirroring the ID3v2 text-encoding byte. Other formats
// reuse them as a general hint.
const (
	// HintLegacy marks single-byte or locale-dependent text.
	HintLegacy byte = 0
	// HintUTF16 marks UTF-16 text with a possible BOM.
	HintUTF16 byte = 1
	// HintUTF16BE marks UTF-16 big-endian text without a BOM.
	HintUTF16BE byte = 2
	// HintUTF8 marks UTF-8 text.
	HintUTF8 byte = 3
)

var (
	utf16LE = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)
	utf16BE = xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM)
)

// candidate is one character-set interpretation to attempt.
type candidate struct {
	enc     encoding.Encoding // nil means strict UTF-8
	western bool              // single-byte Western set, eligible for double-encoding repair
}

var (
	candUTF8     = candidate{}
	candLatin1   = candidate{enc: charmap.ISO8859_1, western: true}
	candWin1252  = candidate{enc: charmap.Windows1252, western: true}
	candGBK      = candidate{enc: simplifiedchinese.GBK}
	candShiftJIS = candidate{enc: japanese.ShiftJIS}
	candEUCKR    = candidate{enc: korean.EUCKR}
	candUTF16LE  = candidate{enc: utf16LE}
	candUTF16BE  = candidate{enc: utf16BE}
)

// Candidate lists per hint; first success wins.
var (
	legacyCandidates = []candidate{candLatin1, candWin1252, candGBK, candShiftJIS, candEUCKR, candUTF8}
	utf16Candidates  = []candidate{candUTF16LE, candUTF16BE, candUTF8}
	utf8Candidates   = []candidate{candUTF8, candLatin1, candWin1252}
)

// Decode turns a byte range plus an encoding hint into a clean string.
//
// Resolution order: BOM sniff, zero-byte-density UTF-16 heuristic,
// hint-ordered candidate list, byte-by-byte last resort. Decode never
// fails; unrecoverable input yields an empty string.
func Decode(data []byte, hint byte) string {
	if len(data) == 0 {
		return ""
	}

	// BOM sniff wins over everything else.
	if s, ok := bomDecode(data); ok {
		return s
	}

	var candidates []candidate

	// A high density of zero bytes is a strong UTF-16 signal even
	// without a BOM (every Latin code point has a zero half).
	if zeroDensity(data) > 0.2 {
		candidates = append(candidates, candUTF16LE, candUTF16BE)
	}

	switch hint {
	case HintUTF16, HintUTF16BE:
		candidates = append(candidates, utf16Candidates...)
	case HintUTF8:
		candidates = append(candidates, utf8Candidates...)
	default:
		candidates = append(candidates, legacyCandidates...)
	}

	for _, c := range candidates {
		s, ok := tryDecode(c, data)
		if !ok {
			continue
		}
		return s
	}

	return lastResort(data)
}

// bomDecode handles data carrying an explicit byte-order mark.
func bomDecode(data []byte) (string, bool) {
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return tryDecode(candUTF16LE, data[2:])
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return tryDecode(candUTF16BE, data[2:])
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return tryDecode(candUTF8, data[3:])
	}
	return "", false
}

// tryDecode decodes data strictly with one candidate. It rejects candidates
// that produce the replacement character or an empty sanitized result.
func tryDecode(c candidate, data []byte) (string, bool) {
	var s string
	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", false
		}
		s = string(data)
	} else {
		out, err := c.enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		s = string(out)
	}

	if strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}

	s = Sanitize(s)
	if s == "" {
		return "", false
	}

	// Classic double-encoding repair: UTF-8 bytes mistakenly stored in a
	// single-byte Western field decode to mojibake like "Ã©". If the raw
	// bytes show a UTF-8 continuation pattern and re-decode cleanly,
	// prefer the shorter (repaired) reading.
	if c.western && hasUTF8Pattern(data) && utf8.Valid(data) {
		repaired := Sanitize(string(data))
		if repaired != "" &&
			!strings.ContainsRune(repaired, utf8.RuneError) &&
			utf8.RuneCountInString(repaired) < utf8.RuneCountInString(s) {
			return repaired, true
		}
	}

	return s, true
}

// zeroDensity returns the fraction of zero bytes in data.
func zeroDensity(data []byte) float64 {
	zeros := 0
	for _, b := range data {
		if b == 0 {
			zeros++
		}
	}
	return float64(zeros) / float64(len(data))
}

// hasUTF8Pattern reports whether data contains a two-byte UTF-8 sequence
// pattern: a lead byte in [0xC0,0xDF] followed by a continuation byte in
// [0x80,0xBF].
func hasUTF8Pattern(data []byte) bool {
	for i := 0; i+1 < len(data); i++ {
		if data[i] >= 0xC0 && data[i] <= 0xDF &&
			data[i+1] >= 0x80 && data[i+1] <= 0xBF {
			return true
		}
	}
	return false
}

// lastResort passes through printable ASCII and Latin-1-range bytes,
// dropping everything else.
func lastResort(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if (c >= 0x20 && c != 0x7F && c < 0x80) || c >= 0xA0 {
			b.WriteRune(rune(c))
		}
	}
	return Sanitize(b.String())
}

// Sanitize strips NUL, ASCII control characters, the Unicode replacement
// character and Private-Use-Area code points, then trims whitespace.
//
// The normalizer applies the same pass to every string field it emits.
func Sanitize(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7F:
			return -1
		case r == utf8.RuneError:
			return -1
		case unicode.Is(unicode.Co, r):
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}
