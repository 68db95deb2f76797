package types

import (
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// Format represents the detected container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatMP3 represents MP3 files carrying ID3v1/ID3v2 tags.
	FormatMP3
	// FormatMP4 represents M4A/MP4/AAC files with iTunes metadata atoms.
	FormatMP4
	// FormatFLAC represents FLAC files with Vorbis comments.
	FormatFLAC
	// FormatOgg represents Ogg Vorbis files.
	FormatOgg
	// FormatWAV represents RIFF/WAV files with LIST/INFO or embedded ID3 tags.
	FormatWAV
	// FormatWMA represents ASF/Windows Media files.
	FormatWMA
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatMP4:
		return "MP4"
	case FormatFLAC:
		return "FLAC"
	case FormatOgg:
		return "Ogg Vorbis"
	case FormatWAV:
		return "WAV"
	case FormatWMA:
		return "WMA"
	default:
		return "Unknown"
	}
}

// ReadLimit returns the bounded prefix size for this format, in bytes.
//
// Tag data is expected within this bound; anything past it is silently
// unavailable rather than an error.
func (f Format) ReadLimit() int {
	switch f {
	case FormatMP3, FormatFLAC:
		return 1 << 20 // 1 MB
	case FormatMP4, FormatWAV:
		return 512 << 10 // 512 KB
	case FormatOgg, FormatWMA:
		return 256 << 10 // 256 KB
	default:
		return 256 << 10
	}
}

// formatsByExtension maps lowercased file extensions to formats.
var formatsByExtension = map[string]Format{
	".mp3":  FormatMP3,
	".m4a":  FormatMP4,
	".mp4":  FormatMP4,
	".aac":  FormatMP4,
	".flac": FormatFLAC,
	".ogg":  FormatOgg,
	".wav":  FormatWAV,
	".wma":  FormatWMA,
}

// FormatForName returns the format for a file name based on its lowercased
// extension. Returns FormatUnknown for unrecognized extensions.
func FormatForName(name string) Format {
	ext := strings.ToLower(filepath.Ext(name))
	return formatsByExtension[ext]
}

// SniffFormat detects the container format from magic bytes. Used as a
// fallback when the extension is missing or unrecognized.
func SniffFormat(data []byte) Format {
	kind, err := filetype.Match(data)
	if err != nil {
		return FormatUnknown
	}
	switch kind {
	case matchers.TypeMp3:
		return FormatMP3
	case matchers.TypeM4a, matchers.TypeMp4:
		return FormatMP4
	case matchers.TypeFlac:
		return FormatFLAC
	case matchers.TypeOgg:
		return FormatOgg
	case matchers.TypeWav:
		return FormatWAV
	case matchers.TypeWmv:
		// ASF shares one magic GUID between WMA and WMV.
		return FormatWMA
	}
	// filetype does not recognize a bare ID3v2 header as MP3; the tag is
	// enough for metadata purposes.
	if len(data) >= 3 && string(data[:3]) == "ID3" {
		return FormatMP3
	}
	return FormatUnknown
}
