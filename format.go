package mediameta

import (
	"github.com/simonhull/mediameta/internal/types"
)

// Format is an alias to types.Format.
// Re-exported from internal/types to keep the parsing packages internal.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatMP3     = types.FormatMP3
	FormatMP4     = types.FormatMP4
	FormatFLAC    = types.FormatFLAC
	FormatOgg     = types.FormatOgg
	FormatWAV     = types.FormatWAV
	FormatWMA     = types.FormatWMA
)

// DetectFormat determines a buffer's format from the file name's
// extension, falling back to magic-byte sniffing when the extension is
// missing or unrecognized.
func DetectFormat(fileName string, data []byte) Format {
	format := types.FormatForName(fileName)
	if format == types.FormatUnknown {
		format = types.SniffFormat(data)
	}
	return format
}
