// Package registry manages format-specific tag decoders.
package registry

import (
	"github.com/simonhull/mediameta/internal/types"
)

// Decoder is the interface all format decoders implement.
type Decoder interface {
	// Decode extracts raw tag fields from a complete, immutable buffer.
	//
	// Decode may return partial fields together with an error; the
	// dispatcher keeps the fields and absorbs the error.
	Decode(data []byte) (*types.RawFields, error)
}

// decoders maps formats to their decoders.
var decoders = make(map[types.Format]Decoder)

// Register registers a decoder for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, dec Decoder) {
	decoders[format] = dec
}

// Get returns the decoder for a given format.
// Returns nil if no decoder is registered for the format.
func Get(format types.Format) Decoder {
	return decoders[format]
}
