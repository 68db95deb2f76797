package mediameta

import (
	"github.com/simonhull/mediameta/internal/binary"
	"github.com/simonhull/mediameta/internal/types"
)

// OutOfRangeError is an alias to binary.OutOfRangeError.
// Decoders recover from it internally; it is exported for callers that
// inspect decode diagnostics in logs.
type OutOfRangeError = binary.OutOfRangeError

// MalformedHeaderError is an alias to types.MalformedHeaderError.
// The dispatcher absorbs it by substituting default metadata.
type MalformedHeaderError = types.MalformedHeaderError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError
