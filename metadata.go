package mediameta

import (
	"github.com/simonhull/mediameta/internal/types"
)

// Metadata is an alias to types.Metadata.
// Re-exported from internal/types to keep the parsing packages internal.
type Metadata = types.Metadata

// Image is an alias to types.Image.
// Re-exported from internal/types to keep the parsing packages internal.
type Image = types.Image

// Cue is an alias to types.Cue.
// Re-exported from internal/types to keep the parsing packages internal.
type Cue = types.Cue

// Validation is an alias to types.Validation.
// Re-exported from internal/types to keep the parsing packages internal.
type Validation = types.Validation
