package mediameta

// Option configures extraction behavior.
//
// Options use the functional options pattern:
//
//	meta := mediameta.Extract("song.mp3", data,
//	    mediameta.WithoutImage(),
//	)
type Option func(*extractOptions)

// extractOptions holds configuration for Extract.
type extractOptions struct {
	withoutImage bool // Drop embedded images from the result
	readLimit    int  // Override the per-format bounded prefix (0 = format default)
}

// defaultOptions returns the default configuration.
func defaultOptions() *extractOptions {
	return &extractOptions{}
}

// WithoutImage drops any embedded cover image from the result.
//
// Useful for bulk library scans where image payloads would dominate
// memory traffic.
func WithoutImage() Option {
	return func(o *extractOptions) {
		o.withoutImage = true
	}
}

// WithReadLimit overrides the per-format bounded prefix size in bytes.
//
// Each format has a default bound (1 MB for MP3/FLAC, 512 KB for MP4/WAV,
// 256 KB for Ogg/WMA) chosen so tag data is present without reading the
// whole file. Tags extending past the bound are silently unavailable.
func WithReadLimit(limit int) Option {
	return func(o *extractOptions) {
		o.readLimit = limit
	}
}
