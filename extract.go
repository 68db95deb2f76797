package mediameta

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/mediameta/internal/registry"
	"github.com/simonhull/mediameta/internal/textenc"
	"github.com/simonhull/mediameta/internal/types"

	// Format decoders register themselves with the registry.
	_ "github.com/simonhull/mediameta/internal/asf"
	_ "github.com/simonhull/mediameta/internal/flac"
	_ "github.com/simonhull/mediameta/internal/id3"
	_ "github.com/simonhull/mediameta/internal/mp4"
	_ "github.com/simonhull/mediameta/internal/ogg"
	_ "github.com/simonhull/mediameta/internal/wav"
)

// Placeholders for fields no decoder recovered.
const (
	unknownTitle  = "Unknown Title"
	unknownArtist = "Unknown Artist"
	unknownAlbum  = "Unknown Album"
)

// Extract recovers metadata from a media file buffer.
//
// The decoder is chosen by the file name's lowercased extension, with a
// magic-byte fallback for missing or unrecognized extensions. Extract is a
// total function: any decoder failure, malformed header or unsupported
// format degrades to default metadata (filename as title, placeholder
// artist/album) instead of an error. The returned record's Title, Artist
// and Album are always non-empty; HasMetadata reports whether any of the
// three was actually present in the file.
//
// Example:
//
//	meta := mediameta.Extract("song.mp3", data)
//	if !meta.HasMetadata {
//		log.Printf("no tags in %s", "song.mp3")
//	}
func Extract(fileName string, data []byte, opts ...Option) Metadata {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	format := types.FormatForName(fileName)
	if format == types.FormatUnknown {
		format = types.SniffFormat(data)
	}

	var raw *types.RawFields
	if format == types.FormatUnknown {
		slog.Warn("unsupported media format", "file", fileName)
		raw = &types.RawFields{}
	} else {
		limit := options.readLimit
		if limit <= 0 {
			limit = format.ReadLimit()
		}
		if len(data) > limit {
			// Tag data past the bounded prefix is silently
			// unavailable, not an error.
			data = data[:limit]
		}
		raw = decode(format, fileName, data)
	}

	if options.withoutImage {
		raw.Image = nil
	}

	return normalize(fileName, raw)
}

// decode runs the format decoder behind a recover barrier so that no
// failure mode, however unexpected, can escape the dispatcher boundary.
func decode(format types.Format, fileName string, data []byte) (fields *types.RawFields) {
	fields = &types.RawFields{}

	defer func() {
		if r := recover(); r != nil {
			slog.Warn("media decoder panic recovered",
				"file", fileName, "format", format.String(), "panic", r)
			fields = &types.RawFields{}
		}
	}()

	dec := registry.Get(format)
	if dec == nil {
		slog.Warn("no decoder registered", "format", format.String())
		return fields
	}

	decoded, err := dec.Decode(data)
	if err != nil {
		slog.Debug("media decode degraded",
			"file", fileName, "format", format.String(), "error", err)
	}
	if decoded != nil {
		fields = decoded
	}
	return fields
}

// normalize merges raw decoder fields with filename-derived fallbacks into
// the final metadata record.
func normalize(fileName string, raw *types.RawFields) Metadata {
	title := textenc.Sanitize(raw.Title)
	artist := textenc.Sanitize(raw.Artist)
	album := textenc.Sanitize(raw.Album)

	// HasMetadata reflects what the file actually carried, before any
	// fallback is synthesized.
	found := title != "" || artist != "" || album != ""

	if title == "" {
		title = titleFromFileName(fileName)
	}
	if artist == "" {
		artist = unknownArtist
	}
	if album == "" {
		album = unknownAlbum
	}

	return Metadata{
		Title:       title,
		Artist:      artist,
		Album:       album,
		Genre:       textenc.Sanitize(raw.Genre),
		Year:        raw.Year,
		Track:       raw.Track,
		Image:       raw.Image,
		HasMetadata: found,
	}
}

// titleFromFileName derives a fallback title: the base name with its
// extension stripped.
func titleFromFileName(fileName string) string {
	base := filepath.Base(fileName)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	title = textenc.Sanitize(title)
	if title == "" || title == "." {
		return unknownTitle
	}
	return title
}

// Input pairs a file name with its buffer for batch extraction.
type Input struct {
	Name string
	Data []byte
}

// ExtractMany extracts metadata from multiple buffers concurrently.
//
// Buffers are processed in parallel using up to runtime.NumCPU()
// goroutines; results are returned in input order. The only error
// condition is context cancellation, since Extract itself never fails.
//
// Example:
//
//	results, err := mediameta.ExtractMany(ctx, inputs)
//	if err != nil {
//		return err
//	}
//	for i, meta := range results {
//		fmt.Printf("%s: %s - %s\n", inputs[i].Name, meta.Artist, meta.Title)
//	}
func ExtractMany(ctx context.Context, inputs []Input, opts ...Option) ([]Metadata, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]Metadata, len(inputs))
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = Extract(input.Name, input.Data, opts...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
