// Package mediameta provides format-agnostic media tag and timed-text
// extraction from in-memory buffers.
//
// mediameta recovers descriptive metadata (title, artist, album, year,
// genre, track number, embedded cover image) from seven audio container
// formats, and ordered time-stamped cues from WebVTT and LRC documents.
// The engine is pure: bytes in, structured records out. Sourcing the bytes
// from disk or network, caching extracted images, and display are the
// caller's responsibility.
//
// # Quick Start
//
// Extracting metadata from a buffer:
//
//	meta := mediameta.Extract("song.flac", data)
//	fmt.Printf("%s - %s\n", meta.Artist, meta.Title)
//
// Parsing subtitle cues:
//
//	cues := mediameta.ParseCues(vttText)
//	for _, cue := range cues {
//		fmt.Printf("[%.3f-%.3f] %s\n", cue.StartTime, cue.EndTime, cue.Text)
//	}
//
// # Supported Formats
//
//   - MP3: ID3v1 trailers and ID3v2.2/2.3/2.4 frames
//   - M4A/MP4/AAC: iTunes metadata atoms
//   - FLAC: Vorbis comments and embedded pictures
//   - Ogg Vorbis: comment packets inside Ogg page framing
//   - WAV: RIFF LIST/INFO chunks and embedded ID3 tags
//   - WMA: ASF content-description objects
//   - WebVTT and LRC timed-text documents
//
// # Philosophy
//
// Audio libraries routinely contain corrupt, truncated and non-conformant
// files, so extraction never aborts the caller's batch: Extract is a total
// function. Corrupted input yields degraded-but-present results (filename
// as title, "Unknown Artist") rather than errors, and a truncated tag
// yields the fields recoverable before the cut.
//
// Text payloads may be encoded in any of several legacy character sets
// with no reliable declaration; mediameta tries multiple interpretations
// (BOM sniffing, UTF-16 heuristics, legacy code pages via golang.org/x/text)
// and sanitizes the result.
//
// # Concurrency
//
// All decoding is synchronous, pure computation over the input buffer with
// no shared mutable state, so calls are safe from any number of goroutines.
// ExtractMany parses batches concurrently with a bounded worker pool.
package mediameta
