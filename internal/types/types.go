// Package types defines the shared data model for metadata and cue extraction.
package types

import "math"

// Image is an embedded picture payload extracted from a tag.
//
// The engine hands the payload to the caller and keeps no reference to it;
// caching and display are the caller's responsibility.
type Image struct {
	// Raw image bytes (JPEG, PNG, ...), not decoded to pixels.
	Data []byte

	// MIME type, e.g. "image/jpeg". Sniffed from the payload when the
	// container does not carry one.
	MIMEType string
}

// Metadata is the final, fully populated metadata record.
//
// Title, Artist and Album are always non-empty: missing values fall back to
// the filename (title) or the "Unknown Artist"/"Unknown Album" placeholders.
// HasMetadata reports whether at least one of title/artist/album was
// actually present in the file rather than synthesized.
type Metadata struct {
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int // 0 = unknown
	Track  int // 0 = unknown
	Image  *Image

	HasMetadata bool
}

// RawFields is the transient field map a format decoder produces.
//
// Zero values mean "not found". A RawFields is consumed once by the
// normalizer and then discarded.
type RawFields struct {
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int
	Track  int
	Image  *Image
}

// Empty reports whether no field was recovered at all.
func (r *RawFields) Empty() bool {
	return r.Title == "" && r.Artist == "" && r.Album == "" &&
		r.Genre == "" && r.Year == 0 && r.Track == 0 && r.Image == nil
}

// Cue is a single timed subtitle or lyric entry.
//
// Invariant after finalization: EndTime > StartTime, enforced by forcing
// EndTime to StartTime + 1ms when violated.
type Cue struct {
	StartTime float64 // seconds
	EndTime   float64 // seconds
	Text      string
}

// minCueGap is the minimum duration a finalized cue may have, in seconds.
const minCueGap = 0.001

// Finalize enforces the EndTime > StartTime invariant.
func (c *Cue) Finalize() {
	if c.EndTime <= c.StartTime {
		c.EndTime = c.StartTime + minCueGap
	}
}

// StartMillis returns the start time rounded to whole milliseconds,
// used for duplicate detection.
func (c *Cue) StartMillis() int64 {
	return int64(math.Round(c.StartTime * 1000))
}

// Validation is the result of a lightweight pre-flight cue document check.
type Validation struct {
	Valid    bool
	Reason   string // empty when Valid
	CueCount int    // estimated number of cues
}
