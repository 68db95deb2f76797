package mediameta

import (
	"github.com/simonhull/mediameta/internal/lrc"
	"github.com/simonhull/mediameta/internal/vtt"
)

// ParseCues extracts ordered timed cues from a WebVTT document.
//
// Returns nil when the WEBVTT header is missing or invalid. Cues are
// sorted ascending by start time, every cue has EndTime > StartTime, and
// duplicates (same millisecond start time and same text) are dropped.
// Malformed timestamp lines are discarded individually; parsing never
// fails once the header is valid.
//
// Example:
//
//	cues := mediameta.ParseCues("WEBVTT\n\n00:00:01.000 --> 00:00:03.000\nHi there\n")
//	// one cue: {StartTime: 1, EndTime: 3, Text: "Hi there"}
func ParseCues(text string) []Cue {
	return vtt.Parse(text)
}

// ValidateCues performs a lightweight pre-flight check of a WebVTT
// document: the header check and a cue-count estimate, without full
// parsing. The reason string is set when the document is invalid.
func ValidateCues(text string) Validation {
	return vtt.Validate(text)
}

// ParseLRC extracts timed cues from an LRC lyric document.
//
// Each line is expected to carry one leading "[mm:ss.xx]" tag followed by
// text; non-matching lines are ignored. Every cue's end time is the next
// cue's start time, with a 5-second placeholder for the final cue.
func ParseLRC(text string) []Cue {
	return lrc.Parse(text)
}

// LRCToVTT converts an LRC lyric document to WebVTT text with zero-padded
// HH:MM:SS.mmm timestamps. The output round-trips through ParseCues with
// millisecond fidelity.
func LRCToVTT(text string) string {
	return lrc.ToVTT(text)
}
