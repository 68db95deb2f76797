package vtt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// timestampPattern matches one side of a cue timing: (HH:)?MM:SS(.mmm),
// with either '.' or ',' before the milliseconds.
const timestampPattern = `(?:\d{1,2}:)?\d{1,2}:\d{2}(?:[.,]\d{1,3})?`

// cueTimingRe matches a full timestamp line: start --> end, with optional
// trailing cue settings.
var cueTimingRe = regexp.MustCompile(
	`^\s*(` + timestampPattern + `)\s*-->\s*(` + timestampPattern + `)(?:[ \t].*)?$`)

// parseTimestamp converts "HH:MM:SS.mmm" or "MM:SS.mmm" to seconds.
func parseTimestamp(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	secPart := strings.ReplaceAll(parts[len(parts)-1], ",", ".")
	seconds, err := strconv.ParseFloat(secPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in timestamp %q", s)
	}

	total := seconds
	scale := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return 0, fmt.Errorf("invalid component in timestamp %q", s)
		}
		total += float64(n) * scale
		scale *= 60
	}

	return total, nil
}

// FormatTimestamp renders seconds as a zero-padded "HH:MM:SS.mmm"
// WebVTT timestamp.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(math.Round(seconds * 1000))
	h := millis / 3600000
	m := millis % 3600000 / 60000
	s := millis % 60000 / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
