// Package lrc parses the LRC bracket-timestamp lyric format and re-emits
// it as WebVTT.
package lrc

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/simonhull/mediameta/internal/types"
	"github.com/simonhull/mediameta/internal/vtt"
)

// lineRe matches "[mm:ss.xx]text" with 2 or 3 fractional digits. Lines not
// matching (metadata tags like "[ar:...]", blanks) are ignored.
var lineRe = regexp.MustCompile(`^\[(\d{1,2}):(\d{2})\.(\d{2,3})\]\s*(.*)$`)

// placeholderDuration is the provisional cue length in seconds; every cue
// except the last is then clipped to the next cue's start.
const placeholderDuration = 5.0

// Parse extracts timed cues from an LRC document.
//
// Each cue's end time is the next cue's start time; the final cue keeps
// the placeholder duration.
func Parse(text string) []types.Cue {
	var cues []types.Cue

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(strings.TrimSpace(line), "\r")
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		fraction := m[3]

		// Two digits are centiseconds, three are milliseconds.
		frac, _ := strconv.Atoi(fraction)
		divisor := 100.0
		if len(fraction) == 3 {
			divisor = 1000.0
		}

		cueText := strings.TrimSpace(m[4])
		if cueText == "" {
			continue
		}

		start := float64(minutes)*60 + float64(seconds) + float64(frac)/divisor
		cues = append(cues, types.Cue{
			StartTime: start,
			EndTime:   start + placeholderDuration,
			Text:      cueText,
		})
	}

	slices.SortStableFunc(cues, func(a, b types.Cue) int {
		switch {
		case a.StartTime < b.StartTime:
			return -1
		case a.StartTime > b.StartTime:
			return 1
		default:
			return 0
		}
	})

	for i := range cues {
		if i+1 < len(cues) {
			cues[i].EndTime = cues[i+1].StartTime
		}
		cues[i].Finalize()
	}

	return cues
}

// ToVTT parses an LRC document and renders it as WebVTT text.
func ToVTT(text string) string {
	cues := Parse(text)

	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, cue := range cues {
		b.WriteString(vtt.FormatTimestamp(cue.StartTime))
		b.WriteString(" --> ")
		b.WriteString(vtt.FormatTimestamp(cue.EndTime))
		b.WriteByte('\n')
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
