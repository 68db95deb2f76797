// Package vtt implements a line-oriented WebVTT cue parser.
//
// The parser is a small state machine over the document's lines: a header
// check, skip states for NOTE/STYLE blocks, and a cue accumulator opened by
// every timestamp line. Malformed lines are discarded individually; the
// parser itself never fails once the header is valid.
package vtt

import (
	"regexp"
	"slices"
	"strings"

	"github.com/simonhull/mediameta/internal/types"
)

// headerScanLimit bounds how many leading lines may precede the WEBVTT
// header line.
const headerScanLimit = 5

// invalidHeaderReason is the validation reason for a missing header.
const invalidHeaderReason = "Missing or invalid WEBVTT header"

// cueIdentifierMaxLen bounds what counts as a discardable cue identifier
// on the line directly after a timing line.
const cueIdentifierMaxLen = 12

// tagRe strips timing tags, voice tags and any other tag-like markup from
// cue text. Inner text is kept.
var tagRe = regexp.MustCompile(`<[^>]*>`)

// Parse extracts ordered cues from a WebVTT document.
//
// Returns nil when the WEBVTT header is missing. The result is sorted by
// start time, every cue satisfies EndTime > StartTime, and duplicates
// (same millisecond start and same text) are dropped.
func Parse(text string) []types.Cue {
	lines := splitLines(text)

	headerIdx := findHeader(lines)
	if headerIdx < 0 {
		return nil
	}

	var cues []types.Cue
	var current *types.Cue
	var pending []string
	held := ""
	skipping := false

	finalize := func() {
		if current == nil {
			return
		}
		lines := pending
		if len(lines) == 0 && held != "" {
			// The held line looked like a stray identifier, but nothing
			// else followed: it was the cue's only text after all.
			lines = []string{held}
		}
		if text := cleanCueText(lines); text != "" {
			current.Text = text
			current.Finalize()
			cues = append(cues, *current)
		}
		current = nil
		pending = nil
		held = ""
	}

	for _, line := range lines[headerIdx+1:] {
		trimmed := strings.TrimSpace(line)

		if skipping {
			if trimmed == "" {
				skipping = false
			}
			continue
		}

		if trimmed == "" {
			finalize()
			continue
		}

		if isBlockKeyword(trimmed) {
			finalize()
			skipping = true
			continue
		}

		if strings.Contains(trimmed, "-->") {
			start, end, ok := parseTimingLine(trimmed)
			if !ok {
				// Invalid timestamp line: discard it, keep parsing.
				continue
			}
			finalize()
			current = &types.Cue{StartTime: start, EndTime: end}
			continue
		}

		if current == nil {
			// Cue identifiers and stray text outside any cue.
			continue
		}
		if len(pending) == 0 && held == "" && isCueIdentifier(trimmed) {
			// Possibly a stray identifier after the timing line; hold it
			// until a later line confirms it is not the cue text.
			held = trimmed
			continue
		}
		pending = append(pending, trimmed)
	}
	finalize()

	return postProcess(cues)
}

// Validate performs only the header check and a cue-count estimate, for a
// fast accept/reject without full parsing.
func Validate(text string) types.Validation {
	lines := splitLines(text)

	if findHeader(lines) < 0 {
		return types.Validation{Valid: false, Reason: invalidHeaderReason}
	}

	count := 0
	for _, line := range lines {
		if strings.Contains(line, "-->") && cueTimingRe.MatchString(strings.TrimSpace(line)) {
			count++
		}
	}

	return types.Validation{Valid: true, CueCount: count}
}

// splitLines splits on newlines, tolerating CRLF endings.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// findHeader returns the index of the WEBVTT header line, or -1. Leading
// blank lines are skipped, but the header must appear within the first
// headerScanLimit lines.
func findHeader(lines []string) int {
	limit := min(len(lines), headerScanLimit)
	for i := 0; i < limit; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if trimmed == "WEBVTT" ||
			strings.HasPrefix(trimmed, "WEBVTT ") ||
			strings.HasPrefix(trimmed, "WEBVTT\t") {
			return i
		}
		return -1
	}
	return -1
}

// isBlockKeyword reports whether a line opens a NOTE or STYLE block.
func isBlockKeyword(line string) bool {
	upper := strings.ToUpper(line)
	return upper == "NOTE" || strings.HasPrefix(upper, "NOTE ") ||
		upper == "STYLE" || strings.HasPrefix(upper, "STYLE ")
}

// parseTimingLine parses "start --> end [settings]".
func parseTimingLine(line string) (start, end float64, ok bool) {
	m := cueTimingRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	start, err := parseTimestamp(m[1])
	if err != nil {
		return 0, 0, false
	}
	end, err = parseTimestamp(m[2])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// isCueIdentifier reports whether a line directly after a timing line looks
// like a stray cue identifier rather than cue text: a short single token.
// Such a line is only discarded when later lines supply the cue text;
// otherwise it is the text.
func isCueIdentifier(line string) bool {
	if len(line) > cueIdentifierMaxLen {
		return false
	}
	return len(strings.Fields(line)) == 1 && !strings.ContainsAny(line, "<>&")
}

// entityReplacer decodes the small fixed set of HTML entities cue text may
// carry. &amp; is decoded last so it cannot re-form other entities.
var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// cleanCueText joins accumulated lines and strips markup and entities.
func cleanCueText(lines []string) string {
	text := strings.Join(lines, "\n")
	text = tagRe.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)
	text = strings.ReplaceAll(text, "&amp;", "&")
	return strings.TrimSpace(text)
}

// postProcess sorts cues by start time and drops duplicates that share a
// rounded-to-millisecond start and identical text with an earlier cue.
func postProcess(cues []types.Cue) []types.Cue {
	type dupKey struct {
		millis int64
		text   string
	}
	seen := make(map[dupKey]bool, len(cues))
	unique := cues[:0]
	for _, cue := range cues {
		key := dupKey{cue.StartMillis(), cue.Text}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, cue)
	}

	slices.SortStableFunc(unique, func(a, b types.Cue) int {
		switch {
		case a.StartTime < b.StartTime:
			return -1
		case a.StartTime > b.StartTime:
			return 1
		default:
			return 0
		}
	})

	return unique
}
