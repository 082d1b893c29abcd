// Package transcript turns a raw, speaker-labeled meeting transcript into
// ordered, typed utterances and question/answer pairs.
//
// The pipeline is: Normalize (strip timestamps, disfluency markers, filler
// words) → Segment (one utterance per line, speaker + kind) → PairDialogue
// (bind each advisor question to the next client answer). Every stage is a
// pure function over its input; malformed input degrades to unknown
// speakers and empty output, never to an error.
package transcript

import (
	"regexp"
	"strings"
)

var (
	// [00:12:34] style timestamps.
	timestampRE = regexp.MustCompile(`\[\d{2}:\d{2}:\d{2}\]`)

	// Bracketed disfluency markers left by transcription tools.
	disfluencyRE = regexp.MustCompile(`(?i)\[(?:inaudible|unclear|crosstalk)\]`)

	// Verbal filler. Word-bounded so "umbrella" and "delike" survive.
	fillerRE = regexp.MustCompile(`(?i)\b(?:um|uh|ah|er|hmm|you know|like|basically|actually)\b`)

	// Runs of spaces and tabs within a line.
	innerSpaceRE = regexp.MustCompile(`[ \t]+`)
)

// Normalize cleans raw transcript text line by line. Line breaks are the
// segmentation unit downstream, so they survive normalization; only
// whitespace within a line collapses. Empty input yields empty output.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		line = timestampRE.ReplaceAllString(line, "")
		line = disfluencyRE.ReplaceAllString(line, "")
		line = fillerRE.ReplaceAllString(line, "")
		line = innerSpaceRE.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
