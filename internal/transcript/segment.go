package transcript

import (
	"regexp"
	"strings"
)

// Speaker identifies who produced an utterance.
type Speaker string

const (
	SpeakerAdvisor Speaker = "advisor"
	SpeakerClient  Speaker = "client"
	SpeakerUnknown Speaker = "unknown"
)

// Kind classifies an utterance's role in the dialogue.
type Kind string

const (
	KindQuestion  Kind = "question"
	KindAnswer    Kind = "answer"
	KindStatement Kind = "statement"
)

// Utterance is one speaker-attributed, typed line of transcript.
// Immutable once created.
type Utterance struct {
	Speaker Speaker `json:"speaker"`
	Content string  `json:"content"`
	Kind    Kind    `json:"kind"`
}

// speakerPattern maps a line prefix to a speaker. Patterns are tried in
// order; first match wins, so the specific advisor/client prefixes come
// before the generic capitalized-name fallback.
type speakerPattern struct {
	re      *regexp.Regexp
	speaker Speaker
}

var speakerPatterns = []speakerPattern{
	{regexp.MustCompile(`(?i)^(?:advisor|fa|financial advisor)\s*:\s*`), SpeakerAdvisor},
	{regexp.MustCompile(`(?i)^(?:client|customer)\s*:\s*`), SpeakerClient},
	// Honorific-prefixed names ("Mrs. Lee:", "Mr Okafor:") are the client
	// by convention in advisor-led meetings.
	{regexp.MustCompile(`^(?:Mr|Mrs|Ms|Dr)\.?\s+[A-Z][A-Za-z'.-]*\s*:\s*`), SpeakerClient},
	// Generic "Name:" prefix with no further signal.
	{regexp.MustCompile(`^[A-Z][a-z]+\s*:\s*`), SpeakerUnknown},
}

// Question heuristics, tried in order. Detection is independent of speaker.
var questionIndicators = []*regexp.Regexp{
	regexp.MustCompile(`\?`),
	regexp.MustCompile(`(?i)^(?:what|how|when|where|why|who|which|can you|could you|would you|do you|are you|have you)\b`),
	regexp.MustCompile(`(?i)\b(?:tell me|explain|describe|share)\b`),
}

// IdentifySpeaker matches the ordered prefix patterns against a line and
// returns the speaker plus the content after the prefix. A line with no
// recognized prefix is attributed to SpeakerUnknown with the full line as
// content; that is expected input, not an error.
func IdentifySpeaker(line string) (Speaker, string) {
	for _, p := range speakerPatterns {
		if loc := p.re.FindStringIndex(line); loc != nil && loc[0] == 0 {
			return p.speaker, strings.TrimSpace(line[loc[1]:])
		}
	}
	return SpeakerUnknown, strings.TrimSpace(line)
}

// IsQuestion reports whether text reads as a question: it contains "?",
// opens with a wh-word or modal request, or carries a request verb.
func IsQuestion(text string) bool {
	for _, re := range questionIndicators {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Segment splits normalized text into one utterance per non-blank line.
//
// Kind assignment is deliberately asymmetric: an advisor line must pass the
// question heuristics to become a question (otherwise it is a statement),
// while a client line is always an answer, question-phrased or not. That
// matches the single-advisor-drives-the-interview transcript convention.
func Segment(normalized string) []Utterance {
	if strings.TrimSpace(normalized) == "" {
		return nil
	}

	var utterances []Utterance
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker, content := IdentifySpeaker(line)
		if content == "" {
			continue
		}

		kind := KindStatement
		switch {
		case speaker == SpeakerAdvisor && IsQuestion(content):
			kind = KindQuestion
		case speaker == SpeakerClient:
			kind = KindAnswer
		}

		utterances = append(utterances, Utterance{
			Speaker: speaker,
			Content: content,
			Kind:    kind,
		})
	}
	return utterances
}

// ClientText joins every client utterance into one blob, in order. The
// field extractor's direct-text tier scans this aggregate.
func ClientText(utterances []Utterance) string {
	var parts []string
	for _, u := range utterances {
		if u.Speaker == SpeakerClient {
			parts = append(parts, u.Content)
		}
	}
	return strings.Join(parts, " ")
}
