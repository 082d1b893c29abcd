// Package extract turns raw advisor/client meeting transcripts into
// structured client profiles. The pipeline normalizes the text, segments
// it into speaker-attributed utterances, pairs advisor questions with
// client answers, and then runs a tiered rule table per profile field.
package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clearform/intake/internal/ner"
	"github.com/clearform/intake/internal/profile"
	"github.com/clearform/intake/internal/transcript"
)

// lowCompletionThreshold is the completion percentage below which the
// result carries an advisory note.
const lowCompletionThreshold = 50.0

// Result is the full outcome of one extraction run.
type Result struct {
	Profile    *profile.ClientProfile        `json:"profile"`
	Confidence map[profile.FieldPath]float64 `json:"confidence"`
	Utterances []transcript.Utterance        `json:"utterances"`
	Notes      []string                      `json:"notes"`
	Completion float64                       `json:"completion_percentage"`
}

// Pipeline is safe for concurrent use once constructed.
type Pipeline struct {
	table      *PatternTable
	recognizer ner.Recognizer
	clock      func() time.Time
}

// NewPipeline builds a pipeline around the embedded question-pattern
// table. recognizer may be nil, which disables entity seeding. clock may
// be nil, which means time.Now.
func NewPipeline(recognizer ner.Recognizer, clock func() time.Time) (*Pipeline, error) {
	if err := profile.ValidateSchema(); err != nil {
		return nil, fmt.Errorf("field schema: %w", err)
	}
	table, err := LoadPatternTable()
	if err != nil {
		return nil, fmt.Errorf("question patterns: %w", err)
	}
	if clock == nil {
		clock = time.Now
	}
	return &Pipeline{table: table, recognizer: recognizer, clock: clock}, nil
}

// Run extracts a profile from raw transcript text. It never fails on
// transcript content: empty or unparseable input yields an empty but
// valid result with a 0% completion note.
func (p *Pipeline) Run(ctx context.Context, raw string) *Result {
	now := p.clock()

	cleaned := transcript.Normalize(raw)
	utterances := transcript.Segment(cleaned)
	pairs := transcript.PairDialogue(utterances)
	index := p.table.BuildIndex(pairs)

	prof := profile.New(now)
	extractor := NewFieldExtractor(index, p.recognizer)
	prov := extractor.Extract(ctx, prof, utterances, now)

	completion := profile.CompletionPercentage(prof)
	notes := []string{fmt.Sprintf("Form completion: %.1f%%", completion)}
	if completion < lowCompletionThreshold {
		notes = append(notes, "Low completion rate - consider asking for more information")
	}
	prof.Notes = strings.Join(notes, "; ")

	return &Result{
		Profile:    prof,
		Confidence: ScoreConfidence(prov),
		Utterances: utterances,
		Notes:      notes,
		Completion: completion,
	}
}
