package extract

import "github.com/clearform/intake/internal/profile"

// Confidence levels. An anchored value came out of an answer that was
// paired with a recognized question for that field; anything else was
// lifted from loose client text.
const (
	ConfidenceAnchored   = 0.8
	ConfidenceUnanchored = 0.3
)

// ScoreConfidence maps extraction provenance to per-field confidence.
// Only fields actually populated this run get an entry.
func ScoreConfidence(prov map[profile.FieldPath]Provenance) map[profile.FieldPath]float64 {
	scores := make(map[profile.FieldPath]float64, len(prov))
	for path, p := range prov {
		if p.Anchored {
			scores[path] = ConfidenceAnchored
		} else {
			scores[path] = ConfidenceUnanchored
		}
	}
	return scores
}
