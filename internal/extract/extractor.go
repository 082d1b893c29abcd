package extract

import (
	"context"
	"strings"
	"time"

	"github.com/clearform/intake/internal/ner"
	"github.com/clearform/intake/internal/profile"
	"github.com/clearform/intake/internal/transcript"
)

// Provenance records how a populated field's value was obtained, which is
// what the confidence scorer keys off.
type Provenance struct {
	// Anchored means the dialogue pairing tied at least one recognized
	// question for this field to a client answer. Anchoring is a property
	// of the field, not of the tier that produced the value: a value
	// lifted from loose client text still counts as anchored when the
	// advisor demonstrably asked about the field.
	Anchored bool
}

// FieldExtractor walks the rule table section by section and fills a
// profile from segmented dialogue. A nil recognizer disables the entity
// seeding pass; everything else still runs.
type FieldExtractor struct {
	index      FieldIndex
	recognizer ner.Recognizer
}

func NewFieldExtractor(index FieldIndex, recognizer ner.Recognizer) *FieldExtractor {
	return &FieldExtractor{index: index, recognizer: recognizer}
}

// Extract fills p from the utterances and returns per-field provenance for
// every field it populated. Fields already set on p are left alone. The
// clock is used only for relative-date resolution ("42 years old").
func (e *FieldExtractor) Extract(ctx context.Context, p *profile.ClientProfile, utterances []transcript.Utterance, now time.Time) map[profile.FieldPath]Provenance {
	clientText := transcript.ClientText(utterances)
	prov := make(map[profile.FieldPath]Provenance)

	e.seedEntities(ctx, p, clientText, prov)

	for _, section := range sectionOrder {
		for _, rule := range fieldRules[section] {
			if profile.IsSet(p, rule.path) {
				continue
			}
			if v, ok := e.extractField(rule, clientText, now); ok {
				if profile.SetField(p, rule.path, v) {
					prov[rule.path] = Provenance{Anchored: e.index.Anchored(rule.path)}
				}
			}
		}
	}
	return prov
}

// extractField applies one rule's tiers in order and stops at the first
// tier that both matches and normalizes.
func (e *FieldExtractor) extractField(rule fieldRule, clientText string, now time.Time) (profile.Value, bool) {
	for _, re := range rule.direct {
		m := re.FindStringSubmatch(clientText)
		if m == nil {
			continue
		}
		if v, ok := normalizeValue(rule.norm, m[1], now); ok {
			return v, true
		}
	}

	if answer, ok := e.index.FirstAnswer(rule.path); ok {
		if len(rule.categories) > 0 {
			if variant, ok := matchCategory(rule.categories, answer); ok {
				if v, ok := normalizeValue(rule.norm, variant, now); ok {
					return v, true
				}
			}
		}
		for _, re := range rule.answer {
			m := re.FindStringSubmatch(answer)
			if m == nil {
				continue
			}
			if v, ok := normalizeValue(rule.norm, m[1], now); ok {
				return v, true
			}
		}
	}

	if len(rule.categories) > 0 {
		if variant, ok := matchCategory(rule.categories, clientText); ok {
			if v, ok := normalizeValue(rule.norm, variant, now); ok {
				return v, true
			}
		}
	}

	return profile.Value{}, false
}

// matchCategory scans the rules in declared order and returns the first
// variant whose keyword occurs in text. Order in the table is the
// tie-break: more specific variants are listed before general ones.
func matchCategory(rules []profile.KeywordRule, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Variant, true
			}
		}
	}
	return "", false
}

// seedEntities runs the recognizer over the client text and seeds name and
// employer fields from the first PERSON and ORG entities. Recognizer
// failures are swallowed, the regex tiers still get their shot.
func (e *FieldExtractor) seedEntities(ctx context.Context, p *profile.ClientProfile, clientText string, prov map[profile.FieldPath]Provenance) {
	if e.recognizer == nil || clientText == "" {
		return
	}
	entities, err := e.recognizer.Recognize(ctx, clientText)
	if err != nil {
		return
	}

	seed := func(path profile.FieldPath, raw string, norm normalizerID) {
		if profile.IsSet(p, path) {
			return
		}
		if v, ok := normalizeValue(norm, raw, time.Time{}); ok {
			if profile.SetField(p, path, v) {
				prov[path] = Provenance{Anchored: e.index.Anchored(path)}
			}
		}
	}

	for _, ent := range entities {
		switch ent.Label {
		case ner.LabelPerson:
			parts := strings.Fields(ent.Text)
			if len(parts) >= 1 {
				seed("personal.first_name", parts[0], normName)
			}
			if len(parts) >= 2 {
				seed("personal.last_name", parts[len(parts)-1], normName)
			}
		case ner.LabelOrg:
			seed("employment.employer_name", ent.Text, normText)
		}
	}
}
