// Package ner provides named-entity recognition over client dialogue.
// The production implementation runs a BERT token-classification model
// through ONNX Runtime; callers depend only on the Recognizer interface
// so extraction works without a model present.
package ner

import "context"

// Entity labels, matching the CoNLL-2003 tag set most fine-tuned BERT
// NER checkpoints emit.
const (
	LabelPerson = "PER"
	LabelOrg    = "ORG"
	LabelLoc    = "LOC"
	LabelMisc   = "MISC"
)

// Entity is a contiguous span of text tagged with one label.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognizer finds named entities in free text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}
