package ner

import (
	"reflect"
	"testing"
)

func TestTagTokens(t *testing.T) {
	width := len(conllLabels)
	logits := make([]float32, 3*width)
	logits[0*width+3] = 5.0 // B-PER
	logits[1*width+4] = 2.5 // I-PER
	// Third row all zeros: argmax falls to index 0, "O".

	got := tagTokens(logits, 3)
	want := []string{"B-PER", "I-PER", "O"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tagTokens = %v, want %v", got, want)
	}
}

func TestMergeSpans(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		tags   []string
		want   []Entity
	}{
		{
			name:   "single person",
			tokens: []string{"[CLS]", "Dan", "Foster", "[SEP]"},
			tags:   []string{"O", "B-PER", "I-PER", "O"},
			want:   []Entity{{Text: "Dan Foster", Label: LabelPerson}},
		},
		{
			name:   "wordpiece subwords rejoin",
			tokens: []string{"[CLS]", "Ok", "##af", "##or", "[SEP]"},
			tags:   []string{"O", "B-PER", "I-PER", "I-PER", "O"},
			want:   []Entity{{Text: "Okafor", Label: LabelPerson}},
		},
		{
			name:   "subword tagged O stays attached",
			tokens: []string{"[CLS]", "Vert", "##ex", "Analytics", "[SEP]"},
			tags:   []string{"O", "B-ORG", "O", "I-ORG", "O"},
			want:   []Entity{{Text: "Vertex Analytics", Label: LabelOrg}},
		},
		{
			name:   "adjacent entities with different labels",
			tokens: []string{"Priya", "Austin"},
			tags:   []string{"B-PER", "B-LOC"},
			want: []Entity{
				{Text: "Priya", Label: LabelPerson},
				{Text: "Austin", Label: LabelLoc},
			},
		},
		{
			name:   "back to back same label begins",
			tokens: []string{"Priya", "Raman", "and", "Marcus"},
			tags:   []string{"B-PER", "I-PER", "O", "B-PER"},
			want: []Entity{
				{Text: "Priya Raman", Label: LabelPerson},
				{Text: "Marcus", Label: LabelPerson},
			},
		},
		{
			name:   "separator token splits a span",
			tokens: []string{"Austin", "[SEP]", "Dallas"},
			tags:   []string{"B-LOC", "O", "I-LOC"},
			want: []Entity{
				{Text: "Austin", Label: LabelLoc},
				{Text: "Dallas", Label: LabelLoc},
			},
		},
		{
			name:   "all outside",
			tokens: []string{"I", "earn", "80k"},
			tags:   []string{"O", "O", "O"},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeSpans(tt.tokens, tt.tags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("mergeSpans = %+v, want %+v", got, tt.want)
			}
		})
	}
}
