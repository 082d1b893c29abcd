package extract

import (
	"testing"

	"github.com/clearform/intake/internal/transcript"
)

func TestLoadPatternTable(t *testing.T) {
	table, err := LoadPatternTable()
	if err != nil {
		t.Fatalf("LoadPatternTable: %v", err)
	}
	if len(table.fields) == 0 {
		t.Fatal("pattern table is empty")
	}
	for _, f := range table.fields {
		if len(f.Patterns) == 0 {
			t.Errorf("field %s has no compiled patterns", f.Path)
		}
	}
}

func TestBuildIndex_FirstMatchPerField(t *testing.T) {
	table, err := LoadPatternTable()
	if err != nil {
		t.Fatalf("LoadPatternTable: %v", err)
	}

	pairs := []transcript.QAPair{
		{Question: "What is your annual income?", Answer: "About 95k."},
		{Question: "And how much do you make in bonuses?", Answer: "Another 10k."},
		{Question: "What city do you live in?", Answer: "Austin."},
	}

	idx := table.BuildIndex(pairs)

	answer, ok := idx.FirstAnswer("employment.annual_income")
	if !ok {
		t.Fatal("annual_income not indexed")
	}
	if answer != "About 95k." {
		t.Errorf("FirstAnswer = %q, want first matched pair's answer", answer)
	}
	if len(idx["employment.annual_income"]) != 2 {
		t.Errorf("expected both income questions indexed, got %d", len(idx["employment.annual_income"]))
	}

	if !idx.Anchored("address.city") {
		t.Error("city should be anchored")
	}
	if idx.Anchored("personal.email") {
		t.Error("email should not be anchored")
	}
}

func TestBuildIndex_PairUnderMultipleFields(t *testing.T) {
	table, err := LoadPatternTable()
	if err != nil {
		t.Fatalf("LoadPatternTable: %v", err)
	}

	// "occupation" is a question phrase for both employment_status and
	// occupation; the pair lands under both fields.
	pairs := []transcript.QAPair{
		{Question: "What is your occupation?", Answer: "I'm an engineer."},
	}
	idx := table.BuildIndex(pairs)

	if !idx.Anchored("employment.occupation") {
		t.Error("occupation not indexed")
	}
	if !idx.Anchored("employment.employment_status") {
		t.Error("employment_status not indexed")
	}
}

func TestParsePatternTable_RejectsUnknownField(t *testing.T) {
	bad := []byte("fields:\n  - path: personal.shoe_size\n    questions:\n      - \"shoe size\"\n")
	if _, err := parsePatternTable(bad); err == nil {
		t.Fatal("expected error for unknown field path")
	}
}
