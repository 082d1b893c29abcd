package extract

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"github.com/clearform/intake/internal/profile"
	"github.com/clearform/intake/internal/transcript"
	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var patternsYAML []byte

// QuestionPatterns holds the compiled question-phrase patterns for one
// field: how that field is typically asked about in an advisor meeting.
type QuestionPatterns struct {
	Path     profile.FieldPath
	Patterns []*regexp.Regexp
}

// PatternTable is the static field → question-pattern table, loaded once
// from the embedded YAML and read-only thereafter.
type PatternTable struct {
	fields []QuestionPatterns
}

type patternFile struct {
	Fields []struct {
		Path      string   `yaml:"path"`
		Questions []string `yaml:"questions"`
	} `yaml:"fields"`
}

var (
	tableOnce sync.Once
	table     *PatternTable
	tableErr  error
)

// LoadPatternTable parses and compiles the embedded pattern table. The
// work happens at most once; later calls return the cached table.
func LoadPatternTable() (*PatternTable, error) {
	tableOnce.Do(func() {
		table, tableErr = parsePatternTable(patternsYAML)
	})
	return table, tableErr
}

func parsePatternTable(raw []byte) (*PatternTable, error) {
	var pf patternFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parsing pattern table: %w", err)
	}

	t := &PatternTable{fields: make([]QuestionPatterns, 0, len(pf.Fields))}
	for _, f := range pf.Fields {
		path := profile.FieldPath(f.Path)
		if profile.Lookup(path) == nil {
			return nil, fmt.Errorf("pattern table references unknown field %q", f.Path)
		}
		qp := QuestionPatterns{Path: path}
		for _, q := range f.Questions {
			re, err := regexp.Compile("(?i)" + q)
			if err != nil {
				return nil, fmt.Errorf("field %s: compiling pattern %q: %w", f.Path, q, err)
			}
			qp.Patterns = append(qp.Patterns, re)
		}
		if len(qp.Patterns) == 0 {
			return nil, fmt.Errorf("field %s: no question patterns", f.Path)
		}
		t.fields = append(t.fields, qp)
	}
	return t, nil
}

// FieldIndex maps each field to the QA pairs whose question text matched
// one of the field's patterns, in transcript order.
type FieldIndex map[profile.FieldPath][]transcript.QAPair

// BuildIndex scans every QA pair's question against every field's pattern
// set. A pair is recorded at most once per field (scanning the pair's
// patterns stops on first match) but may be recorded under multiple
// distinct fields.
func (t *PatternTable) BuildIndex(pairs []transcript.QAPair) FieldIndex {
	idx := make(FieldIndex, len(t.fields))
	for _, f := range t.fields {
		for _, pair := range pairs {
			for _, re := range f.Patterns {
				if re.MatchString(pair.Question) {
					idx[f.Path] = append(idx[f.Path], pair)
					break
				}
			}
		}
	}
	return idx
}

// FirstAnswer returns the answer text of the first QA pair recorded for
// the field, if any.
func (idx FieldIndex) FirstAnswer(path profile.FieldPath) (string, bool) {
	pairs := idx[path]
	if len(pairs) == 0 {
		return "", false
	}
	return pairs[0].Answer, true
}

// Anchored reports whether the field has at least one matched QA pair.
func (idx FieldIndex) Anchored(path profile.FieldPath) bool {
	return len(idx[path]) > 0
}
