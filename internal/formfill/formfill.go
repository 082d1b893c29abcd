// Package formfill maps extracted client profiles onto the fields of a
// destination form. A mapping table ties profile field paths to
// destination field names, with optional display transforms applied on
// the way out.
package formfill

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/clearform/intake/internal/profile"
)

// Destination field kinds.
const (
	KindText     = "text"
	KindCheckbox = "checkbox"
	KindChoice   = "choice"
)

// Transform identifiers, applied to the rendered field value.
const (
	TransformCurrency = "format_currency"
	TransformDate     = "format_date"
	TransformPhone    = "format_phone"
	TransformUpper    = "uppercase"
	TransformTitle    = "title_case"
)

// FieldMapping ties one profile field to one destination form field.
type FieldMapping struct {
	ProfilePath profile.FieldPath `json:"profile_path"`
	Destination string            `json:"destination"`
	Kind        string            `json:"kind,omitempty"`
	Transform   string            `json:"transform,omitempty"`
}

// MappingSet is a complete named mapping template.
type MappingSet struct {
	Name   string         `json:"name"`
	Fields []FieldMapping `json:"fields"`
}

// ParseMappingSet decodes a stored mapping document and validates every
// profile path against the field schema.
func ParseMappingSet(spec string) (*MappingSet, error) {
	var set MappingSet
	if err := json.Unmarshal([]byte(spec), &set); err != nil {
		return nil, fmt.Errorf("decoding mapping: %w", err)
	}
	for i, fm := range set.Fields {
		if fm.Destination == "" {
			return nil, fmt.Errorf("mapping field %d: empty destination", i)
		}
		if profile.Lookup(fm.ProfilePath) == nil {
			return nil, fmt.Errorf("mapping field %d: unknown profile path %q", i, fm.ProfilePath)
		}
		if err := validTransform(fm.Transform); err != nil {
			return nil, fmt.Errorf("mapping field %d: %w", i, err)
		}
	}
	return &set, nil
}

// Encode renders the set as its stored JSON document.
func (s *MappingSet) Encode() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding mapping: %w", err)
	}
	return string(data), nil
}

func validTransform(t string) error {
	switch t {
	case "", TransformCurrency, TransformDate, TransformPhone, TransformUpper, TransformTitle:
		return nil
	}
	return fmt.Errorf("unknown transform %q", t)
}

// Fill renders the populated profile fields named by the mapping into a
// destination-name → value map. Unpopulated profile fields are skipped.
func Fill(p *profile.ClientProfile, set *MappingSet) map[string]string {
	flat := profile.Flatten(p)
	out := make(map[string]string)
	for _, fm := range set.Fields {
		raw, ok := flat[fm.ProfilePath]
		if !ok {
			continue
		}
		out[fm.Destination] = applyTransform(raw, fm.Transform)
	}
	return out
}

func applyTransform(value, transform string) string {
	switch transform {
	case TransformCurrency:
		return formatCurrency(value)
	case TransformDate:
		return formatDate(value)
	case TransformPhone:
		return formatPhone(value)
	case TransformUpper:
		return strings.ToUpper(value)
	case TransformTitle:
		return titleCase(value)
	}
	return value
}

// formatCurrency renders a numeric string as "$1,234.56". Non-numeric
// input passes through unchanged.
func formatCurrency(value string) string {
	f, err := strconv.ParseFloat(strings.TrimLeft(value, "$"), 64)
	if err != nil {
		return value
	}
	whole := int64(f)
	cents := int64((f-float64(whole))*100 + 0.5)
	return "$" + groupThousands(whole) + fmt.Sprintf(".%02d", cents)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatDate normalizes date strings to MM/DD/YYYY.
func formatDate(value string) string {
	for _, layout := range []string{"01/02/2006", "1/2/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return value
}

// formatPhone renders exactly ten digits as "(AAA) BBB-CCCC" and leaves
// anything else untouched.
func formatPhone(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return value
	}
	return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
}

func titleCase(value string) string {
	words := strings.Fields(value)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
