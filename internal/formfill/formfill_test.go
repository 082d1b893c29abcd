package formfill

import (
	"strings"
	"testing"
	"time"

	"github.com/clearform/intake/internal/profile"
)

func TestApplyTransform(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		transform string
		want      string
	}{
		{"currency groups thousands", "1234567.5", TransformCurrency, "$1,234,567.50"},
		{"currency small amount", "950.25", TransformCurrency, "$950.25"},
		{"currency already prefixed", "$80000", TransformCurrency, "$80,000.00"},
		{"currency non-numeric passthrough", "a lot", TransformCurrency, "a lot"},
		{"date iso", "1982-03-14", TransformDate, "03/14/1982"},
		{"date short", "3/14/1982", TransformDate, "03/14/1982"},
		{"date passthrough", "sometime in March", TransformDate, "sometime in March"},
		{"phone bare digits", "5125550198", TransformPhone, "(512) 555-0198"},
		{"phone already formatted", "(512) 555-0198", TransformPhone, "(512) 555-0198"},
		{"phone too short passthrough", "555-0198", TransformPhone, "555-0198"},
		{"uppercase", "tx", TransformUpper, "TX"},
		{"title case", "senior software engineer", TransformTitle, "Senior Software Engineer"},
		{"no transform", "as-is", "", "as-is"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyTransform(tt.value, tt.transform); got != tt.want {
				t.Fatalf("applyTransform(%q, %q) = %q, want %q", tt.value, tt.transform, got, tt.want)
			}
		})
	}
}

func TestFillSkipsUnsetFields(t *testing.T) {
	now := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	p := profile.New(now)
	profile.SetField(p, "personal.first_name", profile.TextValue("Dan"))
	profile.SetField(p, "employment.annual_income", profile.NumberValue(80000))

	set := &MappingSet{
		Name: "test",
		Fields: []FieldMapping{
			{ProfilePath: "personal.first_name", Destination: "FirstName"},
			{ProfilePath: "personal.last_name", Destination: "LastName"},
			{ProfilePath: "employment.annual_income", Destination: "AnnualIncome", Transform: TransformCurrency},
		},
	}

	got := Fill(p, set)
	if len(got) != 2 {
		t.Fatalf("filled %d fields, want 2: %v", len(got), got)
	}
	if got["FirstName"] != "Dan" {
		t.Fatalf("FirstName = %q", got["FirstName"])
	}
	if got["AnnualIncome"] != "$80,000.00" {
		t.Fatalf("AnnualIncome = %q", got["AnnualIncome"])
	}
	if _, ok := got["LastName"]; ok {
		t.Fatal("unset field rendered")
	}
}

func TestParseMappingSetValidation(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr string
	}{
		{"valid", `{"name":"ok","fields":[{"profile_path":"personal.first_name","destination":"FirstName"}]}`, ""},
		{"bad json", `{`, "decoding mapping"},
		{"empty destination", `{"fields":[{"profile_path":"personal.first_name","destination":""}]}`, "empty destination"},
		{"unknown path", `{"fields":[{"profile_path":"personal.shoe_size","destination":"ShoeSize"}]}`, "unknown profile path"},
		{"unknown transform", `{"fields":[{"profile_path":"personal.first_name","destination":"F","transform":"shout"}]}`, "unknown transform"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMappingSet(tt.spec)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ParseMappingSet: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	set := &MappingSet{
		Name: "brokerage",
		Fields: []FieldMapping{
			{ProfilePath: "address.state", Destination: "State", Kind: KindText, Transform: TransformUpper},
		},
	}
	spec, err := set.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := ParseMappingSet(spec)
	if err != nil {
		t.Fatalf("ParseMappingSet: %v", err)
	}
	if got.Name != set.Name || len(got.Fields) != 1 || got.Fields[0] != set.Fields[0] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestDefaultMappings(t *testing.T) {
	set := DefaultMappings([]string{
		"First Name",
		"Applicant Name",
		"Date_of_Birth",
		"Annual Salary",
		"Risk Tolerance",
		"Favorite Color",
	})

	byDest := make(map[string]FieldMapping, len(set.Fields))
	for _, fm := range set.Fields {
		byDest[fm.Destination] = fm
	}

	if fm := byDest["First Name"]; fm.ProfilePath != "personal.first_name" {
		t.Fatalf("First Name mapped to %q", fm.ProfilePath)
	}
	// Bare "name" falls through to first_name only after the specific
	// fragments fail to match.
	if fm := byDest["Applicant Name"]; fm.ProfilePath != "personal.first_name" {
		t.Fatalf("Applicant Name mapped to %q", fm.ProfilePath)
	}
	if fm := byDest["Date_of_Birth"]; fm.ProfilePath != "personal.date_of_birth" || fm.Transform != TransformDate {
		t.Fatalf("Date_of_Birth mapped to %+v", fm)
	}
	if fm := byDest["Annual Salary"]; fm.ProfilePath != "employment.annual_income" || fm.Transform != TransformCurrency {
		t.Fatalf("Annual Salary mapped to %+v", fm)
	}
	if fm := byDest["Risk Tolerance"]; fm.ProfilePath != "investment.risk_tolerance" {
		t.Fatalf("Risk Tolerance mapped to %+v", fm)
	}
	if _, ok := byDest["Favorite Color"]; ok {
		t.Fatal("unrecognized destination should be dropped")
	}
	if len(set.Fields) != 5 {
		t.Fatalf("len = %d, want 5", len(set.Fields))
	}
}
