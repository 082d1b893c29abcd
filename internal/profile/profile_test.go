package profile

import (
	"testing"
	"time"
)

func TestValidateSchema(t *testing.T) {
	if err := ValidateSchema(); err != nil {
		t.Fatalf("ValidateSchema: %v", err)
	}
}

func TestSetFieldAndIsSet(t *testing.T) {
	p := New(time.Now())

	if IsSet(p, "personal.first_name") {
		t.Fatal("fresh profile should have no fields set")
	}
	if !SetField(p, "personal.first_name", TextValue("Dan")) {
		t.Fatal("SetField rejected a valid path")
	}
	if !IsSet(p, "personal.first_name") {
		t.Fatal("field not set after SetField")
	}
	if p.Personal.FirstName == nil || *p.Personal.FirstName != "Dan" {
		t.Errorf("unexpected stored value: %v", p.Personal.FirstName)
	}

	if SetField(p, "personal.no_such_field", TextValue("x")) {
		t.Error("SetField accepted an unknown path")
	}
}

func TestSetField_TypedValues(t *testing.T) {
	p := New(time.Time{})

	dob := time.Date(1982, 3, 14, 0, 0, 0, 0, time.UTC)
	SetField(p, "personal.date_of_birth", DateValue(dob))
	SetField(p, "employment.annual_income", NumberValue(95000))
	SetField(p, "personal.dependents", CountValue(2))
	SetField(p, "investment.risk_tolerance", TextValue("moderate"))

	flat := Flatten(p)
	if flat["personal.date_of_birth"] != "03/14/1982" {
		t.Errorf("date rendering = %q", flat["personal.date_of_birth"])
	}
	if flat["employment.annual_income"] != "95000" {
		t.Errorf("income rendering = %q", flat["employment.annual_income"])
	}
	if flat["personal.dependents"] != "2" {
		t.Errorf("dependents rendering = %q", flat["personal.dependents"])
	}
	if flat["investment.risk_tolerance"] != "moderate" {
		t.Errorf("risk rendering = %q", flat["investment.risk_tolerance"])
	}
}

func TestCompletionPercentage(t *testing.T) {
	p := New(time.Time{})
	if got := CompletionPercentage(p); got != 0 {
		t.Errorf("empty profile completion = %.1f, want 0", got)
	}

	SetField(p, "personal.first_name", TextValue("Dan"))
	want := 100.0 / float64(len(Schema))
	if got := CompletionPercentage(p); got != want {
		t.Errorf("one-field completion = %f, want %f", got, want)
	}

	for i := range Schema {
		Schema[i].Set(p, Value{Text: "x", Number: 1, Count: 1, Date: time.Now()})
	}
	if got := CompletionPercentage(p); got != 100 {
		t.Errorf("full profile completion = %.1f, want 100", got)
	}
}

func TestKeywordTableOrder(t *testing.T) {
	// Specific variants must precede variants whose keywords are
	// substrings of theirs, since categorical matching is first-hit.
	if EmploymentKeywords[0].Variant != string(EmploymentSelfEmployed) {
		t.Errorf("self_employed must come before employed, got %s first", EmploymentKeywords[0].Variant)
	}
	if RiskKeywords[0].Variant != string(RiskVeryAggressive) {
		t.Errorf("very_aggressive must come before aggressive, got %s first", RiskKeywords[0].Variant)
	}

	lastEmployment := EmploymentKeywords[len(EmploymentKeywords)-1]
	if lastEmployment.Variant != string(EmploymentEmployed) {
		t.Errorf("generic employed should be last, got %s", lastEmployment.Variant)
	}
}

func TestLookupUnknownPath(t *testing.T) {
	if Lookup("nope.nothing") != nil {
		t.Error("Lookup returned a definition for an unknown path")
	}
}
