package profile

import (
	"fmt"
	"strconv"
	"time"
)

// FieldPath is a dot-separated address into the four-section schema,
// e.g. "personal.first_name" or "employment.annual_income".
type FieldPath string

// ValueKind says which member of a Value a setter reads.
type ValueKind int

const (
	KindText ValueKind = iota
	KindDate
	KindCurrency
	KindCount
	KindCategory // categorical variant carried in Value.Text
)

// Value is the typed payload handed to a field setter. Exactly one member
// is meaningful, selected by the field's ValueKind.
type Value struct {
	Text   string
	Number float64
	Date   time.Time
	Count  int
}

// TextValue wraps a string for a KindText or KindCategory field.
func TextValue(s string) Value { return Value{Text: s} }

// NumberValue wraps a float for a KindCurrency field.
func NumberValue(f float64) Value { return Value{Number: f} }

// DateValue wraps a time for a KindDate field.
func DateValue(t time.Time) Value { return Value{Date: t} }

// CountValue wraps an int for a KindCount field.
func CountValue(n int) Value { return Value{Count: n} }

// FieldDef describes one leaf field: its path, the kind of value it takes,
// a typed setter, and a getter used for flattening and completion counts.
// The dispatch table replaces runtime attribute lookup: every settable field
// is enumerated here and the table is checked for completeness at startup.
type FieldDef struct {
	Path FieldPath
	Kind ValueKind
	Set  func(p *ClientProfile, v Value)
	Get  func(p *ClientProfile) (string, bool)
}

// dateLayout is the display format for flattened date fields.
const dateLayout = "01/02/2006"

// Schema is the ordered list of every leaf field in the profile. Order is
// stable and determines iteration order for flattening and completion.
var Schema = []FieldDef{
	{
		Path: "personal.first_name", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Personal.FirstName = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Personal.FirstName) },
	},
	{
		Path: "personal.last_name", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Personal.LastName = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Personal.LastName) },
	},
	{
		Path: "personal.middle_name", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Personal.MiddleName = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Personal.MiddleName) },
	},
	{
		Path: "personal.date_of_birth", Kind: KindDate,
		Set: func(p *ClientProfile, v Value) { p.Personal.DateOfBirth = &v.Date },
		Get: func(p *ClientProfile) (string, bool) {
			if p.Personal.DateOfBirth == nil {
				return "", false
			}
			return p.Personal.DateOfBirth.Format(dateLayout), true
		},
	},
	{
		Path: "personal.phone_number", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Personal.PhoneNumber = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Personal.PhoneNumber) },
	},
	{
		Path: "personal.email", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Personal.Email = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Personal.Email) },
	},
	{
		Path: "personal.marital_status", Kind: KindCategory,
		Set: func(p *ClientProfile, v Value) {
			s := MaritalStatus(v.Text)
			p.Personal.MaritalStatus = &s
		},
		Get: func(p *ClientProfile) (string, bool) {
			if p.Personal.MaritalStatus == nil {
				return "", false
			}
			return string(*p.Personal.MaritalStatus), true
		},
	},
	{
		Path: "personal.dependents", Kind: KindCount,
		Set: func(p *ClientProfile, v Value) { p.Personal.Dependents = &v.Count },
		Get: func(p *ClientProfile) (string, bool) { return derefInt(p.Personal.Dependents) },
	},

	{
		Path: "address.street_address", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Address.StreetAddress = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Address.StreetAddress) },
	},
	{
		Path: "address.city", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Address.City = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Address.City) },
	},
	{
		Path: "address.state", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Address.State = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Address.State) },
	},
	{
		Path: "address.zip_code", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Address.ZipCode = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Address.ZipCode) },
	},
	{
		Path: "address.country", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Address.Country = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Address.Country) },
	},

	{
		Path: "employment.employment_status", Kind: KindCategory,
		Set: func(p *ClientProfile, v Value) {
			s := EmploymentStatus(v.Text)
			p.Employment.Status = &s
		},
		Get: func(p *ClientProfile) (string, bool) {
			if p.Employment.Status == nil {
				return "", false
			}
			return string(*p.Employment.Status), true
		},
	},
	{
		Path: "employment.employer_name", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Employment.EmployerName = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Employment.EmployerName) },
	},
	{
		Path: "employment.occupation", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Employment.Occupation = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Employment.Occupation) },
	},
	{
		Path: "employment.years_employed", Kind: KindCount,
		Set: func(p *ClientProfile, v Value) { p.Employment.YearsEmployed = &v.Count },
		Get: func(p *ClientProfile) (string, bool) { return derefInt(p.Employment.YearsEmployed) },
	},
	{
		Path: "employment.annual_income", Kind: KindCurrency,
		Set: func(p *ClientProfile, v Value) { p.Employment.AnnualIncome = &v.Number },
		Get: func(p *ClientProfile) (string, bool) { return derefFloat(p.Employment.AnnualIncome) },
	},
	{
		Path: "employment.net_worth", Kind: KindCurrency,
		Set: func(p *ClientProfile, v Value) { p.Employment.NetWorth = &v.Number },
		Get: func(p *ClientProfile) (string, bool) { return derefFloat(p.Employment.NetWorth) },
	},

	{
		Path: "investment.investment_objective", Kind: KindCategory,
		Set: func(p *ClientProfile, v Value) {
			o := InvestmentObjective(v.Text)
			p.Investment.Objective = &o
		},
		Get: func(p *ClientProfile) (string, bool) {
			if p.Investment.Objective == nil {
				return "", false
			}
			return string(*p.Investment.Objective), true
		},
	},
	{
		Path: "investment.risk_tolerance", Kind: KindCategory,
		Set: func(p *ClientProfile, v Value) {
			r := RiskTolerance(v.Text)
			p.Investment.RiskTolerance = &r
		},
		Get: func(p *ClientProfile) (string, bool) {
			if p.Investment.RiskTolerance == nil {
				return "", false
			}
			return string(*p.Investment.RiskTolerance), true
		},
	},
	{
		Path: "investment.experience_years", Kind: KindCount,
		Set: func(p *ClientProfile, v Value) { p.Investment.ExperienceYears = &v.Count },
		Get: func(p *ClientProfile) (string, bool) { return derefInt(p.Investment.ExperienceYears) },
	},
	{
		Path: "investment.knowledge_level", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Investment.KnowledgeLevel = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Investment.KnowledgeLevel) },
	},
	{
		Path: "investment.time_horizon", Kind: KindText,
		Set: func(p *ClientProfile, v Value) { p.Investment.TimeHorizon = &v.Text },
		Get: func(p *ClientProfile) (string, bool) { return deref(p.Investment.TimeHorizon) },
	},
}

// schemaIndex maps a path to its definition for O(1) dispatch.
var schemaIndex = func() map[FieldPath]*FieldDef {
	idx := make(map[FieldPath]*FieldDef, len(Schema))
	for i := range Schema {
		idx[Schema[i].Path] = &Schema[i]
	}
	return idx
}()

// Lookup returns the field definition for path, or nil if the path is not
// part of the schema.
func Lookup(path FieldPath) *FieldDef {
	return schemaIndex[path]
}

// SetField writes a typed value through the dispatch table. Unknown paths
// are ignored; extraction treats them as "field unset", never as an error.
func SetField(p *ClientProfile, path FieldPath, v Value) bool {
	def := schemaIndex[path]
	if def == nil {
		return false
	}
	def.Set(p, v)
	return true
}

// IsSet reports whether the field at path is populated.
func IsSet(p *ClientProfile, path FieldPath) bool {
	def := schemaIndex[path]
	if def == nil {
		return false
	}
	_, ok := def.Get(p)
	return ok
}

// Flatten renders every populated leaf field as a dot-path → display-string
// map. The form-filling subsystem consumes this view.
func Flatten(p *ClientProfile) map[FieldPath]string {
	out := make(map[FieldPath]string)
	for i := range Schema {
		if v, ok := Schema[i].Get(p); ok {
			out[Schema[i].Path] = v
		}
	}
	return out
}

// CompletionPercentage returns 100 × populated / total leaf fields,
// or 0 for an empty schema.
func CompletionPercentage(p *ClientProfile) float64 {
	total := len(Schema)
	if total == 0 {
		return 0
	}
	filled := 0
	for i := range Schema {
		if _, ok := Schema[i].Get(p); ok {
			filled++
		}
	}
	return float64(filled) / float64(total) * 100
}

// ValidateSchema checks the dispatch table for completeness: every entry
// must have a path, a setter, and a getter, and paths must be unique.
// Called once at startup by pipeline construction.
func ValidateSchema() error {
	seen := make(map[FieldPath]bool, len(Schema))
	for i := range Schema {
		def := &Schema[i]
		if def.Path == "" {
			return fmt.Errorf("schema entry %d: empty path", i)
		}
		if seen[def.Path] {
			return fmt.Errorf("schema entry %d: duplicate path %q", i, def.Path)
		}
		seen[def.Path] = true
		if def.Set == nil {
			return fmt.Errorf("field %s: missing setter", def.Path)
		}
		if def.Get == nil {
			return fmt.Errorf("field %s: missing getter", def.Path)
		}
	}
	return nil
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func derefInt(n *int) (string, bool) {
	if n == nil {
		return "", false
	}
	return strconv.Itoa(*n), true
}

func derefFloat(f *float64) (string, bool) {
	if f == nil {
		return "", false
	}
	return strconv.FormatFloat(*f, 'f', -1, 64), true
}
