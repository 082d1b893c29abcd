package formfill

import (
	"strings"

	"github.com/clearform/intake/internal/profile"
)

// destinationHints maps normalized destination-field name fragments to
// profile paths and the transform that field conventionally wants.
// Checked in order; more specific fragments come before substrings of
// themselves ("firstname" before "name").
var destinationHints = []struct {
	fragment  string
	path      profile.FieldPath
	transform string
}{
	{"firstname", "personal.first_name", ""},
	{"fname", "personal.first_name", ""},
	{"lastname", "personal.last_name", ""},
	{"lname", "personal.last_name", ""},
	{"first", "personal.first_name", ""},
	{"last", "personal.last_name", ""},
	{"dateofbirth", "personal.date_of_birth", TransformDate},
	{"birthdate", "personal.date_of_birth", TransformDate},
	{"dob", "personal.date_of_birth", TransformDate},
	{"telephone", "personal.phone_number", TransformPhone},
	{"phone", "personal.phone_number", TransformPhone},
	{"email", "personal.email", ""},
	{"marital", "personal.marital_status", TransformTitle},
	{"dependents", "personal.dependents", ""},

	{"street", "address.street_address", TransformTitle},
	{"address", "address.street_address", TransformTitle},
	{"city", "address.city", TransformTitle},
	{"state", "address.state", TransformUpper},
	{"zipcode", "address.zip_code", ""},
	{"zip", "address.zip_code", ""},
	{"country", "address.country", TransformTitle},

	{"employer", "employment.employer_name", ""},
	{"company", "employment.employer_name", ""},
	{"occupation", "employment.occupation", TransformTitle},
	{"position", "employment.occupation", TransformTitle},
	{"job", "employment.occupation", TransformTitle},
	{"income", "employment.annual_income", TransformCurrency},
	{"salary", "employment.annual_income", TransformCurrency},
	{"networth", "employment.net_worth", TransformCurrency},

	{"risktolerance", "investment.risk_tolerance", TransformTitle},
	{"risk", "investment.risk_tolerance", TransformTitle},
	{"objective", "investment.investment_objective", TransformTitle},
	{"goal", "investment.investment_objective", TransformTitle},
	{"experience", "investment.experience_years", ""},
	{"horizon", "investment.time_horizon", ""},

	// Bare "name" is last so the first/last variants win.
	{"name", "personal.first_name", ""},
}

// DefaultMappings infers a mapping from destination field names alone:
// each name is normalized (lowercased, spaces and underscores removed)
// and matched against the hint table. Unrecognized names are dropped.
func DefaultMappings(destinations []string) *MappingSet {
	set := &MappingSet{Name: "default"}
	for _, dest := range destinations {
		norm := strings.NewReplacer(" ", "", "_", "").Replace(strings.ToLower(dest))
		for _, hint := range destinationHints {
			if strings.Contains(norm, hint.fragment) {
				set.Fields = append(set.Fields, FieldMapping{
					ProfilePath: hint.path,
					Destination: dest,
					Kind:        KindText,
					Transform:   hint.transform,
				})
				break
			}
		}
	}
	return set
}
