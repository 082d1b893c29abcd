// Package profile defines the structured client record produced by
// transcript extraction.
//
// A ClientProfile has four sections (personal, address, employment,
// investment) whose fields are all optional: a profile with zero populated
// fields is still valid. Categorical fields are closed tagged variants with
// an ordered keyword table per variant set; table order is the tie-break
// when keywords overlap.
package profile

import "time"

// MaritalStatus is a closed set of marital status variants.
type MaritalStatus string

const (
	MaritalSingle    MaritalStatus = "single"
	MaritalMarried   MaritalStatus = "married"
	MaritalDivorced  MaritalStatus = "divorced"
	MaritalWidowed   MaritalStatus = "widowed"
	MaritalSeparated MaritalStatus = "separated"
)

// EmploymentStatus is a closed set of employment status variants.
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentSelfEmployed EmploymentStatus = "self_employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentRetired      EmploymentStatus = "retired"
	EmploymentStudent      EmploymentStatus = "student"
)

// RiskTolerance is a closed set of risk tolerance variants.
type RiskTolerance string

const (
	RiskConservative   RiskTolerance = "conservative"
	RiskModerate       RiskTolerance = "moderate"
	RiskAggressive     RiskTolerance = "aggressive"
	RiskVeryAggressive RiskTolerance = "very_aggressive"
)

// InvestmentObjective is a closed set of investment objective variants.
type InvestmentObjective string

const (
	ObjectiveGrowth       InvestmentObjective = "growth"
	ObjectiveIncome       InvestmentObjective = "income"
	ObjectivePreservation InvestmentObjective = "preservation"
	ObjectiveSpeculation  InvestmentObjective = "speculation"
	ObjectiveBalanced     InvestmentObjective = "balanced"
)

// KeywordRule binds one categorical variant to the keywords that select it.
type KeywordRule struct {
	Variant  string
	Keywords []string
}

// Ordered keyword tables for categorical extraction. The first rule whose
// keyword list contains a matching substring wins, so more specific variants
// (self-employed, very aggressive) come before the variants their keywords
// are substrings of.
var (
	MaritalKeywords = []KeywordRule{
		{Variant: string(MaritalSeparated), Keywords: []string{"separated"}},
		{Variant: string(MaritalDivorced), Keywords: []string{"divorced", "divorce"}},
		{Variant: string(MaritalWidowed), Keywords: []string{"widowed", "widower", "widow"}},
		{Variant: string(MaritalMarried), Keywords: []string{"married", "wife", "husband", "spouse"}},
		{Variant: string(MaritalSingle), Keywords: []string{"single", "never married", "unmarried"}},
	}

	EmploymentKeywords = []KeywordRule{
		{Variant: string(EmploymentSelfEmployed), Keywords: []string{"self-employed", "self employed", "own business", "my own company", "freelance", "contractor"}},
		{Variant: string(EmploymentRetired), Keywords: []string{"retired", "retirement"}},
		{Variant: string(EmploymentUnemployed), Keywords: []string{"unemployed", "not working", "between jobs", "laid off"}},
		{Variant: string(EmploymentStudent), Keywords: []string{"student", "studying", "grad school", "in school"}},
		{Variant: string(EmploymentEmployed), Keywords: []string{"employed", "work at", "work for", "working", "full-time", "full time", "my job"}},
	}

	RiskKeywords = []KeywordRule{
		{Variant: string(RiskVeryAggressive), Keywords: []string{"very aggressive", "speculation", "maximum risk"}},
		{Variant: string(RiskConservative), Keywords: []string{"conservative", "low risk", "cautious", "safe"}},
		{Variant: string(RiskModerate), Keywords: []string{"moderate", "balanced", "medium risk", "middle of the road"}},
		{Variant: string(RiskAggressive), Keywords: []string{"aggressive", "high risk", "growth"}},
	}

	ObjectiveKeywords = []KeywordRule{
		{Variant: string(ObjectivePreservation), Keywords: []string{"preserve", "protect", "capital preservation"}},
		{Variant: string(ObjectiveSpeculation), Keywords: []string{"speculation", "speculate", "high returns"}},
		{Variant: string(ObjectiveBalanced), Keywords: []string{"balanced", "combination", "mix of"}},
		{Variant: string(ObjectiveIncome), Keywords: []string{"income", "dividends", "yield"}},
		{Variant: string(ObjectiveGrowth), Keywords: []string{"growth", "appreciate", "grow my"}},
	}
)

// Personal holds identity and contact fields.
type Personal struct {
	FirstName     *string        `json:"first_name,omitempty"`
	LastName      *string        `json:"last_name,omitempty"`
	MiddleName    *string        `json:"middle_name,omitempty"`
	DateOfBirth   *time.Time     `json:"date_of_birth,omitempty"`
	PhoneNumber   *string        `json:"phone_number,omitempty"`
	Email         *string        `json:"email,omitempty"`
	MaritalStatus *MaritalStatus `json:"marital_status,omitempty"`
	Dependents    *int           `json:"dependents,omitempty"`
}

// Address holds residence fields.
type Address struct {
	StreetAddress *string `json:"street_address,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	ZipCode       *string `json:"zip_code,omitempty"`
	Country       *string `json:"country,omitempty"`
}

// Employment holds employment and financial fields.
type Employment struct {
	Status        *EmploymentStatus `json:"employment_status,omitempty"`
	EmployerName  *string           `json:"employer_name,omitempty"`
	Occupation    *string           `json:"occupation,omitempty"`
	YearsEmployed *int              `json:"years_employed,omitempty"`
	AnnualIncome  *float64          `json:"annual_income,omitempty"`
	NetWorth      *float64          `json:"net_worth,omitempty"`
}

// Investment holds investment preference fields.
type Investment struct {
	Objective       *InvestmentObjective `json:"investment_objective,omitempty"`
	RiskTolerance   *RiskTolerance       `json:"risk_tolerance,omitempty"`
	ExperienceYears *int                 `json:"experience_years,omitempty"`
	KnowledgeLevel  *string              `json:"knowledge_level,omitempty"`
	TimeHorizon     *string              `json:"time_horizon,omitempty"`
}

// ClientProfile is the complete structured record for one client.
// The extraction pipeline builds it once per run and never mutates it
// after returning it.
type ClientProfile struct {
	Personal   Personal   `json:"personal"`
	Address    Address    `json:"address"`
	Employment Employment `json:"employment"`
	Investment Investment `json:"investment"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// New returns an empty profile stamped with the given creation time.
func New(createdAt time.Time) *ClientProfile {
	return &ClientProfile{CreatedAt: createdAt}
}
