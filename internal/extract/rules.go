package extract

import (
	"regexp"

	"github.com/clearform/intake/internal/profile"
)

// fieldRule declares how one field's value is extracted. Tiers are tried
// strictly in order and the first successful tier wins; later tiers are
// never consulted even when they would also match:
//
//  1. entity seed (handled by the section pre-pass, name/employer only)
//  2. direct regexes over the aggregated client text
//  3. the first pattern-index answer, parsed with the answer regexes
//     (or the categorical table for enum-valued fields)
//  4. the categorical table over the aggregated client text
//
// A captured value passes through exactly one normalizer, selected by norm.
type fieldRule struct {
	path       profile.FieldPath
	norm       normalizerID
	direct     []*regexp.Regexp      // tier 2
	answer     []*regexp.Regexp      // tier 3 (regex-valued fields)
	categories []profile.KeywordRule // tiers 3+4 (enum-valued fields)
}

// Shared value patterns. Currency alternatives deliberately capture a
// trailing k/m multiplier so "80k" normalizes to 80000 no matter which
// tier produced it.
var (
	phoneValueRE = regexp.MustCompile(`(\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})`)
	emailValueRE = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	moneyValueRE = regexp.MustCompile(`(?i)\$?(\d[\d,]*(?:\.\d+)?\s?[km]?)\b`)
)

// knowledgeKeywords and horizonKeywords are free-text categorical tables
// for fields that are descriptive rather than closed enums; the matched
// category name becomes the field text.
var knowledgeKeywords = []profile.KeywordRule{
	{Variant: "advanced", Keywords: []string{"advanced", "expert", "very experienced", "sophisticated"}},
	{Variant: "beginner", Keywords: []string{"beginner", "new to investing", "novice", "just starting", "first time"}},
	{Variant: "intermediate", Keywords: []string{"intermediate", "some experience", "fairly comfortable", "know the basics"}},
}

var horizonKeywords = []profile.KeywordRule{
	{Variant: "long term", Keywords: []string{"long term", "long-term", "decades", "until retirement", "20 years", "30 years"}},
	{Variant: "short term", Keywords: []string{"short term", "short-term", "next year", "couple of years", "few years"}},
	{Variant: "medium term", Keywords: []string{"medium term", "medium-term", "five to ten", "5 to 10", "ten years"}},
}

// fieldRules is the complete per-section extraction rule table, in schema
// order within each section.
var fieldRules = map[string][]fieldRule{
	"personal": {
		{
			path: "personal.first_name",
			norm: normName,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?:[Mm]y name is|[Nn]ame's|[Cc]all me)\s+([A-Z][a-z]+)`),
				regexp.MustCompile(`[Ff]irst name is\s+([A-Z][a-z]+)`),
				regexp.MustCompile(`\bI\s?'?a?m\s+([A-Z][a-z]+)\b`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`(?:[Mm]y name is|[Cc]all me|[Ii]t's|[Ii]t is)\s+([A-Z][a-z]+)`),
				regexp.MustCompile(`^([A-Z][a-z]+)\b`),
			},
		},
		{
			path: "personal.last_name",
			norm: normName,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`[Ll]ast name is\s+([A-Z][a-z]+)`),
				regexp.MustCompile(`(?:[Mm]y name is|[Cc]all me)\s+[A-Z][a-z]+\s+([A-Z][a-z]+)`),
				regexp.MustCompile(`([A-Z][a-z]+) is my last name`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`[Ll]ast name is\s+([A-Z][a-z]+)`),
				regexp.MustCompile(`^(?:[A-Z][a-z]+\s+)?([A-Z][a-z]+)[.!]?$`),
			},
		},
		{
			path: "personal.date_of_birth",
			norm: normDate,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
				regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{4})`),
				regexp.MustCompile(`(?i)(\d{1,3}\s+(?:years|yrs)\s+old)`),
			},
		},
		{
			path:   "personal.phone_number",
			norm:   normPhone,
			direct: []*regexp.Regexp{phoneValueRE},
		},
		{
			path:   "personal.email",
			norm:   normEmail,
			direct: []*regexp.Regexp{emailValueRE},
		},
		{
			path:       "personal.marital_status",
			norm:       normText,
			categories: profile.MaritalKeywords,
		},
		{
			path: "personal.dependents",
			norm: normCount,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(\d{1,2})\s+(?:kids|children|dependents)`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`(\d{1,2})`),
			},
		},
	},

	"address": {
		{
			path: "address.street_address",
			norm: normText,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:live at|address is)\s+(\d+\s+[A-Za-z .]+?(?:street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln|court|ct)\.?)\b`),
				regexp.MustCompile(`(?i)\b(\d+\s+[A-Za-z .]+?(?:street|avenue|road|boulevard|drive|lane|court))\b`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(\d+\s+[A-Za-z .]+?(?:street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln|court|ct)\.?)\b`),
			},
		},
		{
			path: "address.city",
			norm: normText,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?:live in|city is|here in)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)[.!]?$`),
				regexp.MustCompile(`(?:in|it's)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
			},
		},
		{
			path: "address.state",
			norm: normText,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`([A-Z]{2})\s+\d{5}`),
				regexp.MustCompile(`(?i)state of\s+([A-Z][a-z]+)`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z]{2})[.!]?$`),
			},
		},
		{
			path: "address.zip_code",
			norm: normText,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`\b(\d{5}(?:-\d{4})?)\b`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`\b(\d{5}(?:-\d{4})?)\b`),
			},
		},
		{
			path: "address.country",
			norm: normText,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?i)country is\s+([A-Z][A-Za-z ]+?)(?:[.,]|$)`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`^([A-Z][A-Za-z ]+?)[.!]?$`),
			},
		},
	},

	"employment": {
		{
			path:       "employment.employment_status",
			norm:       normText,
			categories: profile.EmploymentKeywords,
		},
		{
			path: "employment.employer_name",
			norm: normText,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?:work at|work for|employed by)\s+([A-Z][\w&.-]*(?:\s+[A-Z][\w&.-]*)*)`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`(?:work at|work for|at)\s+([A-Z][\w&.-]*(?:\s+[A-Z][\w&.-]*)*)`),
				regexp.MustCompile(`^([A-Z][\w&.-]*(?:\s+[A-Z][\w&.-]*)*)[.!]?$`),
			},
		},
		{
			path: "employment.occupation",
			norm: normText,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:I'?m an?|work as an?|occupation is)\s+([a-z]+(?:\s[a-z]+)?)(?:\s+at\b|[.,]|$)`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:I'?m an?|work as an?)\s+([a-z]+(?:\s[a-z]+)?)`),
			},
		},
		{
			path: "employment.years_employed",
			norm: normCount,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:worked|been)\s+(?:there|here|with them)\s+(?:for\s+)?(\d{1,2})\s+years`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`(\d{1,2})\s+years`),
			},
		},
		{
			path: "employment.annual_income",
			norm: normCurrency,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:make|earn|income of|income is|salary of|salary is)[^0-9$]{0,20}\$?(\d[\d,]*(?:\.\d+)?\s?[km]?)\b`),
				regexp.MustCompile(`(?i)\$(\d[\d,]*(?:\.\d+)?\s?[km]?)\s+(?:a|per)\s+year`),
			},
			answer: []*regexp.Regexp{moneyValueRE},
		},
		{
			path: "employment.net_worth",
			norm: normCurrency,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?i)net worth[^0-9$]{0,20}\$?(\d[\d,]*(?:\.\d+)?\s?[km]?)\b`),
				regexp.MustCompile(`(?i)\bworth\s+(?:about\s+|around\s+)?\$?(\d[\d,]*(?:\.\d+)?\s?[km]?)\b`),
				regexp.MustCompile(`(?i)assets[^0-9$]{0,20}\$?(\d[\d,]*(?:\.\d+)?\s?[km]?)\b`),
			},
			answer: []*regexp.Regexp{moneyValueRE},
		},
	},

	"investment": {
		{
			path:       "investment.investment_objective",
			norm:       normText,
			categories: profile.ObjectiveKeywords,
		},
		{
			path:       "investment.risk_tolerance",
			norm:       normText,
			categories: profile.RiskKeywords,
		},
		{
			path: "investment.experience_years",
			norm: normCount,
			direct: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:investing|invested|investment experience)[^0-9]{0,20}(\d{1,2})\s*years?`),
				regexp.MustCompile(`(?i)(\d{1,2})\s*years?[^.]{0,25}(?:investing|investment|experience)`),
			},
			answer: []*regexp.Regexp{
				regexp.MustCompile(`(\d{1,2})\s*years?`),
			},
		},
		{
			path:       "investment.knowledge_level",
			norm:       normText,
			categories: knowledgeKeywords,
		},
		{
			path:       "investment.time_horizon",
			norm:       normText,
			categories: horizonKeywords,
		},
	},
}

// sectionOrder fixes the order sections are extracted in.
var sectionOrder = []string{"personal", "address", "employment", "investment"}
