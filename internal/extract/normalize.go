package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/clearform/intake/internal/profile"
)

// normalizerID selects the field-specific normalizer applied to a raw
// captured value. Exactly one normalizer runs per captured value.
type normalizerID int

const (
	normText normalizerID = iota
	normName
	normPhone
	normEmail
	normDate
	normCurrency
	normCount
)

var (
	nonDigitRE      = regexp.MustCompile(`\D`)
	agePhraseRE     = regexp.MustCompile(`(?i)(\d{1,3})\s+(?:years|yrs)\s+old`)
	leadingAmountRE = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// normalizeValue converts a captured raw string into a typed field value.
// A false return means the raw text did not parse; the field stays unset
// and the caller may try a later tier.
func normalizeValue(id normalizerID, raw string, now time.Time) (profile.Value, bool) {
	switch id {
	case normName:
		v := titleCase(strings.TrimSpace(raw))
		if v == "" {
			return profile.Value{}, false
		}
		return profile.TextValue(v), true

	case normPhone:
		return normalizePhone(raw)

	case normEmail:
		v := strings.ToLower(strings.TrimSpace(raw))
		if v == "" {
			return profile.Value{}, false
		}
		return profile.TextValue(v), true

	case normDate:
		return normalizeDate(raw, now)

	case normCurrency:
		return normalizeCurrency(raw)

	case normCount:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return profile.Value{}, false
		}
		return profile.CountValue(n), true

	default:
		v := strings.TrimSpace(raw)
		if v == "" {
			return profile.Value{}, false
		}
		return profile.TextValue(v), true
	}
}

// normalizePhone strips non-digits and reformats exactly-10-digit numbers
// as (AAA) BBB-CCCC. Anything else passes through unchanged.
func normalizePhone(raw string) (profile.Value, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return profile.Value{}, false
	}
	digits := nonDigitRE.ReplaceAllString(trimmed, "")
	if len(digits) != 10 {
		return profile.TextValue(trimmed), true
	}
	return profile.TextValue(fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])), true
}

// normalizeDate tries numeric M/D/YYYY then M-D-YYYY, then an age phrase
// ("N years old") approximated as January 1 of current_year − N. Nothing
// parsing leaves the field unset.
func normalizeDate(raw string, now time.Time) (profile.Value, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range []string{"1/2/2006", "1-2-2006"} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return profile.DateValue(t), true
		}
	}
	if m := agePhraseRE.FindStringSubmatch(trimmed); m != nil {
		age, err := strconv.Atoi(m[1])
		if err != nil {
			return profile.Value{}, false
		}
		return profile.DateValue(time.Date(now.Year()-age, time.January, 1, 0, 0, 0, 0, time.UTC)), true
	}
	return profile.Value{}, false
}

// normalizeCurrency strips commas and dollar signs, then applies k/m
// multipliers to the leading decimal number. "50k" → 50000, "2m" →
// 2000000, "$1,200,000" → 1200000. Unparseable text leaves the field
// unset.
func normalizeCurrency(raw string) (profile.Value, bool) {
	cleaned := strings.NewReplacer(",", "", "$", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(raw)))
	if cleaned == "" {
		return profile.Value{}, false
	}

	num := leadingAmountRE.FindString(cleaned)
	if num == "" {
		return profile.Value{}, false
	}
	amount, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return profile.Value{}, false
	}

	switch {
	case strings.Contains(cleaned, "k"):
		amount *= 1_000
	case strings.Contains(cleaned, "m"):
		amount *= 1_000_000
	}
	return profile.NumberValue(amount), true
}

// titleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}
