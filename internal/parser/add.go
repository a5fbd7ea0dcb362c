package parser

import (
	"strings"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

const addVerb = `(?:bought|got|purchased?|add(?:ed)?)`

var (
	addKeywords       = []string{"bought", "got", "purchase", "add"}
	quantityFirstGate = mustCompile(`^\d+\s\w`)

	addExtractors = []extractor{
		// +napa 10 [unit]
		{re: mustCompile(`^\+\s?` + namePattern + `\s(\d+)\b` + optionalUnit), extract: nameQuantityUnit},
		// bought napa extra 10 tablets / got paracetamol, 12
		{re: mustCompile(`\b` + addVerb + `\s` + namePattern + separator + `(\d+)\b` + optionalUnit), extract: nameQuantityUnit},
		// 10 napa / got 10 napa
		{re: mustCompile(`^(?:` + addVerb + `\s)?(\d+)\s` + namePattern), extract: quantityName},
		// got paracetamol
		{re: mustCompile(`\b` + addVerb + `\s` + namePattern), extract: nameOnly},
	}
)

// ParseAdd recognizes stock additions: "+Napa 10", "Bought Napa Extra 10
// tablets", "10 Napa", "Got paracetamol". Expiry and location phrases are
// picked up from anywhere in the line.
func ParseAdd(text string) (Intent, bool) {
	s := prepare(text)
	if !(strings.HasPrefix(s, "+") || containsAny(s, addKeywords...) || quantityFirstGate.MatchString(s)) {
		return Intent{}, false
	}

	expiresAt, expirySpan, _ := extractExpiry(s)
	location, locationSpan, _ := extractLocation(s)

	intent, ok := firstMatch(cut(s, expirySpan, locationSpan), addExtractors)
	if !ok {
		return Intent{}, false
	}

	intent.Kind = KindAdd
	intent.ExpiresAt = expiresAt
	intent.Location = location
	intent.Confidence = 1
	return intent, true
}

func nameQuantityUnit(m []string) Intent {
	return Intent{
		Name:     domain.DisplayName(m[1]),
		Quantity: atoi(m[2]),
		Unit:     NormalizeUnit(m[3]),
	}
}

func quantityName(m []string) Intent {
	return Intent{
		Name:     domain.DisplayName(m[2]),
		Quantity: atoi(m[1]),
		Unit:     domain.DefaultUnit,
	}
}

func nameOnly(m []string) Intent {
	return Intent{
		Name: domain.DisplayName(m[1]),
		Unit: domain.DefaultUnit,
	}
}
