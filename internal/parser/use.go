package parser

import (
	"strings"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

const useVerb = `\b(?:used|took|consumed?)`

var (
	useKeywords = []string{"used", "took", "consume"}

	useExtractors = []extractor{
		// -napa 2
		{re: mustCompile(`^-\s?` + namePattern + separator + `(\d+)\b`), extract: nameQuantity},
		// used 2 napa
		{re: mustCompile(useVerb + `\s(\d+)\s` + namePattern), extract: quantityName},
		// used napa 2 / used napa, 2
		{re: mustCompile(useVerb + `\s` + namePattern + separator + `(\d+)\b`), extract: nameQuantity},
		// took some paracetamol / took napa
		{re: mustCompile(useVerb + `\s(?:some\s)?` + namePattern), extract: nameDefaultOne},
	}
)

// ParseUse recognizes consumption: "-Napa 2", "Used 2 Napa", "Used Napa 2",
// "Took some paracetamol". A use without a quantity means one unit.
func ParseUse(text string) (Intent, bool) {
	s := prepare(text)
	if !(strings.HasPrefix(s, "-") || containsAny(s, useKeywords...)) {
		return Intent{}, false
	}

	intent, ok := firstMatch(s, useExtractors)
	if !ok {
		return Intent{}, false
	}

	intent.Kind = KindUse
	intent.Confidence = 1
	return intent, true
}

func nameQuantity(m []string) Intent {
	return Intent{
		Name:     domain.DisplayName(m[1]),
		Quantity: atoi(m[2]),
		Unit:     domain.DefaultUnit,
	}
}

func nameDefaultOne(m []string) Intent {
	return Intent{
		Name:     domain.DisplayName(m[1]),
		Quantity: intPtr(1),
		Unit:     domain.DefaultUnit,
	}
}
