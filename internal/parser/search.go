package parser

import "strings"

var (
	searchKeywords = []string{"have", "check", "search", "find", "show"}

	searchExtractors = []extractor{
		// ?napa
		{re: mustCompile(`^\?\s?` + namePattern), extract: nameOnly},
		// do we have napa?
		{re: mustCompile(`\bdo\swe\shave\s` + namePattern), extract: nameOnly},
		// check sergel / check if we have sergel / search for napa
		{re: mustCompile(`\b(?:check|search|find|show)\s(?:for\s)?(?:if\swe\shave\s)?` + namePattern), extract: nameOnly},
		// have we got napa?
		{re: mustCompile(`\bhave\s(?:we\s)?(?:got\s)?` + namePattern), extract: nameOnly},
	}
)

// ParseSearch recognizes lookups: "?Napa", "Do we have Napa?", "Check
// Sergel", "Find paracetamol".
func ParseSearch(text string) (Intent, bool) {
	s := prepare(text)
	if !(strings.HasPrefix(s, "?") || containsAny(s, searchKeywords...)) {
		return Intent{}, false
	}

	intent, ok := firstMatch(s, searchExtractors)
	if !ok {
		return Intent{}, false
	}

	intent.Kind = KindSearch
	intent.Confidence = 1
	return intent, true
}
