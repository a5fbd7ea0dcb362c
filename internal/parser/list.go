package parser

import (
	"strings"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

var listKeywords = []string{
	"?all",
	"list",
	"show all",
	"show everything",
	"list all",
	"list medicines",
	"show medicines",
	"what do we have",
	"inventory",
}

// ParseList recognizes requests for the whole inventory. The line must
// equal or start with one of the list keywords.
func ParseList(text string) (Intent, bool) {
	s := prepare(text)
	for _, kw := range listKeywords {
		if strings.HasPrefix(s, kw) {
			return Intent{Kind: KindList, Unit: domain.DefaultUnit, Confidence: 1}, true
		}
	}
	return Intent{}, false
}
