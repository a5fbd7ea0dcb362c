package parser

import (
	"strings"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

// Classifier tests whether text belongs to one command family and, if so,
// extracts its fields. Classifiers never fail; they report ok=false instead.
type Classifier func(text string) (Intent, bool)

// Parser tries an ordered list of classifiers and returns the first match.
type Parser struct {
	classifiers []Classifier
}

// New returns a Parser with the standard precedence: list, add, use, search.
// List goes first because its keyword set is the narrowest and "?all" must
// not be read as a search, nor "list 10 …" as an add.
func New() *Parser {
	return &Parser{
		classifiers: []Classifier{ParseList, ParseAdd, ParseUse, ParseSearch},
	}
}

// Parse classifies text. Unmatched text yields a KindUnknown intent with
// zero confidence.
func (p *Parser) Parse(text string) Intent {
	text = strings.TrimSpace(text)

	for _, classify := range p.classifiers {
		if intent, ok := classify(text); ok {
			intent.RawText = text
			return intent
		}
	}

	return Intent{
		Kind:       KindUnknown,
		Unit:       domain.DefaultUnit,
		Confidence: 0,
		RawText:    text,
	}
}

var defaultParser = New()

// Parse classifies text with the default Parser.
func Parse(text string) Intent {
	return defaultParser.Parse(text)
}

// prepare lowercases text and collapses all whitespace runs so that the
// patterns below only ever see single spaces.
func prepare(text string) string {
	return strings.ToLower(domain.CollapseSpaces(text))
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
