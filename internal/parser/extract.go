package parser

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

// span is a half-open byte range of a phrase inside the prepared text.
type span struct{ start, end int }

type expiryPattern struct {
	re      *regexp.Regexp
	layouts []string
}

var monthYearLayouts = []string{"January 2006", "Jan 2006"}

// Tried in order; a phrase that matches but does not parse as a date falls
// through to the next pattern.
var expiryPatterns = []expiryPattern{
	{re: mustCompile(`\bexpire[sd]?\s([a-z]+\s\d{4})\b`), layouts: monthYearLayouts},
	{re: mustCompile(`\bexpiry[:\s]+([a-z]+\s\d{4})\b`), layouts: monthYearLayouts},
	{re: mustCompile(`\bexp[:\s]+(\d{1,2}[/-]\d{4})\b`), layouts: []string{"1/2006", "1-2006"}},
	{re: mustCompile(`\b(\d{4}-\d{2})\b`), layouts: []string{"2006-01"}},
}

var locationPattern = mustCompile(`(?:\b(?:in|at)|\blocation:?)\s([a-z\s]+(?:drawer|cabinet|room|shelf|box))\b`)

// extractExpiry finds an expiry phrase anywhere in prepared text. The date
// resolves to the first day of the named month, midnight UTC.
func extractExpiry(text string) (*time.Time, span, bool) {
	for _, p := range expiryPatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			raw := text[loc[2]:loc[3]]
			if t, ok := parseMonth(raw, p.layouts); ok {
				return &t, span{start: loc[0], end: loc[1]}, true
			}
		}
	}
	return nil, span{}, false
}

func parseMonth(raw string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// extractLocation finds a storage location phrase ("in bedroom drawer").
func extractLocation(text string) (*string, span, bool) {
	loc := locationPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, span{}, false
	}
	place := domain.DisplayName(text[loc[2]:loc[3]])
	return &place, span{start: loc[0], end: loc[1]}, true
}

// cut removes the given spans from text and re-collapses whitespace.
// Overlapping spans are merged.
func cut(text string, spans ...span) string {
	var b strings.Builder
	pos := 0
	for _, s := range sortSpans(spans) {
		if s.start < pos {
			s.start = pos
		}
		if s.end <= s.start {
			continue
		}
		b.WriteString(text[pos:s.start])
		b.WriteByte(' ')
		pos = s.end
	}
	b.WriteString(text[pos:])
	return domain.CollapseSpaces(b.String())
}

func sortSpans(spans []span) []span {
	out := slices.Clone(spans)
	slices.SortFunc(out, func(a, b span) int { return a.start - b.start })
	return out
}
