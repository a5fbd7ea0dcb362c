package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName prepares a medicine name for comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace into one space
func NormalizeName(name string) string {
	return strings.ToLower(CollapseSpaces(name))
}

// CollapseSpaces trims the string and joins whitespace-separated fields
// with a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DisplayName returns the title-cased display form of a name
// ("napa  EXTRA" -> "Napa Extra").
func DisplayName(name string) string {
	return cases.Title(language.Und).String(NormalizeName(name))
}
