package parser

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

// namePattern captures a one- or two-word medicine name. Words start with a
// letter so that "got 10 napa" never reads "10" as a name.
const namePattern = `([a-z][\w'-]*(?:\s[a-z][\w'-]*)?)`

// separator sits between a name and a trailing quantity: a comma and/or
// whitespace. At least one of them is required so "napa10" is not split.
const separator = `(?:\s?,\s?|\s)`

// optionalUnit captures a word right after a quantity.
const optionalUnit = `(?:\s([a-z]+))?`

// extractor pulls fields out of one compiled pattern's submatches.
type extractor struct {
	re      *regexp.Regexp
	extract func(m []string) Intent
}

func mustCompile(expr string) *regexp.Regexp {
	return regexp.MustCompile(expr)
}

// firstMatch runs extractors in order and returns the first hit.
func firstMatch(text string, extractors []extractor) (Intent, bool) {
	for _, ex := range extractors {
		if m := ex.re.FindStringSubmatch(text); m != nil {
			return ex.extract(m), true
		}
	}
	return Intent{}, false
}

// atoi parses a captured run of digits. Values that overflow int saturate
// at math.MaxInt so the caller can reject them as too large instead of
// treating them as absent.
func atoi(s string) *int {
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		n = math.MaxInt
	} else if err != nil || n < 0 {
		return nil
	}
	return &n
}
