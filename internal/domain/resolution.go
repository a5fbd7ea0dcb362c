package domain

// PerfectScore is the fuzzy score of a case-insensitive exact name match.
const PerfectScore = 100

// MaxCandidates bounds the disambiguation set offered to the user.
const MaxCandidates = 5

// ResolutionOutcome tells the caller which branch to take after resolving a name.
type ResolutionOutcome string

const (
	ResolutionNone      ResolutionOutcome = "none"
	ResolutionResolved  ResolutionOutcome = "resolved"
	ResolutionAmbiguous ResolutionOutcome = "ambiguous"
)

// Resolution is the result of turning a free-text name into inventory records.
// Match is set only when Outcome is ResolutionResolved; Candidates only when
// it is ResolutionAmbiguous.
type Resolution struct {
	Outcome    ResolutionOutcome
	Match      *MedicineMatch
	Candidates []MedicineMatch
}

// Resolve applies the resolution policy to matches that are already filtered
// by threshold and ordered by descending score (stable on ties).
//
// A single match, or a leading perfect score, resolves outright. Two or more
// matches without a perfect leader are ambiguous. When several candidates
// score 100 the first one in the given order wins.
func Resolve(matches []MedicineMatch) Resolution {
	switch {
	case len(matches) == 0:
		return Resolution{Outcome: ResolutionNone}
	case len(matches) == 1 || matches[0].Score >= PerfectScore:
		m := matches[0]
		return Resolution{Outcome: ResolutionResolved, Match: &m}
	}

	n := min(len(matches), MaxCandidates)
	candidates := make([]MedicineMatch, n)
	copy(candidates, matches[:n])
	return Resolution{Outcome: ResolutionAmbiguous, Candidates: candidates}
}
