package cabinet

import (
	"github.com/heartmarshall/medicabinet-backend/internal/domain"
	"github.com/heartmarshall/medicabinet-backend/internal/parser"
)

// Outcome tells the caller how a name-resolving command ended.
type Outcome string

const (
	OutcomeDone      Outcome = "done"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeAmbiguous Outcome = "ambiguous"
)

// AddResult describes the stock after an add.
type AddResult struct {
	Medicine     domain.Medicine
	Added        int
	LowStock     bool
	ExpiringSoon bool
}

// UseResult describes the stock after a use. Medicine is set only when
// Outcome is OutcomeDone; Candidates only when it is OutcomeAmbiguous.
type UseResult struct {
	Outcome    Outcome
	Medicine   *domain.Medicine
	Used       int
	Candidates []domain.MedicineMatch
	LowStock   bool
	OutOfStock bool
}

// SearchResult holds the best matches for a lookup, best first.
type SearchResult struct {
	Matches []domain.MedicineMatch
}

// Found reports whether anything matched.
func (r *SearchResult) Found() bool { return len(r.Matches) > 0 }

// ListResult holds the whole inventory plus the subsets that need attention.
type ListResult struct {
	Medicines []domain.Medicine
	LowStock  []domain.Medicine
	Expiring  []domain.Medicine
}

// DeleteResult describes a delete attempt.
type DeleteResult struct {
	Outcome    Outcome
	Medicine   *domain.Medicine
	Candidates []domain.MedicineMatch
}

// HistoryResult holds the ledger of one resolved medicine.
type HistoryResult struct {
	Outcome    Outcome
	Medicine   *domain.Medicine
	Candidates []domain.MedicineMatch
	Entries    []domain.Activity
}

// AlertsResult holds the medicines of a group that need restocking or are
// about to expire.
type AlertsResult struct {
	GroupID  int64
	LowStock []domain.Medicine
	Expiring []domain.Medicine
}

// Empty reports whether there is nothing to alert about.
func (r *AlertsResult) Empty() bool { return len(r.LowStock) == 0 && len(r.Expiring) == 0 }

// CommandResult is the outcome of Execute. Exactly one of the result
// pointers is set for a recognized command; none for an unknown one.
type CommandResult struct {
	Intent parser.Intent
	Add    *AddResult
	Use    *UseResult
	Search *SearchResult
	List   *ListResult
}
