package domain

import "time"

// ActivityAction is the kind of ledger entry.
type ActivityAction string

const (
	ActivityAdded    ActivityAction = "added"
	ActivityUsed     ActivityAction = "used"
	ActivitySearched ActivityAction = "searched"
	ActivityDeleted  ActivityAction = "deleted"
)

func (a ActivityAction) String() string { return string(a) }

func (a ActivityAction) IsValid() bool {
	switch a {
	case ActivityAdded, ActivityUsed, ActivitySearched, ActivityDeleted:
		return true
	}
	return false
}

// Activity is an append-only ledger entry against a medicine.
type Activity struct {
	ID            int64
	MedicineID    int64
	GroupID       int64
	Action        ActivityAction
	QuantityDelta *int
	UserID        int64
	UserName      string
	CreatedAt     time.Time
}

// ActivityInput carries the fields needed to record an activity.
type ActivityInput struct {
	MedicineID    int64
	GroupID       int64
	Action        ActivityAction
	QuantityDelta *int
	Actor         Actor
}

// UserActivityCount is one row of the most-active-users ranking.
type UserActivityCount struct {
	UserID   int64
	UserName string
	Count    int
}

// MedicineUsageCount is one row of the most-used-medicines ranking.
type MedicineUsageCount struct {
	MedicineID int64
	Name       string
	Count      int
}

// ActivityStats aggregates the ledger of a group over a trailing window.
type ActivityStats struct {
	WindowDays   int
	Total        int
	ByAction     map[ActivityAction]int
	TopUsers     []UserActivityCount
	TopMedicines []MedicineUsageCount
}

// StatsTopN bounds both rankings in ActivityStats.
const StatsTopN = 5
